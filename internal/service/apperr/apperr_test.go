package apperr

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotFound(t *testing.T) {
	err := NotFound("Order", int64(42))

	assert.Equal(t, "Order not found with id: 42", err.Error())
	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsNotFound(err))
}

func TestKindOf_WrappedError(t *testing.T) {
	err := fmt.Errorf("failed to load order: %w", NotFound("Order", 7))

	assert.Equal(t, KindNotFound, KindOf(err))
	assert.True(t, IsNotFound(err))
}

func TestKindOf_UnclassifiedError(t *testing.T) {
	assert.Equal(t, KindInternal, KindOf(errors.New("connection reset")))
	assert.False(t, IsNotFound(errors.New("connection reset")))
}

func TestConflict_PreservesCause(t *testing.T) {
	cause := errors.New("fk violation")
	err := Conflict("category is still referenced by products", cause)

	assert.Equal(t, KindConflict, KindOf(err))
	assert.ErrorIs(t, err, cause)
}

func TestInternal_HidesDetails(t *testing.T) {
	err := Internal(errors.New("pq: deadlock detected"))

	assert.Equal(t, "internal error", err.Error())
	assert.Equal(t, KindInternal, KindOf(err))
}
