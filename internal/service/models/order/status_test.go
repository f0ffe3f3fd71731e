package order

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseStatus(t *testing.T) {
	tests := []struct {
		label string
		want  Status
	}{
		{"PENDING", StatusPending},
		{"PROCESSING", StatusProcessing},
		{"SHIPPED", StatusShipped},
		{"DELIVERED", StatusDelivered},
		{"CANCELLED", StatusCancelled},
		{"pending", StatusPending},
		{"Shipped", StatusShipped},
		{"dElIvErEd", StatusDelivered},
	}

	for _, tt := range tests {
		t.Run(tt.label, func(t *testing.T) {
			got, err := ParseStatus(tt.label)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseStatus_Invalid(t *testing.T) {
	for _, label := range []string{"", "RETURNED", "CANCELED", "PENDING ", "unknown"} {
		t.Run(label, func(t *testing.T) {
			_, err := ParseStatus(label)
			assert.ErrorIs(t, err, ErrInvalidStatus)
		})
	}
}
