package updatestatus

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"

	"github.com/corray333/commerce/internal/service/apperr"
	"github.com/corray333/commerce/internal/service/models/order"
)

type stubService struct {
	gotID    int64
	gotLabel string
	out      order.Order
	err      error
}

func (s *stubService) UpdateStatus(_ context.Context, id int64, statusLabel string) (order.Order, error) {
	s.gotID = id
	s.gotLabel = statusLabel

	return s.out, s.err
}

func serve(stub *stubService, target, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Patch("/orders/{id}/status", func(w http.ResponseWriter, r *http.Request) {
		UpdateStatus(w, r, stub)
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPatch, target, strings.NewReader(body))
	router.ServeHTTP(rec, req)

	return rec
}

func TestUpdateStatus(t *testing.T) {
	stub := &stubService{out: order.Order{ID: 7, Status: order.StatusShipped}}

	rec := serve(stub, "/orders/7/status", `{"status":"shipped"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(7), stub.gotID)
	assert.Equal(t, "shipped", stub.gotLabel)
	assert.Contains(t, rec.Body.String(), `"status":"SHIPPED"`)
}

func TestUpdateStatus_EmptyStatus(t *testing.T) {
	stub := &stubService{}

	rec := serve(stub, "/orders/7/status", `{}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Zero(t, stub.gotID, "service must not be called")
}

func TestUpdateStatus_MalformedBody(t *testing.T) {
	rec := serve(&stubService{}, "/orders/7/status", `{not json`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatus_InvalidID(t *testing.T) {
	rec := serve(&stubService{}, "/orders/abc/status", `{"status":"SHIPPED"}`)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateStatus_ServiceErrors(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
	}{
		{"unknown label", apperr.InvalidArgument("invalid order status: RETURNED"), http.StatusBadRequest},
		{"missing order", apperr.NotFound("Order", 7), http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(&stubService{err: tt.err}, "/orders/7/status", `{"status":"RETURNED"}`)
			assert.Equal(t, tt.wantStatus, rec.Code)
		})
	}
}
