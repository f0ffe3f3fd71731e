package updatestatus

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/commerce/internal/service/models/order"
	"github.com/corray333/commerce/internal/transport/http/respond"
	"github.com/corray333/commerce/internal/transport/http/v1/converters"
)

// service is an interface for the service layer.
type service interface {
	UpdateStatus(ctx context.Context, id int64, statusLabel string) (order.Order, error)
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

// UpdateStatus handles order status changes. A missing or empty status is
// rejected before the service is called.
func UpdateStatus(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.BadRequest(w, r, "invalid order id")

		return
	}

	var req updateStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "failed to decode request body")

		return
	}
	if req.Status == "" {
		respond.BadRequest(w, r, "status cannot be empty")

		return
	}

	updated, err := service.UpdateStatus(r.Context(), id, req.Status)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusOK, converters.OrderToResponse(updated))
}
