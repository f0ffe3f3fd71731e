package createorder

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/corray333/commerce/internal/service/models/order"
	"github.com/corray333/commerce/internal/transport/http/respond"
	"github.com/corray333/commerce/internal/transport/http/v1/converters"
)

// service is an interface for the service layer.
type service interface {
	Create(ctx context.Context, req order.CreateOrderModel) (order.Order, error)
}

// CreateOrder handles order creation requests.
func CreateOrder(w http.ResponseWriter, r *http.Request, service service) {
	var req order.CreateOrderModel
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "failed to decode request body")

		return
	}

	created, err := service.Create(r.Context(), req)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusCreated, converters.OrderToResponse(created))
}
