package listorders

import (
	"context"
	"net/http"

	"github.com/gorilla/schema"

	"github.com/corray333/commerce/internal/service/models/order"
	"github.com/corray333/commerce/internal/transport/http/respond"
	"github.com/corray333/commerce/internal/transport/http/v1/converters"
)

// service is an interface for the service layer.
type service interface {
	GetOrders(ctx context.Context) ([]order.Order, error)
	GetOrdersByUserID(ctx context.Context, userID int64) ([]order.Order, error)
	GetOrdersByStatus(ctx context.Context, statusLabel string) ([]order.Order, error)
}

type listOrdersRequest struct {
	UserID int64  `schema:"userId,omitempty"`
	Status string `schema:"status,omitempty"`
}

// ListOrders handles order listing. The userId filter takes precedence over
// the status filter when both are present.
func ListOrders(w http.ResponseWriter, r *http.Request, service service) {
	decoder := schema.NewDecoder()
	query := &listOrdersRequest{}
	if err := decoder.Decode(query, r.URL.Query()); err != nil {
		respond.BadRequest(w, r, "failed to decode query parameters")

		return
	}

	var (
		orders []order.Order
		err    error
	)

	switch {
	case query.UserID > 0:
		orders, err = service.GetOrdersByUserID(r.Context(), query.UserID)
	case query.Status != "":
		orders, err = service.GetOrdersByStatus(r.Context(), query.Status)
	default:
		orders, err = service.GetOrders(r.Context())
	}
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusOK, converters.OrdersToResponse(orders))
}
