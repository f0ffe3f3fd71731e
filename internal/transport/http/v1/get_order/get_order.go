package getorder

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/commerce/internal/service/models/order"
	"github.com/corray333/commerce/internal/transport/http/respond"
	"github.com/corray333/commerce/internal/transport/http/v1/converters"
)

// service is an interface for the service layer.
type service interface {
	GetOrderByID(ctx context.Context, id int64) (order.Order, error)
}

// GetOrder handles single order retrieval with items.
func GetOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.BadRequest(w, r, "invalid order id")

		return
	}

	found, err := service.GetOrderByID(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusOK, converters.OrderToResponse(found))
}
