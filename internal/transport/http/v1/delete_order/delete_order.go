package deleteorder

import (
	"context"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/commerce/internal/transport/http/respond"
)

// service is an interface for the service layer.
type service interface {
	Delete(ctx context.Context, id int64) error
}

// DeleteOrder handles order deletion.
func DeleteOrder(w http.ResponseWriter, r *http.Request, service service) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.BadRequest(w, r, "invalid order id")

		return
	}

	if err := service.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.NoContent(w)
}
