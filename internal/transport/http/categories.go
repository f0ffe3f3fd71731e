package httptransport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/commerce/internal/transport/http/respond"
)

type categoryRequest struct {
	Name string `json:"name"`
}

func parseCategoryID(r *http.Request) (uint8, error) {
	id, err := strconv.ParseUint(chi.URLParam(r, "id"), 10, 8)
	if err != nil {
		return 0, err
	}

	return uint8(id), nil
}

func (h *HTTPTransport) listCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.services.Category.List(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusOK, categories)
}

func (h *HTTPTransport) getCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseCategoryID(r)
	if err != nil {
		respond.BadRequest(w, r, "invalid category id")

		return
	}

	found, err := h.services.Category.GetByID(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusOK, found)
}

func (h *HTTPTransport) createCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "failed to decode request body")

		return
	}

	created, err := h.services.Category.Create(r.Context(), req.Name)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusCreated, created)
}

func (h *HTTPTransport) updateCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseCategoryID(r)
	if err != nil {
		respond.BadRequest(w, r, "invalid category id")

		return
	}

	var req categoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "failed to decode request body")

		return
	}

	updated, err := h.services.Category.Update(r.Context(), id, req.Name)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusOK, updated)
}

func (h *HTTPTransport) deleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := parseCategoryID(r)
	if err != nil {
		respond.BadRequest(w, r, "invalid category id")

		return
	}

	if err := h.services.Category.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.NoContent(w)
}
