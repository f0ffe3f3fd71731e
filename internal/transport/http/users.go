package httptransport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/commerce/internal/service/models/user"
	"github.com/corray333/commerce/internal/transport/http/respond"
)

func (h *HTTPTransport) listUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.services.User.List(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusOK, users)
}

func (h *HTTPTransport) getUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.BadRequest(w, r, "invalid user id")

		return
	}

	found, err := h.services.User.GetByID(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusOK, found)
}

func (h *HTTPTransport) createUser(w http.ResponseWriter, r *http.Request) {
	var req user.CreateUserModel
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "failed to decode request body")

		return
	}

	created, err := h.services.User.Create(r.Context(), req)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusCreated, created)
}

func (h *HTTPTransport) updateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.BadRequest(w, r, "invalid user id")

		return
	}

	var req user.UpdateUserModel
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "failed to decode request body")

		return
	}

	updated, err := h.services.User.Update(r.Context(), id, req)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusOK, updated)
}

func (h *HTTPTransport) deleteUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.BadRequest(w, r, "invalid user id")

		return
	}

	if err := h.services.User.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.NoContent(w)
}
