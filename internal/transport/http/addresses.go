package httptransport

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/commerce/internal/service/models/address"
	"github.com/corray333/commerce/internal/transport/http/respond"
)

func (h *HTTPTransport) listAddresses(w http.ResponseWriter, r *http.Request) {
	addresses, err := h.services.Address.List(r.Context())
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusOK, addresses)
}

func (h *HTTPTransport) getAddress(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.BadRequest(w, r, "invalid address id")

		return
	}

	found, err := h.services.Address.GetByID(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusOK, found)
}

func (h *HTTPTransport) createAddress(w http.ResponseWriter, r *http.Request) {
	var req address.CreateAddressModel
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "failed to decode request body")

		return
	}

	created, err := h.services.Address.Create(r.Context(), req)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusCreated, created)
}

func (h *HTTPTransport) updateAddress(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.BadRequest(w, r, "invalid address id")

		return
	}

	var req address.UpdateAddressModel
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "failed to decode request body")

		return
	}

	updated, err := h.services.Address.Update(r.Context(), id, req)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusOK, updated)
}

func (h *HTTPTransport) deleteAddress(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.BadRequest(w, r, "invalid address id")

		return
	}

	if err := h.services.Address.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.NoContent(w)
}
