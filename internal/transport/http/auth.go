package httptransport

import (
	"encoding/json"
	"net/http"

	"github.com/corray333/commerce/internal/service/models/auth"
	"github.com/corray333/commerce/internal/transport/http/respond"
)

func (h *HTTPTransport) register(w http.ResponseWriter, r *http.Request) {
	var req auth.RegisterModel
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "failed to decode request body")

		return
	}

	token, err := h.services.Auth.Register(r.Context(), req)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusCreated, token)
}

func (h *HTTPTransport) login(w http.ResponseWriter, r *http.Request) {
	var req auth.LoginModel
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "failed to decode request body")

		return
	}

	token, err := h.services.Auth.Login(r.Context(), req)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusOK, token)
}
