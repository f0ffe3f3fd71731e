package httptransport

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/corray333/commerce/internal/service/models/product"
	"github.com/corray333/commerce/internal/transport/http/respond"
)

// multipart uploads are capped slightly above the service-side image limit so
// oversized files get a clean validation error instead of a truncated read.
const maxUploadMemory = 6 * 1024 * 1024

func (h *HTTPTransport) listProducts(w http.ResponseWriter, r *http.Request) {
	products, err := h.services.Product.List(r.Context(), r.URL.Query().Get("sort"))
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusOK, products)
}

func (h *HTTPTransport) getProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.BadRequest(w, r, "invalid product id")

		return
	}

	found, err := h.services.Product.GetByID(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusOK, found)
}

func (h *HTTPTransport) createProduct(w http.ResponseWriter, r *http.Request) {
	var req product.CreateProductModel
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "failed to decode request body")

		return
	}

	created, err := h.services.Product.Create(r.Context(), req)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusCreated, created)
}

func (h *HTTPTransport) updateProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.BadRequest(w, r, "invalid product id")

		return
	}

	var req product.UpdateProductModel
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respond.BadRequest(w, r, "failed to decode request body")

		return
	}

	updated, err := h.services.Product.Update(r.Context(), id, req)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusOK, updated)
}

func (h *HTTPTransport) deleteProduct(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.BadRequest(w, r, "invalid product id")

		return
	}

	if err := h.services.Product.Delete(r.Context(), id); err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.NoContent(w)
}

func (h *HTTPTransport) uploadProductImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.BadRequest(w, r, "invalid product id")

		return
	}

	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		respond.BadRequest(w, r, "failed to parse multipart form")

		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		respond.BadRequest(w, r, "image file is required")

		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		respond.BadRequest(w, r, "failed to read image file")

		return
	}

	updated, err := h.services.Product.UploadImage(
		r.Context(), id, header.Filename, header.Header.Get("Content-Type"), data,
	)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	respond.JSON(w, r, http.StatusOK, updated)
}

func (h *HTTPTransport) getProductImage(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		respond.BadRequest(w, r, "invalid product id")

		return
	}

	data, contentType, err := h.services.Product.GetImage(r.Context(), id)
	if err != nil {
		respond.Error(w, r, err)

		return
	}

	w.Header().Set("Content-Type", contentType)
	if _, err := w.Write(data); err != nil {
		slog.ErrorContext(r.Context(), "Error writing image response", "product_id", id, "error", err)
	}
}
