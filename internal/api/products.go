package api

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/gaayatricouture/couture/internal/catalog"
	"github.com/gaayatricouture/couture/internal/editor"
	"github.com/gaayatricouture/couture/internal/imaging"
	"github.com/gaayatricouture/couture/internal/model"
	"github.com/gaayatricouture/couture/internal/store"
)

// ProductsHandler handles product CRUD endpoints.
type ProductsHandler struct {
	Store  store.ProductStore
	Editor *editor.Service
	logger zerolog.Logger
}

type createProductRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Price       string `json:"price"`
	Category    string `json:"category"`
	Section     string `json:"section"`
	ImageURL    string `json:"image_url"`
	IsNew       bool   `json:"is_new"`
}

type updateProductRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       string  `json:"price"`
	Category    string  `json:"category"`
	ImageURL    *string `json:"image_url"`
}

// List handles GET /api/products. Without a section every product is listed.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	var (
		items []model.Product
		err   error
	)
	if s := q.Get("section"); s != "" {
		section, perr := model.ParseSection(s)
		if perr != nil {
			jsonError(w, http.StatusBadRequest, perr.Error())
			return
		}
		items, err = h.Store.ListProducts(r.Context(), section)
	} else {
		items, err = h.Store.ListAllProducts(r.Context())
	}
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to list products")
		jsonError(w, http.StatusInternalServerError, "failed to list products")
		return
	}

	items = catalog.Filter(items, q.Get("category"))
	if items == nil {
		items = []model.Product{}
	}
	jsonResponse(w, http.StatusOK, items)
}

// Get handles GET /api/products/{id}.
func (h *ProductsHandler) Get(w http.ResponseWriter, r *http.Request) {
	p, err := h.Store.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get product")
		return
	}
	if p == nil {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}
	jsonResponse(w, http.StatusOK, p)
}

// Create handles POST /api/products.
func (h *ProductsHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createProductRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	section, err := model.ParseSection(req.Section)
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	form := editor.Form{
		Title:       req.Title,
		Description: req.Description,
		Price:       req.Price,
		Category:    req.Category,
		Section:     section,
		IsNew:       req.IsNew,
	}
	if err := form.Validate(); err != nil {
		jsonFailure(w, err, "failed to create product")
		return
	}

	p, err := h.Store.CreateProduct(r.Context(), form.Product(req.ImageURL))
	if err != nil {
		h.logger.Error().Err(err).Msg("failed to create product")
		jsonFailure(w, err, "failed to create product")
		return
	}

	h.logger.Info().Str("product_id", p.ID).Str("email", GetSession(r.Context()).Email).Msg("product created")
	jsonResponse(w, http.StatusCreated, p)
}

// Update handles PUT /api/products/{id}. An absent image_url keeps the
// current image.
func (h *ProductsHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	var req updateProductRequest
	if err := decodeJSON(r, &req); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	existing, err := h.Store.GetProduct(r.Context(), id)
	if err != nil {
		jsonError(w, http.StatusInternalServerError, "failed to get product")
		return
	}
	if existing == nil {
		jsonError(w, http.StatusNotFound, "product not found")
		return
	}

	form := editor.FormFromProduct(existing)
	form.Title = req.Title
	form.Description = req.Description
	form.Price = req.Price
	form.Category = req.Category
	if err := form.Validate(); err != nil {
		jsonFailure(w, err, "failed to update product")
		return
	}

	imageURL := existing.ImageURL
	if req.ImageURL != nil {
		imageURL = *req.ImageURL
	}

	if err := h.Store.UpdateProduct(r.Context(), id, form.Update(imageURL)); err != nil {
		h.logger.Error().Err(err).Str("product_id", id).Msg("failed to update product")
		jsonFailure(w, err, "failed to update product")
		return
	}

	updated, err := h.Store.GetProduct(r.Context(), id)
	if err != nil || updated == nil {
		jsonError(w, http.StatusInternalServerError, "failed to get product")
		return
	}
	jsonResponse(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/products/{id}.
func (h *ProductsHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	if err := h.Store.DeleteProduct(r.Context(), id); err != nil {
		if !errors.Is(err, model.ErrNotFound) {
			h.logger.Error().Err(err).Str("product_id", id).Msg("failed to delete product")
		}
		jsonFailure(w, err, "failed to delete product")
		return
	}

	h.logger.Info().Str("product_id", id).Str("email", GetSession(r.Context()).Email).Msg("product deleted")
	w.WriteHeader(http.StatusNoContent)
}

// UploadImage handles PUT /api/products/{id}/image.
func (h *ProductsHandler) UploadImage(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, imaging.MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(imaging.MaxUploadBytes); err != nil {
		jsonError(w, http.StatusBadRequest, "invalid multipart form")
		return
	}

	upload, err := editor.UploadFromRequest(r, "image")
	if err != nil {
		jsonError(w, http.StatusBadRequest, err.Error())
		return
	}

	p, err := h.Editor.SetImage(r.Context(), r.PathValue("id"), upload)
	if err != nil {
		jsonFailure(w, err, "failed to store image")
		return
	}
	jsonResponse(w, http.StatusOK, p)
}
