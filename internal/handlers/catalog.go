package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/services"
)

// CatalogHandlers exposes the product and category endpoints.
type CatalogHandlers struct {
	catalog services.CatalogService
}

// NewCatalogHandlers constructs a new CatalogHandlers instance.
func NewCatalogHandlers(catalog services.CatalogService) *CatalogHandlers {
	return &CatalogHandlers{catalog: catalog}
}

// ProductRoutes registers the /products endpoints.
func (h *CatalogHandlers) ProductRoutes(r chi.Router) {
	r.Get("/", h.listProducts)
	r.Get("/{productID}", h.getProduct)
	r.Post("/", h.createProduct)
	r.Put("/{productID}", h.updateProduct)
	r.Delete("/{productID}", h.deleteProduct)
}

// CategoryRoutes registers the /categories endpoints.
func (h *CatalogHandlers) CategoryRoutes(r chi.Router) {
	r.Get("/", h.listCategories)
	r.Post("/", h.createCategory)
	r.Delete("/{categoryID}", h.deleteCategory)
}

type productRequest struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Image       string  `json:"image"`
	CategoryID  string  `json:"categoryId"`
}

func (h *CatalogHandlers) listProducts(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	products, err := h.catalog.ListProducts(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"products": products})
}

func (h *CatalogHandlers) getProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	product, found, err := h.catalog.GetProduct(ctx, chi.URLParam(r, "productID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	if !found {
		writeJSONResponse(w, http.StatusNotFound, map[string]any{
			"error":  "product_not_found",
			"status": http.StatusNotFound,
		})
		return
	}
	writeJSONResponse(w, http.StatusOK, product)
}

func (h *CatalogHandlers) createProduct(w http.ResponseWriter, r *http.Request) {
	h.saveProduct(w, r, "")
}

func (h *CatalogHandlers) updateProduct(w http.ResponseWriter, r *http.Request) {
	h.saveProduct(w, r, chi.URLParam(r, "productID"))
}

func (h *CatalogHandlers) saveProduct(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	var req productRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	saved, err := h.catalog.SaveProduct(ctx, domain.Product{
		ID:          id,
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		Image:       req.Image,
		CategoryID:  req.CategoryID,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	status := http.StatusOK
	if id == "" {
		status = http.StatusCreated
	}
	writeJSONResponse(w, status, saved)
}

func (h *CatalogHandlers) deleteProduct(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	removed, err := h.catalog.DeleteProduct(ctx, chi.URLParam(r, "productID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"removed": removed})
}

type categoryRequest struct {
	Name  string `json:"name"`
	Image string `json:"image"`
}

func (h *CatalogHandlers) listCategories(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	categories, err := h.catalog.ListCategories(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"categories": categories})
}

func (h *CatalogHandlers) createCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req categoryRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	saved, err := h.catalog.SaveCategory(ctx, domain.Category{Name: req.Name, Image: req.Image})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, saved)
}

func (h *CatalogHandlers) deleteCategory(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	removed, err := h.catalog.DeleteCategory(ctx, chi.URLParam(r, "categoryID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"removed": removed})
}
