package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teka-store/api/internal/services"
)

// WishlistHandlers exposes the per-customer wishlist endpoints. Customers
// are addressed by phone number, normalised server-side.
type WishlistHandlers struct {
	wishlists services.WishlistService
}

// NewWishlistHandlers constructs a new WishlistHandlers instance.
func NewWishlistHandlers(wishlists services.WishlistService) *WishlistHandlers {
	return &WishlistHandlers{wishlists: wishlists}
}

// Routes registers the /wishlists endpoints.
func (h *WishlistHandlers) Routes(r chi.Router) {
	r.Get("/{phone}", h.list)
	r.Post("/{phone}", h.add)
	r.Delete("/{phone}", h.clear)
	r.Delete("/{phone}/{productID}", h.remove)
}

type wishlistAddRequest struct {
	ProductID string `json:"productId"`
}

func (h *WishlistHandlers) list(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	ids, err := h.wishlists.List(ctx, chi.URLParam(r, "phone"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"productIds": ids})
}

func (h *WishlistHandlers) add(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req wishlistAddRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	entry, err := h.wishlists.Add(ctx, chi.URLParam(r, "phone"), req.ProductID)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"productIds": entry.ProductIDs})
}

func (h *WishlistHandlers) remove(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	entry, err := h.wishlists.Remove(ctx, chi.URLParam(r, "phone"), chi.URLParam(r, "productID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"productIds": entry.ProductIDs})
}

func (h *WishlistHandlers) clear(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	removed, err := h.wishlists.Clear(ctx, chi.URLParam(r, "phone"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"removed": removed})
}
