// Package handlers exposes the HTTP surface of the storefront API.
package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/teka-store/api/internal/platform/httpx"
	"github.com/teka-store/api/internal/services"
)

const maxBodySize = 64 * 1024

func writeJSONResponse(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func decodeJSONBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		httpx.WriteError(r.Context(), w, httpx.NewError("invalid_request", "request body is not valid JSON", http.StatusBadRequest))
		return false
	}
	return true
}

// writeServiceError maps service error sentinels onto the JSON error
// envelope.
func writeServiceError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, services.ErrOrderNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("order_not_found", err.Error(), http.StatusNotFound))
	case errors.Is(err, services.ErrZoneNotFound):
		httpx.WriteError(ctx, w, httpx.NewError("zone_not_found", err.Error(), http.StatusNotFound))
	case errors.Is(err, services.ErrOrderInvalidTransition):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_transition", err.Error(), http.StatusConflict))
	case errors.Is(err, services.ErrZoneCityConflict):
		httpx.WriteError(ctx, w, httpx.NewError("zone_city_conflict", err.Error(), http.StatusConflict))
	case errors.Is(err, services.ErrOrderInvalidInput),
		errors.Is(err, services.ErrCartInvalidQuantity),
		errors.Is(err, services.ErrCartLineOutOfRange),
		errors.Is(err, services.ErrCatalogInvalidInput),
		errors.Is(err, services.ErrZoneInvalidInput),
		errors.Is(err, services.ErrWishlistInvalidInput):
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", err.Error(), http.StatusBadRequest))
	default:
		httpx.WriteError(ctx, w, httpx.NewError("internal_error", "internal server error", http.StatusInternalServerError))
	}
}
