package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/services"
)

// ZoneHandlers exposes the delivery zone configuration endpoints.
type ZoneHandlers struct {
	zones services.ZoneService
}

// NewZoneHandlers constructs a new ZoneHandlers instance.
func NewZoneHandlers(zones services.ZoneService) *ZoneHandlers {
	return &ZoneHandlers{zones: zones}
}

// Routes registers the /zones endpoints.
func (h *ZoneHandlers) Routes(r chi.Router) {
	r.Get("/", h.listZones)
	r.Get("/{zoneID}", h.getZone)
	r.Post("/", h.createZone)
	r.Put("/{zoneID}", h.updateZone)
	r.Delete("/{zoneID}", h.deleteZone)
}

type zoneRequest struct {
	Name   string   `json:"name"`
	Cities []string `json:"cities"`
	Price  float64  `json:"price"`
}

func (h *ZoneHandlers) listZones(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	zones, err := h.zones.List(ctx)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"zones": zones})
}

func (h *ZoneHandlers) getZone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	zone, err := h.zones.GetByID(ctx, chi.URLParam(r, "zoneID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, zone)
}

func (h *ZoneHandlers) createZone(w http.ResponseWriter, r *http.Request) {
	h.saveZone(w, r, "")
}

func (h *ZoneHandlers) updateZone(w http.ResponseWriter, r *http.Request) {
	h.saveZone(w, r, chi.URLParam(r, "zoneID"))
}

func (h *ZoneHandlers) saveZone(w http.ResponseWriter, r *http.Request, id string) {
	ctx := r.Context()

	var req zoneRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	saved, err := h.zones.Save(ctx, domain.DeliveryZone{
		ID:     id,
		Name:   req.Name,
		Cities: req.Cities,
		Price:  req.Price,
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

func (h *ZoneHandlers) deleteZone(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	removed, err := h.zones.Delete(ctx, chi.URLParam(r, "zoneID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"removed": removed})
}
