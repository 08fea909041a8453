package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/teka-store/api/internal/platform/httpx"
	"github.com/teka-store/api/internal/platform/observability"
	"github.com/teka-store/api/internal/services"
)

const (
	defaultAPIPrefix = "/api/v1"
	defaultTimeout   = 60 * time.Second
)

// RouterDeps carries everything the HTTP surface needs.
type RouterDeps struct {
	Logger    *zap.Logger
	Orders    services.OrderService
	Catalog   services.CatalogService
	Zones     services.ZoneService
	Wishlists services.WishlistService
}

// NewRouter constructs the chi router with shared middleware and all route
// groups mounted under the API prefix.
func NewRouter(deps RouterDeps) chi.Router {
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Timeout(defaultTimeout))
	r.Use(observability.InjectLoggerMiddleware(logger))
	r.Use(observability.RequestLoggerMiddleware())
	r.Use(observability.RecoveryMiddleware(logger))

	r.NotFound(func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError("route_not_found", fmt.Sprintf("no route for %s", req.URL.Path), http.StatusNotFound))
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, req *http.Request) {
		httpx.WriteError(req.Context(), w, httpx.NewError("method_not_allowed", fmt.Sprintf("method %s not allowed on %s", req.Method, req.URL.Path), http.StatusMethodNotAllowed))
	})

	health := NewHealthHandlers()
	r.Get("/healthz", health.Healthz)

	r.Route(defaultAPIPrefix, func(api chi.Router) {
		if deps.Orders != nil {
			orders := NewOrderHandlers(deps.Orders)
			api.Route("/orders", orders.Routes)
			api.Get("/delivery/quote", orders.quoteDelivery)
		}
		if deps.Catalog != nil {
			catalog := NewCatalogHandlers(deps.Catalog)
			api.Route("/products", catalog.ProductRoutes)
			api.Route("/categories", catalog.CategoryRoutes)
		}
		if deps.Zones != nil {
			api.Route("/zones", NewZoneHandlers(deps.Zones).Routes)
		}
		if deps.Wishlists != nil {
			api.Route("/wishlists", NewWishlistHandlers(deps.Wishlists).Routes)
		}
	})

	return r
}
