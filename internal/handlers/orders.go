package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/platform/httpx"
	"github.com/teka-store/api/internal/services"
)

// OrderHandlers exposes the order lifecycle endpoints.
type OrderHandlers struct {
	orders services.OrderService
}

// NewOrderHandlers constructs a new OrderHandlers instance.
func NewOrderHandlers(orders services.OrderService) *OrderHandlers {
	return &OrderHandlers{orders: orders}
}

// Routes registers the /orders endpoints.
func (h *OrderHandlers) Routes(r chi.Router) {
	r.Post("/", h.placeOrder)
	r.Get("/", h.listOrders)
	r.Get("/{orderID}", h.getOrder)
	r.Patch("/{orderID}/status", h.updateStatus)
	r.Post("/{orderID}/message", h.sendMessage)
	r.Delete("/{orderID}", h.deleteOrder)
}

type orderLineRequest struct {
	ProductID string `json:"productId"`
	Quantity  int    `json:"quantity"`
}

type placeOrderRequest struct {
	CustomerName string             `json:"customerName"`
	Phone        string             `json:"phone"`
	City         string             `json:"city"`
	Area         *string            `json:"area,omitempty"`
	Address      string             `json:"address"`
	Notes        string             `json:"notes"`
	Lines        []orderLineRequest `json:"lines"`
}

type orderLineResponse struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name,omitempty"`
	Price     float64 `json:"price,omitempty"`
	Quantity  int     `json:"quantity"`
}

type orderResponse struct {
	ID           string              `json:"id"`
	CustomerName string              `json:"customerName"`
	Phone        string              `json:"phone"`
	City         string              `json:"city"`
	Address      string              `json:"address"`
	Notes        string              `json:"notes,omitempty"`
	Lines        []orderLineResponse `json:"lines"`
	TotalPrice   float64             `json:"totalPrice"`
	Status       string              `json:"status"`
	Date         string              `json:"date"`
	HasWishlist  bool                `json:"hasWishlist"`
	NextStatuses []string            `json:"nextStatuses,omitempty"`
}

func toOrderResponse(order domain.Order, includeNext bool) orderResponse {
	lines := make([]orderLineResponse, 0, len(order.Lines))
	for _, l := range order.Lines {
		lines = append(lines, orderLineResponse{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
		})
	}
	resp := orderResponse{
		ID:           order.ID,
		CustomerName: order.CustomerName,
		Phone:        order.Phone,
		City:         order.City,
		Address:      order.Address,
		Notes:        order.Notes,
		Lines:        lines,
		TotalPrice:   order.TotalPrice,
		Status:       string(order.Status),
		Date:         order.Date,
		HasWishlist:  order.HasWishlist,
	}
	if includeNext {
		for _, s := range domain.NextStatuses(order.Status) {
			resp.NextStatuses = append(resp.NextStatuses, string(s))
		}
	}
	return resp
}

func (h *OrderHandlers) placeOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req placeOrderRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	lines := make([]domain.CartLine, 0, len(req.Lines))
	for _, l := range req.Lines {
		lines = append(lines, domain.CartLine{ProductID: l.ProductID, Quantity: l.Quantity})
	}

	created, err := h.orders.PlaceOrder(ctx, services.PlaceOrderCommand{
		CustomerName: req.CustomerName,
		Phone:        req.Phone,
		City:         req.City,
		Area:         req.Area,
		Address:      req.Address,
		Notes:        req.Notes,
		Lines:        lines,
	})
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusCreated, toOrderResponse(created, false))
}

func (h *OrderHandlers) listOrders(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		orders []domain.Order
		err    error
	)
	if phone := strings.TrimSpace(r.URL.Query().Get("phone")); phone != "" {
		orders, err = h.orders.ListByPhone(ctx, phone)
	} else {
		orders, err = h.orders.List(ctx)
	}
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	payload := make([]orderResponse, 0, len(orders))
	for _, order := range orders {
		payload = append(payload, toOrderResponse(order, false))
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"orders": payload})
}

func (h *OrderHandlers) getOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	order, err := h.orders.GetByID(ctx, chi.URLParam(r, "orderID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, toOrderResponse(order, true))
}

type updateStatusRequest struct {
	Status string `json:"status"`
}

func (h *OrderHandlers) updateStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req updateStatusRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	updated, err := h.orders.UpdateStatus(ctx, chi.URLParam(r, "orderID"), domain.OrderStatus(strings.TrimSpace(req.Status)))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, toOrderResponse(updated, true))
}

type sendMessageRequest struct {
	Text string `json:"text"`
}

func (h *OrderHandlers) sendMessage(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req sendMessageRequest
	if !decodeJSONBody(w, r, &req) {
		return
	}

	order, err := h.orders.SendCustomMessage(ctx, chi.URLParam(r, "orderID"), req.Text)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusAccepted, map[string]any{
		"orderId": order.ID,
		"queued":  true,
	})
}

func (h *OrderHandlers) deleteOrder(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	removed, err := h.orders.Delete(ctx, chi.URLParam(r, "orderID"))
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{"removed": removed})
}

func (h *OrderHandlers) quoteDelivery(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	city := strings.TrimSpace(r.URL.Query().Get("city"))
	if city == "" {
		httpx.WriteError(ctx, w, httpx.NewError("invalid_request", "city query parameter is required", http.StatusBadRequest))
		return
	}
	var area *string
	if raw := strings.TrimSpace(r.URL.Query().Get("area")); raw != "" {
		area = &raw
	}

	quote, err := h.orders.QuoteDelivery(ctx, city, area)
	if err != nil {
		writeServiceError(ctx, w, err)
		return
	}
	writeJSONResponse(w, http.StatusOK, map[string]any{
		"price":   quote.Price,
		"matched": quote.Matched,
	})
}
