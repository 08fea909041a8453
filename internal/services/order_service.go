package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/repositories"
)

var (
	// ErrOrderInvalidInput indicates the caller supplied invalid order
	// parameters.
	ErrOrderInvalidInput = errors.New("order: invalid input")
	// ErrOrderNotFound indicates the requested order does not exist.
	ErrOrderNotFound = errors.New("order: not found")
	// ErrOrderInvalidTransition indicates a status change rejected by the
	// strict transition rules.
	ErrOrderInvalidTransition = errors.New("order: invalid status transition")
)

// PlaceOrderCommand carries everything needed to commit a priced order.
type PlaceOrderCommand struct {
	CustomerName string
	Phone        string
	City         string
	Area         *string
	Address      string
	Notes        string
	Lines        []domain.CartLine
}

// DeliveryQuote is the resolved delivery fee for a destination.
type DeliveryQuote struct {
	Price   float64
	Matched bool
}

// NotificationQueue accepts tasks for background dispatch.
type NotificationQueue interface {
	Enqueue(task NotificationTask) bool
}

// OrderService drives the order lifecycle: pricing, commit, status workflow,
// and the notification hand-off.
type OrderService interface {
	PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (domain.Order, error)
	GetByID(ctx context.Context, id string) (domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByPhone(ctx context.Context, phone string) ([]domain.Order, error)
	UpdateStatus(ctx context.Context, id string, next domain.OrderStatus) (domain.Order, error)
	NextStatuses(current domain.OrderStatus) []domain.OrderStatus
	SendCustomMessage(ctx context.Context, id, text string) (domain.Order, error)
	Delete(ctx context.Context, id string) (bool, error)
	QuoteDelivery(ctx context.Context, city string, area *string) (DeliveryQuote, error)
}

// OrderServiceDeps bundles collaborators required to construct an order
// service instance.
type OrderServiceDeps struct {
	Orders    repositories.OrderRepository
	Zones     repositories.ZoneRepository
	Wishlists repositories.WishlistRepository
	Cart      CartService
	// Catalog, when set, supplies the name/price snapshots stamped onto
	// committed order lines.
	Catalog   CatalogLookup
	Queue     NotificationQueue
	AreaTiers domain.AreaTiers
	Logger    *zap.Logger
	Clock     func() time.Time
	// StrictTransitions rejects status changes outside the forward-only
	// workflow. Off by default: operators may move an order to any status.
	StrictTransitions bool
}

type orderService struct {
	orders    repositories.OrderRepository
	zones     repositories.ZoneRepository
	wishlists repositories.WishlistRepository
	cart      CartService
	catalog   CatalogLookup
	queue     NotificationQueue
	areaTiers domain.AreaTiers
	logger    *zap.Logger
	clock     func() time.Time
	strict    bool
}

// NewOrderService wires dependencies into an OrderService implementation.
func NewOrderService(deps OrderServiceDeps) (OrderService, error) {
	if deps.Orders == nil {
		return nil, errors.New("order service: order repository is required")
	}
	if deps.Zones == nil {
		return nil, errors.New("order service: zone repository is required")
	}
	if deps.Cart == nil {
		return nil, errors.New("order service: cart service is required")
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &orderService{
		orders:    deps.Orders,
		zones:     deps.Zones,
		wishlists: deps.Wishlists,
		cart:      deps.Cart,
		catalog:   deps.Catalog,
		queue:     deps.Queue,
		areaTiers: deps.AreaTiers,
		logger:    logger,
		clock:     clock,
		strict:    deps.StrictTransitions,
	}, nil
}

// PlaceOrder prices the cart against the catalog and delivery table, then
// commits the order. The delivery fee and total are fixed at commit time and
// never recomputed.
func (s *orderService) PlaceOrder(ctx context.Context, cmd PlaceOrderCommand) (domain.Order, error) {
	if err := validatePlaceOrder(cmd); err != nil {
		return domain.Order{}, err
	}

	quote, err := s.QuoteDelivery(ctx, cmd.City, cmd.Area)
	if err != nil {
		return domain.Order{}, err
	}

	cart := domain.Cart{Lines: cmd.Lines}
	total, err := s.cart.Total(ctx, cart, quote.Price)
	if err != nil {
		return domain.Order{}, err
	}

	lines := make([]domain.OrderLine, 0, len(cmd.Lines))
	for _, l := range cmd.Lines {
		line := domain.OrderLine{ProductID: l.ProductID, Quantity: l.Quantity}
		if s.catalog != nil {
			if product, found, err := s.catalog.GetProduct(ctx, l.ProductID); err == nil && found {
				line.Name = product.Name
				line.Price = product.Price
			}
		}
		lines = append(lines, line)
	}

	order := domain.Order{
		CustomerName: strings.TrimSpace(cmd.CustomerName),
		Phone:        strings.TrimSpace(cmd.Phone),
		City:         strings.TrimSpace(cmd.City),
		Address:      strings.TrimSpace(cmd.Address),
		Notes:        strings.TrimSpace(cmd.Notes),
		Lines:        lines,
		TotalPrice:   total,
		Status:       domain.StatusPending,
	}

	created, err := s.orders.Create(ctx, order)
	if err != nil {
		return domain.Order{}, err
	}

	s.logger.Info("order placed",
		zap.String("order_id", created.ID),
		zap.String("city", created.City),
		zap.Float64("total", created.TotalPrice),
		zap.Bool("zone_matched", quote.Matched),
	)

	s.enqueue(NotificationTask{
		Order:  created,
		Status: created.Status,
		Event:  orderEventCreated,
	})
	return created, nil
}

func (s *orderService) GetByID(ctx context.Context, id string) (domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return domain.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
		}
		return domain.Order{}, err
	}
	s.annotateWishlist(ctx, &order)
	return order, nil
}

func (s *orderService) List(ctx context.Context) ([]domain.Order, error) {
	orders, err := s.orders.List(ctx)
	if err != nil {
		return nil, err
	}
	keys := s.wishlistKeys(ctx)
	for i := range orders {
		orders[i].HasWishlist = keys[WishlistKey(orders[i].Phone)]
	}
	return orders, nil
}

func (s *orderService) ListByPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	if strings.TrimSpace(phone) == "" {
		return nil, fmt.Errorf("%w: phone is required", ErrOrderInvalidInput)
	}
	return s.orders.ListByPhone(ctx, phone)
}

// UpdateStatus commits the status change, then hands the updated order to
// the background dispatcher. Notification health never affects the commit.
// The transition check runs inside the repository transaction, so concurrent
// updates cannot both validate against the same stale status.
func (s *orderService) UpdateStatus(ctx context.Context, id string, next domain.OrderStatus) (domain.Order, error) {
	if !domain.ValidStatus(next) {
		return domain.Order{}, fmt.Errorf("%w: unknown status %q", ErrOrderInvalidInput, next)
	}

	var prev domain.OrderStatus
	guard := func(current domain.OrderStatus) error {
		prev = current
		if s.strict && !domain.CanTransition(current, next) {
			return fmt.Errorf("%w: %s -> %s", ErrOrderInvalidTransition, current, next)
		}
		return nil
	}

	updated, err := s.orders.UpdateStatus(ctx, id, next, guard)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return domain.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
		}
		return domain.Order{}, err
	}

	s.logger.Info("order status updated",
		zap.String("order_id", id),
		zap.String("from", string(prev)),
		zap.String("to", string(next)),
	)

	s.enqueue(NotificationTask{
		Order:      updated,
		Status:     next,
		PrevStatus: prev,
		Event:      orderEventStatusChanged,
		Notify:     true,
	})
	return updated, nil
}

func (s *orderService) NextStatuses(current domain.OrderStatus) []domain.OrderStatus {
	return domain.NextStatuses(current)
}

// SendCustomMessage queues an operator-written message to the order's
// customer over every channel.
func (s *orderService) SendCustomMessage(ctx context.Context, id, text string) (domain.Order, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return domain.Order{}, fmt.Errorf("%w: message text is required", ErrOrderInvalidInput)
	}
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) {
			return domain.Order{}, fmt.Errorf("%w: %s", ErrOrderNotFound, id)
		}
		return domain.Order{}, err
	}
	s.enqueue(NotificationTask{
		Order:      order,
		Status:     order.Status,
		CustomText: text,
	})
	return order, nil
}

func (s *orderService) Delete(ctx context.Context, id string) (bool, error) {
	return s.orders.Delete(ctx, id)
}

// QuoteDelivery resolves the delivery fee for a destination from the
// configured zones and the capital's area tiers.
func (s *orderService) QuoteDelivery(ctx context.Context, city string, area *string) (DeliveryQuote, error) {
	zones, err := s.zones.List(ctx)
	if err != nil {
		return DeliveryQuote{}, err
	}
	table := domain.NewPricingTable(zones, s.areaTiers)
	price, matched := table.Resolve(city, area)
	return DeliveryQuote{Price: price, Matched: matched}, nil
}

func (s *orderService) enqueue(task NotificationTask) {
	if s.queue == nil {
		return
	}
	s.queue.Enqueue(task)
}

func (s *orderService) annotateWishlist(ctx context.Context, order *domain.Order) {
	if s.wishlists == nil {
		return
	}
	entry, err := s.wishlists.Get(ctx, WishlistKey(order.Phone))
	if err != nil {
		return
	}
	order.HasWishlist = len(entry.ProductIDs) > 0
}

func (s *orderService) wishlistKeys(ctx context.Context) map[string]bool {
	keys := make(map[string]bool)
	if s.wishlists == nil {
		return keys
	}
	list, err := s.wishlists.ListKeys(ctx)
	if err != nil {
		s.logger.Warn("list wishlist keys failed", zap.Error(err))
		return keys
	}
	for _, key := range list {
		keys[key] = true
	}
	return keys
}

func validatePlaceOrder(cmd PlaceOrderCommand) error {
	if strings.TrimSpace(cmd.CustomerName) == "" {
		return fmt.Errorf("%w: customer name is required", ErrOrderInvalidInput)
	}
	if strings.TrimSpace(cmd.Phone) == "" {
		return fmt.Errorf("%w: phone is required", ErrOrderInvalidInput)
	}
	if strings.TrimSpace(cmd.City) == "" {
		return fmt.Errorf("%w: city is required", ErrOrderInvalidInput)
	}
	if len(cmd.Lines) == 0 {
		return fmt.Errorf("%w: at least one cart line is required", ErrOrderInvalidInput)
	}
	for _, line := range cmd.Lines {
		if line.Quantity < 1 {
			return fmt.Errorf("%w: %d", ErrCartInvalidQuantity, line.Quantity)
		}
		if strings.TrimSpace(line.ProductID) == "" {
			return fmt.Errorf("%w: product id is required", ErrOrderInvalidInput)
		}
	}
	return nil
}
