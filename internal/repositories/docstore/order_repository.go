package docstore

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/platform/store"
	"github.com/teka-store/api/internal/repositories"
)

// firstOrderID is the id assigned to the first order ever created.
const firstOrderID = 100

// OrderRepositoryDeps bundles the dependencies required by the order
// repository.
type OrderRepositoryDeps struct {
	Store store.DocumentStore
	Clock func() time.Time
}

type orderRepository struct {
	store store.DocumentStore
	clock func() time.Time
}

// NewOrderRepository constructs the document-store backed order repository.
func NewOrderRepository(deps OrderRepositoryDeps) (repositories.OrderRepository, error) {
	if deps.Store == nil {
		return nil, errors.New("order repository: store is required")
	}
	clock := deps.Clock
	if clock == nil {
		clock = time.Now
	}
	return &orderRepository{store: deps.Store, clock: clock}, nil
}

// Create assigns the next sequential id inside a transaction so concurrent
// placements never collide, then persists the order.
func (r *orderRepository) Create(ctx context.Context, order domain.Order) (domain.Order, error) {
	now := r.clock()
	if order.Date == "" {
		order.Date = domain.Today(now)
	}
	if !domain.ValidStatus(order.Status) {
		order.Status = domain.StatusPending
	}

	var created domain.Order
	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		docs, err := tx.ListAll(store.CollectionOrders)
		if err != nil {
			return err
		}
		next := firstOrderID
		for _, doc := range docs {
			if id, err := strconv.Atoi(doc.ID); err == nil && id >= next {
				next = id + 1
			}
		}
		order.ID = strconv.Itoa(next)
		created = order
		return tx.Put(store.CollectionOrders, order.ID, encodeOrder(order))
	})
	if err != nil {
		return domain.Order{}, fmt.Errorf("create order: %w", err)
	}
	return created, nil
}

func (r *orderRepository) GetByID(ctx context.Context, id string) (domain.Order, error) {
	doc, err := r.store.Get(ctx, store.CollectionOrders, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Order{}, fmt.Errorf("%w: %s", repositories.ErrOrderNotFound, id)
		}
		return domain.Order{}, fmt.Errorf("get order %s: %w", id, err)
	}
	return decodeOrder(doc, r.clock()), nil
}

func (r *orderRepository) List(ctx context.Context) ([]domain.Order, error) {
	docs, err := r.store.ListAll(ctx, store.CollectionOrders)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	now := r.clock()
	orders := make([]domain.Order, 0, len(docs))
	for _, doc := range docs {
		orders = append(orders, decodeOrder(doc, now))
	}
	sortOrders(orders)
	return orders, nil
}

func (r *orderRepository) ListByPhone(ctx context.Context, phone string) ([]domain.Order, error) {
	want := digitsOnly(phone)
	if want == "" {
		return []domain.Order{}, nil
	}
	orders, err := r.List(ctx)
	if err != nil {
		return nil, err
	}
	matched := orders[:0]
	for _, order := range orders {
		if digitsOnly(order.Phone) == want {
			matched = append(matched, order)
		}
	}
	return matched, nil
}

// UpdateStatus reads, validates and writes in one transaction so two
// concurrent changes can never both pass the guard against a stale status.
func (r *orderRepository) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, guard func(current domain.OrderStatus) error) (domain.Order, error) {
	now := r.clock()
	var updated domain.Order
	var guardErr error
	err := r.store.RunTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
		doc, err := tx.Get(store.CollectionOrders, id)
		if err != nil {
			if errors.Is(err, store.ErrNotFound) {
				return fmt.Errorf("%w: %s", repositories.ErrOrderNotFound, id)
			}
			return err
		}
		updated = decodeOrder(doc, now)
		if guard != nil {
			if guardErr = guard(updated.Status); guardErr != nil {
				return guardErr
			}
		}
		updated.Status = status
		return tx.Put(store.CollectionOrders, id, encodeOrder(updated))
	})
	if err != nil {
		if errors.Is(err, repositories.ErrOrderNotFound) || err == guardErr {
			return domain.Order{}, err
		}
		return domain.Order{}, fmt.Errorf("update order %s status: %w", id, err)
	}
	return updated, nil
}

func (r *orderRepository) Delete(ctx context.Context, id string) (bool, error) {
	removed, err := r.store.Delete(ctx, store.CollectionOrders, id)
	if err != nil {
		return false, fmt.Errorf("delete order %s: %w", id, err)
	}
	return removed, nil
}

// sortOrders orders newest first; numeric ids sort numerically so "1000"
// follows "999".
func sortOrders(orders []domain.Order) {
	sort.Slice(orders, func(i, j int) bool {
		a, errA := strconv.Atoi(orders[i].ID)
		b, errB := strconv.Atoi(orders[j].ID)
		if errA == nil && errB == nil {
			return a > b
		}
		return orders[i].ID > orders[j].ID
	})
}

func digitsOnly(s string) string {
	var b strings.Builder
	for _, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
