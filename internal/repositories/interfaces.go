// Package repositories declares the persistence contracts used by the
// service layer together with their error sentinels.
package repositories

import (
	"context"
	"errors"

	"github.com/teka-store/api/internal/domain"
)

var (
	// ErrOrderNotFound reports a missing order.
	ErrOrderNotFound = errors.New("order: not found")
	// ErrProductNotFound reports a missing product.
	ErrProductNotFound = errors.New("product: not found")
	// ErrCategoryNotFound reports a missing category.
	ErrCategoryNotFound = errors.New("category: not found")
	// ErrZoneNotFound reports a missing delivery zone.
	ErrZoneNotFound = errors.New("delivery zone: not found")
)

// OrderRepository persists customer orders. Create assigns the sequential
// order id; callers never supply one.
type OrderRepository interface {
	Create(ctx context.Context, order domain.Order) (domain.Order, error)
	GetByID(ctx context.Context, id string) (domain.Order, error)
	List(ctx context.Context) ([]domain.Order, error)
	ListByPhone(ctx context.Context, phone string) ([]domain.Order, error)
	// UpdateStatus commits a status change atomically. A non-nil guard is
	// invoked with the current status inside the same transaction; a guard
	// error aborts the change and is returned unchanged.
	UpdateStatus(ctx context.Context, id string, status domain.OrderStatus, guard func(current domain.OrderStatus) error) (domain.Order, error)
	// Delete reports whether an order was removed; a missing id is not an
	// error.
	Delete(ctx context.Context, id string) (bool, error)
}

// CatalogRepository persists products and categories.
type CatalogRepository interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, id string) (domain.Product, error)
	SaveProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)

	ListCategories(ctx context.Context) ([]domain.Category, error)
	SaveCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) (bool, error)
}

// ZoneRepository persists delivery zones.
type ZoneRepository interface {
	List(ctx context.Context) ([]domain.DeliveryZone, error)
	GetByID(ctx context.Context, id string) (domain.DeliveryZone, error)
	Save(ctx context.Context, zone domain.DeliveryZone) (domain.DeliveryZone, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// WishlistRepository persists one wishlist document per customer key. Get on
// an unknown key returns an empty entry, never an error.
type WishlistRepository interface {
	Get(ctx context.Context, customerKey string) (domain.WishlistEntry, error)
	Put(ctx context.Context, entry domain.WishlistEntry) error
	Delete(ctx context.Context, customerKey string) (bool, error)
	ListKeys(ctx context.Context) ([]string, error)
}
