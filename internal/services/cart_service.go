package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/teka-store/api/internal/domain"
)

var (
	// ErrCartInvalidQuantity indicates a line quantity below one.
	ErrCartInvalidQuantity = errors.New("cart: invalid quantity")
	// ErrCartLineOutOfRange indicates a line index outside the cart.
	ErrCartLineOutOfRange = errors.New("cart: line index out of range")
)

// CatalogLookup resolves products at aggregation time. Unit prices are never
// cached inside the cart.
type CatalogLookup interface {
	GetProduct(ctx context.Context, id string) (domain.Product, bool, error)
}

// CartService aggregates cart lines into a priced order draft.
type CartService interface {
	NewCart(seedProductID string) domain.Cart
	AddLine(cart domain.Cart, productID string, quantity int) (domain.Cart, error)
	RemoveLine(cart domain.Cart, index int) (domain.Cart, error)
	Total(ctx context.Context, cart domain.Cart, deliveryFee float64) (float64, error)
}

// CartServiceDeps bundles collaborators required to construct a cart service
// instance.
type CartServiceDeps struct {
	Catalog CatalogLookup
}

type cartService struct {
	catalog CatalogLookup
}

// NewCartService constructs the cart aggregation service.
func NewCartService(deps CartServiceDeps) (CartService, error) {
	if deps.Catalog == nil {
		return nil, errors.New("cart service: catalog is required")
	}
	return &cartService{catalog: deps.Catalog}, nil
}

// NewCart returns a cart holding a single line for the seed product. A cart
// is never empty: the seed line is what checkout starts from.
func (s *cartService) NewCart(seedProductID string) domain.Cart {
	return domain.Cart{
		SeedProductID: seedProductID,
		Lines:         []domain.CartLine{{ProductID: seedProductID, Quantity: 1}},
	}
}

// AddLine appends the product to the cart. Adding a product already present
// merges into the existing line instead of creating a duplicate row.
func (s *cartService) AddLine(cart domain.Cart, productID string, quantity int) (domain.Cart, error) {
	if quantity < 1 {
		return cart, fmt.Errorf("%w: %d", ErrCartInvalidQuantity, quantity)
	}
	lines := append([]domain.CartLine(nil), cart.Lines...)
	for i := range lines {
		if lines[i].ProductID == productID {
			lines[i].Quantity += quantity
			cart.Lines = lines
			return cart, nil
		}
	}
	cart.Lines = append(lines, domain.CartLine{ProductID: productID, Quantity: quantity})
	return cart, nil
}

// RemoveLine drops the line at index. Removing the last remaining line
// reinstates the seed product so the cart never empties.
func (s *cartService) RemoveLine(cart domain.Cart, index int) (domain.Cart, error) {
	if index < 0 || index >= len(cart.Lines) {
		return cart, fmt.Errorf("%w: %d", ErrCartLineOutOfRange, index)
	}
	lines := append([]domain.CartLine(nil), cart.Lines...)
	lines = append(lines[:index], lines[index+1:]...)
	if len(lines) == 0 {
		lines = []domain.CartLine{{ProductID: cart.SeedProductID, Quantity: 1}}
	}
	cart.Lines = lines
	return cart, nil
}

// Total resolves each line's unit price from the catalog and returns
// subtotal plus the delivery fee, rounded to two decimals. Lines referencing
// unknown products contribute nothing.
func (s *cartService) Total(ctx context.Context, cart domain.Cart, deliveryFee float64) (float64, error) {
	subtotal := 0.0
	for _, line := range cart.Lines {
		product, found, err := s.catalog.GetProduct(ctx, line.ProductID)
		if err != nil {
			return 0, fmt.Errorf("cart total: %w", err)
		}
		if !found {
			continue
		}
		subtotal += float64(line.Quantity) * product.Price
	}
	total := decimal.NewFromFloat(subtotal).Add(decimal.NewFromFloat(deliveryFee))
	return total.Round(2).InexactFloat64(), nil
}
