package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/repositories"
)

const wishlistKeyPrefix = "wishlist_"

// ErrWishlistInvalidInput indicates the caller supplied invalid wishlist
// parameters.
var ErrWishlistInvalidInput = errors.New("wishlist: invalid input")

// WishlistKey derives the storage key for a customer from their phone
// number: the prefix plus the phone's digits.
func WishlistKey(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return wishlistKeyPrefix + b.String()
}

// WishlistService manages each customer's saved product set.
type WishlistService interface {
	Add(ctx context.Context, phone, productID string) (domain.WishlistEntry, error)
	Remove(ctx context.Context, phone, productID string) (domain.WishlistEntry, error)
	List(ctx context.Context, phone string) ([]string, error)
	Clear(ctx context.Context, phone string) (bool, error)
}

// WishlistServiceDeps bundles collaborators required to construct a wishlist
// service instance.
type WishlistServiceDeps struct {
	Repository repositories.WishlistRepository
}

type wishlistService struct {
	repo repositories.WishlistRepository
}

// NewWishlistService constructs the wishlist service.
func NewWishlistService(deps WishlistServiceDeps) (WishlistService, error) {
	if deps.Repository == nil {
		return nil, errors.New("wishlist service: repository is required")
	}
	return &wishlistService{repo: deps.Repository}, nil
}

// Add appends the product to the customer's wishlist. Adding a product that
// is already saved is a no-op.
func (s *wishlistService) Add(ctx context.Context, phone, productID string) (domain.WishlistEntry, error) {
	key, err := customerKey(phone)
	if err != nil {
		return domain.WishlistEntry{}, err
	}
	productID = strings.TrimSpace(productID)
	if productID == "" {
		return domain.WishlistEntry{}, fmt.Errorf("%w: product id is required", ErrWishlistInvalidInput)
	}

	entry, err := s.repo.Get(ctx, key)
	if err != nil {
		return domain.WishlistEntry{}, err
	}
	for _, id := range entry.ProductIDs {
		if id == productID {
			return entry, nil
		}
	}
	entry.ProductIDs = append(entry.ProductIDs, productID)
	if err := s.repo.Put(ctx, entry); err != nil {
		return domain.WishlistEntry{}, err
	}
	return entry, nil
}

// Remove drops the product from the customer's wishlist. Removing a product
// that is not saved is a no-op.
func (s *wishlistService) Remove(ctx context.Context, phone, productID string) (domain.WishlistEntry, error) {
	key, err := customerKey(phone)
	if err != nil {
		return domain.WishlistEntry{}, err
	}

	entry, err := s.repo.Get(ctx, key)
	if err != nil {
		return domain.WishlistEntry{}, err
	}
	kept := entry.ProductIDs[:0]
	removed := false
	for _, id := range entry.ProductIDs {
		if id == productID {
			removed = true
			continue
		}
		kept = append(kept, id)
	}
	if !removed {
		return entry, nil
	}
	entry.ProductIDs = kept
	if err := s.repo.Put(ctx, entry); err != nil {
		return domain.WishlistEntry{}, err
	}
	return entry, nil
}

func (s *wishlistService) List(ctx context.Context, phone string) ([]string, error) {
	key, err := customerKey(phone)
	if err != nil {
		return nil, err
	}
	entry, err := s.repo.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	return entry.ProductIDs, nil
}

func (s *wishlistService) Clear(ctx context.Context, phone string) (bool, error) {
	key, err := customerKey(phone)
	if err != nil {
		return false, err
	}
	return s.repo.Delete(ctx, key)
}

func customerKey(phone string) (string, error) {
	key := WishlistKey(phone)
	if key == wishlistKeyPrefix {
		return "", fmt.Errorf("%w: phone must contain digits", ErrWishlistInvalidInput)
	}
	return key, nil
}
