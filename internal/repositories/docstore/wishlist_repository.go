package docstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/platform/store"
	"github.com/teka-store/api/internal/repositories"
)

// WishlistRepositoryDeps bundles the dependencies required by the wishlist
// repository.
type WishlistRepositoryDeps struct {
	Store store.DocumentStore
}

type wishlistRepository struct {
	store store.DocumentStore
}

// NewWishlistRepository constructs the document-store backed wishlist
// repository. Each customer key owns exactly one document.
func NewWishlistRepository(deps WishlistRepositoryDeps) (repositories.WishlistRepository, error) {
	if deps.Store == nil {
		return nil, errors.New("wishlist repository: store is required")
	}
	return &wishlistRepository{store: deps.Store}, nil
}

func (r *wishlistRepository) Get(ctx context.Context, customerKey string) (domain.WishlistEntry, error) {
	doc, err := r.store.Get(ctx, store.CollectionWishlists, customerKey)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.WishlistEntry{CustomerKey: customerKey, ProductIDs: []string{}}, nil
		}
		return domain.WishlistEntry{}, fmt.Errorf("get wishlist %s: %w", customerKey, err)
	}
	return decodeWishlist(doc), nil
}

func (r *wishlistRepository) Put(ctx context.Context, entry domain.WishlistEntry) error {
	if entry.CustomerKey == "" {
		return errors.New("wishlist: customer key is required")
	}
	if err := r.store.Put(ctx, store.CollectionWishlists, entry.CustomerKey, encodeWishlist(entry)); err != nil {
		return fmt.Errorf("put wishlist %s: %w", entry.CustomerKey, err)
	}
	return nil
}

func (r *wishlistRepository) Delete(ctx context.Context, customerKey string) (bool, error) {
	removed, err := r.store.Delete(ctx, store.CollectionWishlists, customerKey)
	if err != nil {
		return false, fmt.Errorf("delete wishlist %s: %w", customerKey, err)
	}
	return removed, nil
}

func (r *wishlistRepository) ListKeys(ctx context.Context) ([]string, error) {
	docs, err := r.store.ListAll(ctx, store.CollectionWishlists)
	if err != nil {
		return nil, fmt.Errorf("list wishlists: %w", err)
	}
	keys := make([]string, 0, len(docs))
	for _, doc := range docs {
		keys = append(keys, doc.ID)
	}
	return keys, nil
}
