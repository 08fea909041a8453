package docstore

import (
	"context"
	"testing"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/platform/store"
)

func TestWishlistGetMissingKeyReturnsEmptyEntry(t *testing.T) {
	ctx := context.Background()
	repo, err := NewWishlistRepository(WishlistRepositoryDeps{Store: store.NewMemoryStore()})
	if err != nil {
		t.Fatalf("NewWishlistRepository returned error: %v", err)
	}

	entry, err := repo.Get(ctx, "wishlist_218912345678")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if entry.CustomerKey != "wishlist_218912345678" {
		t.Fatalf("CustomerKey = %q", entry.CustomerKey)
	}
	if len(entry.ProductIDs) != 0 {
		t.Fatalf("missing wishlist returned %d product ids, want 0", len(entry.ProductIDs))
	}
}

func TestWishlistPutRoundTrip(t *testing.T) {
	ctx := context.Background()
	repo, err := NewWishlistRepository(WishlistRepositoryDeps{Store: store.NewMemoryStore()})
	if err != nil {
		t.Fatalf("NewWishlistRepository returned error: %v", err)
	}

	want := domain.WishlistEntry{
		CustomerKey: "wishlist_218911112222",
		ProductIDs:  []string{"prd_1", "prd_2"},
	}
	if err := repo.Put(ctx, want); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	got, err := repo.Get(ctx, want.CustomerKey)
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if len(got.ProductIDs) != 2 || got.ProductIDs[0] != "prd_1" || got.ProductIDs[1] != "prd_2" {
		t.Fatalf("ProductIDs = %v", got.ProductIDs)
	}

	keys, err := repo.ListKeys(ctx)
	if err != nil {
		t.Fatalf("ListKeys returned error: %v", err)
	}
	if len(keys) != 1 || keys[0] != want.CustomerKey {
		t.Fatalf("ListKeys = %v", keys)
	}
}

func TestWishlistPutRequiresKey(t *testing.T) {
	repo, err := NewWishlistRepository(WishlistRepositoryDeps{Store: store.NewMemoryStore()})
	if err != nil {
		t.Fatalf("NewWishlistRepository returned error: %v", err)
	}
	if err := repo.Put(context.Background(), domain.WishlistEntry{}); err == nil {
		t.Fatal("Put accepted an empty customer key")
	}
}
