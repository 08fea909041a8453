package store

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"

	"github.com/teka-store/api/internal/domain"
)

func TestMemoryStorePutGetDelete(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	if err := s.Put(ctx, CollectionProducts, "prd_1", map[string]any{"name": "ring"}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	doc, err := s.Get(ctx, CollectionProducts, "prd_1")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if doc.Data["name"] != "ring" {
		t.Fatalf("unexpected document data: %v", doc.Data)
	}

	removed, err := s.Delete(ctx, CollectionProducts, "prd_1")
	if err != nil || !removed {
		t.Fatalf("Delete = (%v, %v), want (true, nil)", removed, err)
	}

	if _, err := s.Get(ctx, CollectionProducts, "prd_1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("Get after delete = %v, want ErrNotFound", err)
	}
}

func TestMemoryStoreDeleteMissingIsNotAnError(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	removed, err := s.Delete(ctx, CollectionOrders, "999")
	if err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if removed {
		t.Fatal("Delete reported removal of a missing document")
	}
}

func TestMemoryStoreTransactionRollsBackOnError(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	boom := errors.New("boom")
	err := s.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.Put(CollectionOrders, "100", map[string]any{"status": "pending"}); err != nil {
			return err
		}
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("RunTransaction = %v, want boom", err)
	}

	if _, err := s.Get(ctx, CollectionOrders, "100"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("aborted transaction leaked a write: %v", err)
	}
}

func TestMemoryStoreTransactionReadsSnapshot(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	if err := s.Put(ctx, CollectionOrders, "100", map[string]any{"status": "pending"}); err != nil {
		t.Fatalf("Put returned error: %v", err)
	}

	err := s.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
		if err := tx.Put(CollectionOrders, "100", map[string]any{"status": "processing"}); err != nil {
			return err
		}
		doc, err := tx.Get(CollectionOrders, "100")
		if err != nil {
			return err
		}
		if doc.Data["status"] != "pending" {
			t.Fatalf("transaction read saw its own buffered write: %v", doc.Data)
		}
		return nil
	})
	if err != nil {
		t.Fatalf("RunTransaction returned error: %v", err)
	}

	doc, err := s.Get(ctx, CollectionOrders, "100")
	if err != nil {
		t.Fatalf("Get returned error: %v", err)
	}
	if doc.Data["status"] != "processing" {
		t.Fatalf("committed write missing: %v", doc.Data)
	}
}

func TestMemoryStoreConcurrentTransactionsSerialise(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()

	const workers = 16
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.RunTransaction(ctx, func(ctx context.Context, tx Tx) error {
				docs, err := tx.ListAll(CollectionOrders)
				if err != nil {
					return err
				}
				next := 100 + len(docs)
				return tx.Put(CollectionOrders, strconv.Itoa(next), map[string]any{"status": "pending"})
			})
		}()
	}
	wg.Wait()

	docs, err := s.ListAll(ctx, CollectionOrders)
	if err != nil {
		t.Fatalf("ListAll returned error: %v", err)
	}
	if len(docs) != workers {
		t.Fatalf("got %d orders, want %d", len(docs), workers)
	}
}

func TestNewSeededMemoryStoreBootstrapsCollections(t *testing.T) {
	ctx := context.Background()
	seed := domain.DefaultSeedData()
	s := NewSeededMemoryStore(seed)

	products, err := s.ListAll(ctx, CollectionProducts)
	if err != nil {
		t.Fatalf("ListAll products: %v", err)
	}
	if len(products) != len(seed.Products) {
		t.Fatalf("got %d products, want %d", len(products), len(seed.Products))
	}

	zones, err := s.ListAll(ctx, CollectionZones)
	if err != nil {
		t.Fatalf("ListAll zones: %v", err)
	}
	if len(zones) != len(seed.Zones) {
		t.Fatalf("got %d zones, want %d", len(zones), len(seed.Zones))
	}
}
