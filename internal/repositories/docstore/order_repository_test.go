package docstore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/platform/store"
	"github.com/teka-store/api/internal/repositories"
)

var fixedClock = func() time.Time {
	return time.Date(2024, time.March, 15, 12, 0, 0, 0, time.UTC)
}

func newTestOrderRepo(t *testing.T, s store.DocumentStore) repositories.OrderRepository {
	t.Helper()
	repo, err := NewOrderRepository(OrderRepositoryDeps{Store: s, Clock: fixedClock})
	if err != nil {
		t.Fatalf("NewOrderRepository returned error: %v", err)
	}
	return repo
}

func TestOrderCreateAssignsFirstID(t *testing.T) {
	ctx := context.Background()
	repo := newTestOrderRepo(t, store.NewMemoryStore())

	created, err := repo.Create(ctx, domain.Order{CustomerName: "سالم", City: "طرابلس", Phone: "0912345678"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != "100" {
		t.Fatalf("first order id = %q, want 100", created.ID)
	}
	if created.Status != domain.StatusPending {
		t.Fatalf("status = %q, want pending", created.Status)
	}
	if created.Date != "2024-03-15" {
		t.Fatalf("date = %q, want 2024-03-15", created.Date)
	}
}

func TestOrderCreateIncrementsPastMax(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	for _, id := range []string{"100", "250", "113"} {
		if err := s.Put(ctx, store.CollectionOrders, id, map[string]any{"status": "pending"}); err != nil {
			t.Fatalf("seed order %s: %v", id, err)
		}
	}
	// Non-numeric ids are ignored by the allocator.
	if err := s.Put(ctx, store.CollectionOrders, "legacy-abc", map[string]any{"status": "pending"}); err != nil {
		t.Fatalf("seed legacy order: %v", err)
	}

	repo := newTestOrderRepo(t, s)
	created, err := repo.Create(ctx, domain.Order{CustomerName: "هدى", City: "بنغازي"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ID != "251" {
		t.Fatalf("order id = %q, want 251", created.ID)
	}
}

func TestOrderDecodeAppliesDefaults(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	if err := s.Put(ctx, store.CollectionOrders, "140", map[string]any{
		"customerName": "مريم",
		"status":       "garbage",
		"products":     "not-an-array",
	}); err != nil {
		t.Fatalf("seed order: %v", err)
	}

	repo := newTestOrderRepo(t, s)
	order, err := repo.GetByID(ctx, "140")
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if order.Status != domain.StatusPending {
		t.Fatalf("malformed status decoded to %q, want pending", order.Status)
	}
	if order.Date != "2024-03-15" {
		t.Fatalf("missing date decoded to %q, want today", order.Date)
	}
	if len(order.Lines) != 0 {
		t.Fatalf("malformed products decoded to %d lines, want 0", len(order.Lines))
	}
}

func TestOrderUpdateStatusMissingOrder(t *testing.T) {
	ctx := context.Background()
	repo := newTestOrderRepo(t, store.NewMemoryStore())

	_, err := repo.UpdateStatus(ctx, "999", domain.StatusProcessing, nil)
	if !errors.Is(err, repositories.ErrOrderNotFound) {
		t.Fatalf("UpdateStatus = %v, want ErrOrderNotFound", err)
	}
}

func TestOrderUpdateStatusGuardSeesCurrent(t *testing.T) {
	ctx := context.Background()
	repo := newTestOrderRepo(t, store.NewMemoryStore())

	created, err := repo.Create(ctx, domain.Order{CustomerName: "سالم"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	var seen domain.OrderStatus
	updated, err := repo.UpdateStatus(ctx, created.ID, domain.StatusProcessing, func(current domain.OrderStatus) error {
		seen = current
		return nil
	})
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if seen != domain.StatusPending {
		t.Fatalf("guard saw %q, want pending", seen)
	}
	if updated.Status != domain.StatusProcessing {
		t.Fatalf("status = %q, want processing", updated.Status)
	}
}

func TestOrderUpdateStatusGuardAbortsWrite(t *testing.T) {
	ctx := context.Background()
	repo := newTestOrderRepo(t, store.NewMemoryStore())

	created, err := repo.Create(ctx, domain.Order{CustomerName: "هدى"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	rejected := errors.New("transition rejected")
	_, err = repo.UpdateStatus(ctx, created.ID, domain.StatusDelivered, func(current domain.OrderStatus) error {
		return rejected
	})
	if !errors.Is(err, rejected) {
		t.Fatalf("UpdateStatus = %v, want the guard error unchanged", err)
	}

	stored, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if stored.Status != domain.StatusPending {
		t.Fatalf("status after aborted update = %q, want pending", stored.Status)
	}
}

func TestOrderDeleteIsIdempotent(t *testing.T) {
	ctx := context.Background()
	repo := newTestOrderRepo(t, store.NewMemoryStore())

	created, err := repo.Create(ctx, domain.Order{CustomerName: "نور"})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	removed, err := repo.Delete(ctx, created.ID)
	if err != nil || !removed {
		t.Fatalf("first Delete = (%v, %v), want (true, nil)", removed, err)
	}
	removed, err = repo.Delete(ctx, created.ID)
	if err != nil {
		t.Fatalf("second Delete returned error: %v", err)
	}
	if removed {
		t.Fatal("second Delete reported removal")
	}
}

func TestOrderListSortsNumerically(t *testing.T) {
	ctx := context.Background()
	s := store.NewMemoryStore()
	for _, id := range []string{"99", "1000", "100"} {
		if err := s.Put(ctx, store.CollectionOrders, id, map[string]any{"status": "pending"}); err != nil {
			t.Fatalf("seed order %s: %v", id, err)
		}
	}

	repo := newTestOrderRepo(t, s)
	orders, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("List returned error: %v", err)
	}
	got := []string{orders[0].ID, orders[1].ID, orders[2].ID}
	want := []string{"1000", "100", "99"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("sorted ids = %v, want %v", got, want)
		}
	}
}

func TestOrderListByPhoneMatchesDigits(t *testing.T) {
	ctx := context.Background()
	repo := newTestOrderRepo(t, store.NewMemoryStore())

	if _, err := repo.Create(ctx, domain.Order{CustomerName: "أحمد", Phone: "091-234-5678"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if _, err := repo.Create(ctx, domain.Order{CustomerName: "ليلى", Phone: "0923334444"}); err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	orders, err := repo.ListByPhone(ctx, "0912345678")
	if err != nil {
		t.Fatalf("ListByPhone returned error: %v", err)
	}
	if len(orders) != 1 || orders[0].CustomerName != "أحمد" {
		t.Fatalf("ListByPhone matched %d orders, want the single formatted-phone order", len(orders))
	}
}
