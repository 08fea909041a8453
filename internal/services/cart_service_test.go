package services

import (
	"context"
	"errors"
	"testing"

	"github.com/teka-store/api/internal/domain"
)

type stubCatalog struct {
	products map[string]domain.Product
}

func (s *stubCatalog) GetProduct(ctx context.Context, id string) (domain.Product, bool, error) {
	p, ok := s.products[id]
	return p, ok, nil
}

func newTestCartService(t *testing.T, products map[string]domain.Product) CartService {
	t.Helper()
	svc, err := NewCartService(CartServiceDeps{Catalog: &stubCatalog{products: products}})
	if err != nil {
		t.Fatalf("NewCartService returned error: %v", err)
	}
	return svc
}

func TestCartAddLineRejectsInvalidQuantity(t *testing.T) {
	svc := newTestCartService(t, nil)
	cart := svc.NewCart("p1")

	if _, err := svc.AddLine(cart, "p2", 0); !errors.Is(err, ErrCartInvalidQuantity) {
		t.Fatalf("AddLine(qty=0) = %v, want ErrCartInvalidQuantity", err)
	}
	if _, err := svc.AddLine(cart, "p2", -3); !errors.Is(err, ErrCartInvalidQuantity) {
		t.Fatalf("AddLine(qty=-3) = %v, want ErrCartInvalidQuantity", err)
	}
}

func TestCartAddLineMergesDuplicateProducts(t *testing.T) {
	svc := newTestCartService(t, nil)
	cart := svc.NewCart("p1")

	cart, err := svc.AddLine(cart, "p1", 2)
	if err != nil {
		t.Fatalf("AddLine returned error: %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("duplicate product created %d lines, want 1", len(cart.Lines))
	}
	if cart.Lines[0].Quantity != 3 {
		t.Fatalf("merged quantity = %d, want 3", cart.Lines[0].Quantity)
	}
}

func TestCartRemoveLastLineReinstatesSeed(t *testing.T) {
	svc := newTestCartService(t, nil)
	cart := svc.NewCart("p1")

	cart, err := svc.RemoveLine(cart, 0)
	if err != nil {
		t.Fatalf("RemoveLine returned error: %v", err)
	}
	if len(cart.Lines) != 1 {
		t.Fatalf("cart has %d lines, want 1", len(cart.Lines))
	}
	if cart.Lines[0].ProductID != "p1" || cart.Lines[0].Quantity != 1 {
		t.Fatalf("seed line = %+v", cart.Lines[0])
	}
}

func TestCartRemoveLineOutOfRange(t *testing.T) {
	svc := newTestCartService(t, nil)
	cart := svc.NewCart("p1")

	if _, err := svc.RemoveLine(cart, 5); !errors.Is(err, ErrCartLineOutOfRange) {
		t.Fatalf("RemoveLine(5) = %v, want ErrCartLineOutOfRange", err)
	}
	if _, err := svc.RemoveLine(cart, -1); !errors.Is(err, ErrCartLineOutOfRange) {
		t.Fatalf("RemoveLine(-1) = %v, want ErrCartLineOutOfRange", err)
	}
}

func TestCartTotalWithDeliveryFee(t *testing.T) {
	svc := newTestCartService(t, map[string]domain.Product{
		"p1": {ID: "p1", Price: 10.0},
	})
	cart := domain.Cart{Lines: []domain.CartLine{{ProductID: "p1", Quantity: 2}}}

	total, err := svc.Total(context.Background(), cart, 10.0)
	if err != nil {
		t.Fatalf("Total returned error: %v", err)
	}
	if total != 30.0 {
		t.Fatalf("total = %v, want 30.0", total)
	}
}

func TestCartTotalSkipsUnknownProductsAndRounds(t *testing.T) {
	svc := newTestCartService(t, map[string]domain.Product{
		"p1": {ID: "p1", Price: 0.1},
	})
	cart := domain.Cart{Lines: []domain.CartLine{
		{ProductID: "p1", Quantity: 3},
		{ProductID: "missing", Quantity: 7},
	}}

	total, err := svc.Total(context.Background(), cart, 0)
	if err != nil {
		t.Fatalf("Total returned error: %v", err)
	}
	if total != 0.3 {
		t.Fatalf("total = %v, want 0.3", total)
	}
}
