package docstore

import (
	"context"
	"errors"
	"testing"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/platform/store"
	"github.com/teka-store/api/internal/repositories"
)

func newTestCatalogRepo(t *testing.T, s store.DocumentStore) repositories.CatalogRepository {
	t.Helper()
	repo, err := NewCatalogRepository(CatalogRepositoryDeps{Store: s})
	if err != nil {
		t.Fatalf("NewCatalogRepository returned error: %v", err)
	}
	return repo
}

func TestProductRoundTripKeepsAllFields(t *testing.T) {
	ctx := context.Background()
	repo := newTestCatalogRepo(t, store.NewMemoryStore())

	saved, err := repo.SaveProduct(ctx, domain.Product{
		Name:        "خاتم فضة",
		Description: "فضة عيار 925",
		Price:       49.5,
		Image:       "https://img.example/ring.jpg",
		CategoryID:  "2",
	})
	if err != nil {
		t.Fatalf("SaveProduct returned error: %v", err)
	}
	if saved.ID == "" {
		t.Fatal("SaveProduct did not assign an id")
	}

	got, err := repo.GetProduct(ctx, saved.ID)
	if err != nil {
		t.Fatalf("GetProduct returned error: %v", err)
	}
	if got.Image != "https://img.example/ring.jpg" {
		t.Fatalf("image = %q, want the stored url", got.Image)
	}
	if got.CategoryID != "2" {
		t.Fatalf("categoryId = %q, want 2", got.CategoryID)
	}
	if got.Name != "خاتم فضة" || got.Price != 49.5 {
		t.Fatalf("product round-trip lost fields: %+v", got)
	}
}

func TestCategoryRoundTripKeepsImage(t *testing.T) {
	ctx := context.Background()
	repo := newTestCatalogRepo(t, store.NewMemoryStore())

	saved, err := repo.SaveCategory(ctx, domain.Category{
		Name:  "إكسسوارات",
		Image: "https://img.example/accessories.jpg",
	})
	if err != nil {
		t.Fatalf("SaveCategory returned error: %v", err)
	}

	categories, err := repo.ListCategories(ctx)
	if err != nil {
		t.Fatalf("ListCategories returned error: %v", err)
	}
	if len(categories) != 1 {
		t.Fatalf("ListCategories returned %d categories, want 1", len(categories))
	}
	if categories[0].ID != saved.ID || categories[0].Image != "https://img.example/accessories.jpg" {
		t.Fatalf("category round-trip lost fields: %+v", categories[0])
	}
}

func TestGetProductMissing(t *testing.T) {
	ctx := context.Background()
	repo := newTestCatalogRepo(t, store.NewMemoryStore())

	_, err := repo.GetProduct(ctx, "nope")
	if !errors.Is(err, repositories.ErrProductNotFound) {
		t.Fatalf("GetProduct = %v, want ErrProductNotFound", err)
	}
}

func TestOrderLinesKeepSnapshots(t *testing.T) {
	ctx := context.Background()
	repo := newTestOrderRepo(t, store.NewMemoryStore())

	created, err := repo.Create(ctx, domain.Order{
		CustomerName: "أحمد",
		Lines: []domain.OrderLine{
			{ProductID: "1", Name: "هاتف ذكي", Price: 1299.99, Quantity: 1},
		},
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}

	stored, err := repo.GetByID(ctx, created.ID)
	if err != nil {
		t.Fatalf("GetByID returned error: %v", err)
	}
	if len(stored.Lines) != 1 {
		t.Fatalf("stored order has %d lines, want 1", len(stored.Lines))
	}
	line := stored.Lines[0]
	if line.Name != "هاتف ذكي" || line.Price != 1299.99 {
		t.Fatalf("line snapshot lost fields: %+v", line)
	}
}
