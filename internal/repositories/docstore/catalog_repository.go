package docstore

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/oklog/ulid/v2"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/platform/store"
	"github.com/teka-store/api/internal/repositories"
)

// CatalogRepositoryDeps bundles the dependencies required by the catalog
// repository.
type CatalogRepositoryDeps struct {
	Store       store.DocumentStore
	IDGenerator func() string
}

type catalogRepository struct {
	store store.DocumentStore
	newID func() string
}

// NewCatalogRepository constructs the document-store backed catalog
// repository.
func NewCatalogRepository(deps CatalogRepositoryDeps) (repositories.CatalogRepository, error) {
	if deps.Store == nil {
		return nil, errors.New("catalog repository: store is required")
	}
	newID := deps.IDGenerator
	if newID == nil {
		newID = func() string { return ulid.Make().String() }
	}
	return &catalogRepository{store: deps.Store, newID: newID}, nil
}

func (r *catalogRepository) ListProducts(ctx context.Context) ([]domain.Product, error) {
	docs, err := r.store.ListAll(ctx, store.CollectionProducts)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	products := make([]domain.Product, 0, len(docs))
	for _, doc := range docs {
		products = append(products, decodeProduct(doc))
	}
	sort.Slice(products, func(i, j int) bool { return products[i].ID < products[j].ID })
	return products, nil
}

func (r *catalogRepository) GetProduct(ctx context.Context, id string) (domain.Product, error) {
	doc, err := r.store.Get(ctx, store.CollectionProducts, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return domain.Product{}, fmt.Errorf("%w: %s", repositories.ErrProductNotFound, id)
		}
		return domain.Product{}, fmt.Errorf("get product %s: %w", id, err)
	}
	return decodeProduct(doc), nil
}

func (r *catalogRepository) SaveProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	if product.ID == "" {
		product.ID = "prd_" + r.newID()
	}
	if err := r.store.Put(ctx, store.CollectionProducts, product.ID, encodeProduct(product)); err != nil {
		return domain.Product{}, fmt.Errorf("save product %s: %w", product.ID, err)
	}
	return product, nil
}

func (r *catalogRepository) DeleteProduct(ctx context.Context, id string) (bool, error) {
	removed, err := r.store.Delete(ctx, store.CollectionProducts, id)
	if err != nil {
		return false, fmt.Errorf("delete product %s: %w", id, err)
	}
	return removed, nil
}

func (r *catalogRepository) ListCategories(ctx context.Context) ([]domain.Category, error) {
	docs, err := r.store.ListAll(ctx, store.CollectionCategories)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	categories := make([]domain.Category, 0, len(docs))
	for _, doc := range docs {
		categories = append(categories, decodeCategory(doc))
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].ID < categories[j].ID })
	return categories, nil
}

func (r *catalogRepository) SaveCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	if category.ID == "" {
		category.ID = "cat_" + r.newID()
	}
	if err := r.store.Put(ctx, store.CollectionCategories, category.ID, encodeCategory(category)); err != nil {
		return domain.Category{}, fmt.Errorf("save category %s: %w", category.ID, err)
	}
	return category, nil
}

func (r *catalogRepository) DeleteCategory(ctx context.Context, id string) (bool, error) {
	removed, err := r.store.Delete(ctx, store.CollectionCategories, id)
	if err != nil {
		return false, fmt.Errorf("delete category %s: %w", id, err)
	}
	return removed, nil
}
