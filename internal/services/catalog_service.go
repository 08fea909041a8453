package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/teka-store/api/internal/domain"
	"github.com/teka-store/api/internal/repositories"
)

// ErrCatalogInvalidInput indicates the caller supplied invalid catalog
// parameters.
var ErrCatalogInvalidInput = errors.New("catalog: invalid input")

// CatalogService exposes the product and category catalog, including the
// admin write path. It also serves as the CatalogLookup collaborator for
// cart aggregation.
type CatalogService interface {
	CatalogLookup

	ListProducts(ctx context.Context) ([]domain.Product, error)
	SaveProduct(ctx context.Context, product domain.Product) (domain.Product, error)
	DeleteProduct(ctx context.Context, id string) (bool, error)

	ListCategories(ctx context.Context) ([]domain.Category, error)
	SaveCategory(ctx context.Context, category domain.Category) (domain.Category, error)
	DeleteCategory(ctx context.Context, id string) (bool, error)
}

// CatalogServiceDeps bundles collaborators required to construct a catalog
// service instance.
type CatalogServiceDeps struct {
	Repository repositories.CatalogRepository
}

type catalogService struct {
	repo repositories.CatalogRepository
}

// NewCatalogService constructs the catalog service.
func NewCatalogService(deps CatalogServiceDeps) (CatalogService, error) {
	if deps.Repository == nil {
		return nil, errors.New("catalog service: repository is required")
	}
	return &catalogService{repo: deps.Repository}, nil
}

func (s *catalogService) GetProduct(ctx context.Context, id string) (domain.Product, bool, error) {
	product, err := s.repo.GetProduct(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			return domain.Product{}, false, nil
		}
		return domain.Product{}, false, err
	}
	return product, true, nil
}

func (s *catalogService) ListProducts(ctx context.Context) ([]domain.Product, error) {
	return s.repo.ListProducts(ctx)
}

func (s *catalogService) SaveProduct(ctx context.Context, product domain.Product) (domain.Product, error) {
	product.Name = strings.TrimSpace(product.Name)
	if product.Name == "" {
		return domain.Product{}, fmt.Errorf("%w: product name is required", ErrCatalogInvalidInput)
	}
	if product.Price < 0 {
		return domain.Product{}, fmt.Errorf("%w: product price must not be negative", ErrCatalogInvalidInput)
	}
	return s.repo.SaveProduct(ctx, product)
}

func (s *catalogService) DeleteProduct(ctx context.Context, id string) (bool, error) {
	return s.repo.DeleteProduct(ctx, id)
}

func (s *catalogService) ListCategories(ctx context.Context) ([]domain.Category, error) {
	return s.repo.ListCategories(ctx)
}

func (s *catalogService) SaveCategory(ctx context.Context, category domain.Category) (domain.Category, error) {
	category.Name = strings.TrimSpace(category.Name)
	if category.Name == "" {
		return domain.Category{}, fmt.Errorf("%w: category name is required", ErrCatalogInvalidInput)
	}
	return s.repo.SaveCategory(ctx, category)
}

func (s *catalogService) DeleteCategory(ctx context.Context, id string) (bool, error) {
	return s.repo.DeleteCategory(ctx, id)
}
