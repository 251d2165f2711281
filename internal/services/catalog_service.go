package services

import (
	"fmt"

	"artisan/internal/catalog"
	"artisan/internal/models"
	"artisan/internal/repositories"
	apperrors "artisan/pkg/errors"
)

// CatalogService serves browsing reads. The catalog is loaded once from the
// repository and never mutated afterwards, so returned product pointers are
// stable for the life of the process.
type CatalogService struct {
	products []models.Product
	byID     map[string]int
}

// NewCatalogService loads the full catalog from repo.
func NewCatalogService(repo repositories.ProductRepository) (*CatalogService, error) {
	products, err := repo.GetAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}

	byID := make(map[string]int, len(products))
	for i, p := range products {
		byID[p.ID] = i
	}
	return &CatalogService{
		products: products,
		byID:     byID,
	}, nil
}

// ListProducts applies the filter and sort engine to the catalog.
func (s *CatalogService) ListProducts(spec models.FilterSpec, key models.SortKey) []models.Product {
	return catalog.Select(s.products, spec, key)
}

// GetProductByID returns the catalog's own record for id.
func (s *CatalogService) GetProductByID(id string) (*models.Product, error) {
	i, ok := s.byID[id]
	if !ok {
		return nil, apperrors.NotFound(fmt.Sprintf("product with ID %s", id), nil)
	}
	return &s.products[i], nil
}

// Featured returns the first limit featured products.
func (s *CatalogService) Featured(limit int) []models.Product {
	return catalog.Featured(s.products, limit)
}

func (s *CatalogService) Categories() []string {
	return append([]string(nil), catalog.Categories...)
}

func (s *CatalogService) Materials() []string {
	return append([]string(nil), catalog.Materials...)
}

func (s *CatalogService) Count() int {
	return len(s.products)
}
