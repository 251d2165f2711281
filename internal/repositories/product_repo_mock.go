package repositories

import (
	"fmt"
	"sync"

	"artisan/internal/models"
	apperrors "artisan/pkg/errors"
)

// MockProductRepository is an in-memory implementation of ProductRepository.
// It keeps insertion order so GetAll returns the catalog as seeded.
type MockProductRepository struct {
	products []models.Product
	index    map[string]int
	mu       sync.RWMutex
}

// NewMockProductRepository creates a new instance of MockProductRepository.
func NewMockProductRepository() *MockProductRepository {
	return &MockProductRepository{
		index: make(map[string]int),
	}
}

// GetAll returns all products in insertion order.
func (r *MockProductRepository) GetAll() ([]models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	productList := make([]models.Product, len(r.products))
	copy(productList, r.products)
	return productList, nil
}

// GetByID returns a product by its ID.
func (r *MockProductRepository) GetByID(id string) (*models.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	i, ok := r.index[id]
	if !ok {
		return nil, apperrors.NotFound(fmt.Sprintf("product with ID %s", id), nil)
	}
	product := r.products[i]
	return &product, nil
}

// Create adds a new product. Ids must be unique.
func (r *MockProductRepository) Create(product *models.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product.ID == "" {
		return apperrors.BadRequest("product ID is required", nil)
	}
	if _, exists := r.index[product.ID]; exists {
		return apperrors.Conflict("DUPLICATE_PRODUCT", fmt.Sprintf("product with ID %s already exists", product.ID))
	}
	r.index[product.ID] = len(r.products)
	r.products = append(r.products, *product)
	return nil
}
