package repositories

import (
	"artisan/internal/models"
)

// ProductRepository is the catalog data source. Products are read-only once
// seeded.
type ProductRepository interface {
	GetAll() ([]models.Product, error)
	GetByID(id string) (*models.Product, error)
	Create(product *models.Product) error
}
