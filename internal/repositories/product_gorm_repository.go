package repositories

import (
	"errors"
	"fmt"

	"artisan/internal/models"
	apperrors "artisan/pkg/errors"

	"gorm.io/gorm"
)

// GORMProductRepository is a GORM implementation of ProductRepository.
type GORMProductRepository struct {
	db *gorm.DB
}

// NewGORMProductRepository creates a new instance of GORMProductRepository.
func NewGORMProductRepository(db *gorm.DB) *GORMProductRepository {
	return &GORMProductRepository{
		db: db,
	}
}

// Migrate creates the products table.
func (r *GORMProductRepository) Migrate() error {
	if err := r.db.AutoMigrate(&models.Product{}); err != nil {
		return fmt.Errorf("failed to migrate products: %w", err)
	}
	return nil
}

// GetAll retrieves all products ordered by id.
func (r *GORMProductRepository) GetAll() ([]models.Product, error) {
	var products []models.Product
	if err := r.db.Order("id").Find(&products).Error; err != nil {
		return nil, fmt.Errorf("failed to get all products: %w", err)
	}
	return products, nil
}

// GetByID retrieves a single product by its ID from the database.
func (r *GORMProductRepository) GetByID(id string) (*models.Product, error) {
	var product models.Product
	if err := r.db.First(&product, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("product with ID %s", id), err)
		}
		return nil, fmt.Errorf("failed to get product by ID %s: %w", id, err)
	}
	return &product, nil
}

// Create inserts a product. Seeding an already present id is a no-op, so a
// restarted server can seed the same database again.
func (r *GORMProductRepository) Create(product *models.Product) error {
	if product.ID == "" {
		return apperrors.BadRequest("product ID is required", nil)
	}
	res := r.db.Where("id = ?", product.ID).FirstOrCreate(product)
	if res.Error != nil {
		return fmt.Errorf("failed to create product: %w", res.Error)
	}
	return nil
}
