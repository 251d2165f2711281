package repositories

import (
	"artisan/internal/models"
)

// OrderRepository defines the interface for order data access.
type OrderRepository interface {
	GetByID(id string) (*models.Order, error)
	GetBySession(sessionID string) ([]models.Order, error)
	Create(order *models.Order) error
}
