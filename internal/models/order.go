package models

import "time"

// OrderItem is a snapshot of a cart line at checkout time.
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	Quantity  int     `json:"quantity"`
	Price     float64 `json:"price"` // Price at the time of order
}

// Order represents a completed checkout.
type Order struct {
	ID        string      `json:"id"`
	SessionID string      `json:"sessionId"`
	Email     string      `json:"email"`
	Items     []OrderItem `json:"items"`
	Subtotal  float64     `json:"subtotal"`
	Shipping  float64     `json:"shipping"`
	Tax       float64     `json:"tax"`
	Total     float64     `json:"total"`
	Status    string      `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

type PaymentDetails struct {
	CardNumber string `json:"cardNumber" validate:"required,min=16"`
	ExpiryDate string `json:"expiryDate" validate:"required"`
	CVV        string `json:"cvv" validate:"required,min=3"`
	NameOnCard string `json:"nameOnCard" validate:"required"`
}

type ShippingAddress struct {
	Street  string `json:"street" validate:"required"`
	City    string `json:"city" validate:"required"`
	State   string `json:"state" validate:"required"`
	ZipCode string `json:"zipCode" validate:"required"`
	Country string `json:"country"`
}

// CheckoutRequest represents the checkout form.
type CheckoutRequest struct {
	Email     string          `json:"email" validate:"required,email"`
	FirstName string          `json:"firstName" validate:"required,personname"`
	LastName  string          `json:"lastName" validate:"required,personname"`
	Address   ShippingAddress `json:"address"`
	Payment   PaymentDetails  `json:"payment"`
}
