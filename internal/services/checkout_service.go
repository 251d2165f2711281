package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"
	"time"

	"artisan/internal/cart"
	"artisan/internal/models"
	"artisan/internal/pricing"
	"artisan/internal/repositories"
	"artisan/internal/validation"
	apperrors "artisan/pkg/errors"
	"artisan/pkg/logger"
	"artisan/pkg/rabbitmq"

	"github.com/google/uuid"
)

const (
	OrderStatusConfirmed = "confirmed"
	defaultCountry       = "USA"
)

// ErrCheckoutBusy is returned while the same session already has a
// checkout in its payment delay.
var ErrCheckoutBusy = apperrors.Conflict("CHECKOUT_BUSY", "A checkout is already in progress")

// EventPublisher delivers order events to the broker.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// CheckoutSummary is what the checkout page shows before payment.
type CheckoutSummary struct {
	Lines      []cart.Line            `json:"lines"`
	TotalItems int                    `json:"totalItems"`
	Totals     pricing.Totals         `json:"totals"`
	Display    pricing.Displayed      `json:"display"`
	Prefill    models.CheckoutRequest `json:"prefill"`
}

// CheckoutService turns a session cart into a confirmed order. Payment is
// simulated with a delay; there is no gateway.
type CheckoutService struct {
	orderRepo repositories.OrderRepository
	publisher EventPublisher
	validate  *validation.Validator
	sleep     Sleeper
	delay     time.Duration
	inFlight  sync.Map // session id -> struct{}
}

// NewCheckoutService creates a new CheckoutService. publisher may be nil.
func NewCheckoutService(orderRepo repositories.OrderRepository, publisher EventPublisher, validate *validation.Validator, sleep Sleeper, delay time.Duration) *CheckoutService {
	if sleep == nil {
		sleep = RealSleep
	}
	return &CheckoutService{
		orderRepo: orderRepo,
		publisher: publisher,
		validate:  validate,
		sleep:     sleep,
		delay:     delay,
	}
}

// Summary computes totals for ledger and prefills the form from user.
func (s *CheckoutService) Summary(ledger *cart.Ledger, user *models.User) CheckoutSummary {
	totals := pricing.Compute(ledger.TotalPrice())
	summary := CheckoutSummary{
		Lines:      ledger.Lines(),
		TotalItems: ledger.TotalItems(),
		Totals:     totals,
		Display:    pricing.Display(totals),
		Prefill:    models.CheckoutRequest{Address: models.ShippingAddress{Country: defaultCountry}},
	}
	if user != nil {
		summary.Prefill.Email = user.Email
		summary.Prefill.FirstName = user.FirstName
		summary.Prefill.LastName = user.LastName
		if a := user.Address; a != nil {
			summary.Prefill.Address = models.ShippingAddress{
				Street:  a.Street,
				City:    a.City,
				State:   a.State,
				ZipCode: a.ZipCode,
				Country: a.Country,
			}
			if summary.Prefill.Address.Country == "" {
				summary.Prefill.Address.Country = defaultCountry
			}
		}
	}
	return summary
}

// Checkout validates req, simulates payment, records the order, announces
// it and takes the ordered quantities out of the cart. Items added while
// payment is pending stay in the cart.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, ledger *cart.Ledger, req models.CheckoutRequest) (*models.Order, error) {
	if _, busy := s.inFlight.LoadOrStore(sessionID, struct{}{}); busy {
		return nil, ErrCheckoutBusy
	}
	defer s.inFlight.Delete(sessionID)

	if ledger.Len() == 0 {
		return nil, apperrors.New("EMPTY_CART", "Your cart is empty", http.StatusBadRequest, nil)
	}
	if err := s.validate.Struct(req); err != nil {
		return nil, err
	}
	if req.Address.Country == "" {
		req.Address.Country = defaultCountry
	}

	lines := ledger.Lines()
	items := make([]models.OrderItem, 0, len(lines))
	var subtotal float64
	for _, line := range lines {
		items = append(items, models.OrderItem{
			ProductID: line.Product.ID,
			Name:      line.Product.Name,
			Quantity:  line.Quantity,
			Price:     line.Product.Price,
		})
		subtotal += line.Subtotal()
	}
	totals := pricing.Compute(subtotal)

	s.sleep(ctx, s.delay)

	order := &models.Order{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Email:     req.Email,
		Items:     items,
		Subtotal:  totals.Subtotal,
		Shipping:  totals.Shipping,
		Tax:       totals.Tax,
		Total:     totals.Total,
		Status:    OrderStatusConfirmed,
		CreatedAt: time.Now(),
	}
	if err := s.orderRepo.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order in repository: %w", err)
	}

	s.publishCreated(order)
	ledger.Subtract(lines)
	return order, nil
}

// Orders lists the orders placed by a session.
func (s *CheckoutService) Orders(sessionID string) ([]models.Order, error) {
	return s.orderRepo.GetBySession(sessionID)
}

// Order returns one order of the session. Orders of other sessions read as
// not found.
func (s *CheckoutService) Order(sessionID, orderID string) (*models.Order, error) {
	order, err := s.orderRepo.GetByID(orderID)
	if err != nil || order.SessionID != sessionID {
		return nil, apperrors.NotFound("Order", err)
	}
	return order, nil
}

func (s *CheckoutService) publishCreated(order *models.Order) {
	if s.publisher == nil {
		logger.Debug("no order event publisher configured; skipping order.created for %s", order.ID)
		return
	}

	messageBody, err := json.Marshal(rabbitmq.OrderEvent{
		OrderID:   order.ID,
		SessionID: order.SessionID,
		Email:     order.Email,
		Status:    order.Status,
		Total:     order.Total,
	})
	if err != nil {
		logger.Warn("failed to marshal order %s to JSON: %v", order.ID, err)
		return
	}
	if err := s.publisher.Publish("", rabbitmq.OrderQueue, messageBody); err != nil {
		logger.Warn("failed to publish order created event for order %s: %v", order.ID, err)
		return
	}
	logger.Info("published order created event for order %s", order.ID)
}
