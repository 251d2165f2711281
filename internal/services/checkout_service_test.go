package services_test

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"artisan/internal/cart"
	"artisan/internal/catalog"
	"artisan/internal/models"
	"artisan/internal/repositories"
	"artisan/internal/services"
	"artisan/internal/validation"
	apperrors "artisan/pkg/errors"
	"artisan/pkg/rabbitmq"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockPublisher is a mock implementation of services.EventPublisher.
type MockPublisher struct {
	mock.Mock
}

func (m *MockPublisher) Publish(exchange, routingKey string, body []byte) error {
	args := m.Called(exchange, routingKey, body)
	return args.Error(0)
}

func validCheckout() models.CheckoutRequest {
	return models.CheckoutRequest{
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
		Address: models.ShippingAddress{
			Street:  "1 Pine St",
			City:    "Portland",
			State:   "OR",
			ZipCode: "97201",
		},
		Payment: models.PaymentDetails{
			CardNumber: "4242424242424242",
			ExpiryDate: "12/30",
			CVV:        "123",
			NameOnCard: "Jane Doe",
		},
	}
}

func seededLedger(t *testing.T) *cart.Ledger {
	t.Helper()
	products := catalog.Products()
	ledger := cart.NewLedger()
	ledger.AddItem(&products[0], 2) // 2 x 45.00
	return ledger
}

func TestCheckoutService_Checkout(t *testing.T) {
	ctx := context.Background()
	orderRepo := repositories.NewMockOrderRepository()
	pub := new(MockPublisher)
	pub.On("Publish", "", rabbitmq.OrderQueue, mock.MatchedBy(func(body []byte) bool {
		event, err := rabbitmq.DecodeOrderEvent(body)
		return err == nil && event.SessionID == "sess-1" && event.Email == "jane@example.com"
	})).Return(nil).Once()

	svc := services.NewCheckoutService(orderRepo, pub, validation.New(), services.NoSleep, 0)
	ledger := seededLedger(t)

	order, err := svc.Checkout(ctx, "sess-1", ledger, validCheckout())
	require.NoError(t, err)
	assert.NotEmpty(t, order.ID)
	assert.Equal(t, services.OrderStatusConfirmed, order.Status)
	assert.InDelta(t, 90.0, order.Subtotal, 1e-9)
	assert.InDelta(t, 0.0, order.Shipping, 1e-9)
	assert.InDelta(t, 7.2, order.Tax, 1e-9)
	assert.InDelta(t, 97.2, order.Total, 1e-9)
	require.Len(t, order.Items, 1)
	assert.Equal(t, models.OrderItem{ProductID: "1", Name: "Handwoven Ceramic Bowl", Quantity: 2, Price: 45.00}, order.Items[0])

	assert.Equal(t, 0, ledger.Len())
	pub.AssertExpectations(t)

	orders, err := svc.Orders("sess-1")
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, order.ID, orders[0].ID)

	other, err := svc.Orders("sess-2")
	require.NoError(t, err)
	assert.Empty(t, other)
}

func TestCheckoutService_EmptyCart(t *testing.T) {
	pub := new(MockPublisher)
	svc := services.NewCheckoutService(repositories.NewMockOrderRepository(), pub, validation.New(), services.NoSleep, 0)

	_, err := svc.Checkout(context.Background(), "sess-1", cart.NewLedger(), validCheckout())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "EMPTY_CART"))
	pub.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestCheckoutService_ValidationKeepsCart(t *testing.T) {
	svc := services.NewCheckoutService(repositories.NewMockOrderRepository(), nil, validation.New(), services.NoSleep, 0)
	ledger := seededLedger(t)

	req := validCheckout()
	req.Payment.CardNumber = "4242"
	req.Payment.CVV = "1"
	req.Address.City = ""

	_, err := svc.Checkout(context.Background(), "sess-1", ledger, req)
	require.Error(t, err)
	appErr := apperrors.As(err)
	require.Equal(t, "VALIDATION_FAILED", appErr.Code)
	fields := appErr.Details.(map[string]string)
	assert.Contains(t, fields, "payment.cardNumber")
	assert.Contains(t, fields, "payment.cvv")
	assert.Contains(t, fields, "address.city")

	assert.Equal(t, 1, ledger.Len())
	orders, _ := svc.Orders("sess-1")
	assert.Empty(t, orders)
}

func TestCheckoutService_PublishFailureDoesNotFailOrder(t *testing.T) {
	pub := new(MockPublisher)
	pub.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	svc := services.NewCheckoutService(repositories.NewMockOrderRepository(), pub, validation.New(), services.NoSleep, 0)
	ledger := seededLedger(t)

	order, err := svc.Checkout(context.Background(), "sess-1", ledger, validCheckout())
	require.NoError(t, err)
	assert.Equal(t, services.OrderStatusConfirmed, order.Status)
	pub.AssertNumberOfCalls(t, "Publish", 1)
	assert.Equal(t, 0, ledger.Len())
}

func TestCheckoutService_Summary(t *testing.T) {
	svc := services.NewCheckoutService(repositories.NewMockOrderRepository(), nil, validation.New(), services.NoSleep, 0)
	products := catalog.Products()
	ledger := cart.NewLedger()
	ledger.AddItem(&products[0], 1) // 45.00

	anonymous := svc.Summary(ledger, nil)
	assert.Equal(t, 1, anonymous.TotalItems)
	assert.InDelta(t, 8.99, anonymous.Totals.Shipping, 1e-9)
	assert.Equal(t, "3.60", anonymous.Display.Tax)
	assert.Equal(t, "USA", anonymous.Prefill.Address.Country)
	assert.Empty(t, anonymous.Prefill.Email)

	user := catalog.DemoUser
	summary := svc.Summary(ledger, &user)
	assert.Equal(t, "demo@artisanmarket.com", summary.Prefill.Email)
	assert.Equal(t, "John", summary.Prefill.FirstName)
	assert.Equal(t, "Denver", summary.Prefill.Address.City)
	assert.Empty(t, summary.Prefill.Payment.CardNumber)

	body, err := json.Marshal(summary)
	require.NoError(t, err)
	assert.Contains(t, string(body), `"totalItems":1`)
}

func TestCheckoutService_ItemsAddedDuringPaymentStayInCart(t *testing.T) {
	products := catalog.Products()
	ledger := seededLedger(t)
	sleep := func(context.Context, time.Duration) {
		ledger.AddItem(&products[1], 1)
		ledger.AddItem(&products[0], 1)
	}
	svc := services.NewCheckoutService(repositories.NewMockOrderRepository(), nil, validation.New(), sleep, 0)

	order, err := svc.Checkout(context.Background(), "sess-1", ledger, validCheckout())
	require.NoError(t, err)
	require.Len(t, order.Items, 1)
	assert.Equal(t, 2, order.Items[0].Quantity)

	lines := ledger.Lines()
	require.Len(t, lines, 2)
	assert.Equal(t, "1", lines[0].Product.ID)
	assert.Equal(t, 1, lines[0].Quantity)
	assert.Equal(t, products[1].ID, lines[1].Product.ID)
	assert.Equal(t, 1, lines[1].Quantity)
}

func TestCheckoutService_OneCheckoutPerSession(t *testing.T) {
	entered := make(chan struct{})
	release := make(chan struct{})
	sleep := func(context.Context, time.Duration) {
		close(entered)
		<-release
	}
	orderRepo := repositories.NewMockOrderRepository()
	svc := services.NewCheckoutService(orderRepo, nil, validation.New(), sleep, 0)
	ledger := seededLedger(t)

	done := make(chan error, 1)
	go func() {
		_, err := svc.Checkout(context.Background(), "sess-1", ledger, validCheckout())
		done <- err
	}()
	<-entered

	_, err := svc.Checkout(context.Background(), "sess-1", ledger, validCheckout())
	require.Error(t, err)
	assert.True(t, apperrors.Is(err, "CHECKOUT_BUSY"))
	assert.Equal(t, 409, apperrors.As(err).Status)

	// Other sessions are not blocked.
	_, err = svc.Checkout(context.Background(), "sess-2", cart.NewLedger(), validCheckout())
	assert.True(t, apperrors.Is(err, "EMPTY_CART"))

	close(release)
	require.NoError(t, <-done)

	orders, err := svc.Orders("sess-1")
	require.NoError(t, err)
	assert.Len(t, orders, 1)
	assert.Equal(t, 0, ledger.Len())
}

func TestCheckoutService_Order(t *testing.T) {
	svc := services.NewCheckoutService(repositories.NewMockOrderRepository(), nil, validation.New(), services.NoSleep, 0)
	placed, err := svc.Checkout(context.Background(), "sess-1", seededLedger(t), validCheckout())
	require.NoError(t, err)

	got, err := svc.Order("sess-1", placed.ID)
	require.NoError(t, err)
	assert.Equal(t, placed.Total, got.Total)

	_, err = svc.Order("sess-2", placed.ID)
	assert.True(t, apperrors.Is(err, "NOT_FOUND"))
	_, err = svc.Order("sess-1", "missing")
	assert.True(t, apperrors.Is(err, "NOT_FOUND"))
}
