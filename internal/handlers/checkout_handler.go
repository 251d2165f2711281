package handlers

import (
	"artisan/internal/middleware"
	"artisan/internal/models"
	"artisan/internal/services"
	apperrors "artisan/pkg/errors"
	"artisan/pkg/logger"
	"artisan/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CheckoutHandler handles HTTP requests for checkout and placed orders.
type CheckoutHandler struct {
	service *services.CheckoutService
}

// NewCheckoutHandler creates a new CheckoutHandler.
func NewCheckoutHandler(service *services.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{
		service: service,
	}
}

// RegisterRoutes registers the checkout routes with the Fiber app.
func (h *CheckoutHandler) RegisterRoutes(router fiber.Router) {
	router.Get("/checkout", h.HandleGetCheckout)
	router.Post("/checkout", h.HandleCheckout)
	router.Get("/orders", h.HandleGetOrders)
	router.Get("/orders/:id", h.HandleGetOrder)
}

// HandleGetCheckout returns the cart totals and a form prefilled from the
// signed-in user, if any.
func (h *CheckoutHandler) HandleGetCheckout(c *fiber.Ctx) error {
	s := middleware.CurrentSession(c)

	var user *models.User
	if u, ok := s.Identity.Current(); ok {
		user = &u
	}
	return response.Success(c, h.service.Summary(s.Cart, user))
}

// HandleCheckout places an order for the session cart.
func (h *CheckoutHandler) HandleCheckout(c *fiber.Ctx) error {
	var req models.CheckoutRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperrors.BadRequest("Invalid request body", err))
	}

	s := middleware.CurrentSession(c)
	order, err := h.service.Checkout(c.UserContext(), s.ID, s.Cart, req)
	if err != nil {
		return response.Error(c, err)
	}

	logger.Info("order %s placed by session %s (total %.2f)", order.ID, s.ID, order.Total)
	return response.Created(c, order)
}

// HandleGetOrders lists the orders placed by the session.
func (h *CheckoutHandler) HandleGetOrders(c *fiber.Ctx) error {
	orders, err := h.service.Orders(middleware.CurrentSession(c).ID)
	if err != nil {
		return response.Error(c, apperrors.Internal("Could not retrieve orders", err))
	}
	return response.Success(c, orders)
}

// HandleGetOrder returns one order placed by the session.
func (h *CheckoutHandler) HandleGetOrder(c *fiber.Ctx) error {
	order, err := h.service.Order(middleware.CurrentSession(c).ID, c.Params("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, order)
}
