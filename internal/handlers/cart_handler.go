package handlers

import (
	"artisan/internal/cart"
	"artisan/internal/middleware"
	"artisan/internal/pricing"
	"artisan/internal/services"
	"artisan/internal/validation"
	apperrors "artisan/pkg/errors"
	"artisan/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CartHandler handles the session cart.
type CartHandler struct {
	catalog  *services.CatalogService
	validate *validation.Validator
}

// NewCartHandler creates a new CartHandler.
func NewCartHandler(catalog *services.CatalogService, validate *validation.Validator) *CartHandler {
	return &CartHandler{
		catalog:  catalog,
		validate: validate,
	}
}

// RegisterRoutes registers the cart routes with the Fiber app.
func (h *CartHandler) RegisterRoutes(router fiber.Router) {
	cartRoutes := router.Group("/cart")
	cartRoutes.Get("/", h.HandleGetCart)
	cartRoutes.Delete("/", h.HandleClearCart)
	cartRoutes.Post("/items", h.HandleAddItem)
	cartRoutes.Patch("/items/:productId", h.HandleUpdateItem)
	cartRoutes.Delete("/items/:productId", h.HandleRemoveItem)
}

type cartView struct {
	Lines      []cart.Line       `json:"lines"`
	TotalItems int               `json:"totalItems"`
	TotalPrice float64           `json:"totalPrice"`
	Totals     pricing.Displayed `json:"totals"`
}

func viewOf(ledger *cart.Ledger) cartView {
	total := ledger.TotalPrice()
	return cartView{
		Lines:      ledger.Lines(),
		TotalItems: ledger.TotalItems(),
		TotalPrice: total,
		Totals:     pricing.Display(pricing.Compute(total)),
	}
}

type addItemRequest struct {
	ProductID string `json:"productId" validate:"required"`
	Quantity  int    `json:"quantity" validate:"min=1"`
}

type updateItemRequest struct {
	Quantity *int `json:"quantity" validate:"required"`
}

func (h *CartHandler) HandleGetCart(c *fiber.Ctx) error {
	return response.Success(c, viewOf(middleware.CurrentSession(c).Cart))
}

// HandleAddItem adds quantity (default 1) of a catalog product.
func (h *CartHandler) HandleAddItem(c *fiber.Ctx) error {
	req := addItemRequest{Quantity: 1}
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperrors.BadRequest("Invalid request body", err))
	}
	if err := h.validate.Struct(req); err != nil {
		return response.Error(c, err)
	}

	product, err := h.catalog.GetProductByID(req.ProductID)
	if err != nil {
		return response.Error(c, err)
	}

	ledger := middleware.CurrentSession(c).Cart
	ledger.AddItem(product, req.Quantity)
	return response.Success(c, viewOf(ledger))
}

// HandleUpdateItem sets a line quantity; zero or less removes the line.
func (h *CartHandler) HandleUpdateItem(c *fiber.Ctx) error {
	var req updateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return response.Error(c, apperrors.BadRequest("Invalid request body", err))
	}
	if err := h.validate.Struct(req); err != nil {
		return response.Error(c, err)
	}

	ledger := middleware.CurrentSession(c).Cart
	productID := c.Params("productId")
	if _, ok := ledger.Line(productID); !ok {
		return response.Error(c, apperrors.NotFound("cart item "+productID, nil))
	}
	ledger.UpdateQuantity(productID, *req.Quantity)
	return response.Success(c, viewOf(ledger))
}

func (h *CartHandler) HandleRemoveItem(c *fiber.Ctx) error {
	ledger := middleware.CurrentSession(c).Cart
	ledger.RemoveItem(c.Params("productId"))
	return response.Success(c, viewOf(ledger))
}

func (h *CartHandler) HandleClearCart(c *fiber.Ctx) error {
	ledger := middleware.CurrentSession(c).Cart
	ledger.Clear()
	return response.Success(c, viewOf(ledger))
}
