package handlers

import (
	"math"
	"strconv"
	"strings"

	"artisan/internal/catalog"
	"artisan/internal/models"
	"artisan/internal/services"
	apperrors "artisan/pkg/errors"
	"artisan/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// CatalogHandler serves product browsing.
type CatalogHandler struct {
	service *services.CatalogService
}

// NewCatalogHandler creates a new CatalogHandler.
func NewCatalogHandler(service *services.CatalogService) *CatalogHandler {
	return &CatalogHandler{
		service: service,
	}
}

// RegisterRoutes registers the catalog routes with the Fiber app.
func (h *CatalogHandler) RegisterRoutes(router fiber.Router) {
	productRoutes := router.Group("/products")
	productRoutes.Get("/", h.HandleListProducts)
	productRoutes.Get("/featured", h.HandleFeatured)
	productRoutes.Get("/:id", h.HandleGetProductByID)

	router.Get("/categories", h.HandleCategories)
	router.Get("/materials", h.HandleMaterials)
}

type productList struct {
	Products []models.Product `json:"products"`
	Count    int              `json:"count"`
}

// HandleListProducts filters and sorts the catalog from query parameters.
func (h *CatalogHandler) HandleListProducts(c *fiber.Ctx) error {
	spec, err := ParseFilterQuery(c)
	if err != nil {
		return response.Error(c, err)
	}
	products := h.service.ListProducts(spec, catalog.ParseSortKey(c.Query("sort")))
	return response.Success(c, productList{Products: products, Count: len(products)})
}

// HandleFeatured returns featured products, optionally capped by ?limit.
func (h *CatalogHandler) HandleFeatured(c *fiber.Ctx) error {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			return response.Error(c, apperrors.BadRequest("limit must be a non-negative integer", err))
		}
		limit = n
	}
	products := h.service.Featured(limit)
	return response.Success(c, productList{Products: products, Count: len(products)})
}

// HandleGetProductByID retrieves a single product by its ID.
func (h *CatalogHandler) HandleGetProductByID(c *fiber.Ctx) error {
	product, err := h.service.GetProductByID(c.Params("id"))
	if err != nil {
		return response.Error(c, err)
	}
	return response.Success(c, product)
}

func (h *CatalogHandler) HandleCategories(c *fiber.Ctx) error {
	return response.Success(c, h.service.Categories())
}

func (h *CatalogHandler) HandleMaterials(c *fiber.Ctx) error {
	return response.Success(c, h.service.Materials())
}

// ParseFilterQuery builds a FilterSpec from search, category, minPrice,
// maxPrice, materials (comma separated), inStock and featured.
func ParseFilterQuery(c *fiber.Ctx) (models.FilterSpec, error) {
	spec := models.FilterSpec{
		Search:   strings.TrimSpace(c.Query("search")),
		Category: c.Query("category"),
	}

	minRaw, maxRaw := c.Query("minPrice"), c.Query("maxPrice")
	if minRaw != "" || maxRaw != "" {
		r := models.PriceRange{Min: 0, Max: math.MaxFloat64}
		var err error
		if minRaw != "" {
			if r.Min, err = strconv.ParseFloat(minRaw, 64); err != nil {
				return spec, apperrors.BadRequest("minPrice must be a number", err)
			}
		}
		if maxRaw != "" {
			if r.Max, err = strconv.ParseFloat(maxRaw, 64); err != nil {
				return spec, apperrors.BadRequest("maxPrice must be a number", err)
			}
		}
		spec.PriceRange = &r
	}

	if raw := c.Query("materials"); raw != "" {
		for _, m := range strings.Split(raw, ",") {
			if m = strings.TrimSpace(m); m != "" {
				spec.Materials = append(spec.Materials, m)
			}
		}
	}

	var err error
	if spec.InStock, err = queryBool(c, "inStock"); err != nil {
		return spec, err
	}
	if spec.Featured, err = queryBool(c, "featured"); err != nil {
		return spec, err
	}
	return spec, nil
}

func queryBool(c *fiber.Ctx, key string) (bool, error) {
	raw := c.Query(key)
	if raw == "" {
		return false, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, apperrors.BadRequest(key+" must be true or false", err)
	}
	return v, nil
}
