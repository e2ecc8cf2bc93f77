package handlers

import (
	"net/http"
	"time"

	"medivision/internal/caching"
	"medivision/internal/models"
	"medivision/internal/repositories"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const productCacheTTL = 5 * time.Minute

// ProductHandlers handles product master and stock search requests
type ProductHandlers struct {
	productRepo repositories.ProductRepository
	cache       caching.CacheService
}

func NewProductHandlers(productRepo repositories.ProductRepository, cache caching.CacheService) *ProductHandlers {
	return &ProductHandlers{productRepo: productRepo, cache: cache}
}

// CreateProduct adds a product master row. current_stock starts at zero; only
// the reconciliation flow moves it afterwards.
func (h *ProductHandlers) CreateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var product models.Product
	if err := c.Bind(&product); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if product.Code == "" || product.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Code and name are required")
	}
	product.ID = uuid.New()
	product.CurrentStock = 0
	if product.RowColor == "" {
		product.RowColor = "white"
	}

	if err := h.productRepo.Create(ctx, &product); err != nil {
		return httpError(err, "Failed to create product")
	}
	return c.JSON(http.StatusCreated, product)
}

func (h *ProductHandlers) ListProducts(c echo.Context) error {
	products, err := h.productRepo.List(c.Request().Context())
	if err != nil {
		return httpError(err, "Failed to list products")
	}
	return c.JSON(http.StatusOK, products)
}

// GetProduct serves one product by name, cache first.
func (h *ProductHandlers) GetProduct(c echo.Context) error {
	ctx := c.Request().Context()
	name := c.Param("name")

	if cached, err := h.cache.GetProduct(ctx, name); err == nil && cached != nil {
		return c.JSON(http.StatusOK, cached)
	}
	product, err := h.productRepo.GetByName(ctx, name)
	if err != nil {
		return httpError(err, "Failed to load product")
	}
	_ = h.cache.SetProduct(ctx, product, productCacheTTL)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandlers) UpdateProduct(c echo.Context) error {
	ctx := c.Request().Context()

	var product models.Product
	if err := c.Bind(&product); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid product id")
	}
	product.ID = id

	if err := h.productRepo.Update(ctx, &product); err != nil {
		return httpError(err, "Failed to update product")
	}
	// Stale cache expires on its own TTL if the delete fails
	_ = h.cache.DeleteProduct(ctx, product.Name)
	return c.JSON(http.StatusOK, product)
}

func (h *ProductHandlers) DeleteProduct(c echo.Context) error {
	if err := h.productRepo.Delete(c.Request().Context(), c.Param("id")); err != nil {
		return httpError(err, "Failed to delete product")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Product deleted"})
}

// SearchProducts is the generic name-or-code live search.
func (h *ProductHandlers) SearchProducts(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Query parameter q is required")
	}
	products, err := h.productRepo.Search(c.Request().Context(), q)
	if err != nil {
		return httpError(err, "Search failed")
	}
	return c.JSON(http.StatusOK, products)
}

// StockSearch backs the stock dashboard grid.
func (h *ProductHandlers) StockSearch(c echo.Context) error {
	q := c.QueryParam("q")
	rows, err := h.productRepo.StockSearch(c.Request().Context(), q)
	if err != nil {
		return httpError(err, "Search failed")
	}
	return c.JSON(http.StatusOK, rows)
}

// SalesSearch backs the sales invoice screen: products joined with their
// latest purchase batch, expiry and rate.
func (h *ProductHandlers) SalesSearch(c echo.Context) error {
	q := c.QueryParam("q")
	if q == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Query parameter q is required")
	}
	rows, err := h.productRepo.SalesSearch(c.Request().Context(), q)
	if err != nil {
		return httpError(err, "Search failed")
	}
	return c.JSON(http.StatusOK, rows)
}
