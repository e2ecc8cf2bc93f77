package handlers

import (
	"context"
	"net/http"
	"strconv"

	"medivision/internal/caching"
	"medivision/internal/models"
	"medivision/internal/services"

	"github.com/labstack/echo/v4"
)

// SalesHandlers exposes the sales side of the reconciliation flow
type SalesHandlers struct {
	recon services.ReconciliationService
	cache caching.CacheService
}

func NewSalesHandlers(recon services.ReconciliationService, cache caching.CacheService) *SalesHandlers {
	return &SalesHandlers{recon: recon, cache: cache}
}

// NextInvoiceNo hands the UI the next free invoice number as a string.
func (h *SalesHandlers) NextInvoiceNo(c echo.Context) error {
	next, err := h.recon.NextSalesInvoiceNo(c.Request().Context())
	if err != nil {
		return httpError(err, "Failed to compute next invoice number")
	}
	return c.JSON(http.StatusOK, map[string]string{"next_invoice_no": next})
}

func (h *SalesHandlers) CreateSales(c echo.Context) error {
	ctx := c.Request().Context()

	var inv models.SalesInvoiceFull
	if err := c.Bind(&inv); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.recon.CreateSales(ctx, &inv); err != nil {
		return httpError(err, "Failed to save sales invoice")
	}
	h.invalidate(ctx)
	return c.JSON(http.StatusCreated, inv)
}

func (h *SalesHandlers) GetSales(c echo.Context) error {
	inv, err := h.recon.GetSales(c.Request().Context(), c.Param("invoice_no"))
	if err != nil {
		return httpError(err, "Failed to load sales invoice")
	}
	return c.JSON(http.StatusOK, inv)
}

func (h *SalesHandlers) UpdateSales(c echo.Context) error {
	ctx := c.Request().Context()

	var inv models.SalesInvoiceFull
	if err := c.Bind(&inv); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.recon.UpdateSales(ctx, c.Param("invoice_no"), &inv); err != nil {
		return httpError(err, "Failed to update sales invoice")
	}
	h.invalidate(ctx)
	return c.JSON(http.StatusOK, inv)
}

func (h *SalesHandlers) DeleteSales(c echo.Context) error {
	ctx := c.Request().Context()

	if err := h.recon.DeleteSales(ctx, c.Param("invoice_no")); err != nil {
		return httpError(err, "Failed to delete sales invoice")
	}
	h.invalidate(ctx)
	return c.JSON(http.StatusOK, map[string]string{"message": "Sales invoice deleted"})
}

func (h *SalesHandlers) ListSales(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	invoices, err := h.recon.ListSales(c.Request().Context(), limit)
	if err != nil {
		return httpError(err, "Failed to list sales invoices")
	}
	return c.JSON(http.StatusOK, invoices)
}

func (h *SalesHandlers) invalidate(ctx context.Context) {
	_ = h.cache.InvalidateStock(ctx)
}
