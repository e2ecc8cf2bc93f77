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

// PurchaseHandlers exposes the purchase side of the reconciliation flow
type PurchaseHandlers struct {
	recon services.ReconciliationService
	cache caching.CacheService
}

func NewPurchaseHandlers(recon services.ReconciliationService, cache caching.CacheService) *PurchaseHandlers {
	return &PurchaseHandlers{recon: recon, cache: cache}
}

// NextEntryNo hands the UI the next free entry number.
func (h *PurchaseHandlers) NextEntryNo(c echo.Context) error {
	next, err := h.recon.NextPurchaseEntryNo(c.Request().Context())
	if err != nil {
		return httpError(err, "Failed to compute next entry number")
	}
	return c.JSON(http.StatusOK, map[string]int{"next_entry_no": next})
}

func (h *PurchaseHandlers) CreatePurchase(c echo.Context) error {
	ctx := c.Request().Context()

	var entry models.PurchaseEntry
	if err := c.Bind(&entry); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.recon.CreatePurchase(ctx, &entry); err != nil {
		return httpError(err, "Failed to save purchase entry")
	}
	h.invalidate(ctx)
	return c.JSON(http.StatusCreated, entry)
}

func (h *PurchaseHandlers) GetPurchase(c echo.Context) error {
	entryNo, err := strconv.Atoi(c.Param("entry_no"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid entry number")
	}
	entry, err := h.recon.GetPurchase(c.Request().Context(), entryNo)
	if err != nil {
		return httpError(err, "Failed to load purchase entry")
	}
	return c.JSON(http.StatusOK, entry)
}

func (h *PurchaseHandlers) UpdatePurchase(c echo.Context) error {
	ctx := c.Request().Context()

	entryNo, err := strconv.Atoi(c.Param("entry_no"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid entry number")
	}
	var entry models.PurchaseEntry
	if err := c.Bind(&entry); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if err := h.recon.UpdatePurchase(ctx, entryNo, &entry); err != nil {
		return httpError(err, "Failed to update purchase entry")
	}
	h.invalidate(ctx)
	return c.JSON(http.StatusOK, entry)
}

func (h *PurchaseHandlers) DeletePurchase(c echo.Context) error {
	ctx := c.Request().Context()

	entryNo, err := strconv.Atoi(c.Param("entry_no"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid entry number")
	}
	if err := h.recon.DeletePurchase(ctx, entryNo); err != nil {
		return httpError(err, "Failed to delete purchase entry")
	}
	h.invalidate(ctx)
	return c.JSON(http.StatusOK, map[string]string{"message": "Purchase entry deleted"})
}

func (h *PurchaseHandlers) ListEntryNos(c echo.Context) error {
	nos, err := h.recon.ListPurchaseEntryNos(c.Request().Context())
	if err != nil {
		return httpError(err, "Failed to list purchase entries")
	}
	return c.JSON(http.StatusOK, nos)
}

// invalidate drops product and dashboard caches after any stock movement.
func (h *PurchaseHandlers) invalidate(ctx context.Context) {
	_ = h.cache.InvalidateStock(ctx)
}
