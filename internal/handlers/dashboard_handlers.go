package handlers

import (
	"net/http"
	"strconv"
	"time"

	"medivision/internal/services"

	"github.com/labstack/echo/v4"
)

// DashboardHandlers serves the landing-screen summaries
type DashboardHandlers struct {
	dashboard services.DashboardService
}

func NewDashboardHandlers(dashboard services.DashboardService) *DashboardHandlers {
	return &DashboardHandlers{dashboard: dashboard}
}

// Stats returns totals for the requested date range, defaulting to the last
// 30 days.
func (h *DashboardHandlers) Stats(c echo.Context) error {
	from := c.QueryParam("from")
	to := c.QueryParam("to")
	if from == "" {
		from = time.Now().AddDate(0, 0, -30).Format("2006-01-02")
	}
	if to == "" {
		to = time.Now().Format("2006-01-02")
	}

	stats, err := h.dashboard.Stats(c.Request().Context(), from, to)
	if err != nil {
		return httpError(err, "Failed to compute dashboard stats")
	}
	return c.JSON(http.StatusOK, stats)
}

func (h *DashboardHandlers) RecentOrders(c echo.Context) error {
	limit, _ := strconv.Atoi(c.QueryParam("limit"))
	orders, err := h.dashboard.RecentOrders(c.Request().Context(), limit)
	if err != nil {
		return httpError(err, "Failed to list recent orders")
	}
	return c.JSON(http.StatusOK, orders)
}
