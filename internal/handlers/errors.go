package handlers

import (
	"errors"
	"net/http"

	"medivision/internal/common"

	"github.com/labstack/echo/v4"
)

// httpError maps the domain error taxonomy onto HTTP status codes. Anything
// unrecognized surfaces as a generic 500 without leaking internals.
func httpError(err error, fallback string) *echo.HTTPError {
	switch {
	case errors.Is(err, common.ErrNotFound):
		return echo.NewHTTPError(http.StatusNotFound, err.Error())
	case errors.Is(err, common.ErrConflict):
		return echo.NewHTTPError(http.StatusConflict, err.Error())
	case errors.Is(err, common.ErrValidation):
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	default:
		return echo.NewHTTPError(http.StatusInternalServerError, fallback)
	}
}
