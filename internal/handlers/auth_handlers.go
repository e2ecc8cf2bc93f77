package handlers

import (
	"net/http"

	"medivision/internal/common"
	"medivision/internal/services"

	"github.com/labstack/echo/v4"
)

// AuthHandlers handles authentication-related HTTP requests
type AuthHandlers struct {
	authService services.AuthService
}

func NewAuthHandlers(authService services.AuthService) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// LoginRequest represents the login request payload
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles user login with username and password
func (h *AuthHandlers) Login(c echo.Context) error {
	ctx := c.Request().Context()

	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}
	if req.Username == "" || req.Password == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "Username and password are required")
	}

	token, err := h.authService.Login(ctx, req.Username, req.Password)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid username or password")
	}
	return c.JSON(http.StatusOK, token)
}

// RegisterRequest represents the registration request payload
type RegisterRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Company  string `json:"company"`
	Role     string `json:"role"`
}

// Register creates a new user account. Admin only.
func (h *AuthHandlers) Register(c echo.Context) error {
	ctx := c.Request().Context()

	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request format")
	}

	user, err := h.authService.Register(ctx, req.Username, req.Password, req.Company, req.Role)
	if err != nil {
		return httpError(err, "Failed to create user")
	}
	return c.JSON(http.StatusCreated, user)
}

// Me returns the authenticated user's profile
func (h *AuthHandlers) Me(c echo.Context) error {
	ctx := c.Request().Context()

	username, ok := common.UsernameFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	user, err := h.authService.CurrentUser(ctx, username)
	if err != nil {
		return httpError(err, "Failed to load user")
	}
	return c.JSON(http.StatusOK, user)
}
