package handlers

import (
	"net/http"
	"time"

	"medivision/internal/common"
	"medivision/internal/repositories"
	"medivision/internal/services"

	"github.com/labstack/echo/v4"
)

// UserHandlers handles user administration and profile requests
type UserHandlers struct {
	userRepo repositories.UserRepository
	storage  services.StorageService
}

func NewUserHandlers(userRepo repositories.UserRepository, storage services.StorageService) *UserHandlers {
	return &UserHandlers{userRepo: userRepo, storage: storage}
}

// ListUsers returns all users. Admin only.
func (h *UserHandlers) ListUsers(c echo.Context) error {
	users, err := h.userRepo.List(c.Request().Context())
	if err != nil {
		return httpError(err, "Failed to list users")
	}
	return c.JSON(http.StatusOK, users)
}

// DeleteUser removes a user by username. Admin only.
func (h *UserHandlers) DeleteUser(c echo.Context) error {
	username := c.Param("username")
	if err := h.userRepo.Delete(c.Request().Context(), username); err != nil {
		return httpError(err, "Failed to delete user")
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "User deleted"})
}

// UploadProfilePic stores the uploaded image in object storage and returns a
// presigned URL for immediate display.
func (h *UserHandlers) UploadProfilePic(c echo.Context) error {
	ctx := c.Request().Context()

	username, ok := common.UsernameFromContext(ctx)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "File is required")
	}
	src, err := file.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot read uploaded file")
	}
	defer src.Close()

	objectName, err := h.storage.UploadProfilePic(ctx, username, src, file.Size,
		file.Header.Get("Content-Type"))
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to store profile picture")
	}
	if err := h.userRepo.SetProfilePic(ctx, username, objectName); err != nil {
		return httpError(err, "Failed to save profile picture")
	}

	url, err := h.storage.ProfilePicURL(ctx, objectName, 24*time.Hour)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "Failed to generate picture URL")
	}
	return c.JSON(http.StatusOK, map[string]string{"profile_pic": url})
}
