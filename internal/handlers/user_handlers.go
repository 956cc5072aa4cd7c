package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"circle_app_echo/internal/models"
)

type UserHandler struct {
	db *gorm.DB
}

func NewUserHandler(db *gorm.DB) *UserHandler {
	return &UserHandler{db: db}
}

// CreateOrUpdate handles POST /users. A request carrying an existing id
// updates that user's profile; otherwise a new user is created.
func (h *UserHandler) CreateOrUpdate(c echo.Context) error {
	var req CreateUserRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	if req.ID > 0 {
		var user models.User
		if err := h.db.First(&user, req.ID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return echo.NewHTTPError(http.StatusNotFound, "user not found")
			}
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch user")
		}

		user.Name = req.Name
		user.AvatarURL = req.AvatarURL
		user.Email = req.Email
		if err := h.db.Save(&user).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to update user")
		}
		return c.JSON(http.StatusOK, user)
	}

	user := models.User{
		Name:      req.Name,
		AvatarURL: req.AvatarURL,
		Email:     req.Email,
	}
	if err := h.db.Create(&user).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create user")
	}
	return c.JSON(http.StatusCreated, user)
}

// Get handles GET /users/:id
func (h *UserHandler) Get(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var user models.User
	if err := h.db.First(&user, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch user")
	}
	return c.JSON(http.StatusOK, user)
}

// List handles GET /users
func (h *UserHandler) List(c echo.Context) error {
	var users []models.User
	if err := h.db.Order("id").Find(&users).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch users")
	}
	return c.JSON(http.StatusOK, users)
}
