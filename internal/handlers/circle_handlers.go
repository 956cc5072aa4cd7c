package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"circle_app_echo/internal/middleware"
	"circle_app_echo/internal/models"
)

type CircleHandler struct {
	db *gorm.DB
}

func NewCircleHandler(db *gorm.DB) *CircleHandler {
	return &CircleHandler{db: db}
}

// Create handles POST /circles. The creator becomes the circle's admin.
func (h *CircleHandler) Create(c echo.Context) error {
	userID := middleware.UserID(c)

	var req CreateCircleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "name is required")
	}

	circle := models.Circle{
		Name:        req.Name,
		Description: req.Description,
		LogoURL:     req.LogoURL,
	}

	err := h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&circle).Error; err != nil {
			return err
		}
		membership := models.Membership{
			CircleID: circle.ID,
			UserID:   userID,
			Role:     models.RoleAdmin,
			JoinedAt: time.Now(),
		}
		return tx.Create(&membership).Error
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create circle")
	}

	return c.JSON(http.StatusCreated, circle)
}

// Get handles GET /circles/:id
func (h *CircleHandler) Get(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var circle models.Circle
	if err := h.db.First(&circle, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "circle not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch circle")
	}
	return c.JSON(http.StatusOK, circle)
}

// AddMember handles POST /circles/:id/members
func (h *CircleHandler) AddMember(c echo.Context) error {
	circleID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req AddMemberRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.UserID == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "user_id is required")
	}

	role := req.Role
	if role == "" {
		role = models.RoleMember
	}
	if role != models.RoleAdmin && role != models.RoleMember {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid role: must be ADMIN or MEMBER")
	}

	var user models.User
	if err := h.db.First(&user, req.UserID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "user not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch user")
	}

	membership := models.Membership{
		CircleID: circleID,
		UserID:   req.UserID,
		Role:     role,
		JoinedAt: time.Now(),
	}
	if err := h.db.Create(&membership).Error; err != nil {
		return echo.NewHTTPError(http.StatusConflict, "user is already a member")
	}

	return c.JSON(http.StatusCreated, membership)
}

// GetMembers handles GET /circles/:id/members
func (h *CircleHandler) GetMembers(c echo.Context) error {
	circleID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var memberships []models.Membership
	if err := h.db.Preload("User").Where("circle_id = ?", circleID).Order("joined_at").Find(&memberships).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch members")
	}
	return c.JSON(http.StatusOK, memberships)
}
