package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"circle_app_echo/internal/middleware"
	"circle_app_echo/internal/models"
)

type AnnouncementHandler struct {
	db *gorm.DB
}

func NewAnnouncementHandler(db *gorm.DB) *AnnouncementHandler {
	return &AnnouncementHandler{db: db}
}

// Create handles POST /announcements
func (h *AnnouncementHandler) Create(c echo.Context) error {
	var req CreateAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.CircleID == 0 || req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "circle_id and title are required")
	}

	announcement := models.Announcement{
		CircleID:  req.CircleID,
		EventID:   req.EventID,
		Title:     req.Title,
		Body:      req.Body,
		CreatedBy: middleware.UserID(c),
	}
	if err := h.db.Create(&announcement).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create announcement")
	}
	return c.JSON(http.StatusCreated, announcement)
}

// Get handles GET /announcements/:id
func (h *AnnouncementHandler) Get(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var announcement models.Announcement
	if err := h.db.First(&announcement, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "announcement not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch announcement")
	}
	return c.JSON(http.StatusOK, announcement)
}

// Update handles PUT /announcements/:id
func (h *AnnouncementHandler) Update(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateAnnouncementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}

	var announcement models.Announcement
	if err := h.db.First(&announcement, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "announcement not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch announcement")
	}

	announcement.Title = req.Title
	announcement.Body = req.Body
	if err := h.db.Save(&announcement).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update announcement")
	}
	return c.JSON(http.StatusOK, announcement)
}

// Delete handles DELETE /announcements/:id
func (h *AnnouncementHandler) Delete(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	result := h.db.Delete(&models.Announcement{}, id)
	if result.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete announcement")
	}
	if result.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "announcement not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// GetByCircle handles GET /circles/:id/announcements
func (h *AnnouncementHandler) GetByCircle(c echo.Context) error {
	circleID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var announcements []models.Announcement
	if err := h.db.Where("circle_id = ?", circleID).Order("created_at desc").Find(&announcements).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch announcements")
	}
	return c.JSON(http.StatusOK, announcements)
}

// GetByEvent handles GET /events/:id/announcements
func (h *AnnouncementHandler) GetByEvent(c echo.Context) error {
	eventID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var announcements []models.Announcement
	if err := h.db.Where("event_id = ?", eventID).Order("created_at desc").Find(&announcements).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch announcements")
	}
	return c.JSON(http.StatusOK, announcements)
}
