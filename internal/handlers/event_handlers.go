package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"circle_app_echo/internal/middleware"
	"circle_app_echo/internal/models"
)

type EventHandler struct {
	db *gorm.DB
}

func NewEventHandler(db *gorm.DB) *EventHandler {
	return &EventHandler{db: db}
}

// EventWithRSVP pairs an event with the caller's own RSVP. MyRSVP is nil
// when the user hasn't answered yet.
type EventWithRSVP struct {
	Event  models.Event `json:"event"`
	MyRSVP *models.RSVP `json:"my_rsvp"`
}

// Create handles POST /events
func (h *EventHandler) Create(c echo.Context) error {
	userID := middleware.UserID(c)

	var req CreateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.CircleID == 0 || req.Title == "" || req.StartAt.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "circle_id, title and start_at are required")
	}

	event := models.Event{
		CircleID:      req.CircleID,
		Title:         req.Title,
		StartAt:       req.StartAt,
		Location:      req.Location,
		CoverImageURL: req.CoverImageURL,
		CreatedBy:     userID,
	}
	if err := h.db.Create(&event).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create event")
	}
	return c.JSON(http.StatusCreated, event)
}

// Get handles GET /events/:id
func (h *EventHandler) Get(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var event models.Event
	if err := h.db.First(&event, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch event")
	}
	return c.JSON(http.StatusOK, event)
}

// GetByCircle handles GET /circles/:id/events. With ?withRsvpStatus=true
// the caller's RSVP is joined in per event in a single query, replacing the
// per-event fetch fan-out the web client used to do.
func (h *EventHandler) GetByCircle(c echo.Context) error {
	circleID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var events []models.Event
	if err := h.db.Where("circle_id = ?", circleID).Order("start_at").Find(&events).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch events")
	}

	if c.QueryParam("withRsvpStatus") != "true" {
		return c.JSON(http.StatusOK, events)
	}

	userID := middleware.UserID(c)
	eventIDs := make([]uint, 0, len(events))
	for _, e := range events {
		eventIDs = append(eventIDs, e.ID)
	}

	rsvpByEvent := make(map[uint]*models.RSVP, len(eventIDs))
	if len(eventIDs) > 0 {
		var rsvps []models.RSVP
		if err := h.db.Where("user_id = ? AND event_id IN ?", userID, eventIDs).Find(&rsvps).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch RSVP status")
		}
		for i := range rsvps {
			rsvpByEvent[rsvps[i].EventID] = &rsvps[i]
		}
	}

	result := make([]EventWithRSVP, 0, len(events))
	for _, e := range events {
		result = append(result, EventWithRSVP{Event: e, MyRSVP: rsvpByEvent[e.ID]})
	}
	return c.JSON(http.StatusOK, result)
}

// Update handles PUT /events/:id
func (h *EventHandler) Update(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateEventRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}

	var event models.Event
	if err := h.db.First(&event, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch event")
	}

	event.Title = req.Title
	if !req.StartAt.IsZero() {
		event.StartAt = req.StartAt
	}
	event.Location = req.Location
	event.CoverImageURL = req.CoverImageURL

	if err := h.db.Save(&event).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update event")
	}
	return c.JSON(http.StatusOK, event)
}

// Delete handles DELETE /events/:id
func (h *EventHandler) Delete(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	if err := h.db.Delete(&models.Event{}, id).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete event")
	}
	return c.NoContent(http.StatusNoContent)
}
