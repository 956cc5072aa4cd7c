package handlers

import (
	"log"
	"net/http"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"circle_app_echo/internal/middleware"
	"circle_app_echo/internal/models"
)

type RSVPHandler struct {
	db *gorm.DB
}

func NewRSVPHandler(db *gorm.DB) *RSVPHandler {
	return &RSVPHandler{db: db}
}

// Submit handles POST /events/:id/rsvp. Upsert semantics: the latest
// submission overwrites any prior answer for the same (event, user).
func (h *RSVPHandler) Submit(c echo.Context) error {
	eventID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	userID := middleware.UserID(c)

	var req SubmitRSVPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if !models.ValidRSVPStatus(req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status: must be GO, NO, LATE or EARLY")
	}

	var event models.Event
	if err := h.db.First(&event, eventID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch event")
	}

	var rsvp models.RSVP
	err = h.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&rsvp).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		rsvp = models.RSVP{EventID: eventID, UserID: userID, Status: req.Status, Note: req.Note}
		if err := h.db.Create(&rsvp).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to save RSVP")
		}
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch RSVP")
	default:
		rsvp.Status = req.Status
		rsvp.Note = req.Note
		if err := h.db.Save(&rsvp).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to save RSVP")
		}
	}

	// Keep payment rows in sync with the attendance answer. Failures here
	// only log; the RSVP itself is already saved.
	if rsvp.Attending() {
		h.ensurePaymentRecords(eventID, userID)
	} else if rsvp.Status == models.RSVPNo {
		h.removeUnpaidPaymentRecords(eventID, userID)
	}

	return c.JSON(http.StatusOK, rsvp)
}

// ensurePaymentRecords backfills UNPAID payment rows for the event's
// existing settlements when a user becomes attending.
func (h *RSVPHandler) ensurePaymentRecords(eventID, userID uint) {
	var settlements []models.Settlement
	if err := h.db.Where("event_id = ?", eventID).Find(&settlements).Error; err != nil {
		log.Printf("Failed to fetch settlements for event %d: %v", eventID, err)
		return
	}

	for _, settlement := range settlements {
		var existing models.Payment
		err := h.db.Where("settlement_id = ? AND user_id = ?", settlement.ID, userID).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			log.Printf("Failed to check payment for settlement %d, user %d: %v", settlement.ID, userID, err)
			continue
		}

		payment := models.Payment{
			SettlementID: settlement.ID,
			UserID:       userID,
			Status:       models.PaymentUnpaid,
		}
		if err := h.db.Create(&payment).Error; err != nil {
			log.Printf("Failed to create payment for settlement %d, user %d: %v", settlement.ID, userID, err)
		}
	}
}

// removeUnpaidPaymentRecords drops still-unpaid rows when a user declines.
// Reported or confirmed payments are kept.
func (h *RSVPHandler) removeUnpaidPaymentRecords(eventID, userID uint) {
	var settlements []models.Settlement
	if err := h.db.Where("event_id = ?", eventID).Find(&settlements).Error; err != nil {
		log.Printf("Failed to fetch settlements for event %d: %v", eventID, err)
		return
	}

	for _, settlement := range settlements {
		err := h.db.Where("settlement_id = ? AND user_id = ? AND status = ?",
			settlement.ID, userID, models.PaymentUnpaid).Delete(&models.Payment{}).Error
		if err != nil {
			log.Printf("Failed to delete payment for settlement %d, user %d: %v", settlement.ID, userID, err)
		}
	}
}

// GetMy handles GET /events/:id/rsvp/me. A user who hasn't answered yet
// gets a 404; clients treat that as "not registered".
func (h *RSVPHandler) GetMy(c echo.Context) error {
	eventID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	userID := middleware.UserID(c)

	var rsvp models.RSVP
	if err := h.db.Where("event_id = ? AND user_id = ?", eventID, userID).First(&rsvp).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "no RSVP yet")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch RSVP")
	}
	return c.JSON(http.StatusOK, rsvp)
}

// GetByEvent handles GET /events/:id/rsvps
func (h *RSVPHandler) GetByEvent(c echo.Context) error {
	eventID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var rsvps []models.RSVP
	if err := h.db.Preload("User").Where("event_id = ?", eventID).Find(&rsvps).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch RSVPs")
	}
	return c.JSON(http.StatusOK, rsvps)
}
