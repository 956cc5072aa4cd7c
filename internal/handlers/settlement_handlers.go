package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"circle_app_echo/internal/middleware"
	"circle_app_echo/internal/models"
	"circle_app_echo/internal/reconcile"
	"circle_app_echo/internal/services"
)

type SettlementHandler struct {
	db    *gorm.DB
	cache *services.RedisCache
}

func NewSettlementHandler(db *gorm.DB, cache *services.RedisCache) *SettlementHandler {
	return &SettlementHandler{db: db, cache: cache}
}

// MySettlementsResponse partitions the caller's settlements by payment state
type MySettlementsResponse struct {
	Unpaid []models.SettlementWithPayment `json:"unpaid"`
	Paid   []models.SettlementWithPayment `json:"paid"`
}

// createWithPayments persists a settlement plus one UNPAID payment row per
// target user in a single transaction.
func (h *SettlementHandler) createWithPayments(settlement *models.Settlement) error {
	return h.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(settlement).Error; err != nil {
			return err
		}
		for _, userID := range settlement.TargetUserIDs {
			payment := models.Payment{
				SettlementID: settlement.ID,
				UserID:       userID,
				Status:       models.PaymentUnpaid,
			}
			if err := tx.Create(&payment).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// Create handles POST /settlements (manual target selection)
func (h *SettlementHandler) Create(c echo.Context) error {
	var req CreateSettlementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.CircleID == 0 || req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "circle_id and title are required")
	}
	if req.Amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be positive")
	}
	if len(req.TargetUserIDs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "target_user_ids must not be empty")
	}

	settlement := models.Settlement{
		CircleID:      req.CircleID,
		EventID:       req.EventID,
		Title:         req.Title,
		Amount:        req.Amount,
		DueAt:         req.DueAt,
		TargetUserIDs: req.TargetUserIDs,
		BankInfo:      req.BankInfo,
		PayPayInfo:    req.PayPayInfo,
	}
	if err := h.createWithPayments(&settlement); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create settlement")
	}
	return c.JSON(http.StatusCreated, settlement)
}

// CreateFromEvent handles POST /events/:id/settlements. Targets are derived
// from the event's attending RSVPs (GO/LATE/EARLY); an empty attendee set
// rejects the request before anything is persisted.
func (h *SettlementHandler) CreateFromEvent(c echo.Context) error {
	eventID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req CreateEventSettlementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Title == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "title is required")
	}
	if req.Amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be positive")
	}

	var event models.Event
	if err := h.db.First(&event, eventID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "event not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch event")
	}

	var rsvps []models.RSVP
	if err := h.db.Where("event_id = ?", eventID).Find(&rsvps).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch RSVPs")
	}

	targets, err := reconcile.DeriveEventTargets(rsvps)
	if err != nil {
		if errors.Is(err, reconcile.ErrNoAttendees) {
			return echo.NewHTTPError(http.StatusUnprocessableEntity, err.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to derive targets")
	}

	settlement := models.Settlement{
		CircleID:      event.CircleID,
		EventID:       &event.ID,
		Title:         req.Title,
		Amount:        req.Amount,
		DueAt:         req.DueAt,
		TargetUserIDs: targets,
		BankInfo:      req.BankInfo,
		PayPayInfo:    req.PayPayInfo,
	}
	if err := h.createWithPayments(&settlement); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create settlement")
	}
	return c.JSON(http.StatusCreated, settlement)
}

// GetByEvent handles GET /events/:id/settlements
func (h *SettlementHandler) GetByEvent(c echo.Context) error {
	eventID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var settlements []models.Settlement
	if err := h.db.Where("event_id = ?", eventID).Order("created_at desc").Find(&settlements).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch settlements")
	}
	return c.JSON(http.StatusOK, settlements)
}

// GetMy handles GET /settlements/me, returning the caller's settlements
// partitioned into unpaid and paid.
func (h *SettlementHandler) GetMy(c echo.Context) error {
	userID := middleware.UserID(c)

	items, err := h.mySettlementItems(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch settlements")
	}

	unpaid, paid := reconcile.Partition(items)
	return c.JSON(http.StatusOK, MySettlementsResponse{Unpaid: unpaid, Paid: paid})
}

// mySettlementItems collects settlement+payment pairs for one user
func (h *SettlementHandler) mySettlementItems(userID uint) ([]models.SettlementWithPayment, error) {
	var payments []models.Payment
	if err := h.db.Preload("Settlement").Where("user_id = ?", userID).Find(&payments).Error; err != nil {
		return nil, err
	}

	items := make([]models.SettlementWithPayment, 0, len(payments))
	for i := range payments {
		// Settlement rows can disappear via soft delete; skip orphans.
		if payments[i].Settlement.ID == 0 {
			continue
		}
		payment := payments[i]
		item := models.SettlementWithPayment{Settlement: payment.Settlement, Payment: &payment}
		item.Payment.Settlement = models.Settlement{}
		items = append(items, item)
	}
	return items, nil
}

// ReportPayment handles POST /settlements/:id/report. Upserts the caller's
// payment to PAID_REPORTED; re-reporting overwrites method and timestamp
// (last write wins).
func (h *SettlementHandler) ReportPayment(c echo.Context) error {
	settlementID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	userID := middleware.UserID(c)

	var req ReportPaymentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if !models.ValidPaymentMethod(req.Method) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid method: must be BANK or PAYPAY")
	}

	var settlement models.Settlement
	if err := h.db.First(&settlement, settlementID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "settlement not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch settlement")
	}
	if !settlement.HasTarget(userID) {
		return echo.NewHTTPError(http.StatusForbidden, "not a target user of this settlement")
	}

	now := time.Now()
	var payment models.Payment
	err = h.db.Where("settlement_id = ? AND user_id = ?", settlementID, userID).First(&payment).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		payment = models.Payment{
			SettlementID: settlementID,
			UserID:       userID,
			Status:       models.PaymentPaidReported,
			Method:       req.Method,
			Note:         req.Note,
			ReportedAt:   &now,
		}
		if err := h.db.Create(&payment).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to save payment")
		}
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch payment")
	default:
		payment.Status = models.PaymentPaidReported
		payment.Method = req.Method
		payment.Note = req.Note
		payment.ReportedAt = &now
		if err := h.db.Save(&payment).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to save payment")
		}
	}

	h.invalidateLeaderboard(c, settlement.CircleID)
	return c.JSON(http.StatusOK, payment)
}

// Confirm handles POST /settlements/:id/confirm/:userId. A circle admin
// advances a self-reported payment to the terminal CONFIRMED state.
func (h *SettlementHandler) Confirm(c echo.Context) error {
	settlementID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	targetUserID, err := uintParam(c, "userId")
	if err != nil {
		return err
	}

	var settlement models.Settlement
	if err := h.db.First(&settlement, settlementID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "settlement not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch settlement")
	}

	if err := requireCircleAdmin(h.db, settlement.CircleID, middleware.UserID(c)); err != nil {
		return err
	}

	var payment models.Payment
	if err := h.db.Where("settlement_id = ? AND user_id = ?", settlementID, targetUserID).First(&payment).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "payment not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch payment")
	}
	if payment.Status != models.PaymentPaidReported {
		return echo.NewHTTPError(http.StatusBadRequest, "only reported payments can be confirmed")
	}

	payment.Status = models.PaymentConfirmed
	if err := h.db.Save(&payment).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to confirm payment")
	}

	h.invalidateLeaderboard(c, settlement.CircleID)
	return c.JSON(http.StatusOK, payment)
}

// Update handles PUT /settlements/:id. Only title, amount and due date are
// editable; the target list is immutable after creation.
func (h *SettlementHandler) Update(c echo.Context) error {
	settlementID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdateSettlementRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Amount <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "amount must be positive")
	}

	var settlement models.Settlement
	if err := h.db.First(&settlement, settlementID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "settlement not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch settlement")
	}

	settlement.Title = req.Title
	settlement.Amount = req.Amount
	settlement.DueAt = req.DueAt

	if err := h.db.Save(&settlement).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update settlement")
	}
	return c.JSON(http.StatusOK, settlement)
}

func (h *SettlementHandler) invalidateLeaderboard(c echo.Context, circleID uint) {
	if err := h.cache.Delete(c.Request().Context(), services.LeaderboardKey(circleID)); err != nil {
		c.Logger().Warnf("failed to invalidate leaderboard cache for circle %d: %v", circleID, err)
	}
}
