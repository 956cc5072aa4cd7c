package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"circle_app_echo/internal/middleware"
	"circle_app_echo/internal/models"
	"circle_app_echo/internal/services"
)

type PracticeHandler struct {
	db    *gorm.DB
	cache *services.RedisCache
}

func NewPracticeHandler(db *gorm.DB, cache *services.RedisCache) *PracticeHandler {
	return &PracticeHandler{db: db, cache: cache}
}

// SeriesDetailResponse bundles a series with its sessions and the caller's
// RSVPs so the weekly attendance view loads in one request.
type SeriesDetailResponse struct {
	Series   models.PracticeSeries    `json:"series"`
	Sessions []models.PracticeSession `json:"sessions"`
	MyRSVPs  []models.PracticeRSVP    `json:"my_rsvps"`
}

// --- Categories ---

// CreateCategory handles POST /practice-categories
func (h *PracticeHandler) CreateCategory(c echo.Context) error {
	var req CreatePracticeCategoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.CircleID == 0 || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "circle_id and name are required")
	}

	category := models.PracticeCategory{
		CircleID:  req.CircleID,
		Name:      req.Name,
		ParentID:  req.ParentID,
		Order:     req.Order,
		CreatedBy: middleware.UserID(c),
	}
	if err := h.db.Create(&category).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create category")
	}
	return c.JSON(http.StatusCreated, category)
}

// GetCategoriesByCircle handles GET /circles/:id/practice-categories
func (h *PracticeHandler) GetCategoriesByCircle(c echo.Context) error {
	circleID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var categories []models.PracticeCategory
	if err := h.db.Where("circle_id = ?", circleID).Order("sort_order asc, id asc").Find(&categories).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch categories")
	}
	return c.JSON(http.StatusOK, categories)
}

// DeleteCategory handles DELETE /practice-categories/:id
func (h *PracticeHandler) DeleteCategory(c echo.Context) error {
	id, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	result := h.db.Delete(&models.PracticeCategory{}, id)
	if result.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete category")
	}
	if result.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "category not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Series ---

// CreateSeries handles POST /practice-series
func (h *PracticeHandler) CreateSeries(c echo.Context) error {
	var req CreatePracticeSeriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.CircleID == 0 || req.Name == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "circle_id and name are required")
	}
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return echo.NewHTTPError(http.StatusBadRequest, "day_of_week must be 0 (Sunday) through 6 (Saturday)")
	}
	if req.Fee < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "fee must not be negative")
	}

	series := models.PracticeSeries{
		CircleID:   req.CircleID,
		CategoryID: req.CategoryID,
		Name:       req.Name,
		DayOfWeek:  req.DayOfWeek,
		StartTime:  req.StartTime,
		Location:   req.Location,
		Fee:        req.Fee,
		CreatedBy:  middleware.UserID(c),
	}
	if err := h.db.Create(&series).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create series")
	}
	return c.JSON(http.StatusCreated, series)
}

// GetSeriesByCircle handles GET /circles/:id/practice-series
func (h *PracticeHandler) GetSeriesByCircle(c echo.Context) error {
	circleID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var series []models.PracticeSeries
	if err := h.db.Where("circle_id = ?", circleID).Order("day_of_week asc, start_time asc").Find(&series).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch series")
	}
	return c.JSON(http.StatusOK, series)
}

// GetSeriesDetail handles GET /practice-series/:id
func (h *PracticeHandler) GetSeriesDetail(c echo.Context) error {
	seriesID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	userID := middleware.UserID(c)

	var series models.PracticeSeries
	if err := h.db.First(&series, seriesID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "series not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch series")
	}

	var sessions []models.PracticeSession
	if err := h.db.Where("series_id = ?", seriesID).Order("date asc").Find(&sessions).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch sessions")
	}

	var myRSVPs []models.PracticeRSVP
	if len(sessions) > 0 {
		sessionIDs := make([]uint, len(sessions))
		for i, s := range sessions {
			sessionIDs[i] = s.ID
		}
		if err := h.db.Where("session_id IN ? AND user_id = ?", sessionIDs, userID).Find(&myRSVPs).Error; err != nil {
			return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch RSVPs")
		}
	}

	return c.JSON(http.StatusOK, SeriesDetailResponse{
		Series:   series,
		Sessions: sessions,
		MyRSVPs:  myRSVPs,
	})
}

// UpdateSeries handles PUT /practice-series/:id
func (h *PracticeHandler) UpdateSeries(c echo.Context) error {
	seriesID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req UpdatePracticeSeriesRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.DayOfWeek < 0 || req.DayOfWeek > 6 {
		return echo.NewHTTPError(http.StatusBadRequest, "day_of_week must be 0 (Sunday) through 6 (Saturday)")
	}
	if req.Fee < 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "fee must not be negative")
	}

	var series models.PracticeSeries
	if err := h.db.First(&series, seriesID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "series not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch series")
	}

	series.Name = req.Name
	series.DayOfWeek = req.DayOfWeek
	series.StartTime = req.StartTime
	series.Location = req.Location
	series.Fee = req.Fee

	if err := h.db.Save(&series).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to update series")
	}
	return c.JSON(http.StatusOK, series)
}

// DeleteSeries handles DELETE /practice-series/:id
func (h *PracticeHandler) DeleteSeries(c echo.Context) error {
	seriesID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	result := h.db.Delete(&models.PracticeSeries{}, seriesID)
	if result.Error != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to delete series")
	}
	if result.RowsAffected == 0 {
		return echo.NewHTTPError(http.StatusNotFound, "series not found")
	}
	return c.NoContent(http.StatusNoContent)
}

// --- Sessions ---

// CreateSession handles POST /practice-series/:id/sessions (one-off session)
func (h *PracticeHandler) CreateSession(c echo.Context) error {
	seriesID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req CreateSessionRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.Date.IsZero() {
		return echo.NewHTTPError(http.StatusBadRequest, "date is required")
	}

	if err := h.db.First(&models.PracticeSeries{}, seriesID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "series not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch series")
	}

	session := models.PracticeSession{
		SeriesID: seriesID,
		Date:     req.Date,
		Note:     req.Note,
	}
	if err := h.db.Create(&session).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create session")
	}
	return c.JSON(http.StatusCreated, session)
}

// GenerateSessions handles POST /practice-series/:id/sessions/generate,
// expanding the series' weekly recurrence over [from, to]. Dates that
// already have a session are skipped.
func (h *PracticeHandler) GenerateSessions(c echo.Context) error {
	seriesID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var req GenerateSessionsRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if req.From.IsZero() || req.To.IsZero() || req.To.Before(req.From) {
		return echo.NewHTTPError(http.StatusBadRequest, "from and to must form a valid range")
	}

	var series models.PracticeSeries
	if err := h.db.First(&series, seriesID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "series not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch series")
	}

	var existing []models.PracticeSession
	if err := h.db.Where("series_id = ? AND date BETWEEN ? AND ?", seriesID, req.From, req.To).Find(&existing).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch sessions")
	}
	taken := make(map[string]bool, len(existing))
	for _, s := range existing {
		taken[s.Date.Format("2006-01-02")] = true
	}

	var created []models.PracticeSession
	err = h.db.Transaction(func(tx *gorm.DB) error {
		for _, date := range series.SessionDates(req.From, req.To) {
			if taken[date.Format("2006-01-02")] {
				continue
			}
			session := models.PracticeSession{SeriesID: seriesID, Date: date}
			if err := tx.Create(&session).Error; err != nil {
				return err
			}
			created = append(created, session)
		}
		return nil
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to create sessions")
	}
	if created == nil {
		created = []models.PracticeSession{}
	}
	return c.JSON(http.StatusCreated, created)
}

// CancelSession handles POST /practice-sessions/:id/cancel. Cancelled
// sessions are excluded from dues counting.
func (h *PracticeHandler) CancelSession(c echo.Context) error {
	sessionID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var session models.PracticeSession
	if err := h.db.First(&session, sessionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "session not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch session")
	}

	session.Cancelled = true
	if err := h.db.Save(&session).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to cancel session")
	}
	return c.JSON(http.StatusOK, session)
}

// --- Practice RSVPs ---

func (h *PracticeHandler) upsertPracticeRSVP(tx *gorm.DB, sessionID, userID uint, status models.PracticeRSVPStatus) (models.PracticeRSVP, error) {
	var rsvp models.PracticeRSVP
	err := tx.Where("session_id = ? AND user_id = ?", sessionID, userID).First(&rsvp).Error
	switch {
	case err == gorm.ErrRecordNotFound:
		rsvp = models.PracticeRSVP{SessionID: sessionID, UserID: userID, Status: status}
		return rsvp, tx.Create(&rsvp).Error
	case err != nil:
		return rsvp, err
	default:
		rsvp.Status = status
		return rsvp, tx.Save(&rsvp).Error
	}
}

// SubmitSessionRSVP handles POST /practice-sessions/:id/rsvp
func (h *PracticeHandler) SubmitSessionRSVP(c echo.Context) error {
	sessionID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	userID := middleware.UserID(c)

	var req PracticeRSVPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if !models.ValidPracticeRSVPStatus(req.Status) {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid status: must be GO or NO")
	}

	if err := h.db.First(&models.PracticeSession{}, sessionID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "session not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch session")
	}

	rsvp, err := h.upsertPracticeRSVP(h.db, sessionID, userID, req.Status)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save RSVP")
	}
	return c.JSON(http.StatusOK, rsvp)
}

// SubmitBulkRSVPs handles POST /practice-series/:id/bulk-rsvp, answering a
// whole month's sessions of one series at once.
func (h *PracticeHandler) SubmitBulkRSVPs(c echo.Context) error {
	seriesID, err := uintParam(c, "id")
	if err != nil {
		return err
	}
	userID := middleware.UserID(c)

	var req BulkRSVPRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid JSON payload")
	}
	if len(req.RSVPs) == 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "rsvps must not be empty")
	}
	for _, entry := range req.RSVPs {
		if !models.ValidPracticeRSVPStatus(entry.Status) {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid status: must be GO or NO")
		}
	}

	var saved []models.PracticeRSVP
	err = h.db.Transaction(func(tx *gorm.DB) error {
		for _, entry := range req.RSVPs {
			var session models.PracticeSession
			if err := tx.First(&session, entry.SessionID).Error; err != nil {
				return err
			}
			if session.SeriesID != seriesID {
				return echo.NewHTTPError(http.StatusBadRequest, "session does not belong to this series")
			}
			rsvp, err := h.upsertPracticeRSVP(tx, entry.SessionID, userID, entry.Status)
			if err != nil {
				return err
			}
			saved = append(saved, rsvp)
		}
		return nil
	})
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "session not found")
		}
		var he *echo.HTTPError
		if errors.As(err, &he) {
			return he
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to save RSVPs")
	}
	return c.JSON(http.StatusOK, saved)
}

// GetSessionRSVPs handles GET /practice-sessions/:id/rsvps
func (h *PracticeHandler) GetSessionRSVPs(c echo.Context) error {
	sessionID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var rsvps []models.PracticeRSVP
	if err := h.db.Preload("User").Where("session_id = ?", sessionID).Find(&rsvps).Error; err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch RSVPs")
	}
	return c.JSON(http.StatusOK, rsvps)
}

// --- Monthly dues ---

// CreateDues handles POST /practice-series/:id/settlements?month=YYYY-MM. The
// month defaults to the previous calendar month. Only circle admins may
// trigger dues generation.
func (h *PracticeHandler) CreateDues(c echo.Context) error {
	seriesID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var series models.PracticeSeries
	if err := h.db.First(&series, seriesID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "series not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch series")
	}

	if err := requireCircleAdmin(h.db, series.CircleID, middleware.UserID(c)); err != nil {
		return err
	}

	month := c.QueryParam("month")
	if month == "" {
		month = services.PreviousMonth(time.Now())
	}

	count, err := services.GeneratePracticeDues(c.Request().Context(), h.db, h.cache, seriesID, month)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMonth) {
			return echo.NewHTTPError(http.StatusBadRequest, "month must be formatted as YYYY-MM")
		}
		if errors.Is(err, services.ErrDuesLocked) {
			return echo.NewHTTPError(http.StatusConflict, "dues generation already in progress for this month")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to generate dues")
	}

	return c.JSON(http.StatusOK, map[string]interface{}{
		"month":               month,
		"settlements_created": count,
	})
}
