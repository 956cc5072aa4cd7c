package handlers

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"circle_app_echo/internal/gamification"
	"circle_app_echo/internal/middleware"
	"circle_app_echo/internal/models"
	"circle_app_echo/internal/reconcile"
	"circle_app_echo/internal/services"
)

const leaderboardCacheTTL = 5 * time.Minute

type GamificationHandler struct {
	db    *gorm.DB
	cache *services.RedisCache
}

func NewGamificationHandler(db *gorm.DB, cache *services.RedisCache) *GamificationHandler {
	return &GamificationHandler{db: db, cache: cache}
}

// MyStats handles GET /gamification/me
func (h *GamificationHandler) MyStats(c echo.Context) error {
	userID := middleware.UserID(c)

	stats, err := h.userStats(userID)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to compute stats")
	}
	return c.JSON(http.StatusOK, stats)
}

// Leaderboard handles GET /circles/:id/leaderboard. Results are cached
// per circle with a short TTL and invalidated on payment transitions.
func (h *GamificationHandler) Leaderboard(c echo.Context) error {
	circleID, err := uintParam(c, "id")
	if err != nil {
		return err
	}

	var circle models.Circle
	if err := h.db.First(&circle, circleID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return echo.NewHTTPError(http.StatusNotFound, "circle not found")
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to fetch circle")
	}

	entries, err := services.GetOrSet(h.cache, c.Request().Context(), services.LeaderboardKey(circleID), leaderboardCacheTTL, func() ([]gamification.Entry, error) {
		return h.buildLeaderboard(circleID)
	})
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "failed to build leaderboard")
	}
	return c.JSON(http.StatusOK, entries)
}

func (h *GamificationHandler) buildLeaderboard(circleID uint) ([]gamification.Entry, error) {
	var memberships []models.Membership
	if err := h.db.Preload("User").Where("circle_id = ?", circleID).Find(&memberships).Error; err != nil {
		return nil, err
	}

	entries := make([]gamification.Entry, 0, len(memberships))
	for _, m := range memberships {
		stats, err := h.userStats(m.UserID)
		if err != nil {
			return nil, err
		}
		entries = append(entries, gamification.Entry{
			UserID:    m.UserID,
			Name:      m.User.Name,
			AvatarURL: m.User.AvatarURL,
			Stats:     stats,
		})
	}

	gamification.SortEntries(entries)
	return entries, nil
}

// userStats computes one user's stats from their paid settlement items
func (h *GamificationHandler) userStats(userID uint) (gamification.Stats, error) {
	var payments []models.Payment
	if err := h.db.Preload("Settlement").
		Where("user_id = ? AND status <> ?", userID, models.PaymentUnpaid).
		Find(&payments).Error; err != nil {
		return gamification.Stats{}, err
	}

	items := make([]models.SettlementWithPayment, 0, len(payments))
	for i := range payments {
		if payments[i].Settlement.ID == 0 {
			continue
		}
		payment := payments[i]
		items = append(items, models.SettlementWithPayment{
			Settlement: payment.Settlement,
			Payment:    &payment,
		})
	}

	_, paid := reconcile.Partition(items)
	return gamification.CalculateStats(paid), nil
}
