// Package gamification derives a motivational score from a user's paid
// settlement history. Everything here is a pure function over fetched
// records; nothing is persisted, so the score can never drift from the
// payment data it is computed from.
package gamification

import (
	"math"

	"circle_app_echo/internal/models"
)

const (
	// XPPerLevel is the flat XP cost of each level
	XPPerLevel = 200

	// BaseXP is granted per paid settlement regardless of timing
	BaseXP = 50

	// MaxSpeedBonus is the additional XP for an instant payment
	MaxSpeedBonus = 100
)

// Stats is a user's derived gamification score
type Stats struct {
	TotalCoins    int     `json:"total_coins"`
	Level         int     `json:"level"`
	XP            int     `json:"xp"`
	XPToNextLevel int     `json:"xp_to_next_level"`
	PaidCount     int     `json:"paid_count"`
	AvgSpeedDays  float64 `json:"avg_speed_days"`
	Rank          string  `json:"rank"`
}

// SpeedRatio normalizes how early a payment was reported relative to the
// due-date window: 1 = instant, 0 = at or after the deadline. Both ends are
// clamped so clock anomalies (reports before creation, or after the due
// date) stay inside [0, 1].
func SpeedRatio(createdAt, dueAt, reportedAt int64) float64 {
	totalWindow := dueAt - createdAt
	if totalWindow < 1 {
		totalWindow = 1
	}
	timeTaken := reportedAt - createdAt
	if timeTaken < 0 {
		timeTaken = 0
	}
	ratio := float64(timeTaken) / float64(totalWindow)
	if ratio > 1 {
		ratio = 1
	}
	return 1 - ratio
}

// xpGain computes the XP awarded for a single paid item. Items without a
// full set of valid timestamps earn only the base XP.
func xpGain(item models.SettlementWithPayment) int {
	if item.Payment == nil || item.Payment.ReportedAt == nil {
		return BaseXP
	}
	createdAt := item.Settlement.CreatedAt
	dueAt := item.Settlement.DueAt
	reportedAt := *item.Payment.ReportedAt
	if createdAt.IsZero() || dueAt.IsZero() || reportedAt.IsZero() {
		return BaseXP
	}

	ratio := SpeedRatio(createdAt.UnixMilli(), dueAt.UnixMilli(), reportedAt.UnixMilli())
	return BaseXP + int(math.Floor(ratio*MaxSpeedBonus))
}

// CalculateStats reduces a user's paid settlement history into coins, XP,
// level and payment-speed figures. Deterministic: identical input always
// yields identical output.
func CalculateStats(paid []models.SettlementWithPayment) Stats {
	totalCoins := 0
	totalXP := 0
	totalSpeedDays := 0.0
	speedCount := 0

	for _, item := range paid {
		totalCoins += item.Settlement.Amount
		totalXP += xpGain(item)

		if item.Payment != nil && item.Payment.ReportedAt != nil &&
			!item.Settlement.CreatedAt.IsZero() && !item.Settlement.DueAt.IsZero() &&
			!item.Payment.ReportedAt.IsZero() {
			days := item.Payment.ReportedAt.Sub(item.Settlement.CreatedAt).Hours() / 24
			if days < 0 {
				days = 0
			}
			totalSpeedDays += days
			speedCount++
		}
	}

	level := totalXP/XPPerLevel + 1
	xp := totalXP % XPPerLevel

	avgSpeedDays := 0.0
	if speedCount > 0 {
		avgSpeedDays = totalSpeedDays / float64(speedCount)
	}

	return Stats{
		TotalCoins:    totalCoins,
		Level:         level,
		XP:            xp,
		XPToNextLevel: XPPerLevel,
		PaidCount:     len(paid),
		AvgSpeedDays:  avgSpeedDays,
		Rank:          RankTitle(level),
	}
}

// RankTitle maps a level to its tier label
func RankTitle(level int) string {
	switch {
	case level >= 10:
		return "Diamond"
	case level >= 7:
		return "Gold"
	case level >= 4:
		return "Silver"
	default:
		return "Bronze"
	}
}
