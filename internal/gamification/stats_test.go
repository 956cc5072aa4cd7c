package gamification

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"circle_app_echo/internal/models"
)

func paidItem(amount int, createdAt, dueAt time.Time, reportedAt *time.Time) models.SettlementWithPayment {
	item := models.SettlementWithPayment{
		Settlement: models.Settlement{
			Title:  "test",
			Amount: amount,
			DueAt:  dueAt,
		},
	}
	item.Settlement.CreatedAt = createdAt
	item.Payment = &models.Payment{
		Status:     models.PaymentPaidReported,
		ReportedAt: reportedAt,
	}
	return item
}

func TestCalculateStatsEmpty(t *testing.T) {
	stats := CalculateStats(nil)

	assert.Equal(t, 0, stats.TotalCoins)
	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, 0, stats.XP)
	assert.Equal(t, XPPerLevel, stats.XPToNextLevel)
	assert.Equal(t, 0, stats.PaidCount)
	assert.Equal(t, 0.0, stats.AvgSpeedDays)
	assert.Equal(t, "Bronze", stats.Rank)
}

func TestCalculateStatsSpeedBoundaries(t *testing.T) {
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	due := base.AddDate(0, 0, 10)

	tests := []struct {
		name       string
		reportedAt time.Time
		wantXP     int
	}{
		{
			// speedRatio == 1
			name:       "instant payment earns full bonus",
			reportedAt: base,
			wantXP:     150,
		},
		{
			// speedRatio == 0
			name:       "payment exactly at deadline earns base only",
			reportedAt: due,
			wantXP:     50,
		},
		{
			name:       "payment after deadline clamps to base",
			reportedAt: due.AddDate(0, 0, 30),
			wantXP:     50,
		},
		{
			// timeTaken clamps to 0, same as instant
			name:       "report before creation clamps to full bonus",
			reportedAt: base.AddDate(0, 0, -3),
			wantXP:     150,
		},
		{
			name:       "halfway through window earns half bonus",
			reportedAt: base.AddDate(0, 0, 5),
			wantXP:     100,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reported := tt.reportedAt
			stats := CalculateStats([]models.SettlementWithPayment{
				paidItem(500, base, due, &reported),
			})
			assert.Equal(t, tt.wantXP, stats.XP, "single item below one level, XP == gain")
		})
	}
}

func TestCalculateStatsMissingTimestampFallback(t *testing.T) {
	base := time.Date(2026, 4, 1, 12, 0, 0, 0, time.UTC)
	due := base.AddDate(0, 0, 10)

	// Paid but never got a reportedAt: contributes exactly the base XP.
	item := paidItem(1200, base, due, nil)
	stats := CalculateStats([]models.SettlementWithPayment{item})

	assert.Equal(t, 1200, stats.TotalCoins)
	assert.Equal(t, 50, stats.XP)
	assert.Equal(t, 0.0, stats.AvgSpeedDays, "item without timestamps is excluded from speed average")

	// Zero-valued due date also falls back.
	reported := base.AddDate(0, 0, 2)
	noDue := paidItem(800, base, time.Time{}, &reported)
	stats = CalculateStats([]models.SettlementWithPayment{noDue})
	assert.Equal(t, 50, stats.XP)
}

func TestCalculateStatsLevelRollover(t *testing.T) {
	base := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	due := base.AddDate(0, 0, 10)

	// Each item reported exactly at deadline is worth exactly 50 XP, so
	// history length controls total XP precisely.
	atDeadline := due
	itemsWorth := func(n int) []models.SettlementWithPayment {
		items := make([]models.SettlementWithPayment, 0, n)
		for i := 0; i < n; i++ {
			items = append(items, paidItem(100, base, due, &atDeadline))
		}
		return items
	}

	tests := []struct {
		name      string
		items     int // 50 XP each
		wantLevel int
		wantXP    int
	}{
		{"just below level 2", 3, 1, 150}, // 150 XP
		{"exactly level 2", 4, 2, 0},      // 200 XP
		{"level 3 with remainder", 9, 3, 50}, // 450 XP
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			stats := CalculateStats(itemsWorth(tt.items))
			assert.Equal(t, tt.wantLevel, stats.Level)
			assert.Equal(t, tt.wantXP, stats.XP)
			assert.Equal(t, XPPerLevel, stats.XPToNextLevel)
		})
	}
}

func TestCalculateStatsEndToEnd(t *testing.T) {
	// One paid settlement, amount=1000, due 10 days after creation,
	// reported after 5 days: speedRatio 0.5 -> 100 XP.
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	due := base.AddDate(0, 0, 10)
	reported := base.AddDate(0, 0, 5)

	stats := CalculateStats([]models.SettlementWithPayment{
		paidItem(1000, base, due, &reported),
	})

	assert.Equal(t, 1000, stats.TotalCoins)
	assert.Equal(t, 1, stats.Level)
	assert.Equal(t, 100, stats.XP)
	assert.Equal(t, 1, stats.PaidCount)
	assert.InDelta(t, 5.0, stats.AvgSpeedDays, 0.001)
}

func TestCalculateStatsDeterministic(t *testing.T) {
	base := time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC)
	due := base.AddDate(0, 0, 7)
	r1 := base.AddDate(0, 0, 1)
	r2 := base.AddDate(0, 0, 6)

	items := []models.SettlementWithPayment{
		paidItem(300, base, due, &r1),
		paidItem(4500, base, due, &r2),
		paidItem(80, base, due, nil),
	}

	first := CalculateStats(items)
	second := CalculateStats(items)
	assert.Equal(t, first, second)
}

func TestSpeedRatioClamps(t *testing.T) {
	// Degenerate window (dueAt == createdAt) must not divide by zero.
	ratio := SpeedRatio(1000, 1000, 1000)
	assert.Equal(t, 1.0, ratio)

	// Window below zero still clamps to the minimum width of 1.
	ratio = SpeedRatio(1000, 500, 2000)
	assert.Equal(t, 0.0, ratio)
}

func TestRankTitle(t *testing.T) {
	tests := []struct {
		level int
		want  string
	}{
		{1, "Bronze"},
		{3, "Bronze"},
		{4, "Silver"},
		{6, "Silver"},
		{7, "Gold"},
		{9, "Gold"},
		{10, "Diamond"},
		{25, "Diamond"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, RankTitle(tt.level), "level %d", tt.level)
	}
}
