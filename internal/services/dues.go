package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"circle_app_echo/internal/models"
	"circle_app_echo/internal/reconcile"
)

// duesDueDays is how long after generation a monthly dues settlement falls due
const duesDueDays = 14

var (
	// ErrInvalidMonth means the month argument is not "YYYY-MM"
	ErrInvalidMonth = errors.New("invalid month: want YYYY-MM")
	// ErrDuesLocked means another caller holds the generation lock for the
	// same series and month
	ErrDuesLocked = errors.New("dues generation already in progress")
)

// PreviousMonth formats the calendar month before now as "YYYY-MM".
// Anchored at the first of the month because AddDate normalizes overflowed
// dates: Mar 31 minus one month is Feb 31, which lands back in March.
func PreviousMonth(now time.Time) string {
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return firstOfMonth.AddDate(0, -1, 0).Format("2006-01")
}

// GeneratePracticeDues creates monthly dues settlements for one practice
// series: each user is charged fee × attended-session-count for the given
// "YYYY-MM" month, as a single-target settlement. A Redis lock keyed by
// (series, month) guards against double generation; when the lock is held
// elsewhere nothing is created. Returns the number of settlements created.
func GeneratePracticeDues(ctx context.Context, db *gorm.DB, cache *RedisCache, seriesID uint, month string) (int, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidMonth, month)
	}

	var series models.PracticeSeries
	if err := db.First(&series, seriesID).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch series: %w", err)
	}
	if series.Fee == 0 {
		return 0, nil // free practice, nothing to settle
	}

	lockKey := DuesLockKey(seriesID, month)
	won, err := cache.AcquireLock(ctx, lockKey, 10*time.Minute)
	if err != nil {
		return 0, fmt.Errorf("failed to acquire dues lock: %w", err)
	}
	if !won {
		return 0, fmt.Errorf("%w: series %d month %s", ErrDuesLocked, seriesID, month)
	}
	defer func() { _ = cache.ReleaseLock(ctx, lockKey) }()

	var sessions []models.PracticeSession
	if err := db.Where("series_id = ?", seriesID).Find(&sessions).Error; err != nil {
		return 0, fmt.Errorf("failed to fetch sessions: %w", err)
	}

	sessionIDs := make([]uint, 0, len(sessions))
	for _, s := range sessions {
		sessionIDs = append(sessionIDs, s.ID)
	}
	var rsvps []models.PracticeRSVP
	if len(sessionIDs) > 0 {
		if err := db.Where("session_id IN ?", sessionIDs).Find(&rsvps).Error; err != nil {
			return 0, fmt.Errorf("failed to fetch practice RSVPs: %w", err)
		}
	}

	counts := reconcile.AttendanceCounts(sessions, rsvps, month)
	if len(counts) == 0 {
		return 0, nil
	}

	now := time.Now()
	dueAt := now.AddDate(0, 0, duesDueDays)
	created := 0

	for userID, count := range counts {
		amount := count * series.Fee
		title := fmt.Sprintf("%s 参加費 (%s月度 %d回分)", series.Name, month, count)

		settlement := models.Settlement{
			CircleID:      series.CircleID,
			Title:         title,
			Amount:        amount,
			DueAt:         dueAt,
			TargetUserIDs: []uint{userID},
		}

		err := db.Transaction(func(tx *gorm.DB) error {
			if err := tx.Create(&settlement).Error; err != nil {
				return err
			}
			payment := models.Payment{
				SettlementID: settlement.ID,
				UserID:       userID,
				Status:       models.PaymentUnpaid,
			}
			return tx.Create(&payment).Error
		})
		if err != nil {
			return created, fmt.Errorf("failed to create dues settlement for user %d: %w", userID, err)
		}
		created++
	}

	return created, nil
}
