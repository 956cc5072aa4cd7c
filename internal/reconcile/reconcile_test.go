package reconcile

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"circle_app_echo/internal/models"
)

func TestIsPaid(t *testing.T) {
	tests := []struct {
		name    string
		payment *models.Payment
		want    bool
	}{
		{"nil payment is unpaid", nil, false},
		{"explicit UNPAID", &models.Payment{Status: models.PaymentUnpaid}, false},
		{"self-reported counts as paid", &models.Payment{Status: models.PaymentPaidReported}, true},
		{"confirmed counts as paid", &models.Payment{Status: models.PaymentConfirmed}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsPaid(tt.payment))
		})
	}
}

func TestPartition(t *testing.T) {
	items := []models.SettlementWithPayment{
		{Settlement: models.Settlement{Title: "a"}, Payment: nil},
		{Settlement: models.Settlement{Title: "b"}, Payment: &models.Payment{Status: models.PaymentPaidReported}},
		{Settlement: models.Settlement{Title: "c"}, Payment: &models.Payment{Status: models.PaymentUnpaid}},
		{Settlement: models.Settlement{Title: "d"}, Payment: &models.Payment{Status: models.PaymentConfirmed}},
	}

	unpaid, paid := Partition(items)

	require.Len(t, unpaid, 2)
	require.Len(t, paid, 2)
	assert.Equal(t, "a", unpaid[0].Settlement.Title)
	assert.Equal(t, "c", unpaid[1].Settlement.Title)
	assert.Equal(t, "b", paid[0].Settlement.Title)
	assert.Equal(t, "d", paid[1].Settlement.Title)
}

func TestPartitionEmptyStaysNonNil(t *testing.T) {
	unpaid, paid := Partition(nil)
	assert.NotNil(t, unpaid)
	assert.NotNil(t, paid)
	assert.Empty(t, unpaid)
	assert.Empty(t, paid)
}

func TestDeriveEventTargets(t *testing.T) {
	rsvps := []models.RSVP{
		{UserID: 1, Status: models.RSVPGo},
		{UserID: 2, Status: models.RSVPNo},
		{UserID: 3, Status: models.RSVPLate},
		{UserID: 4, Status: models.RSVPEarly},
	}

	targets, err := DeriveEventTargets(rsvps)

	require.NoError(t, err)
	assert.Equal(t, []uint{1, 3, 4}, targets)
}

func TestDeriveEventTargetsEmptySetFails(t *testing.T) {
	tests := []struct {
		name  string
		rsvps []models.RSVP
	}{
		{"no rsvps at all", nil},
		{"everyone declined", []models.RSVP{
			{UserID: 1, Status: models.RSVPNo},
			{UserID: 2, Status: models.RSVPNo},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			targets, err := DeriveEventTargets(tt.rsvps)
			assert.ErrorIs(t, err, ErrNoAttendees)
			assert.Nil(t, targets)
		})
	}
}

func TestDeriveEventTargetsDeduplicates(t *testing.T) {
	rsvps := []models.RSVP{
		{UserID: 7, Status: models.RSVPGo},
		{UserID: 7, Status: models.RSVPLate},
	}

	targets, err := DeriveEventTargets(rsvps)

	require.NoError(t, err)
	assert.Equal(t, []uint{7}, targets)
}

func sessionOn(id uint, date time.Time, cancelled bool) models.PracticeSession {
	s := models.PracticeSession{SeriesID: 1, Date: date, Cancelled: cancelled}
	s.ID = id
	return s
}

func TestAttendanceCounts(t *testing.T) {
	april := time.Date(2026, 4, 1, 19, 0, 0, 0, time.UTC)
	sessions := []models.PracticeSession{
		sessionOn(1, april, false),
		sessionOn(2, april.AddDate(0, 0, 7), false),
		sessionOn(3, april.AddDate(0, 0, 14), true),  // cancelled, must not count
		sessionOn(4, april.AddDate(0, 1, 0), false),  // May, outside the month
	}
	rsvps := []models.PracticeRSVP{
		{SessionID: 1, UserID: 10, Status: models.PracticeRSVPGo},
		{SessionID: 2, UserID: 10, Status: models.PracticeRSVPGo},
		{SessionID: 3, UserID: 10, Status: models.PracticeRSVPGo}, // cancelled session
		{SessionID: 4, UserID: 10, Status: models.PracticeRSVPGo}, // wrong month
		{SessionID: 1, UserID: 20, Status: models.PracticeRSVPNo},
		{SessionID: 2, UserID: 20, Status: models.PracticeRSVPGo},
	}

	counts := AttendanceCounts(sessions, rsvps, "2026-04")

	assert.Equal(t, map[uint]int{10: 2, 20: 1}, counts)
}

func TestAttendanceCountsEmptyMonth(t *testing.T) {
	sessions := []models.PracticeSession{
		sessionOn(1, time.Date(2026, 3, 5, 19, 0, 0, 0, time.UTC), false),
	}
	rsvps := []models.PracticeRSVP{
		{SessionID: 1, UserID: 10, Status: models.PracticeRSVPGo},
	}

	counts := AttendanceCounts(sessions, rsvps, "2026-04")
	assert.Empty(t, counts)
}
