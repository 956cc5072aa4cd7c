// Package reconcile holds the settlement reconciliation rules: deciding who
// a settlement targets, classifying payments, and aggregating practice
// attendance into monthly dues. Pure functions over fetched records so the
// rules stay independent of the storage layer.
package reconcile

import (
	"errors"

	"circle_app_echo/internal/models"
)

// ErrNoAttendees is returned when an attendance-derived settlement would
// have an empty target set. Creation must fail, nothing is persisted.
var ErrNoAttendees = errors.New("no attendees, cannot create settlement")

// IsPaid classifies a payment record as paid. Both PAID_REPORTED and
// CONFIRMED count; a missing record is equivalent to UNPAID.
func IsPaid(p *models.Payment) bool {
	return p != nil && p.Status != models.PaymentUnpaid
}

// Partition splits settlement+payment pairs into unpaid and paid groups.
// Both slices are non-nil so they serialize as [] rather than null.
func Partition(items []models.SettlementWithPayment) (unpaid, paid []models.SettlementWithPayment) {
	unpaid = make([]models.SettlementWithPayment, 0, len(items))
	paid = make([]models.SettlementWithPayment, 0, len(items))
	for _, item := range items {
		if IsPaid(item.Payment) {
			paid = append(paid, item)
		} else {
			unpaid = append(unpaid, item)
		}
	}
	return unpaid, paid
}

// DeriveEventTargets filters an event's RSVPs down to the attending users
// (GO, LATE, EARLY) and returns their ids. ErrNoAttendees when the set is
// empty; this is a hard precondition for attendance-derived settlements.
func DeriveEventTargets(rsvps []models.RSVP) ([]uint, error) {
	targets := make([]uint, 0, len(rsvps))
	seen := make(map[uint]bool, len(rsvps))
	for _, r := range rsvps {
		if !r.Attending() || seen[r.UserID] {
			continue
		}
		seen[r.UserID] = true
		targets = append(targets, r.UserID)
	}
	if len(targets) == 0 {
		return nil, ErrNoAttendees
	}
	return targets, nil
}

// AttendanceCounts aggregates practice RSVPs into per-user attended-session
// counts for one calendar month. Cancelled sessions and sessions outside
// the month are skipped; only GO RSVPs count. Month is "YYYY-MM".
func AttendanceCounts(sessions []models.PracticeSession, rsvps []models.PracticeRSVP, month string) map[uint]int {
	inMonth := make(map[uint]bool, len(sessions))
	for _, s := range sessions {
		if s.Cancelled {
			continue
		}
		if s.Date.Format("2006-01") == month {
			inMonth[s.ID] = true
		}
	}

	counts := make(map[uint]int)
	for _, r := range rsvps {
		if !inMonth[r.SessionID] || !r.Attending() {
			continue
		}
		counts[r.UserID]++
	}
	return counts
}
