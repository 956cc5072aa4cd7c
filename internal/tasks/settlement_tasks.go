package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/gorm"

	"circle_app_echo/internal/models"
	"circle_app_echo/internal/reconcile"
	"circle_app_echo/internal/services"
)

// defaultReminderWindowDays is how far ahead the reminder task looks for
// upcoming due dates when the task arguments don't say otherwise
const defaultReminderWindowDays = 3

// DueReminderTaskDef posts a reminder announcement for settlements falling
// due soon and mails each target user who hasn't paid yet.
type DueReminderTaskDef struct {
	email *services.EmailService
}

// TaskID returns the unique identifier for this task
func (t *DueReminderTaskDef) TaskID() string {
	return "settlement_due_reminder"
}

// HandleExecution scans for settlements due within the window and reminds
// unpaid targets. Email failures are logged and skipped so one bad address
// doesn't fail the whole run.
func (t *DueReminderTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	windowDays := defaultReminderWindowDays
	if v, err := uintArg(task.Arguments, "window_days"); err == nil && v > 0 {
		windowDays = int(v)
	}

	now := time.Now()
	windowEnd := now.AddDate(0, 0, windowDays)

	var settlements []models.Settlement
	if err := db.Preload("Payments.User").
		Where("due_at > ? AND due_at <= ?", now, windowEnd).
		Find(&settlements).Error; err != nil {
		return nil, fmt.Errorf("failed to fetch upcoming settlements: %w", err)
	}

	email := t.email
	if email == nil {
		email = services.NewEmailService()
	}

	announced := make(map[uint]bool)
	announcements := 0
	emailsSent := 0

	for _, settlement := range settlements {
		unpaid := unpaidPayments(settlement.Payments)
		if len(unpaid) == 0 {
			continue
		}

		if !announced[settlement.CircleID] {
			announcement := models.Announcement{
				CircleID: settlement.CircleID,
				EventID:  settlement.EventID,
				Title:    "支払い期限のお知らせ",
				Body:     fmt.Sprintf("「%s」の支払い期限は %s です。お早めにお支払いください。", settlement.Title, settlement.DueAt.Format("2006-01-02")),
			}
			if err := db.Create(&announcement).Error; err != nil {
				log.Printf("[Task: %s] failed to create announcement for circle %d: %v", t.TaskID(), settlement.CircleID, err)
			} else {
				announced[settlement.CircleID] = true
				announcements++
			}
		}

		if !email.Configured() {
			continue
		}
		for _, payment := range unpaid {
			if payment.User.Email == nil || *payment.User.Email == "" {
				continue
			}
			subject := fmt.Sprintf("支払い期限が近づいています: %s", settlement.Title)
			body := fmt.Sprintf("%s さん\n\n「%s」(%d円) の支払い期限は %s です。",
				payment.User.Name, settlement.Title, settlement.Amount, settlement.DueAt.Format("2006-01-02"))
			if err := email.SendReminder(*payment.User.Email, subject, body); err != nil {
				log.Printf("[Task: %s] failed to mail user %d: %v", t.TaskID(), payment.UserID, err)
				continue
			}
			emailsSent++
		}
	}

	return map[string]interface{}{
		"status":        "success",
		"settlements":   len(settlements),
		"announcements": announcements,
		"emails_sent":   emailsSent,
	}, nil
}

func unpaidPayments(payments []models.Payment) []models.Payment {
	var unpaid []models.Payment
	for i := range payments {
		if !reconcile.IsPaid(&payments[i]) {
			unpaid = append(unpaid, payments[i])
		}
	}
	return unpaid
}

// DueReminderTask is the singleton instance of DueReminderTaskDef
var DueReminderTask = &DueReminderTaskDef{}
