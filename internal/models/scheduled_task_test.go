package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestNextDueOneTime(t *testing.T) {
	due := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	task := ScheduledTask{TaskType: ScheduledTaskTypeOneTime, Due: due}

	assert.Equal(t, due, task.NextDue())
}

func TestNextDueRecurringMonthly(t *testing.T) {
	rule := "FREQ=MONTHLY;BYMONTHDAY=1"
	task := ScheduledTask{
		TaskType:          ScheduledTaskTypeRecurring,
		Due:               time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		RecurringInterval: &rule,
	}

	next := task.NextDue()
	assert.True(t, next.After(time.Now()))
	assert.Equal(t, 1, next.Day())
	assert.Equal(t, 9, next.Hour())
}

func TestNextDueRecurringWithoutRule(t *testing.T) {
	due := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	task := ScheduledTask{TaskType: ScheduledTaskTypeRecurring, Due: due}

	assert.Equal(t, due, task.NextDue())
}

func TestNextDueRecurringBadRule(t *testing.T) {
	rule := "not an rrule"
	due := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	task := ScheduledTask{
		TaskType:          ScheduledTaskTypeRecurring,
		Due:               due,
		RecurringInterval: &rule,
	}

	assert.Equal(t, due, task.NextDue())
}
