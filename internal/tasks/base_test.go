package tasks

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"circle_app_echo/internal/models"
)

func TestBuildScheduledTask(t *testing.T) {
	due := time.Date(2025, 7, 1, 9, 0, 0, 0, time.UTC)
	rule := "FREQ=MONTHLY;BYMONTHDAY=1"

	task, err := BuildScheduledTask("generate_practice_dues",
		map[string]interface{}{"series_id": 7},
		due, &rule, models.ScheduledTaskTypeRecurring, 3)
	require.NoError(t, err)

	assert.Equal(t, "generate_practice_dues", task.TaskName)
	assert.Equal(t, models.ScheduledTaskStatusActive, task.Status)
	assert.Equal(t, models.ScheduledTaskTypeRecurring, task.TaskType)
	assert.Equal(t, due, task.Due)
	assert.Equal(t, 3, task.MaxAttempt)

	// JSON round-trips numbers into float64
	seriesID, err := uintArg(task.Arguments, "series_id")
	require.NoError(t, err)
	assert.Equal(t, uint(7), seriesID)
}

func TestBuildScheduledTaskUnmarshalableArgs(t *testing.T) {
	_, err := BuildScheduledTask("log_info", "not a map", time.Now(), nil, models.ScheduledTaskTypeOneTime, 1)
	assert.Error(t, err)
}

func TestUintArg(t *testing.T) {
	tests := []struct {
		name    string
		args    map[string]interface{}
		want    uint
		wantErr bool
	}{
		{name: "float64", args: map[string]interface{}{"id": float64(12)}, want: 12},
		{name: "int", args: map[string]interface{}{"id": 12}, want: 12},
		{name: "uint", args: map[string]interface{}{"id": uint(12)}, want: 12},
		{name: "missing", args: map[string]interface{}{}, wantErr: true},
		{name: "string", args: map[string]interface{}{"id": "12"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := uintArg(tt.args, "id")
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRegistry(t *testing.T) {
	DefineTasks()

	_, ok := GetHandler("settlement_due_reminder")
	assert.True(t, ok)
	_, ok = GetHandler("generate_practice_dues")
	assert.True(t, ok)
	_, ok = GetHandler("log_info")
	assert.True(t, ok)
	_, ok = GetHandler("nonexistent")
	assert.False(t, ok)
}
