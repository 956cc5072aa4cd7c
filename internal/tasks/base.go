package tasks

import (
	"encoding/json"
	"fmt"
	"time"

	"circle_app_echo/internal/models"
)

// BuildScheduledTask is a helper to build ScheduledTask records generically
func BuildScheduledTask(taskName string, args interface{}, due time.Time, recurringInterval *string, taskType models.ScheduledTaskType, maxAttempt int) (*models.ScheduledTask, error) {
	argsBytes, err := json.Marshal(args)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal args: %w", err)
	}

	var mapArgs map[string]interface{}
	if err := json.Unmarshal(argsBytes, &mapArgs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal into map: %w", err)
	}

	return &models.ScheduledTask{
		TaskName:          taskName,
		Arguments:         mapArgs,
		Due:               due,
		RecurringInterval: recurringInterval,
		Status:            models.ScheduledTaskStatusActive,
		TaskType:          taskType,
		MaxAttempt:        maxAttempt,
	}, nil
}

// uintArg extracts a uint task argument. JSON round-tripping turns numbers
// into float64, so a few numeric types are accepted.
func uintArg(args map[string]interface{}, key string) (uint, error) {
	switch v := args[key].(type) {
	case float64:
		return uint(v), nil
	case int:
		return uint(v), nil
	case uint:
		return v, nil
	default:
		return 0, fmt.Errorf("%s not provided or invalid", key)
	}
}

// stringArg extracts a string task argument, empty when absent
func stringArg(args map[string]interface{}, key string) string {
	v, _ := args[key].(string)
	return v
}
