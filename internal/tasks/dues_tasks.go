package tasks

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/gorm"

	"circle_app_echo/internal/models"
	"circle_app_echo/internal/services"
)

// GeneratePracticeDuesTaskDef generates monthly attendance dues for one
// practice series. Scheduled recurring (monthly RRULE) per series; the month
// argument may be omitted, in which case the previous calendar month is
// settled.
type GeneratePracticeDuesTaskDef struct {
	cache *services.RedisCache
}

// TaskID returns the unique identifier for this task
func (t *GeneratePracticeDuesTaskDef) TaskID() string {
	return "generate_practice_dues"
}

// HandleExecution reads series_id and optional month from the arguments and
// delegates to the dues service. A held lock counts as a skip, not a failure.
func (t *GeneratePracticeDuesTaskDef) HandleExecution(ctx context.Context, db *gorm.DB, task models.ScheduledTask) (map[string]interface{}, error) {
	seriesID, err := uintArg(task.Arguments, "series_id")
	if err != nil {
		return nil, err
	}

	month := stringArg(task.Arguments, "month")
	if month == "" {
		month = services.PreviousMonth(time.Now())
	}

	cache := t.cache
	if cache == nil {
		if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
			c, err := services.NewRedisCache(redisURL)
			if err != nil {
				log.Printf("[Task: %s] Redis unavailable, proceeding without lock: %v", t.TaskID(), err)
			} else {
				cache = c
				defer cache.Close()
			}
		}
	}

	created, err := services.GeneratePracticeDues(ctx, db, cache, seriesID, month)
	if errors.Is(err, services.ErrDuesLocked) {
		return map[string]interface{}{
			"status":  "skipped",
			"message": "generation already in progress",
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("dues generation failed: %w", err)
	}

	return map[string]interface{}{
		"status":              "success",
		"series_id":           seriesID,
		"month":               month,
		"settlements_created": created,
	}, nil
}

// GeneratePracticeDuesTask is the singleton instance of GeneratePracticeDuesTaskDef
var GeneratePracticeDuesTask = &GeneratePracticeDuesTaskDef{}
