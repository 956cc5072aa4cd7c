package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestPreviousMonth(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		want string
	}{
		{
			name: "mid-month",
			now:  time.Date(2026, 3, 15, 12, 0, 0, 0, time.UTC),
			want: "2026-02",
		},
		{
			name: "first of month",
			now:  time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC),
			want: "2026-03",
		},
		{
			// Feb 29 does not exist after a 31-day month; naive AddDate
			// from the 29th-31st normalizes forward into the current month
			name: "29th",
			now:  time.Date(2026, 3, 29, 9, 0, 0, 0, time.UTC),
			want: "2026-02",
		},
		{
			name: "30th",
			now:  time.Date(2026, 3, 30, 9, 0, 0, 0, time.UTC),
			want: "2026-02",
		},
		{
			name: "31st after a 28-day month",
			now:  time.Date(2026, 3, 31, 23, 59, 0, 0, time.UTC),
			want: "2026-02",
		},
		{
			name: "31st after a 30-day month",
			now:  time.Date(2026, 7, 31, 9, 0, 0, 0, time.UTC),
			want: "2026-06",
		},
		{
			name: "january wraps to december",
			now:  time.Date(2026, 1, 31, 9, 0, 0, 0, time.UTC),
			want: "2025-12",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, PreviousMonth(tt.now))
		})
	}
}
