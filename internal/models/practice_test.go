package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionDatesWeekly(t *testing.T) {
	series := PracticeSeries{
		Name:      "水曜練習",
		DayOfWeek: 3, // Wednesday
		StartTime: "19:00",
	}

	// June 2025: Wednesdays fall on the 4th, 11th, 18th and 25th
	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 23, 59, 59, 0, time.UTC)

	dates := series.SessionDates(from, to)
	require.Len(t, dates, 4)

	expectedDays := []int{4, 11, 18, 25}
	for i, d := range dates {
		assert.Equal(t, time.Wednesday, d.Weekday())
		assert.Equal(t, expectedDays[i], d.Day())
		assert.Equal(t, 19, d.Hour())
		assert.Equal(t, 0, d.Minute())
	}
}

func TestSessionDatesUnparseableStartTime(t *testing.T) {
	series := PracticeSeries{DayOfWeek: 0, StartTime: "evening"}

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC) // a Sunday
	to := time.Date(2025, 6, 8, 0, 0, 0, 0, time.UTC)

	// Falls back to the range start's clock time
	dates := series.SessionDates(from, to)
	require.Len(t, dates, 2)
	assert.Equal(t, time.Sunday, dates[0].Weekday())
}

func TestSessionDatesInvalidDayOfWeek(t *testing.T) {
	series := PracticeSeries{DayOfWeek: 7, StartTime: "19:00"}

	from := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2025, 6, 30, 0, 0, 0, 0, time.UTC)

	assert.Nil(t, series.SessionDates(from, to))
}

func TestSessionDatesEmptyRange(t *testing.T) {
	series := PracticeSeries{DayOfWeek: 3, StartTime: "19:00"}

	// One day range that is not a Wednesday
	from := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC) // Monday
	to := time.Date(2025, 6, 2, 23, 0, 0, 0, time.UTC)

	assert.Empty(t, series.SessionDates(from, to))
}

func TestPracticeRSVPAttending(t *testing.T) {
	assert.True(t, PracticeRSVP{Status: PracticeRSVPGo}.Attending())
	assert.False(t, PracticeRSVP{Status: PracticeRSVPNo}.Attending())
}

func TestValidPracticeRSVPStatus(t *testing.T) {
	assert.True(t, ValidPracticeRSVPStatus(PracticeRSVPGo))
	assert.True(t, ValidPracticeRSVPStatus(PracticeRSVPNo))
	assert.False(t, ValidPracticeRSVPStatus("LATE"))
	assert.False(t, ValidPracticeRSVPStatus(""))
}
