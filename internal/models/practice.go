package models

import (
	"time"

	"github.com/teambition/rrule-go"
	"gorm.io/gorm"
)

// PracticeCategory groups practice series inside a circle (e.g. by team)
type PracticeCategory struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	CircleID  uint   `gorm:"index" json:"circle_id"`
	Name      string `gorm:"type:varchar(255)" json:"name"`
	ParentID  *uint  `json:"parent_id,omitempty"`
	Order     int    `gorm:"column:sort_order;default:0" json:"order"`
	CreatedBy uint   `json:"created_by"`
}

// PracticeSeries is a weekly recurring practice slot with a per-session fee
type PracticeSeries struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	CircleID   uint   `gorm:"index" json:"circle_id"`
	CategoryID *uint  `gorm:"index" json:"category_id,omitempty"`
	Name       string `gorm:"type:varchar(255)" json:"name"`
	DayOfWeek  int    `json:"day_of_week"` // 0 = Sunday
	StartTime  string `gorm:"type:varchar(5)" json:"start_time"` // "HH:MM"
	Location   string `gorm:"type:varchar(255)" json:"location"`
	Fee        int    `json:"fee"` // per attended session, smallest currency unit
	CreatedBy  uint   `json:"created_by"`

	// Relationships
	Sessions []PracticeSession `gorm:"foreignKey:SeriesID" json:"sessions,omitempty"`
}

var rruleWeekdays = [...]rrule.Weekday{
	rrule.SU, rrule.MO, rrule.TU, rrule.WE, rrule.TH, rrule.FR, rrule.SA,
}

// SessionDates expands the series' weekly recurrence into concrete session
// datetimes within [from, to], carrying the series start time when it parses.
func (s PracticeSeries) SessionDates(from, to time.Time) []time.Time {
	if s.DayOfWeek < 0 || s.DayOfWeek > 6 {
		return nil
	}

	start := from
	if clock, err := time.Parse("15:04", s.StartTime); err == nil {
		start = time.Date(from.Year(), from.Month(), from.Day(),
			clock.Hour(), clock.Minute(), 0, 0, from.Location())
	}

	rule, err := rrule.NewRRule(rrule.ROption{
		Freq:      rrule.WEEKLY,
		Byweekday: []rrule.Weekday{rruleWeekdays[s.DayOfWeek]},
		Dtstart:   start,
	})
	if err != nil {
		return nil
	}

	return rule.Between(start, to, true)
}

// PracticeSession is one concrete occurrence of a series
type PracticeSession struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	SeriesID  uint      `gorm:"index" json:"series_id"`
	Date      time.Time `json:"date"`
	Cancelled bool      `gorm:"default:false" json:"cancelled"`
	Note      string    `gorm:"type:text" json:"note"`

	// Relationships
	Series PracticeSeries `gorm:"foreignKey:SeriesID" json:"series,omitempty"`
	RSVPs  []PracticeRSVP `gorm:"foreignKey:SessionID" json:"rsvps,omitempty"`
}

// PracticeRSVPStatus is the narrower attendance domain for practice sessions.
// There is no late/early concept for recurring practice.
type PracticeRSVPStatus string

const (
	PracticeRSVPGo PracticeRSVPStatus = "GO"
	PracticeRSVPNo PracticeRSVPStatus = "NO"
)

// ValidPracticeRSVPStatus reports whether s is GO or NO
func ValidPracticeRSVPStatus(s PracticeRSVPStatus) bool {
	return s == PracticeRSVPGo || s == PracticeRSVPNo
}

// PracticeRSVP is a user's attendance declaration for one session.
// At most one row exists per (session, user); submissions upsert.
type PracticeRSVP struct {
	ID        uint           `gorm:"primarykey" json:"id"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"deleted_at,omitempty"`

	SessionID uint               `gorm:"uniqueIndex:idx_practice_rsvps_session_user" json:"session_id"`
	UserID    uint               `gorm:"uniqueIndex:idx_practice_rsvps_session_user" json:"user_id"`
	Status    PracticeRSVPStatus `gorm:"type:varchar(5)" json:"status"`

	// Relationships
	Session PracticeSession `gorm:"foreignKey:SessionID" json:"session,omitempty"`
	User    User            `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

// Attending reports whether the practice RSVP counts as attending
func (r PracticeRSVP) Attending() bool {
	return r.Status == PracticeRSVPGo
}
