package handlers

import (
	"time"

	"circle_app_echo/internal/models"
)

// Request DTOs bound from JSON bodies.

type CreateUserRequest struct {
	ID        uint    `json:"id"`
	Name      string  `json:"name"`
	AvatarURL string  `json:"avatar_url"`
	Email     *string `json:"email"`
}

type CreateCircleRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
}

type AddMemberRequest struct {
	UserID uint              `json:"user_id"`
	Role   models.MemberRole `json:"role"`
}

type CreateEventRequest struct {
	CircleID      uint      `json:"circle_id"`
	Title         string    `json:"title"`
	StartAt       time.Time `json:"start_at"`
	Location      string    `json:"location"`
	CoverImageURL string    `json:"cover_image_url"`
}

type UpdateEventRequest struct {
	Title         string    `json:"title"`
	StartAt       time.Time `json:"start_at"`
	Location      string    `json:"location"`
	CoverImageURL string    `json:"cover_image_url"`
}

type SubmitRSVPRequest struct {
	Status models.RSVPStatus `json:"status"`
	Note   string            `json:"note"`
}

type CreateSettlementRequest struct {
	CircleID      uint      `json:"circle_id"`
	EventID       *uint     `json:"event_id"`
	Title         string    `json:"title"`
	Amount        int       `json:"amount"`
	DueAt         time.Time `json:"due_at"`
	TargetUserIDs []uint    `json:"target_user_ids"`
	BankInfo      *string   `json:"bank_info"`
	PayPayInfo    *string   `json:"paypay_info"`
}

// CreateEventSettlementRequest omits the target list; targets are derived
// from the event's attending RSVPs server-side.
type CreateEventSettlementRequest struct {
	Title      string    `json:"title"`
	Amount     int       `json:"amount"`
	DueAt      time.Time `json:"due_at"`
	BankInfo   *string   `json:"bank_info"`
	PayPayInfo *string   `json:"paypay_info"`
}

type ReportPaymentRequest struct {
	Method models.PaymentMethod `json:"method"`
	Note   string               `json:"note"`
}

type UpdateSettlementRequest struct {
	Title  string    `json:"title"`
	Amount int       `json:"amount"`
	DueAt  time.Time `json:"due_at"`
}

type CreateAnnouncementRequest struct {
	CircleID uint   `json:"circle_id"`
	EventID  *uint  `json:"event_id"`
	Title    string `json:"title"`
	Body     string `json:"body"`
}

type UpdateAnnouncementRequest struct {
	Title string `json:"title"`
	Body  string `json:"body"`
}

type CreatePracticeCategoryRequest struct {
	CircleID uint   `json:"circle_id"`
	Name     string `json:"name"`
	ParentID *uint  `json:"parent_id"`
	Order    int    `json:"order"`
}

type CreatePracticeSeriesRequest struct {
	CircleID   uint   `json:"circle_id"`
	CategoryID *uint  `json:"category_id"`
	Name       string `json:"name"`
	DayOfWeek  int    `json:"day_of_week"`
	StartTime  string `json:"start_time"`
	Location   string `json:"location"`
	Fee        int    `json:"fee"`
}

type UpdatePracticeSeriesRequest struct {
	Name      string `json:"name"`
	DayOfWeek int    `json:"day_of_week"`
	StartTime string `json:"start_time"`
	Location  string `json:"location"`
	Fee       int    `json:"fee"`
}

type CreateSessionRequest struct {
	Date time.Time `json:"date"`
	Note string    `json:"note"`
}

type GenerateSessionsRequest struct {
	From time.Time `json:"from"`
	To   time.Time `json:"to"`
}

type PracticeRSVPRequest struct {
	Status models.PracticeRSVPStatus `json:"status"`
}

type BulkRSVPEntry struct {
	SessionID uint                      `json:"session_id"`
	Status    models.PracticeRSVPStatus `json:"status"`
}

type BulkRSVPRequest struct {
	RSVPs []BulkRSVPEntry `json:"rsvps"`
}
