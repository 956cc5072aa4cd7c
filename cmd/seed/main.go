package main

import (
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
	"gorm.io/gorm"

	"circle_app_echo/internal/models"
	"circle_app_echo/internal/services"
)

// Seeds a demo circle with members, an event with RSVPs, a settlement and
// a weekly practice series so a fresh database has something to look at.
func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	db, err := services.InitDB(dsn)
	if err != nil {
		log.Fatalf("Failed to connect DB: %v", err)
	}
	if err := services.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	if err := seed(db); err != nil {
		log.Fatalf("Seed failed: %v", err)
	}
	fmt.Println("Seed completed")
}

func seed(db *gorm.DB) error {
	return db.Transaction(func(tx *gorm.DB) error {
		email := func(s string) *string { return &s }
		users := []models.User{
			{Name: "田中 太郎", Email: email("taro@example.com")},
			{Name: "鈴木 花子", Email: email("hanako@example.com")},
			{Name: "佐藤 次郎"},
		}
		for i := range users {
			if err := tx.Create(&users[i]).Error; err != nil {
				return err
			}
		}

		circle := models.Circle{
			Name:        "テニスサークル",
			Description: "毎週集まって練習しています",
		}
		if err := tx.Create(&circle).Error; err != nil {
			return err
		}

		now := time.Now()
		for i, u := range users {
			role := models.RoleMember
			if i == 0 {
				role = models.RoleAdmin
			}
			m := models.Membership{CircleID: circle.ID, UserID: u.ID, Role: role, JoinedAt: now}
			if err := tx.Create(&m).Error; err != nil {
				return err
			}
		}

		event := models.Event{
			CircleID:  circle.ID,
			Title:     "夏合宿",
			StartAt:   now.AddDate(0, 0, 21),
			Location:  "山中湖",
			CreatedBy: users[0].ID,
		}
		if err := tx.Create(&event).Error; err != nil {
			return err
		}

		rsvps := []models.RSVP{
			{EventID: event.ID, UserID: users[0].ID, Status: models.RSVPGo},
			{EventID: event.ID, UserID: users[1].ID, Status: models.RSVPLate},
			{EventID: event.ID, UserID: users[2].ID, Status: models.RSVPNo},
		}
		for i := range rsvps {
			if err := tx.Create(&rsvps[i]).Error; err != nil {
				return err
			}
		}

		settlement := models.Settlement{
			CircleID:      circle.ID,
			EventID:       &event.ID,
			Title:         "合宿費",
			Amount:        15000,
			DueAt:         now.AddDate(0, 0, 14),
			TargetUserIDs: []uint{users[0].ID, users[1].ID},
		}
		if err := tx.Create(&settlement).Error; err != nil {
			return err
		}
		for _, userID := range settlement.TargetUserIDs {
			p := models.Payment{SettlementID: settlement.ID, UserID: userID, Status: models.PaymentUnpaid}
			if err := tx.Create(&p).Error; err != nil {
				return err
			}
		}

		series := models.PracticeSeries{
			CircleID:  circle.ID,
			Name:      "水曜練習",
			DayOfWeek: 3,
			StartTime: "19:00",
			Location:  "市民体育館",
			Fee:       500,
			CreatedBy: users[0].ID,
		}
		if err := tx.Create(&series).Error; err != nil {
			return err
		}
		for _, date := range series.SessionDates(now, now.AddDate(0, 1, 0)) {
			s := models.PracticeSession{SeriesID: series.ID, Date: date}
			if err := tx.Create(&s).Error; err != nil {
				return err
			}
		}

		return nil
	})
}
