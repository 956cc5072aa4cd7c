package main

import (
	"log"
	"net/http"
	"os"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"circle_app_echo/internal/handlers"
	authMiddleware "circle_app_echo/internal/middleware"
	"circle_app_echo/internal/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment")
	}

	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		log.Fatal("DATABASE_URL not set")
	}

	db, err := services.InitDB(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if err := services.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	// Redis is optional; a nil cache degrades to always-miss
	var cache *services.RedisCache
	if redisURL := os.Getenv("REDIS_URL"); redisURL != "" {
		cache, err = services.NewRedisCache(redisURL)
		if err != nil {
			log.Printf("Warning: Redis initialization failed: %v", err)
			log.Println("Leaderboard caching and dues locks are disabled")
			cache = nil
		}
	}

	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.HTTPErrorHandler = authMiddleware.JSONErrorHandler

	userHandler := handlers.NewUserHandler(db)
	circleHandler := handlers.NewCircleHandler(db)
	eventHandler := handlers.NewEventHandler(db)
	rsvpHandler := handlers.NewRSVPHandler(db)
	settlementHandler := handlers.NewSettlementHandler(db, cache)
	gamificationHandler := handlers.NewGamificationHandler(db, cache)
	announcementHandler := handlers.NewAnnouncementHandler(db)
	practiceHandler := handlers.NewPracticeHandler(db, cache)

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})

	api := e.Group("", authMiddleware.RequireUser())

	// Users
	api.POST("/users", userHandler.CreateOrUpdate)
	api.GET("/users", userHandler.List)
	api.GET("/users/:id", userHandler.Get)

	// Circles
	api.POST("/circles", circleHandler.Create)
	api.GET("/circles/:id", circleHandler.Get)
	api.POST("/circles/:id/members", circleHandler.AddMember)
	api.GET("/circles/:id/members", circleHandler.GetMembers)
	api.GET("/circles/:id/events", eventHandler.GetByCircle)
	api.GET("/circles/:id/announcements", announcementHandler.GetByCircle)
	api.GET("/circles/:id/leaderboard", gamificationHandler.Leaderboard)
	api.GET("/circles/:id/practice-categories", practiceHandler.GetCategoriesByCircle)
	api.GET("/circles/:id/practice-series", practiceHandler.GetSeriesByCircle)

	// Events
	api.POST("/events", eventHandler.Create)
	api.GET("/events/:id", eventHandler.Get)
	api.PUT("/events/:id", eventHandler.Update)
	api.DELETE("/events/:id", eventHandler.Delete)
	api.POST("/events/:id/rsvp", rsvpHandler.Submit)
	api.GET("/events/:id/rsvp/me", rsvpHandler.GetMy)
	api.GET("/events/:id/rsvps", rsvpHandler.GetByEvent)
	api.POST("/events/:id/settlements", settlementHandler.CreateFromEvent)
	api.GET("/events/:id/settlements", settlementHandler.GetByEvent)
	api.GET("/events/:id/announcements", announcementHandler.GetByEvent)

	// Settlements
	api.POST("/settlements", settlementHandler.Create)
	api.GET("/settlements/me", settlementHandler.GetMy)
	api.PUT("/settlements/:id", settlementHandler.Update)
	api.POST("/settlements/:id/report", settlementHandler.ReportPayment)
	api.POST("/settlements/:id/confirm/:userId", settlementHandler.Confirm)

	// Gamification
	api.GET("/me/stats", gamificationHandler.MyStats)

	// Announcements
	api.POST("/announcements", announcementHandler.Create)
	api.GET("/announcements/:id", announcementHandler.Get)
	api.PUT("/announcements/:id", announcementHandler.Update)
	api.DELETE("/announcements/:id", announcementHandler.Delete)

	// Practice
	api.POST("/practice-categories", practiceHandler.CreateCategory)
	api.DELETE("/practice-categories/:id", practiceHandler.DeleteCategory)
	api.POST("/practice-series", practiceHandler.CreateSeries)
	api.GET("/practice-series/:id", practiceHandler.GetSeriesDetail)
	api.PUT("/practice-series/:id", practiceHandler.UpdateSeries)
	api.DELETE("/practice-series/:id", practiceHandler.DeleteSeries)
	api.POST("/practice-series/:id/sessions", practiceHandler.CreateSession)
	api.POST("/practice-series/:id/sessions/generate", practiceHandler.GenerateSessions)
	api.POST("/practice-series/:id/bulk-rsvp", practiceHandler.SubmitBulkRSVPs)
	api.POST("/practice-series/:id/settlements", practiceHandler.CreateDues)
	api.POST("/practice-sessions/:id/cancel", practiceHandler.CancelSession)
	api.POST("/practice-sessions/:id/rsvp", practiceHandler.SubmitSessionRSVP)
	api.GET("/practice-sessions/:id/rsvps", practiceHandler.GetSessionRSVPs)

	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}
	e.Logger.Fatal(e.Start(":" + port))
}
