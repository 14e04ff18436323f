package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"grievgo/backend/internal/api/handler"
	"grievgo/backend/internal/grievance"
	"grievgo/backend/internal/metrics"
	"grievgo/backend/internal/models"
	"grievgo/backend/internal/moderation"
	"grievgo/backend/internal/notify"
	"grievgo/backend/internal/storage"
)

func setupDependencies() (*gorm.DB, *redis.Client) {
	// 1. PostgreSQL
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		envOr("DB_HOST", "localhost"),
		envOr("DB_USER", "user"),
		envOr("DB_PASSWORD", "password"),
		envOr("DB_NAME", "grievgodb"),
		envOr("DB_PORT", "5432"),
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect PostgreSQL: %v", err)
	}

	// 2. Redis (session store)
	rdb := redis.NewClient(&redis.Options{
		Addr:     envOr("REDIS_ADDR", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})
	if _, err := rdb.Ping(context.Background()).Result(); err != nil {
		log.Fatalf("Failed to connect Redis: %v", err)
	}

	// 3. Migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.Grievance{},
		&models.GrievanceLog{},
	)
	if err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}

	log.Println("Database and Redis connections established, migrations complete.")
	return db, rdb
}

// seed creates the default admin and a sample student when missing.
func seed(s storage.Storage) error {
	accounts := []struct {
		username, password, role, fullName, email string
		department                                *string
	}{
		{"admin", "admin123", models.RoleAdmin, "System Administrator", "admin@university.edu", strPtr("Administration")},
		{"student", "password123", models.RoleStudent, "John Doe", "john@student.edu", nil},
	}

	for _, a := range accounts {
		existing, err := s.GetUserByUsername(a.username)
		if err != nil {
			return err
		}
		if existing != nil {
			continue
		}
		user := &models.User{
			Username:   a.username,
			Email:      a.email,
			Role:       a.role,
			Department: a.department,
			FullName:   a.fullName,
		}
		if err := user.SetPassword(a.password); err != nil {
			return err
		}
		if err := s.CreateUser(user); err != nil {
			return err
		}
		log.Printf("Seeded %s user %q", a.role, a.username)
	}
	return nil
}

func main() {
	log.Println("Starting GrievGo Backend...")

	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Error loading .env file")
	}

	// 1. Dependencies
	db, rdb := setupDependencies()
	s := storage.NewStorageService(db, rdb)
	metrics.Register()

	if err := seed(s); err != nil {
		log.Fatalf("Failed to seed default users: %v", err)
	}

	// 2. Moderation adapter and grievance service
	classifier := moderation.NewOpenAIClassifier(
		os.Getenv("OPENAI_API_KEY"),
		os.Getenv("OPENAI_BASE_URL"),
		os.Getenv("OPENAI_MODEL"),
	)
	svc := grievance.NewService(s, classifier)

	// 3. Optional staff alerts for auto-flagged submissions
	if token := os.Getenv("TELEGRAM_BOT_TOKEN"); token != "" {
		chatID, err := strconv.ParseInt(os.Getenv("MOD_ALERT_CHAT_ID"), 10, 64)
		if err != nil {
			log.Println("Warning: MOD_ALERT_CHAT_ID missing or invalid, moderation alerts disabled")
		} else if notifier, err := notify.NewTelegramNotifier(token, chatID); err != nil {
			log.Printf("Warning: Failed to start moderation alerts: %v", err)
		} else {
			svc.Notifier = notifier
		}
	}

	// 4. Gin and routing
	r := gin.Default()
	h := handler.NewHandler(s, svc)
	h.RegisterRoutes(r)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	server := &http.Server{
		Addr:        ":8080",
		Handler:     r,
		ReadTimeout: 10 * time.Second,
		// The moderation call is awaited inside the create request.
		WriteTimeout:   60 * time.Second,
		MaxHeaderBytes: 1 << 20,
	}

	log.Fatal(server.ListenAndServe())
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func strPtr(s string) *string { return &s }
