package main

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"github.com/joho/godotenv"
	"github.com/robfig/cron/v3"

	"github.com/mt-apps/walkzilla-backend/internal/config"
	"github.com/mt-apps/walkzilla-backend/internal/database"
	"github.com/mt-apps/walkzilla-backend/internal/handlers"
	"github.com/mt-apps/walkzilla-backend/internal/logger"
	"github.com/mt-apps/walkzilla-backend/internal/notify"
	"github.com/mt-apps/walkzilla-backend/internal/period"
	"github.com/mt-apps/walkzilla-backend/internal/pipeline"
	"github.com/mt-apps/walkzilla-backend/internal/routes"
	"github.com/mt-apps/walkzilla-backend/internal/services"
	"github.com/mt-apps/walkzilla-backend/internal/store"
)

func main() {
	// Load env
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found")
	}
	cfg := config.Load()

	lg, err := logger.New(cfg.Environment)
	if err != nil {
		log.Fatal("Failed to build logger:", err)
	}
	defer lg.Sync()

	// Every period boundary and schedule runs in this one zone.
	loc, err := time.LoadLocation(cfg.TimeZone)
	if err != nil {
		lg.Fatal("invalid TIME_ZONE", "zone", cfg.TimeZone, "error", err)
	}
	clock := period.NewClock(loc)

	lg.Info("connecting to MongoDB")
	client, db, err := database.Connect(cfg.MongoURI)
	if err != nil {
		lg.Fatal("failed to connect to MongoDB", "error", err)
	}
	defer database.Disconnect(client)

	lg.Info("connecting to Redis")
	redisClient, err := database.ConnectRedis(cfg.RedisURI)
	if err != nil {
		// The cache is an optimization; the pipeline runs without it.
		lg.Warn("failed to connect to Redis, leaderboard cache disabled", "error", err)
		redisClient = nil
	}

	var sender notify.Messenger
	if cfg.FirebaseCredentialsFile != "" {
		fcm, err := notify.NewFCM(context.Background(), cfg.FirebaseCredentialsFile)
		if err != nil {
			lg.Fatal("failed to initialize FCM", "error", err)
		}
		sender = fcm
		lg.Info("FCM messaging initialized")
	} else {
		lg.Warn("FIREBASE_CREDENTIALS_FILE not set, push delivery disabled")
	}

	st := store.NewMongo(client, db)
	pipe := pipeline.New(st, sender, clock, lg)
	h := handlers.New(st, services.NewCache(redisClient), pipe, clock, lg)

	// Scheduled drivers. At-least-once semantics are fine here: each
	// driver's own guard collapses repeat runs within a period.
	sched := cron.New(cron.WithLocation(loc))
	schedules := []struct {
		spec string
		name string
		run  func(context.Context, time.Time) error
	}{
		{"0 0 * * *", "daily_rewards", pipe.DailyRewards},
		{"1 0 * * 1", "weekly_rewards", pipe.WeeklyRewards},
		{"0 17 * * *", "daily_facts", pipe.DailyFacts},
		{"0 20 * * *", "goal_reminder", pipe.GoalReminder},
		{"0 */2 * * *", "inactivity_reminders", pipe.InactivityReminders},
	}
	for _, s := range schedules {
		s := s
		if _, err := sched.AddFunc(s.spec, func() {
			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
			defer cancel()
			if err := s.run(ctx, time.Now()); err != nil {
				lg.Error("scheduled driver failed", "driver", s.name, "error", err)
			}
		}); err != nil {
			lg.Fatal("invalid cron schedule", "driver", s.name, "spec", s.spec, "error", err)
		}
	}
	sched.Start()
	defer sched.Stop()
	lg.Info("scheduler started", "zone", cfg.TimeZone, "drivers", len(schedules))

	// HTTP surface
	r := chi.NewRouter()
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Admin-Key"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})
	routes.SetupRoutes(r, h, cfg.AdminKey)

	lg.Info("walkzilla backend running", "port", cfg.Port)
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		lg.Fatal("failed to start server", "error", err)
	}
}
