// Команда seed наполняет базу стартовыми данными: тарифные планы
// и по одному пользователю каждой роли. Повторный запуск безопасен —
// существующие email пропускаются.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"time"

	"github.com/ketewodros41-star/gym/internal/config"
	"github.com/ketewodros41-star/gym/internal/lib/password"
	"github.com/ketewodros41-star/gym/internal/lib/sl"
	"github.com/ketewodros41-star/gym/internal/migrations"
	"github.com/ketewodros41-star/gym/internal/models"
	"github.com/ketewodros41-star/gym/internal/storage/repository"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		logger.Error("failed to connect to storage", sl.Err(err))
		os.Exit(1)
	}
	defer func() {
		_ = db.DB.Close()
	}()

	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		logger.Error("failed to run migrations", sl.Err(err))
		os.Exit(1)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	plans := []models.Plan{
		{Name: "Monthly", Price: 3000, DurationDays: 30, Description: "Месячный абонемент"},
		{Name: "Yearly", Price: 30000, DurationDays: 365, Description: "Годовой абонемент"},
	}
	for _, plan := range plans {
		id, err := db.CreatePlan(ctx, plan)
		if err != nil {
			logger.Error("failed to create plan", slog.String("name", plan.Name), sl.Err(err))
			os.Exit(1)
		}
		logger.Info("plan created", slog.String("name", plan.Name), slog.Int("id", id))
	}

	now := time.Now().UTC()
	users := []struct {
		name     string
		email    string
		password string
		role     string
	}{
		{"Администратор", "admin@gym.local", "admin123", models.RoleAdmin},
		{"Тренер", "trainer@gym.local", "trainer123", models.RoleTrainer},
		{"Участник", "member@gym.local", "member123", models.RoleMember},
	}
	for _, u := range users {
		hash, err := password.GetHash(u.password)
		if err != nil {
			logger.Error("failed to hash password", sl.Err(err))
			os.Exit(1)
		}

		user := models.User{
			Name:         u.name,
			Email:        u.email,
			PasswordHash: hash,
			Role:         u.role,
		}
		if u.role == models.RoleMember {
			joined := now
			user.JoinDate = &joined
		}

		uid, err := db.CreateUser(ctx, user)
		if errors.Is(err, repository.ErrEmailExists) {
			logger.Info("user already exists, skipping", slog.String("email", u.email))
			continue
		}
		if err != nil {
			logger.Error("failed to create user", slog.String("email", u.email), sl.Err(err))
			os.Exit(1)
		}
		logger.Info("user created", slog.String("email", u.email), slog.String("uid", uid))
	}

	logger.Info("seed completed")
}
