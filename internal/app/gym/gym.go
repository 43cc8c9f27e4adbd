// Package gym собирает и запускает HTTP-приложение клуба: хранилище,
// миграции, кеш, сервисы и маршруты.
package gym

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi"

	"github.com/ketewodros41-star/gym/internal/cache"
	"github.com/ketewodros41-star/gym/internal/config"
	"github.com/ketewodros41-star/gym/internal/lib/jwt"
	"github.com/ketewodros41-star/gym/internal/migrations"
	"github.com/ketewodros41-star/gym/internal/services"
	"github.com/ketewodros41-star/gym/internal/storage/repository"
)

// App объединяет HTTP-сервер и его зависимости.
type App struct {
	server *http.Server
	logger *slog.Logger
	db     *repository.Storage
	cache  *cache.Cache
}

// New создает приложение: подключает базу, применяет миграции, поднимает
// кеш и регистрирует все маршруты.
func New(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*App, error) {
	db, err := repository.New(cfg.StorageConnectionString)
	if err != nil {
		return nil, err
	}
	if err = migrations.Run(db.DB, cfg.MigrationsPath); err != nil {
		return nil, err
	}

	cacheRedis, err := cache.InitServer(ctx, cfg.RedisConnection)
	if err != nil {
		return nil, err
	}

	jwtMaker := jwt.NewJWTMaker(cfg.JWTSecretKey, cfg.TokenTTL)

	authService := services.NewAuthService(db, db, jwtMaker)
	userService := services.NewUserService(db, db, logger)
	planService := services.NewPlanService(db, cacheRedis, logger)
	paymentService := services.NewPaymentService(db, db, db, logger)
	attendanceService := services.NewAttendanceService(db, db, logger)

	router := chi.NewRouter()
	RegisterRoutes(router, logger, authService, userService, planService, paymentService, attendanceService)

	srv := &http.Server{
		Addr:         cfg.AddressHTTP,
		Handler:      router,
		ReadTimeout:  cfg.TimeoutHTTP,
		WriteTimeout: cfg.TimeoutHTTP,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return &App{
		server: srv,
		logger: logger,
		db:     db,
		cache:  cacheRedis,
	}, nil
}

// Run запускает HTTP-сервер и блокируется до отмены контекста,
// после чего останавливает сервер с таймаутом.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		a.logger.Info("HTTP server starting on", slog.String("address", a.server.Addr))
		err := a.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			errCh <- nil
		} else {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		timeoutCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancel()
		a.logger.Info("shutting down HTTP server gracefully")
		err := a.server.Shutdown(timeoutCtx)
		_ = a.db.DB.Close()
		return err
	}
}
