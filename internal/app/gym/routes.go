// Package gym предоставляет маршруты приложения.
package gym

import (
	"log/slog"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/ketewodros41-star/gym/internal/http/handlers/attendance/checkin"
	"github.com/ketewodros41-star/gym/internal/http/handlers/attendance/checkout"
	"github.com/ketewodros41-star/gym/internal/http/handlers/attendance/history"
	"github.com/ketewodros41-star/gym/internal/http/handlers/auth/login"
	"github.com/ketewodros41-star/gym/internal/http/handlers/auth/register"
	"github.com/ketewodros41-star/gym/internal/http/handlers/health"
	"github.com/ketewodros41-star/gym/internal/http/handlers/payment/paymentcreate"
	"github.com/ketewodros41-star/gym/internal/http/handlers/payment/paymentlist"
	plancreate "github.com/ketewodros41-star/gym/internal/http/handlers/plan/create"
	planlist "github.com/ketewodros41-star/gym/internal/http/handlers/plan/list"
	planread "github.com/ketewodros41-star/gym/internal/http/handlers/plan/read"
	planremove "github.com/ketewodros41-star/gym/internal/http/handlers/plan/remove"
	planupdate "github.com/ketewodros41-star/gym/internal/http/handlers/plan/update"
	userlist "github.com/ketewodros41-star/gym/internal/http/handlers/user/list"
	userread "github.com/ketewodros41-star/gym/internal/http/handlers/user/read"
	userremove "github.com/ketewodros41-star/gym/internal/http/handlers/user/remove"
	userupdate "github.com/ketewodros41-star/gym/internal/http/handlers/user/update"
	"github.com/ketewodros41-star/gym/internal/http/middlewarectx"
	"github.com/ketewodros41-star/gym/internal/services"
)

// RegisterRoutes регистрирует все маршруты приложения.
func RegisterRoutes(r chi.Router, logger *slog.Logger,
	authService *services.AuthService,
	userService *services.UserService,
	planService *services.PlanService,
	paymentService *services.PaymentService,
	attendanceService *services.AttendanceService,
) {
	// Глобальные middleware
	r.Use(
		middleware.RequestID,
		middleware.Logger,
		middleware.Recoverer,
		middleware.URLFormat,
	)

	r.Route("/api", func(r chi.Router) {
		// Открытые конечные точки
		r.Post("/auth/register", register.New(logger, authService).ServeHTTP)
		r.Post("/auth/login", login.New(logger, authService).ServeHTTP)

		// Группа с JWT аутентификацией
		r.Group(func(r chi.Router) {
			r.Use(middlewarectx.JWTMiddleware(authService, logger))
			r.Use(middlewarectx.RateLimitMiddleware(logger))

			r.Get("/users", userlist.New(logger, userService).ServeHTTP)
			r.Get("/users/{id}", userread.New(logger, userService).ServeHTTP)
			r.Put("/users/{id}", userupdate.New(logger, userService).ServeHTTP)
			r.Delete("/users/{id}", userremove.New(logger, userService).ServeHTTP)

			r.Get("/plans", planlist.New(logger, planService).ServeHTTP)
			r.Post("/plans", plancreate.New(logger, planService).ServeHTTP)
			r.Get("/plans/{id}", planread.New(logger, planService).ServeHTTP)
			r.Put("/plans/{id}", planupdate.New(logger, planService).ServeHTTP)
			r.Delete("/plans/{id}", planremove.New(logger, planService).ServeHTTP)

			r.Get("/payments", paymentlist.New(logger, paymentService).ServeHTTP)
			r.Post("/payments", paymentcreate.New(logger, paymentService).ServeHTTP)

			r.Post("/attendance/checkin", checkin.New(logger, attendanceService).ServeHTTP)
			r.Post("/attendance/checkout", checkout.New(logger, attendanceService).ServeHTTP)
			r.Get("/attendance/member/{id}", history.New(logger, attendanceService).ServeHTTP)
		})
	})

	r.Get("/health", health.New(logger).ServeHTTP)
	r.Handle("/metrics", promhttp.Handler())
	// Swagger docs endpoint
	r.Get("/docs/*", httpSwagger.WrapHandler)
}
