// Package checkout реализует HTTP-обработчик отметки ухода из зала.
//
// Закрывает самую свежую открытую сессию участника за сегодня; если открытой
// сессии нет, возвращает 404. Уже закрытые записи не изменяются.
package checkout

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/ketewodros41-star/gym/internal/authz"
	"github.com/ketewodros41-star/gym/internal/http/middlewarectx"
	"github.com/ketewodros41-star/gym/internal/http/response"
	"github.com/ketewodros41-star/gym/internal/lib/sl"
	"github.com/ketewodros41-star/gym/internal/models"
	"github.com/ketewodros41-star/gym/internal/storage/repository"
)

// Handler обрабатывает запросы на check-out.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики check-out.
type Service interface {
	CheckOut(ctx context.Context, memberUID string) (*models.Attendance, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.attendance.checkout"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	p, ok := middlewarectx.Principal(r.Context())
	if !ok {
		log.Error("principal not found in context")
		w.WriteHeader(http.StatusUnauthorized)
		render.JSON(w, r, response.Error("unauthorized"))
		return
	}

	var req models.DummyAttendance
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		log.Error("failed to decode request body", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.Error("invalid request body"))
		return
	}

	if err := h.validate.Struct(req); err != nil {
		log.Error("validation failed", sl.Err(err))
		w.WriteHeader(http.StatusBadRequest)
		render.JSON(w, r, response.ValidationError(err.(validator.ValidationErrors)))
		return
	}

	memberUID := req.MemberUID
	if memberUID == "" {
		memberUID = p.UID
	}
	if d := authz.Authorize(p, authz.ActionAttendanceMark, authz.Resource{MemberUID: memberUID}); !d.Allowed {
		log.Warn("access denied", slog.String("reason", d.Reason))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error(d.Reason))
		return
	}

	record, err := h.service.CheckOut(r.Context(), memberUID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("no open session today", slog.String("member", memberUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("no open attendance session"))
			return
		}
		log.Error("failed to check out", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to check out"))
		return
	}

	log.Info("member checked out", slog.String("member", memberUID), slog.Int("id", record.ID))
	render.JSON(w, r, record)
}
