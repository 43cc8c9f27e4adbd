// Package checkin реализует HTTP-обработчик отметки прихода в зал.
//
// Тело запроса опционально: без memberId участник отмечает сам себя.
// Повторный check-in при уже открытой сессии за сегодня отклоняется.
package checkin

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
	"github.com/ketewodros41-star/gym/internal/services"
	"github.com/ketewodros41-star/gym/internal/storage/repository"
)

// Handler обрабатывает запросы на check-in.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики check-in.
type Service interface {
	CheckIn(ctx context.Context, p authz.Principal, memberUID string) (*models.Attendance, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:      log,
		service:  service,
		validate: validator.New(),
	}
}

// ServeHTTP godoc
// @Summary Отметить приход в зал
// @Description Открывает сессию посещения. Тренер и админ могут отметить любого участника.
// @Tags Attendance
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyAttendance false "Участник (опционально)"
// @Success 201 {object} models.Attendance "Открытая сессия"
// @Failure 400 {object} response.ErrorResponse "Сессия уже открыта или некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Участник не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /attendance/checkin [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.attendance.checkin"

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

	record, err := h.service.CheckIn(r.Context(), p, memberUID)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrSessionAlreadyOpen):
			log.Error("open session already exists", slog.String("member", memberUID))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("open attendance session already exists"))
		case errors.Is(err, repository.ErrNotFound):
			log.Error("member not found", slog.String("member", memberUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("member not found"))
		default:
			log.Error("failed to check in", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to check in"))
		}
		return
	}

	log.Info("member checked in", slog.String("member", memberUID), slog.Int("id", record.ID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, record)
}
