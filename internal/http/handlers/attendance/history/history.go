// Package history реализует HTTP-обработчик получения истории посещений
// участника. Участник видит только свою историю, тренер — историю своих
// участников.
package history

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"

	"github.com/ketewodros41-star/gym/internal/authz"
	"github.com/ketewodros41-star/gym/internal/http/middlewarectx"
	"github.com/ketewodros41-star/gym/internal/http/response"
	"github.com/ketewodros41-star/gym/internal/lib/sl"
	"github.com/ketewodros41-star/gym/internal/models"
	"github.com/ketewodros41-star/gym/internal/storage/repository"
)

// Handler обрабатывает запросы на получение истории посещений.
type Handler struct {
	log     *slog.Logger
	service Service
}

// Service описывает интерфейс бизнес-логики истории посещений.
type Service interface {
	Member(ctx context.Context, uid string) (*models.User, error)
	History(ctx context.Context, memberUID string) ([]*models.Attendance, error)
}

// New создает новый Handler с переданными логгером и сервисом.
func New(log *slog.Logger, service Service) *Handler {
	return &Handler{
		log:     log,
		service: service,
	}
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.attendance.history"

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

	uid := chi.URLParam(r, "id")
	member, err := h.service.Member(r.Context(), uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("member not found", slog.String("uid", uid))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("member not found"))
			return
		}
		log.Error("failed to read member", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read member"))
		return
	}

	resource := authz.Resource{MemberUID: member.UID}
	if member.TrainerUID != nil {
		resource.TrainerUID = *member.TrainerUID
	}
	if d := authz.Authorize(p, authz.ActionAttendanceRead, resource); !d.Allowed {
		log.Warn("access denied", slog.String("reason", d.Reason))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error(d.Reason))
		return
	}

	records, err := h.service.History(r.Context(), uid)
	if err != nil {
		log.Error("failed to read attendance history", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to read attendance history"))
		return
	}

	log.Info("attendance history read", slog.String("member", uid), slog.Int("count", len(records)))
	render.JSON(w, r, records)
}
