// Package paymentcreate реализует HTTP-обработчик записи платежа.
//
// Платёж с указанным тарифным планом продлевает членство участника.
// Участник может записать платёж только на себя; если memberId не указан,
// платёж записывается на отправителя запроса.
package paymentcreate

import (
	"context"
	"encoding/json"
	"errors"
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

// Handler обрабатывает запросы на запись платежей.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики записи платежа.
type Service interface {
	Create(ctx context.Context, memberUID string, req models.DummyPayment) (*models.Payment, error)
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
// @Summary Записать платёж
// @Description Записывает платёж участника. Платёж с planId продлевает членство.
// @Tags Payments
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param request body models.DummyPayment true "Данные платежа"
// @Success 201 {object} models.Payment "Записанный платёж"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос"
// @Failure 401 {object} response.ErrorResponse "Пользователь не авторизован"
// @Failure 403 {object} response.ErrorResponse "Недостаточно прав"
// @Failure 404 {object} response.ErrorResponse "Участник или план не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /payments [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.payment.create"

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

	var req models.DummyPayment
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
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
	if d := authz.Authorize(p, authz.ActionPaymentCreate, authz.Resource{MemberUID: memberUID}); !d.Allowed {
		log.Warn("access denied", slog.String("reason", d.Reason))
		w.WriteHeader(http.StatusForbidden)
		render.JSON(w, r, response.Error(d.Reason))
		return
	}

	payment, err := h.service.Create(r.Context(), memberUID, req)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			log.Error("member or plan not found", slog.String("member", memberUID))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("not found"))
			return
		}
		log.Error("failed to create payment", sl.Err(err))
		w.WriteHeader(http.StatusInternalServerError)
		render.JSON(w, r, response.Error("failed to create payment"))
		return
	}

	log.Info("payment recorded", slog.Int("id", payment.ID), slog.String("member", memberUID))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, payment)
}
