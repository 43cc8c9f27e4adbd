// Package register реализует HTTP-обработчик регистрации пользователя.
//
// Handler принимает JSON с данными нового пользователя, валидирует их,
// создает пользователя через сервис авторизации и возвращает JWT вместе
// с публичными данными созданного пользователя.
package register

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/ketewodros41-star/gym/internal/http/response"
	"github.com/ketewodros41-star/gym/internal/lib/sl"
	"github.com/ketewodros41-star/gym/internal/models"
	"github.com/ketewodros41-star/gym/internal/services"
	"github.com/ketewodros41-star/gym/internal/storage/repository"
)

// Request — входные данные для регистрации.
type Request struct {
	Name       string  `json:"name" validate:"required,min=1,max=100"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=6"`
	Role       string  `json:"role,omitempty" validate:"omitempty,oneof=admin trainer member"`
	JoinDate   string  `json:"joinDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
	PlanID     *int    `json:"planId,omitempty" validate:"omitempty,gt=0"`
	TrainerUID *string `json:"trainerId,omitempty" validate:"omitempty,uuid"`
}

// Response — JWT и публичные данные созданного пользователя.
type Response struct {
	Token string            `json:"token"`
	User  models.PublicUser `json:"user"`
}

// Handler обрабатывает запросы на регистрацию.
type Handler struct {
	log      *slog.Logger
	service  Service
	validate *validator.Validate
}

// Service описывает интерфейс бизнес-логики регистрации.
type Service interface {
	Register(ctx context.Context, in services.RegisterInput) (string, *models.User, error)
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
// @Summary Зарегистрировать пользователя
// @Description Создает пользователя (по умолчанию с ролью member) и возвращает JWT.
// @Tags Auth
// @Accept  json
// @Produce  json
// @Param request body Request true "Данные нового пользователя"
// @Success 201 {object} Response "Пользователь создан"
// @Failure 400 {object} response.ErrorResponse "Некорректный запрос или занятая почта"
// @Failure 404 {object} response.ErrorResponse "Указанный тарифный план не найден"
// @Failure 500 {object} response.ErrorResponse "Ошибка сервера"
// @Router /auth/register [post]
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	const op = "handlers.auth.register"

	log := h.log.With(
		slog.String("op", op),
		slog.String("request_id", middleware.GetReqID(r.Context())),
	)

	var req Request
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

	token, user, err := h.service.Register(r.Context(), services.RegisterInput{
		Name:       req.Name,
		Email:      req.Email,
		Password:   req.Password,
		Role:       req.Role,
		JoinDate:   req.JoinDate,
		PlanID:     req.PlanID,
		TrainerUID: req.TrainerUID,
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrEmailExists):
			log.Error("email already registered", sl.Err(err))
			w.WriteHeader(http.StatusBadRequest)
			render.JSON(w, r, response.Error("email already exists"))
		case errors.Is(err, repository.ErrNotFound):
			log.Error("plan not found", sl.Err(err))
			w.WriteHeader(http.StatusNotFound)
			render.JSON(w, r, response.Error("plan not found"))
		default:
			log.Error("registration failed", sl.Err(err))
			w.WriteHeader(http.StatusInternalServerError)
			render.JSON(w, r, response.Error("failed to register user"))
		}
		return
	}

	log.Info("user registered", slog.String("uid", user.UID), slog.String("role", user.Role))
	w.WriteHeader(http.StatusCreated)
	render.JSON(w, r, Response{Token: token, User: user.Public()})
}
