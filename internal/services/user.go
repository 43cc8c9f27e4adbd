package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ketewodros41-star/gym/internal/authz"
	"github.com/ketewodros41-star/gym/internal/lib/expiry"
	"github.com/ketewodros41-star/gym/internal/models"
	"github.com/ketewodros41-star/gym/internal/storage/repository"
)

// UserRepository определяет методы для работы с пользователями в хранилище.
type UserRepository interface {
	// CreateUser сохраняет нового пользователя и возвращает его UID.
	CreateUser(ctx context.Context, user models.User) (string, error)

	// GetUserByEmail возвращает пользователя по почте или ошибку, если не найден.
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)

	GetUser(ctx context.Context, uid string) (*models.User, error)
	ListUsers(ctx context.Context) ([]*models.User, error)
	ListUsersByTrainer(ctx context.Context, trainerUID string) ([]*models.User, error)
	UpdateUser(ctx context.Context, user *models.User) (int, error)
	DeleteUser(ctx context.Context, uid string) (int, error)
}

// UserService реализует бизнес-логику работы с пользователями:
// списки с учётом роли, чтение, обновление с переназначением плана и удаление.
type UserService struct {
	users UserRepository
	plans PlanRepository
	log   *slog.Logger
}

// NewUserService создает новый экземпляр UserService.
func NewUserService(users UserRepository, plans PlanRepository, log *slog.Logger) *UserService {
	return &UserService{
		users: users,
		plans: plans,
		log:   log,
	}
}

// List возвращает пользователей с учётом роли: админ видит всех,
// тренер — только закреплённых за ним участников.
func (s *UserService) List(ctx context.Context, p authz.Principal) ([]*models.User, error) {
	if p.Role == models.RoleAdmin {
		return s.users.ListUsers(ctx)
	}
	return s.users.ListUsersByTrainer(ctx, p.UID)
}

// Get возвращает пользователя по UID.
func (s *UserService) Get(ctx context.Context, uid string) (*models.User, error) {
	return s.users.GetUser(ctx, uid)
}

// Update применяет частичное обновление пользователя. Назначение нового
// плана пересчитывает дату окончания членства: база — неистёкшая текущая
// дата окончания, иначе дата вступления (или сегодня).
func (s *UserService) Update(ctx context.Context, uid string, req models.DummyUserUpdate) (*models.User, error) {
	const op = "user.Update"

	user, err := s.users.GetUser(ctx, uid)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if req.Name != "" {
		user.Name = req.Name
	}
	if req.TrainerUID != nil {
		user.TrainerUID = req.TrainerUID
	}
	if req.JoinDate != "" {
		joinDate, err := time.Parse("2006-01-02", req.JoinDate)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid join date: %w", op, err)
		}
		user.JoinDate = &joinDate
	}
	if req.PlanID != nil {
		plan, err := s.plans.GetPlan(ctx, *req.PlanID)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		ref := time.Now().UTC()
		if user.JoinDate != nil {
			ref = *user.JoinDate
		}
		newExpiry := expiry.Next(user.MembershipExpiry, ref, plan.DurationDays)
		user.PlanID = &plan.ID
		user.MembershipExpiry = &newExpiry
	}

	count, err := s.users.UpdateUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return nil, fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}

	s.log.Info("updated user", slog.String("uid", uid))
	return user, nil
}

// Delete удаляет пользователя по UID.
func (s *UserService) Delete(ctx context.Context, uid string) error {
	const op = "user.Delete"

	count, err := s.users.DeleteUser(ctx, uid)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if count == 0 {
		return fmt.Errorf("%s: %w", op, repository.ErrNotFound)
	}
	s.log.Info("deleted user", slog.String("uid", uid))
	return nil
}
