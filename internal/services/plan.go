package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ketewodros41-star/gym/internal/models"
)

const (
	cacheKeyAllPlans = "plans:all"
	planCacheTTL     = time.Hour
)

// PlanRepository определяет методы для работы с тарифными планами в хранилище.
type PlanRepository interface {
	CreatePlan(ctx context.Context, plan models.Plan) (int, error)
	GetPlan(ctx context.Context, id int) (*models.Plan, error)
	ListPlans(ctx context.Context) ([]*models.Plan, error)
	UpdatePlan(ctx context.Context, plan models.Plan, id int) (int, error)
	DeletePlan(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	Get(key string, result any) (bool, error)
	Set(key string, value any, expiration time.Duration) error
	Invalidate(key string) error
}

// PlanService реализует бизнес-логику работы с тарифными планами, включая
// кеширование: планы — справочные данные, которые читаются на каждом
// дашборде и меняются редко.
type PlanService struct {
	repo  PlanRepository
	cache Cache
	log   *slog.Logger
}

// NewPlanService создает новый экземпляр PlanService.
func NewPlanService(repo PlanRepository, cache Cache, log *slog.Logger) *PlanService {
	return &PlanService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новый тарифный план и возвращает его ID.
func (s *PlanService) Create(ctx context.Context, req models.DummyPlan) (int, error) {
	plan := models.Plan{
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Description:  req.Description,
	}
	id, err := s.repo.CreatePlan(ctx, plan)
	if err != nil {
		return 0, err
	}
	s.log.Info("created new plan", slog.Int("id", id))

	if err := s.cache.Invalidate(cacheKeyAllPlans); err != nil {
		s.log.Warn("failed to invalidate plans cache", slog.Any("err", err))
	}
	return id, nil
}

// Get возвращает тарифный план по ID, используя кеш или репозиторий.
func (s *PlanService) Get(ctx context.Context, id int) (*models.Plan, error) {
	var result *models.Plan
	cacheKey := fmt.Sprintf("plan:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		s.log.Warn("failed to read plan from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.GetPlan(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKey, result, planCacheTTL); err != nil {
		s.log.Warn("failed to cache plan", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// List возвращает все тарифные планы, используя кеш или репозиторий.
func (s *PlanService) List(ctx context.Context) ([]*models.Plan, error) {
	var result []*models.Plan
	found, err := s.cache.Get(cacheKeyAllPlans, &result)
	if err != nil {
		s.log.Warn("failed to read plans from cache", slog.Any("err", err))
	}
	if found {
		return result, nil
	}

	result, err = s.repo.ListPlans(ctx)
	if err != nil {
		return nil, err
	}
	if err := s.cache.Set(cacheKeyAllPlans, result, planCacheTTL); err != nil {
		s.log.Warn("failed to cache plans", slog.Any("err", err))
	}
	return result, nil
}

// Update обновляет тарифный план и инвалидирует кеш.
func (s *PlanService) Update(ctx context.Context, req models.DummyPlan, id int) (int, error) {
	plan := models.Plan{
		Name:         req.Name,
		Price:        req.Price,
		DurationDays: req.DurationDays,
		Description:  req.Description,
	}
	count, err := s.repo.UpdatePlan(ctx, plan, id)
	if err != nil {
		return 0, err
	}
	s.invalidate(id)
	return count, nil
}

// Delete удаляет тарифный план и инвалидирует кеш.
func (s *PlanService) Delete(ctx context.Context, id int) (int, error) {
	count, err := s.repo.DeletePlan(ctx, id)
	if err != nil {
		return 0, err
	}
	s.invalidate(id)
	return count, nil
}

func (s *PlanService) invalidate(id int) {
	for _, key := range []string{fmt.Sprintf("plan:%d", id), cacheKeyAllPlans} {
		if err := s.cache.Invalidate(key); err != nil {
			s.log.Warn("failed to invalidate cache", slog.String("key", key), slog.Any("err", err))
		}
	}
}
