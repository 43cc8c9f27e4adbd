package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/streadway/amqp"

	"github.com/ketewodros41-star/gym/internal/lib/sl"
	"github.com/ketewodros41-star/gym/internal/models"
	"github.com/ketewodros41-star/gym/internal/rabbitmq"
)

// MemberRepository определяет выборки для проверки истёкших членств.
type MemberRepository interface {
	FindExpiredMembers(ctx context.Context, now time.Time) ([]*models.ExpiredMemberInfo, error)
	ListAdminEmails(ctx context.Context) ([]string, error)
}

// PublishFunc публикует сообщение с ключом маршрутизации в exchange уведомлений.
type PublishFunc func(routingKey string, message any) error

// SchedulerService раз в сутки в настроенный час (с учётом таймзоны)
// выбирает участников с истёкшим членством и публикует сообщения в очереди
// уведомлений: сводку для администраторов и по письму каждому участнику.
type SchedulerService struct {
	repo      MemberRepository
	log       *slog.Logger
	loc       *time.Location
	sweepHour int
}

// NewSchedulerService создает новый экземпляр SchedulerService.
// timezone — имя таймзоны IANA, sweepHour — час суток запуска (0-23).
func NewSchedulerService(repo MemberRepository, log *slog.Logger, timezone string, sweepHour int) (*SchedulerService, error) {
	const op = "scheduler.NewSchedulerService"
	loc, err := time.LoadLocation(timezone)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &SchedulerService{
		repo:      repo,
		log:       log,
		loc:       loc,
		sweepHour: sweepHour,
	}, nil
}

// Run блокируется и выполняет Sweep раз в сутки в настроенный час,
// пока контекст не будет отменён.
func (s *SchedulerService) Run(ctx context.Context, ch *amqp.Channel) {
	publish := func(routingKey string, message any) error {
		return rabbitmq.PublishMessage(ch, rabbitmq.NotificationsExchange, routingKey, message)
	}

	for {
		wait := s.untilNextSweep(time.Now().In(s.loc))
		s.log.Info("next expiry sweep scheduled", slog.Duration("in", wait))

		select {
		case <-time.After(wait):
		case <-ctx.Done():
			return
		}

		if err := s.Sweep(ctx, publish); err != nil {
			s.log.Error("expiry sweep failed", sl.Err(err))
		}
	}
}

// Sweep выполняет одну проверку: находит участников с истёкшим членством
// и публикует сообщения уведомлений. Ничего в хранилище не меняет;
// повторный запуск отправит уведомления заново.
func (s *SchedulerService) Sweep(ctx context.Context, publish PublishFunc) error {
	const op = "scheduler.Sweep"

	s.log.Info("starting expiry sweep")
	members, err := s.repo.FindExpiredMembers(ctx, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(members) == 0 {
		s.log.Info("no expired memberships today")
		return nil
	}

	adminEmails, err := s.repo.ListAdminEmails(ctx)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	if len(adminEmails) > 0 {
		summary := models.ExpiredSummary{AdminEmails: adminEmails}
		for _, m := range members {
			summary.Members = append(summary.Members, *m)
		}
		if err := publish(rabbitmq.RoutingKeyAdmins, summary); err != nil {
			s.log.Error("failed to publish admin summary", sl.Err(err))
		}
	}

	for _, member := range members {
		if member.Email == "" {
			continue
		}
		if err := publish(rabbitmq.RoutingKeyExpired, member); err != nil {
			s.log.Error("failed to publish member notification",
				slog.String("email", member.Email), sl.Err(err))
		}
	}

	s.log.Info("expiry sweep finished", slog.Int("expired_members", len(members)))
	return nil
}

// untilNextSweep возвращает время до ближайшего запуска в настроенный час.
func (s *SchedulerService) untilNextSweep(now time.Time) time.Duration {
	next := time.Date(now.Year(), now.Month(), now.Day(), s.sweepHour, 0, 0, 0, s.loc)
	if !next.After(now) {
		next = next.AddDate(0, 0, 1)
	}
	return next.Sub(now)
}
