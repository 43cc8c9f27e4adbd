package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/ketewodros41-star/gym/internal/authz"
	"github.com/ketewodros41-star/gym/internal/lib/expiry"
	"github.com/ketewodros41-star/gym/internal/models"
)

// PaymentRepository определяет методы для работы с платежами в хранилище.
type PaymentRepository interface {
	CreatePayment(ctx context.Context, payment models.Payment) (int, error)
	CreatePaymentExtendingMembership(ctx context.Context, payment models.Payment,
		planID int, newExpiry time.Time) (int, error)
	ListPayments(ctx context.Context) ([]*models.Payment, error)
	ListPaymentsByMember(ctx context.Context, memberUID string) ([]*models.Payment, error)
}

// PaymentService реализует бизнес-логику записи платежей. Платёж с указанным
// тарифным планом продлевает членство участника; вставка платежа и новая дата
// окончания пишутся в одной транзакции хранилища.
type PaymentService struct {
	payments PaymentRepository
	users    UserRepository
	plans    PlanRepository
	log      *slog.Logger
	// источник текущего времени, подменяется в тестах
	now func() time.Time
}

// NewPaymentService создает новый экземпляр PaymentService.
func NewPaymentService(payments PaymentRepository, users UserRepository, plans PlanRepository, log *slog.Logger) *PaymentService {
	return &PaymentService{
		payments: payments,
		users:    users,
		plans:    plans,
		log:      log,
		now:      time.Now,
	}
}

// Create записывает платёж участника memberUID. Если указан план, членство
// продлевается от неистёкшей текущей даты окончания, иначе — от момента
// платежа; отсутствующие участник или план — ошибка до любой записи.
func (s *PaymentService) Create(ctx context.Context, memberUID string, req models.DummyPayment) (*models.Payment, error) {
	const op = "payment.Create"

	member, err := s.users.GetUser(ctx, memberUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	status := req.Status
	if status == "" {
		status = models.PaymentStatusCompleted
	}
	payment := models.Payment{
		MemberUID: member.UID,
		Amount:    req.Amount,
		Status:    status,
		PlanID:    req.PlanID,
		CreatedAt: s.now().UTC(),
	}

	if req.PlanID == nil {
		payment.ID, err = s.payments.CreatePayment(ctx, payment)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		s.log.Info("recorded payment", slog.Int("id", payment.ID))
		return &payment, nil
	}

	plan, err := s.plans.GetPlan(ctx, *req.PlanID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	newExpiry := expiry.Next(member.MembershipExpiry, payment.CreatedAt, plan.DurationDays)

	payment.ID, err = s.payments.CreatePaymentExtendingMembership(ctx, payment, plan.ID, newExpiry)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("recorded payment and extended membership",
		slog.Int("id", payment.ID),
		slog.String("member", member.UID),
		slog.Time("membership_expiry", newExpiry))
	return &payment, nil
}

// List возвращает платежи с учётом роли: админ видит все,
// участник — только свои.
func (s *PaymentService) List(ctx context.Context, p authz.Principal) ([]*models.Payment, error) {
	if p.Role == models.RoleAdmin {
		return s.payments.ListPayments(ctx)
	}
	return s.payments.ListPaymentsByMember(ctx, p.UID)
}
