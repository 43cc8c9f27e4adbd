package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ketewodros41-star/gym/internal/authz"
	"github.com/ketewodros41-star/gym/internal/models"
	"github.com/ketewodros41-star/gym/internal/storage/repository"
)

// ErrSessionAlreadyOpen возвращается при повторном check-in без check-out.
var ErrSessionAlreadyOpen = errors.New("open attendance session already exists")

// AttendanceRepository определяет методы для работы с посещениями в хранилище.
type AttendanceRepository interface {
	CreateAttendance(ctx context.Context, record models.Attendance) (*models.Attendance, error)
	FindOpenSession(ctx context.Context, memberUID string, dayStart time.Time) (*models.Attendance, error)
	CloseSession(ctx context.Context, id int, checkOut time.Time) (*models.Attendance, error)
	ListAttendanceByMember(ctx context.Context, memberUID string) ([]*models.Attendance, error)
}

// AttendanceService реализует бизнес-логику посещений: check-in, check-out
// и историю участника. Для участника в один календарный день допускается не
// более одной открытой сессии; check-out закрывает самую свежую открытую
// запись за сегодня и никогда не трогает уже закрытые.
type AttendanceService struct {
	repo  AttendanceRepository
	users UserRepository
	log   *slog.Logger
	// источник текущего времени, подменяется в тестах
	now func() time.Time
}

// NewAttendanceService создает новый экземпляр AttendanceService.
func NewAttendanceService(repo AttendanceRepository, users UserRepository, log *slog.Logger) *AttendanceService {
	return &AttendanceService{
		repo:  repo,
		users: users,
		log:   log,
		now:   time.Now,
	}
}

// CheckIn открывает сессию посещения участника memberUID. Если check-in
// инициировал тренер, он фиксируется в записи. Повторный check-in при
// открытой сессии — ошибка ErrSessionAlreadyOpen.
func (s *AttendanceService) CheckIn(ctx context.Context, p authz.Principal, memberUID string) (*models.Attendance, error) {
	const op = "attendance.CheckIn"

	member, err := s.users.GetUser(ctx, memberUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	now := s.now().UTC()
	_, err = s.repo.FindOpenSession(ctx, member.UID, startOfDay(now))
	if err == nil {
		return nil, fmt.Errorf("%s: %w", op, ErrSessionAlreadyOpen)
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	record := models.Attendance{
		MemberUID: member.UID,
		CheckIn:   now,
	}
	if p.Role == models.RoleTrainer {
		record.TrainerUID = &p.UID
	}

	created, err := s.repo.CreateAttendance(ctx, record)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("member checked in", slog.String("member", member.UID), slog.Int("id", created.ID))
	return created, nil
}

// CheckOut закрывает самую свежую открытую сессию участника за сегодня.
// Если открытой сессии нет — ErrNotFound.
func (s *AttendanceService) CheckOut(ctx context.Context, memberUID string) (*models.Attendance, error) {
	const op = "attendance.CheckOut"

	now := s.now().UTC()
	open, err := s.repo.FindOpenSession(ctx, memberUID, startOfDay(now))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	closed, err := s.repo.CloseSession(ctx, open.ID, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	s.log.Info("member checked out", slog.String("member", memberUID), slog.Int("id", closed.ID))
	return closed, nil
}

// History возвращает историю посещений участника, от новых к старым.
func (s *AttendanceService) History(ctx context.Context, memberUID string) ([]*models.Attendance, error) {
	return s.repo.ListAttendanceByMember(ctx, memberUID)
}

// Member возвращает участника: обработчику истории нужны его данные,
// чтобы проверить закреплённого тренера.
func (s *AttendanceService) Member(ctx context.Context, uid string) (*models.User, error) {
	return s.users.GetUser(ctx, uid)
}

func startOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}
