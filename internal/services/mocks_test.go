package services

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/ketewodros41-star/gym/internal/lib/jwt"
	"github.com/ketewodros41-star/gym/internal/models"
)

type UserRepoMock struct{ mock.Mock }

func (m *UserRepoMock) CreateUser(ctx context.Context, user models.User) (string, error) {
	args := m.Called(ctx, user)
	return args.String(0), args.Error(1)
}

func (m *UserRepoMock) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) GetUser(ctx context.Context, uid string) (*models.User, error) {
	args := m.Called(ctx, uid)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *UserRepoMock) ListUsers(ctx context.Context) ([]*models.User, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *UserRepoMock) ListUsersByTrainer(ctx context.Context, trainerUID string) ([]*models.User, error) {
	args := m.Called(ctx, trainerUID)
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *UserRepoMock) UpdateUser(ctx context.Context, user *models.User) (int, error) {
	args := m.Called(ctx, user)
	return args.Int(0), args.Error(1)
}

func (m *UserRepoMock) DeleteUser(ctx context.Context, uid string) (int, error) {
	args := m.Called(ctx, uid)
	return args.Int(0), args.Error(1)
}

type PlanRepoMock struct{ mock.Mock }

func (m *PlanRepoMock) CreatePlan(ctx context.Context, plan models.Plan) (int, error) {
	args := m.Called(ctx, plan)
	return args.Int(0), args.Error(1)
}

func (m *PlanRepoMock) GetPlan(ctx context.Context, id int) (*models.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Plan), args.Error(1)
}

func (m *PlanRepoMock) ListPlans(ctx context.Context) ([]*models.Plan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Plan), args.Error(1)
}

func (m *PlanRepoMock) UpdatePlan(ctx context.Context, plan models.Plan, id int) (int, error) {
	args := m.Called(ctx, plan, id)
	return args.Int(0), args.Error(1)
}

func (m *PlanRepoMock) DeletePlan(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type PaymentRepoMock struct{ mock.Mock }

func (m *PaymentRepoMock) CreatePayment(ctx context.Context, payment models.Payment) (int, error) {
	args := m.Called(ctx, payment)
	return args.Int(0), args.Error(1)
}

func (m *PaymentRepoMock) CreatePaymentExtendingMembership(ctx context.Context, payment models.Payment, planID int, newExpiry time.Time) (int, error) {
	args := m.Called(ctx, payment, planID, newExpiry)
	return args.Int(0), args.Error(1)
}

func (m *PaymentRepoMock) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	args := m.Called(ctx)
	return args.Get(0).([]*models.Payment), args.Error(1)
}

func (m *PaymentRepoMock) ListPaymentsByMember(ctx context.Context, memberUID string) ([]*models.Payment, error) {
	args := m.Called(ctx, memberUID)
	return args.Get(0).([]*models.Payment), args.Error(1)
}

type AttendanceRepoMock struct{ mock.Mock }

func (m *AttendanceRepoMock) CreateAttendance(ctx context.Context, record models.Attendance) (*models.Attendance, error) {
	args := m.Called(ctx, record)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attendance), args.Error(1)
}

func (m *AttendanceRepoMock) FindOpenSession(ctx context.Context, memberUID string, dayStart time.Time) (*models.Attendance, error) {
	args := m.Called(ctx, memberUID, dayStart)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attendance), args.Error(1)
}

func (m *AttendanceRepoMock) CloseSession(ctx context.Context, id int, checkOut time.Time) (*models.Attendance, error) {
	args := m.Called(ctx, id, checkOut)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Attendance), args.Error(1)
}

func (m *AttendanceRepoMock) ListAttendanceByMember(ctx context.Context, memberUID string) ([]*models.Attendance, error) {
	args := m.Called(ctx, memberUID)
	return args.Get(0).([]*models.Attendance), args.Error(1)
}

type MemberRepoMock struct{ mock.Mock }

func (m *MemberRepoMock) FindExpiredMembers(ctx context.Context, now time.Time) ([]*models.ExpiredMemberInfo, error) {
	args := m.Called(ctx, now)
	return args.Get(0).([]*models.ExpiredMemberInfo), args.Error(1)
}

func (m *MemberRepoMock) ListAdminEmails(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	return args.Get(0).([]string), args.Error(1)
}

type CacheMock struct{ mock.Mock }

func (m *CacheMock) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *CacheMock) Set(key string, value any, expiration time.Duration) error {
	return m.Called(key, value, expiration).Error(0)
}

func (m *CacheMock) Invalidate(key string) error {
	return m.Called(key).Error(0)
}

type JWTMakerMock struct{ mock.Mock }

func (m *JWTMakerMock) GenerateToken(uid, role string) (string, error) {
	args := m.Called(uid, role)
	return args.String(0), args.Error(1)
}

func (m *JWTMakerMock) ParseToken(tokenStr string) (*jwt.CustomClaims, error) {
	args := m.Called(tokenStr)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*jwt.CustomClaims), args.Error(1)
}

func NewNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func ptrTime(t time.Time) *time.Time { return &t }

func ptrInt(i int) *int { return &i }
