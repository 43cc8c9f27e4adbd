package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ketewodros41-star/gym/internal/authz"
	"github.com/ketewodros41-star/gym/internal/models"
	"github.com/ketewodros41-star/gym/internal/storage/repository"
)

func newAttendanceService(repo *AttendanceRepoMock, users *UserRepoMock, now time.Time) *AttendanceService {
	svc := NewAttendanceService(repo, users, NewNoopLogger())
	svc.now = func() time.Time { return now }
	return svc
}

func TestAttendanceService_CheckIn(t *testing.T) {
	now := time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)
	dayStart := date(2024, 6, 1)
	member := &models.User{UID: "member-uid", Role: models.RoleMember}

	t.Run("участник отмечается сам", func(t *testing.T) {
		repo := new(AttendanceRepoMock)
		users := new(UserRepoMock)

		users.On("GetUser", mock.Anything, "member-uid").Return(member, nil).Once()
		repo.On("FindOpenSession", mock.Anything, "member-uid", dayStart).
			Return(nil, repository.ErrNotFound).Once()
		repo.On("CreateAttendance", mock.Anything, models.Attendance{
			MemberUID: "member-uid",
			CheckIn:   now,
		}).Return(&models.Attendance{ID: 1, MemberUID: "member-uid", CheckIn: now}, nil).Once()

		svc := newAttendanceService(repo, users, now)

		record, err := svc.CheckIn(context.Background(),
			authz.Principal{UID: "member-uid", Role: models.RoleMember}, "member-uid")
		require.NoError(t, err)
		assert.Equal(t, 1, record.ID)
		assert.Nil(t, record.TrainerUID)
		repo.AssertExpectations(t)
	})

	t.Run("check-in тренера фиксируется в записи", func(t *testing.T) {
		repo := new(AttendanceRepoMock)
		users := new(UserRepoMock)
		trainerUID := "trainer-uid"

		users.On("GetUser", mock.Anything, "member-uid").Return(member, nil).Once()
		repo.On("FindOpenSession", mock.Anything, "member-uid", dayStart).
			Return(nil, repository.ErrNotFound).Once()
		repo.On("CreateAttendance", mock.Anything, models.Attendance{
			MemberUID:  "member-uid",
			CheckIn:    now,
			TrainerUID: &trainerUID,
		}).Return(&models.Attendance{ID: 2, MemberUID: "member-uid", CheckIn: now, TrainerUID: &trainerUID}, nil).Once()

		svc := newAttendanceService(repo, users, now)

		record, err := svc.CheckIn(context.Background(),
			authz.Principal{UID: trainerUID, Role: models.RoleTrainer}, "member-uid")
		require.NoError(t, err)
		require.NotNil(t, record.TrainerUID)
		assert.Equal(t, trainerUID, *record.TrainerUID)
	})

	t.Run("повторный check-in при открытой сессии отклоняется", func(t *testing.T) {
		repo := new(AttendanceRepoMock)
		users := new(UserRepoMock)

		users.On("GetUser", mock.Anything, "member-uid").Return(member, nil).Once()
		repo.On("FindOpenSession", mock.Anything, "member-uid", dayStart).
			Return(&models.Attendance{ID: 1, MemberUID: "member-uid", CheckIn: now.Add(-time.Hour)}, nil).Once()

		svc := newAttendanceService(repo, users, now)

		_, err := svc.CheckIn(context.Background(),
			authz.Principal{UID: "member-uid", Role: models.RoleMember}, "member-uid")
		assert.ErrorIs(t, err, ErrSessionAlreadyOpen)

		repo.AssertNotCalled(t, "CreateAttendance", mock.Anything, mock.Anything)
	})

	t.Run("неизвестный участник", func(t *testing.T) {
		repo := new(AttendanceRepoMock)
		users := new(UserRepoMock)

		users.On("GetUser", mock.Anything, "missing-uid").Return(nil, repository.ErrNotFound).Once()

		svc := newAttendanceService(repo, users, now)

		_, err := svc.CheckIn(context.Background(),
			authz.Principal{UID: "admin-uid", Role: models.RoleAdmin}, "missing-uid")
		assert.ErrorIs(t, err, repository.ErrNotFound)
	})
}

func TestAttendanceService_CheckOut(t *testing.T) {
	now := time.Date(2024, 6, 1, 18, 0, 0, 0, time.UTC)
	dayStart := date(2024, 6, 1)

	t.Run("закрывает открытую сессию", func(t *testing.T) {
		repo := new(AttendanceRepoMock)

		open := &models.Attendance{ID: 5, MemberUID: "member-uid", CheckIn: now.Add(-2 * time.Hour)}
		closed := &models.Attendance{ID: 5, MemberUID: "member-uid", CheckIn: open.CheckIn, CheckOut: &now}

		repo.On("FindOpenSession", mock.Anything, "member-uid", dayStart).Return(open, nil).Once()
		repo.On("CloseSession", mock.Anything, 5, now).Return(closed, nil).Once()

		svc := newAttendanceService(repo, new(UserRepoMock), now)

		record, err := svc.CheckOut(context.Background(), "member-uid")
		require.NoError(t, err)
		require.NotNil(t, record.CheckOut)
		assert.Equal(t, now, *record.CheckOut)
		repo.AssertExpectations(t)
	})

	t.Run("без открытой сессии за сегодня — NotFound", func(t *testing.T) {
		repo := new(AttendanceRepoMock)

		repo.On("FindOpenSession", mock.Anything, "member-uid", dayStart).
			Return(nil, repository.ErrNotFound).Once()

		svc := newAttendanceService(repo, new(UserRepoMock), now)

		_, err := svc.CheckOut(context.Background(), "member-uid")
		assert.ErrorIs(t, err, repository.ErrNotFound)

		// закрытые записи не трогаются
		repo.AssertNotCalled(t, "CloseSession", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestAttendanceService_History(t *testing.T) {
	repo := new(AttendanceRepoMock)

	records := []*models.Attendance{{ID: 2}, {ID: 1}}
	repo.On("ListAttendanceByMember", mock.Anything, "member-uid").Return(records, nil).Once()

	svc := newAttendanceService(repo, new(UserRepoMock), time.Now())

	got, err := svc.History(context.Background(), "member-uid")
	require.NoError(t, err)
	assert.Len(t, got, 2)
}
