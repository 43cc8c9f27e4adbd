package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ketewodros41-star/gym/internal/authz"
	"github.com/ketewodros41-star/gym/internal/models"
	"github.com/ketewodros41-star/gym/internal/storage/repository"
)

func TestUserService_List(t *testing.T) {
	trainerUID := "trainer-uid"
	all := []*models.User{{UID: "a"}, {UID: "b"}}
	own := []*models.User{{UID: "b", TrainerUID: &trainerUID}}

	tests := []struct {
		name      string
		principal authz.Principal
		setupMock func(users *UserRepoMock)
		wantLen   int
	}{
		{
			name:      "админ видит всех",
			principal: authz.Principal{UID: "admin-uid", Role: models.RoleAdmin},
			setupMock: func(users *UserRepoMock) {
				users.On("ListUsers", mock.Anything).Return(all, nil).Once()
			},
			wantLen: 2,
		},
		{
			name:      "тренер видит только закреплённых участников",
			principal: authz.Principal{UID: trainerUID, Role: models.RoleTrainer},
			setupMock: func(users *UserRepoMock) {
				users.On("ListUsersByTrainer", mock.Anything, trainerUID).Return(own, nil).Once()
			},
			wantLen: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserRepoMock)
			tt.setupMock(users)

			svc := NewUserService(users, new(PlanRepoMock), NewNoopLogger())

			got, err := svc.List(context.Background(), tt.principal)
			require.NoError(t, err)
			assert.Len(t, got, tt.wantLen)
			users.AssertExpectations(t)
		})
	}
}

func TestUserService_Update_AssignsPlanAndRecomputesExpiry(t *testing.T) {
	users := new(UserRepoMock)
	plans := new(PlanRepoMock)

	// первое назначение плана: срок считается от даты вступления
	member := &models.User{
		UID:      "member-uid",
		Role:     models.RoleMember,
		JoinDate: ptrTime(date(2024, 1, 1)),
	}
	plan := &models.Plan{ID: 2, Name: "Monthly", DurationDays: 30}

	users.On("GetUser", mock.Anything, "member-uid").Return(member, nil).Once()
	plans.On("GetPlan", mock.Anything, 2).Return(plan, nil).Once()
	users.On("UpdateUser", mock.Anything, mock.Anything).Return(1, nil).Once()

	svc := NewUserService(users, plans, NewNoopLogger())

	updated, err := svc.Update(context.Background(), "member-uid", models.DummyUserUpdate{
		PlanID: ptrInt(2),
	})
	require.NoError(t, err)

	require.NotNil(t, updated.PlanID)
	assert.Equal(t, 2, *updated.PlanID)
	require.NotNil(t, updated.MembershipExpiry)
	assert.Equal(t, date(2024, 1, 31), *updated.MembershipExpiry)

	users.AssertExpectations(t)
	plans.AssertExpectations(t)
}

func TestUserService_Update_ReassignStacksOnActiveMembership(t *testing.T) {
	users := new(UserRepoMock)
	plans := new(PlanRepoMock)

	// активное членство: новый план наращивает срок поверх старой даты
	member := &models.User{
		UID:              "member-uid",
		Role:             models.RoleMember,
		JoinDate:         ptrTime(date(2024, 1, 1)),
		MembershipExpiry: ptrTime(date(2024, 1, 31)),
	}
	plan := &models.Plan{ID: 3, Name: "Monthly", DurationDays: 30}

	users.On("GetUser", mock.Anything, "member-uid").Return(member, nil).Once()
	plans.On("GetPlan", mock.Anything, 3).Return(plan, nil).Once()
	users.On("UpdateUser", mock.Anything, mock.Anything).Return(1, nil).Once()

	svc := NewUserService(users, plans, NewNoopLogger())

	updated, err := svc.Update(context.Background(), "member-uid", models.DummyUserUpdate{
		PlanID: ptrInt(3),
	})
	require.NoError(t, err)
	assert.Equal(t, date(2024, 3, 1), *updated.MembershipExpiry)
}

func TestUserService_Update_PlanNotFound(t *testing.T) {
	users := new(UserRepoMock)
	plans := new(PlanRepoMock)

	member := &models.User{UID: "member-uid", Role: models.RoleMember}
	users.On("GetUser", mock.Anything, "member-uid").Return(member, nil).Once()
	plans.On("GetPlan", mock.Anything, 99).Return(nil, repository.ErrNotFound).Once()

	svc := NewUserService(users, plans, NewNoopLogger())

	_, err := svc.Update(context.Background(), "member-uid", models.DummyUserUpdate{
		PlanID: ptrInt(99),
	})
	assert.ErrorIs(t, err, repository.ErrNotFound)

	// при отсутствующем плане запись не изменяется
	users.AssertNotCalled(t, "UpdateUser", mock.Anything, mock.Anything)
}

func TestUserService_Delete(t *testing.T) {
	tests := []struct {
		name      string
		setupMock func(users *UserRepoMock)
		wantErr   error
	}{
		{
			name: "успешное удаление",
			setupMock: func(users *UserRepoMock) {
				users.On("DeleteUser", mock.Anything, "member-uid").Return(1, nil).Once()
			},
		},
		{
			name: "пользователь не найден",
			setupMock: func(users *UserRepoMock) {
				users.On("DeleteUser", mock.Anything, "member-uid").Return(0, nil).Once()
			},
			wantErr: repository.ErrNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := new(UserRepoMock)
			tt.setupMock(users)

			svc := NewUserService(users, new(PlanRepoMock), NewNoopLogger())

			err := svc.Delete(context.Background(), "member-uid")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			users.AssertExpectations(t)
		})
	}
}
