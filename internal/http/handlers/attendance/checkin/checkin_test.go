package checkin

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ketewodros41-star/gym/internal/authz"
	"github.com/ketewodros41-star/gym/internal/http/middlewarectx"
	"github.com/ketewodros41-star/gym/internal/models"
	"github.com/ketewodros41-star/gym/internal/services"
	"github.com/ketewodros41-star/gym/internal/storage/repository"
)

// MockService реализует интерфейс checkin.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CheckIn(ctx context.Context, p authz.Principal, memberUID string) (*models.Attendance, error) {
	args := m.Called(ctx, p, memberUID)
	var record *models.Attendance
	if args.Get(0) != nil {
		record = args.Get(0).(*models.Attendance)
	}
	return record, args.Error(1)
}

func withPrincipal(req *http.Request, uid, role string) *http.Request {
	ctx := context.WithValue(req.Context(), middlewarectx.UserUID, uid)
	ctx = context.WithValue(ctx, middlewarectx.Role, role)
	return req.WithContext(ctx)
}

func TestCheckInHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	memberUID := "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	trainerUID := "0f8fad5b-d9cb-469f-a165-70867728950e"
	record := &models.Attendance{ID: 1, MemberUID: memberUID, CheckIn: time.Now().UTC()}

	tests := []struct {
		name           string
		body           string
		uid            string
		role           string
		setupMock      func(*MockService)
		expectedStatus int
		expectedBody   string
	}{
		{
			name: "участник отмечает себя без тела запроса",
			body: "",
			uid:  memberUID,
			role: models.RoleMember,
			setupMock: func(m *MockService) {
				m.On("CheckIn", mock.Anything,
					authz.Principal{UID: memberUID, Role: models.RoleMember}, memberUID).
					Return(record, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"memberId":"` + memberUID + `"`,
		},
		{
			name: "тренер отмечает участника",
			body: `{"memberId":"` + memberUID + `"}`,
			uid:  trainerUID,
			role: models.RoleTrainer,
			setupMock: func(m *MockService) {
				m.On("CheckIn", mock.Anything,
					authz.Principal{UID: trainerUID, Role: models.RoleTrainer}, memberUID).
					Return(record, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"memberId":"` + memberUID + `"`,
		},
		{
			name:           "участник не может отметить другого",
			body:           `{"memberId":"` + memberUID + `"}`,
			uid:            "другой-участник",
			role:           models.RoleMember,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   "members may mark attendance only for themselves",
		},
		{
			name: "сессия уже открыта",
			body: "",
			uid:  memberUID,
			role: models.RoleMember,
			setupMock: func(m *MockService) {
				m.On("CheckIn", mock.Anything, mock.Anything, memberUID).
					Return(nil, services.ErrSessionAlreadyOpen)
			},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "open attendance session already exists",
		},
		{
			name: "участник не найден",
			body: `{"memberId":"` + memberUID + `"}`,
			uid:  "admin-uid",
			role: models.RoleAdmin,
			setupMock: func(m *MockService) {
				m.On("CheckIn", mock.Anything, mock.Anything, memberUID).
					Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "member not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/attendance/checkin", strings.NewReader(tt.body))
			req = withPrincipal(req, tt.uid, tt.role)
			w := httptest.NewRecorder()

			handler.ServeHTTP(w, req)

			assert.Equal(t, tt.expectedStatus, w.Code)
			assert.True(t, strings.Contains(w.Body.String(), tt.expectedBody),
				"response body should contain %s, got %s", tt.expectedBody, w.Body.String())

			mockService.AssertExpectations(t)
		})
	}
}
