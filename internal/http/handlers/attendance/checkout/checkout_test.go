package checkout

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

	"github.com/ketewodros41-star/gym/internal/http/middlewarectx"
	"github.com/ketewodros41-star/gym/internal/models"
	"github.com/ketewodros41-star/gym/internal/storage/repository"
)

// MockService реализует интерфейс checkout.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) CheckOut(ctx context.Context, memberUID string) (*models.Attendance, error) {
	args := m.Called(ctx, memberUID)
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

func TestCheckOutHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	memberUID := "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	checkOut := time.Now().UTC()
	record := &models.Attendance{
		ID:        1,
		MemberUID: memberUID,
		CheckIn:   checkOut.Add(-time.Hour),
		CheckOut:  &checkOut,
	}

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
			name: "успешный check-out",
			body: "",
			uid:  memberUID,
			role: models.RoleMember,
			setupMock: func(m *MockService) {
				m.On("CheckOut", mock.Anything, memberUID).Return(record, nil)
			},
			expectedStatus: http.StatusOK,
			expectedBody:   `"checkOut"`,
		},
		{
			name: "нет открытой сессии за сегодня",
			body: "",
			uid:  memberUID,
			role: models.RoleMember,
			setupMock: func(m *MockService) {
				m.On("CheckOut", mock.Anything, memberUID).Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "no open attendance session",
		},
		{
			name:           "участник не может закрыть чужую сессию",
			body:           `{"memberId":"` + memberUID + `"}`,
			uid:            "другой-участник",
			role:           models.RoleMember,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   "members may mark attendance only for themselves",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/attendance/checkout", strings.NewReader(tt.body))
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
