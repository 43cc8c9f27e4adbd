package paymentcreate

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/ketewodros41-star/gym/internal/http/middlewarectx"
	"github.com/ketewodros41-star/gym/internal/models"
	"github.com/ketewodros41-star/gym/internal/storage/repository"
)

// MockService реализует интерфейс paymentcreate.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) Create(ctx context.Context, memberUID string, req models.DummyPayment) (*models.Payment, error) {
	args := m.Called(ctx, memberUID, req)
	var payment *models.Payment
	if args.Get(0) != nil {
		payment = args.Get(0).(*models.Payment)
	}
	return payment, args.Error(1)
}

func withPrincipal(req *http.Request, uid, role string) *http.Request {
	ctx := context.WithValue(req.Context(), middlewarectx.UserUID, uid)
	ctx = context.WithValue(ctx, middlewarectx.Role, role)
	return req.WithContext(ctx)
}

func TestPaymentCreateHandler(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelDebug}))

	memberUID := "7c9e6679-7425-40de-944b-e07fc1f90ae7"
	payment := &models.Payment{ID: 1, MemberUID: memberUID, Amount: 5000, Status: models.PaymentStatusCompleted}

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
			name: "участник платит за себя",
			body: `{"amount":5000}`,
			uid:  memberUID,
			role: models.RoleMember,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, memberUID, models.DummyPayment{Amount: 5000}).
					Return(payment, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"amount":5000`,
		},
		{
			name: "админ записывает платёж любого участника",
			body: `{"memberId":"` + memberUID + `","amount":5000}`,
			uid:  "admin-uid",
			role: models.RoleAdmin,
			setupMock: func(m *MockService) {
				m.On("Create", mock.Anything, memberUID, models.DummyPayment{MemberUID: memberUID, Amount: 5000}).
					Return(payment, nil)
			},
			expectedStatus: http.StatusCreated,
			expectedBody:   `"amount":5000`,
		},
		{
			name:           "участник не может платить за другого",
			body:           `{"memberId":"` + memberUID + `","amount":5000}`,
			uid:            "другой-участник",
			role:           models.RoleMember,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   "payments may be recorded only for yourself",
		},
		{
			name:           "тренеру запись платежей недоступна",
			body:           `{"memberId":"` + memberUID + `","amount":5000}`,
			uid:            "trainer-uid",
			role:           models.RoleTrainer,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusForbidden,
			expectedBody:   "payments may be recorded only for yourself",
		},
		{
			name:           "нулевая сумма",
			body:           `{"amount":0}`,
			uid:            memberUID,
			role:           models.RoleMember,
			setupMock:      func(_ *MockService) {},
			expectedStatus: http.StatusBadRequest,
			expectedBody:   "Amount",
		},
		{
			name: "план не найден",
			body: `{"amount":5000,"planId":99}`,
			uid:  memberUID,
			role: models.RoleMember,
			setupMock: func(m *MockService) {
				planID := 99
				m.On("Create", mock.Anything, memberUID, models.DummyPayment{Amount: 5000, PlanID: &planID}).
					Return(nil, repository.ErrNotFound)
			},
			expectedStatus: http.StatusNotFound,
			expectedBody:   "not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockService := new(MockService)
			tt.setupMock(mockService)

			handler := New(logger, mockService)

			req := httptest.NewRequest(http.MethodPost, "/api/payments", strings.NewReader(tt.body))
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
