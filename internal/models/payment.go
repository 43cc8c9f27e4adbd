package models

import "time"

// Статусы платежа.
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusPending   = "pending"
)

// Payment представляет платёж участника. Записи платежей только добавляются,
// маршрутов изменения или удаления нет. Платёж с указанным планом продлевает
// членство участника.
type Payment struct {
	ID        int       `json:"id"`
	MemberUID string    `json:"memberId"`
	Amount    int       `json:"amount"`
	Status    string    `json:"status"`
	PlanID    *int      `json:"planId,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// DummyPayment используется для приёма данных платежа из JSON-запроса.
// MemberUID может быть опущен участником — тогда платёж записывается на него
// самого.
type DummyPayment struct {
	MemberUID string `json:"memberId,omitempty" validate:"omitempty,uuid"`
	Amount    int    `json:"amount" validate:"required,gt=0"`
	Status    string `json:"status,omitempty" validate:"omitempty,oneof=completed pending"`
	PlanID    *int   `json:"planId,omitempty" validate:"omitempty,gt=0"`
}
