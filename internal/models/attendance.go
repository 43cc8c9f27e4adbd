package models

import "time"

// Attendance представляет запись посещения зала. Запись создаётся при
// check-in и изменяется ровно один раз при check-out. Открытая сессия —
// запись с CheckIn и без CheckOut; для участника в один календарный день
// открыта не более одной сессии.
type Attendance struct {
	ID         int        `json:"id"`
	MemberUID  string     `json:"memberId"`
	Date       time.Time  `json:"date"`
	CheckIn    time.Time  `json:"checkIn"`
	CheckOut   *time.Time `json:"checkOut,omitempty"`
	TrainerUID *string    `json:"trainerId,omitempty"` // Тренер, инициировавший check-in
}

// DummyAttendance используется для приёма тела запросов check-in и check-out.
// MemberUID опционален: участник отмечает сам себя.
type DummyAttendance struct {
	MemberUID string `json:"memberId,omitempty" validate:"omitempty,uuid"`
}
