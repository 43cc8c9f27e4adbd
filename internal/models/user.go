// Package models содержит доменные структуры фитнес-клуба: пользователей,
// тарифные планы, платежи и записи посещений, а также вспомогательные типы
// для приёма данных из JSON-запросов.
package models

import "time"

// Роли пользователей системы. Роль взаимоисключающая и после назначения
// на практике не меняется.
const (
	RoleAdmin   = "admin"
	RoleTrainer = "trainer"
	RoleMember  = "member"
)

// User представляет зарегистрированного пользователя системы.
// Поля JoinDate, PlanID, TrainerUID и MembershipExpiry имеют смысл только
// для роли member; MembershipExpiry равен nil, пока участнику ни разу
// не назначался план.
type User struct {
	UID              string     `json:"id"`                          // Уникальный идентификатор пользователя
	Name             string     `json:"name"`                        // Имя пользователя
	Email            string     `json:"email"`                       // Электронная почта (уникальная)
	PasswordHash     string     `json:"-"`                           // Хэш пароля пользователя
	Role             string     `json:"role"`                        // Роль: admin, trainer или member
	JoinDate         *time.Time `json:"joinDate,omitempty"`         // Дата вступления в клуб
	PlanID           *int       `json:"planId,omitempty"`           // Назначенный тарифный план
	TrainerUID       *string    `json:"trainerId,omitempty"`        // Закреплённый тренер
	MembershipExpiry *time.Time `json:"membershipExpiry,omitempty"` // Дата окончания членства
}

// PublicUser — представление пользователя для ответов авторизации.
type PublicUser struct {
	UID   string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

// Public возвращает представление пользователя без служебных полей.
func (u *User) Public() PublicUser {
	return PublicUser{
		UID:   u.UID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
	}
}

// DummyUserUpdate используется для приёма данных из JSON-запроса
// на обновление пользователя. Все поля опциональны, даты приходят строками
// в формате 2006-01-02.
type DummyUserUpdate struct {
	Name       string  `json:"name,omitempty" validate:"omitempty,min=1"`
	TrainerUID *string `json:"trainer,omitempty" validate:"omitempty,uuid"`
	PlanID     *int    `json:"planId,omitempty" validate:"omitempty,gt=0"`
	JoinDate   string  `json:"joinDate,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

// ExpiredMemberInfo — данные участника с истёкшим членством,
// передаются из планировщика в отправитель уведомлений.
type ExpiredMemberInfo struct {
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	MembershipExpiry time.Time `json:"membershipExpiry"`
}

// ExpiredSummary — сводка по истёкшим членствам для администраторов.
type ExpiredSummary struct {
	AdminEmails []string            `json:"admin_emails"`
	Members     []ExpiredMemberInfo `json:"members"`
}
