// Package services содержит бизнес-логику клуба: регистрацию и авторизацию,
// работу с пользователями, тарифными планами, платежами и посещениями,
// а также ежедневную проверку истёкших членств и отправку уведомлений.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/ketewodros41-star/gym/internal/lib/expiry"
	"github.com/ketewodros41-star/gym/internal/lib/jwt"
	"github.com/ketewodros41-star/gym/internal/lib/password"
	"github.com/ketewodros41-star/gym/internal/models"
)

// ErrInvalidCredentials возвращается при неверной паре email/пароль.
var ErrInvalidCredentials = errors.New("invalid credentials")

// RegisterInput — данные нового пользователя. Поля JoinDate, PlanID и
// TrainerUID учитываются только для роли member.
type RegisterInput struct {
	Name       string
	Email      string
	Password   string
	Role       string
	JoinDate   string // формат 2006-01-02, по умолчанию — сегодня
	PlanID     *int
	TrainerUID *string
}

// AuthService отвечает за регистрацию, авторизацию и валидацию JWT.
type AuthService struct {
	users    UserRepository
	plans    PlanRepository
	jwtMaker jwt.Maker
}

// NewAuthService создает новый экземпляр AuthService.
func NewAuthService(users UserRepository, plans PlanRepository, jwtMaker jwt.Maker) *AuthService {
	return &AuthService{
		users:    users,
		plans:    plans,
		jwtMaker: jwtMaker,
	}
}

// Register создает нового пользователя с хэшированием пароля и дефолтной
// ролью member. Для участника с планом сразу вычисляется дата окончания
// членства; отсутствующий план — ошибка, а не молчаливый пропуск.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (string, *models.User, error) {
	const op = "auth.Register"

	hashed, err := password.GetHash(in.Password)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}

	role := in.Role
	if role == "" {
		role = models.RoleMember
	}

	user := models.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: hashed,
		Role:         role,
	}

	if role == models.RoleMember {
		joinDate := time.Now().UTC()
		if in.JoinDate != "" {
			joinDate, err = time.Parse("2006-01-02", in.JoinDate)
			if err != nil {
				return "", nil, fmt.Errorf("%s: invalid join date: %w", op, err)
			}
		}
		user.JoinDate = &joinDate
		user.TrainerUID = in.TrainerUID

		if in.PlanID != nil {
			plan, err := s.plans.GetPlan(ctx, *in.PlanID)
			if err != nil {
				return "", nil, fmt.Errorf("%s: %w", op, err)
			}
			user.PlanID = &plan.ID
			newExpiry := expiry.Next(nil, joinDate, plan.DurationDays)
			user.MembershipExpiry = &newExpiry
		}
	}

	uid, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	user.UID = uid

	token, err := s.jwtMaker.GenerateToken(uid, role)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, &user, nil
}

// Login проверяет пароль пользователя и генерирует JWT.
func (s *AuthService) Login(ctx context.Context, email, rawPassword string) (string, *models.User, error) {
	const op = "auth.Login"

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		return "", nil, ErrInvalidCredentials
	}
	if err := password.CompareHash(user.PasswordHash, rawPassword); err != nil {
		return "", nil, ErrInvalidCredentials
	}
	token, err := s.jwtMaker.GenerateToken(user.UID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("%s: %w", op, err)
	}
	return token, user, nil
}

// ValidateToken проверяет JWT и возвращает актуальную запись пользователя
// из хранилища; токен удалённого пользователя недействителен.
func (s *AuthService) ValidateToken(ctx context.Context, token string) (*models.User, error) {
	const op = "auth.ValidateToken"

	claims, err := s.jwtMaker.ParseToken(token)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	user, err := s.users.GetUser(ctx, claims.UID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return user, nil
}
