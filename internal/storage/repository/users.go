package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ketewodros41-star/gym/internal/models"
)

const userColumns = `uid, name, email, password_hash, role, join_date, plan_id, trainer_uid, membership_expiry`

// CreateUser сохраняет нового пользователя и возвращает его UID.
func (s *Storage) CreateUser(ctx context.Context, user models.User) (string, error) {
	const op = "storage.CreateUser"
	select {
	case <-ctx.Done():
		return "", fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	var newUID string
	query := `INSERT INTO users (name, email, password_hash, role, join_date, plan_id,
			      trainer_uid, membership_expiry)
			  VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			  RETURNING uid;`
	if err := s.DB.QueryRowContext(ctx, query,
		user.Name, user.Email, user.PasswordHash, user.Role, user.JoinDate,
		user.PlanID, user.TrainerUID, user.MembershipExpiry).Scan(&newUID); err != nil {
		return "", fmt.Errorf("%s: %w", op, convertErr(err))
	}
	return newUID, nil
}

// GetUser возвращает пользователя по его UID.
func (s *Storage) GetUser(ctx context.Context, uid string) (*models.User, error) {
	const op = "storage.GetUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE uid = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, uid))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, convertErr(err))
	}
	return u, nil
}

// GetUserByEmail возвращает пользователя по его электронной почте.
func (s *Storage) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	const op = "storage.GetUserByEmail"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	u, err := scanUser(s.DB.QueryRowContext(ctx, query, email))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, convertErr(err))
	}
	return u, nil
}

// ListUsers возвращает всех пользователей.
func (s *Storage) ListUsers(ctx context.Context) ([]*models.User, error) {
	const op = "storage.ListUsers"
	return s.listUsers(ctx, op, `SELECT `+userColumns+` FROM users ORDER BY name`)
}

// ListUsersByTrainer возвращает участников, закреплённых за тренером.
func (s *Storage) ListUsersByTrainer(ctx context.Context, trainerUID string) ([]*models.User, error) {
	const op = "storage.ListUsersByTrainer"
	return s.listUsers(ctx, op,
		`SELECT `+userColumns+` FROM users WHERE trainer_uid = $1 ORDER BY name`, trainerUID)
}

// UpdateUser обновляет изменяемые поля пользователя по его UID
// и возвращает количество изменённых строк.
func (s *Storage) UpdateUser(ctx context.Context, user *models.User) (int, error) {
	const op = "storage.UpdateUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE users
			  SET name = $1, join_date = $2, plan_id = $3, trainer_uid = $4,
			      membership_expiry = $5
			  WHERE uid = $6`
	result, err := s.DB.ExecContext(ctx, query,
		user.Name, user.JoinDate, user.PlanID, user.TrainerUID,
		user.MembershipExpiry, user.UID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, convertErr(err))
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// DeleteUser удаляет пользователя по UID и возвращает количество удалённых строк.
func (s *Storage) DeleteUser(ctx context.Context, uid string) (int, error) {
	const op = "storage.DeleteUser"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	result, err := s.DB.ExecContext(ctx, `DELETE FROM users WHERE uid = $1`, uid)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// FindExpiredMembers находит участников, чьё членство истекло к моменту now.
func (s *Storage) FindExpiredMembers(ctx context.Context, now time.Time) ([]*models.ExpiredMemberInfo, error) {
	const op = "storage.FindExpiredMembers"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT email, name, membership_expiry
			  FROM users
			  WHERE role = 'member' AND membership_expiry IS NOT NULL
			    AND membership_expiry <= $1
			  ORDER BY membership_expiry`
	rows, err := s.DB.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.ExpiredMemberInfo
	for rows.Next() {
		var info models.ExpiredMemberInfo
		if err := rows.Scan(&info.Email, &info.Name, &info.MembershipExpiry); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &info)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAdminEmails возвращает адреса всех администраторов.
func (s *Storage) ListAdminEmails(ctx context.Context) ([]string, error) {
	const op = "storage.ListAdminEmails"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, `SELECT email FROM users WHERE role = 'admin'`)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []string
	for rows.Next() {
		var email string
		if err := rows.Scan(&email); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, email)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func (s *Storage) listUsers(ctx context.Context, op, query string, args ...any) ([]*models.User, error) {
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	rows, err := s.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.User, error) {
	u := &models.User{}
	var joinDate, membershipExpiry sql.NullTime
	var planID sql.NullInt64
	var trainerUID sql.NullString

	if err := row.Scan(&u.UID, &u.Name, &u.Email, &u.PasswordHash, &u.Role,
		&joinDate, &planID, &trainerUID, &membershipExpiry); err != nil {
		return nil, err
	}

	if joinDate.Valid {
		u.JoinDate = &joinDate.Time
	}
	if membershipExpiry.Valid {
		u.MembershipExpiry = &membershipExpiry.Time
	}
	if planID.Valid {
		id := int(planID.Int64)
		u.PlanID = &id
	}
	if trainerUID.Valid {
		u.TrainerUID = &trainerUID.String
	}
	return u, nil
}
