package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ketewodros41-star/gym/internal/models"
)

// CreatePayment вставляет новый платёж и возвращает его ID.
func (s *Storage) CreatePayment(ctx context.Context, payment models.Payment) (int, error) {
	const op = "storage.CreatePayment"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO payments (member_uid, amount, status, plan_id)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id, created_at`
	var newID int
	var createdAt time.Time
	err := s.DB.QueryRowContext(ctx, query,
		payment.MemberUID, payment.Amount, payment.Status, payment.PlanID).
		Scan(&newID, &createdAt)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// CreatePaymentExtendingMembership записывает платёж и продлевает членство
// участника в одной транзакции: при сбое между шагами ни платёж, ни новая
// дата окончания не сохраняются.
func (s *Storage) CreatePaymentExtendingMembership(ctx context.Context, payment models.Payment,
	planID int, newExpiry time.Time) (int, error) {
	const op = "storage.CreatePaymentExtendingMembership"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	var newID int
	query := `INSERT INTO payments (member_uid, amount, status, plan_id)
			  VALUES ($1, $2, $3, $4)
			  RETURNING id`
	if err := tx.QueryRowContext(ctx, query,
		payment.MemberUID, payment.Amount, payment.Status, payment.PlanID).Scan(&newID); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE users SET membership_expiry = $1, plan_id = $2 WHERE uid = $3`,
		newExpiry, planID, payment.MemberUID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	if rowsAffected == 0 {
		return 0, fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListPayments возвращает все платежи.
func (s *Storage) ListPayments(ctx context.Context) ([]*models.Payment, error) {
	const op = "storage.ListPayments"
	return s.listPayments(ctx, op,
		`SELECT id, member_uid, amount, status, plan_id, created_at
		 FROM payments ORDER BY created_at DESC`)
}

// ListPaymentsByMember возвращает платежи одного участника.
func (s *Storage) ListPaymentsByMember(ctx context.Context, memberUID string) ([]*models.Payment, error) {
	const op = "storage.ListPaymentsByMember"
	return s.listPayments(ctx, op,
		`SELECT id, member_uid, amount, status, plan_id, created_at
		 FROM payments WHERE member_uid = $1 ORDER BY created_at DESC`, memberUID)
}

func (s *Storage) listPayments(ctx context.Context, op, query string, args ...any) ([]*models.Payment, error) {
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

	var result []*models.Payment
	for rows.Next() {
		var item models.Payment
		var planID sql.NullInt64
		if err := rows.Scan(&item.ID, &item.MemberUID, &item.Amount,
			&item.Status, &planID, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		if planID.Valid {
			id := int(planID.Int64)
			item.PlanID = &id
		}
		result = append(result, &item)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}
