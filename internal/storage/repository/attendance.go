package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/ketewodros41-star/gym/internal/models"
)

// CreateAttendance вставляет новую запись посещения и возвращает её с
// присвоенным ID и датой.
func (s *Storage) CreateAttendance(ctx context.Context, record models.Attendance) (*models.Attendance, error) {
	const op = "storage.CreateAttendance"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO attendance (member_uid, check_in, trainer_uid)
			  VALUES ($1, $2, $3)
			  RETURNING id, date`
	if err := s.DB.QueryRowContext(ctx, query,
		record.MemberUID, record.CheckIn, record.TrainerUID).
		Scan(&record.ID, &record.Date); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &record, nil
}

// FindOpenSession возвращает самую свежую открытую запись участника,
// созданную не раньше dayStart. Если такой записи нет — ErrNotFound.
func (s *Storage) FindOpenSession(ctx context.Context, memberUID string, dayStart time.Time) (*models.Attendance, error) {
	const op = "storage.FindOpenSession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, member_uid, date, check_in, check_out, trainer_uid
			  FROM attendance
			  WHERE member_uid = $1 AND date >= $2 AND check_out IS NULL
			  ORDER BY id DESC
			  LIMIT 1`
	record, err := scanAttendance(s.DB.QueryRowContext(ctx, query, memberUID, dayStart))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, convertErr(err))
	}
	return record, nil
}

// CloseSession проставляет время check-out у записи и возвращает её.
func (s *Storage) CloseSession(ctx context.Context, id int, checkOut time.Time) (*models.Attendance, error) {
	const op = "storage.CloseSession"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE attendance SET check_out = $1
			  WHERE id = $2 AND check_out IS NULL
			  RETURNING id, member_uid, date, check_in, check_out, trainer_uid`
	record, err := scanAttendance(s.DB.QueryRowContext(ctx, query, checkOut, id))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, convertErr(err))
	}
	return record, nil
}

// ListAttendanceByMember возвращает историю посещений участника,
// отсортированную от новых к старым.
func (s *Storage) ListAttendanceByMember(ctx context.Context, memberUID string) ([]*models.Attendance, error) {
	const op = "storage.ListAttendanceByMember"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, member_uid, date, check_in, check_out, trainer_uid
			  FROM attendance
			  WHERE member_uid = $1
			  ORDER BY date DESC`
	rows, err := s.DB.QueryContext(ctx, query, memberUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Attendance
	for rows.Next() {
		record, err := scanAttendance(rows)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, record)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

func scanAttendance(row rowScanner) (*models.Attendance, error) {
	var record models.Attendance
	var checkOut sql.NullTime
	var trainerUID sql.NullString

	if err := row.Scan(&record.ID, &record.MemberUID, &record.Date,
		&record.CheckIn, &checkOut, &trainerUID); err != nil {
		return nil, err
	}
	if checkOut.Valid {
		record.CheckOut = &checkOut.Time
	}
	if trainerUID.Valid {
		record.TrainerUID = &trainerUID.String
	}
	return &record, nil
}
