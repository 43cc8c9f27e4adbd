// Package repository реализует хранилище данных на основе PostgreSQL
// для управления пользователями, тарифными планами, платежами и записями
// посещений фитнес-клуба.
package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	// Регистрация драйвера pgx для использования с database/sql.
	_ "github.com/jackc/pgx/v5/stdlib"
)

// Ошибки уровня хранилища, по которым обработчики выбирают HTTP-статус.
var (
	// ErrNotFound возвращается, когда запрошенная сущность отсутствует.
	ErrNotFound = errors.New("not found")
	// ErrEmailExists возвращается при попытке создать пользователя
	// с уже занятой электронной почтой.
	ErrEmailExists = errors.New("email already exists")
)

const uniqueViolation = "23505"

// Storage инкапсулирует соединение с базой данных PostgreSQL
// и реализует методы работы с сущностями клуба.
type Storage struct {
	DB *sql.DB
}

// New создаёт подключение к PostgreSQL и проверяет его доступность.
func New(storageConnectionString string) (*Storage, error) {
	const op = "storage.New"

	db, err := sql.Open("pgx", storageConnectionString)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	if err = db.PingContext(context.Background()); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{
		DB: db,
	}, nil
}

// convertErr переводит низкоуровневые ошибки драйвера в ошибки хранилища.
func convertErr(err error) error {
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return ErrEmailExists
	}
	return err
}
