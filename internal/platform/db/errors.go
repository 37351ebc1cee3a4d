package db

import (
	"context"
	"errors"
	"fmt"
	"strings"

	mysqldriver "github.com/go-sql-driver/mysql"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"task_backend/internal/shared/apperr"
)

const (
	// pgUniqueViolation は PostgreSQL の一意制約違反コードです。
	pgUniqueViolation = "23505"
	// mysqlDuplicateEntry は MySQL の重複エントリエラー番号です。
	mysqlDuplicateEntry = 1062
)

// IsDuplicateKey は err が一意制約違反を表すかを判定します。
// TranslateError で変換済みのエラーに加え、ドライバー固有のエラーも確認します。
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		return true
	}
	var mysqlErr *mysqldriver.MySQLError
	if errors.As(err, &mysqlErr) && mysqlErr.Number == mysqlDuplicateEntry {
		return true
	}
	// sqlite without error translation
	return strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Unavailable wraps a driver error as apperr.ErrStoreUnavailable, keeping the cause.
func Unavailable(op string, err error) error {
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%s: %w: timed out: %w", op, apperr.ErrStoreUnavailable, err)
	}
	return fmt.Errorf("%s: %w: %w", op, apperr.ErrStoreUnavailable, err)
}
