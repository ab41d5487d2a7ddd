package database

import (
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

// Sentinel errors returned by Store. Callers match them with errors.Is.
var (
	ErrNotFound            = errors.New("cafe not found")
	ErrEmptyTable          = errors.New("no cafes in the database")
	ErrConstraintViolation = errors.New("constraint violation")
	ErrDuplicateName       = fmt.Errorf("%w: a cafe with that name already exists", ErrConstraintViolation)
)

// Postgres SQLSTATE codes for integrity failures.
const (
	pgNotNullViolation = "23502"
	pgUniqueViolation  = "23505"
	pgCheckViolation   = "23514"
)

// classify maps engine errors onto the sentinels above. Errors it does not
// recognise are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", ErrDuplicateName, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation:
			return fmt.Errorf("%w: %s", ErrDuplicateName, pgErr.Message)
		case pgNotNullViolation, pgCheckViolation:
			return fmt.Errorf("%w: %s", ErrConstraintViolation, pgErr.Message)
		}
		return err
	}

	var liteErr *sqlite.Error
	if errors.As(err, &liteErr) {
		code := liteErr.Code()
		switch {
		case code == sqlite3.SQLITE_CONSTRAINT_UNIQUE,
			code == sqlite3.SQLITE_CONSTRAINT_PRIMARYKEY,
			code&0xff == sqlite3.SQLITE_CONSTRAINT && strings.Contains(liteErr.Error(), "UNIQUE constraint failed"):
			return fmt.Errorf("%w: %v", ErrDuplicateName, liteErr)
		case code&0xff == sqlite3.SQLITE_CONSTRAINT:
			return fmt.Errorf("%w: %v", ErrConstraintViolation, liteErr)
		}
	}
	return err
}
