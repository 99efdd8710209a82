package repository

import (
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

const (
	pgForeignKeyCode   = "23503"
	pgDuplicateKeyCode = "23505"
)

// Errors names the domain errors a repository reports for common database failures.
// A nil field leaves the matching database error unchanged.
type Errors struct {
	NotFound   error
	Duplicate  error
	ForeignKey error
}

// Map translates err into a domain error.
// sql.ErrNoRows becomes NotFound, PostgreSQL unique violation (23505) becomes
// Duplicate, and foreign key violation (23503) becomes ForeignKey.
func (e Errors) Map(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) && e.NotFound != nil {
		return e.NotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch {
		case pgErr.Code == pgDuplicateKeyCode && e.Duplicate != nil:
			return e.Duplicate
		case pgErr.Code == pgForeignKeyCode && e.ForeignKey != nil:
			return e.ForeignKey
		}
	}

	return err
}
