package repository_test

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/JaimeStill/easel/pkg/repository"
)

var (
	errNotFound  = errors.New("not found")
	errDuplicate = errors.New("duplicate")
	errParent    = errors.New("parent missing")
)

var domainErrors = repository.Errors{
	NotFound:   errNotFound,
	Duplicate:  errDuplicate,
	ForeignKey: errParent,
}

func TestErrorsMap(t *testing.T) {
	other := errors.New("some other error")

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"nil", nil, nil},
		{"no rows", sql.ErrNoRows, errNotFound},
		{"unique violation", &pgconn.PgError{Code: "23505"}, errDuplicate},
		{"foreign key violation", &pgconn.PgError{Code: "23503"}, errParent},
		{"passthrough", other, other},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, domainErrors.Map(tt.err))
		})
	}
}

func TestErrorsMapUnsetFieldPassesThrough(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23503"}
	got := repository.Errors{NotFound: errNotFound}.Map(pgErr)
	assert.Same(t, pgErr, got)
}

type item struct {
	ID   int
	Name string
}

func scanItem(s repository.Scanner) (item, error) {
	var i item
	err := s.Scan(&i.ID, &i.Name)
	return i, err
}

func TestQueryMany(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name FROM items").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).
			AddRow(1, "first").
			AddRow(2, "second"))

	items, err := repository.QueryMany(context.Background(), db, "SELECT id, name FROM items", nil, scanItem)
	require.NoError(t, err)
	assert.Equal(t, []item{{1, "first"}, {2, "second"}}, items)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestQueryManyEmpty(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name FROM items").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	items, err := repository.QueryMany(context.Background(), db, "SELECT id, name FROM items", nil, scanItem)
	require.NoError(t, err)
	assert.NotNil(t, items)
	assert.Empty(t, items)
}

func TestQueryOneNoRows(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT id, name FROM items WHERE id").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}))

	_, err = repository.QueryOne(
		context.Background(), db,
		"SELECT id, name FROM items WHERE id = $1", []any{7},
		scanItem,
	)
	assert.ErrorIs(t, err, sql.ErrNoRows)
}

func TestQueryCount(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))

	total, err := repository.QueryCount(context.Background(), db, "SELECT COUNT(*) FROM items", nil)
	require.NoError(t, err)
	assert.Equal(t, 12, total)
}

func TestWithTxCommits(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM items").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	_, err = repository.WithTx(context.Background(), db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(context.Background(), tx, "DELETE FROM items WHERE id = $1", 1)
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTxRollsBackOnError(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectBegin()
	mock.ExpectExec("DELETE FROM items").WithArgs(1).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	_, err = repository.WithTx(context.Background(), db, func(tx *sql.Tx) (struct{}, error) {
		return struct{}{}, repository.ExecExpectOne(context.Background(), tx, "DELETE FROM items WHERE id = $1", 1)
	})
	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.NoError(t, mock.ExpectationsWereMet())
}
