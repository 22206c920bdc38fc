package querybuilder_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/querybuilder"
	"github.com/syssam/querybuilder/dialect"
	"github.com/syssam/querybuilder/dialect/sql"
)

func newMockClient(t *testing.T) (*querybuilder.Client, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return querybuilder.NewClient(sql.OpenDB(dialect.MySQL, db)), mock
}

func TestClientStatements(t *testing.T) {
	ctx := context.Background()
	client, mock := newMockClient(t)
	assert.Equal(t, dialect.MySQL, client.Dialect())

	mock.ExpectExec("INSERT INTO users (name, age) VALUES ('a8m', 30)").
		WillReturnResult(sqlmock.NewResult(1, 1))
	n, err := client.Insert("name", "age").Into("users").Values("a8m", 30).Exec(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	mock.ExpectQuery("SELECT name FROM users WHERE age > 18").
		WillReturnRows(sqlmock.NewRows([]string{"name"}).AddRow("a8m"))
	rows, err := client.Select("name").From("users").Where(sql.GT("age", 18)).Query(ctx)
	require.NoError(t, err)
	require.NoError(t, rows.Close())

	mock.ExpectExec("DO RELEASE_LOCK('import')").WillReturnResult(sqlmock.NewResult(0, 0))
	_, err = client.Do(ctx, "RELEASE_LOCK('import')")
	require.NoError(t, err)

	_, ok := client.Stats()
	assert.False(t, ok)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestClientTx(t *testing.T) {
	ctx := context.Background()
	client, mock := newMockClient(t)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE stock SET n = n - 1 WHERE id=1").WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec("DO 1").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	tx, err := client.Tx(ctx)
	require.NoError(t, err)
	_, err = tx.Update("stock").Set("n", sql.Raw("n - 1")).Where("id=1").Exec(ctx)
	require.NoError(t, err)
	_, err = tx.Do(ctx, "1")
	require.NoError(t, err)

	_, err = tx.Tx(ctx)
	assert.ErrorIs(t, err, querybuilder.ErrTxStarted)

	require.NoError(t, tx.Commit())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commit", func(t *testing.T) {
		client, mock := newMockClient(t)
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM sessions").WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectCommit()

		err := querybuilder.WithTx(ctx, client, func(tx *querybuilder.Tx) error {
			_, err := tx.Delete("sessions").Exec(ctx)
			return err
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback", func(t *testing.T) {
		client, mock := newMockClient(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		fnErr := errors.New("out of stock")
		err := querybuilder.WithTx(ctx, client, func(*querybuilder.Tx) error {
			return fnErr
		})
		assert.Equal(t, fnErr, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback failure", func(t *testing.T) {
		client, mock := newMockClient(t)
		mock.ExpectBegin()
		mock.ExpectRollback().WillReturnError(errors.New("connection lost"))

		fnErr := errors.New("out of stock")
		err := querybuilder.WithTx(ctx, client, func(*querybuilder.Tx) error {
			return fnErr
		})
		assert.ErrorIs(t, err, fnErr)
		assert.True(t, querybuilder.IsRollbackError(err))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("panic", func(t *testing.T) {
		client, mock := newMockClient(t)
		mock.ExpectBegin()
		mock.ExpectRollback()

		assert.PanicsWithValue(t, "boom", func() {
			_ = querybuilder.WithTx(ctx, client, func(*querybuilder.Tx) error {
				panic("boom")
			})
		})
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("begin failure", func(t *testing.T) {
		client, mock := newMockClient(t)
		mock.ExpectBegin().WillReturnError(errors.New("too many connections"))

		called := false
		err := querybuilder.WithTx(ctx, client, func(*querybuilder.Tx) error {
			called = true
			return nil
		})
		require.Error(t, err)
		assert.False(t, called)
	})
}

func TestOpen(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	t.Run("plain", func(t *testing.T) {
		client, err := querybuilder.Open(querybuilder.Config{User: "root", Database: "app"})
		require.NoError(t, err)
		assert.Equal(t, dialect.MySQL, client.Dialect())
		_, ok := client.Stats()
		assert.False(t, ok)
		require.NoError(t, client.Close())
	})

	t.Run("stats", func(t *testing.T) {
		client, err := querybuilder.Open(
			querybuilder.Config{User: "root", SlowThreshold: time.Second},
			querybuilder.WithLogger(logger),
		)
		require.NoError(t, err)
		snap, ok := client.Stats()
		assert.True(t, ok)
		assert.Zero(t, snap.TotalQueries)
		require.NoError(t, client.Close())
	})

	t.Run("invalid", func(t *testing.T) {
		_, err := querybuilder.Open(querybuilder.Config{})
		require.Error(t, err)
		assert.ErrorIs(t, err, querybuilder.ErrMissingField)
	})
}
