package sql

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/syssam/querybuilder/dialect"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// execOnly implements dialect.ExecQuerier without Prepare.
type execOnly struct{ dialect.ExecQuerier }

func mockDriver(t *testing.T, opts ...sqlmock.QueryMatcher) (*Driver, sqlmock.Sqlmock) {
	t.Helper()
	matcher := sqlmock.QueryMatcherEqual
	if len(opts) > 0 {
		matcher = opts[0]
	}
	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(matcher))
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return OpenDB(dialect.MySQL, db), mock
}

func TestStatementExec(t *testing.T) {
	ctx := context.Background()
	drv, mock := mockDriver(t)
	b := WithDriver(drv)
	assert.Same(t, drv, b.Driver())

	tests := []struct {
		name string
		stmt interface {
			Statement
			Exec(context.Context) (int64, error)
		}
		affected int64
	}{
		{"insert", b.Insert("a").Into("t").Values(1), 1},
		{"replace", b.Replace("a").Into("t").Values(1), 2},
		{"update", b.Update("t").Set("a", 1), 5},
		{"delete", b.Delete("t").Where("a=1"), 3},
		{"call", b.Call("p").Params(1), 0},
		{"do", b.Do("SLEEP(0)"), 0},
		{"batch", b.Batch(Do("1"), Do("2")), 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock.ExpectExec(tt.stmt.String()).WillReturnResult(sqlmock.NewResult(0, tt.affected))
			n, err := tt.stmt.Exec(ctx)
			require.NoError(t, err)
			assert.Equal(t, tt.affected, n)
			require.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestStatementQuery(t *testing.T) {
	ctx := context.Background()
	drv, mock := mockDriver(t)
	b := WithDriver(drv)

	mock.ExpectQuery("SELECT id, name FROM users WHERE id = 1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name"}).AddRow(1, "a8m"))

	rows, err := b.Select("id", "name").From("users").Where(EQ("id", 1)).Query(ctx)
	require.NoError(t, err)
	defer rows.Close()

	require.True(t, rows.Next())
	var (
		id   int
		name string
	)
	require.NoError(t, rows.Scan(&id, &name))
	assert.Equal(t, 1, id)
	assert.Equal(t, "a8m", name)
	assert.False(t, rows.Next())
	require.NoError(t, mock.ExpectationsWereMet())

	mock.ExpectQuery("SELECT a FROM t1 UNION ALL SELECT a FROM t2").
		WillReturnRows(sqlmock.NewRows([]string{"a"}))
	urows, err := b.Union(Select("a").From("t1"), Select("a").From("t2")).All().Query(ctx)
	require.NoError(t, err)
	require.NoError(t, urows.Close())
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatementPrepare(t *testing.T) {
	ctx := context.Background()
	drv, mock := mockDriver(t)

	mock.ExpectPrepare("DELETE FROM sessions WHERE expired=1").
		ExpectExec().
		WillReturnResult(sqlmock.NewResult(0, 4))

	stmt, err := WithDriver(drv).Delete("sessions").Where("expired=1").Prepare(ctx)
	require.NoError(t, err)
	res, err := stmt.ExecContext(ctx)
	require.NoError(t, err)
	n, err := res.RowsAffected()
	require.NoError(t, err)
	assert.Equal(t, int64(4), n)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestStatementErrors(t *testing.T) {
	ctx := context.Background()

	t.Run("no driver", func(t *testing.T) {
		_, err := Delete("t").Exec(ctx)
		assert.ErrorIs(t, err, ErrNoDriver)
		_, err = Select("1").Query(ctx)
		assert.ErrorIs(t, err, ErrNoDriver)
		_, err = Update("t").Prepare(ctx)
		assert.ErrorIs(t, err, ErrNoDriver)
		_, err = Batch(Do("1")).PrepareAll(ctx)
		assert.ErrorIs(t, err, ErrNoDriver)
	})

	t.Run("prepare unsupported", func(t *testing.T) {
		drv, _ := mockDriver(t)
		b := WithDriver(execOnly{drv})
		_, err := b.Select("1").Prepare(ctx)
		assert.ErrorIs(t, err, ErrPrepareUnsupported)
		_, err = b.Batch(Do("1")).PrepareAll(ctx)
		assert.ErrorIs(t, err, ErrPrepareUnsupported)
	})

	t.Run("driver error", func(t *testing.T) {
		drv, mock := mockDriver(t)
		dup := &mysql.MySQLError{Number: 1062, Message: "Duplicate entry '1' for key 'PRIMARY'"}
		mock.ExpectExec("INSERT INTO t (id) VALUES (1)").WillReturnError(dup)

		_, err := WithDriver(drv).Insert("id").Into("t").Values(1).Exec(ctx)
		require.Error(t, err)
		assert.True(t, IsQueryError(err))
		assert.True(t, IsUniqueConstraintError(err))
		assert.ErrorIs(t, err, dup)

		var qerr *QueryError
		require.ErrorAs(t, err, &qerr)
		assert.Equal(t, "exec", qerr.Op)
		assert.Equal(t, "INSERT INTO t (id) VALUES (1)", qerr.Query)
	})

	t.Run("query error", func(t *testing.T) {
		drv, mock := mockDriver(t)
		mock.ExpectQuery("SELECT x FROM t").WillReturnError(errors.New("unknown column"))

		_, err := WithDriver(drv).Select("x").From("t").Query(ctx)
		var qerr *QueryError
		require.ErrorAs(t, err, &qerr)
		assert.Equal(t, "query", qerr.Op)
		assert.EqualError(t, err, "dialect/sql: query: unknown column")
	})
}

func TestBatchPrepareAll(t *testing.T) {
	ctx := context.Background()

	t.Run("ordered", func(t *testing.T) {
		drv, mock := mockDriver(t)
		mock.MatchExpectationsInOrder(false)
		b := WithDriver(drv).Batch(
			Select("1"),
			Update("t").Set("a", 1),
			Delete("t"),
		)
		for _, q := range []string{"SELECT 1", "UPDATE t SET a = 1", "DELETE FROM t"} {
			mock.ExpectPrepare(q)
		}

		stmts, err := b.PrepareAll(ctx)
		require.NoError(t, err)
		require.Len(t, stmts, 3)
		for _, s := range stmts {
			assert.NotNil(t, s)
		}
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("failure", func(t *testing.T) {
		drv, mock := mockDriver(t, sqlmock.QueryMatcherRegexp)
		mock.MatchExpectationsInOrder(false)
		b := WithDriver(drv).Batch(Select("1"), Select("bad"))
		mock.ExpectPrepare(regexp.QuoteMeta("SELECT 1")).WillBeClosed()
		mock.ExpectPrepare(regexp.QuoteMeta("SELECT bad")).WillReturnError(errors.New("syntax"))

		stmts, err := b.PrepareAll(ctx)
		require.Error(t, err)
		assert.Nil(t, stmts)
		var qerr *QueryError
		require.ErrorAs(t, err, &qerr)
		assert.Equal(t, "SELECT bad", qerr.Query)
	})

	t.Run("empty", func(t *testing.T) {
		drv, _ := mockDriver(t)
		stmts, err := WithDriver(drv).Batch().PrepareAll(ctx)
		require.NoError(t, err)
		assert.Empty(t, stmts)
	})
}
