package sql

import (
	"context"
	"database/sql"
	"database/sql/driver"
	"fmt"
	"strings"

	"github.com/syssam/querybuilder/dialect"
)

// Driver runs rendered statements on a database/sql connection pool.
type Driver struct {
	Conn
	dialect string
}

// NewDriver returns a Driver for the named dialect over c.
func NewDriver(dialect string, c Conn) *Driver {
	return &Driver{dialect: dialect, Conn: c}
}

// Open opens a connection pool for the registered database/sql driver name
// and the data source name.
//
//	drv, err := sql.Open(dialect.MySQL, "root:pass@tcp(localhost:3306)/app")
func Open(dialect, source string) (*Driver, error) {
	db, err := sql.Open(dialect, source)
	if err != nil {
		return nil, err
	}
	return NewDriver(dialect, Conn{db}), nil
}

// OpenDB returns a Driver over an already opened pool.
func OpenDB(dialect string, db *sql.DB) *Driver {
	return NewDriver(dialect, Conn{db})
}

// DB returns the connection pool.
func (d Driver) DB() *sql.DB {
	return d.ExecQuerier.(*sql.DB)
}

// Dialect returns the dialect name. Registered driver names that extend a
// known name, such as "mysql-replica", report the known name.
func (d Driver) Dialect() string {
	for _, name := range []string{dialect.MySQL, dialect.SQLite, dialect.Postgres} {
		if strings.HasPrefix(d.dialect, name) {
			return name
		}
	}
	return d.dialect
}

// Tx begins a transaction with the default options.
func (d *Driver) Tx(ctx context.Context) (dialect.Tx, error) {
	return d.BeginTx(ctx, nil)
}

// BeginTx begins a transaction, for example at a given isolation level.
func (d *Driver) BeginTx(ctx context.Context, opts *TxOptions) (dialect.Tx, error) {
	tx, err := d.DB().BeginTx(ctx, opts)
	if err != nil {
		return nil, err
	}
	return &Tx{
		Conn: Conn{tx},
		Tx:   tx,
	}, nil
}

// Close closes the connection pool.
func (d *Driver) Close() error { return d.DB().Close() }

// Tx is a transaction opened by Driver. Statements bound to it run on the
// transaction connection.
type Tx struct {
	Conn
	driver.Tx
}

// ExecQuerier is the part of *sql.DB, *sql.Tx and *sql.Conn that Conn
// runs statements through.
type ExecQuerier interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	PrepareContext(ctx context.Context, query string) (*sql.Stmt, error)
}

// Preparer is implemented by drivers able to create prepared statements.
type Preparer interface {
	Prepare(ctx context.Context, query string) (*Stmt, error)
}

// Conn adapts an ExecQuerier to dialect.ExecQuerier.
type Conn struct {
	ExecQuerier
}

// Exec runs query. args must be []any and v is nil or a *Result to fill.
func (c Conn) Exec(ctx context.Context, query string, args, v any) error {
	argv, ok := args.([]any)
	if !ok {
		return fmt.Errorf("dialect/sql: args must be []any, got %T", args)
	}
	switch v := v.(type) {
	case nil:
		if _, err := c.ExecContext(ctx, query, argv...); err != nil {
			return err
		}
	case *sql.Result:
		res, err := c.ExecContext(ctx, query, argv...)
		if err != nil {
			return err
		}
		*v = res
	default:
		return fmt.Errorf("dialect/sql: exec destination must be *Result, got %T", v)
	}
	return nil
}

// Query runs query and stores the cursor in v, which must be a *Rows.
func (c Conn) Query(ctx context.Context, query string, args, v any) error {
	vr, ok := v.(*Rows)
	if !ok {
		return fmt.Errorf("dialect/sql: query destination must be *Rows, got %T", v)
	}
	argv, ok := args.([]any)
	if !ok {
		return fmt.Errorf("dialect/sql: args must be []any, got %T", args)
	}
	rows, err := c.QueryContext(ctx, query, argv...)
	if err != nil {
		return err
	}
	*vr = Rows{rows}
	return nil
}

// Prepare prepares query on the connection.
func (c Conn) Prepare(ctx context.Context, query string) (*Stmt, error) {
	return c.PrepareContext(ctx, query)
}

var (
	_ dialect.Driver = (*Driver)(nil)
	_ dialect.Tx     = (*Tx)(nil)
	_ Preparer       = (*Driver)(nil)
	_ Preparer       = (*Tx)(nil)
)

type (
	// Rows is the cursor returned by Query. It holds the *sql.Rows behind an
	// interface so it can be passed by value.
	Rows struct{ ColumnScanner }
	// Result is the outcome of Exec.
	Result = sql.Result
	// Stmt is a prepared statement.
	Stmt = sql.Stmt
	// TxOptions are the options of BeginTx.
	TxOptions = sql.TxOptions
)

// ColumnScanner is the set of *sql.Rows methods used to read a result.
type ColumnScanner interface {
	Close() error
	ColumnTypes() ([]*sql.ColumnType, error)
	Columns() ([]string, error)
	Err() error
	Next() bool
	NextResultSet() bool
	Scan(dest ...any) error
}
