package querybuilder

import (
	"context"
	"errors"
	"log/slog"

	"github.com/syssam/querybuilder/dialect"
	"github.com/syssam/querybuilder/dialect/sql"
)

// Client creates statements bound to its driver. The statement factories
// (Select, Insert, Update, ...) are those of sql.DriverBuilder.
type Client struct {
	*sql.DriverBuilder
	drv dialect.Driver
}

// NewClient returns a Client executing through drv.
//
//	db, _ := stdsql.Open("mysql", dsn)
//	client := querybuilder.NewClient(sql.OpenDB(dialect.MySQL, db))
func NewClient(drv dialect.Driver) *Client {
	return &Client{DriverBuilder: sql.WithDriver(drv), drv: drv}
}

// Option configures Open.
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used by the debug and slow statement logging.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) {
		o.logger = l
	}
}

// Open validates cfg and opens a MySQL client. Debug wraps the driver with
// statement logging, a positive SlowThreshold with statement statistics.
// The connection is established lazily by database/sql.
func Open(cfg Config, opts ...Option) (*Client, error) {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	dsn, err := cfg.DSN()
	if err != nil {
		return nil, err
	}
	drv, err := sql.Open(dialect.MySQL, dsn)
	if err != nil {
		return nil, err
	}
	switch {
	case cfg.Debug:
		return NewClient(sql.NewDebugDriver(drv, sql.DebugWithLogger(o.logger))), nil
	case cfg.SlowThreshold > 0:
		return NewClient(sql.NewStatsDriver(drv,
			sql.WithSlowThreshold(cfg.SlowThreshold),
			sql.WithSlowQueryLog(o.logger),
		)), nil
	default:
		return NewClient(drv), nil
	}
}

// Dialect returns the dialect name of the driver.
func (c *Client) Dialect() string {
	return c.drv.Dialect()
}

// Stats returns the statement statistics when the client was opened with a
// slow threshold.
func (c *Client) Stats() (sql.StatsSnapshot, bool) {
	s, ok := c.drv.(*sql.StatsDriver)
	if !ok {
		return sql.StatsSnapshot{}, false
	}
	return s.QueryStats().Stats(), true
}

// Do executes "DO expr, ..." and returns the number of affected rows.
//
//	client.Do(ctx, "RELEASE_LOCK('import')")
func (c *Client) Do(ctx context.Context, exprs ...string) (int64, error) {
	return c.DriverBuilder.Do(exprs...).Exec(ctx)
}

// Tx starts a transaction. Statements created by the returned Tx run inside it.
func (c *Client) Tx(ctx context.Context) (*Tx, error) {
	tx, err := c.drv.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &Tx{DriverBuilder: sql.WithDriver(tx), tx: tx}, nil
}

// Close closes the underlying driver.
func (c *Client) Close() error {
	return c.drv.Close()
}

// Tx creates statements bound to a transaction.
type Tx struct {
	*sql.DriverBuilder
	tx dialect.Tx
}

// Tx always fails, transactions do not nest.
func (tx *Tx) Tx(context.Context) (*Tx, error) {
	return nil, ErrTxStarted
}

// Do executes "DO expr, ..." within the transaction.
func (tx *Tx) Do(ctx context.Context, exprs ...string) (int64, error) {
	return tx.DriverBuilder.Do(exprs...).Exec(ctx)
}

// Commit commits the transaction.
func (tx *Tx) Commit() error {
	return tx.tx.Commit()
}

// Rollback rolls back the transaction.
func (tx *Tx) Rollback() error {
	return tx.tx.Rollback()
}

// WithTx runs fn in a transaction. The transaction is committed when fn
// returns nil and rolled back otherwise, including on panic.
//
//	err := querybuilder.WithTx(ctx, client, func(tx *querybuilder.Tx) error {
//	    if _, err := tx.Update("stock").Set("n", sql.Raw("n - 1")).Where("id=1").Exec(ctx); err != nil {
//	        return err
//	    }
//	    _, err := tx.Insert("item_id").Into("orders").Values(1).Exec(ctx)
//	    return err
//	})
func WithTx(ctx context.Context, c *Client, fn func(tx *Tx) error) error {
	tx, err := c.Tx(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if v := recover(); v != nil {
			_ = tx.Rollback()
			panic(v)
		}
	}()
	if err := fn(tx); err != nil {
		if rerr := tx.Rollback(); rerr != nil {
			return errors.Join(err, &RollbackError{Err: rerr})
		}
		return err
	}
	return tx.Commit()
}
