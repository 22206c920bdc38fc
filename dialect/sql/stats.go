package sql

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/syssam/querybuilder/dialect"
)

// QueryStats counts the statements run through a StatsDriver and its
// transactions. The counters are safe for concurrent use.
type QueryStats struct {
	TotalQueries  atomic.Int64 // Query calls, SELECT and UNION
	TotalExecs    atomic.Int64 // Exec calls, INSERT REPLACE UPDATE DELETE DO
	TotalPrepares atomic.Int64 // Prepare calls, including each PrepareAll statement
	TotalDuration atomic.Int64 // nanoseconds across all calls
	SlowQueries   atomic.Int64 // calls slower than the threshold
	Errors        atomic.Int64 // calls the driver failed
}

// Stats returns the current counter values.
func (s *QueryStats) Stats() StatsSnapshot {
	return StatsSnapshot{
		TotalQueries:  s.TotalQueries.Load(),
		TotalExecs:    s.TotalExecs.Load(),
		TotalPrepares: s.TotalPrepares.Load(),
		TotalDuration: time.Duration(s.TotalDuration.Load()),
		SlowQueries:   s.SlowQueries.Load(),
		Errors:        s.Errors.Load(),
	}
}

// Reset zeroes every counter.
func (s *QueryStats) Reset() {
	s.TotalQueries.Store(0)
	s.TotalExecs.Store(0)
	s.TotalPrepares.Store(0)
	s.TotalDuration.Store(0)
	s.SlowQueries.Store(0)
	s.Errors.Store(0)
}

// StatsSnapshot is a copy of the QueryStats counters.
type StatsSnapshot struct {
	TotalQueries  int64
	TotalExecs    int64
	TotalPrepares int64
	TotalDuration time.Duration
	SlowQueries   int64
	Errors        int64
}

// AvgQueryDuration returns TotalDuration divided by the number of calls.
func (s StatsSnapshot) AvgQueryDuration() time.Duration {
	total := s.TotalQueries + s.TotalExecs + s.TotalPrepares
	if total == 0 {
		return 0
	}
	return s.TotalDuration / time.Duration(total)
}

// String formats the snapshot as space separated key=value pairs.
func (s StatsSnapshot) String() string {
	return fmt.Sprintf(
		"queries=%d execs=%d prepares=%d duration=%s avg=%s slow=%d errors=%d",
		s.TotalQueries, s.TotalExecs, s.TotalPrepares, s.TotalDuration, s.AvgQueryDuration(),
		s.SlowQueries, s.Errors,
	)
}

// SlowQueryHook is called after a statement ran longer than the slow threshold.
type SlowQueryHook func(ctx context.Context, query string, duration time.Duration)

// StatsDriver is a Driver that counts and times every statement it runs.
type StatsDriver struct {
	*Driver
	stats         *QueryStats
	slowThreshold time.Duration
	slowHook      SlowQueryHook
	mu            sync.RWMutex
}

// StatsOption configures a StatsDriver.
type StatsOption func(*StatsDriver)

// WithSlowThreshold sets the duration above which a statement counts as
// slow. The default is 100ms.
func WithSlowThreshold(d time.Duration) StatsOption {
	return func(s *StatsDriver) {
		s.slowThreshold = d
	}
}

// WithSlowQueryHook sets the function called for each slow statement.
func WithSlowQueryHook(hook SlowQueryHook) StatsOption {
	return func(s *StatsDriver) {
		s.slowHook = hook
	}
}

// WithSlowQueryLog logs slow statements to the given logger, or to the
// default logger if l is nil.
func WithSlowQueryLog(l *slog.Logger) StatsOption {
	if l == nil {
		l = slog.Default()
	}
	return WithSlowQueryHook(func(ctx context.Context, query string, duration time.Duration) {
		l.WarnContext(ctx, "slow query detected", "duration", duration, "query", query)
	})
}

// NewStatsDriver wraps a Driver with statistics collection.
//
//	drv, _ := sql.Open(dialect.MySQL, dsn)
//	stats := sql.NewStatsDriver(drv, sql.WithSlowThreshold(200*time.Millisecond))
//	n, err := sql.WithDriver(stats).Delete("sessions").Where("expired=1").Exec(ctx)
//	fmt.Println(stats.QueryStats().Stats())
func NewStatsDriver(drv *Driver, opts ...StatsOption) *StatsDriver {
	s := &StatsDriver{
		Driver:        drv,
		stats:         &QueryStats{},
		slowThreshold: 100 * time.Millisecond,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// QueryStats returns the live counters.
func (d *StatsDriver) QueryStats() *QueryStats {
	return d.stats
}

// SlowThreshold returns the slow statement threshold.
func (d *StatsDriver) SlowThreshold() time.Duration {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.slowThreshold
}

// SetSlowThreshold changes the slow statement threshold of later calls.
func (d *StatsDriver) SetSlowThreshold(threshold time.Duration) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.slowThreshold = threshold
}

// Query executes a query and records statistics.
func (d *StatsDriver) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Query(ctx, query, args, v)
	d.record(ctx, query, start, err, &d.stats.TotalQueries)
	return err
}

// Exec executes a statement and records statistics.
func (d *StatsDriver) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := d.Driver.Exec(ctx, query, args, v)
	d.record(ctx, query, start, err, &d.stats.TotalExecs)
	return err
}

// Prepare prepares a statement and records statistics.
func (d *StatsDriver) Prepare(ctx context.Context, query string) (*Stmt, error) {
	start := time.Now()
	stmt, err := d.Driver.Prepare(ctx, query)
	d.record(ctx, query, start, err, &d.stats.TotalPrepares)
	return stmt, err
}

func (d *StatsDriver) record(ctx context.Context, query string, start time.Time, err error, counter *atomic.Int64) {
	duration := time.Since(start)
	counter.Add(1)
	d.stats.TotalDuration.Add(int64(duration))
	if err != nil {
		d.stats.Errors.Add(1)
	}

	d.mu.RLock()
	threshold := d.slowThreshold
	hook := d.slowHook
	d.mu.RUnlock()

	if duration > threshold {
		d.stats.SlowQueries.Add(1)
		if hook != nil {
			hook(ctx, query, duration)
		}
	}
}

// Tx starts a transaction that also records statistics.
func (d *StatsDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &StatsTx{Tx: tx, driver: d}, nil
}

// StatsTx wraps a transaction with statistics collection.
type StatsTx struct {
	dialect.Tx
	driver *StatsDriver
}

// Query executes a query within the transaction and records statistics.
func (tx *StatsTx) Query(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Query(ctx, query, args, v)
	tx.driver.record(ctx, query, start, err, &tx.driver.stats.TotalQueries)
	return err
}

// Exec executes a statement within the transaction and records statistics.
func (tx *StatsTx) Exec(ctx context.Context, query string, args, v any) error {
	start := time.Now()
	err := tx.Tx.Exec(ctx, query, args, v)
	tx.driver.record(ctx, query, start, err, &tx.driver.stats.TotalExecs)
	return err
}

// Prepare prepares a statement within the transaction and records statistics.
func (tx *StatsTx) Prepare(ctx context.Context, query string) (*Stmt, error) {
	p, ok := tx.Tx.(Preparer)
	if !ok {
		return nil, ErrPrepareUnsupported
	}
	start := time.Now()
	stmt, err := p.Prepare(ctx, query)
	tx.driver.record(ctx, query, start, err, &tx.driver.stats.TotalPrepares)
	return stmt, err
}

// DebugDriver wraps a Driver and logs every statement it runs.
type DebugDriver struct {
	*Driver
	logger *slog.Logger
}

// DebugOption configures the DebugDriver.
type DebugOption func(*DebugDriver)

// DebugWithLogger sets the logger statements are written to.
func DebugWithLogger(l *slog.Logger) DebugOption {
	return func(d *DebugDriver) {
		d.logger = l
	}
}

// NewDebugDriver wraps a Driver with debug logging.
//
//	drv, _ := sql.Open(dialect.MySQL, dsn)
//	debug := sql.NewDebugDriver(drv, sql.DebugWithLogger(slog.New(slog.NewTextHandler(os.Stderr, nil))))
func NewDebugDriver(drv *Driver, opts ...DebugOption) *DebugDriver {
	d := &DebugDriver{
		Driver: drv,
		logger: slog.Default(),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Query executes a query and logs it.
func (d *DebugDriver) Query(ctx context.Context, query string, args, v any) error {
	d.logger.DebugContext(ctx, "query", "sql", query, "args", args)
	return d.Driver.Query(ctx, query, args, v)
}

// Exec executes a statement and logs it.
func (d *DebugDriver) Exec(ctx context.Context, query string, args, v any) error {
	d.logger.DebugContext(ctx, "exec", "sql", query, "args", args)
	return d.Driver.Exec(ctx, query, args, v)
}

// Prepare prepares a statement and logs it.
func (d *DebugDriver) Prepare(ctx context.Context, query string) (*Stmt, error) {
	d.logger.DebugContext(ctx, "prepare", "sql", query)
	return d.Driver.Prepare(ctx, query)
}

// Tx starts a transaction with debug logging.
func (d *DebugDriver) Tx(ctx context.Context) (dialect.Tx, error) {
	d.logger.DebugContext(ctx, "begin transaction")
	tx, err := d.Driver.Tx(ctx)
	if err != nil {
		return nil, err
	}
	return &DebugTx{Tx: tx, logger: d.logger}, nil
}

// DebugTx wraps a transaction with debug logging.
type DebugTx struct {
	dialect.Tx
	logger *slog.Logger
}

// Query executes a query within the transaction and logs it.
func (tx *DebugTx) Query(ctx context.Context, query string, args, v any) error {
	tx.logger.DebugContext(ctx, "tx query", "sql", query, "args", args)
	return tx.Tx.Query(ctx, query, args, v)
}

// Exec executes a statement within the transaction and logs it.
func (tx *DebugTx) Exec(ctx context.Context, query string, args, v any) error {
	tx.logger.DebugContext(ctx, "tx exec", "sql", query, "args", args)
	return tx.Tx.Exec(ctx, query, args, v)
}

// Prepare prepares a statement within the transaction and logs it.
func (tx *DebugTx) Prepare(ctx context.Context, query string) (*Stmt, error) {
	p, ok := tx.Tx.(Preparer)
	if !ok {
		return nil, ErrPrepareUnsupported
	}
	tx.logger.DebugContext(ctx, "tx prepare", "sql", query)
	return p.Prepare(ctx, query)
}

// Commit commits the transaction and logs it.
func (tx *DebugTx) Commit() error {
	tx.logger.Debug("commit transaction")
	return tx.Tx.Commit()
}

// Rollback rolls back the transaction and logs it.
func (tx *DebugTx) Rollback() error {
	tx.logger.Debug("rollback transaction")
	return tx.Tx.Rollback()
}

// Ensure interfaces are implemented.
var (
	_ dialect.Driver = (*StatsDriver)(nil)
	_ dialect.Tx     = (*StatsTx)(nil)
	_ dialect.Driver = (*DebugDriver)(nil)
	_ dialect.Tx     = (*DebugTx)(nil)
	_ Preparer       = (*StatsDriver)(nil)
	_ Preparer       = (*DebugDriver)(nil)
	_ Preparer       = (*StatsTx)(nil)
	_ Preparer       = (*DebugTx)(nil)
)
