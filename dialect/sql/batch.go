package sql

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/sync/errgroup"
)

// DefaultSeparator separates the statements of a rendered batch.
const DefaultSeparator = ";"

// prepareWorkers bounds the concurrent prepares of PrepareAll.
const prepareWorkers = 4

// BatchBuilder is an ordered list of independent statements rendered as one
// multi-statement text. Executing it requires a connection that accepts
// multiple statements (see the multiStatements DSN parameter).
type BatchBuilder struct {
	execer
	stmts []Statement
}

// Batch returns a builder for a multi-statement batch.
//
//	sql.Batch(sql.Do("GET_LOCK('l', 1)"), sql.Update("t").Set("n", 1))
//	// DO GET_LOCK('l', 1);UPDATE t SET n = 1
func Batch(stmts ...Statement) *BatchBuilder {
	b := &BatchBuilder{stmts: append([]Statement(nil), stmts...)}
	b.bind(nil, b)
	return b
}

// Add appends a statement.
func (b *BatchBuilder) Add(s Statement) *BatchBuilder {
	b.stmts = append(b.stmts, s)
	return b
}

// Remove removes the statement at index and reports whether it existed.
func (b *BatchBuilder) Remove(index int) bool {
	if index < 0 || index >= len(b.stmts) {
		return false
	}
	b.stmts = append(b.stmts[:index], b.stmts[index+1:]...)
	return true
}

// Len returns the number of statements.
func (b *BatchBuilder) Len() int {
	return len(b.stmts)
}

// Join renders the statements separated by sep.
func (b *BatchBuilder) Join(sep string) string {
	parts := make([]string, len(b.stmts))
	for i, s := range b.stmts {
		parts[i] = s.String()
	}
	return strings.Join(parts, sep)
}

// String renders the statements separated by DefaultSeparator.
func (b *BatchBuilder) String() string {
	return b.Join(DefaultSeparator)
}

// PrepareAll prepares every statement of the batch on its own, returning the
// prepared statements in batch order. Statements are rendered before any
// prepare starts. On failure, the statements already prepared are closed.
func (b *BatchBuilder) PrepareAll(ctx context.Context) ([]*Stmt, error) {
	if b.drv == nil {
		return nil, ErrNoDriver
	}
	p, ok := b.drv.(Preparer)
	if !ok {
		return nil, ErrPrepareUnsupported
	}
	queries := make([]string, len(b.stmts))
	for i, s := range b.stmts {
		queries[i] = s.String()
	}
	stmts := make([]*Stmt, len(queries))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(prepareWorkers)
	for i, query := range queries {
		g.Go(func() error {
			stmt, err := p.Prepare(gctx, query)
			if err != nil {
				return &QueryError{Op: "prepare", Query: query, Err: err}
			}
			stmts[i] = stmt
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		var errs []error
		for _, stmt := range stmts {
			if stmt != nil {
				errs = append(errs, stmt.Close())
			}
		}
		return nil, errors.Join(append([]error{err}, errs...)...)
	}
	return stmts, nil
}
