package sql

import (
	"context"
	"strconv"
	"strings"

	"github.com/syssam/querybuilder/dialect"
)

// Statement is the interface implemented by every buildable SQL command and
// fragment. String renders the accumulated state and never mutates it.
type Statement interface {
	String() string
}

// Connective joins two clauses of a predicate sequence.
type Connective string

// Predicate connectives.
const (
	AND Connective = "AND"
	OR  Connective = "OR"
	XOR Connective = "XOR"
)

// Builder is the low-level string builder shared by all statements.
type Builder struct {
	sb strings.Builder
}

// WriteString appends s to the builder.
func (b *Builder) WriteString(s string) *Builder {
	b.sb.WriteString(s)
	return b
}

// Byte appends c to the builder.
func (b *Builder) Byte(c byte) *Builder {
	b.sb.WriteByte(c)
	return b
}

// Pad adds a space to the builder if the last written byte is not one.
func (b *Builder) Pad() *Builder {
	if n := b.sb.Len(); n > 0 && b.sb.String()[n-1] != ' ' {
		b.sb.WriteByte(' ')
	}
	return b
}

// Keyword pads the builder and writes the given keyword.
func (b *Builder) Keyword(kw string) *Builder {
	return b.Pad().WriteString(kw)
}

// Clause writes the keyword followed by the clause text, unless the text is empty.
func (b *Builder) Clause(kw, text string) *Builder {
	if text == "" {
		return b
	}
	return b.Keyword(kw).Byte(' ').WriteString(text)
}

// JoinComma writes the given items separated by ", ".
func (b *Builder) JoinComma(items ...string) *Builder {
	return b.WriteString(strings.Join(items, ", "))
}

// Nested writes the rendering of s wrapped in parentheses.
func (b *Builder) Nested(s Statement) *Builder {
	return b.Byte('(').WriteString(s.String()).Byte(')')
}

// Int writes the decimal form of n.
func (b *Builder) Int(n int) *Builder {
	return b.WriteString(strconv.Itoa(n))
}

// String returns the accumulated text.
func (b *Builder) String() string {
	return b.sb.String()
}

// predicate is an ordered sequence of clause and connective tokens,
// rendered by joining with single spaces.
type predicate []string

// add appends clause. A connective links the clause to what was already
// accumulated. When the sequence is empty the connective is dropped and
// returned, so the caller can report it.
func (p *predicate) add(clause string, conn []Connective) (dropped Connective) {
	if len(conn) > 0 && conn[0] != "" {
		if len(*p) == 0 {
			dropped = conn[0]
		} else {
			*p = append(*p, string(conn[0]))
		}
	}
	*p = append(*p, clause)
	return dropped
}

// set replaces the whole sequence. The caller supplies complete boolean
// expressions, connectives are not inferred.
func (p *predicate) set(clauses []string) {
	*p = append(predicate(nil), clauses...)
}

func (p predicate) String() string {
	return strings.Join(p, " ")
}

// limit is an optional row count.
type limit struct {
	n     int
	valid bool
}

func (l *limit) set(n int) {
	l.n, l.valid = n, true
}

// DriverBuilder creates statements bound to a driver. Statements created by
// it can be executed directly with Exec, Query and Prepare.
type DriverBuilder struct {
	drv dialect.ExecQuerier
}

// WithDriver returns a DriverBuilder that binds every statement it creates to drv.
//
//	b := sql.WithDriver(drv)
//	rows, err := b.Select("id", "name").From("users").Where("active=1").Query(ctx)
func WithDriver(drv dialect.ExecQuerier) *DriverBuilder {
	return &DriverBuilder{drv: drv}
}

// Driver returns the driver the builder binds statements to.
func (d *DriverBuilder) Driver() dialect.ExecQuerier {
	return d.drv
}

// Select creates a Selector for the given columns.
func (d *DriverBuilder) Select(columns ...string) *Selector {
	s := Select(columns...)
	s.bind(d.drv, s)
	return s
}

// Insert creates an InsertBuilder for the given columns.
func (d *DriverBuilder) Insert(columns ...string) *InsertBuilder {
	i := Insert(columns...)
	i.bind(d.drv, i)
	return i
}

// Replace creates a ReplaceBuilder for the given columns.
func (d *DriverBuilder) Replace(columns ...string) *ReplaceBuilder {
	r := Replace(columns...)
	r.bind(d.drv, r)
	return r
}

// Update creates an UpdateBuilder for the given table.
func (d *DriverBuilder) Update(table string) *UpdateBuilder {
	u := Update(table)
	u.bind(d.drv, u)
	return u
}

// Delete creates a DeleteBuilder for the given table.
func (d *DriverBuilder) Delete(table string) *DeleteBuilder {
	del := Delete(table)
	del.bind(d.drv, del)
	return del
}

// Call creates a CallBuilder for the given stored procedure.
func (d *DriverBuilder) Call(procedure string) *CallBuilder {
	c := Call(procedure)
	c.bind(d.drv, c)
	return c
}

// Do creates a DoBuilder for the given expressions.
func (d *DriverBuilder) Do(exprs ...string) *DoBuilder {
	do := Do(exprs...)
	do.bind(d.drv, do)
	return do
}

// Union creates a UnionBuilder over the given selects.
func (d *DriverBuilder) Union(selects ...*Selector) *UnionBuilder {
	u := Union(selects...)
	u.bind(d.drv, u)
	return u
}

// Batch creates a BatchBuilder over the given statements.
func (d *DriverBuilder) Batch(stmts ...Statement) *BatchBuilder {
	b := Batch(stmts...)
	b.bind(d.drv, b)
	return b
}

// execer gives a statement access to the driver it was bound to.
type execer struct {
	drv  dialect.ExecQuerier
	stmt Statement
}

func (e *execer) bind(drv dialect.ExecQuerier, stmt Statement) {
	e.drv, e.stmt = drv, stmt
}

// Exec renders the statement, executes it and returns the number of affected rows.
func (e *execer) Exec(ctx context.Context) (int64, error) {
	if e.drv == nil {
		return 0, ErrNoDriver
	}
	query := e.stmt.String()
	var res Result
	if err := e.drv.Exec(ctx, query, []any{}, &res); err != nil {
		return 0, &QueryError{Op: "exec", Query: query, Err: err}
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, &QueryError{Op: "exec", Query: query, Err: err}
	}
	return n, nil
}

// Query renders the statement, runs it and returns the result cursor.
// The caller must close the returned rows.
func (e *execer) Query(ctx context.Context) (*Rows, error) {
	if e.drv == nil {
		return nil, ErrNoDriver
	}
	query := e.stmt.String()
	rows := &Rows{}
	if err := e.drv.Query(ctx, query, []any{}, rows); err != nil {
		return nil, &QueryError{Op: "query", Query: query, Err: err}
	}
	return rows, nil
}

// Prepare renders the statement and prepares it on the driver.
func (e *execer) Prepare(ctx context.Context) (*Stmt, error) {
	if e.drv == nil {
		return nil, ErrNoDriver
	}
	p, ok := e.drv.(Preparer)
	if !ok {
		return nil, ErrPrepareUnsupported
	}
	query := e.stmt.String()
	stmt, err := p.Prepare(ctx, query)
	if err != nil {
		return nil, &QueryError{Op: "prepare", Query: query, Err: err}
	}
	return stmt, nil
}

// diagnostics collects the chained calls that were skipped.
type diagnostics struct {
	errs []error
}

func (d *diagnostics) report(err error) {
	d.errs = append(d.errs, err)
}

// leading reports a connective dropped by the first clause of a predicate.
func (d *diagnostics) leading(op string, dropped Connective) {
	if dropped != "" {
		d.report(&ContextError{Op: op + " " + string(dropped), Err: ErrLeadingConnective})
	}
}

// Diagnostics returns the errors describing chained calls that had no effect,
// such as an On without a preceding join or a tuple with the wrong arity.
// The builder keeps working regardless of them.
func (d *diagnostics) Diagnostics() []error {
	return append([]error(nil), d.errs...)
}
