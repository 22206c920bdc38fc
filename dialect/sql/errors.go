package sql

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

// Sentinel errors returned by statement execution and reported as diagnostics.
var (
	// ErrNoDriver is returned when a statement that was not created through
	// WithDriver is executed.
	ErrNoDriver = errors.New("dialect/sql: statement is not bound to a driver")

	// ErrPrepareUnsupported is returned when the bound driver cannot prepare statements.
	ErrPrepareUnsupported = errors.New("dialect/sql: driver does not support prepared statements")

	// ErrNoJoinTarget is reported when On, Ons or Using is called while the
	// last touched section of a select is not a join.
	ErrNoJoinTarget = errors.New("dialect/sql: no current join")

	// ErrNoRollupTarget is reported when WithRollup follows neither GroupBy nor OrderBy.
	ErrNoRollupTarget = errors.New("dialect/sql: no current group or order")

	// ErrNoAliasTarget is reported when As follows neither a from nor a join.
	ErrNoAliasTarget = errors.New("dialect/sql: no current from or join")

	// ErrLeadingConnective is reported when the first clause of a WHERE,
	// HAVING or ON predicate is given a connective. The clause is kept.
	ErrLeadingConnective = errors.New("dialect/sql: connective without a preceding clause")
)

// ArityError is reported when a value tuple does not match the column count.
type ArityError struct {
	Op      string // Values or Rows
	Columns int    // Declared column count
	Got     int    // Tuple length
}

// Error returns the error string.
func (e *ArityError) Error() string {
	return fmt.Sprintf("dialect/sql: %s: tuple of %d values for %d columns dropped", e.Op, e.Got, e.Columns)
}

// ContextError wraps a sentinel with the name of the call that was skipped.
type ContextError struct {
	Op  string
	Err error
}

// Error returns the error string.
func (e *ContextError) Error() string {
	return fmt.Sprintf("%v: %s ignored", e.Err, e.Op)
}

// Unwrap returns the underlying sentinel.
func (e *ContextError) Unwrap() error {
	return e.Err
}

// QueryError wraps a driver error with the statement that caused it.
type QueryError struct {
	Op    string // exec, query or prepare
	Query string // Rendered statement
	Err   error  // Driver error
}

// Error returns the error string.
func (e *QueryError) Error() string {
	return fmt.Sprintf("dialect/sql: %s: %v", e.Op, e.Err)
}

// Unwrap returns the underlying error.
func (e *QueryError) Unwrap() error {
	return e.Err
}

// IsQueryError returns true if the error is a QueryError.
func IsQueryError(err error) bool {
	if err == nil {
		return false
	}
	var e *QueryError
	return errors.As(err, &e)
}

// MySQL error numbers for constraint violations.
const (
	mysqlDuplicateEntry         = 1062
	mysqlForeignKeyParent       = 1451 // Cannot delete or update a parent row
	mysqlForeignKeyChild        = 1452 // Cannot add or update a child row
	mysqlCheckConstraintViolate = 3819
)

// IsConstraintError returns true if the error resulted from a database constraint violation.
func IsConstraintError(err error) bool {
	return IsUniqueConstraintError(err) ||
		IsForeignKeyConstraintError(err) ||
		IsCheckConstraintError(err)
}

// IsUniqueConstraintError reports if the error resulted from a DB uniqueness constraint violation.
// e.g. duplicate value in unique index.
func IsUniqueConstraintError(err error) bool {
	return hasNumber(err, mysqlDuplicateEntry) || containsAny(err, "Error 1062")
}

// IsForeignKeyConstraintError reports if the error resulted from a database foreign-key constraint violation.
// e.g. parent row does not exist.
func IsForeignKeyConstraintError(err error) bool {
	return hasNumber(err, mysqlForeignKeyParent, mysqlForeignKeyChild) ||
		containsAny(err, "Error 1451", "Error 1452")
}

// IsCheckConstraintError reports if the error resulted from a database check constraint violation.
func IsCheckConstraintError(err error) bool {
	return hasNumber(err, mysqlCheckConstraintViolate) || containsAny(err, "Error 3819")
}

// hasNumber reports whether err wraps a *mysql.MySQLError with one of the given numbers.
func hasNumber(err error, numbers ...uint16) bool {
	var e *mysql.MySQLError
	if !errors.As(err, &e) {
		return false
	}
	for _, n := range numbers {
		if e.Number == n {
			return true
		}
	}
	return false
}

// containsAny is the fallback for drivers that don't expose a MySQLError.
func containsAny(err error, substrings ...string) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	for _, sub := range substrings {
		if strings.Contains(s, sub) {
			return true
		}
	}
	return false
}
