package querybuilder

import (
	"errors"
	"fmt"
)

// Standard sentinel errors.
var (
	// ErrTxStarted is returned when attempting to start a new transaction
	// within an existing transaction.
	ErrTxStarted = errors.New("querybuilder: cannot start a transaction within a transaction")

	// ErrMissingField is wrapped by ConfigError when a required setting is empty.
	ErrMissingField = errors.New("querybuilder: missing required field")

	// ErrInvalidField is wrapped by ConfigError when a setting is out of range.
	ErrInvalidField = errors.New("querybuilder: invalid field")
)

// ConfigError represents an invalid connection configuration.
type ConfigError struct {
	Field string // YAML name of the offending setting
	Err   error  // Underlying error
}

// Error returns the error string.
func (e *ConfigError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("querybuilder: config: %v", e.Err)
	}
	return fmt.Sprintf("querybuilder: config %q: %v", e.Field, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigError) Unwrap() error {
	return e.Err
}

// IsConfigError returns true if the error is a ConfigError.
func IsConfigError(err error) bool {
	if err == nil {
		return false
	}
	var e *ConfigError
	return errors.As(err, &e)
}

// RollbackError wraps an error that occurred during a transaction rollback.
type RollbackError struct {
	Err error // Error returned by the rollback
}

// Error returns the error string.
func (e *RollbackError) Error() string {
	return fmt.Sprintf("querybuilder: rollback failed: %v", e.Err)
}

// Unwrap returns the underlying error.
func (e *RollbackError) Unwrap() error {
	return e.Err
}

// IsRollbackError returns true if the error is a RollbackError.
func IsRollbackError(err error) bool {
	if err == nil {
		return false
	}
	var e *RollbackError
	return errors.As(err, &e)
}
