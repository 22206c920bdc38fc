package querybuilder_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/syssam/querybuilder"
)

func TestConfigError(t *testing.T) {
	t.Run("Error", func(t *testing.T) {
		err := &querybuilder.ConfigError{Field: "user", Err: querybuilder.ErrMissingField}
		assert.Equal(t, `querybuilder: config "user": querybuilder: missing required field`, err.Error())

		err = &querybuilder.ConfigError{Err: errors.New("bad yaml")}
		assert.Equal(t, "querybuilder: config: bad yaml", err.Error())
	})

	t.Run("Unwrap", func(t *testing.T) {
		err := &querybuilder.ConfigError{Field: "port", Err: querybuilder.ErrInvalidField}
		assert.ErrorIs(t, err, querybuilder.ErrInvalidField)
	})

	t.Run("IsConfigError", func(t *testing.T) {
		err := &querybuilder.ConfigError{Field: "user", Err: querybuilder.ErrMissingField}
		assert.True(t, querybuilder.IsConfigError(err))
		assert.True(t, querybuilder.IsConfigError(fmt.Errorf("open: %w", err)))
		assert.False(t, querybuilder.IsConfigError(errors.New("other error")))
		assert.False(t, querybuilder.IsConfigError(nil))
	})
}

func TestRollbackError(t *testing.T) {
	inner := errors.New("connection lost")
	err := &querybuilder.RollbackError{Err: inner}
	assert.Equal(t, "querybuilder: rollback failed: connection lost", err.Error())
	assert.ErrorIs(t, err, inner)
	assert.True(t, querybuilder.IsRollbackError(errors.Join(errors.New("fn"), err)))
	assert.False(t, querybuilder.IsRollbackError(inner))
	assert.False(t, querybuilder.IsRollbackError(nil))
}
