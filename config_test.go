package querybuilder_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/syssam/querybuilder"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
host: db.internal
port: 3307
user: app
password: secret
database: shop
multi_statements: true
slow_threshold: 250ms
`), 0o600))

	cfg, err := querybuilder.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, querybuilder.Config{
		Host:            "db.internal",
		Port:            3307,
		User:            "app",
		Password:        "secret",
		Database:        "shop",
		Charset:         querybuilder.DefaultCharset,
		MultiStatements: true,
		SlowThreshold:   250 * time.Millisecond,
	}, cfg)
}

func TestLoadConfigMissingFile(t *testing.T) {
	_, err := querybuilder.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.True(t, querybuilder.IsConfigError(err))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestParseConfig(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		field   string
		wantErr error
	}{
		{
			name:  "defaults",
			input: "user: root",
		},
		{
			name:    "empty",
			input:   "",
			field:   "user",
			wantErr: querybuilder.ErrMissingField,
		},
		{
			name:    "port out of range",
			input:   "user: root\nport: 70000",
			field:   "port",
			wantErr: querybuilder.ErrInvalidField,
		},
		{
			name:    "negative threshold",
			input:   "user: root\nslow_threshold: -1s",
			field:   "slow_threshold",
			wantErr: querybuilder.ErrInvalidField,
		},
		{
			name:  "unknown key",
			input: "user: root\nhostname: x",
		},
		{
			name:  "malformed",
			input: "user: [",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := querybuilder.ParseConfig([]byte(tt.input))
			if tt.name == "defaults" {
				require.NoError(t, err)
				assert.Equal(t, querybuilder.DefaultHost, cfg.Host)
				assert.Equal(t, querybuilder.DefaultPort, cfg.Port)
				assert.Equal(t, querybuilder.DefaultCharset, cfg.Charset)
				return
			}
			require.Error(t, err)
			var cerr *querybuilder.ConfigError
			require.ErrorAs(t, err, &cerr)
			assert.Equal(t, tt.field, cerr.Field)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestConfigDSN(t *testing.T) {
	dsn, err := querybuilder.Config{
		Host:            "db.internal",
		Port:            3307,
		User:            "app",
		Password:        "secret",
		Database:        "shop",
		MultiStatements: true,
	}.DSN()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dsn, "app:secret@tcp(db.internal:3307)/shop?"), dsn)
	assert.Contains(t, dsn, "charset=utf8mb4")
	assert.Contains(t, dsn, "multiStatements=true")

	parsed, err := mysql.ParseDSN(dsn)
	require.NoError(t, err)
	assert.Equal(t, "app", parsed.User)
	assert.Equal(t, "secret", parsed.Passwd)
	assert.Equal(t, "tcp", parsed.Net)
	assert.Equal(t, "db.internal:3307", parsed.Addr)
	assert.Equal(t, "shop", parsed.DBName)
	assert.True(t, parsed.MultiStatements)
}

func TestConfigDSNDefaults(t *testing.T) {
	dsn, err := querybuilder.Config{User: "root"}.DSN()
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(dsn, "root@tcp(127.0.0.1:3306)/"), dsn)
	assert.Contains(t, dsn, "charset=utf8mb4")
	assert.NotContains(t, dsn, "multiStatements")
}
