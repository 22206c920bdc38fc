package querybuilder

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"os"
	"strconv"
	"time"

	"github.com/go-sql-driver/mysql"
	"gopkg.in/yaml.v3"
)

// Defaults applied to the zero fields of a Config.
const (
	DefaultHost    = "127.0.0.1"
	DefaultPort    = 3306
	DefaultCharset = "utf8mb4"
)

// Config holds the settings of a MySQL connection.
//
//	host: db.internal
//	port: 3306
//	user: app
//	password: secret
//	database: shop
//	multi_statements: true
//	slow_threshold: 200ms
type Config struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`
	Charset  string `yaml:"charset"`

	// MultiStatements allows executing a rendered Batch in one round trip.
	MultiStatements bool `yaml:"multi_statements"`

	// Debug logs every statement through the client logger.
	// It takes precedence over SlowThreshold.
	Debug bool `yaml:"debug"`

	// SlowThreshold enables statement statistics and logs statements
	// running longer than it. Zero disables both.
	SlowThreshold time.Duration `yaml:"slow_threshold"`
}

// LoadConfig reads a YAML configuration file.
func LoadConfig(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, &ConfigError{Err: err}
	}
	return ParseConfig(data)
}

// ParseConfig decodes a YAML configuration, applies the defaults and
// validates the result. Unknown keys are rejected.
func ParseConfig(data []byte) (Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return Config{}, &ConfigError{Err: err}
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) withDefaults() Config {
	if c.Host == "" {
		c.Host = DefaultHost
	}
	if c.Port == 0 {
		c.Port = DefaultPort
	}
	if c.Charset == "" {
		c.Charset = DefaultCharset
	}
	return c
}

// Validate checks the configuration.
func (c Config) Validate() error {
	switch {
	case c.User == "":
		return &ConfigError{Field: "user", Err: ErrMissingField}
	case c.Port < 0 || c.Port > 65535:
		return &ConfigError{Field: "port", Err: fmt.Errorf("%w: %d out of range", ErrInvalidField, c.Port)}
	case c.SlowThreshold < 0:
		return &ConfigError{Field: "slow_threshold", Err: fmt.Errorf("%w: negative duration", ErrInvalidField)}
	}
	return nil
}

// DSN returns the go-sql-driver/mysql data source name of the configuration.
// Zero fields take their defaults.
func (c Config) DSN() (string, error) {
	c = c.withDefaults()
	mc, err := mysql.ParseDSN("/?charset=" + url.QueryEscape(c.Charset))
	if err != nil {
		return "", &ConfigError{Field: "charset", Err: err}
	}
	mc.User = c.User
	mc.Passwd = c.Password
	mc.Net = "tcp"
	mc.Addr = net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
	mc.DBName = c.Database
	mc.MultiStatements = c.MultiStatements
	return mc.FormatDSN(), nil
}
