// Package config loads the guardhouse configuration from a YAML or .env file and the
// environment.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-viper/mapstructure/v2"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// ServerConfig is the configuration of the HTTP server.
type ServerConfig struct {
	Host            string        `mapstructure:"host" yaml:"host"`                         // Interface to listen on, empty for all
	Port            int           `mapstructure:"port" yaml:"port"`                         // Port to listen on
	AllowedOrigins  []string      `mapstructure:"allowed_origins" yaml:"allowed_origins"`   // Origins allowed to call the API from a browser
	ReadTimeout     time.Duration `mapstructure:"read_timeout" yaml:"read_timeout"`         // Maximum duration for reading a request
	WriteTimeout    time.Duration `mapstructure:"write_timeout" yaml:"write_timeout"`       // Maximum duration for writing a response
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"` // Grace period for in-flight requests on shutdown
}

// Addr returns the listen address of the server.
func (c ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// DatabaseConfig is the configuration of the Postgres connection.
//
// WARNING: This data type contains sensitive fields and should not be logged.
type DatabaseConfig struct {
	Host            string `mapstructure:"host" yaml:"host"`
	Port            int    `mapstructure:"port" yaml:"port"`
	User            string `mapstructure:"user" yaml:"user"`
	Password        string `mapstructure:"password" yaml:"password"` // Secret: the database password
	Name            string `mapstructure:"name" yaml:"name"`
	SSLMode         string `mapstructure:"sslmode" yaml:"sslmode"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	ConnectAttempts uint   `mapstructure:"connect_attempts" yaml:"connect_attempts"` // Ping attempts before giving up at startup
}

// DSN returns the lib/pq keyword/value connection string.
func (c DatabaseConfig) DSN() string {
	parts := []string{
		"host=" + quoteDSN(c.Host),
		fmt.Sprintf("port=%d", c.Port),
		"user=" + quoteDSN(c.User),
		"dbname=" + quoteDSN(c.Name),
		"sslmode=" + quoteDSN(c.SSLMode),
	}
	if c.Password != "" {
		parts = append(parts, "password="+quoteDSN(c.Password))
	}

	return strings.Join(parts, " ")
}

// quoteDSN quotes a value for the keyword/value DSN format when it contains spaces,
// quotes or backslashes.
func quoteDSN(v string) string {
	if v != "" && !strings.ContainsAny(v, ` '\`) {
		return v
	}
	v = strings.ReplaceAll(v, `\`, `\\`)
	v = strings.ReplaceAll(v, `'`, `\'`)

	return "'" + v + "'"
}

// LogConfig is the configuration of the logger.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"` // debug, info, warn or error
}

// PayrollConfig holds the payroll defaults.
type PayrollConfig struct {
	DefaultBonus     decimal.Decimal `mapstructure:"default_bonus" yaml:"default_bonus"`
	DefaultAllowance decimal.Decimal `mapstructure:"default_allowance" yaml:"default_allowance"`
	DueWindowDays    int             `mapstructure:"due_window_days" yaml:"due_window_days"` // Days before a pay date at which unpaid salaries are flagged as due
}

// Config wraps the entire configuration of the service.
type Config struct {
	Server   ServerConfig   `mapstructure:"server" yaml:"server"`
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`
	Log      LogConfig      `mapstructure:"log" yaml:"log"`
	Payroll  PayrollConfig  `mapstructure:"payroll" yaml:"payroll"`
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		errs = append(errs, fmt.Errorf("server.port out of range: %d", c.Server.Port))
	}
	if c.Database.Name == "" {
		errs = append(errs, errors.New("database.name is required"))
	}
	if c.Database.Port <= 0 || c.Database.Port > 65535 {
		errs = append(errs, fmt.Errorf("database.port out of range: %d", c.Database.Port))
	}
	if c.Payroll.DueWindowDays < 0 {
		errs = append(errs, fmt.Errorf("payroll.due_window_days must not be negative: %d", c.Payroll.DueWindowDays))
	}

	return errors.Join(errs...)
}

// Load loads the config from the file path, falling back to env vars if the file does not exist.
// If the file exists, any env vars that are set will override the values loaded from the file.
// Files named .env or ending in .env are read as dotenv files, everything else by extension.
func Load(filePath string) (*Config, error) {
	v := newViper()

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	// If the config file exists, we continue to read it, otherwise we fallback to using
	// environment variables
	if filePath != "" {
		if _, err := os.Stat(filePath); !errors.Is(err, fs.ErrNotExist) {
			if isDotEnv(filePath) {
				err = readDotEnv(v, filePath)
			} else {
				v.SetConfigFile(filePath)
				err = v.ReadInConfig()
			}
			if err != nil {
				return nil, err
			}
		}
	}

	return unmarshal(v)
}

// LoadEnv loads the config from the environment variables.
func LoadEnv() (*Config, error) {
	v := newViper()

	if err := bindEnvs(v); err != nil {
		return nil, err
	}

	return unmarshal(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	cfg := &Config{}
	if err := v.Unmarshal(cfg, viper.DecodeHook(decodeHook())); err != nil {
		return nil, err
	}

	return cfg, nil
}

// readDotEnv reads a dotenv file holding the same variable names as the environment
// bindings. Its values rank below real environment variables.
func readDotEnv(v *viper.Viper, path string) error {
	fv := viper.New()
	fv.SetConfigFile(path)
	fv.SetConfigType("env")
	if err := fv.ReadInConfig(); err != nil {
		return err
	}

	for key, envs := range envBindings {
		for _, env := range envs {
			if fv.IsSet(env) {
				v.SetDefault(key, fv.Get(env))
				break
			}
		}
	}

	return nil
}

// decodeHook extends viper's default hooks with decimal parsing.
func decodeHook() mapstructure.DecodeHookFunc {
	return mapstructure.ComposeDecodeHookFunc(
		mapstructure.StringToTimeDurationHookFunc(),
		mapstructure.StringToSliceHookFunc(","),
		stringToDecimalHookFunc(),
	)
}

func stringToDecimalHookFunc() mapstructure.DecodeHookFuncType {
	decimalType := reflect.TypeOf(decimal.Decimal{})

	return func(from reflect.Type, to reflect.Type, data any) (any, error) {
		if to != decimalType {
			return data, nil
		}
		switch v := data.(type) {
		case string:
			return decimal.NewFromString(strings.TrimSpace(v))
		case int:
			return decimal.NewFromInt(int64(v)), nil
		case int64:
			return decimal.NewFromInt(v), nil
		case float64:
			return decimal.NewFromFloat(v), nil
		default:
			return data, nil
		}
	}
}

func isDotEnv(path string) bool {
	base := filepath.Base(path)
	return base == ".env" || filepath.Ext(base) == ".env"
}

var (
	defaults = map[string]any{
		"server.port":               5000,
		"server.allowed_origins":    []string{"*"},
		"server.read_timeout":       "15s",
		"server.write_timeout":      "30s",
		"server.shutdown_timeout":   "10s",
		"database.host":             "localhost",
		"database.port":             5432,
		"database.user":             "postgres",
		"database.name":             "securityagency",
		"database.sslmode":          "disable",
		"database.max_open_conns":   10,
		"database.connect_attempts": 5,
		"log.level":                 "info",
		"payroll.default_bonus":     "5000.00",
		"payroll.default_allowance": "3000.00",
		"payroll.due_window_days":   3,
	}

	// envBindings maps config keys to the environment variables that can provide them.
	// The first name is the preferred one; the second, when present, is the name used by
	// earlier deployments of the service and is kept for compatibility.
	envBindings = map[string][]string{
		"server.host":               {"GUARDHOUSE_SERVER_HOST"},
		"server.port":               {"GUARDHOUSE_SERVER_PORT", "PORT"},
		"server.allowed_origins":    {"GUARDHOUSE_SERVER_ALLOWED_ORIGINS"},
		"server.read_timeout":       {"GUARDHOUSE_SERVER_READ_TIMEOUT"},
		"server.write_timeout":      {"GUARDHOUSE_SERVER_WRITE_TIMEOUT"},
		"server.shutdown_timeout":   {"GUARDHOUSE_SERVER_SHUTDOWN_TIMEOUT"},
		"database.host":             {"GUARDHOUSE_DB_HOST", "DB_HOST"},
		"database.port":             {"GUARDHOUSE_DB_PORT", "DB_PORT"},
		"database.user":             {"GUARDHOUSE_DB_USER", "DB_USER"},
		"database.password":         {"GUARDHOUSE_DB_PASSWORD", "DB_PASSWORD"},
		"database.name":             {"GUARDHOUSE_DB_NAME", "DB_NAME"},
		"database.sslmode":          {"GUARDHOUSE_DB_SSLMODE"},
		"database.max_open_conns":   {"GUARDHOUSE_DB_MAX_OPEN_CONNS"},
		"database.connect_attempts": {"GUARDHOUSE_DB_CONNECT_ATTEMPTS"},
		"log.level":                 {"GUARDHOUSE_LOG_LEVEL"},
		"payroll.default_bonus":     {"GUARDHOUSE_PAYROLL_DEFAULT_BONUS"},
		"payroll.default_allowance": {"GUARDHOUSE_PAYROLL_DEFAULT_ALLOWANCE"},
		"payroll.due_window_days":   {"GUARDHOUSE_PAYROLL_DUE_WINDOW_DAYS"},
	}
)

// bindEnvs binds the environment variables to the viper instance.
func bindEnvs(v *viper.Viper) error {
	for key, envs := range envBindings {
		// Prepend the config key to the start of the arguments
		inputs := slices.Insert(slices.Clone(envs), 0, key)

		if err := v.BindEnv(inputs...); err != nil {
			return err
		}
	}

	return nil
}
