package config

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	// defaultCfg is the config that is loaded when neither a file nor env vars provide values.
	defaultCfg = &Config{
		Server: ServerConfig{
			Port:            5000,
			AllowedOrigins:  []string{"*"},
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			User:            "postgres",
			Name:            "securityagency",
			SSLMode:         "disable",
			MaxOpenConns:    10,
			ConnectAttempts: 5,
		},
		Log: LogConfig{Level: "info"},
		Payroll: PayrollConfig{
			DefaultBonus:     decimal.RequireFromString("5000.00"),
			DefaultAllowance: decimal.RequireFromString("3000.00"),
			DueWindowDays:    3,
		},
	}

	// fileCfg is the config that is loaded from the testdata/config.yml file.
	fileCfg = &Config{
		Server: ServerConfig{
			Host:            "127.0.0.1",
			Port:            8080,
			AllowedOrigins:  []string{"http://localhost:3000", "https://admin.agency.ph"},
			ReadTimeout:     20 * time.Second,
			WriteTimeout:    40 * time.Second,
			ShutdownTimeout: 5 * time.Second,
		},
		Database: DatabaseConfig{
			Host:            "db.internal",
			Port:            5433,
			User:            "guardhouse",
			Password:        "s3cret",
			Name:            "agency",
			SSLMode:         "require",
			MaxOpenConns:    20,
			ConnectAttempts: 3,
		},
		Log: LogConfig{Level: "debug"},
		Payroll: PayrollConfig{
			DefaultBonus:     decimal.RequireFromString("4500.00"),
			DefaultAllowance: decimal.RequireFromString("2500.00"),
			DueWindowDays:    5,
		},
	}

	// envVars is the environment variables that override testdata/config.yml.
	envVars = map[string]string{
		"GUARDHOUSE_SERVER_PORT":               "9090",
		"GUARDHOUSE_SERVER_ALLOWED_ORIGINS":    "https://a.agency.ph,https://b.agency.ph",
		"GUARDHOUSE_SERVER_SHUTDOWN_TIMEOUT":   "1m",
		"GUARDHOUSE_DB_HOST":                   "pg.agency.ph",
		"GUARDHOUSE_LOG_LEVEL":                 "warn",
		"GUARDHOUSE_PAYROLL_DEFAULT_ALLOWANCE": "1250.75",
	}

	// legacyEnvVars are the names read by earlier deployments of the service.
	legacyEnvVars = map[string]string{
		"PORT":        "9090",
		"DB_HOST":     "pg.agency.ph",
		"DB_PORT":     "6000",
		"DB_USER":     "legacy",
		"DB_PASSWORD": "hunter22",
		"DB_NAME":     "legacy_db",
	}
)

func withEnvOverrides(base *Config) *Config {
	cfg := *base
	cfg.Server.Port = 9090
	cfg.Server.AllowedOrigins = []string{"https://a.agency.ph", "https://b.agency.ph"}
	cfg.Server.ShutdownTimeout = time.Minute
	cfg.Database.Host = "pg.agency.ph"
	cfg.Log.Level = "warn"
	cfg.Payroll.DefaultAllowance = decimal.RequireFromString("1250.75")

	return &cfg
}

// assertConfig compares decimals by value, since equal amounts can differ in scale.
func assertConfig(t *testing.T, want, got *Config) {
	t.Helper()

	assert.True(t, want.Payroll.DefaultBonus.Equal(got.Payroll.DefaultBonus),
		"default_bonus: want %s, got %s", want.Payroll.DefaultBonus, got.Payroll.DefaultBonus)
	assert.True(t, want.Payroll.DefaultAllowance.Equal(got.Payroll.DefaultAllowance),
		"default_allowance: want %s, got %s", want.Payroll.DefaultAllowance, got.Payroll.DefaultAllowance)

	w, g := *want, *got
	w.Payroll.DefaultBonus, g.Payroll.DefaultBonus = decimal.Zero, decimal.Zero
	w.Payroll.DefaultAllowance, g.Payroll.DefaultAllowance = decimal.Zero, decimal.Zero
	assert.Equal(t, w, g)
}

func Test_Load(t *testing.T) { //nolint:paralleltest // see comment in setupEnvVars
	tests := []struct {
		name       string
		beforeFunc func(t *testing.T)
		givePath   string
		want       *Config
		wantErr    string
	}{
		{
			name:     "load from file",
			givePath: "./testdata/config.yml",
			want:     fileCfg,
		},
		{
			name:     "load defaults from empty file",
			givePath: "./testdata/empty.yml",
			want:     defaultCfg,
		},
		{
			name:     "load defaults without a path",
			givePath: "",
			want:     defaultCfg,
		},
		{
			name: "override with env",
			beforeFunc: func(t *testing.T) {
				t.Helper()

				setupEnvVars(t, envVars)
			},
			givePath: "./testdata/config.yml",
			want:     withEnvOverrides(fileCfg),
		},
		{
			name: "fallback to env when file not found",
			beforeFunc: func(t *testing.T) {
				t.Helper()

				setupEnvVars(t, envVars)
			},
			givePath: "./testdata/missing.yml",
			want:     withEnvOverrides(defaultCfg),
		},
		{
			name:     "load from dotenv file",
			givePath: "./testdata/guardhouse.env",
			want: func() *Config {
				cfg := *defaultCfg
				cfg.Server.Port = 5050
				cfg.Database.Host = "10.0.0.7"
				cfg.Database.Port = 6543
				cfg.Database.User = "agency"
				cfg.Database.Password = "from-dotenv"
				cfg.Database.Name = "securityagency_prod"
				cfg.Payroll.DefaultBonus = decimal.RequireFromString("4000")

				return &cfg
			}(),
		},
		{
			name: "env overrides dotenv file",
			beforeFunc: func(t *testing.T) {
				t.Helper()

				setupEnvVars(t, map[string]string{"GUARDHOUSE_DB_PASSWORD": "from-env"})
			},
			givePath: "./testdata/guardhouse.env",
			want: func() *Config {
				cfg := *defaultCfg
				cfg.Server.Port = 5050
				cfg.Database.Host = "10.0.0.7"
				cfg.Database.Port = 6543
				cfg.Database.User = "agency"
				cfg.Database.Password = "from-env"
				cfg.Database.Name = "securityagency_prod"
				cfg.Payroll.DefaultBonus = decimal.RequireFromString("4000")

				return &cfg
			}(),
		},
		{
			name:     "malformed file",
			givePath: "./testdata/broken.yml",
			wantErr:  "While parsing config",
		},
	}

	for _, tt := range tests { //nolint:paralleltest // see comment in setupEnvVars
		t.Run(tt.name, func(t *testing.T) {
			if tt.beforeFunc != nil {
				tt.beforeFunc(t)
			}

			got, err := Load(tt.givePath)
			if tt.wantErr != "" {
				require.Error(t, err)
				assert.ErrorContains(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
				assertConfig(t, tt.want, got)
			}
		})
	}
}

func Test_LoadEnv_Legacy(t *testing.T) { //nolint:paralleltest // see comment in setupEnvVars
	setupEnvVars(t, legacyEnvVars)

	got, err := LoadEnv()
	require.NoError(t, err)

	want := *defaultCfg
	want.Server.Port = 9090
	want.Database = DatabaseConfig{
		Host:            "pg.agency.ph",
		Port:            6000,
		User:            "legacy",
		Password:        "hunter22",
		Name:            "legacy_db",
		SSLMode:         "disable",
		MaxOpenConns:    10,
		ConnectAttempts: 5,
	}
	assertConfig(t, &want, got)
}

func Test_LoadEnv_PreferredNameWins(t *testing.T) { //nolint:paralleltest // see comment in setupEnvVars
	setupEnvVars(t, map[string]string{
		"DB_NAME":            "legacy_db",
		"GUARDHOUSE_DB_NAME": "preferred_db",
	})

	got, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, "preferred_db", got.Database.Name)
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr []string
	}{
		{
			name:   "defaults are valid",
			mutate: func(*Config) {},
		},
		{
			name:    "server port out of range",
			mutate:  func(c *Config) { c.Server.Port = 70000 },
			wantErr: []string{"server.port out of range: 70000"},
		},
		{
			name: "every problem is reported",
			mutate: func(c *Config) {
				c.Database.Name = ""
				c.Database.Port = 0
				c.Payroll.DueWindowDays = -1
			},
			wantErr: []string{
				"database.name is required",
				"database.port out of range: 0",
				"payroll.due_window_days must not be negative: -1",
			},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := *defaultCfg
			tt.mutate(&cfg)

			err := cfg.Validate()
			if len(tt.wantErr) == 0 {
				require.NoError(t, err)
				return
			}
			for _, want := range tt.wantErr {
				assert.ErrorContains(t, err, want)
			}
		})
	}
}

func TestDatabaseConfig_DSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		give DatabaseConfig
		want string
	}{
		{
			name: "without password",
			give: DatabaseConfig{Host: "localhost", Port: 5432, User: "postgres", Name: "securityagency", SSLMode: "disable"},
			want: "host=localhost port=5432 user=postgres dbname=securityagency sslmode=disable",
		},
		{
			name: "quotes special characters",
			give: DatabaseConfig{Host: "db", Port: 5433, User: "guard house", Name: "agency", SSLMode: "require", Password: `it's a \secret`},
			want: `host=db port=5433 user='guard house' dbname=agency sslmode=require password='it\'s a \\secret'`,
		},
		{
			name: "quotes empty values",
			give: DatabaseConfig{Port: 5432, Name: "agency"},
			want: "host='' port=5432 user='' dbname=agency sslmode=''",
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			assert.Equal(t, tt.want, tt.give.DSN())
		})
	}
}

func TestServerConfig_Addr(t *testing.T) {
	t.Parallel()

	assert.Equal(t, ":5000", ServerConfig{Port: 5000}.Addr())
	assert.Equal(t, "127.0.0.1:8080", ServerConfig{Host: "127.0.0.1", Port: 8080}.Addr())
}

// setupEnvVars sets up the environment variables for the test.
//
// CAUTION: Because this function uses t.Setenv which affects the entire process, tests which call
// this function cannot be run in parallel.
func setupEnvVars(t *testing.T, envVars map[string]string) {
	t.Helper()

	for key, value := range envVars {
		t.Setenv(key, value)
	}
}
