package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"TJ_JOURNAL_TYPE", "TJ_DB_PATH", "TJ_DSN", "TJ_CSV_PATH",
	"TJ_PERIOD", "TJ_TIMEZONE", "TJ_WEEK_START", "TJ_TOP_STRATEGIES",
	"TJ_ADDR", "PORT", "TJ_LOG_LEVEL", "TJ_LOG_ENCODING", "TJ_LOG_DEVELOPMENT",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.NotNil(t, cfg)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, "all", cfg.Report.Period)
	assert.Equal(t, 5, cfg.Report.TopStrategies)
	assert.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	with := func(mod func(c *Config)) *Config {
		c := Default()
		mod(c)
		return c
	}

	tests := []struct {
		name    string
		config  *Config
		wantErr bool
		errMsg  string
	}{
		{
			name:   "valid config",
			config: Default(),
		},
		{
			name:    "unknown journal type",
			config:  with(func(c *Config) { c.Journal.Type = "mongo" }),
			wantErr: true,
			errMsg:  "journal.type must be",
		},
		{
			name:    "sqlite without path",
			config:  with(func(c *Config) { c.Journal.DBPath = "" }),
			wantErr: true,
			errMsg:  "db_path required",
		},
		{
			name:    "postgres without dsn",
			config:  with(func(c *Config) { c.Journal.Type = "postgres" }),
			wantErr: true,
			errMsg:  "dsn required",
		},
		{
			name: "postgres with dsn",
			config: with(func(c *Config) {
				c.Journal.Type = "postgres"
				c.Journal.DSN = "postgres://localhost/journal?sslmode=disable"
			}),
		},
		{
			name:    "csv without path",
			config:  with(func(c *Config) { c.Journal.Type = "csv" }),
			wantErr: true,
			errMsg:  "csv_path required",
		},
		{
			name:    "bad period",
			config:  with(func(c *Config) { c.Report.Period = "fortnight" }),
			wantErr: true,
			errMsg:  "report.period",
		},
		{
			name:    "bad timezone",
			config:  with(func(c *Config) { c.Report.Timezone = "Mars/Olympus" }),
			wantErr: true,
			errMsg:  "report.timezone",
		},
		{
			name:    "bad week start",
			config:  with(func(c *Config) { c.Report.WeekStart = "someday" }),
			wantErr: true,
			errMsg:  "report.week_start",
		},
		{
			name:    "negative top strategies",
			config:  with(func(c *Config) { c.Report.TopStrategies = -1 }),
			wantErr: true,
			errMsg:  "report.top_strategies",
		},
		{
			name:    "missing addr",
			config:  with(func(c *Config) { c.Server.Addr = "" }),
			wantErr: true,
			errMsg:  "server.addr",
		},
		{
			name:    "bad log level",
			config:  with(func(c *Config) { c.Log.Level = "loud" }),
			wantErr: true,
			errMsg:  "log.level",
		},
		{
			name:    "bad log encoding",
			config:  with(func(c *Config) { c.Log.Encoding = "xml" }),
			wantErr: true,
			errMsg:  "log.encoding",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestSaveAndLoad(t *testing.T) {
	clearEnv(t)
	tmpDir := t.TempDir()

	for _, ext := range []string{".json", ".yaml"} {
		t.Run(ext, func(t *testing.T) {
			cfg := Default()
			cfg.Journal.Type = "csv"
			cfg.Journal.CSVPath = "trades.csv"
			cfg.Report.Period = "month"
			path := filepath.Join(tmpDir, "test"+ext)

			require.NoError(t, cfg.SaveToFile(path))

			loaded, err := LoadFromFile(path)
			require.NoError(t, err)
			assert.Equal(t, cfg, loaded)
		})
	}
}

func TestLoadPartialFileKeepsDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "tj.yaml")
	require.NoError(t, os.WriteFile(path, []byte("report:\n  period: week\n  week_start: monday\n"), 0644))

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, "week", cfg.Report.Period)
	assert.Equal(t, "monday", cfg.Report.WeekStart)
	assert.Equal(t, "sqlite", cfg.Journal.Type)
	assert.Equal(t, ":8080", cfg.Server.Addr)
}

func TestLoadEnvOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("TJ_JOURNAL_TYPE", "postgres")
	t.Setenv("TJ_DSN", "postgres://db/journal")
	t.Setenv("TJ_TOP_STRATEGIES", "3")
	t.Setenv("PORT", "9090")
	t.Setenv("TJ_LOG_DEVELOPMENT", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.Journal.Type)
	assert.Equal(t, "postgres://db/journal", cfg.Journal.DSN)
	assert.Equal(t, 3, cfg.Report.TopStrategies)
	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.True(t, cfg.Log.Development)
}

func TestLoadEnvOverrideInvalid(t *testing.T) {
	clearEnv(t)
	t.Setenv("TJ_TOP_STRATEGIES", "many")

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorContains(t, err, "TJ_TOP_STRATEGIES")
}

func TestLoadInvalidFile(t *testing.T) {
	_, err := LoadFromFile("/nonexistent/path.yaml")
	assert.Error(t, err)

	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("journal: [not, a, map"), 0644))
	_, err = LoadFromFile(path)
	assert.Error(t, err)
}

func TestReportCalendar(t *testing.T) {
	cal, err := ReportConfig{Timezone: "UTC", WeekStart: "Mon"}.Calendar()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, cal.Location)
	assert.Equal(t, time.Monday, cal.WeekStart)

	cal, err = ReportConfig{WeekStart: "sunday"}.Calendar()
	require.NoError(t, err)
	assert.Equal(t, time.UTC, cal.Location)

	_, err = ReportConfig{Timezone: "Nowhere/Special", WeekStart: "sunday"}.Calendar()
	assert.Error(t, err)
	_, err = ReportConfig{WeekStart: "x"}.Calendar()
	assert.Error(t, err)
}
