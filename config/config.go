package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rustyeddy/tradejournal/analytics"
	"go.uber.org/zap/zapcore"
	"gopkg.in/yaml.v3"
)

// Config represents the complete tradejournal configuration
type Config struct {
	Journal JournalConfig `json:"journal" yaml:"journal"`
	Report  ReportConfig  `json:"report" yaml:"report"`
	Server  ServerConfig  `json:"server" yaml:"server"`
	Log     LogConfig     `json:"log" yaml:"log"`
}

// JournalConfig selects where trades are stored
type JournalConfig struct {
	Type    string `json:"type" yaml:"type"` // "sqlite", "postgres" or "csv"
	DBPath  string `json:"db_path,omitempty" yaml:"db_path,omitempty"`
	DSN     string `json:"dsn,omitempty" yaml:"dsn,omitempty"`
	CSVPath string `json:"csv_path,omitempty" yaml:"csv_path,omitempty"`
}

// ReportConfig holds analytics defaults
type ReportConfig struct {
	Period        string `json:"period" yaml:"period"`
	Timezone      string `json:"timezone" yaml:"timezone"`     // IANA name, "Local" or "UTC"
	WeekStart     string `json:"week_start" yaml:"week_start"` // e.g. "sunday"
	TopStrategies int    `json:"top_strategies" yaml:"top_strategies"`
}

type ServerConfig struct {
	Addr string `json:"addr" yaml:"addr"`
}

type LogConfig struct {
	Level       string `json:"level" yaml:"level"`
	Encoding    string `json:"encoding" yaml:"encoding"` // "console" or "json"
	Development bool   `json:"development" yaml:"development"`
}

// LoadFromFile loads configuration from a file (YAML, falling back to JSON).
// Keys missing from the file keep their Default values, and TJ_* environment
// variables (optionally from a .env file) override both.
func LoadFromFile(path string) (*Config, error) {
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		cfg = Default()
		if jerr := json.Unmarshal(data, cfg); jerr != nil {
			return nil, fmt.Errorf("parse config (tried YAML and JSON): %w", jerr)
		}
	}

	if err := cfg.ApplyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

// Load is LoadFromFile, except that a missing file yields the defaults with
// environment overrides applied.
func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		_ = godotenv.Load()

		cfg := Default()
		if err := cfg.ApplyEnv(); err != nil {
			return nil, err
		}
		if err := cfg.Validate(); err != nil {
			return nil, fmt.Errorf("invalid config: %w", err)
		}
		return cfg, nil
	}
	return LoadFromFile(path)
}

// SaveToFile saves configuration to a file (JSON or YAML based on extension)
func (c *Config) SaveToFile(path string) error {
	var (
		data []byte
		err  error
	)
	if strings.HasSuffix(path, ".yaml") || strings.HasSuffix(path, ".yml") {
		data, err = yaml.Marshal(c)
	} else {
		data, err = json.MarshalIndent(c, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}

// ApplyEnv overrides fields from TJ_* environment variables.
func (c *Config) ApplyEnv() error {
	str := map[string]*string{
		"TJ_JOURNAL_TYPE": &c.Journal.Type,
		"TJ_DB_PATH":      &c.Journal.DBPath,
		"TJ_DSN":          &c.Journal.DSN,
		"TJ_CSV_PATH":     &c.Journal.CSVPath,
		"TJ_PERIOD":       &c.Report.Period,
		"TJ_TIMEZONE":     &c.Report.Timezone,
		"TJ_WEEK_START":   &c.Report.WeekStart,
		"TJ_ADDR":         &c.Server.Addr,
		"TJ_LOG_LEVEL":    &c.Log.Level,
		"TJ_LOG_ENCODING": &c.Log.Encoding,
	}
	for key, dst := range str {
		if val := os.Getenv(key); val != "" {
			*dst = val
		}
	}

	if val := os.Getenv("PORT"); val != "" {
		c.Server.Addr = ":" + val
	}
	if val := os.Getenv("TJ_TOP_STRATEGIES"); val != "" {
		n, err := strconv.Atoi(val)
		if err != nil {
			return fmt.Errorf("TJ_TOP_STRATEGIES: %w", err)
		}
		c.Report.TopStrategies = n
	}
	if val := os.Getenv("TJ_LOG_DEVELOPMENT"); val != "" {
		b, err := strconv.ParseBool(val)
		if err != nil {
			return fmt.Errorf("TJ_LOG_DEVELOPMENT: %w", err)
		}
		c.Log.Development = b
	}
	return nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	switch c.Journal.Type {
	case "sqlite":
		if c.Journal.DBPath == "" {
			return fmt.Errorf("journal db_path required for sqlite type")
		}
	case "postgres":
		if c.Journal.DSN == "" {
			return fmt.Errorf("journal dsn required for postgres type")
		}
	case "csv":
		if c.Journal.CSVPath == "" {
			return fmt.Errorf("journal csv_path required for csv type")
		}
	default:
		return fmt.Errorf("journal.type must be 'sqlite', 'postgres' or 'csv'")
	}

	if !analytics.ValidPeriod(c.Report.Period) {
		return fmt.Errorf("report.period must be one of all, week, month, quarter, year")
	}
	if _, err := c.Report.Location(); err != nil {
		return err
	}
	if _, ok := analytics.ParseWeekday(c.Report.WeekStart); !ok {
		return fmt.Errorf("report.week_start %q is not a weekday", c.Report.WeekStart)
	}
	if c.Report.TopStrategies < 0 {
		return fmt.Errorf("report.top_strategies must not be negative")
	}

	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}

	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	if c.Log.Encoding != "console" && c.Log.Encoding != "json" {
		return fmt.Errorf("log.encoding must be 'console' or 'json'")
	}
	return nil
}

// Location resolves the report timezone. An empty value means UTC.
func (r ReportConfig) Location() (*time.Location, error) {
	if r.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(r.Timezone)
	if err != nil {
		return nil, fmt.Errorf("report.timezone: %w", err)
	}
	return loc, nil
}

// Calendar builds the analytics calendar described by the report section.
func (r ReportConfig) Calendar() (analytics.Calendar, error) {
	loc, err := r.Location()
	if err != nil {
		return analytics.Calendar{}, err
	}
	ws, ok := analytics.ParseWeekday(r.WeekStart)
	if !ok {
		return analytics.Calendar{}, fmt.Errorf("report.week_start %q is not a weekday", r.WeekStart)
	}
	return analytics.Calendar{Location: loc, WeekStart: ws}, nil
}

// Default returns a configuration with sensible defaults
func Default() *Config {
	return &Config{
		Journal: JournalConfig{
			Type:   "sqlite",
			DBPath: "./tradejournal.db",
		},
		Report: ReportConfig{
			Period:        "all",
			Timezone:      "Local",
			WeekStart:     "sunday",
			TopStrategies: 5,
		},
		Server: ServerConfig{
			Addr: ":8080",
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "console",
		},
	}
}
