package config

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds the full application configuration loaded from environment variables or .env file.
//
// Example ENV equivalent:
//
//	SERVER_PORT=8080
//	POSTGRES_HOST=localhost
//	TRADES_SOURCE=postgres
//	ASSETS_FILE=./config/assets.yaml
//	REPORT_WINDOW_DAYS=120
//	REPORT_MIN_TRADE_AMOUNT=100000
//	REPORT_MIN_NUM_TRADES=3
//	REPORT_GRACE_PERIOD_DAYS=120
//	REPORT_NEWLY_ADDED=XMR,ETH
//	REPORT_CRON="0 0 6 * * *"
//	LOG_LEVEL=info
type Config struct {
	Server   ServerConfig   // HTTP server configuration
	Postgres PostgresConfig // PostgreSQL connection settings
	Sources  SourcesConfig  // where trades and assets come from
	Report   ReportConfig   // trade activity check parameters
	Log      LogConfig      // logger settings
}

// LogConfig holds the logger settings.
type LogConfig struct {
	Level  string // debug|info|warn|error
	Pretty bool   // console output instead of JSON
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port               string // TCP port the HTTP server listens on (e.g., "8080")
	RateLimitPerMinute int    // requests per client IP per minute
}

// PostgresConfig defines connection details for PostgreSQL.
type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	URL      string // computed DSN
}

// Trade source kinds.
const (
	SourcePostgres = "postgres"
	SourceFile     = "file"
)

// SourcesConfig selects the trade statistics source and the asset registry file.
type SourcesConfig struct {
	Trades     string // SourcePostgres or SourceFile
	TradesDir  string // .csv exports; ingest input and file source
	AssetsFile string // YAML asset registry
}

// ReportConfig holds the activity thresholds and the warm-up settings.
type ReportConfig struct {
	WindowDays     int
	MinTradeAmount int64 // satoshi
	MinNumOfTrades int
	GracePeriod    time.Duration
	NewlyAdded     []string // explicit warm-up override
	Cron           string   // empty disables the schedule
}

// AppConfig is the globally accessible configuration instance.
//
// It is populated once via LoadConfig() and used throughout the application.
var AppConfig Config

// LoadConfig initializes the global AppConfig by reading from .env file
// or directly from environment variables.
//
// Precedence (from lowest to highest):
//  1. Defaults set in this function.
//  2. Values from .env file (if present).
//  3. Environment variables.
//
// Fatal exit:
//   - If required variables are missing or invalid, validateConfig() terminates the app.
func LoadConfig() {
	setDefaults()

	// Optionally read from .env if present (common in local dev)
	viper.SetConfigFile(".env")
	_ = viper.ReadInConfig() // ignore error if no .env

	viper.AutomaticEnv()

	AppConfig = Config{
		Server: ServerConfig{
			Port:               viper.GetString("SERVER_PORT"),
			RateLimitPerMinute: viper.GetInt("RATE_LIMIT_PER_MINUTE"),
		},
		Postgres: PostgresConfig{
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetInt("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Sources: SourcesConfig{
			Trades:     strings.ToLower(viper.GetString("TRADES_SOURCE")),
			TradesDir:  viper.GetString("TRADES_DIR"),
			AssetsFile: viper.GetString("ASSETS_FILE"),
		},
		Report: ReportConfig{
			WindowDays:     viper.GetInt("REPORT_WINDOW_DAYS"),
			MinTradeAmount: viper.GetInt64("REPORT_MIN_TRADE_AMOUNT"),
			MinNumOfTrades: viper.GetInt("REPORT_MIN_NUM_TRADES"),
			GracePeriod:    time.Duration(viper.GetInt("REPORT_GRACE_PERIOD_DAYS")) * 24 * time.Hour,
			NewlyAdded:     splitCodes(viper.GetString("REPORT_NEWLY_ADDED")),
			Cron:           strings.TrimSpace(viper.GetString("REPORT_CRON")),
		},
		Log: LogConfig{
			Level:  viper.GetString("LOG_LEVEL"),
			Pretty: viper.GetBool("LOG_PRETTY"),
		},
	}

	AppConfig.Postgres.URL = AppConfig.Postgres.DSN()

	validateConfig()
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("RATE_LIMIT_PER_MINUTE", 60)

	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", 5432)
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "postgres")
	viper.SetDefault("POSTGRES_DB", "tradeactivity")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")

	viper.SetDefault("TRADES_SOURCE", SourcePostgres)
	viper.SetDefault("TRADES_DIR", "./data/trades")
	viper.SetDefault("ASSETS_FILE", "./config/assets.yaml")

	viper.SetDefault("REPORT_WINDOW_DAYS", 120)
	viper.SetDefault("REPORT_MIN_TRADE_AMOUNT", 100000) // 0.001 BTC
	viper.SetDefault("REPORT_MIN_NUM_TRADES", 3)
	viper.SetDefault("REPORT_GRACE_PERIOD_DAYS", 120)
	viper.SetDefault("REPORT_NEWLY_ADDED", "")
	viper.SetDefault("REPORT_CRON", "")

	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_PRETTY", false)
}

// DSN builds the PostgreSQL connection string used by database/sql.
func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

// splitCodes parses a comma separated list of currency codes.
func splitCodes(s string) []string {
	var out []string
	for _, c := range strings.Split(s, ",") {
		if c = strings.ToUpper(strings.TrimSpace(c)); c != "" {
			out = append(out, c)
		}
	}
	return out
}

// problems lists missing or invalid settings.
func (c Config) problems() []string {
	var missing []string

	if c.Server.Port == "" {
		missing = append(missing, "SERVER_PORT")
	}
	switch c.Sources.Trades {
	case SourcePostgres:
		if c.Postgres.Host == "" {
			missing = append(missing, "POSTGRES_HOST")
		}
		if c.Postgres.Port == 0 {
			missing = append(missing, "POSTGRES_PORT")
		}
		if c.Postgres.User == "" {
			missing = append(missing, "POSTGRES_USER")
		}
		if c.Postgres.Password == "" {
			missing = append(missing, "POSTGRES_PASSWORD")
		}
		if c.Postgres.DBName == "" {
			missing = append(missing, "POSTGRES_DB")
		}
	case SourceFile:
		if c.Sources.TradesDir == "" {
			missing = append(missing, "TRADES_DIR")
		}
	default:
		missing = append(missing, "TRADES_SOURCE (postgres|file)")
	}
	if c.Sources.AssetsFile == "" {
		missing = append(missing, "ASSETS_FILE")
	}
	if c.Report.WindowDays <= 0 {
		missing = append(missing, "REPORT_WINDOW_DAYS (> 0)")
	}
	if c.Report.MinTradeAmount <= 0 {
		missing = append(missing, "REPORT_MIN_TRADE_AMOUNT (> 0)")
	}
	if c.Report.MinNumOfTrades <= 0 {
		missing = append(missing, "REPORT_MIN_NUM_TRADES (> 0)")
	}
	if c.Report.GracePeriod < 0 {
		missing = append(missing, "REPORT_GRACE_PERIOD_DAYS (>= 0)")
	}

	return missing
}

// validateConfig ensures required variables are present and terminates
// the application if they are missing.
func validateConfig() {
	if missing := AppConfig.problems(); len(missing) > 0 {
		log.Fatalf("missing or invalid environment variables: %v\n", missing)
	}
}
