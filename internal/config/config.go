package config

import (
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	AppPort string
	AppEnv  string

	LogLevel  string
	LogFormat string

	DBDriver   string
	SQLitePath string

	MySQLHost string
	MySQLPort string
	MySQLDB   string
	MySQLUser string
	MySQLPass string

	PostgresDSN string

	// Empty RedisAddr disables the stats cache and idempotent replay.
	RedisAddr string
	RedisDB   int

	IdempTTLSecs      int
	StatsCacheTTLSecs int

	ModelPath  string
	StaticDir  string
	DataDir    string
	ExportPath string

	IngestChunkSize int

	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

func defaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8001")
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "text")

	v.SetDefault("DB_DRIVER", "sqlite")
	v.SetDefault("SQLITE_PATH", "creditpath.db")
	v.SetDefault("MYSQL_HOST", "mysql")
	v.SetDefault("MYSQL_PORT", "3306")
	v.SetDefault("MYSQL_DB", "creditpath")
	v.SetDefault("MYSQL_USER", "creditpath")
	v.SetDefault("MYSQL_PASS", "creditpath")
	v.SetDefault("POSTGRES_DSN", "host=localhost port=5432 user=creditpath password=creditpath dbname=creditpath sslmode=disable")

	v.SetDefault("REDIS_ADDR", "")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("IDEMPOTENCY_TTL_SECONDS", 300)
	v.SetDefault("STATS_CACHE_TTL_SECONDS", 60)

	v.SetDefault("MODEL_PATH", "artifacts/best_model.json")
	v.SetDefault("STATIC_DIR", "frontend")
	v.SetDefault("DATA_DIR", "data/raw")
	v.SetDefault("EXPORT_PATH", "data/processed/training_data.csv")
	v.SetDefault("INGEST_CHUNK_SIZE", 1000)

	v.SetDefault("HTTP_READ_TIMEOUT", "15s")
	v.SetDefault("HTTP_WRITE_TIMEOUT", "30s")
	v.SetDefault("SHUTDOWN_TIMEOUT", "10s")
}

// Load reads environment variables, plus CONFIG_FILE when set (any format
// viper understands). Environment wins over the file.
func Load() (*Config, error) {
	v := viper.New()
	defaults(v)
	v.AutomaticEnv()

	if file := v.GetString("CONFIG_FILE"); file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config file %s: %w", file, err)
		}
	}

	c := &Config{
		AppPort:   v.GetString("APP_PORT"),
		AppEnv:    v.GetString("APP_ENV"),
		LogLevel:  strings.ToLower(v.GetString("LOG_LEVEL")),
		LogFormat: strings.ToLower(v.GetString("LOG_FORMAT")),

		DBDriver:   strings.ToLower(v.GetString("DB_DRIVER")),
		SQLitePath: v.GetString("SQLITE_PATH"),
		MySQLHost:  v.GetString("MYSQL_HOST"),
		MySQLPort:  v.GetString("MYSQL_PORT"),
		MySQLDB:    v.GetString("MYSQL_DB"),
		MySQLUser:  v.GetString("MYSQL_USER"),
		MySQLPass:  v.GetString("MYSQL_PASS"),

		PostgresDSN: v.GetString("POSTGRES_DSN"),

		RedisAddr: v.GetString("REDIS_ADDR"),
		RedisDB:   v.GetInt("REDIS_DB"),

		IdempTTLSecs:      v.GetInt("IDEMPOTENCY_TTL_SECONDS"),
		StatsCacheTTLSecs: v.GetInt("STATS_CACHE_TTL_SECONDS"),

		ModelPath:  v.GetString("MODEL_PATH"),
		StaticDir:  v.GetString("STATIC_DIR"),
		DataDir:    v.GetString("DATA_DIR"),
		ExportPath: v.GetString("EXPORT_PATH"),

		IngestChunkSize: v.GetInt("INGEST_CHUNK_SIZE"),

		ReadTimeout:     v.GetDuration("HTTP_READ_TIMEOUT"),
		WriteTimeout:    v.GetDuration("HTTP_WRITE_TIMEOUT"),
		ShutdownTimeout: v.GetDuration("SHUTDOWN_TIMEOUT"),
	}
	return c, nil
}

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	if _, err := net.LookupPort("tcp", c.AppPort); err != nil {
		return fmt.Errorf("invalid APP_PORT %q: %w", c.AppPort, err)
	}
	switch c.DBDriver {
	case "sqlite":
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	case "mysql":
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case "postgres":
		if c.PostgresDSN == "" {
			return errors.New("missing POSTGRES_DSN")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (sqlite, mysql, postgres)", c.DBDriver)
	}
	if c.IngestChunkSize <= 0 {
		return fmt.Errorf("INGEST_CHUNK_SIZE must be > 0, got %d", c.IngestChunkSize)
	}
	if c.IdempTTLSecs <= 0 || c.StatsCacheTTLSecs <= 0 {
		return errors.New("IDEMPOTENCY_TTL_SECONDS and STATS_CACHE_TTL_SECONDS must be > 0")
	}
	return nil
}

// DSN returns the connection string for the configured driver.
func (c *Config) DSN() string {
	switch c.DBDriver {
	case "mysql":
		return c.MySQLDSN()
	case "postgres":
		return c.PostgresDSN
	}
	return c.SQLitePath
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

func (c *Config) StatsCacheTTL() time.Duration {
	return time.Duration(c.StatsCacheTTLSecs) * time.Second
}
