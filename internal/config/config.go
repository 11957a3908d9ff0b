package config

import (
	"errors"
	"fmt"
	"log/slog"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	minProductionSecretLen = 16
)

type Config struct {
	AppPort  string
	AppEnv   string
	LogLevel slog.Level

	DBDriver   string
	MySQLHost  string
	MySQLPort  string
	MySQLDB    string
	MySQLUser  string
	MySQLPass  string
	SQLitePath string

	RedisAddr string
	RedisDB   int

	IdempTTLSecs        int
	SummaryCacheTTLSecs int

	JWTSecret       string
	TokenTTL        time.Duration
	BcryptCost      int
	LoginRatePerMin int
}

func getenv(k, d string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return d
}

func getenvInt(k string, d int) int {
	if v := os.Getenv(k); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return d
}

// Load reads the process environment, filling gaps from a local .env file
// when one exists. APP_ENV defaults to production; development behaviour
// must be asked for.
func Load() *Config {
	_ = godotenv.Load()

	c := &Config{
		AppPort:  getenv("APP_PORT", "8080"),
		AppEnv:   getenv("APP_ENV", EnvProduction),
		LogLevel: parseLevel(getenv("LOG_LEVEL", "info")),

		DBDriver:   strings.ToLower(getenv("DB_DRIVER", DriverMySQL)),
		MySQLHost:  getenv("MYSQL_HOST", "mysql"),
		MySQLPort:  getenv("MYSQL_PORT", "3306"),
		MySQLDB:    getenv("MYSQL_DB", "lending"),
		MySQLUser:  getenv("MYSQL_USER", "lending"),
		MySQLPass:  getenv("MYSQL_PASS", "lending"),
		SQLitePath: getenv("SQLITE_PATH", "lending.db"),

		RedisAddr: getenv("REDIS_ADDR", "redis:6379"),
		RedisDB:   getenvInt("REDIS_DB", 0),

		IdempTTLSecs:        getenvInt("IDEMPOTENCY_TTL_SECONDS", 300),
		SummaryCacheTTLSecs: getenvInt("SUMMARY_CACHE_TTL_SECONDS", 30),

		JWTSecret:       os.Getenv("JWT_SECRET"),
		TokenTTL:        time.Duration(getenvInt("TOKEN_TTL_HOURS", 24)) * time.Hour,
		BcryptCost:      getenvInt("BCRYPT_COST", 10),
		LoginRatePerMin: getenvInt("LOGIN_RATE_PER_MIN", 10),
	}
	return c
}

func parseLevel(s string) slog.Level {
	var l slog.Level
	if err := l.UnmarshalText([]byte(s)); err != nil {
		return slog.LevelInfo
	}
	return l
}

func (c *Config) IsDevelopment() bool { return c.AppEnv == EnvDevelopment }

func (c *Config) Validate() error {
	if c.AppPort == "" {
		return errors.New("missing APP_PORT")
	}
	switch c.DBDriver {
	case DriverMySQL:
		if c.MySQLHost == "" || c.MySQLPort == "" || c.MySQLDB == "" || c.MySQLUser == "" {
			return errors.New("missing MySQL config (MYSQL_HOST/PORT/DB/USER)")
		}
		// ensure port is valid
		if _, err := net.LookupPort("tcp", c.MySQLPort); err != nil {
			return fmt.Errorf("invalid MYSQL_PORT %q: %w", c.MySQLPort, err)
		}
	case DriverSQLite:
		if c.SQLitePath == "" {
			return errors.New("missing SQLITE_PATH")
		}
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q (want mysql or sqlite)", c.DBDriver)
	}
	if c.JWTSecret == "" {
		return errors.New("missing JWT_SECRET")
	}
	if !c.IsDevelopment() && len(c.JWTSecret) < minProductionSecretLen {
		return fmt.Errorf("JWT_SECRET must be at least %d characters outside development", minProductionSecretLen)
	}
	if c.TokenTTL <= 0 {
		return errors.New("TOKEN_TTL_HOURS must be positive")
	}
	if c.LoginRatePerMin <= 0 {
		return errors.New("LOGIN_RATE_PER_MIN must be positive")
	}
	return nil
}

func (c *Config) mysqlAddr() string { return net.JoinHostPort(c.MySQLHost, c.MySQLPort) }

func (c *Config) MySQLDSN() string {
	// parseTime needed for DATETIME; loc=UTC keeps date-only values stable
	return fmt.Sprintf("%s:%s@tcp(%s)/%s?parseTime=true&loc=UTC&charset=utf8mb4,utf8",
		c.MySQLUser, c.MySQLPass, c.mysqlAddr(), c.MySQLDB)
}

func (c *Config) IdempotencyTTL() time.Duration {
	return time.Duration(c.IdempTTLSecs) * time.Second
}

func (c *Config) SummaryCacheTTL() time.Duration {
	return time.Duration(c.SummaryCacheTTLSecs) * time.Second
}
