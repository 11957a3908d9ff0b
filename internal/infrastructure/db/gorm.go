package db

import (
	"fmt"
	"log/slog"
	"time"

	"lending-ledger-backend/internal/config"
	"lending-ledger-backend/internal/domain/lending"
	"lending-ledger-backend/internal/domain/user"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the driver named by DB_DRIVER.
func Dialector(c *config.Config) (gorm.Dialector, error) {
	switch c.DBDriver {
	case config.DriverMySQL:
		return mysql.Open(c.MySQLDSN()), nil
	case config.DriverSQLite:
		return sqlite.Open(c.SQLitePath), nil
	default:
		return nil, fmt.Errorf("unsupported db driver %q", c.DBDriver)
	}
}

func OpenGorm(c *config.Config) (*gorm.DB, error) {
	dial, err := Dialector(c)
	if err != nil {
		return nil, err
	}
	level := logger.Warn
	if c.IsDevelopment() {
		level = logger.Info
	}
	return OpenGormWithDialector(dial, level)
}

// OpenGormWithDialector opens, tunes the pool and pings. Unique-key
// violations are translated to gorm.ErrDuplicatedKey.
func OpenGormWithDialector(dial gorm.Dialector, level ...logger.LogLevel) (*gorm.DB, error) {
	lvl := logger.Warn
	if len(level) > 0 {
		lvl = level[0]
	}
	cfg := &gorm.Config{
		Logger:         logger.Default.LogMode(lvl),
		TranslateError: true,
		NowFunc:        func() time.Time { return time.Now().UTC() },
	}
	db, err := gorm.Open(dial, cfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(30)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)
	sqlDB.SetConnMaxIdleTime(10 * time.Minute)

	if err := sqlDB.Ping(); err != nil {
		return nil, err
	}
	slog.Info("gorm: connected", slog.String("dialect", dial.Name()))
	return db, nil
}

func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(&lending.Record{}, &user.User{})
}
