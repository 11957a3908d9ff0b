package mysql

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"lending-ledger-backend/internal/domain/lending"
	"lending-ledger-backend/internal/domain/user"
	"lending-ledger-backend/pkg/id"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB creates a private in-memory sqlite DB with the domain schema.
// One connection keeps every statement on the same in-memory database.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	if err := db.AutoMigrate(&lending.Record{}, &user.User{}); err != nil {
		t.Fatalf("auto-migrate: %v", err)
	}
	return db
}

func day(s string) time.Time {
	d, err := time.Parse(time.DateOnly, s)
	if err != nil {
		panic(err)
	}
	return d
}

// makeRecord goes through the domain constructor so derived fields are consistent.
func makeRecord(t *testing.T, name string, amount, rate int64, start, renewal time.Time) *lending.Record {
	t.Helper()
	r, err := lending.NewRecord(id.NewID32(), "creator0000000000000000000000000", lending.Draft{
		Name:           name,
		Amount:         decimal.NewFromInt(amount),
		RateOfInterest: decimal.NewFromInt(rate),
		StartDate:      start,
		RenewalDate:    renewal,
	})
	if err != nil {
		t.Fatalf("NewRecord(%s): %v", name, err)
	}
	return r
}

func makeUser(username, email, phone string) *user.User {
	return &user.User{
		UserID:       id.NewID32(),
		Username:     username,
		Email:        email,
		Phone:        phone,
		PasswordHash: "$2a$04$hash",
		Status:       user.StatusActive,
	}
}
