package db

import (
	"errors"
	"testing"

	"lending-ledger-backend/internal/config"

	"github.com/DATA-DOG/go-sqlmock"
	"gorm.io/driver/mysql"
)

func TestOpenGormWithDialector_Success(t *testing.T) {
	sqlDB, mock, err := sqlmock.New() // pings are not monitored, so gorm's own ping passes too
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true, // don't query @@version
	})

	gdb, err := OpenGormWithDialector(dial)
	if err != nil {
		t.Fatalf("OpenGormWithDialector error: %v", err)
	}
	if gdb == nil {
		t.Fatalf("got nil gorm.DB")
	}
	if !gdb.Config.TranslateError {
		t.Fatalf("TranslateError must be enabled")
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenGormWithDialector_PingFails(t *testing.T) {
	sqlDB, mock, err := sqlmock.New(sqlmock.MonitorPingsOption(true))
	if err != nil {
		t.Fatalf("sqlmock.New: %v", err)
	}
	defer sqlDB.Close()

	mock.ExpectPing().WillReturnError(errors.New("no ping"))

	dial := mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	})

	gdb, err := OpenGormWithDialector(dial)
	if err == nil {
		t.Fatalf("expected error, got nil (gdb=%v)", gdb)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Fatalf("unmet expectations: %v", err)
	}
}

func TestOpenGorm_SQLiteMigrates(t *testing.T) {
	c := &config.Config{AppEnv: config.EnvProduction, DBDriver: config.DriverSQLite, SQLitePath: "file::memory:?cache=shared"}
	gdb, err := OpenGorm(c)
	if err != nil {
		t.Fatalf("OpenGorm: %v", err)
	}
	sqlDB, _ := gdb.DB()
	defer sqlDB.Close()

	if err := Migrate(gdb); err != nil {
		t.Fatalf("Migrate: %v", err)
	}
	for _, table := range []string{"lending_records", "users"} {
		if !gdb.Migrator().HasTable(table) {
			t.Fatalf("table %s missing after migrate", table)
		}
	}
}

func TestDialector(t *testing.T) {
	if d, err := Dialector(&config.Config{DBDriver: config.DriverSQLite, SQLitePath: "x.db"}); err != nil || d.Name() != "sqlite" {
		t.Fatalf("sqlite dialector: %v %v", d, err)
	}
	if d, err := Dialector(&config.Config{DBDriver: config.DriverMySQL}); err != nil || d.Name() != "mysql" {
		t.Fatalf("mysql dialector: %v %v", d, err)
	}
	if _, err := Dialector(&config.Config{DBDriver: "oracle"}); err == nil {
		t.Fatal("expected error for unsupported driver")
	}
}
