package db

import (
	"fmt"
	"log/slog"
	"time"

	"creditpath-backend/internal/domain/borrower"
	"creditpath-backend/internal/domain/features"
	"creditpath-backend/internal/domain/loan"
	"creditpath-backend/internal/domain/repayment"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
)

type Options struct {
	Driver   string
	DSN      string
	LogLevel logger.LogLevel
}

// Dialector picks the gorm driver for the configured backend.
func Dialector(driver, dsn string) (gorm.Dialector, error) {
	switch driver {
	case DriverSQLite:
		return sqlite.Open(dsn), nil
	case DriverMySQL:
		return mysql.Open(dsn), nil
	case DriverPostgres:
		return postgres.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported db driver %q", driver)
}

func OpenGorm(opts Options) (*gorm.DB, error) {
	dial, err := Dialector(opts.Driver, opts.DSN)
	if err != nil {
		return nil, err
	}
	db, err := openGorm(dial, opts.LogLevel)
	if err != nil {
		return nil, err
	}
	if opts.Driver == DriverSQLite {
		// sqlite serializes writers; one connection avoids SQLITE_BUSY during the rebuild tx
		sqlDB, _ := db.DB()
		sqlDB.SetMaxOpenConns(1)
	}
	slog.Info("gorm: connected", "driver", opts.Driver)
	return db, nil
}

// OpenGormWithDialector opens with a caller-built dialector (tests, custom conns).
func OpenGormWithDialector(dial gorm.Dialector) (*gorm.DB, error) {
	return openGorm(dial, logger.Warn)
}

func openGorm(dial gorm.Dialector, level logger.LogLevel) (*gorm.DB, error) {
	cfg := &gorm.Config{
		Logger: logger.Default.LogMode(level),
		// pinged explicitly below
		DisableAutomaticPing: true,
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
	return db, nil
}

// AutoMigrate creates or updates the four tables.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&borrower.Borrower{},
		&loan.Loan{},
		&repayment.Repayment{},
		&features.LoanFeatures{},
	)
}

// LogLevel maps the app log level onto gorm's logger.
func LogLevel(level string) logger.LogLevel {
	switch level {
	case "debug":
		return logger.Info
	case "error":
		return logger.Error
	case "silent":
		return logger.Silent
	}
	return logger.Warn
}
