// Package repo is the GORM persistence layer. Functions take the *gorm.DB
// explicitly so services can pass a transaction in its place.
//
// Postgres (Supabase) and MySQL serve deployments; the pure-Go glebarez
// SQLite driver serves local runs and tests.
package repo

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/plugin/opentelemetry/tracing"

	"github.com/tarumenyan/studio-backend/internal/domain"
)

// Open connects to the database selected by driver ("postgres", "mysql" or
// "sqlite"). For sqlite, dsn is a file path.
func Open(driver, dsn string) (*gorm.DB, error) {
	switch driver {
	case "postgres":
		return OpenPostgres(dsn)
	case "mysql":
		return OpenMySQL(dsn)
	case "sqlite":
		return OpenSQLite(dsn)
	default:
		return nil, fmt.Errorf("unsupported db driver %q", driver)
	}
}

// OpenPostgres opens a Postgres connection (e.g. a Supabase connection string).
func OpenPostgres(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN:                  dsn,
		PreferSimpleProtocol: true, // pgbouncer/pooler friendly
	}), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	setPool(db, 20)
	return db, nil
}

// OpenMySQL opens a MySQL connection. parseTime is required so DATETIME
// columns scan into time.Time.
func OpenMySQL(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, err
	}
	setPool(db, 20)
	return db, nil
}

var sqlitePragmas = []string{
	"journal_mode=WAL",
	"synchronous=NORMAL",
	"foreign_keys=ON",
	"busy_timeout=5000",
}

// OpenSQLite opens (or creates) a SQLite database and applies PRAGMAs.
func OpenSQLite(path string) (*gorm.DB, error) {
	// sqlite reports a missing directory as "out of memory (14)"
	if _, err := os.Stat(filepath.Dir(path)); err != nil {
		return nil, fmt.Errorf("sqlite dir: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, err
	}

	for _, p := range sqlitePragmas {
		if err := db.Exec("PRAGMA " + p).Error; err != nil {
			return nil, fmt.Errorf("sqlite pragma %s: %w", p, err)
		}
	}

	setPool(db, 10)
	return db, nil
}

// Instrument registers the OpenTelemetry GORM plugin so every query becomes
// a child span of the request span carried in the statement context.
func Instrument(db *gorm.DB) error {
	return db.Use(tracing.NewPlugin(tracing.WithoutMetrics()))
}

// AutoMigrate creates or updates the schema for all domain models.
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&domain.User{},
		&domain.FAQItem{},
		&domain.GalleryItem{},
		&domain.Package{},
		&domain.Review{},
		&domain.ChatHistoryEntry{},
		&domain.Idempotency{},
	)
}

func setPool(db *gorm.DB, maxOpen int) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.SetMaxOpenConns(maxOpen)
		sqlDB.SetMaxIdleConns(maxOpen)
		sqlDB.SetConnMaxIdleTime(5 * time.Minute)
		sqlDB.SetConnMaxLifetime(30 * time.Minute)
	}
}
