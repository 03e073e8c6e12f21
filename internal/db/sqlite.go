package db

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hogwarts/school/internal/pkg/logger"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// InMemorySQLite opens a private in-memory database instead of a file
const InMemorySQLite = ":memory:"

// SQLiteDB wraps a GORM handle over a SQLite database
type SQLiteDB struct {
	DB *gorm.DB
}

// NewSQLiteDB opens the SQLite database at path, creating its directory if needed
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	dsn := "file::memory:?_foreign_keys=on"
	if path != InMemorySQLite {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn = path + "?_foreign_keys=on"
	}

	gormLog := logger.With("component", "gorm")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.New(&gormLog, gormlogger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormlogger.Warn,
			IgnoreRecordNotFoundError: true,
		}),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql handle: %w", err)
	}
	// SQLite serialises writers anyway; one connection also keeps an
	// in-memory database alive for the lifetime of the handle.
	sqlDB.SetMaxOpenConns(1)

	return &SQLiteDB{DB: db}, nil
}

// Close closes the underlying connection
func (d *SQLiteDB) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
