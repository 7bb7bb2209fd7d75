package database

import (
	"fmt"
	"log"
	"os"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// DefaultPath is used when DB_PATH is not set.
const DefaultPath = "electric_shop.db"

// Connect opens the SQLite database file and returns the handle together
// with a close function. The handle is a process-wide resource: open it
// once at startup and make sure the close function runs on every exit
// path.
func Connect(path string) (*gorm.DB, func() error, error) {
	if path == "" {
		path = DefaultPath
	}

	// busy_timeout keeps a second statement from failing immediately when
	// the single writer still holds the file.
	dsn := fmt.Sprintf("file:%s?_busy_timeout=5000", path)

	newLogger := logger.New(
		log.New(os.Stdout, "\r\n", log.LstdFlags),
		logger.Config{
			SlowThreshold:             time.Second,
			LogLevel:                  logger.Warn,
			IgnoreRecordNotFoundError: true,
			Colorful:                  true,
		},
	)

	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: newLogger,
	})
	if err != nil {
		return nil, nil, fmt.Errorf("open sqlite database %q: %w", path, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, nil, fmt.Errorf("unwrap sql.DB: %w", err)
	}
	// SQLite allows a single writer; more connections only produce
	// SQLITE_BUSY churn.
	sqlDB.SetMaxOpenConns(1)

	log.Println("Database connection established:", path)
	return db, sqlDB.Close, nil
}
