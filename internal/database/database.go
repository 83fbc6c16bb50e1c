// Package database opens the gorm connection selected by configuration.
package database

import (
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"rentledger/internal/config"
)

// Open connects to postgres when DATABASE_URL is set and to the sqlite file at
// SQLITE_PATH otherwise.
func Open(cfg *config.Config, log logrus.FieldLogger) (*gorm.DB, error) {
	var dialector gorm.Dialector
	target := cfg.SQLitePath
	if cfg.UsesPostgres() {
		dialector = postgres.Open(cfg.DatabaseURL)
		target = "postgres"
	} else {
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: NewLogger(log, ParseLogLevel(cfg.DBLogLevel)),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	log.WithField("driver", dialector.Name()).Debugf("connected to %s", target)
	return db, nil
}

// NewLogger routes gorm's SQL and error logging through log, so database
// output shares the application's sink and format.
func NewLogger(log logrus.FieldLogger, level logger.LogLevel) logger.Interface {
	return logger.New(log.WithField("component", "gorm"), logger.Config{
		SlowThreshold:             200 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
		Colorful:                  false,
	})
}

// ParseLogLevel maps DB_LOG_LEVEL to a gorm log level, defaulting to warn.
func ParseLogLevel(s string) logger.LogLevel {
	switch strings.ToLower(s) {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	default:
		return logger.Warn
	}
}
