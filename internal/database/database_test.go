package database

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/logger"

	"rentledger/internal/config"
	"rentledger/internal/logging"
)

func TestOpen_SQLiteWhenNoDatabaseURL(t *testing.T) {
	cfg := &config.Config{
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
		DBLogLevel: "silent",
	}

	db, err := Open(cfg, logging.Discard())
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	assert.Equal(t, "sqlite", db.Dialector.Name())
	assert.NoError(t, sqlDB.Ping())
}

func TestOpen_SQLLogsGoThroughLogrus(t *testing.T) {
	cfg := &config.Config{
		SQLitePath: filepath.Join(t.TempDir(), "test.db"),
		DBLogLevel: "info",
	}
	var buf bytes.Buffer
	log := logrus.New()
	log.SetOutput(&buf)

	db, err := Open(cfg, log)
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	defer sqlDB.Close()

	require.NoError(t, db.Exec("SELECT 42").Error)
	assert.Contains(t, buf.String(), "SELECT 42")
	assert.Contains(t, buf.String(), "component=gorm")
}

func TestParseLogLevel(t *testing.T) {
	assert.Equal(t, logger.Silent, ParseLogLevel("silent"))
	assert.Equal(t, logger.Error, ParseLogLevel("ERROR"))
	assert.Equal(t, logger.Info, ParseLogLevel("info"))
	assert.Equal(t, logger.Warn, ParseLogLevel(""))
	assert.Equal(t, logger.Warn, ParseLogLevel("bogus"))
}
