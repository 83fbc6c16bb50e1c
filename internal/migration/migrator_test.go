package migration_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"rentledger/internal/migration"
)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open("file:"+t.Name()+"?mode=memory&cache=shared"), &gorm.Config{})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func tableMigration(version, table string) *migration.Migration {
	return &migration.Migration{
		Version: version,
		Name:    "create_" + table,
		Up: func(db *gorm.DB) error {
			return db.Exec("CREATE TABLE " + table + " (id INTEGER PRIMARY KEY)").Error
		},
		Down: func(db *gorm.DB) error {
			return db.Exec("DROP TABLE " + table).Error
		},
	}
}

func tableCount(t *testing.T, db *gorm.DB, table string) int64 {
	var count int64
	err := db.Raw("SELECT count(*) FROM sqlite_master WHERE type='table' AND name=?", table).Scan(&count).Error
	require.NoError(t, err)
	return count
}

func TestMigrator_Up(t *testing.T) {
	db := setupTestDB(t)
	migrator := migration.NewMigrator(db, tableMigration("20240315000001", "test"))

	applied, err := migrator.Up()
	require.NoError(t, err)
	assert.Len(t, applied, 1)

	var record migration.MigrationRecord
	err = db.Where("version = ?", "20240315000001").First(&record).Error
	assert.NoError(t, err)
	assert.Equal(t, "create_test", record.Name)
	assert.Equal(t, int64(1), tableCount(t, db, "test"))

	// second run is a no-op
	applied, err = migrator.Up()
	require.NoError(t, err)
	assert.Empty(t, applied)
}

func TestMigrator_UpOrdersByVersion(t *testing.T) {
	db := setupTestDB(t)
	migrator := migration.NewMigrator(db,
		tableMigration("20240315000002", "second"),
		tableMigration("20240315000001", "first"),
	)

	applied, err := migrator.Up()
	require.NoError(t, err)
	require.Len(t, applied, 2)
	assert.Equal(t, "create_first", applied[0].Name)
	assert.Equal(t, "create_second", applied[1].Name)
}

func TestMigrator_UpRollsBackFailedMigration(t *testing.T) {
	db := setupTestDB(t)
	broken := &migration.Migration{
		Version: "20240315000002",
		Name:    "broken",
		Up: func(db *gorm.DB) error {
			return db.Exec("CREATE TABLE (").Error
		},
		Down: func(db *gorm.DB) error { return nil },
	}
	migrator := migration.NewMigrator(db, tableMigration("20240315000001", "test"), broken)

	applied, err := migrator.Up()
	assert.Error(t, err)
	assert.Len(t, applied, 1)

	pending, err := migrator.Pending()
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, "broken", pending[0].Name)
}

func TestMigrator_Down(t *testing.T) {
	db := setupTestDB(t)
	migrator := migration.NewMigrator(db, tableMigration("20240315000001", "test"))

	_, err := migrator.Up()
	require.NoError(t, err)

	reverted, err := migrator.Down()
	require.NoError(t, err)
	require.NotNil(t, reverted)
	assert.Equal(t, "create_test", reverted.Name)

	var record migration.MigrationRecord
	err = db.Where("version = ?", "20240315000001").First(&record).Error
	assert.Error(t, err)
	assert.Equal(t, int64(0), tableCount(t, db, "test"))

	reverted, err = migrator.Down()
	require.NoError(t, err)
	assert.Nil(t, reverted)
}

func TestMigrator_StatusAndHistory(t *testing.T) {
	db := setupTestDB(t)
	migrator := migration.NewMigrator(db, tableMigration("20240315000001", "one"))
	migrator.Register(tableMigration("20240315000002", "two"))

	statuses, err := migrator.Status()
	require.NoError(t, err)
	require.Len(t, statuses, 2)
	assert.False(t, statuses[0].Applied)

	_, err = migrator.Up()
	require.NoError(t, err)

	statuses, err = migrator.Status()
	require.NoError(t, err)
	assert.True(t, statuses[0].Applied)
	assert.True(t, statuses[1].Applied)

	history, err := migrator.History()
	require.NoError(t, err)
	assert.Len(t, history, 2)
}
