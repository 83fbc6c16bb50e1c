package migration

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"
)

// Migration represents a single database migration
type Migration struct {
	Version string // Unique version identifier (e.g., timestamp)
	Name    string // Human-readable name of the migration
	Up      func(*gorm.DB) error
	Down    func(*gorm.DB) error
}

// MigrationRecord represents a record of an applied migration
type MigrationRecord struct {
	Version   string    `gorm:"primaryKey"`
	Name      string    `gorm:"not null"`
	AppliedAt time.Time `gorm:"not null"`
}

func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

// Status pairs a known migration with whether it has been applied.
type Status struct {
	Version string
	Name    string
	Applied bool
}

// Migrator handles the execution of migrations
type Migrator struct {
	db         *gorm.DB
	migrations []*Migration
}

// NewMigrator creates a Migrator over the given migrations, ordered by version.
func NewMigrator(db *gorm.DB, migrations ...*Migration) *Migrator {
	m := &Migrator{db: db}
	for _, mg := range migrations {
		m.Register(mg)
	}
	return m
}

// Register adds a migration to the migrator
func (m *Migrator) Register(migration *Migration) {
	m.migrations = append(m.migrations, migration)
	sort.SliceStable(m.migrations, func(i, j int) bool {
		return m.migrations[i].Version < m.migrations[j].Version
	})
}

func (m *Migrator) ensureVersionTable() error {
	return m.db.AutoMigrate(&MigrationRecord{})
}

// GetAppliedVersions returns a map of applied migration versions
func (m *Migrator) GetAppliedVersions() (map[string]bool, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}

	var records []MigrationRecord
	if err := m.db.Find(&records).Error; err != nil {
		return nil, err
	}

	versions := make(map[string]bool)
	for _, record := range records {
		versions[record.Version] = true
	}
	return versions, nil
}

// Pending returns the migrations not yet applied, oldest first.
func (m *Migrator) Pending() ([]*Migration, error) {
	applied, err := m.GetAppliedVersions()
	if err != nil {
		return nil, err
	}

	var pending []*Migration
	for _, mg := range m.migrations {
		if !applied[mg.Version] {
			pending = append(pending, mg)
		}
	}
	return pending, nil
}

// Up applies all pending migrations, each in its own transaction together
// with its version record. It returns the migrations that were applied.
func (m *Migrator) Up() ([]*Migration, error) {
	pending, err := m.Pending()
	if err != nil {
		return nil, err
	}

	var applied []*Migration
	for _, mg := range pending {
		err := m.db.Transaction(func(tx *gorm.DB) error {
			if err := mg.Up(tx); err != nil {
				return fmt.Errorf("failed to apply migration %s: %w", mg.Name, err)
			}
			record := MigrationRecord{
				Version:   mg.Version,
				Name:      mg.Name,
				AppliedAt: time.Now(),
			}
			if err := tx.Create(&record).Error; err != nil {
				return fmt.Errorf("failed to record migration %s: %w", mg.Name, err)
			}
			return nil
		})
		if err != nil {
			return applied, err
		}
		applied = append(applied, mg)
	}
	return applied, nil
}

// Down rolls back the last applied migration. It returns nil, nil when
// nothing has been applied.
func (m *Migrator) Down() (*Migration, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}

	var records []MigrationRecord
	if err := m.db.Order("version DESC").Limit(1).Find(&records).Error; err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}
	last := records[0]

	var target *Migration
	for _, mg := range m.migrations {
		if mg.Version == last.Version {
			target = mg
			break
		}
	}
	if target == nil {
		return nil, fmt.Errorf("migration for version %s not found", last.Version)
	}

	err := m.db.Transaction(func(tx *gorm.DB) error {
		if err := target.Down(tx); err != nil {
			return fmt.Errorf("failed to revert migration %s: %w", target.Name, err)
		}
		if err := tx.Delete(&last).Error; err != nil {
			return fmt.Errorf("failed to remove migration record: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return target, nil
}

// Status reports every known migration in version order.
func (m *Migrator) Status() ([]Status, error) {
	applied, err := m.GetAppliedVersions()
	if err != nil {
		return nil, err
	}

	out := make([]Status, 0, len(m.migrations))
	for _, mg := range m.migrations {
		out = append(out, Status{Version: mg.Version, Name: mg.Name, Applied: applied[mg.Version]})
	}
	return out, nil
}

// History returns applied migration records, most recent first.
func (m *Migrator) History() ([]MigrationRecord, error) {
	if err := m.ensureVersionTable(); err != nil {
		return nil, err
	}

	var records []MigrationRecord
	if err := m.db.Order("applied_at DESC").Order("version DESC").Find(&records).Error; err != nil {
		return nil, err
	}
	return records, nil
}
