package commands

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"rentledger/internal/auth"
	"rentledger/internal/billing"
	"rentledger/internal/config"
	"rentledger/internal/database"
	"rentledger/internal/migrations"
	"rentledger/internal/store"
)

const defaultCurrencySymbol = "₱"

// Env carries the dependencies shared by every command. The database is
// opened on first use so that commands such as --help never connect.
type Env struct {
	Config   *config.Config
	Log      logrus.FieldLogger
	Sessions auth.SessionStore

	db *gorm.DB
}

func NewEnv(cfg *config.Config, log logrus.FieldLogger) *Env {
	return &Env{
		Config:   cfg,
		Log:      log,
		Sessions: auth.NewFileSessionStore(cfg.SessionFile),
	}
}

// NewEnvWithDB uses an already opened database.
func NewEnvWithDB(cfg *config.Config, log logrus.FieldLogger, db *gorm.DB, sessions auth.SessionStore) *Env {
	return &Env{Config: cfg, Log: log, Sessions: sessions, db: db}
}

func (e *Env) DB() (*gorm.DB, error) {
	if e.db != nil {
		return e.db, nil
	}
	db, err := database.Open(e.Config, e.Log)
	if err != nil {
		return nil, err
	}
	if e.Config.MigrationsAuto {
		applied, err := migrations.NewMigrator(db).Up()
		if err != nil {
			return nil, fmt.Errorf("failed to apply migrations: %w", err)
		}
		if len(applied) > 0 {
			e.Log.WithField("count", len(applied)).Info("applied pending migrations")
		}
	}
	e.db = db
	return db, nil
}

func (e *Env) Provider() (*auth.Provider, error) {
	db, err := e.DB()
	if err != nil {
		return nil, err
	}
	secret, err := e.Config.RequireJWTSecret()
	if err != nil {
		return nil, err
	}
	return auth.NewProvider(db, e.Sessions, secret,
		auth.WithTTL(e.Config.SessionTTL),
		auth.WithLogger(e.Log),
	), nil
}

// Engine returns a billing engine acting for the user of the saved session.
func (e *Env) Engine() (*billing.Engine, error) {
	provider, err := e.Provider()
	if err != nil {
		return nil, err
	}
	return billing.NewEngine(store.New(e.db), provider, billing.WithLogger(e.Log)), nil
}

// currencySymbol returns the signed-in user's display currency.
func (e *Env) currencySymbol(ctx context.Context) string {
	provider, err := e.Provider()
	if err != nil {
		return defaultCurrencySymbol
	}
	user, err := provider.CurrentUser(ctx)
	if err != nil || user == nil {
		return defaultCurrencySymbol
	}
	profile, err := provider.Profile(ctx, user.ID)
	if err != nil || profile == nil || profile.CurrencySymbol == "" {
		return defaultCurrencySymbol
	}
	return profile.CurrencySymbol
}
