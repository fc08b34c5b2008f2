package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/lib/pq"
	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
	_ "modernc.org/sqlite"

	"insights/internal/shared/domain"
)

// Drivers supportés
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options paramètres de connexion, construits par internal/config
type Options struct {
	Driver          string
	DSN             string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	Logger          *logrus.Logger
}

// DB regroupe la connexion database/sql et la session gorm qui la partage
type DB struct {
	SQL    *sql.DB
	Gorm   *gorm.DB
	Driver string
}

// Open ouvre la base, configure le pool et vérifie la connexion.
// Une base injoignable est retournée comme ErrConnectionFailure, sans retry.
func Open(ctx context.Context, opts Options) (*DB, error) {
	sqlDB, err := sql.Open(opts.Driver, opts.DSN)
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %w", domain.ErrConnectionFailure, opts.Driver, err)
	}

	configurePool(sqlDB, opts)

	if err := sqlDB.PingContext(ctx); err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: ping %s: %w", domain.ErrConnectionFailure, opts.Driver, err)
	}

	dialector, err := dialectorFor(opts.Driver, sqlDB)
	if err != nil {
		sqlDB.Close()
		return nil, err
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:                 newGormLogger(opts.Logger),
		SkipDefaultTransaction: true,
	})
	if err != nil {
		sqlDB.Close()
		return nil, fmt.Errorf("%w: gorm %s: %w", domain.ErrConnectionFailure, opts.Driver, err)
	}

	return &DB{SQL: sqlDB, Gorm: gdb, Driver: opts.Driver}, nil
}

// Close ferme la connexion
func (db *DB) Close() error {
	if db == nil || db.SQL == nil {
		return nil
	}
	return db.SQL.Close()
}

func configurePool(sqlDB *sql.DB, opts Options) {
	// SQLite n'a qu'un écrivain et une base :memory: n'existe que sur sa connexion
	if opts.Driver == DriverSQLite {
		sqlDB.SetMaxOpenConns(1)
		return
	}

	maxOpen := opts.MaxOpenConns
	if maxOpen <= 0 {
		maxOpen = 25
	}
	maxIdle := opts.MaxIdleConns
	if maxIdle <= 0 {
		maxIdle = 5
	}
	lifetime := opts.ConnMaxLifetime
	if lifetime <= 0 {
		lifetime = 5 * time.Minute
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(maxIdle)
	sqlDB.SetConnMaxLifetime(lifetime)
}

func dialectorFor(driver string, sqlDB *sql.DB) (gorm.Dialector, error) {
	switch driver {
	case DriverSQLite:
		return &sqlite.Dialector{DriverName: DriverSQLite, Conn: sqlDB}, nil
	case DriverPostgres:
		return postgres.New(postgres.Config{Conn: sqlDB}), nil
	default:
		return nil, fmt.Errorf("unsupported driver %q", driver)
	}
}

func newGormLogger(log *logrus.Logger) logger.Interface {
	if log == nil {
		return logger.Default.LogMode(logger.Silent)
	}
	level := logger.Warn
	if log.IsLevelEnabled(logrus.DebugLevel) {
		level = logger.Info
	}
	return logger.New(log, logger.Config{
		SlowThreshold:             500 * time.Millisecond,
		LogLevel:                  level,
		IgnoreRecordNotFoundError: true,
	})
}
