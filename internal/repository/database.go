package repository

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/schema"
	"github.com/glebarez/sqlite" // pure Go SQLite driver
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Options selects and sizes the relational store.
type Options struct {
	Driver           string
	ConnectionString string
	PoolMax          int
	PoolMin          int
	SSLRequired      bool
	SeedCatalog      bool
}

// Database owns the gorm handle and the migration outcome.
type Database struct {
	DB             *gorm.DB
	Driver         string
	SafeMode       bool
	SchemaVersion  int
	MigrationError string
}

// NewDatabase connects, applies pool limits and runs versioned migrations.
// A failed migration does not fail startup: the database enters safe mode
// and the error is surfaced through /health.
func NewDatabase(opts Options) (*Database, error) {
	driver := strings.ToLower(strings.TrimSpace(opts.Driver))
	if driver == "" {
		driver = DriverSQLite
	}

	dialector, err := openDialector(driver, opts)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("connect database: %w", err)
	}

	if err := configurePool(db, driver, opts); err != nil {
		return nil, err
	}
	if driver == DriverSQLite {
		if err := configureSQLite(db); err != nil {
			return nil, fmt.Errorf("configure database: %w", err)
		}
	}

	d := &Database{DB: db, Driver: driver}
	if err := migrateWithVersion(db, d); err != nil {
		d.SafeMode = true
		d.MigrationError = err.Error()
		slog.Error("database migration failed, entering safe mode", "error", err)
	} else if opts.SeedCatalog {
		if _, err := SeedDefaultCatalog(db); err != nil {
			slog.Warn("seed achievement catalog failed", "error", err)
		}
	}

	slog.Info("database ready", "driver", driver, "schema_version", d.SchemaVersion)
	return d, nil
}

func openDialector(driver string, opts Options) (gorm.Dialector, error) {
	switch driver {
	case DriverSQLite:
		path := opts.ConnectionString
		if path == "" {
			return nil, fmt.Errorf("sqlite path is empty")
		}
		if path != ":memory:" && !strings.HasPrefix(path, "file:") {
			if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
				return nil, fmt.Errorf("create data directory: %w", err)
			}
		}
		return sqlite.Open(path), nil
	case DriverPostgres:
		dsn, err := PreparePostgresDSN(opts.ConnectionString, opts.SSLRequired)
		if err != nil {
			return nil, err
		}
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported storage driver %q", driver)
	}
}

func configurePool(db *gorm.DB, driver string, opts Options) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("database handle: %w", err)
	}
	maxOpen := opts.PoolMax
	if maxOpen <= 0 {
		maxOpen = 5
	}
	if driver == DriverSQLite && opts.ConnectionString == ":memory:" {
		maxOpen = 1
	}
	minIdle := opts.PoolMin
	if minIdle < 0 {
		minIdle = 0
	}
	if minIdle > maxOpen {
		minIdle = maxOpen
	}
	sqlDB.SetMaxOpenConns(maxOpen)
	sqlDB.SetMaxIdleConns(minIdle)
	return nil
}

// configureSQLite applies WAL and friends for concurrent readers.
func configureSQLite(db *gorm.DB) error {
	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA synchronous=NORMAL",
		"PRAGMA busy_timeout=5000",
		"PRAGMA foreign_keys=ON",
		"PRAGMA temp_store=MEMORY",
	}

	for _, pragma := range pragmas {
		if err := db.Exec(pragma).Error; err != nil {
			return fmt.Errorf("exec %s: %w", pragma, err)
		}
	}

	return nil
}

func autoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(schema.All()...)
}

// migration moves the schema from version-1 to version.
type migration struct {
	version int
	name    string
	up      func(*gorm.DB) error
}

// migrations must be ordered by version with no gaps. Later steps can add
// backfills or data rewrites that AutoMigrate cannot express.
var migrations = []migration{
	{version: 1, name: "create tables", up: autoMigrate},
}

// LatestSchemaVersion is the version this binary migrates to.
func LatestSchemaVersion() int { return latestVersion(migrations) }

func latestVersion(steps []migration) int {
	if len(steps) == 0 {
		return 0
	}
	return steps[len(steps)-1].version
}

func migrateWithVersion(db *gorm.DB, out *Database) error {
	return applyMigrations(db, out, migrations)
}

// applyMigrations runs every step above the recorded schema_version and
// records the version after each one, so a failed step resumes there.
func applyMigrations(db *gorm.DB, out *Database, steps []migration) error {
	if db == nil {
		return fmt.Errorf("db is nil")
	}
	if out == nil {
		return fmt.Errorf("out is nil")
	}

	// schema_meta first so the outcome is recorded even if the rest fails
	if err := db.AutoMigrate(&schema.SchemaMeta{}); err != nil {
		return fmt.Errorf("create schema_meta: %w", err)
	}

	var meta schema.SchemaMeta
	err := db.First(&meta, 1).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			meta = schema.SchemaMeta{ID: 1, SchemaVersion: 0}
			if err := db.Create(&meta).Error; err != nil {
				return fmt.Errorf("init schema_meta: %w", err)
			}
		} else {
			return fmt.Errorf("read schema_meta: %w", err)
		}
	}

	cur := meta.SchemaVersion
	out.SchemaVersion = cur

	latest := latestVersion(steps)
	if cur > latest {
		return fmt.Errorf("database schema_version=%d is newer than supported version %d", cur, latest)
	}

	for _, step := range steps {
		if step.version <= cur {
			continue
		}
		if err := step.up(db); err != nil {
			return fmt.Errorf("migrate to v%d (%s): %w", step.version, step.name, err)
		}
		meta.SchemaVersion = step.version
		if err := db.Save(&meta).Error; err != nil {
			return fmt.Errorf("write schema_meta: %w", err)
		}
		out.SchemaVersion = step.version
	}
	return nil
}

// Migrate reruns the versioned migration, clearing safe mode on success.
func (d *Database) Migrate() error {
	if err := migrateWithVersion(d.DB, d); err != nil {
		d.SafeMode = true
		d.MigrationError = err.Error()
		return err
	}
	d.SafeMode = false
	d.MigrationError = ""
	return nil
}

// Ping checks connectivity.
func (d *Database) Ping() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Ping()
}

// Close closes the underlying pool.
func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
