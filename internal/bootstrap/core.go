package bootstrap

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/eventbus"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/pkg/config"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/repository"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/service"
)

// Core holds the dependencies shared by every binary.
type Core struct {
	Cfg       *config.Config
	DB        *repository.Database
	Hub       *eventbus.Hub
	LogCloser io.Closer

	Repos struct {
		Diary        *repository.DiaryRepository
		Goals        *repository.GoalRepository
		Achievements *repository.AchievementRepository
		Ledger       *repository.LedgerRepository
	}

	Services struct {
		Diary        *service.DiaryService
		Goals        *service.GoalService
		Achievements *service.AchievementService
	}
}

// NewCore loads config, sets up logging and opens the database.
func NewCore(cfgPath string) (*Core, error) {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	logCloser, _ := config.SetupLogger(config.LoggerOptions{
		Level:     cfg.App.LogLevel,
		Path:      cfg.App.LogPath,
		Component: filepath.Base(os.Args[0]),
		JSON:      cfg.IsProduction(),
	})

	db, err := repository.NewDatabase(StorageOptions(cfg))
	if err != nil {
		if logCloser != nil {
			_ = logCloser.Close()
		}
		return nil, err
	}

	c := NewCoreWithDB(cfg, db)
	c.LogCloser = logCloser
	return c, nil
}

// StorageOptions maps the storage section to repository options.
func StorageOptions(cfg *config.Config) repository.Options {
	return repository.Options{
		Driver:           cfg.Storage.Driver,
		ConnectionString: cfg.Storage.ConnectionString,
		PoolMax:          cfg.Storage.PoolMax,
		PoolMin:          cfg.Storage.PoolMin,
		SSLRequired:      cfg.Storage.SSLRequired,
		SeedCatalog:      cfg.Storage.SeedCatalog,
	}
}

// NewCoreWithDB wires repositories and services over an open database.
func NewCoreWithDB(cfg *config.Config, db *repository.Database) *Core {
	c := &Core{Cfg: cfg, DB: db, Hub: eventbus.NewHub()}

	c.Repos.Diary = repository.NewDiaryRepository(db.DB)
	c.Repos.Goals = repository.NewGoalRepository(db.DB)
	c.Repos.Achievements = repository.NewAchievementRepository(db.DB)
	c.Repos.Ledger = repository.NewLedgerRepository(db.DB)

	streak := service.NewStreakPolicy(cfg.Achievements.StreakMode, cfg.Achievements.ConsecutiveMargin)
	c.Services.Achievements = service.NewAchievementService(
		c.Repos.Achievements,
		c.Repos.Ledger,
		c.Repos.Diary,
		c.Repos.Goals,
		streak,
		c.Hub,
	)
	c.Services.Diary = service.NewDiaryService(c.Repos.Diary, c.Services.Achievements, c.Hub)
	c.Services.Goals = service.NewGoalService(c.Repos.Goals, c.Services.Achievements, c.Hub)

	return c
}

// Close releases the database and the log file.
func (c *Core) Close() error {
	if c == nil {
		return nil
	}
	var dbErr error
	if c.DB != nil {
		dbErr = c.DB.Close()
	}
	if c.LogCloser != nil {
		_ = c.LogCloser.Close()
	}
	return dbErr
}

// RequireSchema fails when the database is in safe mode.
func (c *Core) RequireSchema() error {
	if c.DB == nil {
		return fmt.Errorf("database not initialized")
	}
	if c.DB.SafeMode {
		return fmt.Errorf("database in safe mode: %s", c.DB.MigrationError)
	}
	return nil
}
