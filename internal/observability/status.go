package observability

import (
	"context"
	"errors"
	"time"

	"github.com/devsantx/Lacos-Digitais-Backend/internal/bootstrap"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/dto"
	"github.com/devsantx/Lacos-Digitais-Backend/internal/pkg/buildinfo"
)

var ErrNotReady = errors.New("core not ready")

// BuildHealth reports liveness and storage state. exposeErrors controls
// whether the migration failure text is included.
func BuildHealth(core *bootstrap.Core, startedAt time.Time, exposeErrors bool) dto.HealthDTO {
	out := dto.HealthDTO{
		Build:     buildinfo.Version,
		Commit:    buildinfo.Commit,
		StartedAt: startedAt.Format(time.RFC3339),
		UptimeSec: int64(time.Since(startedAt).Seconds()),
	}
	if core == nil || core.Cfg == nil {
		return out
	}
	out.Name = core.Cfg.App.Name
	out.Version = core.Cfg.App.Version
	out.Environment = core.Cfg.App.Environment

	if db := core.DB; db != nil {
		out.Storage = dto.StorageStatusDTO{
			Driver:        db.Driver,
			Reachable:     db.Ping() == nil,
			SchemaVersion: db.SchemaVersion,
			SafeMode:      db.SafeMode,
		}
		out.SchemaVersion = db.SchemaVersion
		if db.SafeMode && exposeErrors {
			out.Storage.SafeModeReason = db.MigrationError
		}
	}
	out.Success = out.Storage.Reachable && !out.Storage.SafeMode
	return out
}

// BuildStatus extends the health report with runtime counters.
func BuildStatus(ctx context.Context, core *bootstrap.Core, startedAt time.Time, exposeErrors bool) (*dto.StatusDTO, error) {
	if core == nil || core.Cfg == nil || core.DB == nil {
		return nil, ErrNotReady
	}

	st := &dto.StatusDTO{
		Health: BuildHealth(core, startedAt, exposeErrors),
		Achievements: dto.AchievementStatusDTO{
			StreakMode:        core.Cfg.Achievements.StreakMode,
			ConsecutiveMargin: core.Cfg.Achievements.ConsecutiveMargin,
		},
		Events: dto.EventStatusDTO{
			Subscribers: core.Hub.Subscribers(),
		},
	}
	if st.Achievements.StreakMode == "" {
		st.Achievements.StreakMode = "count"
	}

	if sqlDB, err := core.DB.DB.DB(); err == nil {
		s := sqlDB.Stats()
		st.Storage = dto.PoolStatusDTO{
			MaxOpen: s.MaxOpenConnections,
			Open:    s.OpenConnections,
			InUse:   s.InUse,
			Idle:    s.Idle,
		}
	}

	if core.Services.Achievements != nil && !core.DB.SafeMode {
		if items, err := core.Services.Achievements.Catalog(ctx); err == nil {
			st.Achievements.CatalogSize = len(items)
		}
	}
	return st, nil
}
