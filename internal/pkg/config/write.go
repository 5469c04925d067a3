package config

import (
	"fmt"
	"os"
	"path/filepath"

	"go.yaml.in/yaml/v3"
)

func DefaultConfigPath() (string, error) {
	exe, err := os.Executable()
	if err != nil {
		return "", fmt.Errorf("locate executable: %w", err)
	}
	return filepath.Join(filepath.Dir(exe), "config", "config.yaml"), nil
}

// WriteFile stores cfg as YAML in the layout Load reads.
func WriteFile(path string, cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("cfg is nil")
	}
	if path == "" {
		return fmt.Errorf("path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}

	payload := map[string]any{
		"app": map[string]any{
			"name":        cfg.App.Name,
			"version":     cfg.App.Version,
			"environment": cfg.App.Environment,
			"log_level":   cfg.App.LogLevel,
			"log_path":    cfg.App.LogPath,
		},
		"http": map[string]any{
			"listen_addr":         cfg.HTTP.ListenAddr,
			"request_timeout_sec": cfg.HTTP.RequestTimeoutSec,
			"cors_origins":        cfg.HTTP.CORSOrigins,
			"principal_header":    cfg.HTTP.PrincipalHeader,
			"rate_limit_per_min":  cfg.HTTP.RateLimitPerMin,
		},
		"storage": map[string]any{
			"driver":            cfg.Storage.Driver,
			"connection_string": cfg.Storage.ConnectionString,
			"pool_max":          cfg.Storage.PoolMax,
			"pool_min":          cfg.Storage.PoolMin,
			"ssl_required":      cfg.Storage.SSLRequired,
			"seed_catalog":      cfg.Storage.SeedCatalog,
		},
		"achievements": map[string]any{
			"consecutive_margin": cfg.Achievements.ConsecutiveMargin,
			"streak_mode":        cfg.Achievements.StreakMode,
		},
	}

	b, err := yaml.Marshal(payload)
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}

	// may hold database credentials
	if err := os.WriteFile(path, b, 0o600); err != nil {
		return fmt.Errorf("write config file: %w", err)
	}
	return nil
}
