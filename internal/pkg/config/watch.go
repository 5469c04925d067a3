package config

import (
	"fmt"
	"log/slog"

	"github.com/fsnotify/fsnotify"
)

// Watch re-reads the config file on change and hands the result to
// onChange. Invalid edits are logged and skipped.
func Watch(path string, onChange func(*Config)) error {
	if path == "" {
		return fmt.Errorf("no config file to watch")
	}
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("read config file: %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}
		cfg, err := decode(v)
		if err == nil {
			err = cfg.Validate()
		}
		if err != nil {
			slog.Warn("config reload rejected", "path", e.Name, "error", err)
			return
		}
		slog.Info("config reloaded", "path", e.Name)
		onChange(cfg)
	})
	v.WatchConfig()
	return nil
}

// ApplyLogLevel is a Watch callback that only follows app.log_level.
func ApplyLogLevel(cfg *Config) {
	SetLogLevel(cfg.App.LogLevel)
}
