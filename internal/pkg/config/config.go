package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
	EnvTest        = "test"
)

// Config is the application configuration.
type Config struct {
	App          AppConfig          `mapstructure:"app"`
	HTTP         HTTPConfig         `mapstructure:"http"`
	Storage      StorageConfig      `mapstructure:"storage"`
	Achievements AchievementsConfig `mapstructure:"achievements"`

	file string
}

type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
	LogPath     string `mapstructure:"log_path"`
}

type HTTPConfig struct {
	ListenAddr        string   `mapstructure:"listen_addr"`
	RequestTimeoutSec int      `mapstructure:"request_timeout_sec"`
	CORSOrigins       []string `mapstructure:"cors_origins"`
	PrincipalHeader   string   `mapstructure:"principal_header"`
	RateLimitPerMin   int      `mapstructure:"rate_limit_per_min"` // per client IP, 0 disables
}

// StorageConfig selects the relational store. ConnectionString is a file
// path for sqlite and a URI or DSN for postgres.
type StorageConfig struct {
	Driver           string `mapstructure:"driver"`
	ConnectionString string `mapstructure:"connection_string"`
	PoolMax          int    `mapstructure:"pool_max"`
	PoolMin          int    `mapstructure:"pool_min"`
	SSLRequired      bool   `mapstructure:"ssl_required"`
	SeedCatalog      bool   `mapstructure:"seed_catalog"`
}

type AchievementsConfig struct {
	ConsecutiveMargin int    `mapstructure:"consecutive_margin"`
	StreakMode        string `mapstructure:"streak_mode"`
}

// File returns the config file that was read, or "".
func (c *Config) File() string { return c.file }

// IsProduction reports whether error details must be withheld.
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.App.Environment, EnvProduction)
}

// Load reads .env, the YAML config file and LACOS_* environment variables,
// in increasing priority. DATABASE_URL is used when no connection string
// is configured.
func Load(configPath string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to read .env", "error", err)
	}

	v := newViper(configPath)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			slog.Warn("config file not found, using defaults")
		} else {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	} else {
		slog.Info("config file loaded", "path", v.ConfigFileUsed())
	}

	cfg, err := decode(v)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Default returns the configuration used when nothing is configured.
func Default() *Config {
	v := viper.New()
	setDefaults(v)
	cfg, err := decode(v)
	if err != nil {
		panic(err)
	}
	return cfg
}

func newViper(configPath string) *viper.Viper {
	v := viper.New()
	setDefaults(v)

	if configPath == "" {
		configPath = os.Getenv("LACOS_CONFIG")
	}
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./config")
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("LACOS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	return v
}

func decode(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.file = v.ConfigFileUsed()

	cfg.Storage.ConnectionString = expandEnv(cfg.Storage.ConnectionString)
	cfg.Storage.Driver = strings.ToLower(strings.TrimSpace(cfg.Storage.Driver))
	if cfg.Storage.ConnectionString == "" && (cfg.Storage.Driver == "" || cfg.Storage.Driver == "postgres") {
		if url := os.Getenv("DATABASE_URL"); url != "" {
			cfg.Storage.ConnectionString = url
			cfg.Storage.Driver = "postgres"
		}
	}
	if cfg.Storage.Driver == "" {
		cfg.Storage.Driver = "sqlite"
	}
	if cfg.Storage.Driver == "sqlite" {
		if cfg.Storage.ConnectionString == "" {
			cfg.Storage.ConnectionString = "./data/lacos.db"
		}
		if cfg.Storage.ConnectionString != ":memory:" {
			cfg.Storage.ConnectionString = resolvePath(cfg.Storage.ConnectionString)
		}
	}
	if cfg.App.LogPath != "" {
		cfg.App.LogPath = resolvePath(cfg.App.LogPath)
	}
	cfg.App.Environment = strings.ToLower(strings.TrimSpace(cfg.App.Environment))
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "lacos-digitais-api")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.environment", EnvDevelopment)
	v.SetDefault("app.log_level", "info")
	v.SetDefault("app.log_path", "")

	v.SetDefault("http.listen_addr", "0.0.0.0:3000")
	v.SetDefault("http.request_timeout_sec", 10)
	v.SetDefault("http.cors_origins", []string{"*"})
	v.SetDefault("http.principal_header", "X-User-ID")
	v.SetDefault("http.rate_limit_per_min", 0)

	// empty driver lets DATABASE_URL pick postgres
	v.SetDefault("storage.driver", "")
	v.SetDefault("storage.connection_string", "")
	v.SetDefault("storage.pool_max", 5)
	v.SetDefault("storage.pool_min", 0)
	v.SetDefault("storage.ssl_required", false)
	v.SetDefault("storage.seed_catalog", true)

	v.SetDefault("achievements.consecutive_margin", 3)
	v.SetDefault("achievements.streak_mode", "count")
}

// Validate rejects settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error
	switch c.App.Environment {
	case EnvDevelopment, EnvProduction, EnvTest:
	default:
		errs = append(errs, fmt.Errorf("app.environment must be development, production or test, got %q", c.App.Environment))
	}
	switch c.Storage.Driver {
	case "sqlite", "postgres":
	default:
		errs = append(errs, fmt.Errorf("storage.driver must be sqlite or postgres, got %q", c.Storage.Driver))
	}
	if c.Storage.Driver == "postgres" && strings.TrimSpace(c.Storage.ConnectionString) == "" {
		errs = append(errs, fmt.Errorf("storage.connection_string (or DATABASE_URL) is required for postgres"))
	}
	if c.Storage.PoolMax < 1 {
		errs = append(errs, fmt.Errorf("storage.pool_max must be at least 1"))
	}
	if c.Storage.PoolMin < 0 || c.Storage.PoolMin > c.Storage.PoolMax {
		errs = append(errs, fmt.Errorf("storage.pool_min must be between 0 and pool_max"))
	}
	if c.HTTP.RateLimitPerMin < 0 {
		errs = append(errs, fmt.Errorf("http.rate_limit_per_min must not be negative"))
	}
	if c.HTTP.RequestTimeoutSec < 0 {
		errs = append(errs, fmt.Errorf("http.request_timeout_sec must not be negative"))
	}
	if c.Achievements.ConsecutiveMargin < 0 {
		errs = append(errs, fmt.Errorf("achievements.consecutive_margin must not be negative"))
	}
	return errors.Join(errs...)
}

// expandEnv resolves a ${VAR} placeholder.
func expandEnv(s string) string {
	if strings.HasPrefix(s, "${") && strings.HasSuffix(s, "}") {
		return os.Getenv(s[2 : len(s)-1])
	}
	return s
}

// resolvePath anchors a relative path at the executable's directory.
func resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	exe, err := os.Executable()
	if err != nil {
		return path
	}
	return filepath.Join(filepath.Dir(exe), path)
}
