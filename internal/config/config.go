// Package config resolves settings for the todo CLI and the API server.
package config

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/idilsaglam/todolist/internal/store/jsonstore"
)

// Defaults.
const (
	DefaultAddr            = "127.0.0.1:8080"
	DefaultLogLevel        = "info"
	DefaultLogFormat       = "text"
	DefaultTheme           = "classic"
	DefaultServiceName     = "todo-api"
	DefaultShutdownTimeout = 10 * time.Second
	DefaultRateWindow      = time.Minute
)

// Config is the merged view of every source.
type Config struct {
	DataFile  string `toml:"data_file"`
	Addr      string `toml:"addr"`
	LogLevel  string `toml:"log_level"`
	LogFormat string `toml:"log_format"`
	Theme     string `toml:"theme"`

	ShutdownTimeoutSeconds int `toml:"shutdown_timeout_seconds"`

	RateLimit         int    `toml:"rate_limit"`
	RateWindowSeconds int    `toml:"rate_window_seconds"`
	RedisAddr         string `toml:"redis_addr"`
	RedisPassword     string `toml:"redis_password"`
	RedisDB           int    `toml:"redis_db"`

	OTelEnabled bool   `toml:"otel_enabled"`
	ServiceName string `toml:"service_name"`

	// ConfigFile is the TOML file that was applied, if any.
	ConfigFile string `toml:"-"`
}

func (c *Config) ShutdownTimeout() time.Duration {
	if c.ShutdownTimeoutSeconds <= 0 {
		return DefaultShutdownTimeout
	}
	return time.Duration(c.ShutdownTimeoutSeconds) * time.Second
}

func (c *Config) RateWindow() time.Duration {
	if c.RateWindowSeconds <= 0 {
		return DefaultRateWindow
	}
	return time.Duration(c.RateWindowSeconds) * time.Second
}

func setDefaults(cfg *Config) {
	cfg.DataFile = jsonstore.DefaultPath
	cfg.Addr = DefaultAddr
	cfg.LogLevel = DefaultLogLevel
	cfg.LogFormat = DefaultLogFormat
	cfg.Theme = DefaultTheme
	cfg.ShutdownTimeoutSeconds = int(DefaultShutdownTimeout / time.Second)
	cfg.RateWindowSeconds = int(DefaultRateWindow / time.Second)
	cfg.ServiceName = DefaultServiceName
}

// Load resolves configuration in priority order:
// 1. Defaults
// 2. .env in the current directory (only fills unset variables)
// 3. TOML file (-config flag, TODO_CONFIG, or todo.toml / .todo.toml)
// 4. TODO_* environment variables
// 5. Flags registered on fs and parsed from args
//
// Remaining positional arguments are left in fs.Args().
func Load(fs *flag.FlagSet, args []string) (*Config, error) {
	cfg := &Config{}
	setDefaults(cfg)

	_ = godotenv.Load()

	flags := registerFlags(fs)
	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parsing flags: %w", err)
	}

	path := *flags.configFile
	if path == "" {
		path = os.Getenv("TODO_CONFIG")
	}
	explicit := path != ""
	if !explicit {
		path = findProjectConfigFile()
	}
	if path != "" {
		if err := loadConfigFile(cfg, path); err != nil {
			if explicit || !errors.Is(err, os.ErrNotExist) {
				return nil, fmt.Errorf("loading config file %s: %w", path, err)
			}
		} else {
			cfg.ConfigFile = path
		}
	}

	loadFromEnv(cfg)
	flags.apply(fs, cfg)

	if err := validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func findProjectConfigFile() string {
	for _, name := range []string{"todo.toml", ".todo.toml"} {
		if _, err := os.Stat(name); err == nil {
			return name
		}
	}
	return ""
}

func loadConfigFile(cfg *Config, path string) error {
	_, err := toml.DecodeFile(path, cfg)
	return err
}

func loadFromEnv(cfg *Config) {
	if v := os.Getenv("TODO_DATA_FILE"); v != "" {
		cfg.DataFile = v
	}
	if v := os.Getenv("TODO_ADDR"); v != "" {
		cfg.Addr = v
	}
	if v := os.Getenv("TODO_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("TODO_LOG_FORMAT"); v != "" {
		cfg.LogFormat = v
	}
	if v := os.Getenv("TODO_THEME"); v != "" {
		cfg.Theme = v
	}
	if n, ok := envInt("TODO_SHUTDOWN_TIMEOUT_SECONDS"); ok {
		cfg.ShutdownTimeoutSeconds = n
	}
	if n, ok := envInt("TODO_RATE_LIMIT"); ok {
		cfg.RateLimit = n
	}
	if n, ok := envInt("TODO_RATE_WINDOW_SECONDS"); ok {
		cfg.RateWindowSeconds = n
	}
	if v := os.Getenv("TODO_REDIS_ADDR"); v != "" {
		cfg.RedisAddr = v
	}
	if v := os.Getenv("TODO_REDIS_PASSWORD"); v != "" {
		cfg.RedisPassword = v
	}
	if n, ok := envInt("TODO_REDIS_DB"); ok {
		cfg.RedisDB = n
	}
	if v := os.Getenv("TODO_OTEL_ENABLED"); v != "" {
		cfg.OTelEnabled = boolFromString(v)
	}
	if v := os.Getenv("TODO_SERVICE_NAME"); v != "" {
		cfg.ServiceName = v
	}
}

func envInt(key string) (int, bool) {
	v := os.Getenv(key)
	if v == "" {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return 0, false
	}
	return n, true
}

func boolFromString(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	return s == "1" || s == "true" || s == "yes" || s == "on"
}

func validate(cfg *Config) error {
	if strings.TrimSpace(cfg.DataFile) == "" {
		return fmt.Errorf("data file must not be empty")
	}
	if cfg.RateLimit < 0 {
		return fmt.Errorf("rate limit must not be negative, got %d", cfg.RateLimit)
	}
	switch strings.ToLower(cfg.LogFormat) {
	case "text", "json", "logfmt":
	default:
		return fmt.Errorf("invalid log format %q, must be one of: text, json, logfmt", cfg.LogFormat)
	}
	return nil
}
