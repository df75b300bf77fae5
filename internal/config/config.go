package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/viper"

	"github.com/five82/thinkspace/internal/kv"
)

// EnvPrefix namespaces the environment overrides (THINKSPACE_BACKEND, ...).
const EnvPrefix = "THINKSPACE"

// Config holds the settings ThinkSpace reads at startup.
type Config struct {
	Backend  string
	DataDir  string
	LogLevel string
	LogFile  string
	Redis    RedisConfig
}

// RedisConfig configures the redis backend.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	Prefix   string
}

const (
	defaultConfigPath  = "~/.config/thinkspace/config.toml"
	defaultBackend     = kv.BackendFile
	defaultDataDir     = "~/.local/share/thinkspace"
	defaultLogLevel    = "info"
	defaultLogFile     = "~/.local/state/thinkspace/thinkspace.log"
	defaultRedisAddr   = "127.0.0.1:6379"
	defaultRedisPrefix = "thinkspace:"
)

// Defaults returns the configuration used when no file or overrides exist.
func Defaults() Config {
	return Config{
		Backend:  defaultBackend,
		DataDir:  mustExpand(defaultDataDir),
		LogLevel: defaultLogLevel,
		LogFile:  mustExpand(defaultLogFile),
		Redis: RedisConfig{
			Addr:   defaultRedisAddr,
			Prefix: defaultRedisPrefix,
		},
	}
}

// DefaultPath returns the default config file path.
func DefaultPath() string {
	return defaultConfigPath
}

type rawConfig struct {
	Backend  string `toml:"backend"`
	DataDir  string `toml:"data_dir"`
	LogLevel string `toml:"log_level"`
	LogFile  string `toml:"log_file"`
	Redis    struct {
		Addr     string `toml:"addr"`
		Password string `toml:"password"`
		DB       *int   `toml:"db"`
		Prefix   string `toml:"prefix"`
	} `toml:"redis"`
}

// Load parses the config file at path (or the default path), applies
// THINKSPACE_* environment overrides and fills defaults. A missing file is
// not an error.
func Load(path string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	var raw rawConfig
	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer file.Close()
		bytes, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := toml.Unmarshal(bytes, &raw); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(&raw); err != nil {
		return Config{}, err
	}
	return normalize(raw)
}

// applyEnv overlays environment variables read through viper.
func applyEnv(raw *rawConfig) error {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	overrides := map[string]*string{
		"BACKEND":        &raw.Backend,
		"DATA_DIR":       &raw.DataDir,
		"LOG_LEVEL":      &raw.LogLevel,
		"LOG_FILE":       &raw.LogFile,
		"REDIS_ADDR":     &raw.Redis.Addr,
		"REDIS_PASSWORD": &raw.Redis.Password,
		"REDIS_PREFIX":   &raw.Redis.Prefix,
	}
	for key, dst := range overrides {
		if val := strings.TrimSpace(v.GetString(key)); val != "" {
			*dst = val
		}
	}

	if strings.TrimSpace(v.GetString("REDIS_DB")) != "" {
		db, err := parseDB(v.GetString("REDIS_DB"))
		if err != nil {
			return fmt.Errorf("%s_REDIS_DB: %w", EnvPrefix, err)
		}
		raw.Redis.DB = &db
	}
	return nil
}

func parseDB(s string) (int, error) {
	db, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("invalid redis db %q", s)
	}
	return db, nil
}

func normalize(raw rawConfig) (Config, error) {
	cfg := Defaults()

	if b := strings.ToLower(strings.TrimSpace(raw.Backend)); b != "" {
		cfg.Backend = b
	}
	if !validBackend(cfg.Backend) {
		return Config{}, fmt.Errorf("unknown backend %q", raw.Backend)
	}
	if d := strings.TrimSpace(raw.DataDir); d != "" {
		cfg.DataDir = mustExpand(d)
	}
	if l := strings.ToLower(strings.TrimSpace(raw.LogLevel)); l != "" {
		cfg.LogLevel = l
	}
	if f := strings.TrimSpace(raw.LogFile); f != "" {
		cfg.LogFile = mustExpand(f)
	}

	if a := strings.TrimSpace(raw.Redis.Addr); a != "" {
		cfg.Redis.Addr = a
	}
	cfg.Redis.Password = raw.Redis.Password
	if raw.Redis.DB != nil {
		if *raw.Redis.DB < 0 {
			return Config{}, fmt.Errorf("invalid redis db %d", *raw.Redis.DB)
		}
		cfg.Redis.DB = *raw.Redis.DB
	}
	if p := strings.TrimSpace(raw.Redis.Prefix); p != "" {
		cfg.Redis.Prefix = p
	}
	return cfg, nil
}

func validBackend(name string) bool {
	switch name {
	case kv.BackendFile, kv.BackendSQLite, kv.BackendRedis, kv.BackendMemory, kv.BackendNone:
		return true
	}
	return false
}

// Override applies command-line values on top of the loaded settings. Empty
// values leave the current setting in place.
func (c *Config) Override(backend, dataDir, logFile string) error {
	if b := strings.ToLower(strings.TrimSpace(backend)); b != "" {
		if !validBackend(b) {
			return fmt.Errorf("unknown backend %q", backend)
		}
		c.Backend = b
	}
	if strings.TrimSpace(dataDir) != "" {
		expanded, err := expandPath(dataDir)
		if err != nil {
			return fmt.Errorf("data dir: %w", err)
		}
		c.DataDir = expanded
	}
	if strings.TrimSpace(logFile) != "" {
		expanded, err := expandPath(logFile)
		if err != nil {
			return fmt.Errorf("log file: %w", err)
		}
		c.LogFile = expanded
	}
	return nil
}

// StorageOptions maps the config onto kv.Open options.
func (c Config) StorageOptions() kv.Options {
	return kv.Options{
		Backend:       c.Backend,
		DataDir:       c.DataDir,
		RedisAddr:     c.Redis.Addr,
		RedisPassword: c.Redis.Password,
		RedisDB:       c.Redis.DB,
		RedisPrefix:   c.Redis.Prefix,
	}
}

// LoadDotEnv loads KEY=value pairs from path into the process environment.
// Variables that are already set win. A missing file is ignored.
func LoadDotEnv(path string) error {
	if strings.TrimSpace(path) == "" {
		path = ".env"
	}
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// ExpandPath resolves a leading ~ and returns an absolute path.
func ExpandPath(path string) (string, error) {
	return expandPath(path)
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
