// Package config loads ThinkSpace startup settings.
//
// # Overview
//
// Settings come from three layers, later layers winning:
//
//  1. Built-in defaults
//  2. TOML file (~/.config/thinkspace/config.toml unless a path is given)
//  3. THINKSPACE_* environment variables, read through viper
//
// Command-line flags are applied on top by the caller. An optional .env file
// can seed the environment first via LoadDotEnv; values already present in
// the environment are never replaced.
//
// # Default Values
//
//   - Config file: ~/.config/thinkspace/config.toml
//   - Backend: file
//   - Data directory: ~/.local/share/thinkspace
//   - Log level: info
//   - Log file: ~/.local/state/thinkspace/thinkspace.log
//   - Redis: 127.0.0.1:6379, db 0, key prefix "thinkspace:"
//
// # TOML Format
//
//	backend = "sqlite"          # file | sqlite | redis | memory | none
//	data_dir = "~/boards"
//	log_level = "debug"
//	log_file = "~/thinkspace.log"
//
//	[redis]
//	addr = "127.0.0.1:6379"
//	password = ""
//	db = 0
//	prefix = "thinkspace:"
//
// Every field is optional. Tilde expansion is applied to data_dir and
// log_file.
//
// # Environment Overrides
//
//	THINKSPACE_BACKEND         THINKSPACE_REDIS_ADDR
//	THINKSPACE_DATA_DIR        THINKSPACE_REDIS_PASSWORD
//	THINKSPACE_LOG_LEVEL       THINKSPACE_REDIS_DB
//	THINKSPACE_LOG_FILE        THINKSPACE_REDIS_PREFIX
//
// Empty variables are ignored.
//
// # Error Handling
//
// Load returns errors for:
//   - Path expansion failures
//   - File read errors (a missing file is not an error)
//   - TOML parse errors
//   - Unknown backend names or a negative/non-numeric redis db
//
// # Usage Example
//
//	_ = config.LoadDotEnv("")
//	cfg, err := config.Load("")
//	if err != nil {
//		return fmt.Errorf("load config: %w", err)
//	}
//	store, err := kv.Open(ctx, cfg.StorageOptions())
package config
