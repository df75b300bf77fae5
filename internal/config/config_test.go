package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/five82/thinkspace/internal/kv"
)

// clearEnv unsets every override so the host environment cannot leak in.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"BACKEND", "DATA_DIR", "LOG_LEVEL", "LOG_FILE",
		"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_PREFIX", "REDIS_DB",
	} {
		t.Setenv(EnvPrefix+"_"+key, "")
	}
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestLoad_MissingConfigFallsBackToDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	cfg, err := Load(filepath.Join(home, "does-not-exist.toml"))
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backend != kv.BackendFile {
		t.Fatalf("Backend = %q, want %q", cfg.Backend, kv.BackendFile)
	}
	wantDataDir, err := expandPath(defaultDataDir)
	if err != nil {
		t.Fatalf("expandPath(defaultDataDir) returned error: %v", err)
	}
	if cfg.DataDir != wantDataDir {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, wantDataDir)
	}
	if !strings.HasPrefix(cfg.LogFile, home) {
		t.Fatalf("LogFile = %q, want it under HOME %q", cfg.LogFile, home)
	}
	if cfg.LogLevel != "info" || cfg.Redis.Addr != defaultRedisAddr || cfg.Redis.Prefix != defaultRedisPrefix {
		t.Fatalf("defaults = %+v", cfg)
	}
}

func TestLoad_ParsesAndTrimsConfig(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := writeConfig(t, `
backend = "  SQLite "
data_dir = "  ~/boards  "
log_level = "DEBUG"

[redis]
addr = "10.0.0.5:6380"
db = 3
prefix = "ts:"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Backend != kv.BackendSQLite {
		t.Fatalf("Backend = %q, want sqlite", cfg.Backend)
	}
	if cfg.DataDir != filepath.Join(home, "boards") {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, filepath.Join(home, "boards"))
	}
	if cfg.LogLevel != "debug" {
		t.Fatalf("LogLevel = %q, want debug", cfg.LogLevel)
	}
	if cfg.Redis.Addr != "10.0.0.5:6380" || cfg.Redis.DB != 3 || cfg.Redis.Prefix != "ts:" {
		t.Fatalf("Redis = %+v", cfg.Redis)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	clearEnv(t)

	path := writeConfig(t, `
backend = "file"
[redis]
addr = "10.0.0.5:6380"
`)
	t.Setenv("THINKSPACE_BACKEND", "redis")
	t.Setenv("THINKSPACE_REDIS_ADDR", "cache:6379")
	t.Setenv("THINKSPACE_REDIS_PASSWORD", "hunter2")
	t.Setenv("THINKSPACE_REDIS_DB", "5")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	opts := cfg.StorageOptions()
	if opts.Backend != kv.BackendRedis || opts.RedisAddr != "cache:6379" || opts.RedisPassword != "hunter2" || opts.RedisDB != 5 {
		t.Fatalf("StorageOptions = %+v", opts)
	}
}

func TestLoad_InvalidValuesFail(t *testing.T) {
	cases := []struct {
		name string
		body string
		env  map[string]string
		want string
	}{
		{name: "toml", body: `backend = [`, want: "parse config"},
		{name: "backend", body: `backend = "postgres"`, want: "unknown backend"},
		{name: "negative db", body: "[redis]\ndb = -1", want: "invalid redis db"},
		{name: "env db", env: map[string]string{"THINKSPACE_REDIS_DB": "three"}, want: "THINKSPACE_REDIS_DB"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("HOME", t.TempDir())
			clearEnv(t)
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			_, err := Load(writeConfig(t, tc.body))
			if err == nil {
				t.Fatalf("Load returned nil error, want %q", tc.want)
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("Load error = %q, want it to mention %q", err.Error(), tc.want)
			}
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	clearEnv(t)
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	if err := os.WriteFile(path, []byte("THINKSPACE_BACKEND=memory\nTHINKSPACE_LOG_LEVEL=warn\n"), 0o600); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	// Already-set variables are not replaced.
	t.Setenv("THINKSPACE_LOG_LEVEL", "error")
	os.Unsetenv("THINKSPACE_BACKEND")
	t.Cleanup(func() { os.Unsetenv("THINKSPACE_BACKEND") })

	if err := LoadDotEnv(path); err != nil {
		t.Fatalf("LoadDotEnv: %v", err)
	}
	if got := os.Getenv("THINKSPACE_BACKEND"); got != "memory" {
		t.Fatalf("THINKSPACE_BACKEND = %q, want memory", got)
	}
	if got := os.Getenv("THINKSPACE_LOG_LEVEL"); got != "error" {
		t.Fatalf("THINKSPACE_LOG_LEVEL = %q, want error", got)
	}

	if err := LoadDotEnv(filepath.Join(dir, "missing.env")); err != nil {
		t.Fatalf("LoadDotEnv(missing) = %v, want nil", err)
	}
}

func TestExpandPath_ExpandsTildeAndReturnsAbs(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	got, err := ExpandPath("~/a/b")
	if err != nil {
		t.Fatalf("ExpandPath returned error: %v", err)
	}
	want := filepath.Join(home, "a/b")
	if got != want {
		t.Fatalf("ExpandPath = %q, want %q", got, want)
	}
}

func TestExpandPath_EmptyErrors(t *testing.T) {
	if _, err := expandPath("   "); err == nil {
		t.Fatalf("expandPath returned nil error, want error")
	}
}

func TestOverride(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	cfg := Defaults()
	if err := cfg.Override(" SQLite ", "~/boards", ""); err != nil {
		t.Fatalf("Override returned error: %v", err)
	}
	if cfg.Backend != kv.BackendSQLite {
		t.Fatalf("Backend = %q, want %q", cfg.Backend, kv.BackendSQLite)
	}
	if want := filepath.Join(home, "boards"); cfg.DataDir != want {
		t.Fatalf("DataDir = %q, want %q", cfg.DataDir, want)
	}
	if cfg.LogFile != Defaults().LogFile {
		t.Fatalf("LogFile changed by empty override: %q", cfg.LogFile)
	}

	if err := cfg.Override("etcd", "", ""); err == nil || !strings.Contains(err.Error(), "unknown backend") {
		t.Fatalf("Override(etcd) error = %v, want unknown backend", err)
	}
	if cfg.Backend != kv.BackendSQLite {
		t.Fatalf("failed override changed Backend to %q", cfg.Backend)
	}
}
