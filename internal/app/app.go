package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/thinkspace/internal/board"
	"github.com/five82/thinkspace/internal/config"
	"github.com/five82/thinkspace/internal/kv"
	"github.com/five82/thinkspace/internal/logging"
	"github.com/five82/thinkspace/internal/prefs"
	"github.com/five82/thinkspace/internal/state"
	"github.com/five82/thinkspace/internal/ui"
)

// Options configure the ThinkSpace application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/thinkspace/prefs.toml
	EnvFile    string // empty uses ./.env

	// Command-line overrides; empty keeps the configured value.
	Backend string
	DataDir string
	LogFile string

	// Ephemeral keeps the board in memory only.
	Ephemeral bool
}

// Run boots the ThinkSpace TUI until the user quits or the context is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	if err := config.LoadDotEnv(opts.EnvFile); err != nil {
		return err
	}
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	backend := opts.Backend
	if opts.Ephemeral {
		backend = kv.BackendMemory
	}
	if err := cfg.Override(backend, opts.DataDir, opts.LogFile); err != nil {
		return fmt.Errorf("apply flags: %w", err)
	}

	logFile, err := openLog(cfg.LogFile)
	if err != nil {
		return err
	}
	defer logFile.Close()
	log := logging.New(logFile, logging.ParseLevel(cfg.LogLevel))
	log.Infof("starting: backend=%s data_dir=%s", cfg.Backend, cfg.DataDir)

	userPrefs, err := prefs.Load(opts.PrefsPath)
	if err != nil {
		log.Warnf("load prefs: %v", err)
	}

	storage, notice := openStorage(ctx, cfg, log)
	defer func() {
		if err := storage.Close(); err != nil {
			log.Warnf("close storage: %v", err)
		}
	}()

	engine := board.New(board.WithStore(storage), board.WithLogger(log))
	loaded := engine.LoadAll()
	log.Infof("loaded %d pins and %d snapshots", len(loaded.Pins), len(loaded.Snapshots))

	store := state.New(engine)
	cancel := store.Subscribe(func(st board.State) {
		log.Debugf("board changed: pins=%d snapshots=%d undo=%d redo=%d",
			len(st.Pins), len(st.Snapshots), st.HistoryDepth, st.FutureDepth)
	})
	defer cancel()

	if _, ok := storage.(kv.Pinger); ok {
		StartHealthMonitor(ctx, store, storage, defaultHealthInterval, log)
	}

	err = ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		Logger:    log,
		ThemeName: userPrefs.Theme,
		Zoom:      userPrefs.Zoom,
		PrefsPath: opts.PrefsPath,
		LogPath:   cfg.LogFile,
		Notice:    notice,
	})
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		err = nil
	}
	log.Infof("exiting")
	return err
}

// openStorage opens the configured backend. A backend that cannot be opened
// is replaced by kv.Nop so the board still works for the session; the
// returned notice tells the user nothing will be saved.
func openStorage(ctx context.Context, cfg config.Config, log *logging.Logger) (kv.Store, string) {
	storage, err := kv.Open(ctx, cfg.StorageOptions())
	if err != nil {
		log.Warnf("storage unavailable, changes will not be saved: %v", err)
		return kv.Nop{}, "Storage unavailable: changes will not be saved"
	}
	if cfg.Backend == kv.BackendMemory || cfg.Backend == kv.BackendNone {
		return storage, "Ephemeral board: changes will not be saved"
	}
	return storage, ""
}

// openLog opens the log file for appending. Bubble Tea owns the terminal, so
// the standard library logger is pointed at the same file.
func openLog(path string) (*os.File, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log dir: %w", err)
	}
	f, err := tea.LogToFile(path, "thinkspace ")
	if err != nil {
		return nil, fmt.Errorf("open log file: %w", err)
	}
	return f, nil
}
