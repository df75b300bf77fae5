package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/five82/thinkspace/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	configPath := flag.String("config", "", "config file path (optional, defaults to ~/.config/thinkspace/config.toml)")
	prefsPath := flag.String("prefs", "", "preferences file path (optional)")
	envFile := flag.String("env", "", "dotenv file to load before reading the environment (optional, defaults to ./.env)")
	backend := flag.String("backend", "", "storage backend: file, sqlite, redis, memory or none")
	dataDir := flag.String("data", "", "data directory for the file and sqlite backends")
	logFile := flag.String("log", "", "log file path")
	ephemeral := flag.Bool("ephemeral", false, "keep the board in memory only")
	flag.Parse()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	opts := app.Options{
		ConfigPath: *configPath,
		PrefsPath:  *prefsPath,
		EnvFile:    *envFile,
		Backend:    *backend,
		DataDir:    *dataDir,
		LogFile:    *logFile,
		Ephemeral:  *ephemeral,
	}

	if err := app.Run(ctx, opts); err != nil {
		fmt.Fprintf(os.Stderr, "thinkspace: %v\n", err)
		return 1
	}
	return 0
}
