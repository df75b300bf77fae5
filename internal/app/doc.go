// Package app is the composition root for ThinkSpace.
//
// # Overview
//
// Run wires configuration, logging, storage, the board engine, the shared
// state store and the UI together, then blocks in the Bubble Tea program
// until the user quits or the context is cancelled.
//
// # Startup Sequence
//
//  1. Load .env into the environment (existing variables win)
//  2. Load config.toml and THINKSPACE_* overrides, then apply flags
//  3. Open the log file (the terminal belongs to the UI)
//  4. Load UI preferences (theme, zoom)
//  5. Open the storage backend, falling back to kv.Nop on failure
//  6. Create the engine and LoadAll persisted pins and snapshots
//  7. Wrap the engine in a state.Store and start the health monitor
//  8. Run the UI
//
// # Data Flow
//
//	┌──────────────┐
//	│   Run()      │
//	└──────┬───────┘
//	       ├─────> config.Load()        settings
//	       ├─────> kv.Open()            storage (or kv.Nop)
//	       ├─────> board.New().LoadAll() engine
//	       ├─────> state.New()          shared store
//	       ├─────> StartHealthMonitor() background pings
//	       └─────> ui.Run()             TUI (blocks)
//
//	Health monitor loop:
//	┌─────────────────────────────────────────┐
//	│ kv.Ping(backend) ──> store.ReportHealth │
//	│ sleep interval, doubling while failing  │
//	└─────────────────────────────────────────┘
//
// # Error Handling
//
// Fatal errors (returned from Run):
//   - Invalid config file, environment override or flag
//   - Log file cannot be created
//
// Recoverable errors (logged):
//   - Storage backend cannot be opened: the session runs unsaved and the
//     status bar says so
//   - Preferences file unreadable: defaults are used
//   - Storage pings failing: the header shows STORAGE OFFLINE from the
//     second consecutive failure
//
// # Usage Example
//
//	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
//	defer cancel()
//
//	if err := app.Run(ctx, app.Options{Backend: "sqlite"}); err != nil {
//		log.Fatalf("thinkspace failed: %v", err)
//	}
package app
