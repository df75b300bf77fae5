// Package logtail reads the tail of the ThinkSpace log file for the in-app
// log view.
//
// # Overview
//
// Read extracts the last N lines of a file in one sequential pass using a
// ring buffer, so memory stays O(N) however large the log grows. Parse
// splits a line written by the logging package into its timestamp, level and
// message so the UI can colour it.
//
// # Ring Buffer Algorithm
//
//	1. Allocate ring buffer of size maxLines
//	2. For each line in file:
//	   - Store line at current index
//	   - Increment index (wrapping at maxLines)
//	   - Track total lines seen
//	3. If total < maxLines:
//	   - Return first 'count' entries from buffer
//	4. If total >= maxLines:
//	   - Return buffer starting from current index (oldest line)
//
// A non-positive maxLines skips the ring and returns every line.
//
// # Line Format
//
//	2025-03-14T15:09:26Z [WARN] persist board-pins: quota exceeded
//	└── Time ──────────┘ └Level┘ └── Message ───────────────────┘
//
// Lines that do not match (panics, stray output) are returned with only
// Message set.
//
// # Error Handling
//
// Read returns nil, nil for a file that does not exist yet; the log file is
// created lazily. Other errors are wrapped. Parse never fails.
//
// # Usage Example
//
//	lines, err := logtail.Read(cfg.LogFile, 200)
//	if err != nil {
//		return err
//	}
//	for _, e := range logtail.ParseLines(lines) {
//		render(e.Level, e.Message)
//	}
package logtail
