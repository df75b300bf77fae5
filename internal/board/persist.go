package board

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/five82/thinkspace/internal/kv"
)

// Keys of the two persisted payloads.
const (
	PinsKey      = "board-pins"
	SnapshotsKey = "board-snaps"
)

// LoadAll reads pins and snapshots from the store. Missing or unreadable
// payloads leave the corresponding collection empty. Pins written by older
// versions are upgraded in memory: see migratePins.
func (e *Engine) LoadAll() State {
	loadedAt := e.now()

	var pins []Pin
	if e.load(PinsKey, &pins) {
		e.pins = migratePins(pins, loadedAt, e.pinIDs)
	}

	var snaps []Snapshot
	if e.load(SnapshotsKey, &snaps) {
		for i := range snaps {
			snaps[i].Pins = migratePins(snaps[i].Pins, loadedAt, e.pinIDs)
			if snaps[i].ID == "" {
				snaps[i].ID = e.newID()
			}
			if snaps[i].CreatedAt == 0 {
				snaps[i].CreatedAt = loadedAt.UnixMilli()
			}
		}
		e.snapshots = snaps
	}

	e.log.Debugf("loaded %d pins and %d snapshots", len(e.pins), len(e.snapshots))
	return e.State()
}

func (e *Engine) load(key string, dst any) bool {
	ctx, cancel := context.WithTimeout(context.Background(), e.storeTimeout)
	defer cancel()

	data, err := e.store.Get(ctx, key)
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			e.log.Warnf("read %s: %v", key, err)
		}
		return false
	}
	if err := json.Unmarshal(data, dst); err != nil {
		e.log.Warnf("ignoring malformed %s payload: %v", key, err)
		return false
	}
	return true
}

// migratePins fills fields that older payloads lack: thought defaults to
// idea, createdAt to the load time, and out-of-range styles wrap into range.
// Pins without an id get a fresh one and single-member groups are dissolved.
func migratePins(pins []Pin, loadedAt time.Time, ids *pinIDs) []Pin {
	out := make([]Pin, 0, len(pins))
	for _, p := range pins {
		if p.ID == "" {
			p.ID = ids.next(loadedAt)
		}
		if !p.Thought.Valid() {
			p.Thought = ThoughtIdea
		}
		if p.CreatedAt == 0 {
			p.CreatedAt = loadedAt.UnixMilli()
		}
		p.Shape = wrap(p.Shape, ShapeCount)
		p.Mood = wrap(p.Mood, MoodCount)
		out = append(out, p)
	}
	return dissolveSingletons(out)
}

func (e *Engine) persistPins() {
	pins := e.pins
	if pins == nil {
		pins = []Pin{}
	}
	e.put(PinsKey, pins)
}

func (e *Engine) persistSnapshots() {
	snaps := e.snapshots
	if snaps == nil {
		snaps = []Snapshot{}
	}
	e.put(SnapshotsKey, snaps)
}

// put never fails from the caller's point of view: in-memory state stays
// authoritative and store errors are only logged.
func (e *Engine) put(key string, v any) {
	data, err := json.Marshal(v)
	if err != nil {
		e.log.Errorf("encode %s: %v", key, err)
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), e.storeTimeout)
	defer cancel()
	if err := e.store.Put(ctx, key, data); err != nil {
		e.log.Warnf("persist %s: %v", key, err)
	}
}
