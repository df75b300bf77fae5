package board

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/five82/thinkspace/internal/kv"
	"github.com/five82/thinkspace/internal/logging"
)

type failingStore struct {
	getErr error
	putErr error
	puts   int
}

func (s *failingStore) Get(context.Context, string) ([]byte, error) { return nil, s.getErr }

func (s *failingStore) Put(context.Context, string, []byte) error {
	s.puts++
	return s.putErr
}

func (s *failingStore) Close() error { return nil }

func seed(t *testing.T, store kv.Store, key, payload string) {
	t.Helper()
	if err := store.Put(t.Context(), key, []byte(payload)); err != nil {
		t.Fatalf("seed %s: %v", key, err)
	}
}

func TestLoadAll_RoundTrip(t *testing.T) {
	e, store := newTestEngine(t)
	ids := addPins(t, e, 3)
	e.AddImagePin("data:image/png;base64,AAAA", 10, 20)
	e.GroupPins(ids[:2])
	e.CyclePinThought(ids[2])
	e.SaveSnapshot("saved")

	loaded := New(WithStore(store), WithClock(func() time.Time { return testNow.Add(time.Hour) }))
	st := loaded.LoadAll()

	if d := diffPins(e.Pins(), st.Pins); d != "" {
		t.Fatalf("pins after reload (-want +got):\n%s", d)
	}
	if len(st.Snapshots) != 1 || st.Snapshots[0].Name != "saved" {
		t.Fatalf("snapshots after reload = %+v", st.Snapshots)
	}
	if d := diffPins(e.Snapshots()[0].Pins, st.Snapshots[0].Pins); d != "" {
		t.Fatalf("snapshot pins after reload (-want +got):\n%s", d)
	}
	if st.CanUndo() || st.CanRedo() {
		t.Fatalf("history should not survive a reload")
	}
}

func TestLoadAll_MigratesLegacyPins(t *testing.T) {
	store := kv.NewMemory()
	seed(t, store, PinsKey, `[
		{"id":"1700000000000","x":180,"y":180,"text":"","shape":7,"mood":-1},
		{"x":1,"y":2,"text":"no id","thought":"decision","createdAt":42},
		{"id":"lonely","x":0,"y":0,"text":"","groupId":"g1"}
	]`)
	e := New(WithStore(store), WithClock(func() time.Time { return testNow }))

	st := e.LoadAll()
	if len(st.Pins) != 3 {
		t.Fatalf("len(Pins) = %d, want 3", len(st.Pins))
	}

	legacy := st.Pins[0]
	if legacy.Thought != ThoughtIdea {
		t.Fatalf("Thought = %q, want idea", legacy.Thought)
	}
	if legacy.CreatedAt != testNow.UnixMilli() {
		t.Fatalf("CreatedAt = %d, want load time", legacy.CreatedAt)
	}
	if legacy.Shape != 2 || legacy.Mood != 3 {
		t.Fatalf("Shape, Mood = %d, %d, want 2, 3", legacy.Shape, legacy.Mood)
	}

	noID := st.Pins[1]
	if noID.ID == "" {
		t.Fatalf("pin without id was not assigned one")
	}
	if noID.Thought != ThoughtDecision || noID.CreatedAt != 42 {
		t.Fatalf("existing fields overwritten: %+v", noID)
	}

	if st.Pins[2].Grouped() {
		t.Fatalf("single-member group survived load: %q", st.Pins[2].GroupID)
	}
}

func TestLoadAll_MigratesSnapshotPins(t *testing.T) {
	store := kv.NewMemory()
	seed(t, store, SnapshotsKey, `[{"name":"old","pins":[{"id":"a","x":0,"y":0,"text":""}]}]`)
	e := New(WithStore(store), WithClock(func() time.Time { return testNow }), WithIDGenerator(func() string { return "snap-1" }))

	st := e.LoadAll()
	snap := st.Snapshots[0]
	if snap.ID != "snap-1" || snap.CreatedAt != testNow.UnixMilli() {
		t.Fatalf("snapshot metadata not filled: %+v", snap)
	}
	if snap.Pins[0].Thought != ThoughtIdea {
		t.Fatalf("snapshot pin thought = %q, want idea", snap.Pins[0].Thought)
	}
}

func TestLoadAll_MalformedPayloads(t *testing.T) {
	store := kv.NewMemory()
	seed(t, store, PinsKey, `{"not":"an array"}`)
	seed(t, store, SnapshotsKey, `[{`)

	var buf bytes.Buffer
	e := New(WithStore(store), WithLogger(logging.New(&buf, logging.LevelWarn)))

	st := e.LoadAll()
	if len(st.Pins) != 0 || len(st.Snapshots) != 0 {
		t.Fatalf("malformed payloads produced state: %+v", st)
	}
	if got := strings.Count(buf.String(), "malformed"); got != 2 {
		t.Fatalf("logged %d malformed warnings, want 2:\n%s", got, buf.String())
	}
}

func TestLoadAll_MissingKeysAreQuiet(t *testing.T) {
	var buf bytes.Buffer
	e := New(WithStore(kv.NewMemory()), WithLogger(logging.New(&buf, logging.LevelWarn)))

	st := e.LoadAll()
	if len(st.Pins) != 0 || len(st.Snapshots) != 0 {
		t.Fatalf("empty store produced state: %+v", st)
	}
	if buf.Len() != 0 {
		t.Fatalf("missing keys logged warnings:\n%s", buf.String())
	}
}

func TestPersist_NopStore(t *testing.T) {
	e := New()
	e.LoadAll()
	e.BeginAction()
	st := e.AddPin()
	if len(st.Pins) != 1 {
		t.Fatalf("len(Pins) = %d, want 1", len(st.Pins))
	}
	if len(e.Undo().Pins) != 0 {
		t.Fatalf("undo without a store did not work")
	}
}

func TestPersist_StoreFailuresAreLogged(t *testing.T) {
	store := &failingStore{
		getErr: errors.New("disk on fire"),
		putErr: errors.New("quota exceeded"),
	}
	var buf bytes.Buffer
	e := New(WithStore(store), WithLogger(logging.New(&buf, logging.LevelWarn)))

	e.LoadAll()
	st := e.AddPin()
	e.SaveSnapshot("s")

	if len(st.Pins) != 1 || len(e.Snapshots()) != 1 {
		t.Fatalf("in-memory state lost after store failures: %+v", e.State())
	}
	if store.puts != 2 {
		t.Fatalf("store puts = %d, want 2", store.puts)
	}
	out := buf.String()
	for _, want := range []string{"disk on fire", "quota exceeded"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log missing %q:\n%s", want, out)
		}
	}
}
