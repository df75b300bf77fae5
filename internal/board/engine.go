package board

import (
	"math/rand/v2"
	"time"

	"github.com/five82/thinkspace/internal/kv"
	"github.com/five82/thinkspace/internal/logging"
)

// Default placement of new pins in board coordinates.
const (
	DefaultPinX   = 180.0
	DefaultPinY   = 180.0
	PinJitter     = 40.0
	DefaultImageX = 200.0
	DefaultImageY = 200.0
)

const defaultStoreTimeout = 2 * time.Second

// Engine owns the board: pins, undo/redo stacks and saved snapshots.
//
// Every mutator derives a fresh pin slice and never writes into a slice that
// may already be referenced by a history entry. Unknown ids are ignored.
// Methods are not safe for concurrent use; wrap the engine in a state.Store
// when more than one goroutine needs it.
type Engine struct {
	pins      []Pin
	history   [][]Pin
	future    [][]Pin
	snapshots []Snapshot

	store        kv.Store
	storeTimeout time.Duration
	log          *logging.Logger
	now          func() time.Time
	rng          *rand.Rand
	pinIDs       *pinIDs
	newID        func() string
}

// Option configures an Engine.
type Option func(*Engine)

// WithStore sets the durable store. The default is kv.Nop.
func WithStore(s kv.Store) Option {
	return func(e *Engine) {
		if s != nil {
			e.store = s
		}
	}
}

// WithLogger sets the logger used for persistence warnings.
func WithLogger(l *logging.Logger) Option {
	return func(e *Engine) {
		if l != nil {
			e.log = l
		}
	}
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithRand sets the source used for placement jitter.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) {
		if r != nil {
			e.rng = r
		}
	}
}

// WithIDGenerator overrides the generator for group and snapshot ids.
func WithIDGenerator(fn func() string) Option {
	return func(e *Engine) {
		if fn != nil {
			e.newID = fn
		}
	}
}

// WithStoreTimeout bounds each store call.
func WithStoreTimeout(d time.Duration) Option {
	return func(e *Engine) {
		if d > 0 {
			e.storeTimeout = d
		}
	}
}

// New returns an empty engine. Call LoadAll to read persisted state.
func New(opts ...Option) *Engine {
	e := &Engine{
		store:        kv.Nop{},
		storeTimeout: defaultStoreTimeout,
		log:          logging.Discard(),
		now:          time.Now,
		rng:          rand.New(rand.NewPCG(uint64(time.Now().UnixNano()), 0x9e3779b97f4a7c15)),
		pinIDs:       newPinIDs(),
		newID:        newUUID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns a deep copy of the renderable state.
func (e *Engine) State() State {
	return State{
		Pins:         clonePins(e.pins),
		Snapshots:    cloneSnapshots(e.snapshots),
		HistoryDepth: len(e.history),
		FutureDepth:  len(e.future),
	}
}

// Pins returns a copy of the current pin collection.
func (e *Engine) Pins() []Pin {
	return clonePins(e.pins)
}

// Pin returns the pin with the given id.
func (e *Engine) Pin(id string) (Pin, bool) {
	if i := e.indexOf(id); i >= 0 {
		return e.pins[i].clone(), true
	}
	return Pin{}, false
}

func (e *Engine) indexOf(id string) int {
	for i, p := range e.pins {
		if p.ID == id {
			return i
		}
	}
	return -1
}

func (e *Engine) newPin(x, y float64) Pin {
	now := e.now()
	return Pin{
		ID:        e.pinIDs.next(now),
		X:         x,
		Y:         y,
		Thought:   ThoughtIdea,
		CreatedAt: now.UnixMilli(),
	}
}

// setPins installs a freshly derived collection and persists it.
func (e *Engine) setPins(pins []Pin) State {
	e.pins = pins
	e.persistPins()
	return e.State()
}

// AddPin appends a text pin near the default position. A small random offset
// keeps repeated adds from stacking exactly.
func (e *Engine) AddPin() State {
	x := DefaultPinX + e.rng.Float64()*PinJitter
	y := DefaultPinY + e.rng.Float64()*PinJitter
	return e.setPins(appendPin(e.pins, e.newPin(x, y)))
}

// AddImagePin appends a pin carrying an image data URI. width and height are
// the image's natural size.
func (e *Engine) AddImagePin(src string, width, height float64) State {
	p := e.newPin(DefaultImageX, DefaultImageY)
	p.Image = src
	p.ImageSize = &ImageSize{W: width, H: height}
	return e.setPins(appendPin(e.pins, p))
}

func appendPin(pins []Pin, p Pin) []Pin {
	out := make([]Pin, 0, len(pins)+1)
	out = append(out, pins...)
	return append(out, p)
}

// mapPin derives a new collection with fn applied to the pin matching id.
// It reports false, and allocates nothing, when id is unknown.
func (e *Engine) mapPin(id string, fn func(Pin) Pin) ([]Pin, bool) {
	i := e.indexOf(id)
	if i < 0 {
		return nil, false
	}
	out := make([]Pin, len(e.pins))
	copy(out, e.pins)
	out[i] = fn(out[i].clone())
	return out, true
}

func (e *Engine) updatePin(id string, fn func(Pin) Pin) State {
	pins, ok := e.mapPin(id, fn)
	if !ok {
		return e.State()
	}
	return e.setPins(pins)
}

// MovePin puts the pin at (x, y). Every other member of the pin's group moves
// by the same delta.
func (e *Engine) MovePin(id string, x, y float64) State {
	i := e.indexOf(id)
	if i < 0 {
		return e.State()
	}
	target := e.pins[i]
	if !target.Grouped() {
		return e.updatePin(id, func(p Pin) Pin {
			p.X, p.Y = x, y
			return p
		})
	}

	dx, dy := x-target.X, y-target.Y
	out := make([]Pin, len(e.pins))
	for j, p := range e.pins {
		p = p.clone()
		switch {
		case j == i:
			p.X, p.Y = x, y
		case p.GroupID == target.GroupID:
			p.X += dx
			p.Y += dy
		}
		out[j] = p
	}
	return e.setPins(out)
}

// UpdatePinText replaces the pin's text.
func (e *Engine) UpdatePinText(id, text string) State {
	return e.updatePin(id, func(p Pin) Pin {
		p.Text = text
		return p
	})
}

// CyclePinShape advances the border style.
func (e *Engine) CyclePinShape(id string) State {
	return e.updatePin(id, func(p Pin) Pin {
		p.Shape = wrap(p.Shape+1, ShapeCount)
		return p
	})
}

// CyclePinMood advances the mood colour.
func (e *Engine) CyclePinMood(id string) State {
	return e.updatePin(id, func(p Pin) Pin {
		p.Mood = wrap(p.Mood+1, MoodCount)
		return p
	})
}

// CyclePinThought advances the thought tag.
func (e *Engine) CyclePinThought(id string) State {
	return e.updatePin(id, func(p Pin) Pin {
		p.Thought = p.Thought.Next()
		return p
	})
}

// ClearBoard drops pins, history and snapshots and persists the empty board.
// It cannot be undone.
func (e *Engine) ClearBoard() State {
	e.pins = []Pin{}
	e.history = nil
	e.future = nil
	e.snapshots = []Snapshot{}
	e.persistPins()
	e.persistSnapshots()
	return e.State()
}

func wrap(v, n int) int {
	return ((v % n) + n) % n
}
