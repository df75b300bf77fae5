package board

import "time"

// Cardinalities of the cyclic style enums.
const (
	ShapeCount = 5
	MoodCount  = 4
)

// Thought is the semantic tag shown on a pin.
type Thought string

const (
	ThoughtQuestion Thought = "question"
	ThoughtIdea     Thought = "idea"
	ThoughtDoubt    Thought = "doubt"
	ThoughtDecision Thought = "decision"
)

var thoughtOrder = []Thought{ThoughtQuestion, ThoughtIdea, ThoughtDoubt, ThoughtDecision}

// Thoughts returns the cycle order of thought tags.
func Thoughts() []Thought {
	out := make([]Thought, len(thoughtOrder))
	copy(out, thoughtOrder)
	return out
}

// Next returns the following tag in cycle order. Unrecognised values restart
// the cycle at question.
func (t Thought) Next() Thought {
	for i, v := range thoughtOrder {
		if v == t {
			return thoughtOrder[(i+1)%len(thoughtOrder)]
		}
	}
	return thoughtOrder[0]
}

// Valid reports whether t is one of the known tags.
func (t Thought) Valid() bool {
	for _, v := range thoughtOrder {
		if v == t {
			return true
		}
	}
	return false
}

// ImageSize is the natural size of an embedded image.
type ImageSize struct {
	W float64 `json:"w"`
	H float64 `json:"h"`
}

// Pin is a single note on the board. CreatedAt is epoch milliseconds so the
// persisted layout stays a plain JSON number.
type Pin struct {
	ID        string     `json:"id"`
	X         float64    `json:"x"`
	Y         float64    `json:"y"`
	Text      string     `json:"text"`
	Image     string     `json:"image,omitempty"`
	ImageSize *ImageSize `json:"imageSize,omitempty"`
	Shape     int        `json:"shape"`
	Mood      int        `json:"mood"`
	Thought   Thought    `json:"thought"`
	GroupID   string     `json:"groupId,omitempty"`
	CreatedAt int64      `json:"createdAt"`
}

// Created returns CreatedAt as a time.
func (p Pin) Created() time.Time {
	return time.UnixMilli(p.CreatedAt)
}

// HasImage reports whether the pin carries an image payload.
func (p Pin) HasImage() bool {
	return p.Image != ""
}

// Grouped reports whether the pin belongs to a group.
func (p Pin) Grouped() bool {
	return p.GroupID != ""
}

func (p Pin) clone() Pin {
	if p.ImageSize != nil {
		size := *p.ImageSize
		p.ImageSize = &size
	}
	return p
}

// clonePins copies the collection. Strings are immutable, so image payloads
// are shared between copies without risk of aliasing.
func clonePins(pins []Pin) []Pin {
	if pins == nil {
		return nil
	}
	out := make([]Pin, len(pins))
	for i, p := range pins {
		out[i] = p.clone()
	}
	return out
}

// Snapshot is a named copy of the whole pin collection.
type Snapshot struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Pins      []Pin  `json:"pins"`
	CreatedAt int64  `json:"createdAt"`
}

// Created returns CreatedAt as a time.
func (s Snapshot) Created() time.Time {
	return time.UnixMilli(s.CreatedAt)
}

func (s Snapshot) clone() Snapshot {
	s.Pins = clonePins(s.Pins)
	return s
}

func cloneSnapshots(snaps []Snapshot) []Snapshot {
	if snaps == nil {
		return nil
	}
	out := make([]Snapshot, len(snaps))
	for i, s := range snaps {
		out[i] = s.clone()
	}
	return out
}

// State is a copy of everything a renderer needs. Modifying it does not
// affect the engine.
type State struct {
	Pins         []Pin
	Snapshots    []Snapshot
	HistoryDepth int
	FutureDepth  int
}

// CanUndo reports whether an undo step is available.
func (s State) CanUndo() bool { return s.HistoryDepth > 0 }

// CanRedo reports whether a redo step is available.
func (s State) CanRedo() bool { return s.FutureDepth > 0 }

// Pin returns the pin with the given id.
func (s State) Pin(id string) (Pin, bool) {
	for _, p := range s.Pins {
		if p.ID == id {
			return p, true
		}
	}
	return Pin{}, false
}

// Clone returns a deep copy of the state.
func (s State) Clone() State {
	s.Pins = clonePins(s.Pins)
	s.Snapshots = cloneSnapshots(s.Snapshots)
	return s
}
