package board

import (
	"crypto/rand"
	"time"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
)

// pinIDs hands out ULIDs. Monotonic entropy keeps ids strictly increasing
// for pins created within the same millisecond. Not safe for concurrent use;
// the engine is single-threaded.
type pinIDs struct {
	entropy *ulid.MonotonicEntropy
}

func newPinIDs() *pinIDs {
	return &pinIDs{entropy: ulid.Monotonic(rand.Reader, 0)}
}

func (g *pinIDs) next(t time.Time) string {
	return ulid.MustNew(ulid.Timestamp(t), g.entropy).String()
}

func newUUID() string {
	return uuid.NewString()
}
