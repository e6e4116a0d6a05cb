// Package idx generates the ULID identifiers used for every stored entity.
// IDs sort by creation time, which keeps newest-first listings index friendly.
package idx

import (
	"crypto/rand"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

type ID string

var (
	mu      sync.Mutex
	entropy = ulid.Monotonic(rand.Reader, 0)
)

// New returns an ID for the current time.
func New() ID {
	return NewAt(time.Now().UTC())
}

// NewAt returns an ID whose timestamp is t. IDs created within the same
// millisecond remain strictly increasing.
func NewAt(t time.Time) ID {
	mu.Lock()
	defer mu.Unlock()

	return ID(ulid.MustNew(ulid.Timestamp(t), entropy).String())
}

// Valid reports whether s is a canonical ULID. Lookups use it to reject
// malformed identifiers without touching the store.
func Valid(s string) bool {
	_, err := ulid.ParseStrict(strings.TrimSpace(s))
	return err == nil
}

func (id ID) String() string { return string(id) }

// Time is the creation time embedded in id, or the zero time when id is
// malformed.
func (id ID) Time() time.Time {
	u, err := ulid.ParseStrict(string(id))
	if err != nil {
		return time.Time{}
	}
	return ulid.Time(u.Time()).UTC()
}
