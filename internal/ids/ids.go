package ids

import (
	"strconv"
	"sync/atomic"

	"github.com/google/uuid"
)

// Source hands out identifiers for alerts the export did not number.
// Injected so tests can supply a deterministic sequence instead of relying
// on process-global state.
type Source interface {
	NewID() string
}

type uuidSource struct{}

func (uuidSource) NewID() string {
	return "alert-" + uuid.NewString()
}

func NewUUIDSource() Source {
	return uuidSource{}
}

// Sequence generates prefix-0, prefix-1, ... and is safe for concurrent use.
type Sequence struct {
	prefix string
	n      atomic.Int64
}

func NewSequence(prefix string) *Sequence {
	if prefix == "" {
		prefix = "alert"
	}
	return &Sequence{prefix: prefix}
}

func (s *Sequence) NewID() string {
	return s.prefix + "-" + strconv.FormatInt(s.n.Add(1)-1, 10)
}
