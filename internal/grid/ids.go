package grid

import (
	"fmt"
	"strconv"
	"sync/atomic"
	"time"
)

// Sequence is an IDGen producing ids unique within a session. The prefix
// separates sessions; the counter separates ids within one.
type Sequence struct {
	prefix string
	n      atomic.Uint64
}

// NewSequence creates a generator. An empty prefix is derived from the clock.
func NewSequence(prefix string) *Sequence {
	if prefix == "" {
		prefix = strconv.FormatInt(time.Now().UnixNano(), 36)
	}
	return &Sequence{prefix: prefix}
}

// RowID returns a fresh row id.
func (s *Sequence) RowID() string { return fmt.Sprintf("row_%s_%d", s.prefix, s.n.Add(1)) }

// ColumnID returns a fresh column id.
func (s *Sequence) ColumnID() string { return fmt.Sprintf("col_%s_%d", s.prefix, s.n.Add(1)) }
