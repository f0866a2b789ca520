// Package slots holds the validated slot store for one conversation session.
package slots

import (
	logx "github.com/refundflow/server/pkg/logger"

	"github.com/refundflow/server/internal/refund/tree"
)

// Store maps conversation-derived slots to validated values. Every stored
// value belongs to its slot's domain; writes of out-of-domain values are
// rejected without error and the slot stays absent. Overwriting an
// already-answered slot is permitted, which is how corrections work.
//
// A Store is owned by exactly one session and is not safe for concurrent use.
type Store struct {
	values map[tree.Slot]string
}

// New returns an empty store.
func New() *Store {
	return &Store{values: make(map[tree.Slot]string)}
}

// Set stores value under slot when the slot is registered and the value is in
// its domain. It reports whether the write was accepted.
func (s *Store) Set(slot tree.Slot, value string) bool {
	if !tree.Known(slot) || !tree.ValidValue(slot, value) {
		logx.Debug().
			Str("slot", string(slot)).
			Str("value", value).
			Msg("Rejected out-of-domain slot write")
		return false
	}
	s.values[slot] = value
	return true
}

// Get returns the stored value and whether the slot has been answered.
func (s *Store) Get(slot tree.Slot) (string, bool) {
	v, ok := s.values[slot]
	return v, ok
}

// Len returns the number of answered slots.
func (s *Store) Len() int {
	return len(s.values)
}

// Values returns a copy of the stored slot values.
func (s *Store) Values() map[tree.Slot]string {
	out := make(map[tree.Slot]string, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out
}

// Clear removes every stored value.
func (s *Store) Clear() {
	s.values = make(map[tree.Slot]string)
}
