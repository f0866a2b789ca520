package session

import (
	"fmt"

	errx "github.com/refundflow/server/internal/core/error"
	"github.com/refundflow/server/internal/refund/model"
	"github.com/refundflow/server/internal/refund/nav"
	"github.com/refundflow/server/internal/refund/tree"
)

// Export captures the full session state as a snapshot document: profile
// facts, slot values, turn history, status and an export timestamp.
// Importing the snapshot reproduces an equivalent session.
func (s *Session) Export() model.SessionSnapshot {
	slotValues := make(map[string]string, s.store.Len())
	for slot, value := range s.store.Values() {
		slotValues[string(slot)] = value
	}
	return model.SessionSnapshot{
		SessionID:     s.id,
		Profile:       s.profile,
		Slots:         slotValues,
		History:       s.History(),
		Status:        s.status,
		LastAskedSlot: string(s.lastAsked),
		ExportedAt:    s.now().UTC(),
	}
}

// Import reconstructs a session from a snapshot, wiring the supplied
// collaborators. Slot values go through domain validation again, so a
// tampered document cannot smuggle out-of-domain values into the store. A
// DECIDED snapshot has its terminal result recomputed from the restored
// state.
func Import(cfg Config, snap model.SessionSnapshot) (*Session, error) {
	if snap.SessionID == "" {
		return nil, errx.Wrap(fmt.Errorf("snapshot has no session id"), errx.ExportErrorMessage)
	}

	s := New(cfg)
	s.id = snap.SessionID
	s.profile = snap.Profile
	s.lastAsked = tree.Slot(snap.LastAskedSlot)
	s.history = make([]model.Turn, len(snap.History))
	copy(s.history, snap.History)

	for name, value := range snap.Slots {
		if !s.store.Set(tree.Slot(name), value) {
			return nil, errx.Wrap(fmt.Errorf("snapshot slot %s holds out-of-domain value %q", name, value), errx.ExportErrorMessage)
		}
	}

	switch snap.Status {
	case model.StatusActive, model.StatusNeedInfo, model.StatusError:
		s.status = snap.Status
	case model.StatusDecided:
		result, err := nav.Decide(s.profile, s.store)
		if err != nil {
			return nil, err
		}
		if result.Status != nav.StatusDecision {
			return nil, errx.Wrap(fmt.Errorf("snapshot is DECIDED but restored state needs %s", result.Missing), errx.ExportErrorMessage)
		}
		s.decision = &result
		s.status = model.StatusDecided
	default:
		return nil, errx.Wrap(fmt.Errorf("snapshot has unknown status %q", snap.Status), errx.ExportErrorMessage)
	}

	return s, nil
}
