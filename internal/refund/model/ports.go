package model

import (
	"context"

	"github.com/refundflow/server/internal/refund/tree"
)

// ExtractionContext gives the extractor the conversational state it needs to
// resolve contextual answers such as a bare "Yes" to the last question asked.
type ExtractionContext struct {
	SlotsSoFar    map[tree.Slot]string
	LastAskedSlot tree.Slot
	RecentHistory []Turn
}

// Extractor maps a user utterance to candidate slot values. Implementations
// may be network-bound; the session makes at most one call per turn and
// recovers from any error with a deterministic local fallback. Returned
// entries are only honoured when the slot is registered and the value lies
// in its domain.
type Extractor interface {
	Extract(ctx context.Context, utterance string, ec ExtractionContext) (map[tree.Slot]string, error)
}

// Phraser renders a missing slot into the question put to the user. The
// rendered text must enumerate the domain's valid values.
type Phraser interface {
	Render(ctx context.Context, slot tree.Slot, domain []string) (string, error)
}

// SessionRepository persists session snapshots.
type SessionRepository interface {
	Save(ctx context.Context, snap SessionSnapshot) error
	Load(ctx context.Context, sessionID string) (*SessionSnapshot, error)
	Delete(ctx context.Context, sessionID string) error
}
