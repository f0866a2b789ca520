package model

import (
	"time"

	"github.com/refundflow/server/internal/refund/tree"
)

// SessionStatus is the lifecycle state of a conversation session.
type SessionStatus string

const (
	StatusActive   SessionStatus = "ACTIVE"
	StatusNeedInfo SessionStatus = "NEED_INFO"
	StatusDecided  SessionStatus = "DECIDED"
	StatusError    SessionStatus = "ERROR"
)

// ProfileFacts are the four account-level slots supplied once per session
// from customer data. They are never elicited conversationally and stay
// immutable for the session's lifetime.
type ProfileFacts struct {
	CustomerID    string `json:"customer_id"`
	AccountStatus string `json:"account_status"`
	LoyaltyTier   string `json:"loyalty_tier"`
	FraudFlag     string `json:"fraud_flag"`
	ReturnAbuse   string `json:"return_abuse"`
}

// Valid reports whether every profile fact lies in its slot's domain.
func (p ProfileFacts) Valid() bool {
	return tree.ValidValue(tree.SlotAccountStatus, p.AccountStatus) &&
		tree.ValidValue(tree.SlotLoyaltyTier, p.LoyaltyTier) &&
		tree.ValidValue(tree.SlotFraudFlag, p.FraudFlag) &&
		tree.ValidValue(tree.SlotReturnAbuse, p.ReturnAbuse)
}

// Turn roles.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Turn is one entry of a session's conversation history.
type Turn struct {
	Role      string    `json:"role"`
	Text      string    `json:"content"`
	Timestamp time.Time `json:"timestamp"`
}

// SessionSnapshot is the exported form of a session. Field names follow the
// conversation export document format; round-tripping a snapshot through
// JSON reproduces an equivalent session.
type SessionSnapshot struct {
	SessionID     string            `json:"session_id"`
	Profile       ProfileFacts      `json:"customer_data"`
	Slots         map[string]string `json:"extracted_info"`
	History       []Turn            `json:"conversation_history"`
	Status        SessionStatus     `json:"final_status"`
	LastAskedSlot string            `json:"last_asked_slot,omitempty"`
	ExportedAt    time.Time         `json:"export_timestamp"`
}
