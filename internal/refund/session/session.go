// Package session orchestrates one customer's refund conversation: it feeds
// utterances through the extractor, commits validated slot values, walks the
// eligibility graph and phrases the next question when a fact is missing.
package session

import (
	"context"
	"time"

	"github.com/google/uuid"

	logx "github.com/refundflow/server/pkg/logger"

	"github.com/refundflow/server/internal/refund/extract"
	"github.com/refundflow/server/internal/refund/model"
	"github.com/refundflow/server/internal/refund/nav"
	"github.com/refundflow/server/internal/refund/phrase"
	"github.com/refundflow/server/internal/refund/slots"
	"github.com/refundflow/server/internal/refund/tree"
)

const defaultHistoryMaxTurns = 6

// Config wires a session's collaborators and profile facts.
type Config struct {
	Profile   model.ProfileFacts
	Extractor model.Extractor
	Phraser   model.Phraser
	// HistoryMaxTurns bounds the recent history handed to the extractor.
	// Zero means the default.
	HistoryMaxTurns int
}

// Reply is what one processed turn yields: either the next question to ask,
// a terminal decision with its audit path, or a diagnostic when navigation
// failed structurally.
type Reply struct {
	Status     model.SessionStatus
	Question   string
	Missing    tree.Slot
	Rationale  string
	Outcome    tree.Outcome
	Path       []tree.NodeID
	Diagnostic string
}

// Session is the per-customer conversation state machine. A session
// exclusively owns its slot store, history and status; concurrent customers
// need independent sessions. Turns are strictly sequential.
type Session struct {
	id        string
	profile   model.ProfileFacts
	store     *slots.Store
	history   []model.Turn
	lastAsked tree.Slot
	status    model.SessionStatus
	decision  *nav.Result

	extractor       model.Extractor
	phraser         model.Phraser
	historyMaxTurns int
	now             func() time.Time
}

// New creates an ACTIVE session with an empty slot store and the supplied
// profile facts.
func New(cfg Config) *Session {
	maxTurns := cfg.HistoryMaxTurns
	if maxTurns <= 0 {
		maxTurns = defaultHistoryMaxTurns
	}
	return &Session{
		id:              uuid.NewString(),
		profile:         cfg.Profile,
		store:           slots.New(),
		status:          model.StatusActive,
		extractor:       cfg.Extractor,
		phraser:         cfg.Phraser,
		historyMaxTurns: maxTurns,
		now:             time.Now,
	}
}

// ReceiveUtterance processes one customer turn. Collaborator failures are
// absorbed locally: a failed extraction falls back to keyword matching keyed
// on the last question asked, and a failed phrasing falls back to the fixed
// question templates. Once the session is DECIDED, further utterances leave
// all state untouched and return the standing decision.
func (s *Session) ReceiveUtterance(ctx context.Context, text string) Reply {
	if s.status == model.StatusDecided && s.decision != nil {
		return s.decisionReply(*s.decision)
	}

	s.appendTurn(model.RoleUser, text)

	candidates := s.extractCandidates(ctx, text)
	for slot, value := range candidates {
		if s.store.Set(slot, value) {
			logx.Debug().
				Str("session_id", s.id).
				Str("slot", string(slot)).
				Str("value", value).
				Msg("Committed slot value")
		}
	}

	result, err := nav.Decide(s.profile, s.store)
	if err != nil {
		// Defensive: the decision procedure is total for validated input.
		// The session stays usable and the next utterance is a retry.
		logx.Error().Err(err).Str("session_id", s.id).Msg("Navigation failed structurally")
		s.status = model.StatusError
		return Reply{Status: model.StatusError, Diagnostic: err.Error()}
	}

	if result.Status == nav.StatusNeedInfo {
		s.lastAsked = result.Missing
		question := s.renderQuestion(ctx, result.Missing)
		s.appendTurn(model.RoleAssistant, question)
		s.status = model.StatusNeedInfo
		return Reply{
			Status:    model.StatusNeedInfo,
			Question:  question,
			Missing:   result.Missing,
			Rationale: result.Rationale,
			Path:      result.Path,
		}
	}

	s.decision = &result
	s.status = model.StatusDecided
	s.appendTurn(model.RoleAssistant, result.Outcome.Reason)
	logx.Info().
		Str("session_id", s.id).
		Str("outcome", string(result.Outcome.ID)).
		Str("kind", string(result.Outcome.Kind)).
		Msg("Refund request decided")
	return s.decisionReply(result)
}

func (s *Session) decisionReply(result nav.Result) Reply {
	return Reply{
		Status:  model.StatusDecided,
		Outcome: result.Outcome,
		Path:    result.Path,
	}
}

// extractCandidates makes at most one extractor call and falls back to the
// deterministic keyword matcher when it fails.
func (s *Session) extractCandidates(ctx context.Context, text string) map[tree.Slot]string {
	candidates, err := s.extractor.Extract(ctx, text, model.ExtractionContext{
		SlotsSoFar:    s.store.Values(),
		LastAskedSlot: s.lastAsked,
		RecentHistory: s.recentHistory(),
	})
	if err != nil {
		logx.Warn().Err(err).Str("session_id", s.id).Msg("Extraction failed, using keyword fallback")
		return extract.Fallback(text, s.lastAsked)
	}
	return candidates
}

// renderQuestion makes at most one phraser call and falls back to the fixed
// question templates when it fails.
func (s *Session) renderQuestion(ctx context.Context, slot tree.Slot) string {
	question, err := s.phraser.Render(ctx, slot, tree.Domain(slot))
	if err != nil {
		logx.Warn().Err(err).Str("session_id", s.id).Str("slot", string(slot)).
			Msg("Phrasing failed, using fallback question")
		return phrase.Question(slot)
	}
	return question
}

func (s *Session) appendTurn(role, text string) {
	s.history = append(s.history, model.Turn{Role: role, Text: text, Timestamp: s.now().UTC()})
}

func (s *Session) recentHistory() []model.Turn {
	if len(s.history) <= s.historyMaxTurns {
		out := make([]model.Turn, len(s.history))
		copy(out, s.history)
		return out
	}
	src := s.history[len(s.history)-s.historyMaxTurns:]
	out := make([]model.Turn, len(src))
	copy(out, src)
	return out
}

// Reset clears the slot store, history and pending question and returns the
// session to ACTIVE. Profile facts are retained.
func (s *Session) Reset() {
	s.store.Clear()
	s.history = nil
	s.lastAsked = ""
	s.decision = nil
	s.status = model.StatusActive
}

// ResetWithProfile resets the session and supplies a new set of profile facts.
func (s *Session) ResetWithProfile(profile model.ProfileFacts) {
	s.Reset()
	s.profile = profile
}

// ID returns the session identifier.
func (s *Session) ID() string { return s.id }

// Status returns the current lifecycle state.
func (s *Session) Status() model.SessionStatus { return s.status }

// Profile returns the session's profile facts.
func (s *Session) Profile() model.ProfileFacts { return s.profile }

// LastAskedSlot returns the slot of the pending question, if any.
func (s *Session) LastAskedSlot() tree.Slot { return s.lastAsked }

// Slots returns a copy of the committed slot values.
func (s *Session) Slots() map[tree.Slot]string { return s.store.Values() }

// History returns a copy of the full turn history.
func (s *Session) History() []model.Turn {
	out := make([]model.Turn, len(s.history))
	copy(out, s.history)
	return out
}

// Decision returns the terminal result, if the session is decided.
func (s *Session) Decision() (nav.Result, bool) {
	if s.decision == nil {
		return nav.Result{}, false
	}
	return *s.decision, true
}
