package session

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refundflow/server/internal/refund/model"
	"github.com/refundflow/server/internal/refund/phrase"
	"github.com/refundflow/server/internal/refund/tree"
)

// scriptedExtractor returns its queued candidate maps in order, then errors.
type scriptedExtractor struct {
	outs  []map[tree.Slot]string
	calls int
}

func (e *scriptedExtractor) Extract(ctx context.Context, utterance string, ec model.ExtractionContext) (map[tree.Slot]string, error) {
	if e.calls >= len(e.outs) {
		return nil, errors.New("no scripted output left")
	}
	out := e.outs[e.calls]
	e.calls++
	return out, nil
}

// failingExtractor always errors, forcing the keyword fallback.
type failingExtractor struct{}

func (failingExtractor) Extract(ctx context.Context, utterance string, ec model.ExtractionContext) (map[tree.Slot]string, error) {
	return nil, errors.New("model unavailable")
}

// failingPhraser always errors, forcing the fixed question templates.
type failingPhraser struct{}

func (failingPhraser) Render(ctx context.Context, slot tree.Slot, domain []string) (string, error) {
	return "", errors.New("model unavailable")
}

// echoPhraser returns a recognisable question per slot.
type echoPhraser struct{}

func (echoPhraser) Render(ctx context.Context, slot tree.Slot, domain []string) (string, error) {
	return "asking about " + string(slot), nil
}

func goodProfile() model.ProfileFacts {
	return model.ProfileFacts{
		CustomerID:    "CUST_67890",
		AccountStatus: "good_standing",
		LoyaltyTier:   "Gold",
		FraudFlag:     "No",
		ReturnAbuse:   "No",
	}
}

func TestNewSessionStartsActive(t *testing.T) {
	sess := New(Config{Profile: goodProfile(), Extractor: &scriptedExtractor{}, Phraser: echoPhraser{}})

	assert.NotEmpty(t, sess.ID())
	assert.Equal(t, model.StatusActive, sess.Status())
	assert.Empty(t, sess.Slots())
	assert.Empty(t, sess.History())
	_, decided := sess.Decision()
	assert.False(t, decided)
}

func TestReceiveUtteranceAsksForNextMissingSlot(t *testing.T) {
	sess := New(Config{
		Profile: goodProfile(),
		Extractor: &scriptedExtractor{outs: []map[tree.Slot]string{
			{tree.SlotItemCategory: "Physical", tree.SlotItemReturnable: "Yes"},
		}},
		Phraser: echoPhraser{},
	})

	reply := sess.ReceiveUtterance(context.Background(), "I want to return my laptop, it is returnable")

	require.Equal(t, model.StatusNeedInfo, reply.Status)
	assert.Equal(t, tree.SlotItemCondition, reply.Missing)
	assert.Equal(t, "asking about item_condition", reply.Question)
	assert.NotEmpty(t, reply.Rationale)
	assert.Equal(t, tree.SlotItemCondition, sess.LastAskedSlot())
	assert.Equal(t, model.StatusNeedInfo, sess.Status())

	history := sess.History()
	require.Len(t, history, 2, "one user turn and one assistant turn per processed utterance")
	assert.Equal(t, model.RoleUser, history[0].Role)
	assert.Equal(t, model.RoleAssistant, history[1].Role)
	assert.Equal(t, reply.Question, history[1].Text)
}

func TestReceiveUtteranceReachesDecision(t *testing.T) {
	sess := New(Config{
		Profile: goodProfile(),
		Extractor: &scriptedExtractor{outs: []map[tree.Slot]string{
			{
				tree.SlotItemCategory:   "Physical",
				tree.SlotItemReturnable: "Yes",
				tree.SlotItemCondition:  "normal",
				tree.SlotReturnWindow:   "within",
				tree.SlotDelivered:      "Yes",
				tree.SlotSellerType:     "In-house",
				tree.SlotInHousePolicy:  "Yes",
				tree.SlotPaymentMethod:  "CreditCard",
			},
		}},
		Phraser: echoPhraser{},
	})

	reply := sess.ReceiveUtterance(context.Background(), "here is everything at once")

	require.Equal(t, model.StatusDecided, reply.Status)
	assert.Equal(t, tree.RefundApproved, reply.Outcome.ID)
	assert.NotEmpty(t, reply.Path)
	assert.Equal(t, model.StatusDecided, sess.Status())

	decision, ok := sess.Decision()
	require.True(t, ok)
	assert.Equal(t, tree.RefundApproved, decision.Outcome.ID)

	// The outcome reason lands in the history as the closing assistant turn.
	history := sess.History()
	assert.Equal(t, reply.Outcome.Reason, history[len(history)-1].Text)
}

func TestDecidedSessionIsFrozen(t *testing.T) {
	extractor := &scriptedExtractor{outs: []map[tree.Slot]string{
		{tree.SlotItemCategory: "Digital"},
	}}
	sess := New(Config{Profile: goodProfile(), Extractor: extractor, Phraser: echoPhraser{}})

	first := sess.ReceiveUtterance(context.Background(), "refund my software please")
	require.Equal(t, model.StatusDecided, first.Status)
	historyLen := len(sess.History())

	second := sess.ReceiveUtterance(context.Background(), "but I really want my money back")
	assert.Equal(t, first, second, "further utterances return the standing decision")
	assert.Len(t, sess.History(), historyLen, "frozen sessions record no new turns")
	assert.Equal(t, 1, extractor.calls, "frozen sessions never call the extractor")
}

func TestExtractionFailureFallsBackToKeywords(t *testing.T) {
	sess := New(Config{Profile: goodProfile(), Extractor: failingExtractor{}, Phraser: failingPhraser{}})

	// First utterance seeds category via the unprompted keyword hints.
	reply := sess.ReceiveUtterance(context.Background(), "my laptop order")
	require.Equal(t, model.StatusNeedInfo, reply.Status)
	require.Equal(t, tree.SlotItemReturnable, reply.Missing)

	// A plain yes answers the slot that was just asked about.
	reply = sess.ReceiveUtterance(context.Background(), "yes")
	require.Equal(t, model.StatusNeedInfo, reply.Status)
	assert.Equal(t, tree.SlotItemCondition, reply.Missing)
	assert.Equal(t, "Yes", sess.Slots()[tree.SlotItemReturnable])
}

func TestPhrasingFailureFallsBackToTemplates(t *testing.T) {
	sess := New(Config{
		Profile:   goodProfile(),
		Extractor: &scriptedExtractor{outs: []map[tree.Slot]string{{}}},
		Phraser:   failingPhraser{},
	})

	reply := sess.ReceiveUtterance(context.Background(), "hello")
	require.Equal(t, model.StatusNeedInfo, reply.Status)
	assert.Equal(t, phrase.Question(reply.Missing), reply.Question)
}

func TestUnextractableAnswerRepeatsTheQuestion(t *testing.T) {
	sess := New(Config{
		Profile:   goodProfile(),
		Extractor: &scriptedExtractor{outs: []map[tree.Slot]string{{}, {}}},
		Phraser:   echoPhraser{},
	})

	first := sess.ReceiveUtterance(context.Background(), "hello")
	second := sess.ReceiveUtterance(context.Background(), "erm")

	assert.Equal(t, first.Missing, second.Missing, "no new facts means the same slot stays missing")
	assert.Empty(t, sess.Slots())
}

func TestFastPathDecidesOnFirstUtterance(t *testing.T) {
	profile := goodProfile()
	profile.ReturnAbuse = "Yes"
	sess := New(Config{
		Profile:   profile,
		Extractor: &scriptedExtractor{outs: []map[tree.Slot]string{{}}},
		Phraser:   echoPhraser{},
	})

	reply := sess.ReceiveUtterance(context.Background(), "I'd like a refund")
	require.Equal(t, model.StatusDecided, reply.Status)
	assert.Equal(t, tree.ManualReview, reply.Outcome.ID)
}

func TestResetRetainsProfile(t *testing.T) {
	extractor := &scriptedExtractor{outs: []map[tree.Slot]string{
		{tree.SlotItemCategory: "Digital"},
	}}
	sess := New(Config{Profile: goodProfile(), Extractor: extractor, Phraser: echoPhraser{}})
	sess.ReceiveUtterance(context.Background(), "refund my software")
	require.Equal(t, model.StatusDecided, sess.Status())

	sess.Reset()

	assert.Equal(t, model.StatusActive, sess.Status())
	assert.Empty(t, sess.Slots())
	assert.Empty(t, sess.History())
	assert.Empty(t, sess.LastAskedSlot())
	_, decided := sess.Decision()
	assert.False(t, decided)
	assert.Equal(t, goodProfile(), sess.Profile())
}

func TestResetWithProfile(t *testing.T) {
	sess := New(Config{Profile: goodProfile(), Extractor: &scriptedExtractor{}, Phraser: echoPhraser{}})

	next := goodProfile()
	next.CustomerID = "CUST_11111"
	next.LoyaltyTier = "Bronze"
	sess.ResetWithProfile(next)

	assert.Equal(t, next, sess.Profile())
	assert.Equal(t, model.StatusActive, sess.Status())
}

func TestRecentHistoryIsBounded(t *testing.T) {
	sess := New(Config{
		Profile:         goodProfile(),
		Extractor:       &scriptedExtractor{},
		Phraser:         echoPhraser{},
		HistoryMaxTurns: 4,
	})
	for i := 0; i < 10; i++ {
		sess.appendTurn(model.RoleUser, "turn")
	}

	assert.Len(t, sess.recentHistory(), 4)
	assert.Len(t, sess.History(), 10, "the full history is never truncated")
}
