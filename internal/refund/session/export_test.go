package session

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refundflow/server/internal/refund/model"
	"github.com/refundflow/server/internal/refund/tree"
)

func TestExportCapturesSessionState(t *testing.T) {
	sess := New(Config{
		Profile: goodProfile(),
		Extractor: &scriptedExtractor{outs: []map[tree.Slot]string{
			{tree.SlotItemCategory: "Physical"},
		}},
		Phraser: echoPhraser{},
	})
	sess.ReceiveUtterance(context.Background(), "returning my laptop")

	snap := sess.Export()

	assert.Equal(t, sess.ID(), snap.SessionID)
	assert.Equal(t, goodProfile(), snap.Profile)
	assert.Equal(t, map[string]string{"item_category": "Physical"}, snap.Slots)
	assert.Equal(t, model.StatusNeedInfo, snap.Status)
	assert.Equal(t, "item_returnable", snap.LastAskedSlot)
	assert.Len(t, snap.History, 2)
	assert.False(t, snap.ExportedAt.IsZero())
}

func TestSnapshotDocumentFieldNames(t *testing.T) {
	sess := New(Config{Profile: goodProfile(), Extractor: &scriptedExtractor{}, Phraser: echoPhraser{}})

	b, err := json.Marshal(sess.Export())
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(b, &doc))
	for _, field := range []string{
		"session_id", "customer_data", "extracted_info",
		"conversation_history", "final_status", "export_timestamp",
	} {
		assert.Contains(t, doc, field)
	}
}

func TestImportRoundTrip(t *testing.T) {
	cfg := Config{
		Profile: goodProfile(),
		Extractor: &scriptedExtractor{outs: []map[tree.Slot]string{
			{tree.SlotItemCategory: "Physical", tree.SlotItemReturnable: "Yes"},
		}},
		Phraser: echoPhraser{},
	}
	orig := New(cfg)
	orig.ReceiveUtterance(context.Background(), "returning my laptop, yes it's returnable")

	b, err := json.Marshal(orig.Export())
	require.NoError(t, err)
	var snap model.SessionSnapshot
	require.NoError(t, json.Unmarshal(b, &snap))

	restored, err := Import(cfg, snap)
	require.NoError(t, err)

	assert.Equal(t, orig.ID(), restored.ID())
	assert.Equal(t, orig.Profile(), restored.Profile())
	assert.Equal(t, orig.Slots(), restored.Slots())
	assert.Equal(t, orig.Status(), restored.Status())
	assert.Equal(t, orig.LastAskedSlot(), restored.LastAskedSlot())
	require.Len(t, restored.History(), len(orig.History()))
}

func TestImportRecomputesDecision(t *testing.T) {
	cfg := Config{
		Profile: goodProfile(),
		Extractor: &scriptedExtractor{outs: []map[tree.Slot]string{
			{tree.SlotItemCategory: "Perishable"},
		}},
		Phraser: echoPhraser{},
	}
	orig := New(cfg)
	orig.ReceiveUtterance(context.Background(), "the fruit arrived rotten")
	require.Equal(t, model.StatusDecided, orig.Status())

	restored, err := Import(cfg, orig.Export())
	require.NoError(t, err)

	decision, ok := restored.Decision()
	require.True(t, ok)
	assert.Equal(t, tree.RefundDenied3, decision.Outcome.ID)

	// The restored session is frozen like the original.
	reply := restored.ReceiveUtterance(context.Background(), "please reconsider")
	assert.Equal(t, model.StatusDecided, reply.Status)
}

func TestImportRejectsTamperedSnapshots(t *testing.T) {
	cfg := Config{Profile: goodProfile(), Extractor: &scriptedExtractor{}, Phraser: echoPhraser{}}

	t.Run("missing session id", func(t *testing.T) {
		_, err := Import(cfg, model.SessionSnapshot{Status: model.StatusActive})
		assert.Error(t, err)
	})

	t.Run("out-of-domain slot value", func(t *testing.T) {
		snap := New(cfg).Export()
		snap.Slots = map[string]string{"item_category": "Haunted"}
		_, err := Import(cfg, snap)
		assert.Error(t, err)
	})

	t.Run("unknown status", func(t *testing.T) {
		snap := New(cfg).Export()
		snap.Status = model.SessionStatus("PENDING")
		_, err := Import(cfg, snap)
		assert.Error(t, err)
	})

	t.Run("decided status without a decidable state", func(t *testing.T) {
		snap := New(cfg).Export()
		snap.Status = model.StatusDecided
		_, err := Import(cfg, snap)
		assert.Error(t, err, "an empty store cannot support a DECIDED snapshot")
	})
}
