package prompts

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/refundflow/server/internal/refund/tree"
)

func TestRenderExtractorSystem(t *testing.T) {
	sys, err := RenderExtractorSystem(context.Background())
	require.NoError(t, err)

	assert.NotContains(t, sys, "{valid_slots}", "token must be substituted")
	for _, slot := range tree.Slots() {
		assert.Contains(t, sys, string(slot), "slot table must list %s", slot)
	}
	assert.Contains(t, sys, "good_standing")
	assert.Contains(t, sys, "CreditCard")
}

func TestRenderQuestionSystem(t *testing.T) {
	sys, err := RenderQuestionSystem(context.Background(),
		tree.SlotPaymentMethod, tree.Domain(tree.SlotPaymentMethod))
	require.NoError(t, err)

	assert.NotContains(t, sys, "{slot}")
	assert.NotContains(t, sys, "{valid_values}")
	assert.Contains(t, sys, "payment_method")
	assert.Contains(t, sys, strings.Join(tree.Domain(tree.SlotPaymentMethod), ", "))
}
