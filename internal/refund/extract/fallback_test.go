package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/refundflow/server/internal/refund/tree"
)

func TestFallbackBooleanAnswers(t *testing.T) {
	tests := []struct {
		utterance string
		want      string
	}{
		{"yes", "Yes"},
		{"Yeah, it has", "Yes"},
		{"no", "No"},
		{"nope, still waiting", "No"},
	}
	for _, tt := range tests {
		out := Fallback(tt.utterance, tree.SlotDelivered)
		assert.Equal(t, tt.want, out[tree.SlotDelivered], "utterance %q", tt.utterance)
	}
}

func TestFallbackReturnWindow(t *testing.T) {
	out := Fallback("yes, I'm still within the window", tree.SlotReturnWindow)
	assert.Equal(t, "within", out[tree.SlotReturnWindow])

	out = Fallback("it expired last month", tree.SlotReturnWindow)
	assert.Equal(t, "expired", out[tree.SlotReturnWindow])
}

func TestFallbackShippingIssueNegation(t *testing.T) {
	// A negated answer must not match the embedded "lost" keyword.
	out := Fallback("it's not lost or delayed", tree.SlotShippingIssue)
	assert.Equal(t, "Neither", out[tree.SlotShippingIssue])

	out = Fallback("the package got lost", tree.SlotShippingIssue)
	assert.Equal(t, "Lost", out[tree.SlotShippingIssue])

	out = Fallback("it's been delayed for weeks", tree.SlotShippingIssue)
	assert.Equal(t, "Delayed", out[tree.SlotShippingIssue])
}

func TestFallbackSellerAndCondition(t *testing.T) {
	out := Fallback("it was a marketplace seller", tree.SlotSellerType)
	assert.Equal(t, "Third-party", out[tree.SlotSellerType])

	out = Fallback("you sold it to me directly", tree.SlotSellerType)
	assert.Equal(t, "In-house", out[tree.SlotSellerType])

	out = Fallback("the screen is cracked", tree.SlotItemCondition)
	assert.Equal(t, "damaged", out[tree.SlotItemCondition])

	out = Fallback("it's faulty out of the box", tree.SlotItemCondition)
	assert.Equal(t, "defective", out[tree.SlotItemCondition])
}

func TestFallbackUnpromptedHints(t *testing.T) {
	// A first utterance, before any question was asked.
	out := Fallback("I want to return the laptop I paid for with my visa", tree.Slot(""))
	assert.Equal(t, "Physical", out[tree.SlotItemCategory])
	assert.Equal(t, "CreditCard", out[tree.SlotPaymentMethod])
}

func TestFallbackUninterpretableUtterance(t *testing.T) {
	out := Fallback("hmm let me think about that", tree.SlotDelivered)
	assert.Empty(t, out, "an uninterpretable answer yields no candidates")
}
