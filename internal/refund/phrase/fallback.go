// Package phrase renders a missing slot into the question put to the user,
// either with a Gemini-backed phraser or fixed fallback templates.
package phrase

import (
	"fmt"
	"strings"

	"github.com/refundflow/server/internal/refund/tree"
)

// fallbackQuestions are the fixed per-slot questions used when the
// model-backed phraser fails. Every question enumerates the slot's valid
// values.
var fallbackQuestions = map[tree.Slot]string{
	tree.SlotItemCategory:       "What type of item is this? Please specify: Perishable, Digital, or Physical.",
	tree.SlotItemReturnable:     "Is this item marked as returnable? Please specify: Yes or No.",
	tree.SlotItemCondition:      "What is the condition of the item? Please specify: damaged, defective, or normal.",
	tree.SlotReturnWindow:       "Is your return request within the time window? Please specify: within or expired.",
	tree.SlotLateReturnEligible: "Are you eligible for a partial refund due to late return? Please specify: Yes or No.",
	tree.SlotDelivered:          "Has the item been delivered to you? Please specify: Yes or No.",
	tree.SlotShippingIssue:      "What is the shipping status? Please specify: Lost, Delayed, or Neither.",
	tree.SlotSellerType:         "Who was the seller for this item? Please specify: In-house or Third-party.",
	tree.SlotInHousePolicy:      "Does this return meet our in-house policy requirements? Please specify: Yes or No.",
	tree.SlotThirdPartyPolicy:   "Does the third-party seller's policy allow this refund? Please specify: Yes or No.",
	tree.SlotPaymentMethod:      "What payment method did you use? Please specify: BNPL, CreditCard, Prepaid, or GiftCard.",
	tree.SlotBNPLPolicy:         "Does your Buy Now Pay Later provider allow refunds? Please specify: Yes or No.",
	tree.SlotGiftCardPolicy:     "Do the gift card terms allow refunds? Please specify: Yes or No.",
}

// Question returns the deterministic fallback question for slot. Slots
// without a dedicated template get a generic question that still enumerates
// the domain.
func Question(slot tree.Slot) string {
	if q, ok := fallbackQuestions[slot]; ok {
		return q
	}
	return fmt.Sprintf("I need more information about %s to process your refund request. Please specify: %s.",
		slot, strings.Join(tree.Domain(slot), ", "))
}
