package extract

import (
	"strings"

	"github.com/refundflow/server/internal/refund/tree"
)

var yesWords = []string{"yes", "yeah", "yep", "sure", "correct", "right", "true", "eligible"}
var noWords = []string{"no", "nah", "nope", "not", "false", "wrong", "ineligible"}

// Fallback resolves an utterance with simple keyword matching, keyed on the
// slot the user was last asked about. It is the deterministic recovery path
// when the model-backed extractor fails, so it must never error: an utterance
// it cannot interpret simply yields no candidates.
func Fallback(utterance string, lastAsked tree.Slot) map[tree.Slot]string {
	text := strings.ToLower(strings.TrimSpace(utterance))
	out := map[tree.Slot]string{}

	switch {
	case tree.IsBoolean(lastAsked):
		if containsAny(text, yesWords) {
			out[lastAsked] = "Yes"
		} else if containsAny(text, noWords) {
			out[lastAsked] = "No"
		}

	case lastAsked == tree.SlotReturnWindow:
		// "Yes" to the window question means inside the window.
		if containsAny(text, []string{"yes", "within", "inside", "valid", "before"}) {
			out[lastAsked] = "within"
		} else if containsAny(text, []string{"no", "expired", "past", "late", "outside", "beyond"}) {
			out[lastAsked] = "expired"
		}

	case lastAsked == tree.SlotShippingIssue:
		// Negated forms first, so "not lost or delayed" never reads as Lost.
		if containsAny(text, []string{"neither", "not lost", "not delayed", "none"}) {
			out[lastAsked] = "Neither"
		} else if strings.Contains(text, "lost") {
			out[lastAsked] = "Lost"
		} else if strings.Contains(text, "delayed") {
			out[lastAsked] = "Delayed"
		}

	case lastAsked == tree.SlotSellerType:
		if containsAny(text, []string{"third party", "third-party", "marketplace", "external"}) {
			out[lastAsked] = "Third-party"
		} else if containsAny(text, []string{"in-house", "in house", "direct", "company"}) {
			out[lastAsked] = "In-house"
		}

	case lastAsked == tree.SlotItemCondition:
		if containsAny(text, []string{"broken", "damaged", "cracked"}) {
			out[lastAsked] = "damaged"
		} else if containsAny(text, []string{"defective", "faulty", "doesn't work", "does not work"}) {
			out[lastAsked] = "defective"
		} else if containsAny(text, []string{"normal", "fine", "working"}) {
			out[lastAsked] = "normal"
		}

	case lastAsked == tree.SlotItemCategory:
		if v, ok := categoryHint(text); ok {
			out[lastAsked] = v
		}

	case lastAsked == tree.SlotPaymentMethod:
		if v, ok := paymentHint(text); ok {
			out[lastAsked] = v
		}
	}

	// Unprompted hints are honoured regardless of the pending question, so a
	// first utterance like "my broken laptop never arrived" seeds the store.
	if _, asked := out[tree.SlotPaymentMethod]; !asked && lastAsked != tree.SlotPaymentMethod {
		if v, ok := paymentHint(text); ok {
			out[tree.SlotPaymentMethod] = v
		}
	}
	if _, asked := out[tree.SlotItemCategory]; !asked && lastAsked != tree.SlotItemCategory {
		if v, ok := categoryHint(text); ok {
			out[tree.SlotItemCategory] = v
		}
	}

	return out
}

func categoryHint(text string) (string, bool) {
	switch {
	case containsAny(text, []string{"laptop", "phone", "book", "physical"}):
		return "Physical", true
	case containsAny(text, []string{"software", "app", "download", "digital"}):
		return "Digital", true
	case containsAny(text, []string{"food", "fresh produce", "perishable"}):
		return "Perishable", true
	}
	return "", false
}

func paymentHint(text string) (string, bool) {
	switch {
	case containsAny(text, []string{"credit card", "visa", "mastercard", "amex"}):
		return "CreditCard", true
	case containsAny(text, []string{"gift card", "store credit", "voucher"}):
		return "GiftCard", true
	case containsAny(text, []string{"bnpl", "klarna", "afterpay", "buy now pay later"}):
		return "BNPL", true
	case containsAny(text, []string{"prepaid", "debit"}):
		return "Prepaid", true
	}
	return "", false
}

func containsAny(text string, words []string) bool {
	for _, w := range words {
		if strings.Contains(text, w) {
			return true
		}
	}
	return false
}
