// Package tree declares the static refund eligibility graph: the slot
// registry with its enumerated value domains, the decision node identifiers
// and the terminal outcomes. It carries no mutable state.
package tree

// Slot is a named fact with a fixed enumerated domain of canonical values.
type Slot string

// Profile slots, supplied once per session from customer data.
const (
	SlotAccountStatus Slot = "account_status"
	SlotLoyaltyTier   Slot = "loyalty_tier"
	SlotFraudFlag     Slot = "fraud_flag"
	SlotReturnAbuse   Slot = "return_abuse"
)

// Conversation slots, elicited turn by turn.
const (
	SlotItemCategory       Slot = "item_category"
	SlotItemReturnable     Slot = "item_returnable"
	SlotItemCondition      Slot = "item_condition"
	SlotReturnWindow       Slot = "return_window"
	SlotLateReturnEligible Slot = "late_return_eligible"
	SlotDelivered          Slot = "delivered"
	SlotShippingIssue      Slot = "shipping_issue"
	SlotSellerType         Slot = "seller_type"
	SlotInHousePolicy      Slot = "in_house_policy"
	SlotThirdPartyPolicy   Slot = "third_party_policy"
	SlotPaymentMethod      Slot = "payment_method"
	SlotBNPLPolicy         Slot = "bnpl_policy"
	SlotGiftCardPolicy     Slot = "gift_card_policy"
)

// domains maps every slot to its canonical values. Values are matched
// case-sensitively; extraction is responsible for canonicalisation.
var domains = map[Slot][]string{
	SlotAccountStatus:      {"good_standing", "not_good_standing"},
	SlotLoyaltyTier:        {"Bronze", "Silver", "Gold"},
	SlotFraudFlag:          {"Yes", "No"},
	SlotReturnAbuse:        {"Yes", "No"},
	SlotItemCategory:       {"Perishable", "Digital", "Physical"},
	SlotItemReturnable:     {"Yes", "No"},
	SlotItemCondition:      {"damaged", "defective", "normal"},
	SlotReturnWindow:       {"within", "expired"},
	SlotLateReturnEligible: {"Yes", "No"},
	SlotDelivered:          {"Yes", "No"},
	SlotShippingIssue:      {"Lost", "Delayed", "Neither"},
	SlotSellerType:         {"In-house", "Third-party"},
	SlotInHousePolicy:      {"Yes", "No"},
	SlotThirdPartyPolicy:   {"Yes", "No"},
	SlotPaymentMethod:      {"BNPL", "CreditCard", "Prepaid", "GiftCard"},
	SlotBNPLPolicy:         {"Yes", "No"},
	SlotGiftCardPolicy:     {"Yes", "No"},
}

// boolSlots answer a literal Yes/No question.
var boolSlots = map[Slot]bool{
	SlotFraudFlag:          true,
	SlotReturnAbuse:        true,
	SlotItemReturnable:     true,
	SlotLateReturnEligible: true,
	SlotDelivered:          true,
	SlotInHousePolicy:      true,
	SlotThirdPartyPolicy:   true,
	SlotBNPLPolicy:         true,
	SlotGiftCardPolicy:     true,
}

// Slots returns every slot in the registry in graph order.
func Slots() []Slot {
	return []Slot{
		SlotAccountStatus, SlotLoyaltyTier, SlotFraudFlag, SlotReturnAbuse,
		SlotItemCategory, SlotItemReturnable, SlotItemCondition,
		SlotReturnWindow, SlotLateReturnEligible, SlotDelivered,
		SlotShippingIssue, SlotSellerType, SlotInHousePolicy,
		SlotThirdPartyPolicy, SlotPaymentMethod, SlotBNPLPolicy,
		SlotGiftCardPolicy,
	}
}

// Known reports whether s is a registered slot.
func Known(s Slot) bool {
	_, ok := domains[s]
	return ok
}

// Domain returns the canonical values for slot s, or nil if unknown.
// Callers must not mutate the returned slice.
func Domain(s Slot) []string {
	return domains[s]
}

// ValidValue reports whether v belongs to the domain of slot s.
func ValidValue(s Slot, v string) bool {
	for _, d := range domains[s] {
		if d == v {
			return true
		}
	}
	return false
}

// IsBoolean reports whether slot s takes a literal Yes/No answer.
func IsBoolean(s Slot) bool {
	return boolSlots[s]
}
