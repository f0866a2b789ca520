// Package nav implements the deterministic walk of the refund eligibility
// graph. Decide is a pure function of the profile facts and the slot store:
// it either names the single next fact to collect or reaches a terminal
// outcome, and records the node path it took either way.
package nav

import (
	"fmt"

	errx "github.com/refundflow/server/internal/core/error"
	"github.com/refundflow/server/internal/refund/model"
	"github.com/refundflow/server/internal/refund/slots"
	"github.com/refundflow/server/internal/refund/tree"
)

// Status tags a navigation result.
type Status string

const (
	StatusNeedInfo Status = "NEED_INFO"
	StatusDecision Status = "DECISION"
)

// Result is the outcome of one navigation pass.
//
// For StatusNeedInfo, Missing names the one slot to ask for next, Rationale
// says why the graph is stuck there and StuckAt is the blocking node. For
// StatusDecision, Outcome is the terminal reached. Path always holds the
// ordered node identifiers visited.
type Result struct {
	Status    Status
	Missing   tree.Slot
	Rationale string
	StuckAt   tree.NodeID
	Outcome   tree.Outcome
	Path      []tree.NodeID
}

type walk struct {
	store *slots.Store
	path  []tree.NodeID
}

func (w *walk) visit(n tree.NodeID) {
	w.path = append(w.path, n)
}

func (w *walk) need(slot tree.Slot, rationale string) (Result, error) {
	return Result{
		Status:    StatusNeedInfo,
		Missing:   slot,
		Rationale: rationale,
		StuckAt:   w.path[len(w.path)-1],
		Path:      w.path,
	}, nil
}

func (w *walk) decide(id tree.OutcomeID) (Result, error) {
	o, ok := tree.OutcomeByID(id)
	if !ok {
		// Unreachable for a well-formed outcome registry.
		return Result{}, errx.Wrap(fmt.Errorf("unknown outcome %q", id), errx.NavigationErrorMessage)
	}
	return Result{Status: StatusDecision, Outcome: o, Path: w.path}, nil
}

// Decide walks the eligibility graph for the given profile and slot store.
// It is deterministic and total for structurally valid input: a nil error is
// returned together with exactly one NeedInfo or Decision result. The fast
// path gates (account standing, fraud for the Gold tier, return abuse) are
// evaluated in fixed priority order before any item-level branching and each
// short-circuits the rest.
func Decide(profile model.ProfileFacts, store *slots.Store) (Result, error) {
	if store == nil {
		return Result{}, errx.Wrap(fmt.Errorf("nil slot store"), errx.NavigationErrorMessage)
	}
	w := &walk{store: store}

	// Gate 1: account standing.
	w.visit(tree.NodeCustStatus)
	if profile.AccountStatus != "good_standing" {
		return w.decide(tree.RefundDenied1)
	}

	// Gate 2: fraud, checked only for the Gold tier. Bronze and Silver
	// bypass the fraud node entirely.
	w.visit(tree.NodeLoyaltyTier)
	if profile.LoyaltyTier == "Gold" {
		w.visit(tree.NodeFraudCheck)
		if profile.FraudFlag == "Yes" {
			return w.decide(tree.RefundDenied2)
		}
	}

	// Gate 3: return abuse history.
	w.visit(tree.NodeReturnHistory)
	if profile.ReturnAbuse == "Yes" {
		return w.decide(tree.ManualReview)
	}

	// Item category rules out perishable and digital goods outright.
	w.visit(tree.NodeItemCategory)
	category, ok := store.Get(tree.SlotItemCategory)
	if !ok {
		return w.need(tree.SlotItemCategory, "the item category decides whether the goods are returnable at all")
	}
	switch category {
	case "Perishable":
		return w.decide(tree.RefundDenied3)
	case "Digital":
		return w.decide(tree.RefundDenied4)
	case "Physical":
	default:
		return Result{}, errx.Wrap(fmt.Errorf("item_category holds out-of-domain value %q", category), errx.NavigationErrorMessage)
	}

	w.visit(tree.NodeItemEligible)
	returnable, ok := store.Get(tree.SlotItemReturnable)
	if !ok {
		return w.need(tree.SlotItemReturnable, "only items marked returnable can proceed")
	}
	if returnable == "No" {
		return w.decide(tree.RefundDenied5)
	}

	// Damaged or defective items skip the return window entirely and go
	// straight to the delivery check.
	w.visit(tree.NodeItemCondition)
	condition, ok := store.Get(tree.SlotItemCondition)
	if !ok {
		return w.need(tree.SlotItemCondition, "damaged or defective items bypass the return window check")
	}
	if condition == "normal" {
		w.visit(tree.NodeReturnWindow)
		window, ok := store.Get(tree.SlotReturnWindow)
		if !ok {
			return w.need(tree.SlotReturnWindow, "items in normal condition must be inside the return window")
		}
		if window == "expired" {
			w.visit(tree.NodeReturnLate)
			late, ok := store.Get(tree.SlotLateReturnEligible)
			if !ok {
				return w.need(tree.SlotLateReturnEligible, "an expired window can still qualify for a partial refund")
			}
			if late == "No" {
				return w.decide(tree.RefundDenied6)
			}
			// Partial refund is terminal; delivery, seller and payment
			// checks are never reached on this branch.
			return w.decide(tree.PartialRefund)
		}
	}

	w.visit(tree.NodeDelivered)
	delivered, ok := store.Get(tree.SlotDelivered)
	if !ok {
		return w.need(tree.SlotDelivered, "undelivered items follow the shipping issue branch")
	}
	if delivered == "No" {
		w.visit(tree.NodeShippingIssue)
		issue, ok := store.Get(tree.SlotShippingIssue)
		if !ok {
			return w.need(tree.SlotShippingIssue, "lost and delayed shipments are settled differently")
		}
		switch issue {
		case "Lost":
			return w.decide(tree.RefundApprovedLost)
		case "Delayed":
			return w.decide(tree.ManualReview2)
		case "Neither":
			return w.decide(tree.RefundDenied7)
		default:
			return Result{}, errx.Wrap(fmt.Errorf("shipping_issue holds out-of-domain value %q", issue), errx.NavigationErrorMessage)
		}
	}

	w.visit(tree.NodeSellerType)
	seller, ok := store.Get(tree.SlotSellerType)
	if !ok {
		return w.need(tree.SlotSellerType, "the applicable return policy depends on the seller")
	}
	switch seller {
	case "In-house":
		w.visit(tree.NodeInHousePolicy)
		policy, ok := store.Get(tree.SlotInHousePolicy)
		if !ok {
			return w.need(tree.SlotInHousePolicy, "the in-house return policy must allow this return")
		}
		if policy == "No" {
			return w.decide(tree.RefundDenied8)
		}
	case "Third-party":
		w.visit(tree.NodeThirdPartyPolicy)
		policy, ok := store.Get(tree.SlotThirdPartyPolicy)
		if !ok {
			return w.need(tree.SlotThirdPartyPolicy, "the third-party seller's policy must allow this refund")
		}
		if policy == "No" {
			return w.decide(tree.RefundDenied9)
		}
	default:
		return Result{}, errx.Wrap(fmt.Errorf("seller_type holds out-of-domain value %q", seller), errx.NavigationErrorMessage)
	}

	w.visit(tree.NodePaymentMethod)
	payment, ok := store.Get(tree.SlotPaymentMethod)
	if !ok {
		return w.need(tree.SlotPaymentMethod, "the payment method determines how the refund is settled")
	}
	switch payment {
	case "CreditCard", "Prepaid":
		return w.decide(tree.RefundApproved)
	case "BNPL":
		w.visit(tree.NodeBNPLPolicy)
		policy, ok := store.Get(tree.SlotBNPLPolicy)
		if !ok {
			return w.need(tree.SlotBNPLPolicy, "the BNPL provider must allow refunds")
		}
		if policy == "No" {
			return w.decide(tree.RefundDenied10)
		}
		return w.decide(tree.RefundApproved)
	case "GiftCard":
		w.visit(tree.NodeGiftCardPolicy)
		policy, ok := store.Get(tree.SlotGiftCardPolicy)
		if !ok {
			return w.need(tree.SlotGiftCardPolicy, "the gift card terms must allow refunds")
		}
		if policy == "No" {
			return w.decide(tree.RefundDenied11)
		}
		return w.decide(tree.RefundApproved)
	default:
		return Result{}, errx.Wrap(fmt.Errorf("payment_method holds out-of-domain value %q", payment), errx.NavigationErrorMessage)
	}
}
