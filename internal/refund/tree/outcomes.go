package tree

// NodeID identifies a decision node in the eligibility graph. The names come
// from the flowchart the adjudication procedure was modelled on.
type NodeID string

const (
	NodeCustStatus       NodeID = "CustStatus"
	NodeLoyaltyTier      NodeID = "LoyaltyTier"
	NodeFraudCheck       NodeID = "FraudCheck"
	NodeReturnHistory    NodeID = "ReturnHistory"
	NodeItemCategory     NodeID = "ItemCategory"
	NodeItemEligible     NodeID = "ItemEligible"
	NodeItemCondition    NodeID = "ItemCondition"
	NodeReturnWindow     NodeID = "ReturnWindow"
	NodeReturnLate       NodeID = "ReturnLate"
	NodeDelivered        NodeID = "Delivered"
	NodeShippingIssue    NodeID = "ShippingIssue"
	NodeSellerType       NodeID = "SellerType"
	NodeInHousePolicy    NodeID = "InHousePolicy"
	NodeThirdPartyPolicy NodeID = "ThirdPartyPolicy"
	NodePaymentMethod    NodeID = "PaymentMethod"
	NodeBNPLPolicy       NodeID = "BNPLPolicy"
	NodeGiftCardPolicy   NodeID = "GiftCardPolicy"
)

// OutcomeKind classifies a terminal outcome.
type OutcomeKind string

const (
	KindApprove      OutcomeKind = "approve"
	KindDeny         OutcomeKind = "deny"
	KindPartial      OutcomeKind = "partial"
	KindManualReview OutcomeKind = "manual_review"
)

// OutcomeID identifies a terminal node of the graph.
type OutcomeID string

const (
	RefundDenied1      OutcomeID = "RefundDenied1"
	RefundDenied2      OutcomeID = "RefundDenied2"
	RefundDenied3      OutcomeID = "RefundDenied3"
	RefundDenied4      OutcomeID = "RefundDenied4"
	RefundDenied5      OutcomeID = "RefundDenied5"
	RefundDenied6      OutcomeID = "RefundDenied6"
	RefundDenied7      OutcomeID = "RefundDenied7"
	RefundDenied8      OutcomeID = "RefundDenied8"
	RefundDenied9      OutcomeID = "RefundDenied9"
	RefundDenied10     OutcomeID = "RefundDenied10"
	RefundDenied11     OutcomeID = "RefundDenied11"
	RefundApproved     OutcomeID = "RefundApproved"
	RefundApprovedLost OutcomeID = "RefundApprovedLost"
	PartialRefund      OutcomeID = "PartialRefund"
	ManualReview       OutcomeID = "ManualReview"
	ManualReview2      OutcomeID = "ManualReview2"
)

// Outcome is a terminal decision with its fixed reason template.
//
// The flowchart this graph was modelled on routes manual review cases to a
// human adjudication step with its own approve/deny leaves, and sends a
// denied gift-card policy to a second partial-refund leaf. The executable
// procedure treats all of those as immediate terminals, which is what this
// registry encodes; the post-review leaves do not exist here.
type Outcome struct {
	ID     OutcomeID   `json:"id"`
	Kind   OutcomeKind `json:"kind"`
	Reason string      `json:"reason"`
}

var outcomes = map[OutcomeID]Outcome{
	RefundDenied1:      {RefundDenied1, KindDeny, "Refund denied: account is not in good standing"},
	RefundDenied2:      {RefundDenied2, KindDeny, "Refund denied: fraud flag on the account"},
	RefundDenied3:      {RefundDenied3, KindDeny, "Refund denied: perishable items are not returnable"},
	RefundDenied4:      {RefundDenied4, KindDeny, "Refund denied: digital goods are not refundable"},
	RefundDenied5:      {RefundDenied5, KindDeny, "Refund denied: item is marked non-returnable"},
	RefundDenied6:      {RefundDenied6, KindDeny, "Refund denied: return window expired"},
	RefundDenied7:      {RefundDenied7, KindDeny, "Refund denied: delivery is still pending"},
	RefundDenied8:      {RefundDenied8, KindDeny, "Refund denied: in-house return policy not met"},
	RefundDenied9:      {RefundDenied9, KindDeny, "Refund denied: third-party seller restriction"},
	RefundDenied10:     {RefundDenied10, KindDeny, "Refund denied: BNPL terms restrict refunds"},
	RefundDenied11:     {RefundDenied11, KindDeny, "Refund denied: gift card terms do not allow refunds"},
	RefundApproved:     {RefundApproved, KindApprove, "Refund approved"},
	RefundApprovedLost: {RefundApprovedLost, KindApprove, "Refund approved: item lost in transit"},
	PartialRefund:      {PartialRefund, KindPartial, "Partial refund approved for late return"},
	ManualReview:       {ManualReview, KindManualReview, "Manual review required: return abuse history"},
	ManualReview2:      {ManualReview2, KindManualReview, "Manual review required: shipping delayed"},
}

// OutcomeByID returns the terminal outcome registered under id.
func OutcomeByID(id OutcomeID) (Outcome, bool) {
	o, ok := outcomes[id]
	return o, ok
}

// Outcomes returns all terminal outcomes, keyed by identifier.
// Callers must not mutate the returned map.
func Outcomes() map[OutcomeID]Outcome {
	return outcomes
}
