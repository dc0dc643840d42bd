package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// EstimateType determines how the total of a cost estimate (KVA) is derived.
type EstimateType string

const (
	EstimateTypeFixed    EstimateType = "fixed"
	EstimateTypeVariable EstimateType = "variable"
	EstimateTypeUpTo     EstimateType = "up_to"
)

func (t EstimateType) Valid() bool {
	switch t {
	case EstimateTypeFixed, EstimateTypeVariable, EstimateTypeUpTo:
		return true
	}
	return false
}

// EstimateStatus is the send lifecycle of a single estimate version.
type EstimateStatus string

const (
	EstimateStatusDraft            EstimateStatus = "draft"
	EstimateStatusSent             EstimateStatus = "sent"
	EstimateStatusAwaitingResponse EstimateStatus = "awaiting_response"
	EstimateStatusDecided          EstimateStatus = "decided"
)

// Decision is the customer/staff verdict on an estimate.
type Decision string

const (
	DecisionUndecided Decision = "undecided"
	DecisionApproved  Decision = "approved"
	DecisionRejected  Decision = "rejected"
)

// DecisionActorType tells whether the customer or a staff member recorded the decision.
type DecisionActorType string

const (
	DecisionByCustomer DecisionActorType = "customer"
	DecisionByStaff    DecisionActorType = "staff"
)

// FeeStatus tracks the rejection fee of an estimate.
type FeeStatus string

const (
	FeeStatusNone       FeeStatus = "none"
	FeeStatusDue        FeeStatus = "due"
	FeeStatusCollecting FeeStatus = "collecting"
	FeeStatusWaived     FeeStatus = "waived"
	FeeStatusPaid       FeeStatus = "paid"
)

// CostEstimate is one immutable-by-version quote for an order, addressed by
// (OrderNumber, Version). Version 1 has no parent; version n has parent n-1.
type CostEstimate struct {
	OrderNumber   string              `json:"order_number"`
	Version       int                 `json:"version"`
	ParentVersion int                 `json:"parent_version,omitempty"`
	IsCurrent     bool                `json:"is_current"`
	Type          EstimateType        `json:"type"`
	LaborCost     decimal.Decimal     `json:"labor_cost"`
	PartsCost     decimal.Decimal     `json:"parts_cost"`
	Total         decimal.Decimal     `json:"total"`
	MinCost       decimal.NullDecimal `json:"min_cost"`
	MaxCost       decimal.NullDecimal `json:"max_cost"`
	Note          string              `json:"note,omitempty"`

	Status      EstimateStatus `json:"status"`
	SentChannel string         `json:"sent_channel,omitempty"`
	SentAt      *time.Time     `json:"sent_at,omitempty"`

	Decision          Decision          `json:"decision"`
	DecisionActorType DecisionActorType `json:"decision_actor_type,omitempty"`
	DecidedBy         string            `json:"decided_by,omitempty"`
	DecisionChannel   string            `json:"decision_channel,omitempty"`
	DecisionNote      string            `json:"decision_note,omitempty"`
	DecidedAt         *time.Time        `json:"decided_at,omitempty"`

	FeeAmount              decimal.Decimal `json:"fee_amount"`
	FeeStatus              FeeStatus       `json:"fee_status"`
	FeeWaiverReason        string          `json:"fee_waiver_reason,omitempty"`
	FeeWaivedBy            string          `json:"fee_waived_by,omitempty"`
	FeeCollectionStartedAt *time.Time      `json:"fee_collection_started_at,omitempty"`

	ValidUntil time.Time `json:"valid_until"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
	Revision   int64     `json:"revision"`
}

// SameDecision reports whether a replayed decision carries the payload already recorded.
func (e CostEstimate) SameDecision(approved bool, channel, note string) bool {
	want := DecisionRejected
	if approved {
		want = DecisionApproved
	}
	return e.Decision == want && e.DecisionChannel == channel && e.DecisionNote == note
}

// EstimateEvent names an entry in the estimate audit trail.
type EstimateEvent string

const (
	EstimateEventCreated       EstimateEvent = "created"
	EstimateEventSent          EstimateEvent = "sent"
	EstimateEventReminded      EstimateEvent = "reminded"
	EstimateEventApproved      EstimateEvent = "approved"
	EstimateEventRejected      EstimateEvent = "rejected"
	EstimateEventFeeWaived     EstimateEvent = "fee_waived"
	EstimateEventFeePaid       EstimateEvent = "fee_paid"
	EstimateEventPriceReleased EstimateEvent = "price_released"
)

// EstimateHistoryEntry is an append-only audit record of an estimate change.
type EstimateHistoryEntry struct {
	ID              string            `json:"id"`
	OrderNumber     string            `json:"order_number"`
	EstimateVersion int               `json:"estimate_version"`
	Event           EstimateEvent     `json:"event"`
	ActorID         string            `json:"actor_id"`
	At              time.Time         `json:"at"`
	Payload         map[string]string `json:"payload,omitempty"`
}
