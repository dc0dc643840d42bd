package entities

import (
	"time"

	"github.com/shopspring/decimal"
)

// OrderStatus is the repair ticket lifecycle state.
type OrderStatus string

const (
	OrderStatusReceived               OrderStatus = "received"
	OrderStatusDiagnosing             OrderStatus = "diagnosing"
	OrderStatusAwaitingPartOrApproval OrderStatus = "awaiting_part_or_approval"
	OrderStatusRepairing              OrderStatus = "repairing"
	OrderStatusReadyForPickup         OrderStatus = "ready_for_pickup"
	OrderStatusPickedUp               OrderStatus = "picked_up"
	OrderStatusCancelled              OrderStatus = "cancelled"
)

// statusSequence is the canonical lifecycle order. Forward/backward
// classification and the adjacency rules below are derived from it.
var statusSequence = []OrderStatus{
	OrderStatusReceived,
	OrderStatusDiagnosing,
	OrderStatusAwaitingPartOrApproval,
	OrderStatusRepairing,
	OrderStatusReadyForPickup,
	OrderStatusPickedUp,
}

var statusRank = func() map[OrderStatus]int {
	m := make(map[OrderStatus]int, len(statusSequence))
	for i, s := range statusSequence {
		m[s] = i
	}
	return m
}()

// requiredPredecessor restricts targets that may only be entered from one status.
var requiredPredecessor = map[OrderStatus]OrderStatus{
	OrderStatusPickedUp: OrderStatusReadyForPickup,
}

func (s OrderStatus) Valid() bool {
	if s == OrderStatusCancelled {
		return true
	}
	_, ok := statusRank[s]
	return ok
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderStatusPickedUp || s == OrderStatusCancelled
}

// Direction classifies a status change.
type Direction string

const (
	DirectionForward  Direction = "forward"
	DirectionBackward Direction = "backward"
)

// ClassifyTransition reports whether moving from -> to is forward or backward.
// Cancellation always counts as forward.
func ClassifyTransition(from, to OrderStatus) Direction {
	if to == OrderStatusCancelled {
		return DirectionForward
	}
	if statusRank[to] > statusRank[from] {
		return DirectionForward
	}
	return DirectionBackward
}

// CheckTransition validates the structural legality of from -> to. It does not
// evaluate justification or preconditions that depend on the order's data.
func CheckTransition(from, to OrderStatus) error {
	if !to.Valid() {
		return ValidationError("unknown status %q", to)
	}
	if from.IsTerminal() {
		return NewDomainError(ErrTerminalState, "order is %s and accepts no further transitions", from)
	}
	if from == to {
		return InvalidTransition("order is already %s", to)
	}
	if pred, ok := requiredPredecessor[to]; ok && from != pred {
		return InvalidTransition("%s can only be reached from %s, order is %s", to, pred, from)
	}
	return nil
}

// ApprovalState is the tri-state customer approval flag of an order.
type ApprovalState string

const (
	ApprovalUnknown  ApprovalState = "unknown"
	ApprovalApproved ApprovalState = "approved"
	ApprovalRejected ApprovalState = "rejected"
)

// ChecklistItem is one line of the quality checklist gating ready_for_pickup.
type ChecklistItem struct {
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

// Order is a repair ticket, identified by its human readable number.
//
// CurrentEstimateVersion points at the single current cost estimate (0 when
// none exists yet). Revision is bumped by the store on every committed update.
type Order struct {
	Number                 string              `json:"number"`
	Status                 OrderStatus         `json:"status"`
	RequiresEstimate       bool                `json:"requires_estimate"`
	Approval               ApprovalState       `json:"approval"`
	EstimatedPrice         decimal.Decimal     `json:"estimated_price"`
	FinalPrice             decimal.NullDecimal `json:"final_price"`
	CurrentEstimateVersion int                 `json:"current_estimate_version"`
	HistorySeq             int64               `json:"history_seq"`
	TechnicianID           string              `json:"technician_id,omitempty"`
	Location               string              `json:"location,omitempty"`
	PartnerID              string              `json:"partner_id,omitempty"`
	DeviceManufacturer     string              `json:"device_manufacturer,omitempty"`
	DeviceModel            string              `json:"device_model,omitempty"`
	Checklist              []ChecklistItem     `json:"checklist,omitempty"`
	CreatedBy              string              `json:"created_by"`
	CreatedAt              time.Time           `json:"created_at"`
	UpdatedAt              time.Time           `json:"updated_at"`
	Revision               int64               `json:"revision"`
}

// ChecklistComplete is true when there is no checklist or every item is checked.
func (o Order) ChecklistComplete() (bool, []string) {
	var open []string
	for _, it := range o.Checklist {
		if !it.Checked {
			open = append(open, it.Label)
		}
	}
	return len(open) == 0, open
}

// StatusHistoryEntry is an immutable record of one status transition.
// OldStatus is empty for the intake entry.
type StatusHistoryEntry struct {
	ID          string      `json:"id"`
	OrderNumber string      `json:"order_number"`
	Seq         int64       `json:"seq"`
	OldStatus   OrderStatus `json:"old_status,omitempty"`
	NewStatus   OrderStatus `json:"new_status"`
	ActorID     string      `json:"actor_id"`
	Note        string      `json:"note,omitempty"`
	At          time.Time   `json:"at"`
}

// NextHistorySeq reserves the sequence number of the next status history entry.
func (o *Order) NextHistorySeq() int64 {
	o.HistorySeq++
	return o.HistorySeq
}

// ReplayHistory checks that a history sequence describes a path the status
// machine would accept and returns the status it ends in.
func ReplayHistory(entries []StatusHistoryEntry) (OrderStatus, error) {
	if len(entries) == 0 {
		return "", ValidationError("empty history")
	}
	first := entries[0]
	if first.OldStatus != "" || first.NewStatus != OrderStatusReceived {
		return "", InvalidTransition("history must start with intake into %s", OrderStatusReceived)
	}
	current := first.NewStatus
	for _, e := range entries[1:] {
		if e.OldStatus != current {
			return "", InvalidTransition("history entry %s starts from %s, expected %s", e.ID, e.OldStatus, current)
		}
		if err := CheckTransition(e.OldStatus, e.NewStatus); err != nil {
			return "", err
		}
		if ClassifyTransition(e.OldStatus, e.NewStatus) == DirectionBackward && e.Note == "" {
			return "", NewDomainError(ErrJustificationRequired, "backward entry %s has no note", e.ID)
		}
		current = e.NewStatus
	}
	return current, nil
}
