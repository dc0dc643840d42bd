package entities

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// PartScope is the applicability of a part to devices. Exactly one applies,
// derived from which of manufacturer/model are set.
type PartScope string

const (
	PartScopeModel        PartScope = "model"
	PartScopeManufacturer PartScope = "manufacturer"
	PartScopeGeneric      PartScope = "generic"
)

// Part is an inventory item. OnHand is only ever changed through the stock ledger;
// LedgerSeq is the sequence number of the last movement applied to it.
type Part struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Manufacturer  string          `json:"manufacturer,omitempty"`
	Model         string          `json:"model,omitempty"`
	Location      string          `json:"location,omitempty"`
	OnHand        int             `json:"on_hand"`
	MinThreshold  int             `json:"min_threshold"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	Active        bool            `json:"active"`
	LedgerSeq     int64           `json:"ledger_seq"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
	Revision      int64           `json:"revision"`
}

func (p Part) Scope() PartScope {
	switch {
	case p.Manufacturer != "" && p.Model != "":
		return PartScopeModel
	case p.Manufacturer != "":
		return PartScopeManufacturer
	default:
		return PartScopeGeneric
	}
}

func (p Part) BelowThreshold() bool {
	return p.OnHand < p.MinThreshold
}

func (p Part) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return ValidationError("part id is required")
	}
	if strings.TrimSpace(p.Name) == "" {
		return ValidationError("part name is required")
	}
	if p.Model != "" && p.Manufacturer == "" {
		return ValidationError("part %s has a model but no manufacturer", p.ID)
	}
	if p.MinThreshold < 0 {
		return ValidationError("minimum threshold must not be negative")
	}
	if p.PurchasePrice.IsNegative() || p.SalePrice.IsNegative() {
		return ValidationError("prices must not be negative")
	}
	return nil
}

// ReservationStatus is the approval state of a part usage reservation.
type ReservationStatus string

const (
	ReservationPending  ReservationStatus = "pending"
	ReservationApproved ReservationStatus = "approved"
	ReservationRejected ReservationStatus = "rejected"
	ReservationRemoved  ReservationStatus = "removed"
)

// HoldsStock reports whether the reserved quantity is still taken out of on-hand.
func (s ReservationStatus) HoldsStock() bool {
	return s == ReservationPending || s == ReservationApproved
}

// PartUsageReservation books a quantity of a part against an order. Unit prices
// are captured at booking time and never follow later catalog changes.
type PartUsageReservation struct {
	ID                string            `json:"id"`
	OrderNumber       string            `json:"order_number"`
	PartID            string            `json:"part_id"`
	Quantity          int               `json:"quantity"`
	UnitPurchasePrice decimal.Decimal   `json:"unit_purchase_price"`
	UnitSalePrice     decimal.Decimal   `json:"unit_sale_price"`
	BookingReason     string            `json:"booking_reason,omitempty"`
	Status            ReservationStatus `json:"status"`
	BookedBy          string            `json:"booked_by"`
	DecidedBy         string            `json:"decided_by,omitempty"`
	RejectionReason   string            `json:"rejection_reason,omitempty"`
	RemovedBy         string            `json:"removed_by,omitempty"`
	CreatedAt         time.Time         `json:"created_at"`
	UpdatedAt         time.Time         `json:"updated_at"`
	Revision          int64             `json:"revision"`
}

func (r PartUsageReservation) LineTotal() decimal.Decimal {
	return RoundMoney(r.UnitSalePrice.Mul(decimal.NewFromInt(int64(r.Quantity))))
}

// MovementReason is the taxonomy of stock ledger entries.
type MovementReason string

const (
	MovementConsumption         MovementReason = "consumption"
	MovementReversal            MovementReason = "reversal"
	MovementInventoryCorrection MovementReason = "inventory_correction"
	MovementReceipt             MovementReason = "receipt"
)

func (r MovementReason) IsCorrection() bool {
	return r == MovementInventoryCorrection
}

// MovementLink ties a movement to the entity that caused it.
type MovementLink struct {
	OrderNumber   string `json:"order_number,omitempty"`
	ReservationID string `json:"reservation_id,omitempty"`
	SessionID     string `json:"session_id,omitempty"`
}

// StockMovement is an immutable ledger entry.
type StockMovement struct {
	ID           string         `json:"id"`
	PartID       string         `json:"part_id"`
	Seq          int64          `json:"seq"`
	Delta        int            `json:"delta"`
	Reason       MovementReason `json:"reason"`
	ReasonText   string         `json:"reason_text,omitempty"`
	BalanceAfter int            `json:"balance_after"`
	ActorID      string         `json:"actor_id"`
	Link         MovementLink   `json:"link"`
	CreatedAt    time.Time      `json:"created_at"`
}
