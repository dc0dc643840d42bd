package response

import (
	"time"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase"
)

type PartResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Manufacturer  string    `json:"manufacturer,omitempty"`
	Model         string    `json:"model,omitempty"`
	Scope         string    `json:"scope"`
	Location      string    `json:"location,omitempty"`
	OnHand        int       `json:"on_hand"`
	MinThreshold  int       `json:"min_threshold"`
	LowStock      bool      `json:"low_stock"`
	PurchasePrice string    `json:"purchase_price"`
	SalePrice     string    `json:"sale_price"`
	Active        bool      `json:"active"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func FromPart(p entities.Part) PartResponse {
	return PartResponse{
		ID:            p.ID,
		Name:          p.Name,
		Manufacturer:  p.Manufacturer,
		Model:         p.Model,
		Scope:         string(p.Scope()),
		Location:      p.Location,
		OnHand:        p.OnHand,
		MinThreshold:  p.MinThreshold,
		LowStock:      p.BelowThreshold(),
		PurchasePrice: money(p.PurchasePrice),
		SalePrice:     money(p.SalePrice),
		Active:        p.Active,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func FromParts(ps []entities.Part) []PartResponse {
	out := make([]PartResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromPart(p))
	}
	return out
}

type MovementResponse struct {
	ID            string    `json:"id"`
	PartID        string    `json:"part_id"`
	Seq           int64     `json:"seq"`
	Delta         int       `json:"delta"`
	Reason        string    `json:"reason"`
	ReasonText    string    `json:"reason_text,omitempty"`
	BalanceAfter  int       `json:"balance_after"`
	ActorID       string    `json:"actor_id"`
	OrderNumber   string    `json:"order_number,omitempty"`
	ReservationID string    `json:"reservation_id,omitempty"`
	SessionID     string    `json:"session_id,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
}

func FromMovement(m entities.StockMovement) MovementResponse {
	return MovementResponse{
		ID:            m.ID,
		PartID:        m.PartID,
		Seq:           m.Seq,
		Delta:         m.Delta,
		Reason:        string(m.Reason),
		ReasonText:    m.ReasonText,
		BalanceAfter:  m.BalanceAfter,
		ActorID:       m.ActorID,
		OrderNumber:   m.Link.OrderNumber,
		ReservationID: m.Link.ReservationID,
		SessionID:     m.Link.SessionID,
		CreatedAt:     m.CreatedAt,
	}
}

func FromMovements(ms []entities.StockMovement) []MovementResponse {
	out := make([]MovementResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromMovement(m))
	}
	return out
}

type StockResponse struct {
	Part     PartResponse     `json:"part"`
	Movement MovementResponse `json:"movement"`
}

func FromStockOutcome(o usecase.StockOutcome) StockResponse {
	return StockResponse{Part: FromPart(o.Part), Movement: FromMovement(o.Movement)}
}

type ReservationResponse struct {
	ID                string    `json:"id"`
	OrderNumber       string    `json:"order_number"`
	PartID            string    `json:"part_id"`
	Quantity          int       `json:"quantity"`
	UnitPurchasePrice string    `json:"unit_purchase_price"`
	UnitSalePrice     string    `json:"unit_sale_price"`
	BookingReason     string    `json:"booking_reason,omitempty"`
	Status            string    `json:"status"`
	BookedBy          string    `json:"booked_by"`
	DecidedBy         string    `json:"decided_by,omitempty"`
	RejectionReason   string    `json:"rejection_reason,omitempty"`
	RemovedBy         string    `json:"removed_by,omitempty"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"updated_at"`
}

func FromReservation(r entities.PartUsageReservation) ReservationResponse {
	return ReservationResponse{
		ID:                r.ID,
		OrderNumber:       r.OrderNumber,
		PartID:            r.PartID,
		Quantity:          r.Quantity,
		UnitPurchasePrice: money(r.UnitPurchasePrice),
		UnitSalePrice:     money(r.UnitSalePrice),
		BookingReason:     r.BookingReason,
		Status:            string(r.Status),
		BookedBy:          r.BookedBy,
		DecidedBy:         r.DecidedBy,
		RejectionReason:   r.RejectionReason,
		RemovedBy:         r.RemovedBy,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
	}
}

func FromReservations(rs []entities.PartUsageReservation) []ReservationResponse {
	out := make([]ReservationResponse, 0, len(rs))
	for _, r := range rs {
		out = append(out, FromReservation(r))
	}
	return out
}

type ReservationOutcomeResponse struct {
	Reservation ReservationResponse `json:"reservation"`
	Part        PartResponse        `json:"part"`
	Movement    *MovementResponse   `json:"movement,omitempty"`
}

func FromReservationOutcome(o usecase.ReservationOutcome) ReservationOutcomeResponse {
	res := ReservationOutcomeResponse{Reservation: FromReservation(o.Reservation), Part: FromPart(o.Part)}
	if o.Movement != nil {
		m := FromMovement(*o.Movement)
		res.Movement = &m
	}
	return res
}

type CandidatePartsResponse struct {
	ModelSpecific    []PartResponse `json:"model_specific"`
	ManufacturerWide []PartResponse `json:"manufacturer_wide"`
	Generic          []PartResponse `json:"generic"`
}

func FromCandidates(g usecase.CandidateGroups) CandidatePartsResponse {
	return CandidatePartsResponse{
		ModelSpecific:    FromParts(g.ModelSpecific),
		ManufacturerWide: FromParts(g.ManufacturerWide),
		Generic:          FromParts(g.Generic),
	}
}

type InventoryCountResponse struct {
	PartID      string `json:"part_id"`
	Expected    int    `json:"expected"`
	Counted     int    `json:"counted"`
	Discrepancy int    `json:"discrepancy"`
	Reason      string `json:"reason,omitempty"`
}

type InventorySessionResponse struct {
	ID              string                   `json:"id"`
	Location        string                   `json:"location,omitempty"`
	Status          string                   `json:"status"`
	Counts          []InventoryCountResponse `json:"counts"`
	StartedBy       string                   `json:"started_by"`
	SubmittedBy     string                   `json:"submitted_by,omitempty"`
	DecidedBy       string                   `json:"decided_by,omitempty"`
	RejectionReason string                   `json:"rejection_reason,omitempty"`
	CreatedAt       time.Time                `json:"created_at"`
	UpdatedAt       time.Time                `json:"updated_at"`
}

func FromSession(s entities.InventorySession) InventorySessionResponse {
	res := InventorySessionResponse{
		ID:              s.ID,
		Location:        s.Location,
		Status:          string(s.Status),
		Counts:          make([]InventoryCountResponse, 0, len(s.Counts)),
		StartedBy:       s.StartedBy,
		SubmittedBy:     s.SubmittedBy,
		DecidedBy:       s.DecidedBy,
		RejectionReason: s.RejectionReason,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
	for _, c := range s.Counts {
		res.Counts = append(res.Counts, InventoryCountResponse{
			PartID:      c.PartID,
			Expected:    c.Expected,
			Counted:     c.Counted,
			Discrepancy: c.Discrepancy(),
			Reason:      c.Reason,
		})
	}
	return res
}

type SessionApprovalResponse struct {
	Session     InventorySessionResponse `json:"session"`
	Corrections []MovementResponse       `json:"corrections"`
}

func FromSessionOutcome(o usecase.SessionOutcome) SessionApprovalResponse {
	return SessionApprovalResponse{Session: FromSession(o.Session), Corrections: FromMovements(o.Movements)}
}
