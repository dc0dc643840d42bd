package response

import (
	"testing"
	"time"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase"

	"github.com/shopspring/decimal"
)

func TestFromEstimate(t *testing.T) {
	now := time.Now().UTC()
	e := entities.CostEstimate{
		OrderNumber: "OS-1",
		Version:     2,
		IsCurrent:   true,
		Type:        entities.EstimateTypeUpTo,
		LaborCost:   decimal.RequireFromString("100"),
		PartsCost:   decimal.RequireFromString("20.5"),
		Total:       decimal.RequireFromString("120.5"),
		MaxCost:     decimal.NewNullDecimal(decimal.RequireFromString("300")),
		Status:      entities.EstimateStatusSent,
		Decision:    entities.DecisionUndecided,
		FeeStatus:   entities.FeeStatusNone,
		CreatedAt:   now,
	}

	res := FromEstimate(e)
	if res.Total != "120.50" || res.LaborCost != "100.00" {
		t.Fatalf("unexpected amounts: %+v", res)
	}
	if res.MinCost != nil {
		t.Fatalf("expected no min cost, got %q", *res.MinCost)
	}
	if res.MaxCost == nil || *res.MaxCost != "300.00" {
		t.Fatalf("unexpected max cost: %v", res.MaxCost)
	}
	if res.Type != "up_to" || res.Status != "sent" || !res.CreatedAt.Equal(now) {
		t.Fatalf("unexpected mapped fields: %+v", res)
	}
}

func TestFromEstimateOutcome(t *testing.T) {
	entry := entities.StatusHistoryEntry{ID: "h-1", OldStatus: entities.OrderStatusDiagnosing, NewStatus: entities.OrderStatusAwaitingPartOrApproval}
	res := FromEstimateOutcome(usecase.EstimateOutcome{
		Estimate:    entities.CostEstimate{OrderNumber: "OS-1", Version: 1},
		Order:       entities.Order{Number: "OS-1", Status: entities.OrderStatusAwaitingPartOrApproval},
		StatusEntry: &entry,
	})
	if res.StatusChange == nil || res.StatusChange.NewStatus != "awaiting_part_or_approval" {
		t.Fatalf("expected status change, got %+v", res.StatusChange)
	}

	res = FromEstimateOutcome(usecase.EstimateOutcome{Replayed: true})
	if res.StatusChange != nil || !res.Replayed {
		t.Fatalf("unexpected replay mapping: %+v", res)
	}
}

func TestFromOrderView(t *testing.T) {
	v := usecase.OrderView{
		Order: entities.Order{
			Number:     "OS-1",
			Status:     entities.OrderStatusRepairing,
			FinalPrice: decimal.NewNullDecimal(decimal.RequireFromString("99.9")),
			Checklist:  []entities.ChecklistItem{{Label: "screen", Checked: true}},
		},
		History: []entities.StatusHistoryEntry{{ID: "h-1", NewStatus: entities.OrderStatusReceived}},
	}
	res := FromOrderView(v)
	if res.Number != "OS-1" || res.FinalPrice == nil || *res.FinalPrice != "99.90" {
		t.Fatalf("unexpected order: %+v", res.OrderResponse)
	}
	if len(res.History) != 1 || res.History[0].OldStatus != "" {
		t.Fatalf("unexpected history: %+v", res.History)
	}
	if len(res.Checklist) != 1 || !res.Checklist[0].Checked {
		t.Fatalf("unexpected checklist: %+v", res.Checklist)
	}
}

func TestFromReservationOutcome(t *testing.T) {
	mv := entities.StockMovement{ID: "m-1", Delta: -2, Reason: entities.MovementConsumption, Link: entities.MovementLink{ReservationID: "r-1"}}
	res := FromReservationOutcome(usecase.ReservationOutcome{
		Reservation: entities.PartUsageReservation{ID: "r-1", UnitSalePrice: decimal.RequireFromString("12")},
		Part:        entities.Part{ID: "P-1", OnHand: 1, MinThreshold: 2},
		Movement:    &mv,
	})
	if res.Movement == nil || res.Movement.ReservationID != "r-1" || res.Movement.Delta != -2 {
		t.Fatalf("unexpected movement: %+v", res.Movement)
	}
	if !res.Part.LowStock || res.Reservation.UnitSalePrice != "12.00" {
		t.Fatalf("unexpected mapping: %+v", res)
	}
}

func TestFromSession(t *testing.T) {
	s := entities.InventorySession{
		ID:     "S-1",
		Status: entities.SessionPendingApproval,
		Counts: []entities.InventoryCount{{PartID: "P-1", Expected: 5, Counted: 3, Reason: "broken"}},
	}
	res := FromSession(s)
	if len(res.Counts) != 1 || res.Counts[0].Discrepancy != -2 {
		t.Fatalf("unexpected counts: %+v", res.Counts)
	}
}
