package response

import (
	"time"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase"

	"github.com/shopspring/decimal"
)

// Money is rendered as a fixed two-place string so clients never see float rounding.
func money(d decimal.Decimal) string {
	return d.StringFixed(entities.MoneyScale)
}

func nullMoney(d decimal.NullDecimal) *string {
	if !d.Valid {
		return nil
	}
	s := money(d.Decimal)
	return &s
}

type EstimateResponse struct {
	OrderNumber   string  `json:"order_number"`
	Version       int     `json:"version"`
	ParentVersion int     `json:"parent_version,omitempty"`
	IsCurrent     bool    `json:"is_current"`
	Type          string  `json:"type"`
	LaborCost     string  `json:"labor_cost"`
	PartsCost     string  `json:"parts_cost"`
	Total         string  `json:"total"`
	MinCost       *string `json:"min_cost,omitempty"`
	MaxCost       *string `json:"max_cost,omitempty"`
	Note          string  `json:"note,omitempty"`

	Status      string     `json:"status"`
	SentChannel string     `json:"sent_channel,omitempty"`
	SentAt      *time.Time `json:"sent_at,omitempty"`

	Decision          string     `json:"decision"`
	DecisionActorType string     `json:"decision_actor_type,omitempty"`
	DecidedBy         string     `json:"decided_by,omitempty"`
	DecisionChannel   string     `json:"decision_channel,omitempty"`
	DecisionNote      string     `json:"decision_note,omitempty"`
	DecidedAt         *time.Time `json:"decided_at,omitempty"`

	FeeAmount       string `json:"fee_amount"`
	FeeStatus       string `json:"fee_status"`
	FeeWaiverReason string `json:"fee_waiver_reason,omitempty"`
	FeeWaivedBy     string `json:"fee_waived_by,omitempty"`

	ValidUntil time.Time `json:"valid_until"`
	CreatedBy  string    `json:"created_by"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func FromEstimate(e entities.CostEstimate) EstimateResponse {
	return EstimateResponse{
		OrderNumber:       e.OrderNumber,
		Version:           e.Version,
		ParentVersion:     e.ParentVersion,
		IsCurrent:         e.IsCurrent,
		Type:              string(e.Type),
		LaborCost:         money(e.LaborCost),
		PartsCost:         money(e.PartsCost),
		Total:             money(e.Total),
		MinCost:           nullMoney(e.MinCost),
		MaxCost:           nullMoney(e.MaxCost),
		Note:              e.Note,
		Status:            string(e.Status),
		SentChannel:       e.SentChannel,
		SentAt:            e.SentAt,
		Decision:          string(e.Decision),
		DecisionActorType: string(e.DecisionActorType),
		DecidedBy:         e.DecidedBy,
		DecisionChannel:   e.DecisionChannel,
		DecisionNote:      e.DecisionNote,
		DecidedAt:         e.DecidedAt,
		FeeAmount:         money(e.FeeAmount),
		FeeStatus:         string(e.FeeStatus),
		FeeWaiverReason:   e.FeeWaiverReason,
		FeeWaivedBy:       e.FeeWaivedBy,
		ValidUntil:        e.ValidUntil,
		CreatedBy:         e.CreatedBy,
		CreatedAt:         e.CreatedAt,
		UpdatedAt:         e.UpdatedAt,
	}
}

func FromEstimates(es []entities.CostEstimate) []EstimateResponse {
	out := make([]EstimateResponse, 0, len(es))
	for _, e := range es {
		out = append(out, FromEstimate(e))
	}
	return out
}

// EstimateOutcomeResponse is returned by estimate commands; StatusChange is set
// when the command moved the order.
type EstimateOutcomeResponse struct {
	Estimate     EstimateResponse       `json:"estimate"`
	Order        OrderResponse          `json:"order"`
	StatusChange *StatusHistoryResponse `json:"status_change,omitempty"`
	Replayed     bool                   `json:"replayed,omitempty"`
}

func FromEstimateOutcome(o usecase.EstimateOutcome) EstimateOutcomeResponse {
	res := EstimateOutcomeResponse{
		Estimate: FromEstimate(o.Estimate),
		Order:    FromOrder(o.Order),
		Replayed: o.Replayed,
	}
	if o.StatusEntry != nil {
		h := FromStatusHistory(*o.StatusEntry)
		res.StatusChange = &h
	}
	return res
}

type EstimateHistoryResponse struct {
	ID      string            `json:"id"`
	Event   string            `json:"event"`
	ActorID string            `json:"actor_id"`
	At      time.Time         `json:"at"`
	Payload map[string]string `json:"payload,omitempty"`
}

func FromEstimateHistory(hs []entities.EstimateHistoryEntry) []EstimateHistoryResponse {
	out := make([]EstimateHistoryResponse, 0, len(hs))
	for _, h := range hs {
		out = append(out, EstimateHistoryResponse{ID: h.ID, Event: string(h.Event), ActorID: h.ActorID, At: h.At, Payload: h.Payload})
	}
	return out
}

type FeePaymentResponse struct {
	PaymentID       string    `json:"payment_id"`
	OrderNumber     string    `json:"order_number"`
	EstimateVersion int       `json:"estimate_version"`
	Amount          string    `json:"amount"`
	Date            time.Time `json:"date"`
	Status          string    `json:"status"`

	MPPayloadRaw string         `json:"mp_payload_raw,omitempty"`
	MPPayload    map[string]any `json:"mp_payload,omitempty"`
}

func FromFeePayment(p entities.FeePayment) FeePaymentResponse {
	return FeePaymentResponse{
		PaymentID:       p.ID,
		OrderNumber:     p.OrderNumber,
		EstimateVersion: p.EstimateVersion,
		Amount:          money(p.Amount),
		Date:            p.Date,
		Status:          string(p.Status),
		MPPayloadRaw:    string(p.ProviderPayloadRaw),
		MPPayload:       p.ProviderPayload,
	}
}

func FromFeePayments(ps []entities.FeePayment) []FeePaymentResponse {
	out := make([]FeePaymentResponse, 0, len(ps))
	for _, p := range ps {
		out = append(out, FromFeePayment(p))
	}
	return out
}

type FeeCollectionResponse struct {
	Payment  FeePaymentResponse `json:"payment"`
	Estimate EstimateResponse   `json:"estimate"`
}

func FromFeeCollection(c usecase.FeeCollection) FeeCollectionResponse {
	return FeeCollectionResponse{Payment: FromFeePayment(c.Payment), Estimate: FromEstimate(c.Estimate)}
}
