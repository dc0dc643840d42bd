package request

import (
	"errors"
	"strings"
	"time"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase"

	"github.com/shopspring/decimal"
)

var (
	ErrInvalidEstimateValue = errors.New("invalid estimate value")
)

// EstimateRequest creates a new estimate version. Amounts may be JSON numbers
// or strings; absent amounts stay absent so the engine can tell them from zero.
type EstimateRequest struct {
	Type       string           `json:"type" binding:"required"`
	LaborCost  *decimal.Decimal `json:"labor_cost"`
	PartsCost  *decimal.Decimal `json:"parts_cost"`
	MinCost    *decimal.Decimal `json:"min_cost"`
	MaxCost    *decimal.Decimal `json:"max_cost"`
	FeeAmount  *decimal.Decimal `json:"fee_amount"`
	Note       string           `json:"note"`
	ValidUntil *time.Time       `json:"valid_until"`
}

func (r EstimateRequest) ToInput() (usecase.EstimateInput, error) {
	in := usecase.EstimateInput{
		Type:       entities.EstimateType(strings.ToLower(strings.TrimSpace(r.Type))),
		LaborCost:  nullable(r.LaborCost),
		PartsCost:  nullable(r.PartsCost),
		MinCost:    nullable(r.MinCost),
		MaxCost:    nullable(r.MaxCost),
		Note:       strings.TrimSpace(r.Note),
		ValidUntil: r.ValidUntil,
	}
	if r.FeeAmount != nil {
		if r.FeeAmount.IsNegative() {
			return usecase.EstimateInput{}, ErrInvalidEstimateValue
		}
		in.FeeAmount = *r.FeeAmount
	}
	return in, nil
}

func nullable(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NewNullDecimal(*d)
}

// ChannelRequest names how an estimate was delivered (email, whatsapp, counter).
type ChannelRequest struct {
	Channel string `json:"channel"`
}

type DecisionRequest struct {
	Approved *bool  `json:"approved" binding:"required"`
	Channel  string `json:"channel"`
	Note     string `json:"note"`
	Customer bool   `json:"customer"`
}

func (r DecisionRequest) ToInput() usecase.DecisionInput {
	return usecase.DecisionInput{
		Approved:   r.Approved != nil && *r.Approved,
		Channel:    strings.TrimSpace(r.Channel),
		Note:       strings.TrimSpace(r.Note),
		IsCustomer: r.Customer,
	}
}

// ReasonRequest carries the free-text justification some actions require.
type ReasonRequest struct {
	Reason string `json:"reason"`
}
