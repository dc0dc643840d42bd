package entities

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// PaymentStatus represents the payment processing outcome.
type PaymentStatus string

const (
	PaymentStatusPending  PaymentStatus = "pending"
	PaymentStatusApproved PaymentStatus = "approved"
	PaymentStatusDenied   PaymentStatus = "denied"
)

// FeePayment records the collection of a rejected estimate's fee.
//
// The provider payload is kept raw for traceability, and parsed for querying,
// because payment provider schemas vary between integrations.
type FeePayment struct {
	ID              string          `json:"id"`
	OrderNumber     string          `json:"order_number"`
	EstimateVersion int             `json:"estimate_version"`
	Amount          decimal.Decimal `json:"amount"`
	Date            time.Time       `json:"date"`
	Status          PaymentStatus   `json:"status"`

	ProviderPayloadRaw json.RawMessage `json:"provider_payload_raw,omitempty"`
	ProviderPayload    map[string]any  `json:"provider_payload,omitempty"`
}
