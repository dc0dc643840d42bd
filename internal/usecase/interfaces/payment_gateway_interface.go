package interfaces

import (
	"context"
	"encoding/json"
)

// ProviderPayment is what the payment provider answered for one charge.
// Response is the raw provider body, kept on the fee payment record.
type ProviderPayment struct {
	ID       string
	Status   string
	Response json.RawMessage
}

// IPaymentGateway charges rejection fees through an external provider
// (Mercado Pago). The payload is provider specific and passed through as is.
type IPaymentGateway interface {
	CreatePayment(ctx context.Context, requestPayload json.RawMessage) (ProviderPayment, error)
}
