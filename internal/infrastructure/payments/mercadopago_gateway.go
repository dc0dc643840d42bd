package payments

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"repair_workflow/internal/usecase/interfaces"

	"github.com/mercadopago/sdk-go/pkg/config"
	"github.com/mercadopago/sdk-go/pkg/payment"
	"go.uber.org/zap"
)

var ErrMissingMercadoPagoAccessToken = errors.New("missing MERCADOPAGO_ACCESS_TOKEN")
var ErrMercadoPagoGatewayNotConfigured = errors.New("mercado pago gateway not configured")

// paymentCreator is the part of the Mercado Pago payment client the gateway uses.
type paymentCreator interface {
	Create(ctx context.Context, request payment.Request) (*payment.Response, error)
}

// MercadoPagoGateway charges rejection fees through Mercado Pago. In mock mode
// every payment is approved locally and the request is echoed back.
type MercadoPagoGateway struct {
	client   paymentCreator
	mockMode bool
	log      *zap.Logger
}

var _ interfaces.IPaymentGateway = (*MercadoPagoGateway)(nil)

func NewMercadoPagoGateway(accessToken string, mockMode bool, log *zap.Logger) (*MercadoPagoGateway, error) {
	if log == nil {
		log = zap.NewNop()
	}
	log = log.Named("mercadopago")

	if mockMode {
		log.Info("mock mode enabled")
		return &MercadoPagoGateway{mockMode: true, log: log}, nil
	}

	if accessToken == "" {
		log.Error("missing access token")
		return nil, ErrMissingMercadoPagoAccessToken
	}

	cfg, err := config.New(accessToken)
	if err != nil {
		log.Error("failed creating sdk config", zap.Error(err))
		return nil, fmt.Errorf("mercado pago config: %w", err)
	}
	log.Info("client initialized")

	return &MercadoPagoGateway{client: payment.NewClient(cfg), log: log}, nil
}

func (g *MercadoPagoGateway) CreatePayment(ctx context.Context, requestPayload json.RawMessage) (interfaces.ProviderPayment, error) {
	if g != nil && g.mockMode {
		return g.mockPayment(requestPayload)
	}

	if g == nil || g.client == nil {
		return interfaces.ProviderPayment{}, ErrMercadoPagoGatewayNotConfigured
	}
	g.log.Info("create start", zap.Int("payload_len", len(requestPayload)))

	var req payment.Request
	if err := json.Unmarshal(requestPayload, &req); err != nil {
		g.log.Warn("payload unmarshal failed", zap.Error(err))
		return interfaces.ProviderPayment{}, err
	}

	resp, err := g.client.Create(ctx, req)
	if err != nil {
		g.log.Error("sdk create failed", zap.Error(err))
		return interfaces.ProviderPayment{}, err
	}

	b, err := json.Marshal(resp)
	if err != nil {
		return interfaces.ProviderPayment{}, fmt.Errorf("encode provider response: %w", err)
	}
	id := fmt.Sprintf("%d", resp.ID)
	g.log.Info("create success", zap.String("provider_payment_id", id), zap.String("provider_status", resp.Status))

	return interfaces.ProviderPayment{ID: id, Status: resp.Status, Response: b}, nil
}

func (g *MercadoPagoGateway) mockPayment(requestPayload json.RawMessage) (interfaces.ProviderPayment, error) {
	resp := map[string]any{}
	if len(requestPayload) > 0 && json.Valid(requestPayload) {
		if err := json.Unmarshal(requestPayload, &resp); err != nil {
			resp = map[string]any{"request_payload_raw": string(requestPayload)}
		}
	}

	id := strconv.FormatInt(time.Now().UTC().UnixNano(), 10)
	resp["id"] = id
	resp["status"] = "approved"
	resp["status_detail"] = "accredited"

	b, err := json.Marshal(resp)
	if err != nil {
		return interfaces.ProviderPayment{}, fmt.Errorf("encode mock response: %w", err)
	}
	g.log.Info("mock create success", zap.String("provider_payment_id", id))
	return interfaces.ProviderPayment{ID: id, Status: "approved", Response: b}, nil
}
