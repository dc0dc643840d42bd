package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	ErrInvalidMPPayload               = errors.New("invalid mercado pago payload")
	ErrPaymentGatewayNotConfigured    = errors.New("payment gateway not configured")
	ErrPaymentGatewayBadRequest       = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized     = errors.New("payment gateway unauthorized")
	ErrPaymentGatewayInvalidUsers     = errors.New("payment gateway invalid users involved")
	ErrPaymentGatewayCustomerNotFound = errors.New("payment gateway customer not found")
)

// FeeGatewaySettings tunes how payloads are prepared for the payment provider.
type FeeGatewaySettings struct {
	Mock            bool
	AccessToken     string
	TestPayerEmail  string
	TestPayerUserID string
}

func (s FeeGatewaySettings) sandbox() bool {
	return strings.HasPrefix(strings.TrimSpace(s.AccessToken), "TEST-")
}

// FeeCollection is the recorded payment and the estimate after collection.
type FeeCollection struct {
	Payment  entities.FeePayment
	Estimate entities.CostEstimate
}

// IFeePaymentUseCase collects rejection fees of estimates.
type IFeePaymentUseCase interface {
	CollectFee(ctx context.Context, orderNumber string, version int, mpPayload json.RawMessage, actor entities.Actor) (FeeCollection, error)
	ListPayments(ctx context.Context, orderNumber string, version int) ([]entities.FeePayment, error)
}

type FeePaymentUseCase struct {
	store    interfaces.IWorkflowStore
	clock    interfaces.IClock
	gateway  interfaces.IPaymentGateway
	settings FeeGatewaySettings
	log      *zap.Logger
}

var _ IFeePaymentUseCase = (*FeePaymentUseCase)(nil)

func NewFeePaymentUseCase(store interfaces.IWorkflowStore, clock interfaces.IClock, gateway interfaces.IPaymentGateway, settings FeeGatewaySettings, log *zap.Logger) *FeePaymentUseCase {
	return &FeePaymentUseCase{store: store, clock: clock, gateway: gateway, settings: settings, log: nopLogger(log).Named("fees")}
}

// feeCollectionLease bounds how long a started collection blocks another one.
// A collection whose process died is taken over after it expires.
const feeCollectionLease = 5 * time.Minute

// CollectFee charges the outstanding rejection fee of an estimate. The fee is
// moved to collecting before the provider is called so that a concurrent
// caller cannot charge it twice; the outcome is recorded in a second
// transaction that releases the fee again unless the payment was approved.
func (u *FeePaymentUseCase) CollectFee(ctx context.Context, orderNumber string, version int, mpPayload json.RawMessage, actor entities.Actor) (FeeCollection, error) {
	if err := requireActor(actor); err != nil {
		return FeeCollection{}, err
	}
	log := u.log.With(zap.String("order", orderNumber), zap.Int("version", version))
	log.Info("collect fee start", zap.Int("payload_len", len(mpPayload)))

	if u.gateway == nil {
		return FeeCollection{}, ErrPaymentGatewayNotConfigured
	}
	if len(mpPayload) == 0 || !json.Valid(mpPayload) {
		if !u.settings.Mock {
			log.Warn("invalid payload")
			return FeeCollection{}, ErrInvalidMPPayload
		}
		mpPayload = json.RawMessage("{}")
	}

	var est entities.CostEstimate
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		e, err := tx.GetEstimate(ctx, orderNumber, version)
		if err != nil {
			return err
		}
		est = e
		return checkFeeDue(e, u.clock.Now())
	})
	if err != nil {
		return FeeCollection{}, err
	}

	reference := fmt.Sprintf("%s-v%d", orderNumber, version)
	payload, err := u.preparePayload(mpPayload, reference, est)
	if err != nil {
		log.Warn("payload rejected", zap.Error(err))
		return FeeCollection{}, err
	}

	started, err := u.reserveFee(ctx, orderNumber, version)
	if err != nil {
		return FeeCollection{}, err
	}

	charge, err := u.gateway.CreatePayment(ctx, payload)
	if err != nil {
		log.Error("payment gateway failed", zap.Error(err))
		u.releaseFee(ctx, orderNumber, version, started, log)
		return FeeCollection{}, classifyGatewayError(err)
	}
	log.Info("payment gateway success", zap.String("provider_payment_id", charge.ID), zap.String("provider_status", charge.Status))

	var parsed map[string]any
	if err := json.Unmarshal(charge.Response, &parsed); err != nil {
		log.Warn("provider response unmarshal failed", zap.Error(err))
	}
	if charge.ID == "" {
		charge.ID = uuid.NewString()
	}
	p := entities.FeePayment{
		ID:                 charge.ID,
		OrderNumber:        orderNumber,
		EstimateVersion:    version,
		Amount:             est.FeeAmount,
		Date:               u.clock.Now(),
		Status:             mapProviderStatus(charge.Status),
		ProviderPayloadRaw: charge.Response,
		ProviderPayload:    parsed,
	}

	var out FeeCollection
	err = u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		e, err := tx.GetEstimate(ctx, orderNumber, version)
		if err != nil {
			return err
		}
		if !holdsCollection(e, started) {
			return entities.ConcurrentModification("fee collection of estimate", reference)
		}
		e.FeeCollectionStartedAt = nil
		e.UpdatedAt = p.Date
		if p.Status == entities.PaymentStatusApproved {
			e.FeeStatus = entities.FeeStatusPaid
		} else {
			e.FeeStatus = entities.FeeStatusDue
		}
		if err := tx.UpdateEstimate(ctx, &e); err != nil {
			return err
		}
		if p.Status == entities.PaymentStatusApproved {
			if err := tx.AppendEstimateHistory(ctx, entities.EstimateHistoryEntry{
				ID:              uuid.NewString(),
				OrderNumber:     orderNumber,
				EstimateVersion: version,
				Event:           entities.EstimateEventFeePaid,
				ActorID:         actor.ID,
				At:              p.Date,
				Payload:         map[string]string{"payment_id": p.ID, "amount": money(p.Amount)},
			}); err != nil {
				return err
			}
		}
		if err := tx.CreateFeePayment(ctx, p); err != nil {
			return err
		}
		out = FeeCollection{Payment: p, Estimate: e}
		return nil
	})
	if err != nil {
		// The provider has charged the customer; the row must be reconciled by hand.
		log.Error("fee payment not recorded", zap.String("provider_payment_id", p.ID), zap.Error(err))
		return FeeCollection{}, err
	}
	log.Info("collect fee done", zap.String("payment_id", p.ID), zap.String("status", string(p.Status)))
	return out, nil
}

// reserveFee marks the fee as being collected and returns the reservation time.
func (u *FeePaymentUseCase) reserveFee(ctx context.Context, orderNumber string, version int) (time.Time, error) {
	now := u.clock.Now()
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		e, err := tx.GetEstimate(ctx, orderNumber, version)
		if err != nil {
			return err
		}
		if err := checkFeeDue(e, now); err != nil {
			return err
		}
		e.FeeStatus = entities.FeeStatusCollecting
		e.FeeCollectionStartedAt = &now
		e.UpdatedAt = now
		return tx.UpdateEstimate(ctx, &e)
	})
	return now, err
}

// releaseFee puts a fee whose charge failed back to due.
func (u *FeePaymentUseCase) releaseFee(ctx context.Context, orderNumber string, version int, started time.Time, log *zap.Logger) {
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		e, err := tx.GetEstimate(ctx, orderNumber, version)
		if err != nil {
			return err
		}
		if !holdsCollection(e, started) {
			return nil
		}
		e.FeeStatus = entities.FeeStatusDue
		e.FeeCollectionStartedAt = nil
		e.UpdatedAt = u.clock.Now()
		return tx.UpdateEstimate(ctx, &e)
	})
	if err != nil {
		log.Warn("fee release failed, it frees up when the lease expires", zap.Error(err))
	}
}

func holdsCollection(e entities.CostEstimate, started time.Time) bool {
	return e.FeeStatus == entities.FeeStatusCollecting &&
		e.FeeCollectionStartedAt != nil && e.FeeCollectionStartedAt.Equal(started)
}

func checkFeeDue(e entities.CostEstimate, now time.Time) error {
	if e.Decision != entities.DecisionRejected {
		return entities.NewDomainError(entities.ErrPreconditionFailed, "estimate v%d is %s, only a rejected estimate carries a fee", e.Version, e.Decision)
	}
	switch e.FeeStatus {
	case entities.FeeStatusDue:
		return nil
	case entities.FeeStatusCollecting:
		if e.FeeCollectionStartedAt != nil && now.Sub(*e.FeeCollectionStartedAt) >= feeCollectionLease {
			return nil
		}
		return entities.InvalidTransition("fee of estimate v%d is already being collected", e.Version)
	}
	return entities.InvalidTransition("fee of estimate v%d is %s", e.Version, e.FeeStatus)
}

// preparePayload links the provider payment to the estimate and forces the
// amount to the recorded fee.
func (u *FeePaymentUseCase) preparePayload(raw json.RawMessage, reference string, est entities.CostEstimate) (json.RawMessage, error) {
	var reqMap map[string]any
	if err := json.Unmarshal(raw, &reqMap); err != nil || reqMap == nil {
		return nil, ErrInvalidMPPayload
	}
	if !u.settings.Mock {
		if !hasNonEmptyString(reqMap, "payment_method_id") {
			return nil, ErrInvalidMPPayload
		}
		u.normalizeSandboxPayer(reqMap)
		u.ensurePayerDefaults(reqMap)
		if !hasPayer(reqMap) {
			return nil, ErrInvalidMPPayload
		}
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = reference
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Rejection fee %s", reference)
	}
	amount, _ := est.FeeAmount.Float64()
	reqMap["transaction_amount"] = amount
	return json.Marshal(reqMap)
}

func hasNonEmptyString(m map[string]any, key string) bool {
	s, ok := m[key].(string)
	return ok && strings.TrimSpace(s) != ""
}

func hasPayer(m map[string]any) bool {
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return false
	}
	return hasNonEmptyString(payer, "email") || hasPayerID(payer)
}

func hasPayerID(payer map[string]any) bool {
	v, ok := payer["id"]
	if !ok || v == nil {
		return false
	}
	s := strings.TrimSpace(fmt.Sprintf("%v", v))
	return s != "" && s != "<nil>"
}

func (u *FeePaymentUseCase) ensurePayerDefaults(m map[string]any) {
	if v, ok := m["payer"]; !ok || v == nil {
		m["payer"] = map[string]any{}
	}
	payer, ok := m["payer"].(map[string]any)
	if !ok {
		return
	}
	if _, ok := payer["type"]; !ok {
		payer["type"] = "customer"
	}
	// In sandbox either payer.id or payer.email may be used; fill email only when both are missing.
	if !hasPayerID(payer) && !hasNonEmptyString(payer, "email") {
		if email := strings.TrimSpace(u.settings.TestPayerEmail); email != "" {
			payer["email"] = email
		} else if u.settings.sandbox() {
			payer["email"] = "test_user_br@testuser.com"
		}
	}
}

func (u *FeePaymentUseCase) normalizeSandboxPayer(m map[string]any) {
	payer, ok := m["payer"].(map[string]any)
	if !ok || !hasPayerID(payer) || hasNonEmptyString(payer, "email") || !u.settings.sandbox() {
		return
	}
	userID := strings.TrimSpace(u.settings.TestPayerUserID)
	email := strings.TrimSpace(u.settings.TestPayerEmail)
	if userID == "" || email == "" {
		return
	}
	if strings.TrimSpace(fmt.Sprintf("%v", payer["id"])) != userID {
		return
	}
	payer["email"] = email
	delete(payer, "id")
	u.log.Debug("mapped sandbox payer user_id to payer.email")
}

func mapProviderStatus(s string) entities.PaymentStatus {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "approved", "accredited", "authorized":
		return entities.PaymentStatusApproved
	case "rejected", "cancelled", "refunded", "charged_back":
		return entities.PaymentStatusDenied
	}
	return entities.PaymentStatusPending
}

func classifyGatewayError(err error) error {
	msg := strings.ToLower(err.Error())
	switch {
	case strings.Contains(msg, "customer not found") || strings.Contains(msg, "\"code\":2002"):
		return ErrPaymentGatewayCustomerNotFound
	case strings.Contains(msg, "invalid users involved") || strings.Contains(msg, "\"code\":2034"):
		return ErrPaymentGatewayInvalidUsers
	case strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401"):
		return ErrPaymentGatewayUnauthorized
	case strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400"):
		return ErrPaymentGatewayBadRequest
	}
	return err
}
