package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// DefaultEstimateValidity applies when no validity window is configured.
const DefaultEstimateValidity = 30 * 24 * time.Hour

// EstimateInput carries the cost fields of a new estimate version. Labor and
// parts are nullable so a missing value can be told apart from zero.
type EstimateInput struct {
	Type       entities.EstimateType
	LaborCost  decimal.NullDecimal
	PartsCost  decimal.NullDecimal
	MinCost    decimal.NullDecimal
	MaxCost    decimal.NullDecimal
	FeeAmount  decimal.Decimal
	Note       string
	ValidUntil *time.Time
}

// DecisionInput is a customer or staff verdict on a sent estimate.
type DecisionInput struct {
	Approved   bool
	Channel    string
	Note       string
	IsCustomer bool
}

// EstimateOutcome is the estimate and the order after an estimate operation.
// StatusEntry is set when the operation moved the order.
type EstimateOutcome struct {
	Estimate    entities.CostEstimate
	Order       entities.Order
	StatusEntry *entities.StatusHistoryEntry
	Replayed    bool
}

// ICostEstimateUseCase is the versioned cost estimate (KVA) workflow.
type ICostEstimateUseCase interface {
	CreateVersion(ctx context.Context, orderNumber string, in EstimateInput, actor entities.Actor) (EstimateOutcome, error)
	Send(ctx context.Context, orderNumber string, version int, channel string, actor entities.Actor) (EstimateOutcome, error)
	Remind(ctx context.Context, orderNumber string, version int, channel string, actor entities.Actor) (EstimateOutcome, error)
	RecordDecision(ctx context.Context, orderNumber string, version int, in DecisionInput, actor entities.Actor) (EstimateOutcome, error)
	WaiveFee(ctx context.Context, orderNumber string, version int, reason string, actor entities.Actor) (EstimateOutcome, error)
	ReleasePrice(ctx context.Context, orderNumber string, version int, actor entities.Actor) (EstimateOutcome, error)
	GetEstimate(ctx context.Context, orderNumber string, version int) (entities.CostEstimate, error)
	ListEstimates(ctx context.Context, orderNumber string) ([]entities.CostEstimate, error)
	History(ctx context.Context, orderNumber string, version int) ([]entities.EstimateHistoryEntry, error)
}

type CostEstimateUseCase struct {
	store    interfaces.IWorkflowStore
	clock    interfaces.IClock
	machine  statusMachine
	dispatch dispatcher
	validity time.Duration
	log      *zap.Logger
}

var _ ICostEstimateUseCase = (*CostEstimateUseCase)(nil)

func NewCostEstimateUseCase(store interfaces.IWorkflowStore, clock interfaces.IClock, notifier interfaces.INotifier, validity time.Duration, log *zap.Logger) *CostEstimateUseCase {
	if validity <= 0 {
		validity = DefaultEstimateValidity
	}
	log = nopLogger(log).Named("estimates")
	return &CostEstimateUseCase{
		store:    store,
		clock:    clock,
		machine:  statusMachine{clock: clock},
		dispatch: dispatcher{notifier: notifier, log: log},
		validity: validity,
		log:      log,
	}
}

type estimateTotals struct {
	labor, parts, total decimal.Decimal
	min, max            decimal.NullDecimal
}

// computeTotals validates the cost fields for the estimate type and derives the total.
func computeTotals(in EstimateInput) (estimateTotals, error) {
	if !in.Type.Valid() {
		return estimateTotals{}, entities.ValidationError("unknown estimate type %q", in.Type)
	}
	if in.FeeAmount.IsNegative() {
		return estimateTotals{}, entities.ValidationError("fee amount must not be negative")
	}
	fields := []struct {
		name string
		v    decimal.NullDecimal
	}{
		{"labor_cost", in.LaborCost},
		{"parts_cost", in.PartsCost},
		{"min_cost", in.MinCost},
		{"max_cost", in.MaxCost},
	}
	for _, f := range fields {
		if f.v.Valid && f.v.Decimal.IsNegative() {
			return estimateTotals{}, entities.ValidationError("%s must not be negative", f.name)
		}
	}

	t := estimateTotals{
		labor: entities.RoundMoney(in.LaborCost.Decimal),
		parts: entities.RoundMoney(in.PartsCost.Decimal),
	}
	switch in.Type {
	case entities.EstimateTypeFixed, entities.EstimateTypeVariable:
		if !in.LaborCost.Valid || !in.PartsCost.Valid {
			return estimateTotals{}, entities.ValidationError("%s estimate requires labor_cost and parts_cost", in.Type)
		}
		if in.MinCost.Valid || in.MaxCost.Valid {
			return estimateTotals{}, entities.ValidationError("min_cost and max_cost only apply to up_to estimates")
		}
		t.total = entities.RoundMoney(t.labor.Add(t.parts))
	case entities.EstimateTypeUpTo:
		if !in.MaxCost.Valid || !in.MaxCost.Decimal.IsPositive() {
			return estimateTotals{}, entities.ValidationError("up_to estimate requires a positive max_cost")
		}
		ceiling := entities.RoundMoney(in.MaxCost.Decimal)
		t.max = decimal.NewNullDecimal(ceiling)
		if in.MinCost.Valid {
			floor := entities.RoundMoney(in.MinCost.Decimal)
			if floor.GreaterThan(ceiling) {
				return estimateTotals{}, entities.ValidationError("min_cost %s exceeds max_cost %s", money(floor), money(ceiling))
			}
			t.min = decimal.NewNullDecimal(floor)
		}
		if t.labor.Add(t.parts).GreaterThan(ceiling) {
			return estimateTotals{}, entities.ValidationError("labor and parts exceed max_cost %s", money(ceiling))
		}
		t.total = ceiling
	}
	if !t.total.IsPositive() {
		return estimateTotals{}, entities.ValidationError("estimate total must be positive")
	}
	return t, nil
}

// CreateVersion supersedes the current estimate of an order with a new draft
// version and points the order at it.
func (u *CostEstimateUseCase) CreateVersion(ctx context.Context, orderNumber string, in EstimateInput, actor entities.Actor) (EstimateOutcome, error) {
	if err := requireActor(actor); err != nil {
		return EstimateOutcome{}, err
	}
	totals, err := computeTotals(in)
	if err != nil {
		return EstimateOutcome{}, err
	}

	var (
		out    EstimateOutcome
		events []entities.NotificationEvent
	)
	err = u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		order, err := tx.GetOrder(ctx, orderNumber)
		if err != nil {
			return err
		}
		if order.Status.IsTerminal() {
			return entities.NewDomainError(entities.ErrTerminalState, "order %s is %s", order.Number, order.Status)
		}

		prev := order.CurrentEstimateVersion
		if prev > 0 {
			old, err := tx.GetEstimate(ctx, order.Number, prev)
			if err != nil {
				return err
			}
			old.IsCurrent = false
			old.UpdatedAt = u.clock.Now()
			if err := tx.UpdateEstimate(ctx, &old); err != nil {
				return err
			}
		}

		now := u.clock.Now()
		validUntil := now.Add(u.validity)
		if in.ValidUntil != nil {
			if !in.ValidUntil.After(now) {
				return entities.ValidationError("valid_until must be in the future")
			}
			validUntil = *in.ValidUntil
		}
		est := entities.CostEstimate{
			OrderNumber:   order.Number,
			Version:       prev + 1,
			ParentVersion: prev,
			IsCurrent:     true,
			Type:          in.Type,
			LaborCost:     totals.labor,
			PartsCost:     totals.parts,
			Total:         totals.total,
			MinCost:       totals.min,
			MaxCost:       totals.max,
			Note:          strings.TrimSpace(in.Note),
			Status:        entities.EstimateStatusDraft,
			Decision:      entities.DecisionUndecided,
			FeeAmount:     entities.RoundMoney(in.FeeAmount),
			FeeStatus:     entities.FeeStatusNone,
			ValidUntil:    validUntil,
			CreatedBy:     actor.ID,
			CreatedAt:     now,
			UpdatedAt:     now,
		}
		if err := tx.CreateEstimate(ctx, &est); err != nil {
			return err
		}

		order.RequiresEstimate = true
		order.EstimatedPrice = est.Total
		order.Approval = entities.ApprovalUnknown
		order.FinalPrice = decimal.NullDecimal{}
		order.CurrentEstimateVersion = est.Version
		entry, evs, err := u.driveToAwaiting(ctx, tx, &order, actor, fmt.Sprintf("cost estimate v%d created", est.Version))
		if err != nil {
			return err
		}

		payload := map[string]string{
			"type":       string(est.Type),
			"labor_cost": money(est.LaborCost),
			"parts_cost": money(est.PartsCost),
			"total":      money(est.Total),
			"fee_amount": money(est.FeeAmount),
		}
		if est.MinCost.Valid {
			payload["min_cost"] = money(est.MinCost.Decimal)
		}
		if est.MaxCost.Valid {
			payload["max_cost"] = money(est.MaxCost.Decimal)
		}
		if prev > 0 {
			payload["parent_version"] = strconv.Itoa(prev)
		}
		if err := u.appendHistory(ctx, tx, est, entities.EstimateEventCreated, actor, payload); err != nil {
			return err
		}
		out = EstimateOutcome{Estimate: est, Order: order, StatusEntry: entry}
		events = evs
		return nil
	})
	if err != nil {
		return EstimateOutcome{}, err
	}
	u.log.Info("estimate version created",
		zap.String("order", orderNumber),
		zap.Int("version", out.Estimate.Version),
		zap.String("total", money(out.Estimate.Total)),
	)
	u.dispatch.send(ctx, events)
	return out, nil
}

// Send hands a draft estimate to the customer.
func (u *CostEstimateUseCase) Send(ctx context.Context, orderNumber string, version int, channel string, actor entities.Actor) (EstimateOutcome, error) {
	if err := requireActor(actor); err != nil {
		return EstimateOutcome{}, err
	}
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return EstimateOutcome{}, entities.ValidationError("send channel is required")
	}
	var (
		out    EstimateOutcome
		events []entities.NotificationEvent
	)
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		order, est, err := u.loadOpen(ctx, tx, orderNumber, version)
		if err != nil {
			return err
		}
		if est.Status != entities.EstimateStatusDraft {
			return entities.InvalidTransition("estimate v%d is %s, only a draft can be sent", est.Version, est.Status)
		}
		now := u.clock.Now()
		est.Status = entities.EstimateStatusSent
		est.SentChannel = channel
		est.SentAt = &now
		est.UpdatedAt = now
		if err := tx.UpdateEstimate(ctx, &est); err != nil {
			return err
		}
		if err := u.appendHistory(ctx, tx, est, entities.EstimateEventSent, actor, map[string]string{"channel": channel}); err != nil {
			return err
		}

		entry, evs, err := u.driveToAwaiting(ctx, tx, &order, actor, fmt.Sprintf("cost estimate v%d sent", est.Version))
		if err != nil {
			return err
		}
		events = append(evs, entities.NotificationEvent{
			Type:    entities.NotificationEstimateSent,
			OrderID: order.Number,
			Payload: map[string]string{
				"version": strconv.Itoa(est.Version),
				"channel": channel,
				"total":   money(est.Total),
			},
			RaisedAt: now,
		})
		out = EstimateOutcome{Estimate: est, Order: order, StatusEntry: entry}
		return nil
	})
	if err != nil {
		return EstimateOutcome{}, err
	}
	u.log.Info("estimate sent", zap.String("order", orderNumber), zap.Int("version", version), zap.String("channel", channel))
	u.dispatch.send(ctx, events)
	return out, nil
}

// Remind records a follow-up on a sent estimate that is still unanswered.
func (u *CostEstimateUseCase) Remind(ctx context.Context, orderNumber string, version int, channel string, actor entities.Actor) (EstimateOutcome, error) {
	if err := requireActor(actor); err != nil {
		return EstimateOutcome{}, err
	}
	channel = strings.TrimSpace(channel)
	if channel == "" {
		return EstimateOutcome{}, entities.ValidationError("reminder channel is required")
	}
	var out EstimateOutcome
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		order, est, err := u.loadOpen(ctx, tx, orderNumber, version)
		if err != nil {
			return err
		}
		if !awaitingDecision(est) {
			return entities.InvalidTransition("estimate v%d is %s, only a sent estimate can be reminded", est.Version, est.Status)
		}
		est.Status = entities.EstimateStatusAwaitingResponse
		est.UpdatedAt = u.clock.Now()
		if err := tx.UpdateEstimate(ctx, &est); err != nil {
			return err
		}
		if err := u.appendHistory(ctx, tx, est, entities.EstimateEventReminded, actor, map[string]string{"channel": channel}); err != nil {
			return err
		}
		out = EstimateOutcome{Estimate: est, Order: order}
		return nil
	})
	return out, err
}

// RecordDecision stores the verdict on a sent estimate. Replaying the decision
// already recorded is a no-op; a conflicting one is rejected.
func (u *CostEstimateUseCase) RecordDecision(ctx context.Context, orderNumber string, version int, in DecisionInput, actor entities.Actor) (EstimateOutcome, error) {
	if err := requireActor(actor); err != nil {
		return EstimateOutcome{}, err
	}
	in.Channel = strings.TrimSpace(in.Channel)
	in.Note = strings.TrimSpace(in.Note)
	if in.Channel == "" {
		return EstimateOutcome{}, entities.ValidationError("decision channel is required")
	}
	var (
		out    EstimateOutcome
		events []entities.NotificationEvent
	)
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		order, err := tx.GetOrder(ctx, orderNumber)
		if err != nil {
			return err
		}
		est, err := tx.GetEstimate(ctx, orderNumber, version)
		if err != nil {
			return err
		}
		if est.Decision != entities.DecisionUndecided {
			if est.SameDecision(in.Approved, in.Channel, in.Note) {
				out = EstimateOutcome{Estimate: est, Order: order, Replayed: true}
				return nil
			}
			return entities.InvalidTransition("estimate v%d is already %s", est.Version, est.Decision)
		}
		if err := checkOpen(order, est); err != nil {
			return err
		}
		if !awaitingDecision(est) {
			return entities.InvalidTransition("estimate v%d is %s, a decision needs a sent estimate", est.Version, est.Status)
		}

		now := u.clock.Now()
		if !est.ValidUntil.IsZero() && now.After(est.ValidUntil) {
			return entities.InvalidTransition("estimate v%d expired at %s, create a new version", est.Version, est.ValidUntil.Format(time.RFC3339))
		}
		est.Status = entities.EstimateStatusDecided
		est.DecisionActorType = entities.DecisionByStaff
		if in.IsCustomer {
			est.DecisionActorType = entities.DecisionByCustomer
		}
		est.DecidedBy = actor.ID
		est.DecisionChannel = in.Channel
		est.DecisionNote = in.Note
		est.DecidedAt = &now
		est.UpdatedAt = now

		event := entities.EstimateEventRejected
		var entry *entities.StatusHistoryEntry
		if in.Approved {
			event = entities.EstimateEventApproved
			est.Decision = entities.DecisionApproved
			order.Approval = entities.ApprovalApproved
			if order.Status == entities.OrderStatusAwaitingPartOrApproval {
				e, evs, err := u.machine.apply(ctx, tx, &order, entities.OrderStatusRepairing, actor, fmt.Sprintf("cost estimate v%d approved", est.Version))
				if err != nil {
					return err
				}
				entry, events = &e, evs
			} else if err := u.touchOrder(ctx, tx, &order, now); err != nil {
				return err
			}
		} else {
			est.Decision = entities.DecisionRejected
			est.FeeStatus = entities.FeeStatusNone
			if est.FeeAmount.IsPositive() {
				est.FeeStatus = entities.FeeStatusDue
			}
			order.Approval = entities.ApprovalRejected
			if err := u.touchOrder(ctx, tx, &order, now); err != nil {
				return err
			}
		}
		if err := tx.UpdateEstimate(ctx, &est); err != nil {
			return err
		}
		payload := map[string]string{
			"channel":    in.Channel,
			"actor_type": string(est.DecisionActorType),
			"fee_status": string(est.FeeStatus),
		}
		if in.Note != "" {
			payload["note"] = in.Note
		}
		if err := u.appendHistory(ctx, tx, est, event, actor, payload); err != nil {
			return err
		}
		out = EstimateOutcome{Estimate: est, Order: order, StatusEntry: entry}
		return nil
	})
	if err != nil {
		return EstimateOutcome{}, err
	}
	if out.Replayed {
		u.log.Debug("decision replay ignored", zap.String("order", orderNumber), zap.Int("version", version))
		return out, nil
	}
	u.log.Info("estimate decided",
		zap.String("order", orderNumber),
		zap.Int("version", version),
		zap.String("decision", string(out.Estimate.Decision)),
		zap.String("actor", actor.ID),
	)
	u.dispatch.send(ctx, events)
	return out, nil
}

// WaiveFee drops the rejection fee of a single estimate version.
func (u *CostEstimateUseCase) WaiveFee(ctx context.Context, orderNumber string, version int, reason string, actor entities.Actor) (EstimateOutcome, error) {
	if err := requireActor(actor); err != nil {
		return EstimateOutcome{}, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return EstimateOutcome{}, entities.NewDomainError(entities.ErrMissingReason, "waiving the fee of estimate v%d requires a reason", version)
	}
	var out EstimateOutcome
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		order, err := tx.GetOrder(ctx, orderNumber)
		if err != nil {
			return err
		}
		est, err := tx.GetEstimate(ctx, orderNumber, version)
		if err != nil {
			return err
		}
		if est.Decision != entities.DecisionRejected {
			return entities.InvalidTransition("estimate v%d is %s, only a rejected estimate has a fee to waive", est.Version, est.Decision)
		}
		switch est.FeeStatus {
		case entities.FeeStatusWaived:
			return entities.InvalidTransition("fee of estimate v%d is already waived", est.Version)
		case entities.FeeStatusPaid:
			return entities.InvalidTransition("fee of estimate v%d is already paid", est.Version)
		case entities.FeeStatusCollecting:
			return entities.InvalidTransition("fee of estimate v%d is being collected", est.Version)
		}
		est.FeeStatus = entities.FeeStatusWaived
		est.FeeWaiverReason = reason
		est.FeeWaivedBy = actor.ID
		est.UpdatedAt = u.clock.Now()
		if err := tx.UpdateEstimate(ctx, &est); err != nil {
			return err
		}
		payload := map[string]string{"reason": reason, "fee_amount": money(est.FeeAmount)}
		if err := u.appendHistory(ctx, tx, est, entities.EstimateEventFeeWaived, actor, payload); err != nil {
			return err
		}
		out = EstimateOutcome{Estimate: est, Order: order}
		return nil
	})
	if err != nil {
		return EstimateOutcome{}, err
	}
	u.log.Info("estimate fee waived", zap.String("order", orderNumber), zap.Int("version", version), zap.String("actor", actor.ID))
	return out, nil
}

// ReleasePrice fixes the order's final price from its approved current estimate.
func (u *CostEstimateUseCase) ReleasePrice(ctx context.Context, orderNumber string, version int, actor entities.Actor) (EstimateOutcome, error) {
	if err := requireActor(actor); err != nil {
		return EstimateOutcome{}, err
	}
	var out EstimateOutcome
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		order, err := tx.GetOrder(ctx, orderNumber)
		if err != nil {
			return err
		}
		est, err := tx.GetEstimate(ctx, orderNumber, version)
		if err != nil {
			return err
		}
		if !est.IsCurrent {
			return entities.InvalidTransition("estimate v%d is not the current version", est.Version)
		}
		if est.Decision != entities.DecisionApproved {
			return entities.NewDomainError(entities.ErrPreconditionFailed, "estimate v%d is not approved", est.Version)
		}
		if order.FinalPrice.Valid && order.FinalPrice.Decimal.Equal(est.Total) {
			out = EstimateOutcome{Estimate: est, Order: order, Replayed: true}
			return nil
		}
		if order.Status.IsTerminal() {
			return entities.NewDomainError(entities.ErrTerminalState, "order %s is %s", order.Number, order.Status)
		}
		now := u.clock.Now()
		order.FinalPrice = decimal.NewNullDecimal(est.Total)
		if err := u.touchOrder(ctx, tx, &order, now); err != nil {
			return err
		}
		if err := u.appendHistory(ctx, tx, est, entities.EstimateEventPriceReleased, actor, map[string]string{"final_price": money(est.Total)}); err != nil {
			return err
		}
		out = EstimateOutcome{Estimate: est, Order: order}
		return nil
	})
	return out, err
}

func (u *CostEstimateUseCase) GetEstimate(ctx context.Context, orderNumber string, version int) (entities.CostEstimate, error) {
	var out entities.CostEstimate
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		e, err := tx.GetEstimate(ctx, orderNumber, version)
		out = e
		return err
	})
	return out, err
}

func (u *CostEstimateUseCase) ListEstimates(ctx context.Context, orderNumber string) ([]entities.CostEstimate, error) {
	var out []entities.CostEstimate
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		if _, err := tx.GetOrder(ctx, orderNumber); err != nil {
			return err
		}
		es, err := tx.ListEstimates(ctx, orderNumber)
		out = es
		return err
	})
	return out, err
}

func (u *CostEstimateUseCase) History(ctx context.Context, orderNumber string, version int) ([]entities.EstimateHistoryEntry, error) {
	var out []entities.EstimateHistoryEntry
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		if _, err := tx.GetEstimate(ctx, orderNumber, version); err != nil {
			return err
		}
		hs, err := tx.ListEstimateHistory(ctx, orderNumber, version)
		out = hs
		return err
	})
	return out, err
}

// loadOpen loads an order and one of its estimates for a send-side operation.
func (u *CostEstimateUseCase) loadOpen(ctx context.Context, tx interfaces.IWorkflowTx, orderNumber string, version int) (entities.Order, entities.CostEstimate, error) {
	order, err := tx.GetOrder(ctx, orderNumber)
	if err != nil {
		return entities.Order{}, entities.CostEstimate{}, err
	}
	est, err := tx.GetEstimate(ctx, orderNumber, version)
	if err != nil {
		return entities.Order{}, entities.CostEstimate{}, err
	}
	if err := checkOpen(order, est); err != nil {
		return entities.Order{}, entities.CostEstimate{}, err
	}
	return order, est, nil
}

func checkOpen(order entities.Order, est entities.CostEstimate) error {
	if order.Status.IsTerminal() {
		return entities.NewDomainError(entities.ErrTerminalState, "order %s is %s", order.Number, order.Status)
	}
	if !est.IsCurrent || order.CurrentEstimateVersion != est.Version {
		return entities.InvalidTransition("estimate v%d has been superseded by v%d", est.Version, order.CurrentEstimateVersion)
	}
	return nil
}

func awaitingDecision(est entities.CostEstimate) bool {
	return est.Status == entities.EstimateStatusSent || est.Status == entities.EstimateStatusAwaitingResponse
}

// driveToAwaiting moves the order to awaiting_part_or_approval unless it is
// already there, in which case only the order row is written.
func (u *CostEstimateUseCase) driveToAwaiting(ctx context.Context, tx interfaces.IWorkflowTx, order *entities.Order, actor entities.Actor, note string) (*entities.StatusHistoryEntry, []entities.NotificationEvent, error) {
	if order.Status == entities.OrderStatusAwaitingPartOrApproval {
		return nil, nil, u.touchOrder(ctx, tx, order, u.clock.Now())
	}
	entry, events, err := u.machine.apply(ctx, tx, order, entities.OrderStatusAwaitingPartOrApproval, actor, note)
	if err != nil {
		return nil, nil, err
	}
	return &entry, events, nil
}

func (u *CostEstimateUseCase) touchOrder(ctx context.Context, tx interfaces.IWorkflowTx, order *entities.Order, now time.Time) error {
	order.UpdatedAt = now
	return tx.UpdateOrder(ctx, order)
}

func (u *CostEstimateUseCase) appendHistory(ctx context.Context, tx interfaces.IWorkflowTx, est entities.CostEstimate, event entities.EstimateEvent, actor entities.Actor, payload map[string]string) error {
	return tx.AppendEstimateHistory(ctx, entities.EstimateHistoryEntry{
		ID:              uuid.NewString(),
		OrderNumber:     est.OrderNumber,
		EstimateVersion: est.Version,
		Event:           event,
		ActorID:         actor.ID,
		At:              u.clock.Now(),
		Payload:         payload,
	})
}

func money(d decimal.Decimal) string {
	return d.StringFixed(entities.MoneyScale)
}
