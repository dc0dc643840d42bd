package usecase

import (
	"context"
	"strings"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// statusMachine applies order status transitions inside a caller's transaction.
// It is shared by the order and cost estimate use cases so that every path that
// moves an order goes through the same rules.
type statusMachine struct {
	clock interfaces.IClock
}

// estimateGated are the statuses an order with a cost estimate may only move
// forward into after the customer approved the current version.
var estimateGated = map[entities.OrderStatus]bool{
	entities.OrderStatusRepairing:      true,
	entities.OrderStatusReadyForPickup: true,
	entities.OrderStatusPickedUp:       true,
}

// apply validates and performs a transition, persists the order, appends the
// history entry and returns the notifications to raise after commit.
func (m statusMachine) apply(
	ctx context.Context,
	tx interfaces.IWorkflowTx,
	order *entities.Order,
	target entities.OrderStatus,
	actor entities.Actor,
	note string,
) (entities.StatusHistoryEntry, []entities.NotificationEvent, error) {
	if err := entities.CheckTransition(order.Status, target); err != nil {
		return entities.StatusHistoryEntry{}, nil, err
	}
	note = strings.TrimSpace(note)
	direction := entities.ClassifyTransition(order.Status, target)
	if direction == entities.DirectionBackward && note == "" {
		return entities.StatusHistoryEntry{}, nil, entities.NewDomainError(entities.ErrJustificationRequired,
			"moving order %s back from %s to %s requires a note", order.Number, order.Status, target)
	}
	if direction == entities.DirectionForward && estimateGated[target] &&
		order.RequiresEstimate && order.Approval != entities.ApprovalApproved {
		return entities.StatusHistoryEntry{}, nil, entities.NewDomainError(entities.ErrPreconditionFailed,
			"order %s cannot move to %s, cost estimate v%d is %s", order.Number, target, order.CurrentEstimateVersion, approvalLabel(order.Approval))
	}
	if target == entities.OrderStatusReadyForPickup {
		if ok, open := order.ChecklistComplete(); !ok {
			return entities.StatusHistoryEntry{}, nil, &entities.DomainError{
				Kind:    entities.ErrPreconditionFailed,
				Message: "quality checklist has unchecked items",
				Fields:  open,
			}
		}
	}

	now := m.clock.Now()
	entry := entities.StatusHistoryEntry{
		ID:          uuid.NewString(),
		OrderNumber: order.Number,
		Seq:         order.NextHistorySeq(),
		OldStatus:   order.Status,
		NewStatus:   target,
		ActorID:     actor.ID,
		Note:        note,
		At:          now,
	}
	order.Status = target
	order.UpdatedAt = now
	if err := tx.UpdateOrder(ctx, order); err != nil {
		return entities.StatusHistoryEntry{}, nil, err
	}
	if err := tx.AppendStatusHistory(ctx, entry); err != nil {
		return entities.StatusHistoryEntry{}, nil, err
	}

	var events []entities.NotificationEvent
	switch {
	case target == entities.OrderStatusAwaitingPartOrApproval && order.RequiresEstimate:
		events = append(events, entities.NotificationEvent{
			Type:     entities.NotificationAwaitingApproval,
			OrderID:  order.Number,
			Payload:  map[string]string{"estimated_price": order.EstimatedPrice.StringFixed(entities.MoneyScale)},
			RaisedAt: now,
		})
	case target == entities.OrderStatusReadyForPickup:
		events = append(events, entities.NotificationEvent{
			Type:     entities.NotificationReadyForPickup,
			OrderID:  order.Number,
			Payload:  map[string]string{"location": order.Location},
			RaisedAt: now,
		})
	}
	return entry, events, nil
}

// dispatcher delivers notifications after a transaction has committed.
// Failures are logged and swallowed.
type dispatcher struct {
	notifier interfaces.INotifier
	log      *zap.Logger
}

func (d dispatcher) send(ctx context.Context, events []entities.NotificationEvent) {
	if d.notifier == nil {
		return
	}
	for _, ev := range events {
		if err := d.notifier.Notify(ctx, ev); err != nil {
			d.log.Warn("notification delivery failed",
				zap.String("type", string(ev.Type)),
				zap.String("order", ev.OrderID),
				zap.Error(err),
			)
		}
	}
}

func approvalLabel(a entities.ApprovalState) string {
	switch a {
	case entities.ApprovalRejected:
		return "rejected"
	case entities.ApprovalApproved:
		return "approved"
	}
	return "not decided yet"
}

func requireActor(actor entities.Actor) error {
	return actor.Validate()
}

func nopLogger(l *zap.Logger) *zap.Logger {
	if l == nil {
		return zap.NewNop()
	}
	return l
}
