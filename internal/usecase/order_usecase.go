package usecase

import (
	"context"
	"strings"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// IntakeInput carries the data captured when a device is handed in.
type IntakeInput struct {
	Number             string
	Location           string
	PartnerID          string
	DeviceManufacturer string
	DeviceModel        string
	TechnicianID       string
	Checklist          []string
}

// OrderView is an order together with its full status history.
type OrderView struct {
	Order   entities.Order
	History []entities.StatusHistoryEntry
}

// TransitionOutcome is the updated order and the history entry the transition wrote.
type TransitionOutcome struct {
	Order entities.Order
	Entry entities.StatusHistoryEntry
}

// IOrderUseCase is the repair ticket lifecycle: intake, status transitions and
// the quality checklist that gates ready_for_pickup.
type IOrderUseCase interface {
	CreateOrder(ctx context.Context, in IntakeInput, actor entities.Actor) (OrderView, error)
	Transition(ctx context.Context, number string, target entities.OrderStatus, actor entities.Actor, note string) (TransitionOutcome, error)
	AssignTechnician(ctx context.Context, number, technicianID string, actor entities.Actor) (entities.Order, error)
	SetChecklist(ctx context.Context, number string, labels []string, actor entities.Actor) (entities.Order, error)
	CheckItem(ctx context.Context, number, label string, checked bool, actor entities.Actor) (entities.Order, error)
	GetOrder(ctx context.Context, number string) (OrderView, error)
}

type OrderUseCase struct {
	store    interfaces.IWorkflowStore
	clock    interfaces.IClock
	machine  statusMachine
	dispatch dispatcher
	log      *zap.Logger
}

var _ IOrderUseCase = (*OrderUseCase)(nil)

func NewOrderUseCase(store interfaces.IWorkflowStore, clock interfaces.IClock, notifier interfaces.INotifier, log *zap.Logger) *OrderUseCase {
	log = nopLogger(log).Named("orders")
	return &OrderUseCase{
		store:    store,
		clock:    clock,
		machine:  statusMachine{clock: clock},
		dispatch: dispatcher{notifier: notifier, log: log},
		log:      log,
	}
}

func (u *OrderUseCase) CreateOrder(ctx context.Context, in IntakeInput, actor entities.Actor) (OrderView, error) {
	if err := requireActor(actor); err != nil {
		return OrderView{}, err
	}
	if in.DeviceModel != "" && strings.TrimSpace(in.DeviceManufacturer) == "" {
		return OrderView{}, entities.ValidationError("device model given without manufacturer")
	}
	number := strings.TrimSpace(in.Number)
	if number == "" {
		number = "OS-" + strings.ToUpper(uuid.NewString()[:8])
	}
	checklist, err := buildChecklist(in.Checklist)
	if err != nil {
		return OrderView{}, err
	}

	now := u.clock.Now()
	order := entities.Order{
		Number:             number,
		Status:             entities.OrderStatusReceived,
		Approval:           entities.ApprovalUnknown,
		Location:           strings.TrimSpace(in.Location),
		PartnerID:          strings.TrimSpace(in.PartnerID),
		DeviceManufacturer: strings.TrimSpace(in.DeviceManufacturer),
		DeviceModel:        strings.TrimSpace(in.DeviceModel),
		TechnicianID:       strings.TrimSpace(in.TechnicianID),
		Checklist:          checklist,
		CreatedBy:          actor.ID,
		CreatedAt:          now,
		UpdatedAt:          now,
	}
	entry := entities.StatusHistoryEntry{
		ID:          uuid.NewString(),
		OrderNumber: number,
		Seq:         order.NextHistorySeq(),
		NewStatus:   entities.OrderStatusReceived,
		ActorID:     actor.ID,
		Note:        "intake",
		At:          now,
	}

	err = u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		if err := tx.CreateOrder(ctx, &order); err != nil {
			return err
		}
		return tx.AppendStatusHistory(ctx, entry)
	})
	if err != nil {
		return OrderView{}, err
	}
	u.log.Info("order received", zap.String("order", number), zap.String("actor", actor.ID))
	return OrderView{Order: order, History: []entities.StatusHistoryEntry{entry}}, nil
}

func (u *OrderUseCase) Transition(ctx context.Context, number string, target entities.OrderStatus, actor entities.Actor, note string) (TransitionOutcome, error) {
	if err := requireActor(actor); err != nil {
		return TransitionOutcome{}, err
	}
	var (
		out    TransitionOutcome
		events []entities.NotificationEvent
	)
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		order, err := tx.GetOrder(ctx, number)
		if err != nil {
			return err
		}
		entry, evs, err := u.machine.apply(ctx, tx, &order, target, actor, note)
		if err != nil {
			return err
		}
		out = TransitionOutcome{Order: order, Entry: entry}
		events = evs
		return nil
	})
	if err != nil {
		return TransitionOutcome{}, err
	}
	u.log.Info("order transitioned",
		zap.String("order", number),
		zap.String("from", string(out.Entry.OldStatus)),
		zap.String("to", string(out.Entry.NewStatus)),
		zap.String("actor", actor.ID),
	)
	u.dispatch.send(ctx, events)
	return out, nil
}

func (u *OrderUseCase) AssignTechnician(ctx context.Context, number, technicianID string, actor entities.Actor) (entities.Order, error) {
	if err := requireActor(actor); err != nil {
		return entities.Order{}, err
	}
	technicianID = strings.TrimSpace(technicianID)
	return u.mutate(ctx, number, func(o *entities.Order) error {
		o.TechnicianID = technicianID
		return nil
	})
}

func (u *OrderUseCase) SetChecklist(ctx context.Context, number string, labels []string, actor entities.Actor) (entities.Order, error) {
	if err := requireActor(actor); err != nil {
		return entities.Order{}, err
	}
	checklist, err := buildChecklist(labels)
	if err != nil {
		return entities.Order{}, err
	}
	return u.mutate(ctx, number, func(o *entities.Order) error {
		o.Checklist = checklist
		return nil
	})
}

func (u *OrderUseCase) CheckItem(ctx context.Context, number, label string, checked bool, actor entities.Actor) (entities.Order, error) {
	if err := requireActor(actor); err != nil {
		return entities.Order{}, err
	}
	label = strings.TrimSpace(label)
	return u.mutate(ctx, number, func(o *entities.Order) error {
		for i := range o.Checklist {
			if o.Checklist[i].Label == label {
				o.Checklist[i].Checked = checked
				return nil
			}
		}
		return entities.NotFound("checklist item", label)
	})
}

func (u *OrderUseCase) GetOrder(ctx context.Context, number string) (OrderView, error) {
	var view OrderView
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		order, err := tx.GetOrder(ctx, number)
		if err != nil {
			return err
		}
		history, err := tx.ListStatusHistory(ctx, number)
		if err != nil {
			return err
		}
		view = OrderView{Order: order, History: history}
		return nil
	})
	return view, err
}

// mutate applies a non-status change to an order that is still open.
func (u *OrderUseCase) mutate(ctx context.Context, number string, change func(o *entities.Order) error) (entities.Order, error) {
	var out entities.Order
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		order, err := tx.GetOrder(ctx, number)
		if err != nil {
			return err
		}
		if order.Status.IsTerminal() {
			return entities.NewDomainError(entities.ErrTerminalState, "order %s is %s", number, order.Status)
		}
		if err := change(&order); err != nil {
			return err
		}
		order.UpdatedAt = u.clock.Now()
		if err := tx.UpdateOrder(ctx, &order); err != nil {
			return err
		}
		out = order
		return nil
	})
	return out, err
}

func buildChecklist(labels []string) ([]entities.ChecklistItem, error) {
	seen := make(map[string]bool, len(labels))
	items := make([]entities.ChecklistItem, 0, len(labels))
	for _, l := range labels {
		l = strings.TrimSpace(l)
		if l == "" {
			return nil, entities.ValidationError("checklist labels must not be empty")
		}
		if seen[l] {
			return nil, entities.ValidationError("duplicate checklist label %q", l)
		}
		seen[l] = true
		items = append(items, entities.ChecklistItem{Label: l})
	}
	if len(items) == 0 {
		return nil, nil
	}
	return items, nil
}
