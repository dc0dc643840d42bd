package usecase

import (
	"context"
	"sort"
	"strconv"
	"strings"
	"time"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ReservationOutcome is every aggregate a reservation operation touched.
// Movement is nil when the operation did not change stock.
type ReservationOutcome struct {
	Reservation entities.PartUsageReservation
	Part        entities.Part
	Movement    *entities.StockMovement
}

// CandidateGroups partitions the active catalog for a device, highest priority first.
type CandidateGroups struct {
	ModelSpecific    []entities.Part `json:"model_specific"`
	ManufacturerWide []entities.Part `json:"manufacturer_wide"`
	Generic          []entities.Part `json:"generic"`
}

type IPartReservationUseCase interface {
	Book(ctx context.Context, orderNumber, partID string, quantity int, reason string, actor entities.Actor) (ReservationOutcome, error)
	Approve(ctx context.Context, orderNumber, reservationID string, actor entities.Actor) (ReservationOutcome, error)
	Reject(ctx context.Context, orderNumber, reservationID string, actor entities.Actor, reason string) (ReservationOutcome, error)
	Remove(ctx context.Context, orderNumber, reservationID string, actor entities.Actor) (ReservationOutcome, error)
	ListByOrder(ctx context.Context, orderNumber string) ([]entities.PartUsageReservation, error)
	CandidateParts(ctx context.Context, manufacturer, model string) (CandidateGroups, error)
	CandidatePartsForOrder(ctx context.Context, orderNumber string) (CandidateGroups, error)
}

type PartReservationUseCase struct {
	store    interfaces.IWorkflowStore
	clock    interfaces.IClock
	ledger   *StockLedger
	dispatch dispatcher
	log      *zap.Logger
}

var _ IPartReservationUseCase = (*PartReservationUseCase)(nil)

func NewPartReservationUseCase(store interfaces.IWorkflowStore, clock interfaces.IClock, ledger *StockLedger, notifier interfaces.INotifier, log *zap.Logger) *PartReservationUseCase {
	log = nopLogger(log).Named("reservations")
	return &PartReservationUseCase{
		store:    store,
		clock:    clock,
		ledger:   ledger,
		dispatch: dispatcher{notifier: notifier, log: log},
		log:      log,
	}
}

// Book takes quantity out of stock immediately and records a pending
// reservation priced at the part's current catalog prices.
func (u *PartReservationUseCase) Book(ctx context.Context, orderNumber, partID string, quantity int, reason string, actor entities.Actor) (ReservationOutcome, error) {
	if err := requireActor(actor); err != nil {
		return ReservationOutcome{}, err
	}
	if quantity <= 0 {
		return ReservationOutcome{}, entities.ValidationError("quantity must be positive")
	}
	var (
		out    ReservationOutcome
		events []entities.NotificationEvent
	)
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		order, err := tx.GetOrder(ctx, orderNumber)
		if err != nil {
			return err
		}
		if order.Status.IsTerminal() {
			return entities.NewDomainError(entities.ErrTerminalState, "order %s is %s", order.Number, order.Status)
		}
		part, err := tx.GetPart(ctx, partID)
		if err != nil {
			return err
		}
		if !part.Active {
			return entities.NewDomainError(entities.ErrPreconditionFailed, "part %s is inactive", part.ID)
		}
		if quantity > part.OnHand {
			return entities.NewDomainError(entities.ErrInsufficientStock,
				"part %s has %d on hand, %d requested", part.ID, part.OnHand, quantity)
		}

		now := u.clock.Now()
		res := entities.PartUsageReservation{
			ID:                uuid.NewString(),
			OrderNumber:       order.Number,
			PartID:            part.ID,
			Quantity:          quantity,
			UnitPurchasePrice: part.PurchasePrice,
			UnitSalePrice:     part.SalePrice,
			BookingReason:     strings.TrimSpace(reason),
			Status:            entities.ReservationPending,
			BookedBy:          actor.ID,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		m, err := u.ledger.ApplyMovement(ctx, tx, &part, -quantity, entities.MovementConsumption, res.BookingReason, actor,
			entities.MovementLink{OrderNumber: order.Number, ReservationID: res.ID})
		if err != nil {
			return err
		}
		if err := tx.CreateReservation(ctx, &res); err != nil {
			return err
		}
		if part.BelowThreshold() {
			events = append(events, lowStockEvent(part, order.Number, now))
		}
		out = ReservationOutcome{Reservation: res, Part: part, Movement: &m}
		return nil
	})
	if err != nil {
		return ReservationOutcome{}, err
	}
	u.log.Info("part booked",
		zap.String("order", orderNumber),
		zap.String("part", partID),
		zap.Int("quantity", quantity),
		zap.String("reservation", out.Reservation.ID),
	)
	u.dispatch.send(ctx, events)
	return out, nil
}

// Approve finalizes consumption. Stock was already taken at booking.
func (u *PartReservationUseCase) Approve(ctx context.Context, orderNumber, reservationID string, actor entities.Actor) (ReservationOutcome, error) {
	if err := requireActor(actor); err != nil {
		return ReservationOutcome{}, err
	}
	var out ReservationOutcome
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		res, err := u.loadPending(ctx, tx, orderNumber, reservationID, "approve")
		if err != nil {
			return err
		}
		part, err := tx.GetPart(ctx, res.PartID)
		if err != nil {
			return err
		}
		res.Status = entities.ReservationApproved
		res.DecidedBy = actor.ID
		res.UpdatedAt = u.clock.Now()
		if err := tx.UpdateReservation(ctx, &res); err != nil {
			return err
		}
		out = ReservationOutcome{Reservation: res, Part: part}
		return nil
	})
	if err != nil {
		return ReservationOutcome{}, err
	}
	u.log.Info("reservation approved", zap.String("reservation", reservationID), zap.String("actor", actor.ID))
	return out, nil
}

// Reject returns the booked quantity to stock with a reversal movement.
func (u *PartReservationUseCase) Reject(ctx context.Context, orderNumber, reservationID string, actor entities.Actor, reason string) (ReservationOutcome, error) {
	if err := requireActor(actor); err != nil {
		return ReservationOutcome{}, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return ReservationOutcome{}, entities.NewDomainError(entities.ErrMissingReason, "rejecting reservation %s requires a reason", reservationID)
	}
	var out ReservationOutcome
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		res, err := u.loadPending(ctx, tx, orderNumber, reservationID, "reject")
		if err != nil {
			return err
		}
		part, m, err := u.restore(ctx, tx, res, reason, actor)
		if err != nil {
			return err
		}
		res.Status = entities.ReservationRejected
		res.DecidedBy = actor.ID
		res.RejectionReason = reason
		res.UpdatedAt = u.clock.Now()
		if err := tx.UpdateReservation(ctx, &res); err != nil {
			return err
		}
		out = ReservationOutcome{Reservation: res, Part: part, Movement: &m}
		return nil
	})
	if err != nil {
		return ReservationOutcome{}, err
	}
	u.log.Info("reservation rejected",
		zap.String("reservation", reservationID),
		zap.String("actor", actor.ID),
		zap.String("reason", reason),
	)
	return out, nil
}

// Remove withdraws a reservation booked in error. Approved reservations need a
// privileged actor. Stock still held by the reservation goes back to the part.
func (u *PartReservationUseCase) Remove(ctx context.Context, orderNumber, reservationID string, actor entities.Actor) (ReservationOutcome, error) {
	if err := requireActor(actor); err != nil {
		return ReservationOutcome{}, err
	}
	var out ReservationOutcome
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		res, err := tx.GetReservation(ctx, orderNumber, reservationID)
		if err != nil {
			return err
		}
		switch res.Status {
		case entities.ReservationRemoved:
			return entities.InvalidTransition("reservation %s is already removed", res.ID)
		case entities.ReservationApproved:
			if !actor.IsPrivileged() {
				return entities.NewDomainError(entities.ErrPermissionDenied, "removing approved reservation %s requires a privileged actor", res.ID)
			}
		}

		var part entities.Part
		if res.Status.HoldsStock() {
			p, m, err := u.restore(ctx, tx, res, "reservation removed", actor)
			if err != nil {
				return err
			}
			part = p
			out.Movement = &m
		} else if part, err = tx.GetPart(ctx, res.PartID); err != nil {
			return err
		}

		res.Status = entities.ReservationRemoved
		res.RemovedBy = actor.ID
		res.UpdatedAt = u.clock.Now()
		if err := tx.UpdateReservation(ctx, &res); err != nil {
			return err
		}
		out.Reservation = res
		out.Part = part
		return nil
	})
	if err != nil {
		return ReservationOutcome{}, err
	}
	u.log.Info("reservation removed", zap.String("reservation", reservationID), zap.String("actor", actor.ID))
	return out, nil
}

func (u *PartReservationUseCase) ListByOrder(ctx context.Context, orderNumber string) ([]entities.PartUsageReservation, error) {
	var out []entities.PartUsageReservation
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		if _, err := tx.GetOrder(ctx, orderNumber); err != nil {
			return err
		}
		rs, err := tx.ListReservations(ctx, orderNumber)
		out = rs
		return err
	})
	return out, err
}

// CandidateParts returns the active parts applicable to a device. A part lands
// in exactly one group, decided by its own scope.
func (u *PartReservationUseCase) CandidateParts(ctx context.Context, manufacturer, model string) (CandidateGroups, error) {
	manufacturer = strings.TrimSpace(manufacturer)
	model = strings.TrimSpace(model)
	if model != "" && manufacturer == "" {
		return CandidateGroups{}, entities.ValidationError("model given without manufacturer")
	}
	var parts []entities.Part
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		ps, err := tx.ListParts(ctx)
		parts = ps
		return err
	})
	if err != nil {
		return CandidateGroups{}, err
	}
	return partitionCandidates(parts, manufacturer, model), nil
}

func (u *PartReservationUseCase) CandidatePartsForOrder(ctx context.Context, orderNumber string) (CandidateGroups, error) {
	var order entities.Order
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		o, err := tx.GetOrder(ctx, orderNumber)
		order = o
		return err
	})
	if err != nil {
		return CandidateGroups{}, err
	}
	return u.CandidateParts(ctx, order.DeviceManufacturer, order.DeviceModel)
}

func partitionCandidates(parts []entities.Part, manufacturer, model string) CandidateGroups {
	var g CandidateGroups
	for _, p := range parts {
		if !p.Active {
			continue
		}
		switch p.Scope() {
		case entities.PartScopeModel:
			if model != "" && p.Manufacturer == manufacturer && p.Model == model {
				g.ModelSpecific = append(g.ModelSpecific, p)
			}
		case entities.PartScopeManufacturer:
			if manufacturer != "" && p.Manufacturer == manufacturer {
				g.ManufacturerWide = append(g.ManufacturerWide, p)
			}
		default:
			g.Generic = append(g.Generic, p)
		}
	}
	sortParts(g.ModelSpecific)
	sortParts(g.ManufacturerWide)
	sortParts(g.Generic)
	return g
}

func sortParts(ps []entities.Part) {
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].Name != ps[j].Name {
			return ps[i].Name < ps[j].Name
		}
		return ps[i].ID < ps[j].ID
	})
}

func (u *PartReservationUseCase) loadPending(ctx context.Context, tx interfaces.IWorkflowTx, orderNumber, id, action string) (entities.PartUsageReservation, error) {
	res, err := tx.GetReservation(ctx, orderNumber, id)
	if err != nil {
		return entities.PartUsageReservation{}, err
	}
	if res.Status != entities.ReservationPending {
		return entities.PartUsageReservation{}, entities.InvalidTransition("cannot %s reservation %s in status %s", action, res.ID, res.Status)
	}
	return res, nil
}

// restore puts a reservation's quantity back on its part.
func (u *PartReservationUseCase) restore(ctx context.Context, tx interfaces.IWorkflowTx, res entities.PartUsageReservation, reasonText string, actor entities.Actor) (entities.Part, entities.StockMovement, error) {
	part, err := tx.GetPart(ctx, res.PartID)
	if err != nil {
		return entities.Part{}, entities.StockMovement{}, err
	}
	m, err := u.ledger.ApplyMovement(ctx, tx, &part, res.Quantity, entities.MovementReversal, reasonText, actor,
		entities.MovementLink{OrderNumber: res.OrderNumber, ReservationID: res.ID})
	if err != nil {
		return entities.Part{}, entities.StockMovement{}, err
	}
	return part, m, nil
}

func lowStockEvent(p entities.Part, orderNumber string, at time.Time) entities.NotificationEvent {
	return entities.NotificationEvent{
		Type:    entities.NotificationPartLowStock,
		OrderID: orderNumber,
		Payload: map[string]string{
			"part_id":       p.ID,
			"on_hand":       strconv.Itoa(p.OnHand),
			"min_threshold": strconv.Itoa(p.MinThreshold),
		},
		RaisedAt: at,
	}
}
