package usecase

import (
	"context"
	"strings"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionOutcome is a session and the corrections its approval wrote.
type SessionOutcome struct {
	Session   entities.InventorySession
	Movements []entities.StockMovement
}

type IInventorySessionUseCase interface {
	Start(ctx context.Context, location string, actor entities.Actor) (entities.InventorySession, error)
	RecordCount(ctx context.Context, sessionID, partID string, counted int, reason string, actor entities.Actor) (entities.InventorySession, error)
	Submit(ctx context.Context, sessionID string, actor entities.Actor) (entities.InventorySession, error)
	Approve(ctx context.Context, sessionID string, actor entities.Actor) (SessionOutcome, error)
	Reject(ctx context.Context, sessionID string, actor entities.Actor, reason string) (entities.InventorySession, error)
	GetSession(ctx context.Context, sessionID string) (entities.InventorySession, error)
}

type InventorySessionUseCase struct {
	store  interfaces.IWorkflowStore
	clock  interfaces.IClock
	ledger *StockLedger
	log    *zap.Logger
}

var _ IInventorySessionUseCase = (*InventorySessionUseCase)(nil)

func NewInventorySessionUseCase(store interfaces.IWorkflowStore, clock interfaces.IClock, ledger *StockLedger, log *zap.Logger) *InventorySessionUseCase {
	return &InventorySessionUseCase{store: store, clock: clock, ledger: ledger, log: nopLogger(log).Named("inventory")}
}

// Start snapshots the on-hand quantity of every active part at location, or of
// every active part when location is empty. Counted starts equal to expected.
func (u *InventorySessionUseCase) Start(ctx context.Context, location string, actor entities.Actor) (entities.InventorySession, error) {
	if err := requireActor(actor); err != nil {
		return entities.InventorySession{}, err
	}
	location = strings.TrimSpace(location)
	var out entities.InventorySession
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		parts, err := tx.ListParts(ctx)
		if err != nil {
			return err
		}
		var counts []entities.InventoryCount
		for _, p := range parts {
			if !p.Active || (location != "" && p.Location != location) {
				continue
			}
			counts = append(counts, entities.InventoryCount{PartID: p.ID, Expected: p.OnHand, Counted: p.OnHand})
		}
		if len(counts) == 0 {
			return entities.NewDomainError(entities.ErrPreconditionFailed, "no active parts to count at location %q", location)
		}
		now := u.clock.Now()
		s := entities.InventorySession{
			ID:        uuid.NewString(),
			Location:  location,
			Status:    entities.SessionInProgress,
			Counts:    counts,
			StartedBy: actor.ID,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := tx.CreateSession(ctx, &s); err != nil {
			return err
		}
		out = s
		return nil
	})
	if err != nil {
		return entities.InventorySession{}, err
	}
	u.log.Info("inventory session started",
		zap.String("session", out.ID),
		zap.String("location", location),
		zap.Int("rows", len(out.Counts)),
	)
	return out, nil
}

func (u *InventorySessionUseCase) RecordCount(ctx context.Context, sessionID, partID string, counted int, reason string, actor entities.Actor) (entities.InventorySession, error) {
	if err := requireActor(actor); err != nil {
		return entities.InventorySession{}, err
	}
	if counted < 0 {
		return entities.InventorySession{}, entities.ValidationError("counted quantity must not be negative")
	}
	return u.mutate(ctx, sessionID, func(s *entities.InventorySession) error {
		if s.Status != entities.SessionInProgress {
			return entities.InvalidTransition("session %s is %s, counts are closed", s.ID, s.Status)
		}
		i := s.CountIndex(partID)
		if i < 0 {
			return entities.NotFound("count row", partID)
		}
		s.Counts[i].Counted = counted
		s.Counts[i].Reason = strings.TrimSpace(reason)
		return nil
	})
}

// Submit closes counting. Every row with a discrepancy must carry a reason.
func (u *InventorySessionUseCase) Submit(ctx context.Context, sessionID string, actor entities.Actor) (entities.InventorySession, error) {
	if err := requireActor(actor); err != nil {
		return entities.InventorySession{}, err
	}
	return u.mutate(ctx, sessionID, func(s *entities.InventorySession) error {
		if s.Status != entities.SessionInProgress {
			return entities.InvalidTransition("session %s is %s, only a session in progress can be submitted", s.ID, s.Status)
		}
		if missing := s.RowsMissingReason(); len(missing) > 0 {
			return entities.MissingReasons("discrepancies need a reason", missing)
		}
		s.Status = entities.SessionPendingApproval
		s.SubmittedBy = actor.ID
		return nil
	})
}

// Approve books one inventory correction per discrepancy. Either every
// correction and the status change commit, or nothing does.
func (u *InventorySessionUseCase) Approve(ctx context.Context, sessionID string, actor entities.Actor) (SessionOutcome, error) {
	if err := requirePrivileged(actor, "approve inventory session"); err != nil {
		return SessionOutcome{}, err
	}
	var out SessionOutcome
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		s, err := tx.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if s.Status != entities.SessionPendingApproval {
			return entities.InvalidTransition("session %s is %s, only a submitted session can be approved", s.ID, s.Status)
		}
		var movements []entities.StockMovement
		for _, c := range s.Counts {
			delta := c.Discrepancy()
			if delta == 0 {
				continue
			}
			part, err := tx.GetPart(ctx, c.PartID)
			if err != nil {
				return err
			}
			m, err := u.ledger.ApplyMovement(ctx, tx, &part, delta, entities.MovementInventoryCorrection, c.Reason, actor,
				entities.MovementLink{SessionID: s.ID})
			if err != nil {
				return err
			}
			movements = append(movements, m)
		}
		s.Status = entities.SessionApproved
		s.DecidedBy = actor.ID
		s.UpdatedAt = u.clock.Now()
		if err := tx.UpdateSession(ctx, &s); err != nil {
			return err
		}
		out = SessionOutcome{Session: s, Movements: movements}
		return nil
	})
	if err != nil {
		return SessionOutcome{}, err
	}
	u.log.Info("inventory session approved",
		zap.String("session", sessionID),
		zap.Int("corrections", len(out.Movements)),
		zap.String("actor", actor.ID),
	)
	return out, nil
}

func (u *InventorySessionUseCase) Reject(ctx context.Context, sessionID string, actor entities.Actor, reason string) (entities.InventorySession, error) {
	if err := requirePrivileged(actor, "reject inventory session"); err != nil {
		return entities.InventorySession{}, err
	}
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return entities.InventorySession{}, entities.NewDomainError(entities.ErrMissingReason, "rejecting session %s requires a reason", sessionID)
	}
	return u.mutate(ctx, sessionID, func(s *entities.InventorySession) error {
		if s.Status != entities.SessionPendingApproval {
			return entities.InvalidTransition("session %s is %s, only a submitted session can be rejected", s.ID, s.Status)
		}
		s.Status = entities.SessionRejected
		s.DecidedBy = actor.ID
		s.RejectionReason = reason
		return nil
	})
}

func (u *InventorySessionUseCase) GetSession(ctx context.Context, sessionID string) (entities.InventorySession, error) {
	var out entities.InventorySession
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		s, err := tx.GetSession(ctx, sessionID)
		out = s
		return err
	})
	return out, err
}

func (u *InventorySessionUseCase) mutate(ctx context.Context, sessionID string, change func(s *entities.InventorySession) error) (entities.InventorySession, error) {
	var out entities.InventorySession
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		s, err := tx.GetSession(ctx, sessionID)
		if err != nil {
			return err
		}
		if err := change(&s); err != nil {
			return err
		}
		s.UpdatedAt = u.clock.Now()
		if err := tx.UpdateSession(ctx, &s); err != nil {
			return err
		}
		out = s
		return nil
	})
	return out, err
}

func requirePrivileged(actor entities.Actor, action string) error {
	if err := requireActor(actor); err != nil {
		return err
	}
	if !actor.IsPrivileged() {
		return entities.NewDomainError(entities.ErrPermissionDenied, "%s requires a privileged actor", action)
	}
	return nil
}
