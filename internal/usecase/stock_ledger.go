package usecase

import (
	"context"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase/interfaces"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// LedgerBalance compares a part's on-hand quantity with the sum of its ledger.
type LedgerBalance struct {
	PartID     string `json:"part_id"`
	OnHand     int    `json:"on_hand"`
	LedgerSum  int    `json:"ledger_sum"`
	Movements  int    `json:"movements"`
	Consistent bool   `json:"consistent"`
}

type IStockLedger interface {
	History(ctx context.Context, partID string) ([]entities.StockMovement, error)
	VerifyBalance(ctx context.Context, partID string) (LedgerBalance, error)
}

// StockLedger is the single writer of Part.OnHand. Every component that
// changes stock calls ApplyMovement inside its own transaction.
type StockLedger struct {
	store interfaces.IWorkflowStore
	clock interfaces.IClock
	log   *zap.Logger
}

var _ IStockLedger = (*StockLedger)(nil)

func NewStockLedger(store interfaces.IWorkflowStore, clock interfaces.IClock, log *zap.Logger) *StockLedger {
	return &StockLedger{store: store, clock: clock, log: nopLogger(log).Named("ledger")}
}

// ApplyMovement changes part.OnHand by delta, persists the part and appends the
// movement. Only inventory corrections may leave the balance negative.
func (l *StockLedger) ApplyMovement(
	ctx context.Context,
	tx interfaces.IWorkflowTx,
	part *entities.Part,
	delta int,
	reason entities.MovementReason,
	reasonText string,
	actor entities.Actor,
	link entities.MovementLink,
) (entities.StockMovement, error) {
	if delta == 0 {
		return entities.StockMovement{}, entities.ValidationError("stock movement for part %s has zero delta", part.ID)
	}
	balance := part.OnHand + delta
	if balance < 0 && !reason.IsCorrection() {
		return entities.StockMovement{}, entities.NewDomainError(entities.ErrNegativeStock,
			"part %s has %d on hand, movement of %d would leave %d", part.ID, part.OnHand, delta, balance)
	}

	now := l.clock.Now()
	part.OnHand = balance
	part.LedgerSeq++
	part.UpdatedAt = now
	if err := tx.UpdatePart(ctx, part); err != nil {
		return entities.StockMovement{}, err
	}

	m := entities.StockMovement{
		ID:           uuid.NewString(),
		PartID:       part.ID,
		Seq:          part.LedgerSeq,
		Delta:        delta,
		Reason:       reason,
		ReasonText:   reasonText,
		BalanceAfter: balance,
		ActorID:      actor.ID,
		Link:         link,
		CreatedAt:    now,
	}
	if err := tx.AppendMovement(ctx, m); err != nil {
		return entities.StockMovement{}, err
	}
	return m, nil
}

func (l *StockLedger) History(ctx context.Context, partID string) ([]entities.StockMovement, error) {
	var out []entities.StockMovement
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		if _, err := tx.GetPart(ctx, partID); err != nil {
			return err
		}
		ms, err := tx.ListMovements(ctx, partID)
		out = ms
		return err
	})
	return out, err
}

// VerifyBalance recomputes the ledger sum for a part. An inconsistent balance
// is reported in the result, not as an error.
func (l *StockLedger) VerifyBalance(ctx context.Context, partID string) (LedgerBalance, error) {
	var out LedgerBalance
	err := l.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		part, err := tx.GetPart(ctx, partID)
		if err != nil {
			return err
		}
		ms, err := tx.ListMovements(ctx, partID)
		if err != nil {
			return err
		}
		sum := 0
		for _, m := range ms {
			sum += m.Delta
		}
		out = LedgerBalance{
			PartID:     partID,
			OnHand:     part.OnHand,
			LedgerSum:  sum,
			Movements:  len(ms),
			Consistent: sum == part.OnHand,
		}
		return nil
	})
	if err == nil && !out.Consistent {
		l.log.Error("ledger out of balance",
			zap.String("part", partID),
			zap.Int("on_hand", out.OnHand),
			zap.Int("ledger_sum", out.LedgerSum),
		)
	}
	return out, err
}
