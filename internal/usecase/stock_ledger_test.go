package usecase

import (
	"context"
	"testing"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase/interfaces"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStockLedger_ApplyMovement(t *testing.T) {
	cases := []struct {
		name    string
		delta   int
		reason  entities.MovementReason
		wantErr error
		onHand  int
	}{
		{name: "receipt", delta: 4, reason: entities.MovementReceipt, onHand: 7},
		{name: "consumption to zero", delta: -3, reason: entities.MovementConsumption, onHand: 0},
		{name: "consumption below zero", delta: -4, reason: entities.MovementConsumption, wantErr: entities.ErrNegativeStock, onHand: 3},
		{name: "correction below zero", delta: -4, reason: entities.MovementInventoryCorrection, onHand: -1},
		{name: "zero delta", delta: 0, reason: entities.MovementReceipt, wantErr: entities.ErrValidation, onHand: 3},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEngine(t)
			e.newPart(t, "P-1", "Display", "", "", 3)

			var m entities.StockMovement
			err := e.store.RunInTx(context.Background(), func(ctx context.Context, tx interfaces.IWorkflowTx) error {
				p, err := tx.GetPart(ctx, "P-1")
				if err != nil {
					return err
				}
				m, err = e.ledger.ApplyMovement(ctx, tx, &p, tc.delta, tc.reason, "count", manager, entities.MovementLink{})
				return err
			})
			if tc.wantErr != nil {
				requireKind(t, err, tc.wantErr)
			} else {
				require.NoError(t, err)
				assert.Equal(t, int64(2), m.Seq)
				assert.Equal(t, tc.onHand, m.BalanceAfter)
			}
			assert.Equal(t, tc.onHand, e.part(t, "P-1").OnHand)
			e.requireBalanced(t, "P-1")
		})
	}
}

func TestStockLedger_VerifyBalance(t *testing.T) {
	t.Run("unknown part", func(t *testing.T) {
		e := newEngine(t)
		_, err := e.ledger.VerifyBalance(context.Background(), "P-404")
		requireKind(t, err, entities.ErrNotFound)
	})

	t.Run("drift is reported", func(t *testing.T) {
		e := newEngine(t)
		e.newPart(t, "P-1", "Display", "", "", 3)
		// bypass the ledger to simulate an out-of-band write
		err := e.store.RunInTx(context.Background(), func(ctx context.Context, tx interfaces.IWorkflowTx) error {
			p, err := tx.GetPart(ctx, "P-1")
			if err != nil {
				return err
			}
			p.OnHand = 9
			return tx.UpdatePart(ctx, &p)
		})
		require.NoError(t, err)

		b, err := e.ledger.VerifyBalance(context.Background(), "P-1")
		require.NoError(t, err)
		assert.False(t, b.Consistent)
		assert.Equal(t, 9, b.OnHand)
		assert.Equal(t, 3, b.LedgerSum)
		assert.Equal(t, 1, b.Movements)
	})
}
