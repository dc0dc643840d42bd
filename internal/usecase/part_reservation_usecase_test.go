package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"

	"repair_workflow/internal/domain/entities"
	mock_interfaces "repair_workflow/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestPartReservationUseCase_Book(t *testing.T) {
	t.Run("booking takes stock and rejection returns it", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		e.newPart(t, "P-1", "Display", "Acme", "Phone 9", 5)

		booked, err := e.reservations.Book(context.Background(), "OS-1", "P-1", 2, "cracked screen", staff)
		require.NoError(t, err)
		assert.Equal(t, entities.ReservationPending, booked.Reservation.Status)
		assert.Equal(t, 3, booked.Part.OnHand)
		require.NotNil(t, booked.Movement)
		assert.Equal(t, -2, booked.Movement.Delta)
		assert.Equal(t, entities.MovementConsumption, booked.Movement.Reason)
		assert.Equal(t, booked.Reservation.ID, booked.Movement.Link.ReservationID)
		assert.Equal(t, "OS-1", booked.Movement.Link.OrderNumber)

		rejected, err := e.reservations.Reject(context.Background(), "OS-1", booked.Reservation.ID, manager, "wrong part")
		require.NoError(t, err)
		assert.Equal(t, entities.ReservationRejected, rejected.Reservation.Status)
		assert.Equal(t, "wrong part", rejected.Reservation.RejectionReason)
		assert.Equal(t, 5, rejected.Part.OnHand)
		assert.Equal(t, entities.MovementReversal, rejected.Movement.Reason)

		history, err := e.ledger.History(context.Background(), "P-1")
		require.NoError(t, err)
		require.Len(t, history, 3)
		sum := 0
		for i, m := range history {
			assert.Equal(t, int64(i+1), m.Seq)
			sum += m.Delta
		}
		assert.Equal(t, 5, sum)
		e.requireBalanced(t, "P-1")
	})

	t.Run("quantity boundary", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		e.newPart(t, "P-1", "Battery", "Acme", "", 2)

		_, err := e.reservations.Book(context.Background(), "OS-1", "P-1", 3, "", staff)
		requireKind(t, err, entities.ErrInsufficientStock)
		assert.Equal(t, 2, e.part(t, "P-1").OnHand)

		out, err := e.reservations.Book(context.Background(), "OS-1", "P-1", 2, "", staff)
		require.NoError(t, err)
		assert.Equal(t, 0, out.Part.OnHand)
		e.requireBalanced(t, "P-1")
	})

	t.Run("preconditions", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		e.newPart(t, "P-1", "Battery", "", "", 2)

		_, err := e.reservations.Book(context.Background(), "OS-1", "P-1", 0, "", staff)
		requireKind(t, err, entities.ErrValidation)

		_, err = e.reservations.Book(context.Background(), "OS-404", "P-1", 1, "", staff)
		requireKind(t, err, entities.ErrNotFound)

		_, err = e.reservations.Book(context.Background(), "OS-1", "P-404", 1, "", staff)
		requireKind(t, err, entities.ErrNotFound)

		_, err = e.catalog.SetActive(context.Background(), "P-1", false, staff)
		require.NoError(t, err)
		_, err = e.reservations.Book(context.Background(), "OS-1", "P-1", 1, "", staff)
		requireKind(t, err, entities.ErrPreconditionFailed)

		e.moveTo(t, "OS-1", entities.OrderStatusCancelled)
		_, err = e.reservations.Book(context.Background(), "OS-1", "P-1", 1, "", staff)
		requireKind(t, err, entities.ErrTerminalState)
	})

	t.Run("prices are captured at booking", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		e.newPart(t, "P-1", "Battery", "", "", 4)

		out, err := e.reservations.Book(context.Background(), "OS-1", "P-1", 2, "", staff)
		require.NoError(t, err)
		_, err = e.catalog.UpdatePrices(context.Background(), "P-1", decimal.NewFromInt(30), decimal.NewFromInt(60), staff)
		require.NoError(t, err)

		list, err := e.reservations.ListByOrder(context.Background(), "OS-1")
		require.NoError(t, err)
		require.Len(t, list, 1)
		assert.Equal(t, out.Reservation.ID, list[0].ID)
		assert.Equal(t, "35.50", money(list[0].UnitSalePrice))
		assert.Equal(t, "20.00", money(list[0].UnitPurchasePrice))
		assert.Equal(t, "71.00", money(list[0].LineTotal()))
	})

	t.Run("low stock is announced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		e := newEngineWith(notifier)
		e.newOrder(t, "OS-1")
		e.newPart(t, "P-1", "Battery", "", "", 2)

		_, err := e.reservations.Book(context.Background(), "OS-1", "P-1", 1, "", staff)
		require.NoError(t, err)

		notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev entities.NotificationEvent) error {
				assert.Equal(t, entities.NotificationPartLowStock, ev.Type)
				assert.Equal(t, "P-1", ev.Payload["part_id"])
				assert.Equal(t, "0", ev.Payload["on_hand"])
				return nil
			},
		)
		_, err = e.reservations.Book(context.Background(), "OS-1", "P-1", 1, "", staff)
		require.NoError(t, err)
	})
}

func TestPartReservationUseCase_Decisions(t *testing.T) {
	setup := func(t *testing.T) (*engine, string) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		e.newPart(t, "P-1", "Display", "", "", 5)
		out, err := e.reservations.Book(context.Background(), "OS-1", "P-1", 2, "", staff)
		require.NoError(t, err)
		return e, out.Reservation.ID
	}

	t.Run("approve keeps stock taken", func(t *testing.T) {
		e, id := setup(t)
		out, err := e.reservations.Approve(context.Background(), "OS-1", id, staff)
		require.NoError(t, err)
		assert.Equal(t, entities.ReservationApproved, out.Reservation.Status)
		assert.Nil(t, out.Movement)
		assert.Equal(t, 3, out.Part.OnHand)

		_, err = e.reservations.Approve(context.Background(), "OS-1", id, staff)
		requireKind(t, err, entities.ErrInvalidStateTransition)
		_, err = e.reservations.Reject(context.Background(), "OS-1", id, staff, "late")
		requireKind(t, err, entities.ErrInvalidStateTransition)
	})

	t.Run("reject needs a reason", func(t *testing.T) {
		e, id := setup(t)
		_, err := e.reservations.Reject(context.Background(), "OS-1", id, staff, "")
		requireKind(t, err, entities.ErrMissingReason)
		assert.Equal(t, 3, e.part(t, "P-1").OnHand)
	})

	t.Run("unknown reservation", func(t *testing.T) {
		e, _ := setup(t)
		_, err := e.reservations.Approve(context.Background(), "OS-1", "nope", staff)
		requireKind(t, err, entities.ErrNotFound)
	})
}

func TestPartReservationUseCase_Remove(t *testing.T) {
	t.Run("pending reservation returns stock", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		e.newPart(t, "P-1", "Display", "", "", 5)
		booked, err := e.reservations.Book(context.Background(), "OS-1", "P-1", 2, "", staff)
		require.NoError(t, err)

		out, err := e.reservations.Remove(context.Background(), "OS-1", booked.Reservation.ID, staff)
		require.NoError(t, err)
		assert.Equal(t, entities.ReservationRemoved, out.Reservation.Status)
		assert.Equal(t, staff.ID, out.Reservation.RemovedBy)
		assert.Equal(t, 5, out.Part.OnHand)

		_, err = e.reservations.Remove(context.Background(), "OS-1", booked.Reservation.ID, manager)
		requireKind(t, err, entities.ErrInvalidStateTransition)
		e.requireBalanced(t, "P-1")
	})

	t.Run("approved reservation needs a privileged actor", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		e.newPart(t, "P-1", "Display", "", "", 5)
		booked, err := e.reservations.Book(context.Background(), "OS-1", "P-1", 2, "", staff)
		require.NoError(t, err)
		_, err = e.reservations.Approve(context.Background(), "OS-1", booked.Reservation.ID, staff)
		require.NoError(t, err)

		_, err = e.reservations.Remove(context.Background(), "OS-1", booked.Reservation.ID, staff)
		requireKind(t, err, entities.ErrPermissionDenied)

		out, err := e.reservations.Remove(context.Background(), "OS-1", booked.Reservation.ID, manager)
		require.NoError(t, err)
		assert.Equal(t, 5, out.Part.OnHand)
		e.requireBalanced(t, "P-1")
	})

	t.Run("rejected reservation is not restored twice", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		e.newPart(t, "P-1", "Display", "", "", 5)
		booked, err := e.reservations.Book(context.Background(), "OS-1", "P-1", 2, "", staff)
		require.NoError(t, err)
		_, err = e.reservations.Reject(context.Background(), "OS-1", booked.Reservation.ID, staff, "not needed")
		require.NoError(t, err)

		out, err := e.reservations.Remove(context.Background(), "OS-1", booked.Reservation.ID, staff)
		require.NoError(t, err)
		assert.Nil(t, out.Movement)
		assert.Equal(t, 5, out.Part.OnHand)
		e.requireBalanced(t, "P-1")
	})
}

func TestPartReservationUseCase_ConcurrentBook(t *testing.T) {
	e := newEngine(t)
	e.newOrder(t, "OS-1")
	e.newPart(t, "P-1", "Display", "", "", 2)

	const workers = 10
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.reservations.Book(context.Background(), "OS-1", "P-1", 1, "", staff)
			if err != nil {
				assert.Truef(t, errors.Is(err, entities.ErrConcurrentModification) || errors.Is(err, entities.ErrInsufficientStock), "got %v", err)
				return
			}
			mu.Lock()
			wins++
			mu.Unlock()
		}()
	}
	wg.Wait()

	p := e.part(t, "P-1")
	assert.LessOrEqual(t, wins, 2)
	assert.Equal(t, 2-wins, p.OnHand)
	assert.GreaterOrEqual(t, p.OnHand, 0)
	list, err := e.reservations.ListByOrder(context.Background(), "OS-1")
	require.NoError(t, err)
	assert.Len(t, list, wins)
	e.requireBalanced(t, "P-1")
}

func TestPartReservationUseCase_CandidateParts(t *testing.T) {
	e := newEngine(t)
	e.newOrder(t, "OS-1")
	e.newPart(t, "P-3", "Display", "Acme", "Phone 9", 1)
	e.newPart(t, "P-2", "Battery", "Acme", "Phone 9", 1)
	e.newPart(t, "P-4", "Display", "Acme", "Phone 8", 1)
	e.newPart(t, "P-5", "Charger", "Acme", "", 1)
	e.newPart(t, "P-6", "Charger", "Other", "", 1)
	e.newPart(t, "P-7", "Screws", "", "", 1)
	e.newPart(t, "P-8", "Glue", "", "", 1)
	_, err := e.catalog.SetActive(context.Background(), "P-8", false, staff)
	require.NoError(t, err)

	ids := func(ps []entities.Part) []string {
		var out []string
		for _, p := range ps {
			out = append(out, p.ID)
		}
		return out
	}

	g, err := e.reservations.CandidatePartsForOrder(context.Background(), "OS-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"P-2", "P-3"}, ids(g.ModelSpecific))
	assert.Equal(t, []string{"P-5"}, ids(g.ManufacturerWide))
	assert.Equal(t, []string{"P-7"}, ids(g.Generic))

	g, err = e.reservations.CandidateParts(context.Background(), "", "")
	require.NoError(t, err)
	assert.Empty(t, g.ModelSpecific)
	assert.Empty(t, g.ManufacturerWide)
	assert.Equal(t, []string{"P-7"}, ids(g.Generic))

	_, err = e.reservations.CandidateParts(context.Background(), "", "Phone 9")
	requireKind(t, err, entities.ErrValidation)
}
