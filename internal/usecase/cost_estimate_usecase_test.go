package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"repair_workflow/internal/domain/entities"
	mock_interfaces "repair_workflow/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func TestComputeTotals(t *testing.T) {
	dec := func(s string) decimal.NullDecimal { return decimal.NewNullDecimal(decimal.RequireFromString(s)) }

	cases := []struct {
		name    string
		in      EstimateInput
		total   string
		wantErr bool
	}{
		{name: "fixed sums labor and parts", in: fixedInput("60.00", "40.00"), total: "100.00"},
		{name: "variable rounds half up", in: EstimateInput{Type: entities.EstimateTypeVariable, LaborCost: dec("10.005"), PartsCost: dec("0")}, total: "10.01"},
		{name: "up_to uses max", in: EstimateInput{Type: entities.EstimateTypeUpTo, MaxCost: dec("250"), LaborCost: dec("100")}, total: "250.00"},
		{name: "up_to without min", in: EstimateInput{Type: entities.EstimateTypeUpTo, MaxCost: dec("80")}, total: "80.00"},
		{name: "up_to with min", in: EstimateInput{Type: entities.EstimateTypeUpTo, MinCost: dec("20"), MaxCost: dec("80")}, total: "80.00"},
		{name: "unknown type", in: EstimateInput{Type: "hourly"}, wantErr: true},
		{name: "fixed missing parts", in: EstimateInput{Type: entities.EstimateTypeFixed, LaborCost: dec("10")}, wantErr: true},
		{name: "fixed with max", in: EstimateInput{Type: entities.EstimateTypeFixed, LaborCost: dec("10"), PartsCost: dec("1"), MaxCost: dec("20")}, wantErr: true},
		{name: "fixed zero total", in: fixedInput("0", "0"), wantErr: true},
		{name: "negative labor", in: fixedInput("-1", "5"), wantErr: true},
		{name: "up_to missing max", in: EstimateInput{Type: entities.EstimateTypeUpTo}, wantErr: true},
		{name: "up_to min above max", in: EstimateInput{Type: entities.EstimateTypeUpTo, MinCost: dec("90"), MaxCost: dec("80")}, wantErr: true},
		{name: "up_to breakdown above max", in: EstimateInput{Type: entities.EstimateTypeUpTo, LaborCost: dec("50"), PartsCost: dec("40"), MaxCost: dec("80")}, wantErr: true},
		{name: "negative fee", in: EstimateInput{Type: entities.EstimateTypeUpTo, MaxCost: dec("80"), FeeAmount: decimal.NewFromInt(-1)}, wantErr: true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := computeTotals(tc.in)
			if tc.wantErr {
				requireKind(t, err, entities.ErrValidation)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.total, money(got.total))
		})
	}
}

func TestCostEstimateUseCase_CreateVersion(t *testing.T) {
	t.Run("versions supersede each other", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")

		v1, err := e.estimates.CreateVersion(context.Background(), "OS-1", fixedInput("60.00", "40.00"), staff)
		require.NoError(t, err)
		assert.Equal(t, 1, v1.Estimate.Version)
		assert.Equal(t, 0, v1.Estimate.ParentVersion)
		assert.True(t, v1.Estimate.IsCurrent)
		assert.Equal(t, "100.00", money(v1.Order.EstimatedPrice))
		assert.True(t, v1.Order.RequiresEstimate)
		assert.Equal(t, entities.OrderStatusAwaitingPartOrApproval, v1.Order.Status)
		require.NotNil(t, v1.StatusEntry)
		assert.Equal(t, t0.Add(DefaultEstimateValidity), v1.Estimate.ValidUntil)

		v2, err := e.estimates.CreateVersion(context.Background(), "OS-1", fixedInput("100.00", "50.00"), staff)
		require.NoError(t, err)
		assert.Equal(t, 2, v2.Estimate.Version)
		assert.Equal(t, 1, v2.Estimate.ParentVersion)
		assert.Equal(t, "150.00", money(v2.Order.EstimatedPrice))
		assert.Equal(t, 2, v2.Order.CurrentEstimateVersion)
		assert.Nil(t, v2.StatusEntry, "order already awaiting approval")

		all, err := e.estimates.ListEstimates(context.Background(), "OS-1")
		require.NoError(t, err)
		require.Len(t, all, 2)
		assert.False(t, all[0].IsCurrent)
		assert.True(t, all[1].IsCurrent)

		hist, err := e.estimates.History(context.Background(), "OS-1", 2)
		require.NoError(t, err)
		require.Len(t, hist, 1)
		assert.Equal(t, entities.EstimateEventCreated, hist[0].Event)
		assert.Equal(t, "150.00", hist[0].Payload["total"])
		assert.Equal(t, "1", hist[0].Payload["parent_version"])
	})

	t.Run("moves a repairing order back with an automatic note", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		e.moveTo(t, "OS-1", entities.OrderStatusRepairing)

		out, err := e.estimates.CreateVersion(context.Background(), "OS-1", fixedInput("10", "5"), staff)
		require.NoError(t, err)
		require.NotNil(t, out.StatusEntry)
		assert.Equal(t, entities.OrderStatusRepairing, out.StatusEntry.OldStatus)
		assert.Equal(t, "cost estimate v1 created", out.StatusEntry.Note)
	})

	t.Run("terminal order", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		e.moveTo(t, "OS-1", entities.OrderStatusCancelled)
		_, err := e.estimates.CreateVersion(context.Background(), "OS-1", fixedInput("10", "5"), staff)
		requireKind(t, err, entities.ErrTerminalState)
	})

	t.Run("past validity", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		in := fixedInput("10", "5")
		past := t0.Add(-time.Hour)
		in.ValidUntil = &past
		_, err := e.estimates.CreateVersion(context.Background(), "OS-1", in, staff)
		requireKind(t, err, entities.ErrValidation)

		view, err := e.orders.GetOrder(context.Background(), "OS-1")
		require.NoError(t, err)
		assert.Equal(t, entities.OrderStatusReceived, view.Order.Status)
		assert.Zero(t, view.Order.CurrentEstimateVersion)
	})

	t.Run("awaiting approval is announced", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		notifier := mock_interfaces.NewMockINotifier(ctrl)
		e := newEngineWith(notifier)
		e.newOrder(t, "OS-1")

		notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, ev entities.NotificationEvent) error {
				assert.Equal(t, entities.NotificationAwaitingApproval, ev.Type)
				assert.Equal(t, "100.00", ev.Payload["estimated_price"])
				return nil
			},
		)
		_, err := e.estimates.CreateVersion(context.Background(), "OS-1", fixedInput("60", "40"), staff)
		require.NoError(t, err)
	})
}

func TestCostEstimateUseCase_ConcurrentCreateVersion(t *testing.T) {
	e := newEngine(t)
	e.newOrder(t, "OS-1")

	const workers = 8
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		wins int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := e.estimates.CreateVersion(context.Background(), "OS-1", fixedInput("10", "5"), staff)
			if err != nil {
				assert.ErrorIs(t, err, entities.ErrConcurrentModification)
				return
			}
			mu.Lock()
			wins++
			mu.Unlock()
		}()
	}
	wg.Wait()

	all, err := e.estimates.ListEstimates(context.Background(), "OS-1")
	require.NoError(t, err)
	assert.Len(t, all, wins)
	current := 0
	for _, est := range all {
		if est.IsCurrent {
			current++
		}
	}
	assert.Equal(t, 1, current)
}

func sentEstimate(t *testing.T, e *engine, order string, fee string) EstimateOutcome {
	t.Helper()
	in := fixedInput("60", "40")
	in.FeeAmount = decimal.RequireFromString(fee)
	_, err := e.estimates.CreateVersion(context.Background(), order, in, staff)
	require.NoError(t, err)
	out, err := e.estimates.Send(context.Background(), order, 1, "email", staff)
	require.NoError(t, err)
	return out
}

func TestCostEstimateUseCase_DecisionDeadline(t *testing.T) {
	approve := DecisionInput{Approved: true, Channel: "phone"}

	t.Run("decision after valid_until is refused", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		sentEstimate(t, e, "OS-1", "0")

		e.clock.Advance(DefaultEstimateValidity + time.Minute)
		_, err := e.estimates.RecordDecision(context.Background(), "OS-1", 1, approve, staff)
		requireKind(t, err, entities.ErrInvalidStateTransition)

		est, err := e.estimates.GetEstimate(context.Background(), "OS-1", 1)
		require.NoError(t, err)
		assert.Equal(t, entities.DecisionUndecided, est.Decision)
	})

	t.Run("decision on the deadline is accepted", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		sentEstimate(t, e, "OS-1", "0")

		e.clock.Advance(DefaultEstimateValidity)
		_, err := e.estimates.RecordDecision(context.Background(), "OS-1", 1, approve, staff)
		require.NoError(t, err)
	})

	t.Run("replay after the deadline stays a no-op", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		sentEstimate(t, e, "OS-1", "0")
		_, err := e.estimates.RecordDecision(context.Background(), "OS-1", 1, approve, staff)
		require.NoError(t, err)

		e.clock.Advance(DefaultEstimateValidity + time.Hour)
		out, err := e.estimates.RecordDecision(context.Background(), "OS-1", 1, approve, staff)
		require.NoError(t, err)
		assert.True(t, out.Replayed)
	})
}

func TestCostEstimateUseCase_SendAndRemind(t *testing.T) {
	t.Run("send records channel and time", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		out := sentEstimate(t, e, "OS-1", "0")
		assert.Equal(t, entities.EstimateStatusSent, out.Estimate.Status)
		assert.Equal(t, "email", out.Estimate.SentChannel)
		require.NotNil(t, out.Estimate.SentAt)
		assert.Equal(t, t0, *out.Estimate.SentAt)

		_, err := e.estimates.Send(context.Background(), "OS-1", 1, "email", staff)
		requireKind(t, err, entities.ErrInvalidStateTransition)
	})

	t.Run("send needs a channel", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		_, err := e.estimates.CreateVersion(context.Background(), "OS-1", fixedInput("1", "1"), staff)
		require.NoError(t, err)
		_, err = e.estimates.Send(context.Background(), "OS-1", 1, " ", staff)
		requireKind(t, err, entities.ErrValidation)
	})

	t.Run("send moves the order back to awaiting approval", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		_, err := e.estimates.CreateVersion(context.Background(), "OS-1", fixedInput("1", "1"), staff)
		require.NoError(t, err)
		_, err = e.orders.Transition(context.Background(), "OS-1", entities.OrderStatusDiagnosing, staff, "recheck")
		require.NoError(t, err)

		out, err := e.estimates.Send(context.Background(), "OS-1", 1, "sms", staff)
		require.NoError(t, err)
		assert.Equal(t, entities.OrderStatusAwaitingPartOrApproval, out.Order.Status)
		require.NotNil(t, out.StatusEntry)
	})

	t.Run("superseded version cannot be sent", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		_, err := e.estimates.CreateVersion(context.Background(), "OS-1", fixedInput("1", "1"), staff)
		require.NoError(t, err)
		_, err = e.estimates.CreateVersion(context.Background(), "OS-1", fixedInput("2", "1"), staff)
		require.NoError(t, err)
		_, err = e.estimates.Send(context.Background(), "OS-1", 1, "sms", staff)
		requireKind(t, err, entities.ErrInvalidStateTransition)
	})

	t.Run("remind only after send", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		_, err := e.estimates.CreateVersion(context.Background(), "OS-1", fixedInput("1", "1"), staff)
		require.NoError(t, err)
		_, err = e.estimates.Remind(context.Background(), "OS-1", 1, "phone", staff)
		requireKind(t, err, entities.ErrInvalidStateTransition)

		_, err = e.estimates.Send(context.Background(), "OS-1", 1, "email", staff)
		require.NoError(t, err)
		out, err := e.estimates.Remind(context.Background(), "OS-1", 1, "phone", staff)
		require.NoError(t, err)
		assert.Equal(t, entities.EstimateStatusAwaitingResponse, out.Estimate.Status)
		_, err = e.estimates.Remind(context.Background(), "OS-1", 1, "phone", staff)
		require.NoError(t, err)
	})
}

func TestCostEstimateUseCase_RecordDecision(t *testing.T) {
	approve := DecisionInput{Approved: true, Channel: "phone", Note: "go ahead", IsCustomer: true}

	t.Run("approval starts the repair", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		sentEstimate(t, e, "OS-1", "0")

		out, err := e.estimates.RecordDecision(context.Background(), "OS-1", 1, approve, staff)
		require.NoError(t, err)
		assert.Equal(t, entities.DecisionApproved, out.Estimate.Decision)
		assert.Equal(t, entities.DecisionByCustomer, out.Estimate.DecisionActorType)
		assert.Equal(t, entities.EstimateStatusDecided, out.Estimate.Status)
		assert.Equal(t, entities.ApprovalApproved, out.Order.Approval)
		assert.Equal(t, entities.OrderStatusRepairing, out.Order.Status)
		require.NotNil(t, out.StatusEntry)
		assert.Equal(t, "cost estimate v1 approved", out.StatusEntry.Note)
	})

	t.Run("replay is a no-op", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		sentEstimate(t, e, "OS-1", "0")

		first, err := e.estimates.RecordDecision(context.Background(), "OS-1", 1, approve, staff)
		require.NoError(t, err)
		before, err := e.estimates.History(context.Background(), "OS-1", 1)
		require.NoError(t, err)

		e.clock.Advance(time.Hour)
		second, err := e.estimates.RecordDecision(context.Background(), "OS-1", 1, approve, staff)
		require.NoError(t, err)
		assert.True(t, second.Replayed)
		assert.Equal(t, first.Estimate, second.Estimate)
		assert.Equal(t, first.Order.Revision, second.Order.Revision)

		after, err := e.estimates.History(context.Background(), "OS-1", 1)
		require.NoError(t, err)
		assert.Equal(t, before, after)
	})

	t.Run("conflicting replay is rejected", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		sentEstimate(t, e, "OS-1", "0")
		_, err := e.estimates.RecordDecision(context.Background(), "OS-1", 1, approve, staff)
		require.NoError(t, err)

		_, err = e.estimates.RecordDecision(context.Background(), "OS-1", 1, DecisionInput{Approved: false, Channel: "phone"}, staff)
		requireKind(t, err, entities.ErrInvalidStateTransition)
	})

	t.Run("draft cannot be decided", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		_, err := e.estimates.CreateVersion(context.Background(), "OS-1", fixedInput("1", "1"), staff)
		require.NoError(t, err)
		_, err = e.estimates.RecordDecision(context.Background(), "OS-1", 1, approve, staff)
		requireKind(t, err, entities.ErrInvalidStateTransition)
	})

	t.Run("rejection keeps the order waiting and makes the fee due", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		sentEstimate(t, e, "OS-1", "25")

		out, err := e.estimates.RecordDecision(context.Background(), "OS-1", 1, DecisionInput{Channel: "counter"}, staff)
		require.NoError(t, err)
		assert.Equal(t, entities.DecisionRejected, out.Estimate.Decision)
		assert.Equal(t, entities.DecisionByStaff, out.Estimate.DecisionActorType)
		assert.Equal(t, entities.FeeStatusDue, out.Estimate.FeeStatus)
		assert.Equal(t, entities.ApprovalRejected, out.Order.Approval)
		assert.Equal(t, entities.OrderStatusAwaitingPartOrApproval, out.Order.Status)
		assert.Nil(t, out.StatusEntry)
	})

	t.Run("racing decisions", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		sentEstimate(t, e, "OS-1", "0")

		inputs := []DecisionInput{approve, {Approved: false, Channel: "email"}}
		errs := make([]error, len(inputs))
		var wg sync.WaitGroup
		for i, in := range inputs {
			wg.Add(1)
			go func(i int, in DecisionInput) {
				defer wg.Done()
				_, errs[i] = e.estimates.RecordDecision(context.Background(), "OS-1", 1, in, staff)
			}(i, in)
		}
		wg.Wait()

		failed := 0
		for _, err := range errs {
			if err != nil {
				failed++
				assert.Truef(t, errors.Is(err, entities.ErrConcurrentModification) || errors.Is(err, entities.ErrInvalidStateTransition), "got %v", err)
			}
		}
		assert.Equal(t, 1, failed)
		hist, err := e.estimates.History(context.Background(), "OS-1", 1)
		require.NoError(t, err)
		assert.Len(t, hist, 3)
	})
}

func TestCostEstimateUseCase_WaiveFee(t *testing.T) {
	reject := DecisionInput{Channel: "counter"}

	t.Run("waive a due fee", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		sentEstimate(t, e, "OS-1", "25")
		_, err := e.estimates.RecordDecision(context.Background(), "OS-1", 1, reject, staff)
		require.NoError(t, err)

		_, err = e.estimates.WaiveFee(context.Background(), "OS-1", 1, " ", staff)
		requireKind(t, err, entities.ErrMissingReason)

		out, err := e.estimates.WaiveFee(context.Background(), "OS-1", 1, "loyal customer", staff)
		require.NoError(t, err)
		assert.Equal(t, entities.FeeStatusWaived, out.Estimate.FeeStatus)
		assert.Equal(t, "loyal customer", out.Estimate.FeeWaiverReason)

		_, err = e.estimates.WaiveFee(context.Background(), "OS-1", 1, "again", staff)
		requireKind(t, err, entities.ErrInvalidStateTransition)
	})

	t.Run("only rejected estimates", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		sentEstimate(t, e, "OS-1", "25")
		_, err := e.estimates.WaiveFee(context.Background(), "OS-1", 1, "why not", staff)
		requireKind(t, err, entities.ErrInvalidStateTransition)
	})

	t.Run("waiver does not carry to a new version", func(t *testing.T) {
		e := newEngine(t)
		e.newOrder(t, "OS-1")
		sentEstimate(t, e, "OS-1", "25")
		_, err := e.estimates.RecordDecision(context.Background(), "OS-1", 1, reject, staff)
		require.NoError(t, err)
		_, err = e.estimates.WaiveFee(context.Background(), "OS-1", 1, "goodwill", staff)
		require.NoError(t, err)

		in := fixedInput("50", "20")
		in.FeeAmount = decimal.NewFromInt(25)
		v2, err := e.estimates.CreateVersion(context.Background(), "OS-1", in, staff)
		require.NoError(t, err)
		assert.Equal(t, entities.FeeStatusNone, v2.Estimate.FeeStatus)
		assert.Empty(t, v2.Estimate.FeeWaiverReason)
		assert.Equal(t, entities.ApprovalUnknown, v2.Order.Approval)
	})
}

func TestCostEstimateUseCase_ReleasePrice(t *testing.T) {
	e := newEngine(t)
	e.newOrder(t, "OS-1")
	sentEstimate(t, e, "OS-1", "0")

	_, err := e.estimates.ReleasePrice(context.Background(), "OS-1", 1, staff)
	requireKind(t, err, entities.ErrPreconditionFailed)

	_, err = e.estimates.RecordDecision(context.Background(), "OS-1", 1, DecisionInput{Approved: true, Channel: "phone"}, staff)
	require.NoError(t, err)

	out, err := e.estimates.ReleasePrice(context.Background(), "OS-1", 1, staff)
	require.NoError(t, err)
	require.True(t, out.Order.FinalPrice.Valid)
	assert.Equal(t, "100.00", money(out.Order.FinalPrice.Decimal))

	again, err := e.estimates.ReleasePrice(context.Background(), "OS-1", 1, staff)
	require.NoError(t, err)
	assert.True(t, again.Replayed)

	hist, err := e.estimates.History(context.Background(), "OS-1", 1)
	require.NoError(t, err)
	assert.Equal(t, entities.EstimateEventPriceReleased, hist[len(hist)-1].Event)
}
