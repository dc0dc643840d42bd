package usecase

import (
	"context"
	"testing"
	"time"

	"repair_workflow/internal/adapter/persistence/memory"
	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/infrastructure/clock"
	"repair_workflow/internal/usecase/interfaces"
	mock_interfaces "repair_workflow/internal/usecase/interfaces/mocks"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

var (
	staff   = entities.Actor{ID: "tech-1", Role: entities.RoleStandard}
	manager = entities.Actor{ID: "mgr-1", Role: entities.RolePrivileged}
	t0      = time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC)
)

type engine struct {
	store        *memory.Store
	clock        *clock.Fixed
	ledger       *StockLedger
	orders       *OrderUseCase
	estimates    *CostEstimateUseCase
	catalog      *PartCatalogUseCase
	reservations *PartReservationUseCase
	sessions     *InventorySessionUseCase
}

// newEngine wires every use case against one in-memory store. Notifications
// are accepted and ignored.
func newEngine(t *testing.T) *engine {
	t.Helper()
	ctrl := gomock.NewController(t)
	notifier := mock_interfaces.NewMockINotifier(ctrl)
	notifier.EXPECT().Notify(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return newEngineWith(notifier)
}

func newEngineWith(notifier interfaces.INotifier) *engine {
	store := memory.NewStore()
	clk := clock.NewFixed(t0)
	ledger := NewStockLedger(store, clk, nil)
	return &engine{
		store:        store,
		clock:        clk,
		ledger:       ledger,
		orders:       NewOrderUseCase(store, clk, notifier, nil),
		estimates:    NewCostEstimateUseCase(store, clk, notifier, 0, nil),
		catalog:      NewPartCatalogUseCase(store, clk, ledger, nil),
		reservations: NewPartReservationUseCase(store, clk, ledger, notifier, nil),
		sessions:     NewInventorySessionUseCase(store, clk, ledger, nil),
	}
}

func (e *engine) newOrder(t *testing.T, number string) entities.Order {
	t.Helper()
	view, err := e.orders.CreateOrder(context.Background(), IntakeInput{
		Number:             number,
		Location:           "front-desk",
		DeviceManufacturer: "Acme",
		DeviceModel:        "Phone 9",
	}, staff)
	require.NoError(t, err)
	return view.Order
}

// moveTo walks an order forward through the given statuses.
func (e *engine) moveTo(t *testing.T, number string, path ...entities.OrderStatus) entities.Order {
	t.Helper()
	var out TransitionOutcome
	for _, s := range path {
		var err error
		out, err = e.orders.Transition(context.Background(), number, s, staff, "")
		require.NoError(t, err)
	}
	return out.Order
}

func (e *engine) newPart(t *testing.T, id, name, manufacturer, model string, stock int) entities.Part {
	t.Helper()
	p, err := e.catalog.RegisterPart(context.Background(), PartInput{
		ID:            id,
		Name:          name,
		Manufacturer:  manufacturer,
		Model:         model,
		Location:      "shelf-a",
		MinThreshold:  1,
		PurchasePrice: decimal.RequireFromString("20.00"),
		SalePrice:     decimal.RequireFromString("35.50"),
		InitialStock:  stock,
	}, staff)
	require.NoError(t, err)
	return p
}

func (e *engine) part(t *testing.T, id string) entities.Part {
	t.Helper()
	p, err := e.catalog.GetPart(context.Background(), id)
	require.NoError(t, err)
	return p
}

func (e *engine) requireBalanced(t *testing.T, partID string) {
	t.Helper()
	b, err := e.ledger.VerifyBalance(context.Background(), partID)
	require.NoError(t, err)
	require.Truef(t, b.Consistent, "ledger out of balance: %+v", b)
}

func fixedInput(labor, parts string) EstimateInput {
	return EstimateInput{
		Type:      entities.EstimateTypeFixed,
		LaborCost: decimal.NewNullDecimal(decimal.RequireFromString(labor)),
		PartsCost: decimal.NewNullDecimal(decimal.RequireFromString(parts)),
	}
}

func requireKind(t *testing.T, err error, kind error) {
	t.Helper()
	require.Error(t, err)
	require.ErrorIsf(t, err, kind, "got %v", err)
}
