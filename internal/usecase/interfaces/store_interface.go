package interfaces

import (
	"context"
	"repair_workflow/internal/domain/entities"
)

// IWorkflowStore is the persistence port of the workflow engine.
//
// Every engine operation runs inside RunInTx: reads observe committed state plus
// the transaction's own writes, and all writes commit together or not at all.
// Update methods are conditional on the Revision the entity was read with; a
// mismatch fails the commit with entities.ErrConcurrentModification and the
// store bumps Revision on the passed entity when the write is staged.
//
// Implementations: memory (tests/dev), DynamoDB single table, Postgres via gorm.
type IWorkflowStore interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context, tx IWorkflowTx) error) error
}

// IWorkflowTx is the unit-of-work handed to RunInTx callbacks.
type IWorkflowTx interface {
	GetOrder(ctx context.Context, number string) (entities.Order, error)
	CreateOrder(ctx context.Context, o *entities.Order) error
	UpdateOrder(ctx context.Context, o *entities.Order) error
	AppendStatusHistory(ctx context.Context, h entities.StatusHistoryEntry) error
	ListStatusHistory(ctx context.Context, orderNumber string) ([]entities.StatusHistoryEntry, error)

	GetEstimate(ctx context.Context, orderNumber string, version int) (entities.CostEstimate, error)
	ListEstimates(ctx context.Context, orderNumber string) ([]entities.CostEstimate, error)
	CreateEstimate(ctx context.Context, e *entities.CostEstimate) error
	UpdateEstimate(ctx context.Context, e *entities.CostEstimate) error
	AppendEstimateHistory(ctx context.Context, h entities.EstimateHistoryEntry) error
	ListEstimateHistory(ctx context.Context, orderNumber string, version int) ([]entities.EstimateHistoryEntry, error)

	GetPart(ctx context.Context, id string) (entities.Part, error)
	ListParts(ctx context.Context) ([]entities.Part, error)
	CreatePart(ctx context.Context, p *entities.Part) error
	UpdatePart(ctx context.Context, p *entities.Part) error
	AppendMovement(ctx context.Context, m entities.StockMovement) error
	ListMovements(ctx context.Context, partID string) ([]entities.StockMovement, error)

	GetReservation(ctx context.Context, orderNumber, id string) (entities.PartUsageReservation, error)
	ListReservations(ctx context.Context, orderNumber string) ([]entities.PartUsageReservation, error)
	CreateReservation(ctx context.Context, r *entities.PartUsageReservation) error
	UpdateReservation(ctx context.Context, r *entities.PartUsageReservation) error

	GetSession(ctx context.Context, id string) (entities.InventorySession, error)
	CreateSession(ctx context.Context, s *entities.InventorySession) error
	UpdateSession(ctx context.Context, s *entities.InventorySession) error

	CreateFeePayment(ctx context.Context, p entities.FeePayment) error
	ListFeePayments(ctx context.Context, orderNumber string, version int) ([]entities.FeePayment, error)
}
