package postgres

import (
	"context"
	"errors"
	"fmt"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase/interfaces"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Store is an IWorkflowStore over Postgres.
//
// Each RunInTx is one database transaction. Parts are read with FOR UPDATE so
// concurrent stock movements queue on the row; every other update is
// conditional on the revision that was read and reports
// ErrConcurrentModification when no row matched.
type Store struct {
	db *gorm.DB
}

var _ interfaces.IWorkflowStore = (*Store)(nil)

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) RunInTx(ctx context.Context, fn func(ctx context.Context, tx interfaces.IWorkflowTx) error) error {
	return s.db.WithContext(ctx).Transaction(func(db *gorm.DB) error {
		return fn(ctx, &gormTx{db: db})
	})
}

type gormTx struct {
	db *gorm.DB
}

func notFoundOr(err error, what, id string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return entities.NotFound(what, id)
	}
	return fmt.Errorf("load %s %q: %w", what, id, err)
}

// insert creates a row unless its key is taken. conflict is returned when it is.
func (t *gormTx) insert(ctx context.Context, row any, conflict error) error {
	res := t.db.WithContext(ctx).Clauses(clause.OnConflict{DoNothing: true}).Create(row)
	if res.Error != nil {
		return fmt.Errorf("insert: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return conflict
	}
	return nil
}

// updateRevised overwrites every column of row where the stored revision is
// readRev. row must carry its primary key and the next revision.
func (t *gormTx) updateRevised(ctx context.Context, row any, readRev int64, what, id string) error {
	res := t.db.WithContext(ctx).Model(row).Where("revision = ?", readRev).Select("*").Updates(row)
	if res.Error != nil {
		return fmt.Errorf("update %s %q: %w", what, id, res.Error)
	}
	if res.RowsAffected == 0 {
		return entities.ConcurrentModification(what, id)
	}
	return nil
}

// orders

func (t *gormTx) GetOrder(ctx context.Context, number string) (entities.Order, error) {
	var m orderModel
	if err := t.db.WithContext(ctx).First(&m, "number = ?", number).Error; err != nil {
		return entities.Order{}, notFoundOr(err, "order", number)
	}
	return fromOrderModel(m)
}

func (t *gormTx) CreateOrder(ctx context.Context, o *entities.Order) error {
	o.Revision = 1
	m, err := toOrderModel(*o)
	if err != nil {
		return err
	}
	return t.insert(ctx, &m, entities.NewDomainError(entities.ErrAlreadyExists, "order %q", o.Number))
}

func (t *gormTx) UpdateOrder(ctx context.Context, o *entities.Order) error {
	next := *o
	next.Revision++
	m, err := toOrderModel(next)
	if err != nil {
		return err
	}
	if err := t.updateRevised(ctx, &m, o.Revision, "order", o.Number); err != nil {
		return err
	}
	o.Revision = next.Revision
	return nil
}

func (t *gormTx) AppendStatusHistory(ctx context.Context, h entities.StatusHistoryEntry) error {
	m := statusHistoryModel{
		ID:          h.ID,
		OrderNumber: h.OrderNumber,
		OrderSeq:    h.Seq,
		OldStatus:   string(h.OldStatus),
		NewStatus:   string(h.NewStatus),
		ActorID:     h.ActorID,
		Note:        h.Note,
		At:          h.At,
	}
	if err := t.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("append status history: %w", err)
	}
	return nil
}

func (t *gormTx) ListStatusHistory(ctx context.Context, orderNumber string) ([]entities.StatusHistoryEntry, error) {
	var rows []statusHistoryModel
	if err := t.db.WithContext(ctx).Where("order_number = ?", orderNumber).Order("order_seq, seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list status history: %w", err)
	}
	out := make([]entities.StatusHistoryEntry, 0, len(rows))
	for _, r := range rows {
		out = append(out, entities.StatusHistoryEntry{
			ID:          r.ID,
			OrderNumber: r.OrderNumber,
			Seq:         r.OrderSeq,
			OldStatus:   entities.OrderStatus(r.OldStatus),
			NewStatus:   entities.OrderStatus(r.NewStatus),
			ActorID:     r.ActorID,
			Note:        r.Note,
			At:          r.At.UTC(),
		})
	}
	return out, nil
}

// estimates

func (t *gormTx) GetEstimate(ctx context.Context, orderNumber string, version int) (entities.CostEstimate, error) {
	var m estimateModel
	err := t.db.WithContext(ctx).First(&m, "order_number = ? AND version = ?", orderNumber, version).Error
	if err != nil {
		return entities.CostEstimate{}, notFoundOr(err, "estimate", fmt.Sprintf("%s#%d", orderNumber, version))
	}
	return fromEstimateModel(m)
}

func (t *gormTx) ListEstimates(ctx context.Context, orderNumber string) ([]entities.CostEstimate, error) {
	var rows []estimateModel
	if err := t.db.WithContext(ctx).Where("order_number = ?", orderNumber).Order("version").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list estimates: %w", err)
	}
	out := make([]entities.CostEstimate, 0, len(rows))
	for _, r := range rows {
		e, err := fromEstimateModel(r)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

func (t *gormTx) CreateEstimate(ctx context.Context, e *entities.CostEstimate) error {
	e.Revision = 1
	m, err := toEstimateModel(*e)
	if err != nil {
		return err
	}
	return t.insert(ctx, &m, entities.ConcurrentModification("estimate", fmt.Sprintf("%s#%d", e.OrderNumber, e.Version)))
}

func (t *gormTx) UpdateEstimate(ctx context.Context, e *entities.CostEstimate) error {
	next := *e
	next.Revision++
	m, err := toEstimateModel(next)
	if err != nil {
		return err
	}
	if err := t.updateRevised(ctx, &m, e.Revision, "estimate", fmt.Sprintf("%s#%d", e.OrderNumber, e.Version)); err != nil {
		return err
	}
	e.Revision = next.Revision
	return nil
}

func (t *gormTx) AppendEstimateHistory(ctx context.Context, h entities.EstimateHistoryEntry) error {
	payload, err := toDoc(h.Payload)
	if err != nil {
		return err
	}
	m := estimateHistoryModel{
		ID:              h.ID,
		OrderNumber:     h.OrderNumber,
		EstimateVersion: h.EstimateVersion,
		Event:           string(h.Event),
		ActorID:         h.ActorID,
		At:              h.At,
		Payload:         payload,
	}
	if err := t.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("append estimate history: %w", err)
	}
	return nil
}

func (t *gormTx) ListEstimateHistory(ctx context.Context, orderNumber string, version int) ([]entities.EstimateHistoryEntry, error) {
	var rows []estimateHistoryModel
	err := t.db.WithContext(ctx).
		Where("order_number = ? AND estimate_version = ?", orderNumber, version).
		Order("seq").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list estimate history: %w", err)
	}
	out := make([]entities.EstimateHistoryEntry, 0, len(rows))
	for _, r := range rows {
		payload, err := fromDoc[map[string]string](r.Payload)
		if err != nil {
			return nil, err
		}
		out = append(out, entities.EstimateHistoryEntry{
			ID:              r.ID,
			OrderNumber:     r.OrderNumber,
			EstimateVersion: r.EstimateVersion,
			Event:           entities.EstimateEvent(r.Event),
			ActorID:         r.ActorID,
			At:              r.At.UTC(),
			Payload:         payload,
		})
	}
	return out, nil
}

// parts and ledger

func (t *gormTx) GetPart(ctx context.Context, id string) (entities.Part, error) {
	var m partModel
	err := t.db.WithContext(ctx).Clauses(clause.Locking{Strength: "UPDATE"}).First(&m, "id = ?", id).Error
	if err != nil {
		return entities.Part{}, notFoundOr(err, "part", id)
	}
	return fromPartModel(m), nil
}

func (t *gormTx) ListParts(ctx context.Context) ([]entities.Part, error) {
	var rows []partModel
	if err := t.db.WithContext(ctx).Order("id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list parts: %w", err)
	}
	out := make([]entities.Part, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromPartModel(r))
	}
	return out, nil
}

func (t *gormTx) CreatePart(ctx context.Context, p *entities.Part) error {
	p.Revision = 1
	m := toPartModel(*p)
	return t.insert(ctx, &m, entities.NewDomainError(entities.ErrAlreadyExists, "part %q", p.ID))
}

func (t *gormTx) UpdatePart(ctx context.Context, p *entities.Part) error {
	next := *p
	next.Revision++
	m := toPartModel(next)
	if err := t.updateRevised(ctx, &m, p.Revision, "part", p.ID); err != nil {
		return err
	}
	p.Revision = next.Revision
	return nil
}

func (t *gormTx) AppendMovement(ctx context.Context, mv entities.StockMovement) error {
	m := toMovementModel(mv)
	if err := t.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("append movement: %w", err)
	}
	return nil
}

func (t *gormTx) ListMovements(ctx context.Context, partID string) ([]entities.StockMovement, error) {
	var rows []movementModel
	if err := t.db.WithContext(ctx).Where("part_id = ?", partID).Order("seq").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	out := make([]entities.StockMovement, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromMovementModel(r))
	}
	return out, nil
}

// reservations

func (t *gormTx) GetReservation(ctx context.Context, orderNumber, id string) (entities.PartUsageReservation, error) {
	var m reservationModel
	if err := t.db.WithContext(ctx).First(&m, "id = ? AND order_number = ?", id, orderNumber).Error; err != nil {
		return entities.PartUsageReservation{}, notFoundOr(err, "reservation", id)
	}
	return fromReservationModel(m), nil
}

func (t *gormTx) ListReservations(ctx context.Context, orderNumber string) ([]entities.PartUsageReservation, error) {
	var rows []reservationModel
	if err := t.db.WithContext(ctx).Where("order_number = ?", orderNumber).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("list reservations: %w", err)
	}
	out := make([]entities.PartUsageReservation, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromReservationModel(r))
	}
	return out, nil
}

func (t *gormTx) CreateReservation(ctx context.Context, r *entities.PartUsageReservation) error {
	r.Revision = 1
	m := toReservationModel(*r)
	return t.insert(ctx, &m, entities.NewDomainError(entities.ErrAlreadyExists, "reservation %q", r.ID))
}

func (t *gormTx) UpdateReservation(ctx context.Context, r *entities.PartUsageReservation) error {
	next := *r
	next.Revision++
	m := toReservationModel(next)
	if err := t.updateRevised(ctx, &m, r.Revision, "reservation", r.ID); err != nil {
		return err
	}
	r.Revision = next.Revision
	return nil
}

// inventory sessions

func (t *gormTx) GetSession(ctx context.Context, id string) (entities.InventorySession, error) {
	var m sessionModel
	if err := t.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return entities.InventorySession{}, notFoundOr(err, "inventory session", id)
	}
	return fromSessionModel(m)
}

func (t *gormTx) CreateSession(ctx context.Context, s *entities.InventorySession) error {
	s.Revision = 1
	m, err := toSessionModel(*s)
	if err != nil {
		return err
	}
	return t.insert(ctx, &m, entities.NewDomainError(entities.ErrAlreadyExists, "inventory session %q", s.ID))
}

func (t *gormTx) UpdateSession(ctx context.Context, s *entities.InventorySession) error {
	next := *s
	next.Revision++
	m, err := toSessionModel(next)
	if err != nil {
		return err
	}
	if err := t.updateRevised(ctx, &m, s.Revision, "inventory session", s.ID); err != nil {
		return err
	}
	s.Revision = next.Revision
	return nil
}

// fee payments

func (t *gormTx) CreateFeePayment(ctx context.Context, p entities.FeePayment) error {
	m := toFeePaymentModel(p)
	if err := t.db.WithContext(ctx).Create(&m).Error; err != nil {
		return fmt.Errorf("record fee payment: %w", err)
	}
	return nil
}

func (t *gormTx) ListFeePayments(ctx context.Context, orderNumber string, version int) ([]entities.FeePayment, error) {
	var rows []feePaymentModel
	err := t.db.WithContext(ctx).
		Where("order_number = ? AND estimate_version = ?", orderNumber, version).
		Order("date").
		Find(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("list fee payments: %w", err)
	}
	out := make([]entities.FeePayment, 0, len(rows))
	for _, r := range rows {
		out = append(out, fromFeePaymentModel(r))
	}
	return out, nil
}
