package postgres

import (
	"encoding/json"
	"fmt"
	"time"

	"repair_workflow/internal/domain/entities"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Aggregates whose shape is mostly nested (orders, estimates, sessions) are
// kept as a JSON document next to the columns used for lookups and locking.
// Ledger, part and reservation rows are fully relational.

type orderModel struct {
	Number    string `gorm:"primaryKey;size:64"`
	Status    string `gorm:"size:32;index"`
	Revision  int64  `gorm:"not null"`
	Doc       datatypes.JSON
	UpdatedAt time.Time
}

func (orderModel) TableName() string { return "orders" }

type statusHistoryModel struct {
	Seq         int64  `gorm:"primaryKey;autoIncrement"`
	ID          string `gorm:"size:36;uniqueIndex"`
	OrderNumber string `gorm:"size:64;uniqueIndex:ux_status_history_order_seq"`
	OrderSeq    int64  `gorm:"not null;uniqueIndex:ux_status_history_order_seq"`
	OldStatus   string `gorm:"size:32"`
	NewStatus   string `gorm:"size:32"`
	ActorID     string `gorm:"size:64"`
	Note        string
	At          time.Time
}

func (statusHistoryModel) TableName() string { return "order_status_history" }

type estimateModel struct {
	OrderNumber string `gorm:"primaryKey;size:64;uniqueIndex:ux_cost_estimates_current,where:is_current"`
	Version     int    `gorm:"primaryKey"`
	IsCurrent   bool   `gorm:"not null"`
	Revision    int64  `gorm:"not null"`
	Doc         datatypes.JSON
	UpdatedAt   time.Time
}

func (estimateModel) TableName() string { return "cost_estimates" }

type estimateHistoryModel struct {
	Seq             int64  `gorm:"primaryKey;autoIncrement"`
	ID              string `gorm:"size:36;uniqueIndex"`
	OrderNumber     string `gorm:"size:64;index:ix_estimate_history_version"`
	EstimateVersion int    `gorm:"index:ix_estimate_history_version"`
	Event           string `gorm:"size:32"`
	ActorID         string `gorm:"size:64"`
	At              time.Time
	Payload         datatypes.JSON
}

func (estimateHistoryModel) TableName() string { return "cost_estimate_history" }

type partModel struct {
	ID            string          `gorm:"primaryKey;size:64"`
	Name          string          `gorm:"not null"`
	Manufacturer  string          `gorm:"size:128;index"`
	Model         string          `gorm:"size:128"`
	Location      string          `gorm:"size:128"`
	OnHand        int             `gorm:"not null"`
	MinThreshold  int             `gorm:"not null"`
	PurchasePrice decimal.Decimal `gorm:"type:numeric(12,2)"`
	SalePrice     decimal.Decimal `gorm:"type:numeric(12,2)"`
	Active        bool            `gorm:"not null"`
	LedgerSeq     int64           `gorm:"not null"`
	CreatedAt     time.Time
	UpdatedAt     time.Time
	Revision      int64 `gorm:"not null"`
}

func (partModel) TableName() string { return "parts" }

type movementModel struct {
	ID            string `gorm:"primaryKey;size:36"`
	PartID        string `gorm:"size:64;uniqueIndex:ux_stock_movements_seq"`
	Seq           int64  `gorm:"uniqueIndex:ux_stock_movements_seq"`
	Delta         int    `gorm:"not null"`
	Reason        string `gorm:"size:32"`
	ReasonText    string
	BalanceAfter  int
	ActorID       string `gorm:"size:64"`
	OrderNumber   string `gorm:"size:64"`
	ReservationID string `gorm:"size:36"`
	SessionID     string `gorm:"size:36"`
	CreatedAt     time.Time
}

func (movementModel) TableName() string { return "stock_movements" }

type reservationModel struct {
	ID                string          `gorm:"primaryKey;size:36"`
	OrderNumber       string          `gorm:"size:64;index"`
	PartID            string          `gorm:"size:64"`
	Quantity          int             `gorm:"not null"`
	UnitPurchasePrice decimal.Decimal `gorm:"type:numeric(12,2)"`
	UnitSalePrice     decimal.Decimal `gorm:"type:numeric(12,2)"`
	BookingReason     string
	Status            string `gorm:"size:16"`
	BookedBy          string `gorm:"size:64"`
	DecidedBy         string `gorm:"size:64"`
	RejectionReason   string
	RemovedBy         string `gorm:"size:64"`
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Revision          int64 `gorm:"not null"`
}

func (reservationModel) TableName() string { return "part_usage_reservations" }

type sessionModel struct {
	ID        string `gorm:"primaryKey;size:36"`
	Location  string `gorm:"size:128"`
	Status    string `gorm:"size:32"`
	Revision  int64  `gorm:"not null"`
	Doc       datatypes.JSON
	UpdatedAt time.Time
}

func (sessionModel) TableName() string { return "inventory_sessions" }

type feePaymentModel struct {
	ID              string          `gorm:"primaryKey;size:64"`
	OrderNumber     string          `gorm:"size:64;index:ix_fee_payments_version"`
	EstimateVersion int             `gorm:"index:ix_fee_payments_version"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2)"`
	Date            time.Time
	Status          string `gorm:"size:16"`
	ProviderPayload datatypes.JSON
}

func (feePaymentModel) TableName() string { return "fee_payments" }

// Models lists every table for AutoMigrate.
func Models() []any {
	return []any{
		&orderModel{},
		&statusHistoryModel{},
		&estimateModel{},
		&estimateHistoryModel{},
		&partModel{},
		&movementModel{},
		&reservationModel{},
		&sessionModel{},
		&feePaymentModel{},
	}
}

func toDoc(v any) (datatypes.JSON, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("encode document: %w", err)
	}
	return datatypes.JSON(b), nil
}

func fromDoc[T any](doc datatypes.JSON) (T, error) {
	var v T
	if err := json.Unmarshal(doc, &v); err != nil {
		return v, fmt.Errorf("decode document: %w", err)
	}
	return v, nil
}

func toOrderModel(o entities.Order) (orderModel, error) {
	doc, err := toDoc(o)
	if err != nil {
		return orderModel{}, err
	}
	return orderModel{Number: o.Number, Status: string(o.Status), Revision: o.Revision, Doc: doc, UpdatedAt: o.UpdatedAt}, nil
}

func fromOrderModel(m orderModel) (entities.Order, error) {
	o, err := fromDoc[entities.Order](m.Doc)
	o.Revision = m.Revision
	return o, err
}

func toEstimateModel(e entities.CostEstimate) (estimateModel, error) {
	doc, err := toDoc(e)
	if err != nil {
		return estimateModel{}, err
	}
	return estimateModel{
		OrderNumber: e.OrderNumber,
		Version:     e.Version,
		IsCurrent:   e.IsCurrent,
		Revision:    e.Revision,
		Doc:         doc,
		UpdatedAt:   e.UpdatedAt,
	}, nil
}

func fromEstimateModel(m estimateModel) (entities.CostEstimate, error) {
	e, err := fromDoc[entities.CostEstimate](m.Doc)
	e.Revision = m.Revision
	return e, err
}

func toSessionModel(s entities.InventorySession) (sessionModel, error) {
	doc, err := toDoc(s)
	if err != nil {
		return sessionModel{}, err
	}
	return sessionModel{ID: s.ID, Location: s.Location, Status: string(s.Status), Revision: s.Revision, Doc: doc, UpdatedAt: s.UpdatedAt}, nil
}

func fromSessionModel(m sessionModel) (entities.InventorySession, error) {
	s, err := fromDoc[entities.InventorySession](m.Doc)
	s.Revision = m.Revision
	return s, err
}

func toPartModel(p entities.Part) partModel {
	return partModel{
		ID:            p.ID,
		Name:          p.Name,
		Manufacturer:  p.Manufacturer,
		Model:         p.Model,
		Location:      p.Location,
		OnHand:        p.OnHand,
		MinThreshold:  p.MinThreshold,
		PurchasePrice: p.PurchasePrice,
		SalePrice:     p.SalePrice,
		Active:        p.Active,
		LedgerSeq:     p.LedgerSeq,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
		Revision:      p.Revision,
	}
}

func fromPartModel(m partModel) entities.Part {
	return entities.Part{
		ID:            m.ID,
		Name:          m.Name,
		Manufacturer:  m.Manufacturer,
		Model:         m.Model,
		Location:      m.Location,
		OnHand:        m.OnHand,
		MinThreshold:  m.MinThreshold,
		PurchasePrice: m.PurchasePrice,
		SalePrice:     m.SalePrice,
		Active:        m.Active,
		LedgerSeq:     m.LedgerSeq,
		CreatedAt:     m.CreatedAt.UTC(),
		UpdatedAt:     m.UpdatedAt.UTC(),
		Revision:      m.Revision,
	}
}

func toMovementModel(m entities.StockMovement) movementModel {
	return movementModel{
		ID:            m.ID,
		PartID:        m.PartID,
		Seq:           m.Seq,
		Delta:         m.Delta,
		Reason:        string(m.Reason),
		ReasonText:    m.ReasonText,
		BalanceAfter:  m.BalanceAfter,
		ActorID:       m.ActorID,
		OrderNumber:   m.Link.OrderNumber,
		ReservationID: m.Link.ReservationID,
		SessionID:     m.Link.SessionID,
		CreatedAt:     m.CreatedAt,
	}
}

func fromMovementModel(m movementModel) entities.StockMovement {
	return entities.StockMovement{
		ID:           m.ID,
		PartID:       m.PartID,
		Seq:          m.Seq,
		Delta:        m.Delta,
		Reason:       entities.MovementReason(m.Reason),
		ReasonText:   m.ReasonText,
		BalanceAfter: m.BalanceAfter,
		ActorID:      m.ActorID,
		Link: entities.MovementLink{
			OrderNumber:   m.OrderNumber,
			ReservationID: m.ReservationID,
			SessionID:     m.SessionID,
		},
		CreatedAt: m.CreatedAt.UTC(),
	}
}

func toReservationModel(r entities.PartUsageReservation) reservationModel {
	return reservationModel{
		ID:                r.ID,
		OrderNumber:       r.OrderNumber,
		PartID:            r.PartID,
		Quantity:          r.Quantity,
		UnitPurchasePrice: r.UnitPurchasePrice,
		UnitSalePrice:     r.UnitSalePrice,
		BookingReason:     r.BookingReason,
		Status:            string(r.Status),
		BookedBy:          r.BookedBy,
		DecidedBy:         r.DecidedBy,
		RejectionReason:   r.RejectionReason,
		RemovedBy:         r.RemovedBy,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         r.UpdatedAt,
		Revision:          r.Revision,
	}
}

func fromReservationModel(m reservationModel) entities.PartUsageReservation {
	return entities.PartUsageReservation{
		ID:                m.ID,
		OrderNumber:       m.OrderNumber,
		PartID:            m.PartID,
		Quantity:          m.Quantity,
		UnitPurchasePrice: m.UnitPurchasePrice,
		UnitSalePrice:     m.UnitSalePrice,
		BookingReason:     m.BookingReason,
		Status:            entities.ReservationStatus(m.Status),
		BookedBy:          m.BookedBy,
		DecidedBy:         m.DecidedBy,
		RejectionReason:   m.RejectionReason,
		RemovedBy:         m.RemovedBy,
		CreatedAt:         m.CreatedAt.UTC(),
		UpdatedAt:         m.UpdatedAt.UTC(),
		Revision:          m.Revision,
	}
}

func toFeePaymentModel(p entities.FeePayment) feePaymentModel {
	payload := datatypes.JSON(p.ProviderPayloadRaw)
	if len(payload) == 0 {
		payload = datatypes.JSON("{}")
	}
	return feePaymentModel{
		ID:              p.ID,
		OrderNumber:     p.OrderNumber,
		EstimateVersion: p.EstimateVersion,
		Amount:          p.Amount,
		Date:            p.Date,
		Status:          string(p.Status),
		ProviderPayload: payload,
	}
}

func fromFeePaymentModel(m feePaymentModel) entities.FeePayment {
	p := entities.FeePayment{
		ID:                 m.ID,
		OrderNumber:        m.OrderNumber,
		EstimateVersion:    m.EstimateVersion,
		Amount:             m.Amount,
		Date:               m.Date.UTC(),
		Status:             entities.PaymentStatus(m.Status),
		ProviderPayloadRaw: json.RawMessage(m.ProviderPayload),
	}
	var parsed map[string]any
	if json.Unmarshal(m.ProviderPayload, &parsed) == nil {
		p.ProviderPayload = parsed
	}
	return p
}
