package usecase

import (
	"context"
	"strings"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase/interfaces"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// PartInput describes a catalog entry at registration time.
type PartInput struct {
	ID            string
	Name          string
	Manufacturer  string
	Model         string
	Location      string
	MinThreshold  int
	PurchasePrice decimal.Decimal
	SalePrice     decimal.Decimal
	InitialStock  int
}

// StockOutcome is a part after a ledger write, with the movement that changed it.
type StockOutcome struct {
	Part     entities.Part
	Movement entities.StockMovement
}

type IPartCatalogUseCase interface {
	RegisterPart(ctx context.Context, in PartInput, actor entities.Actor) (entities.Part, error)
	ReceiveStock(ctx context.Context, partID string, quantity int, note string, actor entities.Actor) (StockOutcome, error)
	UpdatePrices(ctx context.Context, partID string, purchase, sale decimal.Decimal, actor entities.Actor) (entities.Part, error)
	SetActive(ctx context.Context, partID string, active bool, actor entities.Actor) (entities.Part, error)
	GetPart(ctx context.Context, partID string) (entities.Part, error)
	ListParts(ctx context.Context) ([]entities.Part, error)
}

type PartCatalogUseCase struct {
	store  interfaces.IWorkflowStore
	clock  interfaces.IClock
	ledger *StockLedger
	log    *zap.Logger
}

var _ IPartCatalogUseCase = (*PartCatalogUseCase)(nil)

func NewPartCatalogUseCase(store interfaces.IWorkflowStore, clock interfaces.IClock, ledger *StockLedger, log *zap.Logger) *PartCatalogUseCase {
	return &PartCatalogUseCase{store: store, clock: clock, ledger: ledger, log: nopLogger(log).Named("catalog")}
}

// RegisterPart creates an active part with zero stock and books any initial
// quantity as a receipt so the ledger sum matches from the first row.
func (u *PartCatalogUseCase) RegisterPart(ctx context.Context, in PartInput, actor entities.Actor) (entities.Part, error) {
	if err := requireActor(actor); err != nil {
		return entities.Part{}, err
	}
	if in.InitialStock < 0 {
		return entities.Part{}, entities.ValidationError("initial stock must not be negative")
	}
	now := u.clock.Now()
	part := entities.Part{
		ID:            strings.TrimSpace(in.ID),
		Name:          strings.TrimSpace(in.Name),
		Manufacturer:  strings.TrimSpace(in.Manufacturer),
		Model:         strings.TrimSpace(in.Model),
		Location:      strings.TrimSpace(in.Location),
		MinThreshold:  in.MinThreshold,
		PurchasePrice: entities.RoundMoney(in.PurchasePrice),
		SalePrice:     entities.RoundMoney(in.SalePrice),
		Active:        true,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if err := part.Validate(); err != nil {
		return entities.Part{}, err
	}

	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		if err := tx.CreatePart(ctx, &part); err != nil {
			return err
		}
		if in.InitialStock == 0 {
			return nil
		}
		_, err := u.ledger.ApplyMovement(ctx, tx, &part, in.InitialStock, entities.MovementReceipt, "initial stock", actor, entities.MovementLink{})
		return err
	})
	if err != nil {
		return entities.Part{}, err
	}
	u.log.Info("part registered", zap.String("part", part.ID), zap.Int("on_hand", part.OnHand))
	return part, nil
}

func (u *PartCatalogUseCase) ReceiveStock(ctx context.Context, partID string, quantity int, note string, actor entities.Actor) (StockOutcome, error) {
	if err := requireActor(actor); err != nil {
		return StockOutcome{}, err
	}
	if quantity <= 0 {
		return StockOutcome{}, entities.ValidationError("received quantity must be positive")
	}
	var out StockOutcome
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		part, err := tx.GetPart(ctx, partID)
		if err != nil {
			return err
		}
		m, err := u.ledger.ApplyMovement(ctx, tx, &part, quantity, entities.MovementReceipt, strings.TrimSpace(note), actor, entities.MovementLink{})
		if err != nil {
			return err
		}
		out = StockOutcome{Part: part, Movement: m}
		return nil
	})
	return out, err
}

// UpdatePrices changes catalog prices. Existing reservations keep the prices
// captured when they were booked.
func (u *PartCatalogUseCase) UpdatePrices(ctx context.Context, partID string, purchase, sale decimal.Decimal, actor entities.Actor) (entities.Part, error) {
	if err := requireActor(actor); err != nil {
		return entities.Part{}, err
	}
	if purchase.IsNegative() || sale.IsNegative() {
		return entities.Part{}, entities.ValidationError("prices must not be negative")
	}
	return u.mutate(ctx, partID, func(p *entities.Part) {
		p.PurchasePrice = entities.RoundMoney(purchase)
		p.SalePrice = entities.RoundMoney(sale)
	})
}

func (u *PartCatalogUseCase) SetActive(ctx context.Context, partID string, active bool, actor entities.Actor) (entities.Part, error) {
	if err := requireActor(actor); err != nil {
		return entities.Part{}, err
	}
	return u.mutate(ctx, partID, func(p *entities.Part) { p.Active = active })
}

func (u *PartCatalogUseCase) GetPart(ctx context.Context, partID string) (entities.Part, error) {
	var out entities.Part
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		p, err := tx.GetPart(ctx, partID)
		out = p
		return err
	})
	return out, err
}

func (u *PartCatalogUseCase) ListParts(ctx context.Context) ([]entities.Part, error) {
	var out []entities.Part
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		ps, err := tx.ListParts(ctx)
		out = ps
		return err
	})
	return out, err
}

func (u *PartCatalogUseCase) mutate(ctx context.Context, partID string, change func(p *entities.Part)) (entities.Part, error) {
	var out entities.Part
	err := u.store.RunInTx(ctx, func(ctx context.Context, tx interfaces.IWorkflowTx) error {
		part, err := tx.GetPart(ctx, partID)
		if err != nil {
			return err
		}
		change(&part)
		part.UpdatedAt = u.clock.Now()
		if err := tx.UpdatePart(ctx, &part); err != nil {
			return err
		}
		out = part
		return nil
	})
	return out, err
}
