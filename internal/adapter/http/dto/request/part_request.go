package request

import (
	"strings"

	"repair_workflow/internal/usecase"

	"github.com/shopspring/decimal"
)

type RegisterPartRequest struct {
	ID            string          `json:"id" binding:"required"`
	Name          string          `json:"name" binding:"required"`
	Manufacturer  string          `json:"manufacturer"`
	Model         string          `json:"model"`
	Location      string          `json:"location"`
	MinThreshold  int             `json:"min_threshold"`
	PurchasePrice decimal.Decimal `json:"purchase_price"`
	SalePrice     decimal.Decimal `json:"sale_price"`
	InitialStock  int             `json:"initial_stock"`
}

func (r RegisterPartRequest) ToInput() usecase.PartInput {
	return usecase.PartInput{
		ID:            strings.TrimSpace(r.ID),
		Name:          strings.TrimSpace(r.Name),
		Manufacturer:  strings.TrimSpace(r.Manufacturer),
		Model:         strings.TrimSpace(r.Model),
		Location:      strings.TrimSpace(r.Location),
		MinThreshold:  r.MinThreshold,
		PurchasePrice: r.PurchasePrice,
		SalePrice:     r.SalePrice,
		InitialStock:  r.InitialStock,
	}
}

type ReceiveStockRequest struct {
	Quantity int    `json:"quantity"`
	Note     string `json:"note"`
}

type PricesRequest struct {
	PurchasePrice *decimal.Decimal `json:"purchase_price" binding:"required"`
	SalePrice     *decimal.Decimal `json:"sale_price" binding:"required"`
}

type ActiveRequest struct {
	Active *bool `json:"active" binding:"required"`
}

type BookPartRequest struct {
	PartID   string `json:"part_id" binding:"required"`
	Quantity int    `json:"quantity"`
	Reason   string `json:"reason"`
}

type StartSessionRequest struct {
	Location string `json:"location"`
}

type CountRequest struct {
	Counted *int   `json:"counted" binding:"required"`
	Reason  string `json:"reason"`
}
