package response

import (
	"time"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase"
)

type ChecklistItemResponse struct {
	Label   string `json:"label"`
	Checked bool   `json:"checked"`
}

type OrderResponse struct {
	Number                 string                  `json:"number"`
	Status                 string                  `json:"status"`
	RequiresEstimate       bool                    `json:"requires_estimate"`
	Approval               string                  `json:"approval"`
	EstimatedPrice         string                  `json:"estimated_price"`
	FinalPrice             *string                 `json:"final_price,omitempty"`
	CurrentEstimateVersion int                     `json:"current_estimate_version,omitempty"`
	TechnicianID           string                  `json:"technician_id,omitempty"`
	Location               string                  `json:"location,omitempty"`
	PartnerID              string                  `json:"partner_id,omitempty"`
	DeviceManufacturer     string                  `json:"device_manufacturer,omitempty"`
	DeviceModel            string                  `json:"device_model,omitempty"`
	Checklist              []ChecklistItemResponse `json:"checklist,omitempty"`
	CreatedBy              string                  `json:"created_by"`
	CreatedAt              time.Time               `json:"created_at"`
	UpdatedAt              time.Time               `json:"updated_at"`
}

func FromOrder(o entities.Order) OrderResponse {
	res := OrderResponse{
		Number:                 o.Number,
		Status:                 string(o.Status),
		RequiresEstimate:       o.RequiresEstimate,
		Approval:               string(o.Approval),
		EstimatedPrice:         money(o.EstimatedPrice),
		FinalPrice:             nullMoney(o.FinalPrice),
		CurrentEstimateVersion: o.CurrentEstimateVersion,
		TechnicianID:           o.TechnicianID,
		Location:               o.Location,
		PartnerID:              o.PartnerID,
		DeviceManufacturer:     o.DeviceManufacturer,
		DeviceModel:            o.DeviceModel,
		CreatedBy:              o.CreatedBy,
		CreatedAt:              o.CreatedAt,
		UpdatedAt:              o.UpdatedAt,
	}
	for _, item := range o.Checklist {
		res.Checklist = append(res.Checklist, ChecklistItemResponse{Label: item.Label, Checked: item.Checked})
	}
	return res
}

type StatusHistoryResponse struct {
	ID        string    `json:"id"`
	Seq       int64     `json:"seq"`
	OldStatus string    `json:"old_status,omitempty"`
	NewStatus string    `json:"new_status"`
	ActorID   string    `json:"actor_id"`
	Note      string    `json:"note,omitempty"`
	At        time.Time `json:"at"`
}

func FromStatusHistory(h entities.StatusHistoryEntry) StatusHistoryResponse {
	return StatusHistoryResponse{
		ID:        h.ID,
		Seq:       h.Seq,
		OldStatus: string(h.OldStatus),
		NewStatus: string(h.NewStatus),
		ActorID:   h.ActorID,
		Note:      h.Note,
		At:        h.At,
	}
}

type OrderViewResponse struct {
	OrderResponse
	History []StatusHistoryResponse `json:"history"`
}

func FromOrderView(v usecase.OrderView) OrderViewResponse {
	res := OrderViewResponse{OrderResponse: FromOrder(v.Order), History: make([]StatusHistoryResponse, 0, len(v.History))}
	for _, h := range v.History {
		res.History = append(res.History, FromStatusHistory(h))
	}
	return res
}

type TransitionResponse struct {
	Order OrderResponse         `json:"order"`
	Entry StatusHistoryResponse `json:"entry"`
}

func FromTransition(o usecase.TransitionOutcome) TransitionResponse {
	return TransitionResponse{Order: FromOrder(o.Order), Entry: FromStatusHistory(o.Entry)}
}
