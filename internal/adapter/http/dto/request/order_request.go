package request

import (
	"strings"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase"
)

type CreateOrderRequest struct {
	Number             string   `json:"number"`
	Location           string   `json:"location"`
	PartnerID          string   `json:"partner_id"`
	DeviceManufacturer string   `json:"device_manufacturer"`
	DeviceModel        string   `json:"device_model"`
	TechnicianID       string   `json:"technician_id"`
	Checklist          []string `json:"checklist"`
}

func (r CreateOrderRequest) ToInput() usecase.IntakeInput {
	return usecase.IntakeInput{
		Number:             strings.TrimSpace(r.Number),
		Location:           strings.TrimSpace(r.Location),
		PartnerID:          strings.TrimSpace(r.PartnerID),
		DeviceManufacturer: strings.TrimSpace(r.DeviceManufacturer),
		DeviceModel:        strings.TrimSpace(r.DeviceModel),
		TechnicianID:       strings.TrimSpace(r.TechnicianID),
		Checklist:          r.Checklist,
	}
}

type TransitionRequest struct {
	Status string `json:"status" binding:"required"`
	Note   string `json:"note"`
}

func (r TransitionRequest) Target() entities.OrderStatus {
	return entities.OrderStatus(strings.ToLower(strings.TrimSpace(r.Status)))
}

type AssignTechnicianRequest struct {
	TechnicianID string `json:"technician_id" binding:"required"`
}

type ChecklistRequest struct {
	Labels []string `json:"labels"`
}

type CheckItemRequest struct {
	Label   string `json:"label" binding:"required"`
	Checked bool   `json:"checked"`
}
