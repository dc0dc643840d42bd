package handlers

import (
	"net/http"

	request "repair_workflow/internal/adapter/http/dto/request"
	response "repair_workflow/internal/adapter/http/dto/response"
	"repair_workflow/internal/usecase"

	"github.com/gin-gonic/gin"
)

// OrderHandler exposes repair order intake, status transitions and the
// quality checklist.
type OrderHandler struct {
	usecase usecase.IOrderUseCase
}

func NewOrderHandler(uc usecase.IOrderUseCase) *OrderHandler {
	return &OrderHandler{usecase: uc}
}

func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var payload request.CreateOrderRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	view, err := h.usecase.CreateOrder(c.Request.Context(), payload.ToInput(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromOrderView(view))
}

func (h *OrderHandler) GetOrder(c *gin.Context) {
	view, err := h.usecase.GetOrder(c.Request.Context(), trimmedParam(c, "number"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrderView(view))
}

func (h *OrderHandler) TransitionStatus(c *gin.Context) {
	var payload request.TransitionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	out, err := h.usecase.Transition(c.Request.Context(), trimmedParam(c, "number"), payload.Target(), actorFrom(c), payload.Note)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromTransition(out))
}

func (h *OrderHandler) AssignTechnician(c *gin.Context) {
	var payload request.AssignTechnicianRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	order, err := h.usecase.AssignTechnician(c.Request.Context(), trimmedParam(c, "number"), payload.TechnicianID, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order))
}

func (h *OrderHandler) SetChecklist(c *gin.Context) {
	var payload request.ChecklistRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	order, err := h.usecase.SetChecklist(c.Request.Context(), trimmedParam(c, "number"), payload.Labels, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order))
}

func (h *OrderHandler) CheckItem(c *gin.Context) {
	var payload request.CheckItemRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	order, err := h.usecase.CheckItem(c.Request.Context(), trimmedParam(c, "number"), payload.Label, payload.Checked, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromOrder(order))
}
