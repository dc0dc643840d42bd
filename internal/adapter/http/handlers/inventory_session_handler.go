package handlers

import (
	"net/http"

	request "repair_workflow/internal/adapter/http/dto/request"
	response "repair_workflow/internal/adapter/http/dto/response"
	"repair_workflow/internal/usecase"

	"github.com/gin-gonic/gin"
)

type InventorySessionHandler struct {
	usecase usecase.IInventorySessionUseCase
}

func NewInventorySessionHandler(uc usecase.IInventorySessionUseCase) *InventorySessionHandler {
	return &InventorySessionHandler{usecase: uc}
}

func (h *InventorySessionHandler) StartSession(c *gin.Context) {
	var payload request.StartSessionRequest
	if err := bindOptionalJSON(c, &payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	s, err := h.usecase.Start(c.Request.Context(), payload.Location, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromSession(s))
}

func (h *InventorySessionHandler) GetSession(c *gin.Context) {
	s, err := h.usecase.GetSession(c.Request.Context(), trimmedParam(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromSession(s))
}

func (h *InventorySessionHandler) RecordCount(c *gin.Context) {
	var payload request.CountRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	s, err := h.usecase.RecordCount(c.Request.Context(), trimmedParam(c, "id"), trimmedParam(c, "part_id"), *payload.Counted, payload.Reason, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromSession(s))
}

func (h *InventorySessionHandler) SubmitSession(c *gin.Context) {
	s, err := h.usecase.Submit(c.Request.Context(), trimmedParam(c, "id"), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromSession(s))
}

// ApproveSession books every discrepancy as an inventory correction.
func (h *InventorySessionHandler) ApproveSession(c *gin.Context) {
	out, err := h.usecase.Approve(c.Request.Context(), trimmedParam(c, "id"), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromSessionOutcome(out))
}

func (h *InventorySessionHandler) RejectSession(c *gin.Context) {
	var payload request.ReasonRequest
	if err := bindOptionalJSON(c, &payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	s, err := h.usecase.Reject(c.Request.Context(), trimmedParam(c, "id"), actorFrom(c), payload.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromSession(s))
}
