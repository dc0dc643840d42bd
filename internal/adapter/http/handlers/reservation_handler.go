package handlers

import (
	"net/http"
	"strings"

	request "repair_workflow/internal/adapter/http/dto/request"
	response "repair_workflow/internal/adapter/http/dto/response"
	"repair_workflow/internal/usecase"

	"github.com/gin-gonic/gin"
)

// ReservationHandler books parts against orders and decides on bookings.
type ReservationHandler struct {
	usecase usecase.IPartReservationUseCase
}

func NewReservationHandler(uc usecase.IPartReservationUseCase) *ReservationHandler {
	return &ReservationHandler{usecase: uc}
}

func (h *ReservationHandler) BookPart(c *gin.Context) {
	var payload request.BookPartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	out, err := h.usecase.Book(c.Request.Context(), trimmedParam(c, "number"), strings.TrimSpace(payload.PartID), payload.Quantity, payload.Reason, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromReservationOutcome(out))
}

func (h *ReservationHandler) ListReservations(c *gin.Context) {
	list, err := h.usecase.ListByOrder(c.Request.Context(), trimmedParam(c, "number"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromReservations(list))
}

func (h *ReservationHandler) ApproveReservation(c *gin.Context) {
	out, err := h.usecase.Approve(c.Request.Context(), trimmedParam(c, "number"), trimmedParam(c, "id"), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromReservationOutcome(out))
}

func (h *ReservationHandler) RejectReservation(c *gin.Context) {
	var payload request.ReasonRequest
	if err := bindOptionalJSON(c, &payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	out, err := h.usecase.Reject(c.Request.Context(), trimmedParam(c, "number"), trimmedParam(c, "id"), actorFrom(c), payload.Reason)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromReservationOutcome(out))
}

func (h *ReservationHandler) RemoveReservation(c *gin.Context) {
	out, err := h.usecase.Remove(c.Request.Context(), trimmedParam(c, "number"), trimmedParam(c, "id"), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromReservationOutcome(out))
}

// CandidatePartsForOrder lists bookable parts for the order's device.
func (h *ReservationHandler) CandidatePartsForOrder(c *gin.Context) {
	groups, err := h.usecase.CandidatePartsForOrder(c.Request.Context(), trimmedParam(c, "number"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromCandidates(groups))
}

// CandidateParts lists bookable parts for ?manufacturer=&model=.
func (h *ReservationHandler) CandidateParts(c *gin.Context) {
	groups, err := h.usecase.CandidateParts(c.Request.Context(), strings.TrimSpace(c.Query("manufacturer")), strings.TrimSpace(c.Query("model")))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromCandidates(groups))
}
