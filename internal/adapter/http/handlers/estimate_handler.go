package handlers

import (
	"context"
	"net/http"

	request "repair_workflow/internal/adapter/http/dto/request"
	response "repair_workflow/internal/adapter/http/dto/response"
	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase"
	"repair_workflow/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidEstimatePayload = pkg.NewDomainErrorSimple("INVALID_ESTIMATE_INPUT", "Invalid estimate payload", http.StatusBadRequest)
	errInvalidVersion         = pkg.NewDomainErrorSimple("INVALID_VERSION", "Estimate version must be a positive integer", http.StatusBadRequest)
)

// EstimateHandler handles HTTP requests for versioned cost estimates (KVA).
type EstimateHandler struct {
	usecase usecase.ICostEstimateUseCase
}

func NewEstimateHandler(uc usecase.ICostEstimateUseCase) *EstimateHandler {
	return &EstimateHandler{usecase: uc}
}

// CreateEstimate creates a new version that supersedes the current one.
func (h *EstimateHandler) CreateEstimate(c *gin.Context) {
	var payload request.EstimateRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidEstimatePayload)
		return
	}
	in, err := payload.ToInput()
	if err != nil {
		abortWith(c, errInvalidEstimatePayload)
		return
	}

	out, err := h.usecase.CreateVersion(c.Request.Context(), trimmedParam(c, "number"), in, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromEstimateOutcome(out))
}

func (h *EstimateHandler) ListEstimates(c *gin.Context) {
	list, err := h.usecase.ListEstimates(c.Request.Context(), trimmedParam(c, "number"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimates(list))
}

func (h *EstimateHandler) GetEstimate(c *gin.Context) {
	version, ok := versionParam(c)
	if !ok {
		abortWith(c, errInvalidVersion)
		return
	}
	est, err := h.usecase.GetEstimate(c.Request.Context(), trimmedParam(c, "number"), version)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimate(est))
}

func (h *EstimateHandler) GetEstimateHistory(c *gin.Context) {
	version, ok := versionParam(c)
	if !ok {
		abortWith(c, errInvalidVersion)
		return
	}
	hist, err := h.usecase.History(c.Request.Context(), trimmedParam(c, "number"), version)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimateHistory(hist))
}

func (h *EstimateHandler) SendEstimate(c *gin.Context) {
	h.channelCommand(c, h.usecase.Send)
}

func (h *EstimateHandler) RemindEstimate(c *gin.Context) {
	h.channelCommand(c, h.usecase.Remind)
}

func (h *EstimateHandler) channelCommand(
	c *gin.Context,
	command func(ctx context.Context, orderNumber string, version int, channel string, actor entities.Actor) (usecase.EstimateOutcome, error),
) {
	version, ok := versionParam(c)
	if !ok {
		abortWith(c, errInvalidVersion)
		return
	}
	var payload request.ChannelRequest
	if err := bindOptionalJSON(c, &payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	out, err := command(c.Request.Context(), trimmedParam(c, "number"), version, payload.Channel, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimateOutcome(out))
}

// RecordDecision stores the approval or rejection of a sent estimate. Replaying
// the same decision returns 200 with replayed=true.
func (h *EstimateHandler) RecordDecision(c *gin.Context) {
	version, ok := versionParam(c)
	if !ok {
		abortWith(c, errInvalidVersion)
		return
	}
	var payload request.DecisionRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	out, err := h.usecase.RecordDecision(c.Request.Context(), trimmedParam(c, "number"), version, payload.ToInput(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimateOutcome(out))
}

func (h *EstimateHandler) WaiveFee(c *gin.Context) {
	version, ok := versionParam(c)
	if !ok {
		abortWith(c, errInvalidVersion)
		return
	}
	var payload request.ReasonRequest
	if err := bindOptionalJSON(c, &payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	out, err := h.usecase.WaiveFee(c.Request.Context(), trimmedParam(c, "number"), version, payload.Reason, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimateOutcome(out))
}

func (h *EstimateHandler) ReleasePrice(c *gin.Context) {
	version, ok := versionParam(c)
	if !ok {
		abortWith(c, errInvalidVersion)
		return
	}

	out, err := h.usecase.ReleasePrice(c.Request.Context(), trimmedParam(c, "number"), version, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromEstimateOutcome(out))
}
