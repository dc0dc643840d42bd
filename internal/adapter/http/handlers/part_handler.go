package handlers

import (
	"net/http"

	request "repair_workflow/internal/adapter/http/dto/request"
	response "repair_workflow/internal/adapter/http/dto/response"
	"repair_workflow/internal/usecase"

	"github.com/gin-gonic/gin"
)

// PartHandler serves the part catalog and its stock ledger.
type PartHandler struct {
	catalog usecase.IPartCatalogUseCase
	ledger  usecase.IStockLedger
}

func NewPartHandler(catalog usecase.IPartCatalogUseCase, ledger usecase.IStockLedger) *PartHandler {
	return &PartHandler{catalog: catalog, ledger: ledger}
}

func (h *PartHandler) RegisterPart(c *gin.Context) {
	var payload request.RegisterPartRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	part, err := h.catalog.RegisterPart(c.Request.Context(), payload.ToInput(), actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromPart(part))
}

func (h *PartHandler) ListParts(c *gin.Context) {
	parts, err := h.catalog.ListParts(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromParts(parts))
}

func (h *PartHandler) GetPart(c *gin.Context) {
	part, err := h.catalog.GetPart(c.Request.Context(), trimmedParam(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPart(part))
}

func (h *PartHandler) ReceiveStock(c *gin.Context) {
	var payload request.ReceiveStockRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	out, err := h.catalog.ReceiveStock(c.Request.Context(), trimmedParam(c, "id"), payload.Quantity, payload.Note, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.FromStockOutcome(out))
}

func (h *PartHandler) UpdatePrices(c *gin.Context) {
	var payload request.PricesRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	part, err := h.catalog.UpdatePrices(c.Request.Context(), trimmedParam(c, "id"), *payload.PurchasePrice, *payload.SalePrice, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPart(part))
}

func (h *PartHandler) SetActive(c *gin.Context) {
	var payload request.ActiveRequest
	if err := c.ShouldBindJSON(&payload); err != nil {
		abortWith(c, errInvalidRequest)
		return
	}

	part, err := h.catalog.SetActive(c.Request.Context(), trimmedParam(c, "id"), *payload.Active, actorFrom(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromPart(part))
}

func (h *PartHandler) ListMovements(c *gin.Context) {
	movements, err := h.ledger.History(c.Request.Context(), trimmedParam(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.FromMovements(movements))
}

// VerifyBalance recomputes on-hand stock from the ledger.
func (h *PartHandler) VerifyBalance(c *gin.Context) {
	balance, err := h.ledger.VerifyBalance(c.Request.Context(), trimmedParam(c, "id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, balance)
}
