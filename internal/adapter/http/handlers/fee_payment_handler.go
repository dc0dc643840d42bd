package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	response "repair_workflow/internal/adapter/http/dto/response"
	"repair_workflow/internal/infrastructure/logger"
	"repair_workflow/internal/usecase"
	"repair_workflow/pkg"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// FeePaymentHandler collects rejection fees through the payment provider.
type FeePaymentHandler struct {
	usecase  usecase.IFeePaymentUseCase
	mockMode bool
	log      *zap.Logger
}

func NewFeePaymentHandler(uc usecase.IFeePaymentUseCase, mockMode bool, log *zap.Logger) *FeePaymentHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &FeePaymentHandler{usecase: uc, mockMode: mockMode, log: log.Named("fee_payment_handler")}
}

// CollectFee charges the outstanding rejection fee. The body is the Mercado
// Pago payment payload, bare or wrapped in {"mp_payload": ...}.
func (h *FeePaymentHandler) CollectFee(c *gin.Context) {
	orderNumber := trimmedParam(c, "number")
	log := logger.FromContext(c, h.log).With(zap.String("order", orderNumber))
	version, ok := versionParam(c)
	if !ok {
		abortWith(c, errInvalidVersion)
		return
	}
	log.Info("collect start", zap.Int("version", version))

	mpPayload, err := readMPPayload(c)
	if err != nil {
		if h.mockMode {
			log.Warn("payload invalid in mock mode; fallback to empty payload", zap.Error(err))
			mpPayload = json.RawMessage("{}")
		} else {
			log.Warn("invalid payload", zap.Error(err))
			abortWith(c, errInvalidRequest)
			return
		}
	}

	out, err := h.usecase.CollectFee(c.Request.Context(), orderNumber, version, mpPayload, actorFrom(c))
	if err != nil {
		log.Warn("collect failed", zap.Error(err))
		respondError(c, err)
		return
	}
	log.Info("collect success", zap.String("payment_id", out.Payment.ID), zap.String("status", string(out.Payment.Status)))

	c.JSON(http.StatusOK, response.FromFeeCollection(out))
}

// ListFeePayments returns every payment attempt for an estimate version, oldest first.
func (h *FeePaymentHandler) ListFeePayments(c *gin.Context) {
	version, ok := versionParam(c)
	if !ok {
		abortWith(c, errInvalidVersion)
		return
	}

	payments, err := h.usecase.ListPayments(c.Request.Context(), trimmedParam(c, "number"), version)
	if err != nil {
		respondError(c, err)
		return
	}
	if len(payments) == 0 {
		abortWith(c, pkg.NewDomainErrorSimple("PAYMENT_NOT_FOUND", "Payment not found", http.StatusNotFound))
		return
	}
	c.JSON(http.StatusOK, response.FromFeePayments(payments))
}

func readMPPayload(c *gin.Context) (json.RawMessage, error) {
	raw, err := c.GetRawData()
	if err != nil {
		return nil, err
	}
	if len(strings.TrimSpace(string(raw))) == 0 {
		return json.RawMessage("{}"), nil
	}
	if !json.Valid(raw) {
		return nil, errors.New("request body is not valid json")
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(raw, &envelope); err == nil {
		if wrapped, ok := envelope["mp_payload"]; ok {
			if len(strings.TrimSpace(string(wrapped))) == 0 || strings.TrimSpace(string(wrapped)) == "null" {
				return nil, errors.New("mp_payload cannot be empty")
			}
			return wrapped, nil
		}
	}

	return json.RawMessage(raw), nil
}
