package handlers

import (
	"errors"
	"net/http"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase"
	"repair_workflow/pkg"

	"github.com/gin-gonic/gin"
)

var (
	errInvalidRequest = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	errMissingActor   = pkg.NewDomainErrorSimple("MISSING_ACTOR", "X-Actor-ID header is required", http.StatusUnauthorized)
)

// mapWorkflowError translates engine errors into API errors.
func mapWorkflowError(err error) *pkg.AppError {
	var de *entities.DomainError
	message := ""
	var details []string
	if errors.As(err, &de) {
		message = de.Message
		details = de.Fields
	}
	simple := func(code, fallback string, status int) *pkg.AppError {
		msg := message
		if msg == "" {
			msg = fallback
		}
		return pkg.NewDomainErrorSimple(code, msg, status).WithDetails(details...)
	}

	switch {
	case errors.Is(err, entities.ErrValidation):
		return simple("VALIDATION_ERROR", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, entities.ErrNotFound):
		return simple("NOT_FOUND", "Resource not found", http.StatusNotFound)
	case errors.Is(err, entities.ErrPermissionDenied):
		return simple("PERMISSION_DENIED", "Permission denied", http.StatusForbidden)
	case errors.Is(err, entities.ErrJustificationRequired):
		return simple("JUSTIFICATION_REQUIRED", "A justification is required", http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrMissingReason):
		return simple("MISSING_REASON", "A reason is required", http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrInvalidStateTransition):
		return simple("INVALID_STATE_TRANSITION", "Transition not allowed", http.StatusConflict)
	case errors.Is(err, entities.ErrTerminalState):
		return simple("TERMINAL_STATE", "Order is closed", http.StatusConflict)
	case errors.Is(err, entities.ErrPreconditionFailed):
		return simple("PRECONDITION_FAILED", "Precondition failed", http.StatusUnprocessableEntity)
	case errors.Is(err, entities.ErrInsufficientStock):
		return simple("INSUFFICIENT_STOCK", "Insufficient stock", http.StatusConflict)
	case errors.Is(err, entities.ErrNegativeStock):
		return simple("NEGATIVE_STOCK", "Stock would become negative", http.StatusConflict)
	case errors.Is(err, entities.ErrConcurrentModification):
		return simple("CONCURRENT_MODIFICATION", "Resource was modified concurrently, retry", http.StatusConflict)
	case errors.Is(err, entities.ErrAlreadyExists):
		return simple("ALREADY_EXISTS", "Resource already exists", http.StatusConflict)
	case errors.Is(err, usecase.ErrInvalidMPPayload), errors.Is(err, usecase.ErrPaymentGatewayBadRequest):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayCustomerNotFound):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND", "Payer not found for this Mercado Pago test context", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayInvalidUsers):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_INVALID_USERS", "Invalid users involved between seller token and payer test user", http.StatusBadRequest)
	case errors.Is(err, usecase.ErrPaymentGatewayUnauthorized):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAUTHORIZED", "Payment provider unauthorized", http.StatusBadGateway)
	case errors.Is(err, usecase.ErrPaymentGatewayNotConfigured):
		return pkg.NewDomainErrorSimple("PAYMENT_PROVIDER_UNAVAILABLE", "Payment provider not configured", http.StatusServiceUnavailable)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func abortWith(c *gin.Context, appErr *pkg.AppError) {
	if appErr.Err != nil {
		_ = c.Error(appErr.Err)
	}
	c.AbortWithStatusJSON(appErr.HTTPStatus, appErr.ToHTTPError())
}

func respondError(c *gin.Context, err error) {
	abortWith(c, mapWorkflowError(err))
}
