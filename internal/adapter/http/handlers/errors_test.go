package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase"

	"github.com/gin-gonic/gin"
)

func TestMapWorkflowError(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
		code   string
	}{
		{"validation", entities.ValidationError("bad"), http.StatusBadRequest, "VALIDATION_ERROR"},
		{"not found", entities.NotFound("order", "R-1"), http.StatusNotFound, "NOT_FOUND"},
		{"permission", entities.NewDomainError(entities.ErrPermissionDenied, "no"), http.StatusForbidden, "PERMISSION_DENIED"},
		{"justification", entities.NewDomainError(entities.ErrJustificationRequired, "note"), http.StatusUnprocessableEntity, "JUSTIFICATION_REQUIRED"},
		{"missing reason", entities.MissingReasons("rows", []string{"p-1"}), http.StatusUnprocessableEntity, "MISSING_REASON"},
		{"transition", entities.InvalidTransition("no"), http.StatusConflict, "INVALID_STATE_TRANSITION"},
		{"terminal", entities.NewDomainError(entities.ErrTerminalState, "closed"), http.StatusConflict, "TERMINAL_STATE"},
		{"precondition", entities.NewDomainError(entities.ErrPreconditionFailed, "x"), http.StatusUnprocessableEntity, "PRECONDITION_FAILED"},
		{"insufficient", entities.NewDomainError(entities.ErrInsufficientStock, "x"), http.StatusConflict, "INSUFFICIENT_STOCK"},
		{"negative", entities.NewDomainError(entities.ErrNegativeStock, "x"), http.StatusConflict, "NEGATIVE_STOCK"},
		{"concurrent", entities.ConcurrentModification("order", "R-1"), http.StatusConflict, "CONCURRENT_MODIFICATION"},
		{"wrapped concurrent", fmt.Errorf("save: %w", entities.ConcurrentModification("order", "R-1")), http.StatusConflict, "CONCURRENT_MODIFICATION"},
		{"exists", entities.NewDomainError(entities.ErrAlreadyExists, "x"), http.StatusConflict, "ALREADY_EXISTS"},
		{"mp payload", usecase.ErrInvalidMPPayload, http.StatusBadRequest, "INVALID_REQUEST"},
		{"mp customer", usecase.ErrPaymentGatewayCustomerNotFound, http.StatusBadRequest, "PAYMENT_PROVIDER_CUSTOMER_NOT_FOUND"},
		{"mp users", usecase.ErrPaymentGatewayInvalidUsers, http.StatusBadRequest, "PAYMENT_PROVIDER_INVALID_USERS"},
		{"unknown", errors.New("boom"), http.StatusInternalServerError, "INTERNAL_ERROR"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := mapWorkflowError(tc.err)
			if got.HTTPStatus != tc.status {
				t.Fatalf("expected %d, got %d", tc.status, got.HTTPStatus)
			}
			if got.Code != tc.code {
				t.Fatalf("expected code %s, got %s", tc.code, got.Code)
			}
		})
	}

	t.Run("domain message is kept", func(t *testing.T) {
		got := mapWorkflowError(entities.ValidationError("quantity must be positive"))
		if got.Message != "quantity must be positive" {
			t.Fatalf("unexpected message %q", got.Message)
		}
	})
}

func TestRequireActor(t *testing.T) {
	r := newRouter()
	r.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, actorFrom(c))
	})

	t.Run("missing header", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/whoami", "", entities.Actor{})
		expectStatus(t, w, http.StatusUnauthorized)
	})

	t.Run("unknown role falls back to standard", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/whoami", "", entities.Actor{ID: "u-2", Role: "admin"})
		expectStatus(t, w, http.StatusOK)
		if w.Body.String() != `{"id":"u-2","role":"standard"}` {
			t.Fatalf("unexpected actor %s", w.Body.String())
		}
	})

	t.Run("privileged", func(t *testing.T) {
		w := serve(r, http.MethodGet, "/whoami", "", supervisor)
		expectStatus(t, w, http.StatusOK)
		if w.Body.String() != `{"id":"boss","role":"privileged"}` {
			t.Fatalf("unexpected actor %s", w.Body.String())
		}
	})
}
