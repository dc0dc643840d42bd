package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"repair_workflow/internal/adapter/http/handlers/mocks"
	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func feeRouter(t *testing.T, mockMode bool) (*gin.Engine, *mocks.MockIFeePaymentUseCase) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIFeePaymentUseCase(ctrl)
	h := NewFeePaymentHandler(uc, mockMode, nil)

	r := newRouter()
	r.POST("/v1/orders/:number/estimates/:version/fee-payments", h.CollectFee)
	r.GET("/v1/orders/:number/estimates/:version/fee-payments", h.ListFeePayments)
	return r, uc
}

func sampleCollection() usecase.FeeCollection {
	now := time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)
	return usecase.FeeCollection{
		Payment: entities.FeePayment{
			ID: "pay-1", OrderNumber: "R-1", EstimateVersion: 1, Amount: decimal.RequireFromString("25"),
			Date: now, Status: entities.PaymentStatusApproved,
		},
		Estimate: entities.CostEstimate{OrderNumber: "R-1", Version: 1, FeeStatus: entities.FeeStatusPaid, CreatedAt: now, UpdatedAt: now},
	}
}

func TestFeePaymentHandler_CollectFee(t *testing.T) {
	t.Run("invalid version", func(t *testing.T) {
		r, _ := feeRouter(t, false)
		w := serve(r, http.MethodPost, "/v1/orders/R-1/estimates/0/fee-payments", `{}`, staff)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("invalid payload", func(t *testing.T) {
		r, _ := feeRouter(t, false)
		w := serve(r, http.MethodPost, "/v1/orders/R-1/estimates/1/fee-payments", `{"mp_payload":`, staff)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("invalid payload in mock mode falls back to empty", func(t *testing.T) {
		r, uc := feeRouter(t, true)
		uc.EXPECT().CollectFee(gomock.Any(), "R-1", 1, json.RawMessage("{}"), staff).Return(sampleCollection(), nil)

		w := serve(r, http.MethodPost, "/v1/orders/R-1/estimates/1/fee-payments", `{"mp_payload":`, staff)
		expectStatus(t, w, http.StatusOK)
	})

	t.Run("no fee due", func(t *testing.T) {
		r, uc := feeRouter(t, false)
		uc.EXPECT().CollectFee(gomock.Any(), "R-1", 1, gomock.Any(), staff).
			Return(usecase.FeeCollection{}, entities.NewDomainError(entities.ErrPreconditionFailed, "no fee is due"))

		w := serve(r, http.MethodPost, "/v1/orders/R-1/estimates/1/fee-payments", `{"mp_payload":{"payment_method_id":"pix"}}`, staff)
		expectStatus(t, w, http.StatusUnprocessableEntity)
	})

	t.Run("gateway not configured", func(t *testing.T) {
		r, uc := feeRouter(t, false)
		uc.EXPECT().CollectFee(gomock.Any(), "R-1", 1, gomock.Any(), staff).Return(usecase.FeeCollection{}, usecase.ErrPaymentGatewayNotConfigured)

		w := serve(r, http.MethodPost, "/v1/orders/R-1/estimates/1/fee-payments", `{}`, staff)
		expectStatus(t, w, http.StatusServiceUnavailable)
	})

	t.Run("gateway unauthorized", func(t *testing.T) {
		r, uc := feeRouter(t, false)
		uc.EXPECT().CollectFee(gomock.Any(), "R-1", 1, gomock.Any(), staff).Return(usecase.FeeCollection{}, usecase.ErrPaymentGatewayUnauthorized)

		w := serve(r, http.MethodPost, "/v1/orders/R-1/estimates/1/fee-payments", `{}`, staff)
		expectStatus(t, w, http.StatusBadGateway)
	})

	t.Run("success unwraps mp_payload", func(t *testing.T) {
		r, uc := feeRouter(t, false)
		uc.EXPECT().CollectFee(gomock.Any(), "R-1", 1, json.RawMessage(`{"payment_method_id":"pix"}`), staff).Return(sampleCollection(), nil)

		w := serve(r, http.MethodPost, "/v1/orders/R-1/estimates/1/fee-payments", `{"mp_payload":{"payment_method_id":"pix"}}`, staff)
		expectStatus(t, w, http.StatusOK)
	})
}

func TestFeePaymentHandler_ListFeePayments(t *testing.T) {
	t.Run("none yet", func(t *testing.T) {
		r, uc := feeRouter(t, false)
		uc.EXPECT().ListPayments(gomock.Any(), "R-1", 1).Return(nil, nil)

		w := serve(r, http.MethodGet, "/v1/orders/R-1/estimates/1/fee-payments", "", staff)
		expectStatus(t, w, http.StatusNotFound)
	})

	t.Run("success", func(t *testing.T) {
		r, uc := feeRouter(t, false)
		uc.EXPECT().ListPayments(gomock.Any(), "R-1", 1).Return([]entities.FeePayment{sampleCollection().Payment}, nil)

		w := serve(r, http.MethodGet, "/v1/orders/R-1/estimates/1/fee-payments", "", staff)
		expectStatus(t, w, http.StatusOK)
	})
}

type failingReadCloser struct{}

func (failingReadCloser) Read(_ []byte) (int, error) { return 0, errors.New("read failed") }
func (failingReadCloser) Close() error               { return nil }

func TestReadMPPayload(t *testing.T) {
	gin.SetMode(gin.TestMode)

	read := func(body string) (json.RawMessage, error) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", bytes.NewBufferString(body))
		return readMPPayload(c)
	}

	t.Run("empty body", func(t *testing.T) {
		got, err := read("  ")
		if err != nil || string(got) != "{}" {
			t.Fatalf("expected {}, got %s (%v)", got, err)
		}
	})

	t.Run("bare payload", func(t *testing.T) {
		got, err := read(`{"token":"abc"}`)
		if err != nil || string(got) != `{"token":"abc"}` {
			t.Fatalf("unexpected payload %s (%v)", got, err)
		}
	})

	t.Run("null wrapped payload", func(t *testing.T) {
		if _, err := read(`{"mp_payload":null}`); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("not json", func(t *testing.T) {
		if _, err := read(`token=abc`); err == nil {
			t.Fatalf("expected error")
		}
	})

	t.Run("read error", func(t *testing.T) {
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		c.Request = httptest.NewRequest(http.MethodPost, "/", nil)
		c.Request.Body = failingReadCloser{}
		if _, err := readMPPayload(c); err == nil {
			t.Fatalf("expected error")
		}
	})
}
