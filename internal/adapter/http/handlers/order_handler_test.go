package handlers

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"repair_workflow/internal/adapter/http/handlers/mocks"
	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func orderRouter(t *testing.T) (*gin.Engine, *mocks.MockIOrderUseCase) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIOrderUseCase(ctrl)
	h := NewOrderHandler(uc)

	r := newRouter()
	r.POST("/v1/orders", h.CreateOrder)
	r.GET("/v1/orders/:number", h.GetOrder)
	r.POST("/v1/orders/:number/transitions", h.TransitionStatus)
	r.PUT("/v1/orders/:number/technician", h.AssignTechnician)
	r.PUT("/v1/orders/:number/checklist", h.SetChecklist)
	r.PATCH("/v1/orders/:number/checklist", h.CheckItem)
	return r, uc
}

func TestOrderHandler_CreateOrder(t *testing.T) {
	t.Run("invalid json", func(t *testing.T) {
		r, _ := orderRouter(t)
		w := serve(r, http.MethodPost, "/v1/orders", `{"location":`, staff)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("duplicate number", func(t *testing.T) {
		r, uc := orderRouter(t)
		uc.EXPECT().CreateOrder(gomock.Any(), gomock.Any(), staff).
			Return(usecase.OrderView{}, entities.NewDomainError(entities.ErrAlreadyExists, "order %q", "R-1"))

		w := serve(r, http.MethodPost, "/v1/orders", `{"number":"R-1"}`, staff)
		expectStatus(t, w, http.StatusConflict)
	})

	t.Run("success", func(t *testing.T) {
		r, uc := orderRouter(t)
		now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		uc.EXPECT().CreateOrder(gomock.Any(), usecase.IntakeInput{Number: "R-1", DeviceManufacturer: "Acme", DeviceModel: "X1"}, staff).
			Return(usecase.OrderView{
				Order:   entities.Order{Number: "R-1", Status: entities.OrderStatusReceived, DeviceManufacturer: "Acme", DeviceModel: "X1", CreatedAt: now, UpdatedAt: now},
				History: []entities.StatusHistoryEntry{{ID: "h-1", OrderNumber: "R-1", NewStatus: entities.OrderStatusReceived, ActorID: "u-1", At: now}},
			}, nil)

		w := serve(r, http.MethodPost, "/v1/orders", `{"number":" R-1 ","device_manufacturer":"Acme","device_model":"X1"}`, staff)
		expectStatus(t, w, http.StatusCreated)

		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if body["status"] != "received" {
			t.Fatalf("expected status received, got %v", body["status"])
		}
		if h, ok := body["history"].([]any); !ok || len(h) != 1 {
			t.Fatalf("expected one history entry, got %v", body["history"])
		}
	})
}

func TestOrderHandler_GetOrder(t *testing.T) {
	r, uc := orderRouter(t)
	uc.EXPECT().GetOrder(gomock.Any(), "R-404").Return(usecase.OrderView{}, entities.NotFound("order", "R-404"))

	w := serve(r, http.MethodGet, "/v1/orders/R-404", "", staff)
	expectStatus(t, w, http.StatusNotFound)
}

func TestOrderHandler_TransitionStatus(t *testing.T) {
	t.Run("missing status", func(t *testing.T) {
		r, _ := orderRouter(t)
		w := serve(r, http.MethodPost, "/v1/orders/R-1/transitions", `{}`, staff)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("backward without note", func(t *testing.T) {
		r, uc := orderRouter(t)
		uc.EXPECT().Transition(gomock.Any(), "R-1", entities.OrderStatusDiagnosing, staff, "").
			Return(usecase.TransitionOutcome{}, entities.NewDomainError(entities.ErrJustificationRequired, "backward transition needs a note"))

		w := serve(r, http.MethodPost, "/v1/orders/R-1/transitions", `{"status":"diagnosing"}`, staff)
		expectStatus(t, w, http.StatusUnprocessableEntity)
	})

	t.Run("terminal order", func(t *testing.T) {
		r, uc := orderRouter(t)
		uc.EXPECT().Transition(gomock.Any(), "R-1", entities.OrderStatusRepairing, staff, "").
			Return(usecase.TransitionOutcome{}, entities.NewDomainError(entities.ErrTerminalState, "order is cancelled"))

		w := serve(r, http.MethodPost, "/v1/orders/R-1/transitions", `{"status":"REPAIRING"}`, staff)
		expectStatus(t, w, http.StatusConflict)
	})

	t.Run("success", func(t *testing.T) {
		r, uc := orderRouter(t)
		now := time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)
		uc.EXPECT().Transition(gomock.Any(), "R-1", entities.OrderStatusDiagnosing, staff, "bench").
			Return(usecase.TransitionOutcome{
				Order: entities.Order{Number: "R-1", Status: entities.OrderStatusDiagnosing, CreatedAt: now, UpdatedAt: now},
				Entry: entities.StatusHistoryEntry{ID: "h-2", OrderNumber: "R-1", OldStatus: entities.OrderStatusReceived, NewStatus: entities.OrderStatusDiagnosing, ActorID: "u-1", Note: "bench", At: now},
			}, nil)

		w := serve(r, http.MethodPost, "/v1/orders/R-1/transitions", `{"status":"diagnosing","note":"bench"}`, staff)
		expectStatus(t, w, http.StatusOK)
	})
}

func TestOrderHandler_Checklist(t *testing.T) {
	t.Run("assign technician", func(t *testing.T) {
		r, uc := orderRouter(t)
		uc.EXPECT().AssignTechnician(gomock.Any(), "R-1", "tech-7", staff).Return(entities.Order{Number: "R-1", TechnicianID: "tech-7"}, nil)

		w := serve(r, http.MethodPut, "/v1/orders/R-1/technician", `{"technician_id":"tech-7"}`, staff)
		expectStatus(t, w, http.StatusOK)
	})

	t.Run("set checklist", func(t *testing.T) {
		r, uc := orderRouter(t)
		uc.EXPECT().SetChecklist(gomock.Any(), "R-1", []string{"screen", "battery"}, staff).Return(entities.Order{Number: "R-1"}, nil)

		w := serve(r, http.MethodPut, "/v1/orders/R-1/checklist", `{"labels":["screen","battery"]}`, staff)
		expectStatus(t, w, http.StatusOK)
	})

	t.Run("check unknown item", func(t *testing.T) {
		r, uc := orderRouter(t)
		uc.EXPECT().CheckItem(gomock.Any(), "R-1", "camera", true, staff).Return(entities.Order{}, entities.NotFound("checklist item", "camera"))

		w := serve(r, http.MethodPatch, "/v1/orders/R-1/checklist", `{"label":"camera","checked":true}`, staff)
		expectStatus(t, w, http.StatusNotFound)
	})
}
