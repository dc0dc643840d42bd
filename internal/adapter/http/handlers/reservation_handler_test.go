package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"repair_workflow/internal/adapter/http/handlers/mocks"
	"repair_workflow/internal/domain/entities"
	"repair_workflow/internal/usecase"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"go.uber.org/mock/gomock"
)

func reservationRouter(t *testing.T) (*gin.Engine, *mocks.MockIPartReservationUseCase) {
	ctrl := gomock.NewController(t)
	uc := mocks.NewMockIPartReservationUseCase(ctrl)
	h := NewReservationHandler(uc)

	r := newRouter()
	r.POST("/v1/orders/:number/reservations", h.BookPart)
	r.GET("/v1/orders/:number/reservations", h.ListReservations)
	r.POST("/v1/orders/:number/reservations/:id/approve", h.ApproveReservation)
	r.POST("/v1/orders/:number/reservations/:id/reject", h.RejectReservation)
	r.DELETE("/v1/orders/:number/reservations/:id", h.RemoveReservation)
	r.GET("/v1/orders/:number/candidate-parts", h.CandidatePartsForOrder)
	r.GET("/v1/candidate-parts", h.CandidateParts)
	return r, uc
}

func sampleReservation(status entities.ReservationStatus) usecase.ReservationOutcome {
	return usecase.ReservationOutcome{
		Reservation: entities.PartUsageReservation{
			ID: "res-1", OrderNumber: "R-1", PartID: "p-1", Quantity: 2,
			UnitPurchasePrice: decimal.RequireFromString("4"), UnitSalePrice: decimal.RequireFromString("9.9"),
			Status: status, BookedBy: "u-1",
		},
		Part: entities.Part{ID: "p-1", Name: "Screen", OnHand: 3, Active: true},
	}
}

func TestReservationHandler_BookPart(t *testing.T) {
	t.Run("part id is required", func(t *testing.T) {
		r, _ := reservationRouter(t)
		w := serve(r, http.MethodPost, "/v1/orders/R-1/reservations", `{"quantity":1}`, staff)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("insufficient stock", func(t *testing.T) {
		r, uc := reservationRouter(t)
		uc.EXPECT().Book(gomock.Any(), "R-1", "p-1", 5, "", staff).
			Return(usecase.ReservationOutcome{}, entities.NewDomainError(entities.ErrInsufficientStock, "part %q has 3 on hand", "p-1"))

		w := serve(r, http.MethodPost, "/v1/orders/R-1/reservations", `{"part_id":" p-1 ","quantity":5}`, staff)
		expectStatus(t, w, http.StatusConflict)
	})

	t.Run("success", func(t *testing.T) {
		r, uc := reservationRouter(t)
		uc.EXPECT().Book(gomock.Any(), "R-1", "p-1", 2, "cracked", staff).Return(sampleReservation(entities.ReservationPending), nil)

		w := serve(r, http.MethodPost, "/v1/orders/R-1/reservations", `{"part_id":"p-1","quantity":2,"reason":"cracked"}`, staff)
		expectStatus(t, w, http.StatusCreated)
	})
}

func TestReservationHandler_Decisions(t *testing.T) {
	t.Run("approve needs privileged actor", func(t *testing.T) {
		r, uc := reservationRouter(t)
		uc.EXPECT().Approve(gomock.Any(), "R-1", "res-1", staff).
			Return(usecase.ReservationOutcome{}, entities.NewDomainError(entities.ErrPermissionDenied, "approving a booking requires a privileged actor"))

		w := serve(r, http.MethodPost, "/v1/orders/R-1/reservations/res-1/approve", "", staff)
		expectStatus(t, w, http.StatusForbidden)
	})

	t.Run("approve", func(t *testing.T) {
		r, uc := reservationRouter(t)
		uc.EXPECT().Approve(gomock.Any(), "R-1", "res-1", supervisor).Return(sampleReservation(entities.ReservationApproved), nil)

		w := serve(r, http.MethodPost, "/v1/orders/R-1/reservations/res-1/approve", "", supervisor)
		expectStatus(t, w, http.StatusOK)
	})

	t.Run("reject with reason", func(t *testing.T) {
		r, uc := reservationRouter(t)
		uc.EXPECT().Reject(gomock.Any(), "R-1", "res-1", supervisor, "wrong model").Return(sampleReservation(entities.ReservationRejected), nil)

		w := serve(r, http.MethodPost, "/v1/orders/R-1/reservations/res-1/reject", `{"reason":"wrong model"}`, supervisor)
		expectStatus(t, w, http.StatusOK)
	})

	t.Run("reject bad body", func(t *testing.T) {
		r, _ := reservationRouter(t)
		w := serve(r, http.MethodPost, "/v1/orders/R-1/reservations/res-1/reject", `{"reason":`, supervisor)
		expectStatus(t, w, http.StatusBadRequest)
	})

	t.Run("remove decided booking", func(t *testing.T) {
		r, uc := reservationRouter(t)
		uc.EXPECT().Remove(gomock.Any(), "R-1", "res-1", staff).
			Return(usecase.ReservationOutcome{}, entities.InvalidTransition("reservation is already removed"))

		w := serve(r, http.MethodDelete, "/v1/orders/R-1/reservations/res-1", "", staff)
		expectStatus(t, w, http.StatusConflict)
	})

	t.Run("list", func(t *testing.T) {
		r, uc := reservationRouter(t)
		uc.EXPECT().ListByOrder(gomock.Any(), "R-1").Return([]entities.PartUsageReservation{sampleReservation(entities.ReservationPending).Reservation}, nil)

		w := serve(r, http.MethodGet, "/v1/orders/R-1/reservations", "", staff)
		expectStatus(t, w, http.StatusOK)
	})
}

func TestReservationHandler_CandidateParts(t *testing.T) {
	groups := usecase.CandidateGroups{
		ModelSpecific: []entities.Part{{ID: "p-1", Manufacturer: "Acme", Model: "X1", Active: true}},
		Generic:       []entities.Part{{ID: "p-9", Active: true}},
	}

	t.Run("by order", func(t *testing.T) {
		r, uc := reservationRouter(t)
		uc.EXPECT().CandidatePartsForOrder(gomock.Any(), "R-1").Return(groups, nil)

		w := serve(r, http.MethodGet, "/v1/orders/R-1/candidate-parts", "", staff)
		expectStatus(t, w, http.StatusOK)
	})

	t.Run("by device", func(t *testing.T) {
		r, uc := reservationRouter(t)
		uc.EXPECT().CandidateParts(gomock.Any(), "Acme", "X1").Return(groups, nil)

		w := serve(r, http.MethodGet, "/v1/candidate-parts?manufacturer=Acme&model=X1", "", staff)
		expectStatus(t, w, http.StatusOK)

		var body map[string]any
		if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
			t.Fatalf("invalid json: %v", err)
		}
		if g, ok := body["manufacturer_wide"].([]any); !ok || len(g) != 0 {
			t.Fatalf("expected empty manufacturer_wide group, got %v", body["manufacturer_wide"])
		}
	})
}
