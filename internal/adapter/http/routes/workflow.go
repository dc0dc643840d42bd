package routes

import (
	"repair_workflow/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathOrders            = "/orders"
	PathParts             = "/parts"
	PathCandidateParts    = "/candidate-parts"
	PathInventorySessions = "/inventory-sessions"
)

func addOrderRoutes(
	rg *gin.RouterGroup,
	orderHandler *handlers.OrderHandler,
	estimateHandler *handlers.EstimateHandler,
	feeHandler *handlers.FeePaymentHandler,
	reservationHandler *handlers.ReservationHandler,
) {
	orders := rg.Group(PathOrders)
	{
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/:number", orderHandler.GetOrder)
		orders.POST("/:number/transitions", orderHandler.TransitionStatus)
		orders.PUT("/:number/technician", orderHandler.AssignTechnician)
		orders.PUT("/:number/checklist", orderHandler.SetChecklist)
		orders.PATCH("/:number/checklist", orderHandler.CheckItem)
	}

	estimates := orders.Group("/:number/estimates")
	{
		estimates.POST("", estimateHandler.CreateEstimate)
		estimates.GET("", estimateHandler.ListEstimates)
		estimates.GET("/:version", estimateHandler.GetEstimate)
		estimates.GET("/:version/history", estimateHandler.GetEstimateHistory)
		estimates.POST("/:version/send", estimateHandler.SendEstimate)
		estimates.POST("/:version/remind", estimateHandler.RemindEstimate)
		estimates.POST("/:version/decision", estimateHandler.RecordDecision)
		estimates.POST("/:version/waive-fee", estimateHandler.WaiveFee)
		estimates.POST("/:version/release-price", estimateHandler.ReleasePrice)

		estimates.POST("/:version/fee-payments", feeHandler.CollectFee)
		estimates.GET("/:version/fee-payments", feeHandler.ListFeePayments)
	}

	reservations := orders.Group("/:number/reservations")
	{
		reservations.POST("", reservationHandler.BookPart)
		reservations.GET("", reservationHandler.ListReservations)
		reservations.POST("/:id/approve", reservationHandler.ApproveReservation)
		reservations.POST("/:id/reject", reservationHandler.RejectReservation)
		reservations.DELETE("/:id", reservationHandler.RemoveReservation)
	}
	orders.GET("/:number"+PathCandidateParts, reservationHandler.CandidatePartsForOrder)
}

func addPartRoutes(rg *gin.RouterGroup, partHandler *handlers.PartHandler, reservationHandler *handlers.ReservationHandler) {
	parts := rg.Group(PathParts)
	{
		parts.POST("", partHandler.RegisterPart)
		parts.GET("", partHandler.ListParts)
		parts.GET("/:id", partHandler.GetPart)
		parts.POST("/:id/receipts", partHandler.ReceiveStock)
		parts.PUT("/:id/prices", partHandler.UpdatePrices)
		parts.PUT("/:id/active", partHandler.SetActive)
		parts.GET("/:id/movements", partHandler.ListMovements)
		parts.GET("/:id/balance", partHandler.VerifyBalance)
	}
	rg.GET(PathCandidateParts, reservationHandler.CandidateParts)
}

func addInventoryRoutes(rg *gin.RouterGroup, sessionHandler *handlers.InventorySessionHandler) {
	sessions := rg.Group(PathInventorySessions)
	{
		sessions.POST("", sessionHandler.StartSession)
		sessions.GET("/:id", sessionHandler.GetSession)
		sessions.PUT("/:id/counts/:part_id", sessionHandler.RecordCount)
		sessions.POST("/:id/submit", sessionHandler.SubmitSession)
		sessions.POST("/:id/approve", sessionHandler.ApproveSession)
		sessions.POST("/:id/reject", sessionHandler.RejectSession)
	}
}
