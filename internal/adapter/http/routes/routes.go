package routes

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "repair_workflow/docs"
	"repair_workflow/internal/adapter/http/handlers"
	"repair_workflow/internal/infrastructure/clock"
	"repair_workflow/internal/infrastructure/config"
	"repair_workflow/internal/infrastructure/logger"
	"repair_workflow/internal/usecase"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

const shutdownTimeout = 10 * time.Second

// Run will start the server and block until SIGINT or SIGTERM.
func Run(cfg *config.Config, log *zap.Logger) error {
	ctx := context.Background()

	deps, err := buildDependencies(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer deps.close()

	if cfg.AppEnv == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := NewRouter(cfg, deps, log)

	srv := &http.Server{Addr: ":" + cfg.Port, Handler: router}
	go func() {
		log.Info("server starting", zap.String("port", cfg.Port), zap.String("store", cfg.StoreBackend), zap.String("notifier", cfg.Notifier))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal("failed to startup the application", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}

// NewRouter builds the engine with every workflow route registered.
func NewRouter(cfg *config.Config, deps *Dependencies, log *zap.Logger) *gin.Engine {
	router := gin.New()
	setMiddlewares(router, log)

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	sys := clock.System{}
	ledger := usecase.NewStockLedger(deps.Store, sys, log)

	orderHandler := handlers.NewOrderHandler(usecase.NewOrderUseCase(deps.Store, sys, deps.Notifier, log))
	estimateHandler := handlers.NewEstimateHandler(usecase.NewCostEstimateUseCase(deps.Store, sys, deps.Notifier, cfg.EstimateValidity, log))
	feeHandler := handlers.NewFeePaymentHandler(usecase.NewFeePaymentUseCase(deps.Store, sys, deps.PaymentGateway, usecase.FeeGatewaySettings{
		Mock:            cfg.PaymentGatewayMock,
		AccessToken:     cfg.MercadoPagoAccessToken,
		TestPayerEmail:  cfg.TestPayerEmail,
		TestPayerUserID: cfg.TestPayerUserID,
	}, log), cfg.PaymentGatewayMock, log)
	reservationHandler := handlers.NewReservationHandler(usecase.NewPartReservationUseCase(deps.Store, sys, ledger, deps.Notifier, log))
	partHandler := handlers.NewPartHandler(usecase.NewPartCatalogUseCase(deps.Store, sys, ledger, log), ledger)
	sessionHandler := handlers.NewInventorySessionHandler(usecase.NewInventorySessionUseCase(deps.Store, sys, ledger, log))

	v1 := router.Group("/v1")
	addPingRoutes(v1)

	// Workflow routes need the caller identity
	workflow := v1.Group("", handlers.RequireActor())
	addOrderRoutes(workflow, orderHandler, estimateHandler, feeHandler, reservationHandler)
	addPartRoutes(workflow, partHandler, reservationHandler)
	addInventoryRoutes(workflow, sessionHandler)

	return router
}

func setMiddlewares(router *gin.Engine, log *zap.Logger) {
	router.Use(logger.RequestLogger(log))
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered any) {
		log.Error("recovered from panic", zap.Any("panic", recovered), zap.String("path", c.Request.URL.Path))
		c.AbortWithStatus(http.StatusInternalServerError)
	}))
}
