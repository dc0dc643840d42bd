package main

import (
	"log"

	_ "repair_workflow/docs"
	"repair_workflow/internal/adapter/http/routes"
	"repair_workflow/internal/infrastructure/config"
	"repair_workflow/internal/infrastructure/logger"

	"go.uber.org/zap"
)

// @title           Repair Workflow API
// @version         1.0
// @description     Repair order workflow: status machine, versioned cost estimates, part reservations, stock ledger and inventory sessions.
// @termsOfService  http://swagger.io/terms/

// @contact.name   API Support
// @contact.url    http://www.swagger.io/support
// @contact.email  support@swagger.io

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8080

// @BasePath  /v1

// @securityDefinitions.apikey ActorID
// @in header
// @name X-Actor-ID
// @description Caller identity set by the gateway. Send X-Actor-Role: privileged for supervisor actions.

func main() {
	cfg := config.Load()

	zl, err := logger.New(cfg.AppEnv)
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	if err := routes.Run(cfg, zl); err != nil {
		zl.Fatal("server stopped with error", zap.Error(err))
	}
}
