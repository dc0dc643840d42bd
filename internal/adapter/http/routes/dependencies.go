package routes

import (
	"context"
	"fmt"

	"repair_workflow/internal/adapter/persistence/memory"
	"repair_workflow/internal/adapter/persistence/postgres"
	"repair_workflow/internal/adapter/persistence/repository"
	"repair_workflow/internal/infrastructure/config"
	"repair_workflow/internal/infrastructure/database"
	"repair_workflow/internal/infrastructure/notifier"
	"repair_workflow/internal/infrastructure/payments"
	"repair_workflow/internal/usecase/interfaces"

	"go.uber.org/zap"
)

// Dependencies are the adapters selected by configuration.
type Dependencies struct {
	Store          interfaces.IWorkflowStore
	Notifier       interfaces.INotifier
	PaymentGateway interfaces.IPaymentGateway

	closers []func() error
	log     *zap.Logger
}

func (d *Dependencies) close() {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			d.log.Warn("close dependency", zap.Error(err))
		}
	}
}

func buildDependencies(ctx context.Context, cfg *config.Config, log *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{log: log}

	store, err := newStore(ctx, cfg, log, deps)
	if err != nil {
		deps.close()
		return nil, err
	}
	deps.Store = store

	n, err := newNotifier(ctx, cfg, log, deps)
	if err != nil {
		deps.close()
		return nil, err
	}
	deps.Notifier = n

	// A missing gateway is not fatal: fee collection answers 503 until configured.
	mpGateway, err := payments.NewMercadoPagoGateway(cfg.MercadoPagoAccessToken, cfg.PaymentGatewayMock, log)
	if err != nil {
		log.Warn("mercado pago gateway not configured", zap.Error(err))
	} else {
		deps.PaymentGateway = mpGateway
	}

	return deps, nil
}

func newStore(ctx context.Context, cfg *config.Config, log *zap.Logger, deps *Dependencies) (interfaces.IWorkflowStore, error) {
	switch cfg.StoreBackend {
	case config.StoreMemory:
		log.Warn("using in-memory store, data is lost on restart")
		return memory.NewStore(), nil

	case config.StoreDynamoDB:
		ddb, err := database.ConnectDynamoDB(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("connect dynamodb: %w", err)
		}
		return repository.NewWorkflowDynamoStore(ddb, cfg.WorkflowTable, log), nil

	case config.StorePostgres:
		db, err := database.ConnectPostgres(cfg.DatabaseURL, log, postgres.Models()...)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		deps.closers = append(deps.closers, func() error { return database.ClosePostgres(db) })
		return postgres.NewStore(db), nil
	}
	return nil, fmt.Errorf("unknown STORE_BACKEND %q", cfg.StoreBackend)
}

func newNotifier(ctx context.Context, cfg *config.Config, log *zap.Logger, deps *Dependencies) (interfaces.INotifier, error) {
	switch cfg.Notifier {
	case config.NotifierLog:
		return notifier.NewLogNotifier(log), nil

	case config.NotifierSNS:
		awsCfg, err := database.NewAWSConfig(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return notifier.NewSNSNotifierFromConfig(awsCfg, cfg.SNSTopicARN, log), nil

	case config.NotifierRedis:
		client, err := database.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		deps.closers = append(deps.closers, client.Close)
		return notifier.NewRedisNotifier(client, cfg.RedisChannel), nil
	}
	return nil, fmt.Errorf("unknown NOTIFIER %q", cfg.Notifier)
}
