package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		for _, k := range []string{"APP_ENV", "PORT", "STORE_BACKEND", "NOTIFIER", "ESTIMATE_VALIDITY_DAYS", "PAYMENT_GATEWAY_MOCK", "MERCADOPAGO_MOCK", "WORKFLOW_TABLE"} {
			t.Setenv(k, "")
		}
		cfg := Load()
		assert.Equal(t, "development", cfg.AppEnv)
		assert.Equal(t, "8080", cfg.Port)
		assert.Equal(t, StoreMemory, cfg.StoreBackend)
		assert.Equal(t, NotifierLog, cfg.Notifier)
		assert.Equal(t, "repair_workflow", cfg.WorkflowTable)
		assert.Equal(t, 30*24*time.Hour, cfg.EstimateValidity)
		assert.False(t, cfg.PaymentGatewayMock)
	})

	t.Run("overrides", func(t *testing.T) {
		t.Setenv("STORE_BACKEND", "Postgres")
		t.Setenv("NOTIFIER", "sns")
		t.Setenv("ESTIMATE_VALIDITY_DAYS", "7")
		t.Setenv("MERCADOPAGO_MOCK", "yes")
		cfg := Load()
		assert.Equal(t, StorePostgres, cfg.StoreBackend)
		assert.Equal(t, NotifierSNS, cfg.Notifier)
		assert.Equal(t, 7*24*time.Hour, cfg.EstimateValidity)
		assert.True(t, cfg.PaymentGatewayMock)
	})

	t.Run("bad integers fall back", func(t *testing.T) {
		t.Setenv("ESTIMATE_VALIDITY_DAYS", "soon")
		assert.Equal(t, 30*24*time.Hour, Load().EstimateValidity)
	})
}
