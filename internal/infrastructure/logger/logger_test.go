package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestRequestLogger(t *testing.T) {
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusOK) })
	r.GET("/missing", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	t.Run("keeps caller request id", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/ok?x=1", nil)
		req.Header.Set("X-Request-ID", "req-42")
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "req-42", w.Header().Get("X-Request-ID"))
		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.InfoLevel, entries[0].Level)
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-42", fields["request_id"])
		assert.Equal(t, "x=1", fields["query"])
		assert.EqualValues(t, http.StatusOK, fields["status"])
	})

	t.Run("client errors log at warn", func(t *testing.T) {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/missing", nil))

		assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
		entries := logs.TakeAll()
		require.Len(t, entries, 1)
		assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	})
}

func TestNew(t *testing.T) {
	for _, env := range []string{"production", "development"} {
		t.Run(env, func(t *testing.T) {
			log, err := New(env)
			require.NoError(t, err)
			assert.NotNil(t, log)
		})
	}
}
