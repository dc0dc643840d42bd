package handlers

import (
	"bytes"
	"io"
	"net/http/httptest"
	"testing"

	"repair_workflow/internal/domain/entities"

	"github.com/gin-gonic/gin"
)

var (
	staff      = entities.Actor{ID: "u-1", Role: entities.RoleStandard}
	supervisor = entities.Actor{ID: "boss", Role: entities.RolePrivileged}
)

func newRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequireActor())
	return r
}

func serve(r *gin.Engine, method, path, body string, actor entities.Actor) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = bytes.NewBufferString(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if actor.ID != "" {
		req.Header.Set(HeaderActorID, actor.ID)
		req.Header.Set(HeaderActorRole, string(actor.Role))
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func expectStatus(t testing.TB, w *httptest.ResponseRecorder, want int) {
	t.Helper()
	if w.Code != want {
		t.Fatalf("expected %d, got %d (%s)", want, w.Code, w.Body.String())
	}
}
