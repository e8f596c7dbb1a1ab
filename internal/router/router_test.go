package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"dataset-cutter/internal/handler"
	"dataset-cutter/log"
)

func init() {
	gin.SetMode(gin.TestMode)
	log.InitLogger()
}

func newTestEngine(t *testing.T) *gin.Engine {
	t.Helper()
	t.Setenv("HOME", t.TempDir())

	engine := gin.New()
	SetupRouter(engine, handler.NewHandler())
	return engine
}

func TestRouterServesRoot(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestRouterWiresAPIRoutes(t *testing.T) {
	engine := newTestEngine(t)

	for _, route := range []string{
		"/api/ping",
		"/api/settings",
		"/api/videos",
		"/api/labels",
		"/api/repair/status",
	} {
		rec := httptest.NewRecorder()
		engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, route, nil))
		require.Equal(t, http.StatusOK, rec.Code, "route %s", route)

		var envelope map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope), "route %s", route)
		assert.Contains(t, envelope, "error", "route %s", route)
	}
}

func TestRouterUnknownRoute(t *testing.T) {
	engine := newTestEngine(t)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/nope", nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
