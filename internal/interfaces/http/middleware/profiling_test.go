package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"github.com/registers/backend/internal/interfaces/http/middleware"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func TestDefaultProfilingConfig(t *testing.T) {
	cfg := middleware.DefaultProfilingConfig()

	assert.True(t, cfg.Enabled)
	assert.Contains(t, cfg.SkipPaths, "/health")
	assert.Contains(t, cfg.SkipPaths, "/health/ping")
	assert.Contains(t, cfg.SkipPaths, "/health/readiness")
	assert.Contains(t, cfg.SkipPaths, "/info")
}

func profilingTestRouter(mw gin.HandlerFunc) *gin.Engine {
	router := gin.New()
	router.Use(mw)
	router.GET("/prisons/id/:prisonId", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"prisonId": c.Param("prisonId")})
	})
	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "UP"})
	})
	return router
}

func TestProfilingMiddleware_Enabled(t *testing.T) {
	router := profilingTestRouter(middleware.Profiling())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/prisons/id/MDI", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfilingMiddleware_Disabled(t *testing.T) {
	router := profilingTestRouter(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
		Enabled: false,
	}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/prisons/id/MDI", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfilingMiddleware_SkipsHealthPath(t *testing.T) {
	router := profilingTestRouter(middleware.Profiling())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/health", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfilingMiddleware_SkipPathPrefix(t *testing.T) {
	router := profilingTestRouter(middleware.ProfilingWithConfig(middleware.ProfilingConfig{
		Enabled:          true,
		SkipPathPrefixes: []string{"/prisons"},
	}))

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/prisons/id/MDI", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestProfilingMiddleware_UnmatchedRoute(t *testing.T) {
	router := profilingTestRouter(middleware.Profiling())

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/no-such-route", nil)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusNotFound, w.Code)
}
