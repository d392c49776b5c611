package router

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

type stubRegistrar struct {
	registered bool
}

func (s *stubRegistrar) RegisterRoutes(rg *gin.RouterGroup) {
	s.registered = true
	rg.GET("/prisons", func(c *gin.Context) {
		c.JSON(http.StatusOK, []string{})
	})
}

func TestRouter_Setup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	registrar := &stubRegistrar{}

	NewRouter(engine).Register(registrar).Setup()

	assert.True(t, registrar.registered)

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/prisons", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_WithBasePath(t *testing.T) {
	gin.SetMode(gin.TestMode)

	engine := gin.New()
	NewRouter(engine, WithBasePath("/registers")).Register(&stubRegistrar{}).Setup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/registers/prisons", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	req, _ = http.NewRequest(http.MethodGet, "/prisons", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDomainGroup(t *testing.T) {
	gin.SetMode(gin.TestMode)

	group := NewDomainGroup("courts", "/courts")
	group.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, []string{})
	})
	group.GET("/id/:courtId", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"courtId": c.Param("courtId")})
	})
	sub := group.Group("types", "/types")
	sub.GET("", func(c *gin.Context) {
		c.JSON(http.StatusOK, []string{"CRN"})
	})

	assert.Equal(t, "courts", group.Name())
	assert.Equal(t, "/courts", group.Prefix())

	engine := gin.New()
	NewRouter(engine).Register(group).Setup()

	for _, path := range []string{"/courts", "/courts/id/SHFCC", "/courts/types"} {
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodGet, path, nil)
		engine.ServeHTTP(w, req)
		assert.Equal(t, http.StatusOK, w.Code, path)
	}
}

func TestDomainGroup_Middleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	group := NewDomainGroup("secured", "/secured")
	group.Use(func(c *gin.Context) {
		c.AbortWithStatus(http.StatusUnauthorized)
	})
	group.GET("/resource", func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	engine := gin.New()
	NewRouter(engine).Register(group).Setup()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/secured/resource", nil)
	engine.ServeHTTP(w, req)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
