package handler

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

// SystemHandler serves health, readiness and build info endpoints
type SystemHandler struct {
	BaseHandler
	db        *gorm.DB
	version   string
	startTime time.Time
}

// NewSystemHandler creates a new SystemHandler
func NewSystemHandler(db *gorm.DB, version string) *SystemHandler {
	return &SystemHandler{
		db:        db,
		version:   version,
		startTime: time.Now(),
	}
}

// RegisterRoutes registers system routes
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/health", h.Health)
	rg.GET("/health/ping", h.Ping)
	rg.GET("/health/readiness", h.Ready)
	rg.GET("/info", h.Info)
}

// HealthResponse reports overall service health
type HealthResponse struct {
	Status     string            `json:"status"`
	Components map[string]string `json:"components,omitempty"`
}

// Health reports liveness including the database connection
func (h *SystemHandler) Health(c *gin.Context) {
	components := map[string]string{"db": "UP"}
	status := "UP"
	code := http.StatusOK

	if err := h.pingDB(c); err != nil {
		components["db"] = "DOWN"
		status = "DOWN"
		code = http.StatusServiceUnavailable
	}

	c.JSON(code, HealthResponse{Status: status, Components: components})
}

// Ping is a minimal liveness probe with no dependency checks
func (h *SystemHandler) Ping(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

// Ready reports whether the service can take traffic
func (h *SystemHandler) Ready(c *gin.Context) {
	if err := h.pingDB(c); err != nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "DOWN"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "UP"})
}

// InfoResponse reports build and runtime information
type InfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"goVersion"`
	Uptime    string `json:"uptime"`
}

// Info returns basic build information
func (h *SystemHandler) Info(c *gin.Context) {
	c.JSON(http.StatusOK, InfoResponse{
		Name:      "registers-backend",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	})
}

func (h *SystemHandler) pingDB(c *gin.Context) error {
	if h.db == nil {
		return nil
	}
	sqlDB, err := h.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(c.Request.Context())
}
