package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcourt "github.com/registers/backend/internal/application/court"
	"github.com/registers/backend/internal/domain/court"
	"github.com/registers/backend/internal/interfaces/http/middleware"
)

// CourtHandler exposes the court register read and maintenance surfaces
type CourtHandler struct {
	BaseHandler
	service *appcourt.Service
	logger  *zap.Logger
}

// NewCourtHandler creates a new CourtHandler
func NewCourtHandler(service *appcourt.Service, logger *zap.Logger) *CourtHandler {
	return &CourtHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers court register routes
func (h *CourtHandler) RegisterRoutes(rg *gin.RouterGroup) {
	courts := rg.Group("/courts")
	courts.GET("", h.GetCourts)
	courts.GET("/types", h.GetCourtTypes)
	courts.GET("/id/:courtId", h.GetCourt)

	maintenance := rg.Group("/court-maintenance")
	maintenance.Use(middleware.RequireAuthority(middleware.RoleMaintainRefData))
	maintenance.POST("", h.InsertCourt)
	maintenance.PUT("/id/:courtId", h.UpdateCourt)
	maintenance.POST("/id/:courtId/buildings", h.AddBuilding)
}

// GetCourt returns a single register entry by court id
func (h *CourtHandler) GetCourt(c *gin.Context) {
	response, err := h.service.Get(c.Request.Context(), c.Param("courtId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetCourts returns register entries, all of them or only the active ones
func (h *CourtHandler) GetCourts(c *gin.Context) {
	activeOnly := false
	if raw, ok := c.GetQuery("active"); ok {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.BadRequest(c, "Invalid active value")
			return
		}
		activeOnly = parsed
	}

	responses, err := h.service.GetAll(c.Request.Context(), activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses)
}

// GetCourtTypes returns the known court classifications
func (h *CourtHandler) GetCourtTypes(c *gin.Context) {
	types := make([]appcourt.CourtTypeResponse, 0, len(court.AllTypeCodes))
	for _, code := range court.AllTypeCodes {
		types = append(types, appcourt.CourtTypeResponse{
			Code:        code,
			Description: code.Description(),
		})
	}
	c.JSON(http.StatusOK, types)
}

// InsertCourt adds a new register entry
func (h *CourtHandler) InsertCourt(c *gin.Context) {
	var req appcourt.InsertCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	response, err := h.service.Insert(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// UpdateCourt amends an existing register entry
func (h *CourtHandler) UpdateCourt(c *gin.Context) {
	var req appcourt.UpdateCourtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	response, err := h.service.Update(c.Request.Context(), c.Param("courtId"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// AddBuilding adds a building to a register entry
func (h *CourtHandler) AddBuilding(c *gin.Context) {
	var req appcourt.BuildingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	response, err := h.service.AddBuilding(c.Request.Context(), c.Param("courtId"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}
