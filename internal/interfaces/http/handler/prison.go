package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	appprison "github.com/registers/backend/internal/application/prison"
	"github.com/registers/backend/internal/interfaces/http/middleware"
)

// PrisonHandler exposes the prison register read surface and the
// maintenance surface for reference data updates.
type PrisonHandler struct {
	BaseHandler
	service *appprison.Service
	logger  *zap.Logger
}

// NewPrisonHandler creates a new PrisonHandler
func NewPrisonHandler(service *appprison.Service, logger *zap.Logger) *PrisonHandler {
	return &PrisonHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers prison register routes
func (h *PrisonHandler) RegisterRoutes(rg *gin.RouterGroup) {
	prisons := rg.Group("/prisons")
	prisons.GET("", h.GetPrisons)
	prisons.GET("/search", h.SearchPrisons)
	prisons.GET("/id/:prisonId", h.GetPrison)

	maintenance := rg.Group("/prison-maintenance")
	maintenance.Use(middleware.RequireAuthority(middleware.RoleMaintainRefData))
	maintenance.POST("", h.InsertPrison)
	maintenance.PUT("/id/:prisonId", h.UpdatePrison)
	maintenance.POST("/id/:prisonId/address", h.AddAddress)
	maintenance.PUT("/id/:prisonId/address/:addressId", h.AmendAddress)
	maintenance.DELETE("/id/:prisonId/address/:addressId", h.DeleteAddress)
}

// GetPrison returns a single register entry by prison id
func (h *PrisonHandler) GetPrison(c *gin.Context) {
	response, err := h.service.Get(c.Request.Context(), c.Param("prisonId"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// GetPrisons returns every register entry ordered by prison id
func (h *PrisonHandler) GetPrisons(c *gin.Context) {
	responses, err := h.service.GetAll(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses)
}

// SearchPrisons returns register entries matching the filter parameters
func (h *PrisonHandler) SearchPrisons(c *gin.Context) {
	var req appprison.SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		h.BadRequest(c, "Invalid search parameters")
		return
	}

	responses, err := h.service.Search(c.Request.Context(), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, responses)
}

// InsertPrison adds a new register entry
func (h *PrisonHandler) InsertPrison(c *gin.Context) {
	var req appprison.InsertPrisonRequest
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

// UpdatePrison amends an existing register entry
func (h *PrisonHandler) UpdatePrison(c *gin.Context) {
	var req appprison.UpdatePrisonRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	response, err := h.service.Update(c.Request.Context(), c.Param("prisonId"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// AddAddress adds a postal address to a register entry
func (h *PrisonHandler) AddAddress(c *gin.Context) {
	var req appprison.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	response, err := h.service.AddAddress(c.Request.Context(), c.Param("prisonId"), req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// AmendAddress replaces an existing postal address
func (h *PrisonHandler) AmendAddress(c *gin.Context) {
	addressID, err := uuid.Parse(c.Param("addressId"))
	if err != nil {
		h.BadRequest(c, "Invalid address id")
		return
	}

	var req appprison.AddressRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	response, err := h.service.AmendAddress(c.Request.Context(), c.Param("prisonId"), addressID, req)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// DeleteAddress removes a postal address from a register entry
func (h *PrisonHandler) DeleteAddress(c *gin.Context) {
	addressID, err := uuid.Parse(c.Param("addressId"))
	if err != nil {
		h.BadRequest(c, "Invalid address id")
		return
	}

	if err := h.service.DeleteAddress(c.Request.Context(), c.Param("prisonId"), addressID); err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
