package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	appprison "github.com/registers/backend/internal/application/prison"
	"github.com/registers/backend/internal/domain/contact"
	"github.com/registers/backend/internal/domain/prison"
)

// DepartmentTypeResponse describes one contactable department
type DepartmentTypeResponse struct {
	Code        contact.DepartmentType `json:"code"`
	PathSegment string                 `json:"pathSegment"`
	Description string                 `json:"description"`
}

// RefDataHandler serves the closed reference data sets backing the registers
type RefDataHandler struct {
	BaseHandler
}

// NewRefDataHandler creates a new RefDataHandler
func NewRefDataHandler() *RefDataHandler {
	return &RefDataHandler{}
}

// RegisterRoutes registers reference data routes
func (h *RefDataHandler) RegisterRoutes(rg *gin.RouterGroup) {
	refdata := rg.Group("/reference-data")
	refdata.GET("/department-types", h.GetDepartmentTypes)
	refdata.GET("/prison-types", h.GetPrisonTypes)
}

// GetDepartmentTypes returns the known contactable departments
func (h *RefDataHandler) GetDepartmentTypes(c *gin.Context) {
	types := make([]DepartmentTypeResponse, 0, len(contact.AllDepartmentTypes))
	for _, d := range contact.AllDepartmentTypes {
		types = append(types, DepartmentTypeResponse{
			Code:        d,
			PathSegment: d.PathSegment(),
			Description: d.Description(),
		})
	}
	c.JSON(http.StatusOK, types)
}

// GetPrisonTypes returns the known prison classifications
func (h *RefDataHandler) GetPrisonTypes(c *gin.Context) {
	types := make([]appprison.PrisonTypeResponse, 0, len(prison.AllTypeCodes))
	for _, code := range prison.AllTypeCodes {
		types = append(types, appprison.PrisonTypeResponse{
			Code:        code,
			Description: code.Description(),
		})
	}
	c.JSON(http.StatusOK, types)
}
