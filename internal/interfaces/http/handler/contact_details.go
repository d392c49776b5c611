package handler

import (
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	appcontact "github.com/registers/backend/internal/application/contact"
	"github.com/registers/backend/internal/domain/contact"
)

// ContactDetailsDto is the wire body for aggregate create and update. Type
// carries the department token; a nil channel field means "not supplied".
type ContactDetailsDto struct {
	Type         string  `json:"type" binding:"required"`
	EmailAddress *string `json:"emailAddress"`
	PhoneNumber  *string `json:"phoneNumber"`
	WebAddress   *string `json:"webAddress"`
}

// ContactDetailsHandler exposes the contact details endpoints, both the
// aggregate surface and the single-channel legacy surface.
type ContactDetailsHandler struct {
	BaseHandler
	service *appcontact.Service
	logger  *zap.Logger
}

// NewContactDetailsHandler creates a new ContactDetailsHandler
func NewContactDetailsHandler(service *appcontact.Service, logger *zap.Logger) *ContactDetailsHandler {
	return &ContactDetailsHandler{
		service: service,
		logger:  logger,
	}
}

// RegisterRoutes registers contact details routes under the prison id group
func (h *ContactDetailsHandler) RegisterRoutes(rg *gin.RouterGroup) {
	prison := rg.Group("/secure/prisons/id/:prisonId")

	dept := prison.Group("/department")
	dept.GET("/contact-details", h.GetContactDetails)
	dept.POST("/contact-details", h.CreateContactDetails)
	dept.PUT("/contact-details", h.UpdateContactDetails)
	dept.DELETE("/contact-details", h.DeleteContactDetails)

	byDept := dept.Group("/:departmentType")
	byDept.GET("/email-address", h.channelGet(contact.ChannelEmail))
	byDept.PUT("/email-address", h.channelPut(contact.ChannelEmail))
	byDept.DELETE("/email-address", h.channelDelete(contact.ChannelEmail))
	byDept.GET("/phone-number", h.channelGet(contact.ChannelPhone))
	byDept.PUT("/phone-number", h.channelPut(contact.ChannelPhone))
	byDept.DELETE("/phone-number", h.channelDelete(contact.ChannelPhone))
	// telephone-address is a deprecated alias of phone-number
	byDept.GET("/telephone-address", h.channelGet(contact.ChannelPhone))
	byDept.PUT("/telephone-address", h.channelPut(contact.ChannelPhone))
	byDept.DELETE("/telephone-address", h.channelDelete(contact.ChannelPhone))
	byDept.GET("/web-address", h.channelGet(contact.ChannelWeb))
	byDept.PUT("/web-address", h.channelPut(contact.ChannelWeb))
	byDept.DELETE("/web-address", h.channelDelete(contact.ChannelWeb))

	// Dedicated department email endpoints predating the generic surface
	for _, d := range []contact.DepartmentType{
		contact.DepartmentOffenderManagementUnit,
		contact.DepartmentVideolinkConferencingCentre,
	} {
		group := prison.Group("/" + d.PathSegment())
		group.GET("/email-address", h.departmentEmailGet(d))
		group.PUT("/email-address", h.departmentEmailPut(d))
		group.DELETE("/email-address", h.departmentEmailDelete(d))
	}
}

// GetContactDetails returns the aggregate for the requested department
func (h *ContactDetailsHandler) GetContactDetails(c *gin.Context) {
	response, err := h.service.Get(c.Request.Context(), c.Param("prisonId"), c.Query("departmentType"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// CreateContactDetails creates a new aggregate for the department in the body
func (h *ContactDetailsHandler) CreateContactDetails(c *gin.Context) {
	var body ContactDetailsDto
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	response, err := h.service.Create(c.Request.Context(), c.Param("prisonId"), body.Type, appcontact.ContactDetailsRequest{
		EmailAddress: body.EmailAddress,
		PhoneNumber:  body.PhoneNumber,
		WebAddress:   body.WebAddress,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response)
}

// UpdateContactDetails reconciles the aggregate towards the requested values.
// With removeIfNull unset or false, omitted channels are left untouched;
// with removeIfNull=true they are cleared.
func (h *ContactDetailsHandler) UpdateContactDetails(c *gin.Context) {
	var body ContactDetailsDto
	if err := c.ShouldBindJSON(&body); err != nil {
		h.BadRequest(c, "Invalid request body")
		return
	}

	removeIfNull := false
	if raw, ok := c.GetQuery("removeIfNull"); ok {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			h.BadRequest(c, "Invalid removeIfNull value")
			return
		}
		removeIfNull = parsed
	}

	response, err := h.service.Update(c.Request.Context(), c.Param("prisonId"), body.Type, appcontact.ContactDetailsRequest{
		EmailAddress: body.EmailAddress,
		PhoneNumber:  body.PhoneNumber,
		WebAddress:   body.WebAddress,
	}, removeIfNull)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.JSON(http.StatusOK, response)
}

// DeleteContactDetails deletes the aggregate for the requested department
func (h *ContactDetailsHandler) DeleteContactDetails(c *gin.Context) {
	err := h.service.Delete(c.Request.Context(), c.Param("prisonId"), c.Query("departmentType"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// channelGet returns a handler reading one channel value as plain text
func (h *ContactDetailsHandler) channelGet(channel contact.Channel) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.getChannel(c, c.Param("departmentType"), channel)
	}
}

// channelPut returns a handler writing one channel value from a plain text body
func (h *ContactDetailsHandler) channelPut(channel contact.Channel) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.setChannel(c, c.Param("departmentType"), channel)
	}
}

// channelDelete returns a handler clearing one channel value
func (h *ContactDetailsHandler) channelDelete(channel contact.Channel) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.removeChannel(c, c.Param("departmentType"), channel)
	}
}

func (h *ContactDetailsHandler) departmentEmailGet(d contact.DepartmentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.getChannel(c, d.PathSegment(), contact.ChannelEmail)
	}
}

func (h *ContactDetailsHandler) departmentEmailPut(d contact.DepartmentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.setChannel(c, d.PathSegment(), contact.ChannelEmail)
	}
}

func (h *ContactDetailsHandler) departmentEmailDelete(d contact.DepartmentType) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.removeChannel(c, d.PathSegment(), contact.ChannelEmail)
	}
}

func (h *ContactDetailsHandler) getChannel(c *gin.Context, departmentToken string, channel contact.Channel) {
	value, err := h.service.GetChannelValue(c.Request.Context(), c.Param("prisonId"), departmentToken, channel)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.String(http.StatusOK, value)
}

func (h *ContactDetailsHandler) setChannel(c *gin.Context, departmentToken string, channel contact.Channel) {
	raw, err := io.ReadAll(c.Request.Body)
	if err != nil {
		h.BadRequest(c, "Unable to read request body")
		return
	}

	outcome, err := h.service.SetChannelValue(c.Request.Context(), c.Param("prisonId"), departmentToken, channel, string(raw))
	if err != nil {
		h.HandleError(c, err)
		return
	}

	if outcome == appcontact.OutcomeCreated {
		c.Status(http.StatusCreated)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *ContactDetailsHandler) removeChannel(c *gin.Context, departmentToken string, channel contact.Channel) {
	err := h.service.RemoveChannelValue(c.Request.Context(), c.Param("prisonId"), departmentToken, channel)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
