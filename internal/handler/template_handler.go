package handler

import (
	"net/http"

	"proforma/internal/model"
	"proforma/internal/service"
	"proforma/pkg/response"

	"github.com/gin-gonic/gin"
)

// TemplatePayload names a reusable seed of client info plus line items.
type TemplatePayload struct {
	Name       string           `json:"name"`
	ClientInfo model.ClientInfo `json:"client_info"`
	LineItems  []model.LineItem `json:"line_items"`
}

type TemplateHandler struct {
	templateService *service.TemplateService
}

func NewTemplateHandler(templateService *service.TemplateService) *TemplateHandler {
	return &TemplateHandler{templateService: templateService}
}

func (h *TemplateHandler) RegisterRoutes(router *gin.RouterGroup) {
	templates := router.Group("/api/templates")
	{
		templates.GET("", h.ListTemplates)
		templates.POST("", h.SaveTemplate)
		templates.DELETE("/:id", h.DeleteTemplate)
		templates.GET("/:id/apply", h.ApplyTemplate)
	}
}

func (h *TemplateHandler) ListTemplates(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.templateService.List()))
}

func (h *TemplateHandler) SaveTemplate(c *gin.Context) {
	var req TemplatePayload
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	tpl, err := h.templateService.Save(req.Name, req.ClientInfo, req.LineItems)
	if err != nil && !isPersistenceWarning(err) {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, saveResponse(http.StatusCreated, tpl, err))
}

// DeleteTemplate removes a template; deleting an absent id is a no-op.
func (h *TemplateHandler) DeleteTemplate(c *gin.Context) {
	if err := h.templateService.Remove(c.Param("id")); err != nil && !isPersistenceWarning(err) {
		writeServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, nil))
}

// ApplyTemplate hands out a deep-copied seed for a new editing session.
func (h *TemplateHandler) ApplyTemplate(c *gin.Context) {
	client, lineItems, err := h.templateService.Apply(c.Param("id"))
	if err != nil {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{
		"client_info": client,
		"line_items":  lineItems,
	}))
}
