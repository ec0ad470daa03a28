package handler

import (
	"net/http"

	"proforma/internal/model"
	"proforma/internal/service"
	"proforma/pkg/response"

	"github.com/gin-gonic/gin"
)

type SettingsHandler struct {
	settingsService *service.SettingsService
}

func NewSettingsHandler(settingsService *service.SettingsService) *SettingsHandler {
	return &SettingsHandler{settingsService: settingsService}
}

func (h *SettingsHandler) RegisterRoutes(router *gin.RouterGroup) {
	settings := router.Group("/api/settings")
	{
		settings.GET("", h.GetSettings)
		settings.PUT("", h.UpdateSettings)
	}
}

func (h *SettingsHandler) GetSettings(c *gin.Context) {
	c.JSON(http.StatusOK, response.Success(http.StatusOK, h.settingsService.Get()))
}

// UpdateSettings replaces the configuration whole; partial patches are not
// supported so the settings can never end up half-applied.
func (h *SettingsHandler) UpdateSettings(c *gin.Context) {
	var req model.Settings
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	updated, err := h.settingsService.Update(req)
	if err != nil && !isPersistenceWarning(err) {
		writeServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, saveResponse(http.StatusOK, updated, err))
}
