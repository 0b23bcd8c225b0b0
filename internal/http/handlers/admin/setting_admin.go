package admin

import (
	"github.com/tokenlock/tokenlock-api/internal/http/handlers/shared"
	"github.com/tokenlock/tokenlock-api/internal/http/response"
	"github.com/tokenlock/tokenlock-api/internal/models"

	"github.com/gin-gonic/gin"
)

// SettingRequest 外观配置保存请求。
// 字段名沿用管理端表单的 camelCase 命名。
type SettingRequest struct {
	ButtonColor         string `json:"buttonColor"`
	ButtonText          string `json:"buttonText"`
	ButtonTextColor     string `json:"buttonTextColor"`
	ButtonFontSize      string `json:"buttonFontSize"`
	DescriptionColor    string `json:"descriptionColor"`
	DescriptionFontSize string `json:"descriptionFontSize"`
}

// GetSettings 获取外观配置
func (h *Handler) GetSettings(c *gin.Context) {
	setting, err := h.SettingService.Get(c.Request.Context())
	if err != nil {
		respondSettingError(c, err)
		return
	}
	response.Success(c, setting)
}

// SaveSettings 保存外观配置（不存在则创建）
func (h *Handler) SaveSettings(c *gin.Context) {
	operator, ok := shared.GetContextUint(c, "user_id")
	if !ok {
		return
	}

	var req SettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "All fields are required")
		return
	}

	setting := &models.WidgetSetting{
		ButtonColor:         req.ButtonColor,
		ButtonText:          req.ButtonText,
		ButtonTextColor:     req.ButtonTextColor,
		ButtonFontSize:      req.ButtonFontSize,
		DescriptionColor:    req.DescriptionColor,
		DescriptionFontSize: req.DescriptionFontSize,
	}

	saved, err := h.SettingService.Save(c.Request.Context(), setting)
	if err != nil {
		respondSettingError(c, err)
		return
	}
	shared.RequestLog(c).Infow("widget_setting_save_audit", "setting_id", saved.ID, "operator_id", operator)
	response.Success(c, saved)
}
