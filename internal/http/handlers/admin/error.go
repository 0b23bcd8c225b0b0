package admin

import (
	"errors"

	"github.com/tokenlock/tokenlock-api/internal/http/handlers/shared"
	"github.com/tokenlock/tokenlock-api/internal/http/response"
	"github.com/tokenlock/tokenlock-api/internal/service"

	"github.com/gin-gonic/gin"
)

// 各资源的未找到文案不同，这里先行映射再交给通用处理。

func respondCampaignError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		response.NotFound(c, "Campaign not found")
		return
	}
	shared.RespondServiceError(c, err)
}

func respondPurchaseLimitError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		response.NotFound(c, "Purchase limit not found")
		return
	}
	shared.RespondServiceError(c, err)
}

func respondSettingError(c *gin.Context, err error) {
	if errors.Is(err, service.ErrNotFound) {
		response.NotFound(c, "Settings not found")
		return
	}
	shared.RespondServiceError(c, err)
}
