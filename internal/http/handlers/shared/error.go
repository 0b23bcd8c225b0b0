package shared

import (
	"errors"

	"github.com/tokenlock/tokenlock-api/internal/http/response"
	"github.com/tokenlock/tokenlock-api/internal/logger"
	"github.com/tokenlock/tokenlock-api/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.SW("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, code int, msg string, err error) {
	appErr := response.WrapError(code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.Error(c, appErr.Code, appErr.Message)
}

// RespondServiceError 将业务哨兵错误映射为 HTTP 响应。
// 未识别的错误统一按 500 处理并记录原始错误。
func RespondServiceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrNotFound), errors.Is(err, service.ErrUserNotFound):
		response.NotFound(c, err.Error())
	case errors.Is(err, service.ErrProductExists),
		errors.Is(err, service.ErrUsernameExists),
		errors.Is(err, service.ErrEmailExists):
		response.Conflict(c, err.Error())
	case errors.Is(err, service.ErrInvalidCredentials):
		response.Unauthorized(c, err.Error())
	case errors.Is(err, service.ErrOTPTooFrequent):
		response.Error(c, response.CodeTooManyRequests, err.Error())
	case errors.Is(err, service.ErrInvalidInput),
		errors.Is(err, service.ErrInvalidCampaign),
		errors.Is(err, service.ErrInvalidStatus),
		errors.Is(err, service.ErrInvalidSetting),
		errors.Is(err, service.ErrWeakPassword),
		errors.Is(err, service.ErrCaptchaInvalid),
		errors.Is(err, service.ErrInvalidEmail),
		errors.Is(err, service.ErrOTPInvalid),
		errors.Is(err, service.ErrOTPExpired),
		errors.Is(err, service.ErrOTPAttemptsExceeded):
		response.BadRequest(c, err.Error())
	default:
		RespondError(c, response.CodeInternal, "Internal server error", err)
	}
}
