package shared

import (
	"strconv"

	"github.com/tokenlock/tokenlock-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// GetContextUint 从上下文读取 uint 值并统一处理错误响应。
func GetContextUint(c *gin.Context, key string) (uint, bool) {
	value, exists := c.Get(key)
	if !exists {
		response.Unauthorized(c, "Not authenticated")
		return 0, false
	}

	switch v := value.(type) {
	case uint:
		return v, true
	case int:
		if v < 0 {
			response.BadRequest(c, "Invalid value")
			return 0, false
		}
		return uint(v), true
	case float64:
		if v < 0 {
			response.BadRequest(c, "Invalid value")
			return 0, false
		}
		return uint(v), true
	default:
		RespondError(c, response.CodeInternal, "Internal server error", nil)
		return 0, false
	}
}

// ParseIDParam 解析路径中的数字 ID，非法时写回 400。
func ParseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		response.BadRequest(c, "Invalid ID")
		return 0, false
	}
	return uint(id), true
}
