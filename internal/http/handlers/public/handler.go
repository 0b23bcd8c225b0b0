package public

import "github.com/tokenlock/tokenlock-api/internal/provider"

// Handler 公开接口处理器入口（登录注册、忘记密码、验证码）
type Handler struct {
	*provider.Container
}

// New 创建公开处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
