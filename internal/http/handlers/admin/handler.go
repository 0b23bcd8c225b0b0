package admin

import "github.com/tokenlock/tokenlock-api/internal/provider"

// Handler 商户控制台接口处理器入口
type Handler struct {
	*provider.Container
}

// New 创建控制台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
