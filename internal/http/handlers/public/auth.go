package public

import (
	"net/http"

	"github.com/tokenlock/tokenlock-api/internal/constants"
	"github.com/tokenlock/tokenlock-api/internal/http/handlers/shared"
	"github.com/tokenlock/tokenlock-api/internal/http/response"

	"github.com/gin-gonic/gin"
)

// RegisterRequest 注册请求
type RegisterRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest 登录请求
type LoginRequest struct {
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required"`
	CaptchaID   string `json:"captcha_id"`
	CaptchaCode string `json:"captcha_code"`
}

// Register 注册商户账号
func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	user, err := h.AuthService.Register(req.Username, req.Email, req.Password)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	response.Created(c, gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// Login 登录并写入会话 Cookie
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Missing required fields")
		return
	}

	if err := h.CaptchaService.Verify(constants.CaptchaSceneLogin, req.CaptchaID, req.CaptchaCode); err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	user, token, err := h.AuthService.Login(req.Email, req.Password)
	if err != nil {
		shared.RespondServiceError(c, err)
		return
	}

	h.setAuthCookie(c, token, h.AuthService.CookieMaxAge())
	response.SuccessWithMsg(c, "Login successful", gin.H{
		"id":       user.ID,
		"username": user.Username,
		"email":    user.Email,
	})
}

// CheckAuth 校验会话 Cookie 是否有效
func (h *Handler) CheckAuth(c *gin.Context) {
	token, err := c.Cookie(constants.AuthCookieName)
	if err != nil || token == "" {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	claims, err := h.AuthService.ParseJWT(token)
	if err != nil {
		response.Unauthorized(c, "Not authenticated")
		return
	}

	response.Success(c, gin.H{
		"authenticated": true,
		"user": gin.H{
			"id":       claims.UserID,
			"username": claims.Username,
		},
	})
}

// Logout 清除会话 Cookie
func (h *Handler) Logout(c *gin.Context) {
	h.setAuthCookie(c, "", -1)
	response.SuccessWithMsg(c, "Logged out", nil)
}

func (h *Handler) setAuthCookie(c *gin.Context, token string, maxAge int) {
	secure := h.Config.Server.Mode == "release"
	c.SetSameSite(http.SameSiteStrictMode)
	c.SetCookie(constants.AuthCookieName, token, maxAge, constants.AuthCookiePath, "", secure, true)
}
