package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/tokenlock/tokenlock-api/internal/config"
	"github.com/tokenlock/tokenlock-api/internal/logger"
	"github.com/tokenlock/tokenlock-api/internal/models"
	"github.com/tokenlock/tokenlock-api/internal/repository"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// AuthService 商户账号认证服务
type AuthService struct {
	users          repository.UserRepository
	jwtSecret      []byte
	jwtExpire      time.Duration
	passwordPolicy config.PasswordPolicyConfig
}

// NewAuthService 创建认证服务
func NewAuthService(users repository.UserRepository, cfg *config.Config) *AuthService {
	expireHours := cfg.JWT.ExpireHours
	if expireHours <= 0 {
		expireHours = 1
	}
	return &AuthService{
		users:          users,
		jwtSecret:      []byte(cfg.JWT.SecretKey),
		jwtExpire:      time.Duration(expireHours) * time.Hour,
		passwordPolicy: cfg.Security.PasswordPolicy,
	}
}

// SessionClaims 会话令牌声明
type SessionClaims struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Register 注册商户账号，用户名与邮箱均不可重复
func (s *AuthService) Register(username, email, password string) (*models.User, error) {
	if err := ValidatePassword(password, s.passwordPolicy); err != nil {
		return nil, err
	}

	existing, err := s.users.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrUsernameExists
	}

	existing, err = s.users.GetByEmail(email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("生成密码哈希失败: %w", err)
	}

	user := &models.User{
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
	}
	if err := s.users.Create(user); err != nil {
		return nil, err
	}

	logger.Infow("user_registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login 邮箱 + 密码登录。账号不存在与密码错误返回不同的错误，
// 前端据此分别提示。
func (s *AuthService) Login(email, password string) (*models.User, string, error) {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrUserNotFound
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		logger.Warnw("login_password_mismatch", "user_id", user.ID)
		return nil, "", ErrInvalidCredentials
	}

	token, err := s.GenerateJWT(user)
	if err != nil {
		return nil, "", err
	}

	logger.Infow("user_login", "user_id", user.ID, "username", user.Username)
	return user, token, nil
}

// GenerateJWT 签发会话令牌
func (s *AuthService) GenerateJWT(user *models.User) (string, error) {
	now := time.Now()
	claims := SessionClaims{
		UserID:   user.ID,
		Username: user.Username,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.jwtExpire)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.jwtSecret)
}

// ParseJWT 解析并校验会话令牌
func (s *AuthService) ParseJWT(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("非预期的签名算法: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		return nil, err
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, errors.New("无效的 token")
	}
	return claims, nil
}

// CookieMaxAge 会话 Cookie 生存秒数，与令牌过期时间一致
func (s *AuthService) CookieMaxAge() int {
	return int(s.jwtExpire.Seconds())
}

// GetUser 根据 ID 获取商户账号
func (s *AuthService) GetUser(id uint) (*models.User, error) {
	user, err := s.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}
