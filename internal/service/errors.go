package service

import "errors"

// 业务哨兵错误，由 handler 层映射为 HTTP 状态码。
// 错误文案直接作为接口响应的 msg 返回。
var (
	ErrNotFound = errors.New("not found")

	ErrInvalidInput    = errors.New("Missing required fields")
	ErrInvalidCampaign = errors.New("Missing required fields")
	ErrInvalidStatus   = errors.New("Invalid status value")

	ErrProductExists = errors.New("Product ID already exists")

	ErrUsernameExists     = errors.New("Username already exists")
	ErrEmailExists        = errors.New("Email already exists")
	ErrInvalidCredentials = errors.New("Invalid credentials")
	ErrUserNotFound       = errors.New("User not found")

	ErrInvalidSetting = errors.New("All fields are required")

	ErrOTPInvalid          = errors.New("Invalid OTP")
	ErrOTPExpired          = errors.New("OTP has expired")
	ErrOTPTooFrequent      = errors.New("Please wait before requesting another OTP")
	ErrOTPAttemptsExceeded = errors.New("Too many failed attempts, please request a new OTP")

	ErrWeakPassword = errors.New("Password does not meet the security requirements")

	ErrCaptchaInvalid = errors.New("Invalid captcha")

	ErrEmailServiceDisabled      = errors.New("Email service is not enabled")
	ErrEmailServiceNotConfigured = errors.New("Email service is not configured")
	ErrInvalidEmail              = errors.New("Invalid email address")
)
