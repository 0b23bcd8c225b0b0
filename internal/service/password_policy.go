package service

import (
	"unicode"

	"github.com/tokenlock/tokenlock-api/internal/config"
)

// ValidatePassword 按密码策略校验明文密码
func ValidatePassword(password string, policy config.PasswordPolicyConfig) error {
	minLength := policy.MinLength
	if minLength <= 0 {
		minLength = 6
	}
	if len(password) < minLength {
		return ErrWeakPassword
	}

	var hasUpper, hasLower, hasNumber, hasSpecial bool
	for _, r := range password {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsDigit(r):
			hasNumber = true
		case unicode.IsPunct(r) || unicode.IsSymbol(r):
			hasSpecial = true
		}
	}

	if policy.RequireUpper && !hasUpper {
		return ErrWeakPassword
	}
	if policy.RequireLower && !hasLower {
		return ErrWeakPassword
	}
	if policy.RequireNumber && !hasNumber {
		return ErrWeakPassword
	}
	if policy.RequireSpecial && !hasSpecial {
		return ErrWeakPassword
	}
	return nil
}
