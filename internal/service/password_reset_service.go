package service

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"github.com/tokenlock/tokenlock-api/internal/config"
	"github.com/tokenlock/tokenlock-api/internal/logger"
	"github.com/tokenlock/tokenlock-api/internal/models"
	"github.com/tokenlock/tokenlock-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

// otpMailer 验证码邮件发送接口
type otpMailer interface {
	SendPasswordResetOTP(toEmail, code string) error
}

// PasswordResetService 忘记密码（邮箱验证码）服务
type PasswordResetService struct {
	users          repository.UserRepository
	codes          repository.PasswordResetCodeRepository
	mailer         otpMailer
	otp            config.OTPConfig
	passwordPolicy config.PasswordPolicyConfig
}

// NewPasswordResetService 创建忘记密码服务
func NewPasswordResetService(
	users repository.UserRepository,
	codes repository.PasswordResetCodeRepository,
	email *EmailService,
	cfg *config.Config,
) *PasswordResetService {
	return &PasswordResetService{
		users:          users,
		codes:          codes,
		mailer:         email,
		otp:            cfg.Email.OTP,
		passwordPolicy: cfg.Security.PasswordPolicy,
	}
}

func (s *PasswordResetService) expireWindow() time.Duration {
	minutes := s.otp.ExpireMinutes
	if minutes <= 0 {
		minutes = 5
	}
	return time.Duration(minutes) * time.Minute
}

func (s *PasswordResetService) sendInterval() time.Duration {
	seconds := s.otp.SendIntervalSeconds
	if seconds <= 0 {
		seconds = 60
	}
	return time.Duration(seconds) * time.Second
}

func (s *PasswordResetService) maxAttempts() int {
	if s.otp.MaxAttempts <= 0 {
		return 5
	}
	return s.otp.MaxAttempts
}

func (s *PasswordResetService) codeLength() int {
	if s.otp.Length <= 0 {
		return 6
	}
	return s.otp.Length
}

// SendOTP 生成验证码、落库并发送邮件。
// 同一邮箱在发送间隔内重复请求会被拒绝。
func (s *PasswordResetService) SendOTP(email string) error {
	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	now := time.Now()
	latest, err := s.codes.GetLatest(email)
	if err != nil {
		return err
	}
	if latest != nil && now.Sub(latest.SentAt) < s.sendInterval() {
		return ErrOTPTooFrequent
	}

	code, err := generateNumericCode(s.codeLength())
	if err != nil {
		return fmt.Errorf("生成验证码失败: %w", err)
	}

	record := &models.PasswordResetCode{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(s.expireWindow()),
		SentAt:    now,
	}
	if err := s.codes.Create(record); err != nil {
		return err
	}

	if err := s.mailer.SendPasswordResetOTP(email, code); err != nil {
		logger.Errorw("password_reset_otp_send_failed", "email", email, "error", err)
		return err
	}

	logger.Infow("password_reset_otp_sent", "email", email)
	return nil
}

// VerifyOTP 校验验证码，成功后标记可用于重置密码
func (s *PasswordResetService) VerifyOTP(email, code string) error {
	record, err := s.activeCode(email, code)
	if err != nil {
		return err
	}

	if err := s.codes.MarkVerified(record.ID, time.Now()); err != nil {
		return err
	}
	logger.Infow("password_reset_otp_verified", "email", email)
	return nil
}

// ResetPassword 重置密码。验证码必须仍然有效且未被消费，
// 重置成功后立即作废。
func (s *PasswordResetService) ResetPassword(email, code, newPassword string) error {
	record, err := s.activeCode(email, code)
	if err != nil {
		return err
	}

	if err := ValidatePassword(newPassword, s.passwordPolicy); err != nil {
		return err
	}

	user, err := s.users.GetByEmail(email)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("生成密码哈希失败: %w", err)
	}
	user.PasswordHash = string(hash)
	if err := s.users.Update(user); err != nil {
		return err
	}

	if err := s.codes.MarkConsumed(record.ID, time.Now()); err != nil {
		return err
	}

	logger.Infow("password_reset_completed", "user_id", user.ID)
	return nil
}

// activeCode 取最近一条验证码并校验状态。
// 失败次数超限、过期、已消费都视为无效。
func (s *PasswordResetService) activeCode(email, code string) (*models.PasswordResetCode, error) {
	record, err := s.codes.GetLatest(email)
	if err != nil {
		return nil, err
	}
	if record == nil {
		return nil, ErrOTPInvalid
	}
	if record.ConsumedAt != nil {
		return nil, ErrOTPInvalid
	}
	if record.AttemptCount >= s.maxAttempts() {
		return nil, ErrOTPAttemptsExceeded
	}
	if time.Now().After(record.ExpiresAt) {
		return nil, ErrOTPExpired
	}
	if record.Code != code {
		if err := s.codes.IncrementAttempt(record.ID); err != nil {
			logger.Errorw("password_reset_attempt_count_failed", "id", record.ID, "error", err)
		}
		return nil, ErrOTPInvalid
	}
	return record, nil
}

func generateNumericCode(length int) (string, error) {
	digits := make([]byte, length)
	for i := range digits {
		n, err := rand.Int(rand.Reader, big.NewInt(10))
		if err != nil {
			return "", err
		}
		digits[i] = byte('0' + n.Int64())
	}
	return string(digits), nil
}
