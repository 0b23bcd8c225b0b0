package service

import (
	"errors"
	"testing"
	"time"

	"github.com/tokenlock/tokenlock-api/internal/config"
	"github.com/tokenlock/tokenlock-api/internal/models"

	"golang.org/x/crypto/bcrypt"
)

func newResetFixture(t *testing.T) (*PasswordResetService, *mockUserRepo, *mockResetCodeRepo, *mockMailer) {
	t.Helper()
	users := newMockUserRepo()
	codes := newMockResetCodeRepo()
	mailer := &mockMailer{}

	hash, err := bcrypt.GenerateFromPassword([]byte("oldpass1"), bcrypt.DefaultCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	if err := users.Create(&models.User{
		Username:     "alice",
		Email:        "alice@example.com",
		PasswordHash: string(hash),
	}); err != nil {
		t.Fatalf("create user failed: %v", err)
	}

	svc := &PasswordResetService{
		users:  users,
		codes:  codes,
		mailer: mailer,
		otp: config.OTPConfig{
			ExpireMinutes:       5,
			SendIntervalSeconds: 60,
			MaxAttempts:         3,
			Length:              6,
		},
		passwordPolicy: config.PasswordPolicyConfig{MinLength: 6},
	}
	return svc, users, codes, mailer
}

func TestSendOTPUnknownEmail(t *testing.T) {
	svc, _, _, _ := newResetFixture(t)
	if err := svc.SendOTP("ghost@example.com"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}
}

func TestSendOTPThrottled(t *testing.T) {
	svc, _, _, mailer := newResetFixture(t)

	if err := svc.SendOTP("alice@example.com"); err != nil {
		t.Fatalf("first send failed: %v", err)
	}
	if len(mailer.sent) != 1 {
		t.Fatalf("expected one email, got %d", len(mailer.sent))
	}
	if len(mailer.sent[0]) != 6 {
		t.Fatalf("expected 6-digit code, got %q", mailer.sent[0])
	}

	if err := svc.SendOTP("alice@example.com"); !errors.Is(err, ErrOTPTooFrequent) {
		t.Fatalf("expected ErrOTPTooFrequent, got %v", err)
	}
}

func TestVerifyOTPFlow(t *testing.T) {
	svc, _, _, mailer := newResetFixture(t)

	if err := svc.SendOTP("alice@example.com"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	code := mailer.sent[0]

	if err := svc.VerifyOTP("alice@example.com", "000000"); !errors.Is(err, ErrOTPInvalid) {
		if code == "000000" {
			t.Skip("collided with generated code")
		}
		t.Fatalf("expected ErrOTPInvalid, got %v", err)
	}
	if err := svc.VerifyOTP("alice@example.com", code); err != nil {
		t.Fatalf("verify failed: %v", err)
	}
}

func TestVerifyOTPAttemptsExceeded(t *testing.T) {
	svc, _, codes, _ := newResetFixture(t)

	if err := svc.SendOTP("alice@example.com"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	record, _ := codes.GetLatest("alice@example.com")
	wrong := "000000"
	if record.Code == wrong {
		wrong = "111111"
	}

	for i := 0; i < 3; i++ {
		if err := svc.VerifyOTP("alice@example.com", wrong); !errors.Is(err, ErrOTPInvalid) {
			t.Fatalf("attempt %d: expected ErrOTPInvalid, got %v", i, err)
		}
	}
	// 失败次数达到上限后，即便提交正确验证码也拒绝
	if err := svc.VerifyOTP("alice@example.com", record.Code); !errors.Is(err, ErrOTPAttemptsExceeded) {
		t.Fatalf("expected ErrOTPAttemptsExceeded, got %v", err)
	}
}

func TestResetPasswordWithExpiredOTPLeavesPasswordUnchanged(t *testing.T) {
	svc, users, codes, _ := newResetFixture(t)

	if err := svc.SendOTP("alice@example.com"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	record, _ := codes.GetLatest("alice@example.com")
	codes.codes[record.ID].ExpiresAt = time.Now().Add(-time.Minute)

	before, _ := users.GetByEmail("alice@example.com")
	if err := svc.ResetPassword("alice@example.com", record.Code, "newpass1"); !errors.Is(err, ErrOTPExpired) {
		t.Fatalf("expected ErrOTPExpired, got %v", err)
	}
	after, _ := users.GetByEmail("alice@example.com")
	if before.PasswordHash != after.PasswordHash {
		t.Fatal("password changed despite expired OTP")
	}
}

func TestResetPasswordConsumesOTP(t *testing.T) {
	svc, users, codes, _ := newResetFixture(t)

	if err := svc.SendOTP("alice@example.com"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	record, _ := codes.GetLatest("alice@example.com")

	if err := svc.ResetPassword("alice@example.com", record.Code, "newpass1"); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	user, _ := users.GetByEmail("alice@example.com")
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("newpass1")); err != nil {
		t.Fatalf("new password not stored: %v", err)
	}

	// 同一验证码不允许二次使用
	if err := svc.ResetPassword("alice@example.com", record.Code, "anotherpass1"); !errors.Is(err, ErrOTPInvalid) {
		t.Fatalf("expected ErrOTPInvalid on reuse, got %v", err)
	}
}

func TestResetPasswordWeakPasswordRejected(t *testing.T) {
	svc, _, codes, _ := newResetFixture(t)

	if err := svc.SendOTP("alice@example.com"); err != nil {
		t.Fatalf("send failed: %v", err)
	}
	record, _ := codes.GetLatest("alice@example.com")

	if err := svc.ResetPassword("alice@example.com", record.Code, "abc"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}
