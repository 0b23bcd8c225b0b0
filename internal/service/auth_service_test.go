package service

import (
	"errors"
	"testing"

	"github.com/tokenlock/tokenlock-api/internal/config"
)

func testAuthConfig() *config.Config {
	cfg := &config.Config{}
	cfg.JWT.SecretKey = "unit-test-secret-key-0123456789abcdef"
	cfg.JWT.ExpireHours = 1
	cfg.Security.PasswordPolicy.MinLength = 6
	return cfg
}

func TestRegisterAndLogin(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), testAuthConfig())

	user, err := svc.Register("alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID == 0 {
		t.Fatal("expected non-zero user id")
	}
	if user.PasswordHash == "secret1" {
		t.Fatal("password stored in plain text")
	}

	loggedIn, token, err := svc.Login("alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if loggedIn.ID != user.ID {
		t.Fatalf("unexpected user id %d", loggedIn.ID)
	}
	if token == "" {
		t.Fatal("expected session token")
	}

	claims, err := svc.ParseJWT(token)
	if err != nil {
		t.Fatalf("parse token failed: %v", err)
	}
	if claims.UserID != user.ID || claims.Username != "alice" {
		t.Fatalf("unexpected claims %+v", claims)
	}
}

func TestRegisterDuplicates(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), testAuthConfig())

	if _, err := svc.Register("alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, err := svc.Register("alice", "other@example.com", "secret1"); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
	if _, err := svc.Register("bob", "alice@example.com", "secret1"); !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterWeakPassword(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), testAuthConfig())
	if _, err := svc.Register("alice", "alice@example.com", "abc"); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected ErrWeakPassword, got %v", err)
	}
}

func TestLoginUnknownEmailVsWrongPassword(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), testAuthConfig())

	if _, _, err := svc.Login("ghost@example.com", "whatever"); !errors.Is(err, ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	if _, err := svc.Register("alice", "alice@example.com", "secret1"); err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if _, _, err := svc.Login("alice@example.com", "wrong"); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestParseJWTRejectsForgedToken(t *testing.T) {
	svc := NewAuthService(newMockUserRepo(), testAuthConfig())

	otherCfg := testAuthConfig()
	otherCfg.JWT.SecretKey = "another-secret-key-0123456789abcdef00"
	other := NewAuthService(newMockUserRepo(), otherCfg)

	user, err := svc.Register("alice", "alice@example.com", "secret1")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	token, err := other.GenerateJWT(user)
	if err != nil {
		t.Fatalf("sign failed: %v", err)
	}
	if _, err := svc.ParseJWT(token); err == nil {
		t.Fatal("expected forged token to be rejected")
	}
}

func TestValidatePasswordPolicy(t *testing.T) {
	policy := config.PasswordPolicyConfig{
		MinLength:     8,
		RequireUpper:  true,
		RequireNumber: true,
	}
	if err := ValidatePassword("lowercase1", policy); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected missing upper to fail, got %v", err)
	}
	if err := ValidatePassword("Short1", policy); !errors.Is(err, ErrWeakPassword) {
		t.Fatalf("expected short password to fail, got %v", err)
	}
	if err := ValidatePassword("Password1", policy); err != nil {
		t.Fatalf("expected valid password, got %v", err)
	}
}
