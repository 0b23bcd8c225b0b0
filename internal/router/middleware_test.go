package router

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/tokenlock/tokenlock-api/internal/constants"
	"github.com/tokenlock/tokenlock-api/internal/models"
	"github.com/tokenlock/tokenlock-api/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "middleware-test-secret"

type stubUserRepo struct {
	user *models.User
}

func (r *stubUserRepo) GetByEmail(email string) (*models.User, error)       { return nil, nil }
func (r *stubUserRepo) GetByUsername(username string) (*models.User, error) { return nil, nil }
func (r *stubUserRepo) Create(user *models.User) error                      { return nil }
func (r *stubUserRepo) Update(user *models.User) error                      { return nil }

func (r *stubUserRepo) GetByID(id uint) (*models.User, error) {
	if r.user != nil && r.user.ID == id {
		return r.user, nil
	}
	return nil, nil
}

func newAuthTestRouter(repo *stubUserRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	engine := gin.New()
	engine.GET("/protected", CookieAuthMiddleware(testSecret, repo), func(c *gin.Context) {
		userID, _ := c.Get("user_id")
		c.JSON(http.StatusOK, gin.H{"user_id": userID})
	})
	return engine
}

func signSessionToken(t *testing.T, secret string, userID uint, expiresIn time.Duration) string {
	t.Helper()
	claims := service.SessionClaims{
		UserID:   userID,
		Username: "merchant",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(expiresIn)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return token
}

func TestCookieAuthMissingCookie(t *testing.T) {
	engine := newAuthTestRouter(&stubUserRepo{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCookieAuthValidToken(t *testing.T) {
	repo := &stubUserRepo{user: &models.User{ID: 7, Username: "merchant"}}
	engine := newAuthTestRouter(repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{
		Name:  constants.AuthCookieName,
		Value: signSessionToken(t, testSecret, 7, time.Hour),
	})
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d (body %s)", rec.Code, rec.Body.String())
	}
}

func TestCookieAuthExpiredToken(t *testing.T) {
	repo := &stubUserRepo{user: &models.User{ID: 7, Username: "merchant"}}
	engine := newAuthTestRouter(repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{
		Name:  constants.AuthCookieName,
		Value: signSessionToken(t, testSecret, 7, -time.Minute),
	})
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCookieAuthWrongSecret(t *testing.T) {
	repo := &stubUserRepo{user: &models.User{ID: 7, Username: "merchant"}}
	engine := newAuthTestRouter(repo)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{
		Name:  constants.AuthCookieName,
		Value: signSessionToken(t, "other-secret", 7, time.Hour),
	})
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestCookieAuthDeletedUser(t *testing.T) {
	engine := newAuthTestRouter(&stubUserRepo{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{
		Name:  constants.AuthCookieName,
		Value: signSessionToken(t, testSecret, 7, time.Hour),
	})
	engine.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}
