package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) *AuthService {
	t.Helper()
	svc, err := NewAuthService(&AuthConfig{
		JWTSecret:       "test-secret",
		Issuer:          "qualityflow-test",
		ClockSkewMinute: 1,
	})
	require.NoError(t, err)
	return svc
}

func TestValidateJWTRoundTrip(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.SignToken("user@test.com", "Test User", time.Hour)
	require.NoError(t, err)

	claims, err := svc.ValidateJWT(token)
	require.NoError(t, err)
	assert.Equal(t, "user@test.com", claims.Email)
	assert.Equal(t, "Test User", claims.Name)
}

func TestValidateJWTRejectsExpiredToken(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.SignToken("user@test.com", "Test User", -2*time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsWrongSecret(t *testing.T) {
	svc := newTestService(t)

	other, err := NewAuthService(&AuthConfig{JWTSecret: "other-secret"})
	require.NoError(t, err)
	token, err := other.SignToken("user@test.com", "Test User", time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsMissingEmail(t *testing.T) {
	svc := newTestService(t)

	claims := &AuthClaims{
		Name: "No Email",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("test-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateJWT(token)
	assert.Error(t, err)
}

func TestValidateJWTRejectsIssuerMismatch(t *testing.T) {
	svc, err := NewAuthService(&AuthConfig{
		JWTSecret:     "test-secret",
		Issuer:        "expected-issuer",
		RequireIssuer: true,
	})
	require.NoError(t, err)

	other, err := NewAuthService(&AuthConfig{
		JWTSecret: "test-secret",
		Issuer:    "some-other-issuer",
	})
	require.NoError(t, err)

	token, err := other.SignToken("user@test.com", "Test User", time.Hour)
	require.NoError(t, err)

	_, err = svc.ValidateJWT(token)
	assert.Error(t, err)
}

func TestRequireAuthMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)
	svc := newTestService(t)
	mw := NewAuthMiddleware(svc)

	router := gin.New()
	router.GET("/protected", mw.RequireAuth(), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"email": c.GetString("email")})
	})

	t.Run("missing header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("malformed header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Token abc")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer not-a-token")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	})

	t.Run("valid token", func(t *testing.T) {
		token, err := svc.SignToken("user@test.com", "Test User", time.Hour)
		require.NoError(t, err)

		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)
		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "user@test.com")
	})
}
