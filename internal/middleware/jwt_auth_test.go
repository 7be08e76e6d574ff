package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/arif404/devconnector/backend/internal/models"
	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, userID uint) string {
	t.Helper()
	claims := &models.JwtCustomClaims{
		UserID: userID,
		Email:  "alice@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func runMiddleware(authHeader string) (string, error) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	c := e.NewContext(req, httptest.NewRecorder())

	var gotUserID string
	handler := JWTAuthMiddleware(testSecret)(func(c echo.Context) error {
		gotUserID, _ = c.Get("userID").(string)
		return c.NoContent(http.StatusOK)
	})
	return gotUserID, handler(c)
}

func TestJWTAuthValidToken(t *testing.T) {
	userID, err := runMiddleware("Bearer " + signToken(t, testSecret, 42))
	require.NoError(t, err)
	require.Equal(t, "42", userID)
}

func TestJWTAuthMissingHeader(t *testing.T) {
	_, err := runMiddleware("")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestJWTAuthMalformedHeader(t *testing.T) {
	_, err := runMiddleware("Token abcdef")
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestJWTAuthWrongSecret(t *testing.T) {
	_, err := runMiddleware("Bearer " + signToken(t, "other-secret", 42))
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestJWTAuthExpiredToken(t *testing.T) {
	claims := &models.JwtCustomClaims{
		UserID: 42,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = runMiddleware("Bearer " + signed)
	he, ok := err.(*echo.HTTPError)
	require.True(t, ok)
	require.Equal(t, http.StatusUnauthorized, he.Code)
}
