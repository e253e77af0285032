package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/airport-booking/internal/model"
	"github.com/iliyamo/airport-booking/internal/utils"
)

const testSecret = "unit-test-secret"

func logoutContext(t *testing.T, authorization string) echo.Context {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	if authorization != "" {
		req.Header.Set("Authorization", authorization)
	}
	return e.NewContext(req, httptest.NewRecorder())
}

// The logout route runs without the JWT middleware, so a caller sending
// only a bearer token must still be identified from the raw header.
func TestBearerUserID(t *testing.T) {
	access, err := utils.NewAccessToken(testSecret, 42, model.RoleCustomer, 5)
	require.NoError(t, err)

	t.Run("valid bearer resolves the subject", func(t *testing.T) {
		c := logoutContext(t, "Bearer "+access.Token)
		uid, ok := bearerUserID(c, testSecret)
		assert.True(t, ok)
		assert.Equal(t, uint64(42), uid)
	})

	t.Run("wrong secret rejected", func(t *testing.T) {
		c := logoutContext(t, "Bearer "+access.Token)
		_, ok := bearerUserID(c, "some-other-secret")
		assert.False(t, ok)
	})

	t.Run("missing header rejected", func(t *testing.T) {
		c := logoutContext(t, "")
		_, ok := bearerUserID(c, testSecret)
		assert.False(t, ok)
	})

	t.Run("malformed token rejected", func(t *testing.T) {
		c := logoutContext(t, "Bearer not.a.jwt")
		_, ok := bearerUserID(c, testSecret)
		assert.False(t, ok)
	})

	t.Run("string subject parsed", func(t *testing.T) {
		tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "7"})
		signed, err := tok.SignedString([]byte(testSecret))
		require.NoError(t, err)

		c := logoutContext(t, "Bearer "+signed)
		uid, ok := bearerUserID(c, testSecret)
		assert.True(t, ok)
		assert.Equal(t, uint64(7), uid)
	})
}

// With neither a refresh token nor a usable bearer the handler must
// refuse instead of silently revoking nothing.
func TestLogoutWithoutCredentials(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodPost, "/v1/auth/logout", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	h := &AuthHandler{}
	h.Cfg.JWTSecret = testSecret

	require.NoError(t, h.Logout(c))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "Authorization header or refresh_token")
}
