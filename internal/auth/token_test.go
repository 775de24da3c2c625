package auth

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenRoundTrip(t *testing.T) {
	secret := "test_secret"
	userID := uuid.New()

	t.Run("Success", func(t *testing.T) {
		token, err := GenerateToken(secret, userID, "user@example.com", "user")
		require.NoError(t, err)
		require.NotEmpty(t, token)

		claims, err := ParseToken(secret, token)
		assert.NoError(t, err)
		assert.Equal(t, userID.String(), claims.UserID)
		assert.Equal(t, "user@example.com", claims.Email)
		assert.Equal(t, "user", claims.Role)
	})

	t.Run("Error - Wrong Secret", func(t *testing.T) {
		token, err := GenerateToken(secret, userID, "user@example.com", "user")
		require.NoError(t, err)

		_, err = ParseToken("other_secret", token)
		assert.ErrorIs(t, err, ErrInvalidToken)
	})

	t.Run("Error - Garbage Token", func(t *testing.T) {
		_, err := ParseToken(secret, "not.a.token")
		assert.ErrorIs(t, err, ErrInvalidToken)
	})
}

func TestExtractAccessToken(t *testing.T) {
	t.Run("Cookie Preferred", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: "cookie_token"})
		// Add header as well to ensure cookie takes precedence
		req.Header.Set("Authorization", "Bearer header_token")

		token := ExtractAccessToken(req)
		assert.Equal(t, "cookie_token", token)
	})

	t.Run("Header Fallback", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Bearer header_token")

		token := ExtractAccessToken(req)
		assert.Equal(t, "header_token", token)
	})

	t.Run("Empty Cookie Falls Back to Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.AddCookie(&http.Cookie{Name: "access_token", Value: ""})
		req.Header.Set("Authorization", "Bearer header_token")

		token := ExtractAccessToken(req)
		assert.Equal(t, "header_token", token)
	})

	t.Run("No Token", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)

		token := ExtractAccessToken(req)
		assert.Empty(t, token)
	})

	t.Run("Malformed Header", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/", nil)
		req.Header.Set("Authorization", "Basic user:pass")

		token := ExtractAccessToken(req)
		assert.Empty(t, token)
	})
}
