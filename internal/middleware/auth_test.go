package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func signTestToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func TestParseTokenRoundTrip(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "test-secret")

	tokenString := signTestToken(t, "test-secret", jwt.MapClaims{
		"user_id": "user-1",
		"email":   "resident@ecotrack.com",
		"role":    "resident",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	claims, err := ParseToken(tokenString)
	require.NoError(t, err)
	assert.Equal(t, "user-1", claims.UserID)
	assert.Equal(t, "resident@ecotrack.com", claims.Email)
	assert.Equal(t, "resident", claims.Role)
}

func TestParseTokenRejections(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "test-secret")

	tests := []struct {
		name  string
		token string
	}{
		{"garbage", "not-a-token"},
		{"wrong secret", signTestToken(t, "other-secret", jwt.MapClaims{
			"user_id": "user-1",
			"exp":     time.Now().Add(time.Hour).Unix(),
		})},
		{"expired", signTestToken(t, "test-secret", jwt.MapClaims{
			"user_id": "user-1",
			"exp":     time.Now().Add(-time.Hour).Unix(),
		})},
		{"missing user_id", signTestToken(t, "test-secret", jwt.MapClaims{
			"email": "resident@ecotrack.com",
			"exp":   time.Now().Add(time.Hour).Unix(),
		})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseToken(tt.token)
			assert.Error(t, err)
		})
	}
}

func TestAuthMiddleware(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims, ok := GetUserFromContext(r)
		require.True(t, ok)
		assert.Equal(t, "user-1", claims.UserID)
		w.WriteHeader(http.StatusOK)
	})

	tokenString := signTestToken(t, "test-secret", jwt.MapClaims{
		"user_id": "user-1",
		"email":   "resident@ecotrack.com",
		"role":    "resident",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/waste", nil)
	req.Header.Set("Authorization", "Bearer "+tokenString)
	rec := httptest.NewRecorder()

	Auth(next).ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		t.Fatal("handler must not run without valid auth")
	})

	tests := []struct {
		name   string
		header string
	}{
		{"no header", ""},
		{"not bearer", "Basic abc123"},
		{"bad token", "Bearer nope"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/api/waste", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			rec := httptest.NewRecorder()

			Auth(next).ServeHTTP(rec, req)
			assert.Equal(t, http.StatusUnauthorized, rec.Code)
		})
	}
}

func TestRequireRole(t *testing.T) {
	t.Setenv("APP_JWT_SECRET", "test-secret")

	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	protected := Auth(RequireRole("admin")(next))

	adminToken := signTestToken(t, "test-secret", jwt.MapClaims{
		"user_id": "admin-1",
		"role":    "admin",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	residentToken := signTestToken(t, "test-secret", jwt.MapClaims{
		"user_id": "user-1",
		"role":    "resident",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	rec := httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)

	req = httptest.NewRequest(http.MethodGet, "/api/admin/stats", nil)
	req.Header.Set("Authorization", "Bearer "+residentToken)
	rec = httptest.NewRecorder()
	protected.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusForbidden, rec.Code)
}
