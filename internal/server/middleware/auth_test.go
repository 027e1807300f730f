package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/nguyentranbao-ct/storefront/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func signToken(t *testing.T, method jwt.SigningMethod, key any, claims jwt.RegisteredClaims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString(key)
	require.NoError(t, err)
	return token
}

func TestJWTAuth(t *testing.T) {
	valid := jwt.RegisteredClaims{
		Subject:   "user-1",
		Issuer:    "identity",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}
	expired := valid
	expired.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Minute))
	noSubject := valid
	noSubject.Subject = ""
	otherIssuer := valid
	otherIssuer.Issuer = "someone-else"

	tests := []struct {
		name       string
		secret     string
		auth       string
		wantStatus int
		wantUser   string
	}{
		{
			name:       "valid token",
			secret:     testSecret,
			auth:       "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), valid),
			wantStatus: http.StatusOK,
			wantUser:   "user-1",
		},
		{
			name:       "lowercase scheme",
			secret:     testSecret,
			auth:       "bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), valid),
			wantStatus: http.StatusOK,
			wantUser:   "user-1",
		},
		{name: "missing header", secret: testSecret, wantStatus: http.StatusUnauthorized},
		{name: "wrong scheme", secret: testSecret, auth: "Basic dXNlcjpwYXNz", wantStatus: http.StatusUnauthorized},
		{
			name:       "wrong secret",
			secret:     testSecret,
			auth:       "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte("other"), valid),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "other algorithm",
			secret:     testSecret,
			auth:       "Bearer " + signToken(t, jwt.SigningMethodHS512, []byte(testSecret), valid),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "expired",
			secret:     testSecret,
			auth:       "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), expired),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no subject",
			secret:     testSecret,
			auth:       "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), noSubject),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "unexpected issuer",
			secret:     testSecret,
			auth:       "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), otherIssuer),
			wantStatus: http.StatusUnauthorized,
		},
		{
			name:       "no secret configured",
			auth:       "Bearer " + signToken(t, jwt.SigningMethodHS256, []byte(testSecret), valid),
			wantStatus: http.StatusUnauthorized,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := echo.New()
			e.Use(JWTAuth(config.AuthConfig{JWTSecret: tt.secret, Issuer: "identity"}))
			e.GET("/me", func(c echo.Context) error {
				return c.String(http.StatusOK, GetUserID(c))
			})

			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.auth != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.auth)
			}
			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantUser, rec.Body.String())
			} else {
				assert.JSONEq(t, `{"error":"Unauthorized"}`, rec.Body.String())
			}
		})
	}
}
