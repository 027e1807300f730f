package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBindHeader(t *testing.T) {
	type sessionHeaders struct {
		SessionID string `header:"X-Session-ID"`
		Client    string `header:"x-client"`

		Ignored string `header:"-"`
		Plain   bool
	}

	type numericHeaders struct {
		Page     int64   `header:"x-page"`
		Limit    uint64  `header:"x-limit"`
		Offset   int64   `header:"x-offset"`
		Discount float32 `header:"x-discount"`
	}

	tests := []struct {
		name   string
		header map[string]string
		out    any
		want   any
	}{
		{
			name: "strings",
			header: map[string]string{
				"X-Session-ID": "s-1",
				"x-client":     "web",
				"ignored":      "value",
				"plain":        "true",
			},
			out:  new(sessionHeaders),
			want: &sessionHeaders{SessionID: "s-1", Client: "web"},
		},
		{
			name: "numbers",
			header: map[string]string{
				"x-page":     "9",
				"x-limit":    "1007",
				"x-offset":   "-32",
				"x-discount": "100.6",
			},
			out:  new(numericHeaders),
			want: &numericHeaders{Page: 9, Limit: 1007, Offset: -32, Discount: 100.6},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			header := http.Header{}
			for k, v := range tt.header {
				header.Set(k, v)
			}
			require.NoError(t, bindHeader(header, tt.out))
			assert.Equal(t, tt.want, tt.out)
		})
	}
}

func newJwtContext(claims *jwt.RegisteredClaims) echo.Context {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	c := e.NewContext(req, httptest.NewRecorder())
	if claims != nil {
		c.Set("user", &jwt.Token{Claims: claims})
	}
	return c
}

func TestBindJwt(t *testing.T) {
	type identity struct {
		UserID   string `jwt:"sub"`
		Issuer   string `jwt:"iss"`
		TokenID  string `jwt:"jti"`
		Audience string `jwt:"aud"`
		IssuedAt int64  `jwt:"iat"`
		Expires  int64  `jwt:"exp"`
		NotAfter string `jwt:"nbf"`
	}

	t.Run("registered claims", func(t *testing.T) {
		c := newJwtContext(&jwt.RegisteredClaims{
			Subject:   "user-1",
			Issuer:    "identity",
			ID:        "jti-1",
			Audience:  jwt.ClaimStrings{"web", "app"},
			IssuedAt:  jwt.NewNumericDate(time.Unix(1700000000, 0)),
			ExpiresAt: jwt.NewNumericDate(time.Unix(1700003600, 0)),
		})

		var got identity
		require.NoError(t, bindJwt(c, &got))
		assert.Equal(t, identity{
			UserID:   "user-1",
			Issuer:   "identity",
			TokenID:  "jti-1",
			Audience: "web;app",
			IssuedAt: 1700000000,
			Expires:  1700003600,
			NotAfter: "0",
		}, got)
		assert.Equal(t, "user-1", GetUserID(c))
	})

	t.Run("no token", func(t *testing.T) {
		c := newJwtContext(nil)
		var got identity
		require.NoError(t, bindJwt(c, &got))
		assert.Equal(t, identity{}, got)
		assert.Empty(t, GetUserID(c))
	})

	t.Run("wrong type", func(t *testing.T) {
		type invalid struct {
			Audience bool `jwt:"aud"`
		}
		c := newJwtContext(&jwt.RegisteredClaims{Audience: jwt.ClaimStrings{"not boolean"}})
		err := bindJwt(c, &invalid{})
		assert.ErrorContains(t, err, "cannot parse invalid.Audience as bool")
	})

	t.Run("unsupported claim", func(t *testing.T) {
		type custom struct {
			Role string `jwt:"role"`
		}
		c := newJwtContext(&jwt.RegisteredClaims{Subject: "user-1"})
		assert.EqualError(t, bindJwt(c, &custom{}), "binding jwt field role is not supported")
	})
}
