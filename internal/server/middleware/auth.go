package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/nguyentranbao-ct/storefront/internal/config"
)

const userKey = "user"

var errUnauthorized = map[string]string{"error": "Unauthorized"}

// JWTAuth accepts HS256 bearer tokens signed by the identity provider. The
// parsed token is stored under "user" with *jwt.RegisteredClaims, which is
// where GetUserID and the `jwt` binding tags look for it.
func JWTAuth(cfg config.AuthConfig) echo.MiddlewareFunc {
	secret := []byte(cfg.JWTSecret)
	opts := []jwt.ParserOption{jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok || len(secret) == 0 {
				return c.JSON(http.StatusUnauthorized, errUnauthorized)
			}

			claims := &jwt.RegisteredClaims{}
			token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
				return secret, nil
			}, opts...)
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, errUnauthorized)
			}
			if err := checkClaims(claims, cfg.Issuer); err != nil {
				return c.JSON(http.StatusUnauthorized, errUnauthorized)
			}

			c.Set(userKey, token)
			return next(c)
		}
	}
}

func bearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(header, " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

func checkClaims(claims *jwt.RegisteredClaims, issuer string) error {
	if claims.Subject == "" {
		return errors.New("token has no subject")
	}
	if issuer != "" && !claims.VerifyIssuer(issuer, true) {
		return errors.New("unexpected issuer")
	}
	return nil
}
