package middleware

import (
	"net/http"
	"regexp"
	"strings"

	"github.com/labstack/echo/v4"
)

var (
	corsAllowMethods = strings.Join([]string{
		http.MethodOptions, http.MethodGet, http.MethodHead,
		http.MethodPost, http.MethodPatch, http.MethodDelete,
	}, ", ")
	// `*` alone does not cover Authorization in Safari 12
	corsAllowHeaders  = "*, " + echo.HeaderAuthorization + ", " + HeaderSessionID
	corsExposeHeaders = HeaderSessionID + ", " + XRequestID
)

// CORS allows origins matching pattern. The session and request id headers
// are exposed so browser clients can keep their cart session.
func CORS(pattern *regexp.Regexp) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			respHeader := c.Response().Header()
			respHeader.Add(echo.HeaderVary, echo.HeaderOrigin)
			origin := c.Request().Header.Get(echo.HeaderOrigin)
			if origin == "" || !pattern.MatchString(origin) {
				return next(c)
			}
			respHeader.Set(echo.HeaderAccessControlAllowOrigin, origin)
			respHeader.Set(echo.HeaderAccessControlExposeHeaders, corsExposeHeaders)
			if c.Request().Method == http.MethodOptions {
				respHeader.Set(echo.HeaderAccessControlAllowHeaders, corsAllowHeaders)
				respHeader.Set(echo.HeaderAccessControlAllowMethods, corsAllowMethods)
				return c.NoContent(http.StatusNoContent)
			}
			return next(c)
		}
	}
}
