package middleware

import (
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/nguyentranbao-ct/storefront/pkg/logger/log"
)

const (
	HeaderSessionID = "X-Session-ID"

	sessionKey       = "session_id"
	maxSessionIDSize = 128
)

// Session resolves the cart session of a request from the X-Session-ID header.
// A missing or oversized id is replaced by a fresh one. The resolved id is
// written back to the request header, so handlers can bind it, and echoed in
// the response.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			req := c.Request()
			id := req.Header.Get(HeaderSessionID)
			if id == "" || len(id) > maxSessionIDSize {
				id = uuid.NewString()
				req.Header.Set(HeaderSessionID, id)
			}

			c.Set(sessionKey, id)
			c.SetRequest(req.WithContext(log.WithFields(req.Context(), sessionKey, id)))
			c.Response().Header().Set(HeaderSessionID, id)
			return next(c)
		}
	}
}

func GetSessionID(c echo.Context) string {
	id, _ := c.Get(sessionKey).(string)
	return id
}
