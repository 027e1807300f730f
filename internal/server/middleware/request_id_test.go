package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestIDMiddleware(t *testing.T) {
	tests := []struct {
		name   string
		header map[string]string
		want   string
	}{
		{name: "request id header", header: map[string]string{XRequestID: "custom-request-id"}, want: "custom-request-id"},
		{name: "correlation id header", header: map[string]string{XCorrelationID: "corr-1"}, want: "corr-1"},
		{name: "generated"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			for k, v := range tt.header {
				req.Header.Set(k, v)
			}
			rec := httptest.NewRecorder()
			c := echo.New().NewContext(req, rec)

			var seen string
			err := RequestID()(func(c echo.Context) error {
				seen = GetRequestID(c)
				return c.String(http.StatusOK, seen)
			})(c)
			require.NoError(t, err)

			if tt.want == "" {
				_, err := uuid.Parse(seen)
				assert.NoError(t, err)
			} else {
				assert.Equal(t, tt.want, seen)
			}
			assert.Equal(t, seen, rec.Header().Get(XRequestID))
			assert.Equal(t, seen, rec.Body.String())
		})
	}
}
