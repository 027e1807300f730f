package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/nguyentranbao-ct/storefront/pkg/logger/log"
	"golang.org/x/sync/errgroup"
)

const healthCheckTimeout = 2 * time.Second

// HealthCheck is contributed to the "health" fx group by every optional
// backend that is enabled.
type HealthCheck struct {
	Name  string
	Check func(ctx context.Context) error
}

type healthResponse struct {
	Status       string            `json:"status"`
	Service      string            `json:"service"`
	Dependencies map[string]string `json:"dependencies,omitempty"`
}

// Health runs every check concurrently. Any failing dependency turns the
// response into a 503.
func (h *controller) Health(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), healthCheckTimeout)
	defer cancel()

	var mu sync.Mutex
	deps := make(map[string]string, len(h.checks))
	healthy := true

	var g errgroup.Group
	for _, check := range h.checks {
		g.Go(func() error {
			state := "ok"
			if err := check.Check(ctx); err != nil {
				log.Warnw(ctx, "health check failed", "dependency", check.Name, "error", err)
				state = err.Error()
			}
			mu.Lock()
			defer mu.Unlock()
			deps[check.Name] = state
			if state != "ok" {
				healthy = false
			}
			return nil
		})
	}
	_ = g.Wait()

	resp := healthResponse{Status: "healthy", Service: "storefront", Dependencies: deps}
	code := http.StatusOK
	if !healthy {
		resp.Status = "unhealthy"
		code = http.StatusServiceUnavailable
	}
	return c.JSON(code, resp)
}
