package middleware

import (
	"context"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/retailpos/backend/internal/infrastructure/telemetry"
)

// profilingSkipPrefixes are not worth labelling
var profilingSkipPrefixes = []string{"/health", "/metrics", "/swagger"}

// Profiling tags CPU samples taken while serving a request with its route,
// method and controller so Pyroscope can slice profiles per endpoint
func Profiling(enabled bool) gin.HandlerFunc {
	if !enabled {
		return func(c *gin.Context) {
			c.Next()
		}
	}

	return func(c *gin.Context) {
		path := c.Request.URL.Path
		for _, prefix := range profilingSkipPrefixes {
			if strings.HasPrefix(path, prefix) {
				c.Next()
				return
			}
		}

		route := c.FullPath()
		labels := telemetry.HTTPRequestLabels(route, c.Request.Method)
		if controller := controllerFromRoute(route); controller != "" {
			labels[telemetry.ProfilingLabelController] = controller
		}

		telemetry.WithProfilingLabels(c.Request.Context(), labels, func(ctx context.Context) {
			c.Request = c.Request.WithContext(ctx)
			c.Next()
		})
	}
}

// controllerFromRoute returns the resource segment of an API route,
// e.g. "sales" for /api/v1/sales/:id/process_payment
func controllerFromRoute(route string) string {
	rest, ok := strings.CutPrefix(route, "/api/v1/")
	if !ok {
		return ""
	}
	resource, _, _ := strings.Cut(rest, "/")
	return resource
}
