// Package telemetry wires OpenTelemetry tracing, metrics and logs plus
// Pyroscope profiling for the point-of-sale API.
package telemetry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.37.0"
)

// ServiceVersion is reported on every exported resource
var ServiceVersion = "1.0.0"

const shutdownTimeout = 10 * time.Second

func newResource(serviceName string) (*resource.Resource, error) {
	res, err := resource.Merge(
		resource.Default(),
		resource.NewWithAttributes(
			semconv.SchemaURL,
			semconv.ServiceName(serviceName),
			semconv.ServiceVersion(ServiceVersion),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}
	return res, nil
}

// shutdownFunc is implemented by the SDK providers
type shutdownFunc func(ctx context.Context) error

func shutdownWithTimeout(ctx context.Context, fn shutdownFunc) error {
	ctx, cancel := context.WithTimeout(ctx, shutdownTimeout)
	defer cancel()
	return fn(ctx)
}

// Shutdown stops every non-nil component and joins their errors
func Shutdown(ctx context.Context, components ...interface{ Shutdown(context.Context) error }) error {
	var errs []error
	for _, c := range components {
		if c == nil {
			continue
		}
		if err := c.Shutdown(ctx); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
