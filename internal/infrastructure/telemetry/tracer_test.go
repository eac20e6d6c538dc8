package telemetry

import (
	"context"
	"testing"

	"github.com/retailpos/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), config.TelemetryConfig{ServiceName: "pos"}, zap.NewNop())
	require.NoError(t, err)

	assert.False(t, tp.IsEnabled())
	assert.NotNil(t, tp.Tracer("x"))
	assert.NoError(t, tp.ForceFlush(context.Background()))
	assert.NoError(t, tp.Shutdown(context.Background()))

	tp.EnableSpanProfiles()
	assert.False(t, tp.spanProfilesEnabled)
}

func TestSampler(t *testing.T) {
	traceID := trace.TraceID{0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff}
	params := sdktrace.SamplingParameters{ParentContext: context.Background(), TraceID: traceID, Name: "span"}

	tests := []struct {
		name     string
		ratio    float64
		expected sdktrace.SamplingDecision
	}{
		{"always", 1, sdktrace.RecordAndSample},
		{"above one", 2, sdktrace.RecordAndSample},
		{"never", 0, sdktrace.Drop},
		{"negative", -1, sdktrace.Drop},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, sampler(tt.ratio).ShouldSample(params).Decision)
		})
	}

	assert.Contains(t, sampler(0.25).Description(), "ParentBased")
}

func TestTracerProvider_WithSDK(t *testing.T) {
	withRecorder(t)

	provider := sdktrace.NewTracerProvider()
	tp := newTracerProviderWithSDK(provider, zap.NewNop())
	assert.True(t, tp.IsEnabled())

	tp.EnableSpanProfiles()
	tp.EnableSpanProfiles()
	assert.True(t, tp.spanProfilesEnabled)

	_, span := tp.Tracer("test").Start(context.Background(), "op")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, tp.Shutdown(context.Background()))
}
