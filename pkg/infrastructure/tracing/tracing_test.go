package tracing

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.opentelemetry.io/otel"

	"github.com/vsinha/takeoff/pkg/infrastructure/config"
	"github.com/vsinha/takeoff/pkg/infrastructure/logger"
)

func TestInit_Disabled(t *testing.T) {
	before := otel.GetTracerProvider()

	shutdown := Init(context.Background(), logger.NewNop(), config.TracingConfig{Enabled: false}, "test")

	assert.NoError(t, shutdown(context.Background()))
	assert.Equal(t, before, otel.GetTracerProvider(), "disabled tracing must not replace the global provider")
}

func TestInit_StdoutExporter(t *testing.T) {
	before := otel.GetTracerProvider()
	t.Cleanup(func() { otel.SetTracerProvider(before) })

	shutdown := Init(context.Background(), logger.NewNop(), config.TracingConfig{
		Enabled:     true,
		ServiceName: "takeoff-test",
		SampleRatio: 1,
	}, "test")

	_, span := otel.Tracer("tracing_test").Start(context.Background(), "probe")
	assert.True(t, span.SpanContext().IsValid())
	span.End()

	assert.NoError(t, shutdown(context.Background()))
}
