package telemetry

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
	"go.uber.org/zap"
)

func TestNewTracerProvider_Disabled(t *testing.T) {
	tp, err := NewTracerProvider(context.Background(), Config{Enabled: false}, zap.NewNop())
	require.NoError(t, err)
	assert.NotNil(t, tp)
	assert.NoError(t, tp.Shutdown(context.Background()))
}

func TestStartServiceSpan(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(provider)
	defer otel.SetTracerProvider(sdktrace.NewTracerProvider())

	ctx, span := StartServiceSpan(context.Background(), "product_sync", "sync_one",
		attribute.String("sku", "SKU-1"))
	assert.NotNil(t, ctx)
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	assert.Equal(t, "product_sync.sync_one", spans[0].Name)
}

func TestRecordError(t *testing.T) {
	exporter := tracetest.NewInMemoryExporter()
	provider := sdktrace.NewTracerProvider(
		sdktrace.WithSyncer(exporter),
	)
	otel.SetTracerProvider(provider)
	defer otel.SetTracerProvider(sdktrace.NewTracerProvider())

	_, span := StartSpan(context.Background(), "failing_op")
	RecordError(span, errors.New("remote unavailable"))
	span.End()

	spans := exporter.GetSpans()
	require.Len(t, spans, 1)
	require.Len(t, spans[0].Events, 1)
	assert.Equal(t, "exception", spans[0].Events[0].Name)

	// Nil-safe
	RecordError(nil, errors.New("ignored"))
	RecordError(span, nil)
}
