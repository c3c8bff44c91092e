package telemetry_test

import (
	"context"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"

	"github.com/jsamuelsen11/todo-service/internal/platform/telemetry"
)

func TestSetup_Disabled(t *testing.T) {
	t.Parallel()

	p, err := telemetry.Setup(context.Background(), telemetry.Options{Enabled: false, Exporter: "ignored"})
	require.NoError(t, err)
	assert.Nil(t, p.Metrics)
	assert.NoError(t, p.Shutdown(context.Background()))
}

// Setup touches the global providers, so these tests do not run in parallel.

func TestSetup_Stdout(t *testing.T) {
	ctx := context.Background()

	p, err := telemetry.Setup(ctx, telemetry.Options{
		Enabled:     true,
		ServiceName: "todo-service-test",
		Exporter:    telemetry.ExporterStdout,
	})
	require.NoError(t, err)
	t.Cleanup(func() { assert.NoError(t, p.Shutdown(ctx)) })

	require.NotNil(t, p.Metrics)
	p.Metrics.StoreOperationTotal.Add(ctx, 1)

	fields := otel.GetTextMapPropagator().Fields()
	assert.Contains(t, fields, "traceparent")
	assert.Contains(t, fields, "baggage")
}

func TestSetup_OTLP(t *testing.T) {
	ctx := context.Background()

	p, err := telemetry.Setup(ctx, telemetry.Options{
		Enabled:     true,
		ServiceName: "todo-service-test",
		Exporter:    telemetry.ExporterOTLP,
		Endpoint:    "http://localhost:4318",
	})
	require.NoError(t, err)
	// No collector is listening, so the final flush may fail.
	t.Cleanup(func() { _ = p.Shutdown(ctx) })

	assert.NotNil(t, p.Metrics)
}

func TestSetup_RejectsBadExporter(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		exporter string
		endpoint string
	}{
		{"unknown exporter", "zipkin", ""},
		{"otlp without endpoint", telemetry.ExporterOTLP, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			ctx := context.Background()

			_, err := telemetry.InitTracer(ctx, "svc", tt.exporter, tt.endpoint)
			assert.Error(t, err, "InitTracer")

			_, err = telemetry.InitMeter(ctx, "svc", tt.exporter, tt.endpoint)
			assert.Error(t, err, "InitMeter")
		})
	}
}

func TestNewMetrics_RegistersInstruments(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	reader := sdkmetric.NewManualReader()
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	t.Cleanup(func() { _ = mp.Shutdown(ctx) })

	m, err := telemetry.NewMetrics(mp, "todo-service-test")
	require.NoError(t, err)

	m.ServerRequestDuration.Record(ctx, 0.01)
	m.ServerRequestTotal.Add(ctx, 1)
	m.StoreOperationDuration.Record(ctx, 0.002)
	m.StoreOperationTotal.Add(ctx, 1)

	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(ctx, &rm))
	require.Len(t, rm.ScopeMetrics, 1)

	var names []string
	for _, md := range rm.ScopeMetrics[0].Metrics {
		names = append(names, md.Name)
	}
	slices.Sort(names)
	assert.Equal(t, []string{
		"http.server.request.duration",
		"http.server.request.total",
		"store.operation.duration",
		"store.operation.total",
	}, names)
}

func TestNewMetrics_NoopProvider(t *testing.T) {
	t.Parallel()

	m, err := telemetry.NewMetrics(noop.NewMeterProvider(), "todo-service-test")
	require.NoError(t, err)

	m.StoreOperationTotal.Add(context.Background(), 1)
}
