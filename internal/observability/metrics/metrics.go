// Package metrics exports domain counters over OTLP and HTTP metrics for
// prometheus scrape.
package metrics

import (
	"context"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"
	"go.uber.org/fx"
)

// Config controls metric exporting.
type Config struct {
	Enabled          bool
	ServiceName      string
	Environment      string
	ExporterEndpoint string
	ExporterProtocol string
}

// NewProvider wires an OTLP meter provider and registers it globally.
func NewProvider(lc fx.Lifecycle, cfg Config) (*sdkmetric.MeterProvider, error) {
	res := resource.NewWithAttributes(
		semconv.SchemaURL,
		semconv.ServiceName(cfg.ServiceName),
		semconv.DeploymentEnvironment(cfg.Environment),
	)

	opts := []sdkmetric.Option{sdkmetric.WithResource(res)}
	if cfg.Enabled {
		exporter, err := newExporter(cfg)
		if err != nil {
			return nil, err
		}
		opts = append(opts, sdkmetric.WithReader(
			sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(30*time.Second)),
		))
	}

	provider := sdkmetric.NewMeterProvider(opts...)
	otel.SetMeterProvider(provider)

	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
			defer cancel()
			return provider.Shutdown(shutdownCtx)
		},
	})

	return provider, nil
}

func newExporter(cfg Config) (sdkmetric.Exporter, error) {
	ctx := context.Background()
	switch cfg.ExporterProtocol {
	case "http", "http/protobuf":
		return otlpmetrichttp.New(ctx,
			otlpmetrichttp.WithEndpoint(cfg.ExporterEndpoint),
			otlpmetrichttp.WithInsecure(),
		)
	default:
		return otlpmetricgrpc.New(ctx,
			otlpmetricgrpc.WithEndpoint(cfg.ExporterEndpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	}
}

// Metrics holds the domain counters.
type Metrics struct {
	entriesIngested metric.Int64Counter
	extractions     metric.Int64Counter
}

func New(_ *sdkmetric.MeterProvider) (*Metrics, error) {
	meter := otel.Meter("screenclash")

	entries, err := meter.Int64Counter("screentime.entries.ingested",
		metric.WithDescription("screen-time entries accepted"))
	if err != nil {
		return nil, err
	}

	extractions, err := meter.Int64Counter("vision.extractions",
		metric.WithDescription("screenshot extraction attempts"))
	if err != nil {
		return nil, err
	}

	return &Metrics{entriesIngested: entries, extractions: extractions}, nil
}

// RecordEntryIngested counts one accepted entry by source ("ai" or "manual").
func (m *Metrics) RecordEntryIngested(ctx context.Context, source string) {
	if m == nil {
		return
	}
	m.entriesIngested.Add(ctx, 1, metric.WithAttributes(attribute.String("source", source)))
}

// RecordExtraction counts one extraction attempt by outcome.
func (m *Metrics) RecordExtraction(ctx context.Context, outcome string) {
	if m == nil {
		return
	}
	m.extractions.Add(ctx, 1, metric.WithAttributes(attribute.String("outcome", outcome)))
}
