package metrics

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

// Config configures the metrics provider.
type Config struct {
	Enabled          bool
	ExporterEndpoint string
	ExporterProtocol string
	ServiceName      string
	Environment      string
}

// Metrics exposes engine-level instruments.
type Metrics struct {
	rateLookups      metric.Int64Counter
	rateMisses       metric.Int64Counter
	invoicesIssued   metric.Int64Counter
	invoicesCleared  metric.Int64Counter
	numbersAllocated metric.Int64Counter
}

// NewProvider configures and registers the meter provider.
func NewProvider(lc fx.Lifecycle, cfg Config, log *zap.Logger) (metric.MeterProvider, error) {
	if !cfg.Enabled {
		provider := noop.NewMeterProvider()
		otel.SetMeterProvider(provider)
		return provider, nil
	}

	exporter, err := newExporter(cfg.ExporterProtocol, cfg.ExporterEndpoint)
	if err != nil {
		return nil, err
	}

	reader := sdkmetric.NewPeriodicReader(exporter, sdkmetric.WithInterval(10*time.Second))
	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader))
	otel.SetMeterProvider(provider)

	if lc != nil {
		lc.Append(fx.Hook{
			OnStop: func(ctx context.Context) error {
				if log != nil {
					log.Info("shutting down meter provider")
				}
				shutdownCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
				defer cancel()
				return provider.Shutdown(shutdownCtx)
			},
		})
	}

	return provider, nil
}

func newExporter(protocol, endpoint string) (sdkmetric.Exporter, error) {
	switch protocol {
	case "http", "http/protobuf":
		return otlpmetrichttp.New(context.Background(),
			otlpmetrichttp.WithEndpoint(endpoint),
			otlpmetrichttp.WithInsecure(),
		)
	case "", "grpc":
		return otlpmetricgrpc.New(context.Background(),
			otlpmetricgrpc.WithEndpoint(endpoint),
			otlpmetricgrpc.WithInsecure(),
		)
	default:
		return nil, fmt.Errorf("unsupported otlp protocol %q", protocol)
	}
}

// New builds the engine instruments on the registered meter provider.
func New(provider metric.MeterProvider) (*Metrics, error) {
	meter := provider.Meter("lingora/engine")

	rateLookups, err := meter.Int64Counter("pricing_rate_lookups_total",
		metric.WithDescription("Rate resolver lookups, by outcome layer"))
	if err != nil {
		return nil, err
	}
	rateMisses, err := meter.Int64Counter("pricing_rate_misses_total",
		metric.WithDescription("Rate resolver lookups that found no eligible row"))
	if err != nil {
		return nil, err
	}
	invoicesIssued, err := meter.Int64Counter("invoices_issued_total",
		metric.WithDescription("Orders stamped with invoicing metadata"))
	if err != nil {
		return nil, err
	}
	invoicesCleared, err := meter.Int64Counter("invoices_cleared_total",
		metric.WithDescription("Orders whose invoicing metadata was cleared"))
	if err != nil {
		return nil, err
	}
	numbersAllocated, err := meter.Int64Counter("sequence_numbers_allocated_total",
		metric.WithDescription("Sequence numbers allocated, by kind"))
	if err != nil {
		return nil, err
	}

	return &Metrics{
		rateLookups:      rateLookups,
		rateMisses:       rateMisses,
		invoicesIssued:   invoicesIssued,
		invoicesCleared:  invoicesCleared,
		numbersAllocated: numbersAllocated,
	}, nil
}

func (m *Metrics) RecordRateLookup(ctx context.Context, layer string) {
	if m == nil || m.rateLookups == nil {
		return
	}
	m.rateLookups.Add(ctx, 1, metric.WithAttributes(attribute.String("layer", layer)))
}

func (m *Metrics) RecordRateMiss(ctx context.Context) {
	if m == nil || m.rateMisses == nil {
		return
	}
	m.rateMisses.Add(ctx, 1)
}

func (m *Metrics) RecordInvoicesIssued(ctx context.Context, count int, providerSource string) {
	if m == nil || m.invoicesIssued == nil {
		return
	}
	m.invoicesIssued.Add(ctx, int64(count), metric.WithAttributes(attribute.String("provider_source", providerSource)))
}

func (m *Metrics) RecordInvoiceCleared(ctx context.Context) {
	if m == nil || m.invoicesCleared == nil {
		return
	}
	m.invoicesCleared.Add(ctx, 1)
}

func (m *Metrics) RecordNumberAllocated(ctx context.Context, kind string) {
	if m == nil || m.numbersAllocated == nil {
		return
	}
	m.numbersAllocated.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind)))
}
