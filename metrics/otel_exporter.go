package metrics

import (
	"context"
	"fmt"
	"net/http"

	promclient "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
)

// OTelExporter provides OpenTelemetry metrics export following OTel standards
type OTelExporter struct {
	meterProvider *sdkmetric.MeterProvider
	registry      *promclient.Registry
	collector     Collector

	// OTel meters and instruments
	meter         metric.Meter
	webhooksGauge metric.Int64ObservableGauge
	hitsGauge     metric.Int64ObservableGauge
	recentGauge   metric.Int64ObservableGauge
}

// NewOTelExporter creates a new OpenTelemetry metrics exporter with Prometheus format
func NewOTelExporter(collector Collector) (*OTelExporter, error) {
	// each exporter owns its registry so several can coexist in one process
	registry := promclient.NewRegistry()
	exporter, err := prometheus.New(prometheus.WithRegisterer(registry))
	if err != nil {
		return nil, fmt.Errorf("creating prometheus exporter: %w", err)
	}

	meterProvider := sdkmetric.NewMeterProvider(
		sdkmetric.WithReader(exporter),
	)
	otel.SetMeterProvider(meterProvider)

	meter := meterProvider.Meter(
		"hookbin",
		metric.WithInstrumentationVersion("1.0.0"),
	)

	oe := &OTelExporter{
		meterProvider: meterProvider,
		registry:      registry,
		collector:     collector,
		meter:         meter,
	}

	if err := oe.registerInstruments(); err != nil {
		return nil, fmt.Errorf("registering instruments: %w", err)
	}

	return oe, nil
}

// registerInstruments creates and registers all OpenTelemetry metric instruments
func (oe *OTelExporter) registerInstruments() error {
	var err error

	oe.webhooksGauge, err = oe.meter.Int64ObservableGauge(
		"hookbin.webhooks",
		metric.WithDescription("Number of registered hooks"),
		metric.WithUnit("{webhooks}"),
		metric.WithInt64Callback(oe.observeWebhooks),
	)
	if err != nil {
		return fmt.Errorf("creating webhooks gauge: %w", err)
	}

	// Hits gauge (per slug)
	oe.hitsGauge, err = oe.meter.Int64ObservableGauge(
		"hookbin.hits",
		metric.WithDescription("Deliveries received per hook since its last reset"),
		metric.WithUnit("{deliveries}"),
		metric.WithInt64Callback(oe.observeHits),
	)
	if err != nil {
		return fmt.Errorf("creating hits gauge: %w", err)
	}

	oe.recentGauge, err = oe.meter.Int64ObservableGauge(
		"hookbin.hits.last_24h",
		metric.WithDescription("Retained deliveries captured in the last 24 hours"),
		metric.WithUnit("{deliveries}"),
		metric.WithInt64Callback(oe.observeRecentHits),
	)
	if err != nil {
		return fmt.Errorf("creating recent hits gauge: %w", err)
	}

	return nil
}

func (oe *OTelExporter) observeWebhooks(ctx context.Context, observer metric.Int64Observer) error {
	webhooks, _, err := oe.collector.GetTotals(ctx)
	if err != nil {
		return err
	}
	observer.Observe(webhooks)
	return nil
}

func (oe *OTelExporter) observeHits(ctx context.Context, observer metric.Int64Observer) error {
	hits, err := oe.collector.GetHits(ctx)
	if err != nil {
		return err
	}

	for slug, n := range hits {
		observer.Observe(n, metric.WithAttributes(
			attribute.String("hook.slug", slug),
		))
	}
	return nil
}

func (oe *OTelExporter) observeRecentHits(ctx context.Context, observer metric.Int64Observer) error {
	_, recent, err := oe.collector.GetTotals(ctx)
	if err != nil {
		return err
	}
	observer.Observe(recent)
	return nil
}

// ServeHTTP serves Prometheus-formatted metrics on the given HTTP handler
func (oe *OTelExporter) ServeHTTP() http.Handler {
	return promhttp.HandlerFor(oe.registry, promhttp.HandlerOpts{})
}

// Shutdown gracefully shuts down the meter provider
func (oe *OTelExporter) Shutdown(ctx context.Context) error {
	if oe.meterProvider != nil {
		return oe.meterProvider.Shutdown(ctx)
	}
	return nil
}
