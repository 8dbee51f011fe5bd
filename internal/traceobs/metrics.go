// Package traceobs wires the trace engine's own operational health (active
// goroutine lineages, published locations, mismatch errors observed) into
// an OTel MeterProvider exported for Prometheus scraping. This is
// self-observability of the profiler, not export of the trace data it
// collects — the engine's Non-goals still exclude the latter.
package traceobs

import (
	"context"
	"fmt"
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	promexporter "go.opentelemetry.io/otel/exporters/prometheus"
	"go.opentelemetry.io/otel/metric"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"

	"github.com/resserops/oopstrace/pkg/trace"
)

const (
	metricStoresActive    = "oopstrace.stores.active"
	metricLocationsActive = "oopstrace.locations.published"
	metricMismatchesTotal = "oopstrace.mismatches.total"
)

// metricBuilder accumulates OTel instrument creation errors, enabling batch
// construction with a single error check at the end.
type metricBuilder struct {
	meter metric.Meter
	err   error
}

func (b *metricBuilder) gauge(name, desc, unit string, cb metric.Int64Callback) metric.Int64ObservableGauge {
	g, err := b.meter.Int64ObservableGauge(name,
		metric.WithDescription(desc), metric.WithUnit(unit), metric.WithInt64Callback(cb))
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("create %s: %w", name, err)
	}

	return g
}

func (b *metricBuilder) counter(name, desc, unit string) metric.Int64Counter {
	c, err := b.meter.Int64Counter(name, metric.WithDescription(desc), metric.WithUnit(unit))
	if err != nil && b.err == nil {
		b.err = fmt.Errorf("create %s: %w", name, err)
	}

	return c
}

// Metrics holds the OTel instruments reporting the engine's own state.
type Metrics struct {
	MismatchesTotal metric.Int64Counter
}

// Handler builds a fresh Prometheus registry, a MeterProvider backed by it,
// and returns an http.Handler serving /metrics plus the Metrics handle those
// instruments live on. It also registers itself as pkg/trace's mismatch
// observer, so MismatchesTotal increments for every MismatchError any Point
// call anywhere in the process produces from here on. Each call creates an
// independent registry and replaces any previously registered observer, so
// only the most recently built Handler's Metrics receives mismatch counts.
func Handler() (http.Handler, *Metrics, error) {
	registry := prometheus.NewRegistry()

	exporter, err := promexporter.New(promexporter.WithRegisterer(registry))
	if err != nil {
		return nil, nil, fmt.Errorf("create prometheus exporter: %w", err)
	}

	provider := sdkmetric.NewMeterProvider(sdkmetric.WithReader(exporter))
	meter := provider.Meter("oopstrace")

	b := &metricBuilder{meter: meter}

	b.gauge(metricStoresActive, "Goroutine lineages currently registered", "{store}",
		func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(trace.StoreCount()))

			return nil
		})

	b.gauge(metricLocationsActive, "Distinct call sites published so far", "{location}",
		func(_ context.Context, o metric.Int64Observer) error {
			o.Observe(int64(trace.LocationCount()))

			return nil
		})

	m := &Metrics{MismatchesTotal: b.counter(metricMismatchesTotal, "Scope/trace count mismatches observed", "{error}")}

	if b.err != nil {
		return nil, nil, b.err
	}

	trace.SetMismatchObserver(func(*trace.MismatchError) {
		m.MismatchesTotal.Add(context.Background(), 1)
	})

	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{}), m, nil
}
