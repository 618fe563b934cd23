package otel

import (
	"context"
	"errors"
	"fmt"

	authkit "github.com/coursia/authkit"
	"github.com/coursia/authkit/metrics/export/internaldefs"
	"go.opentelemetry.io/otel/metric"
)

var (
	ErrNilMeter  = errors.New("nil meter")
	ErrNilSource = errors.New("nil metrics source")
)

type metricsSource interface {
	MetricsSnapshot() authkit.MetricsSnapshot
	AuditDropped() uint64
}

type observedCounter struct {
	id         authkit.MetricID
	instrument metric.Int64ObservableCounter
}

// latencyInstruments is the gauge set backing the token validation
// histogram, the only histogram the core collects. Buckets are exported
// cumulatively, one gauge per bound plus a total count.
type latencyInstruments struct {
	id      authkit.MetricID
	buckets [8]metric.Int64ObservableGauge
	count   metric.Int64ObservableGauge
}

// OTelExporter publishes authkit metrics through an OTel Meter using
// observable instruments and a single collection callback.
type OTelExporter struct {
	source       metricsSource
	registration metric.Registration
	counters     []observedCounter
	latency      latencyInstruments
	auditDropped metric.Int64ObservableCounter
}

// NewOTelExporter registers instruments for every authkit metric against
// meter, reading from service on each collection cycle.
func NewOTelExporter(meter metric.Meter, service *authkit.Service) (*OTelExporter, error) {
	return NewOTelExporterFromSource(meter, service)
}

// NewOTelExporterFromSource is NewOTelExporter for a custom source.
func NewOTelExporterFromSource(meter metric.Meter, source metricsSource) (*OTelExporter, error) {
	if meter == nil {
		return nil, ErrNilMeter
	}
	if source == nil {
		return nil, ErrNilSource
	}

	exporter := &OTelExporter{
		source:   source,
		counters: make([]observedCounter, 0, len(internaldefs.CounterDefs)),
	}

	observables := make([]metric.Observable, 0, len(internaldefs.CounterDefs)+len(internaldefs.HistogramBoundSuffix)+2)

	for _, def := range internaldefs.CounterDefs {
		ins, err := meter.Int64ObservableCounter(def.Name, metric.WithDescription(def.Help))
		if err != nil {
			return nil, fmt.Errorf("create observable counter %s: %w", def.Name, err)
		}
		exporter.counters = append(exporter.counters, observedCounter{id: def.ID, instrument: ins})
		observables = append(observables, ins)
	}

	latency, latencyObservables, err := newLatencyInstruments(meter)
	if err != nil {
		return nil, err
	}
	exporter.latency = latency
	observables = append(observables, latencyObservables...)

	auditDropped, err := meter.Int64ObservableCounter(
		"authkit_audit_dropped_total",
		metric.WithDescription("Dropped audit events due to dispatcher backpressure."),
	)
	if err != nil {
		return nil, fmt.Errorf("create audit dropped counter: %w", err)
	}
	exporter.auditDropped = auditDropped
	observables = append(observables, auditDropped)

	registration, err := meter.RegisterCallback(exporter.collect, observables...)
	if err != nil {
		return nil, fmt.Errorf("register callback: %w", err)
	}

	exporter.registration = registration
	return exporter, nil
}

func newLatencyInstruments(meter metric.Meter) (latencyInstruments, []metric.Observable, error) {
	def := internaldefs.HistogramDefs[0]
	out := latencyInstruments{id: def.ID}
	observables := make([]metric.Observable, 0, len(out.buckets)+1)

	for i, suffix := range internaldefs.HistogramBoundSuffix {
		name := def.Name + "_bucket_le_" + suffix
		ins, err := meter.Int64ObservableGauge(name, metric.WithDescription("Cumulative histogram bucket count."))
		if err != nil {
			return latencyInstruments{}, nil, fmt.Errorf("create histogram bucket gauge %s: %w", name, err)
		}
		out.buckets[i] = ins
		observables = append(observables, ins)
	}

	count, err := meter.Int64ObservableGauge(def.Name+"_count", metric.WithDescription("Histogram total sample count."))
	if err != nil {
		return latencyInstruments{}, nil, fmt.Errorf("create histogram count gauge %s_count: %w", def.Name, err)
	}
	out.count = count
	observables = append(observables, count)

	return out, observables, nil
}

func (e *OTelExporter) collect(_ context.Context, observer metric.Observer) error {
	snapshot := e.source.MetricsSnapshot()

	for _, c := range e.counters {
		observer.ObserveInt64(c.instrument, int64(snapshot.Counters[c.id]))
	}

	cumulative := internaldefs.CumulativeBuckets(internaldefs.NormalizeBuckets(snapshot.Histograms[e.latency.id]))
	for i, bucket := range e.latency.buckets {
		observer.ObserveInt64(bucket, int64(cumulative[i]))
	}
	observer.ObserveInt64(e.latency.count, int64(cumulative[len(cumulative)-1]))

	observer.ObserveInt64(e.auditDropped, int64(e.source.AuditDropped()))
	return nil
}

// Close unregisters the collection callback.
func (e *OTelExporter) Close() error {
	if e == nil || e.registration == nil {
		return nil
	}
	return e.registration.Unregister()
}
