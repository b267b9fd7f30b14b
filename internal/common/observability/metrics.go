package observability

import (
	"context"
	"log"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/exporters/prometheus"
	otelmetric "go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/sdk/metric"
)

// Outcome of a prediction that was served. Failures use the error code instead.
const OutcomeSuccess = "success"

// Observability records prediction counts and latencies through an OTel meter exported to
// Prometheus. The zero value is usable and records nothing.
type Observability struct {
	meterProvider      *metric.MeterProvider
	predictionCounter  otelmetric.Int64Counter
	predictionDuration otelmetric.Float64Histogram
}

func New(serviceName string) *Observability {
	exporter, err := prometheus.New()
	if err != nil {
		log.Printf("Failed to create Prometheus exporter: %v", err)
		return &Observability{}
	}

	o := newWithReader(serviceName, exporter)
	otel.SetMeterProvider(o.meterProvider)
	return o
}

func newWithReader(serviceName string, reader metric.Reader) *Observability {
	provider := metric.NewMeterProvider(metric.WithReader(reader))
	meter := provider.Meter(serviceName)

	predictionCounter, _ := meter.Int64Counter(
		"cgpa.prediction.requests",
		otelmetric.WithDescription("Prediction requests by outcome and CGPA band"),
	)

	predictionDuration, _ := meter.Float64Histogram(
		"cgpa.prediction.duration",
		otelmetric.WithDescription("Time from request decode to response, by outcome"),
		otelmetric.WithUnit("ms"),
	)

	return &Observability{
		meterProvider:      provider,
		predictionCounter:  predictionCounter,
		predictionDuration: predictionDuration,
	}
}

// NewNop returns an Observability that drops every measurement.
func NewNop() *Observability {
	return &Observability{}
}

// RecordPrediction counts one request. band is the interpretation band of a served
// prediction and empty for failures.
func (o *Observability) RecordPrediction(ctx context.Context, outcome, band string) {
	if o == nil || o.predictionCounter == nil {
		return
	}
	attrs := []attribute.KeyValue{attribute.String("outcome", outcome)}
	if band != "" {
		attrs = append(attrs, attribute.String("band", band))
	}
	o.predictionCounter.Add(ctx, 1, otelmetric.WithAttributes(attrs...))
}

func (o *Observability) RecordPredictionDuration(ctx context.Context, duration time.Duration, outcome string) {
	if o != nil && o.predictionDuration != nil {
		o.predictionDuration.Record(ctx, float64(duration.Microseconds())/1000, otelmetric.WithAttributes(
			attribute.String("outcome", outcome),
		))
	}
}

func (o *Observability) Shutdown() {
	if o != nil && o.meterProvider != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = o.meterProvider.Shutdown(ctx)
	}
}
