package observability

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/metric/metricdata"
)

// ==========================
// Test Helper Functions
// ==========================

func collect(t *testing.T, reader *metric.ManualReader) map[string]metricdata.Aggregation {
	t.Helper()
	var rm metricdata.ResourceMetrics
	require.NoError(t, reader.Collect(context.Background(), &rm))

	out := map[string]metricdata.Aggregation{}
	for _, sm := range rm.ScopeMetrics {
		for _, m := range sm.Metrics {
			out[m.Name] = m.Data
		}
	}
	return out
}

func counts(t *testing.T, data metricdata.Aggregation) map[attribute.Distinct]int64 {
	t.Helper()
	sum, ok := data.(metricdata.Sum[int64])
	require.True(t, ok, "counter should export an int64 sum")

	out := map[attribute.Distinct]int64{}
	for _, dp := range sum.DataPoints {
		out[dp.Attributes.Equivalent()] = dp.Value
	}
	return out
}

// ==========================
// Tests
// ==========================

func TestNop_IsSafe(t *testing.T) {
	var nilObs *Observability
	for _, o := range []*Observability{NewNop(), nilObs} {
		assert.NotPanics(t, func() {
			o.RecordPrediction(context.Background(), OutcomeSuccess, "good")
			o.RecordPredictionDuration(context.Background(), time.Millisecond, OutcomeSuccess)
			o.Shutdown()
		})
	}
}

func TestRecordPrediction_BandAttribute(t *testing.T) {
	reader := metric.NewManualReader()
	o := newWithReader("cgpa-predictor-test", reader)
	defer o.Shutdown()

	ctx := context.Background()
	o.RecordPrediction(ctx, OutcomeSuccess, "good")
	o.RecordPrediction(ctx, OutcomeSuccess, "good")
	o.RecordPrediction(ctx, OutcomeSuccess, "poor")
	o.RecordPrediction(ctx, "UNSEEN_CATEGORY", "")
	o.RecordPredictionDuration(ctx, 1500*time.Microsecond, OutcomeSuccess)

	data := collect(t, reader)
	got := counts(t, data["cgpa.prediction.requests"])

	good := attribute.NewSet(attribute.String("outcome", OutcomeSuccess), attribute.String("band", "good"))
	poor := attribute.NewSet(attribute.String("outcome", OutcomeSuccess), attribute.String("band", "poor"))
	unseen := attribute.NewSet(attribute.String("outcome", "UNSEEN_CATEGORY"))

	assert.Equal(t, int64(2), got[good.Equivalent()])
	assert.Equal(t, int64(1), got[poor.Equivalent()])
	assert.Equal(t, int64(1), got[unseen.Equivalent()])
	assert.Len(t, got, 3)

	hist, ok := data["cgpa.prediction.duration"].(metricdata.Histogram[float64])
	require.True(t, ok)
	require.Len(t, hist.DataPoints, 1)
	assert.Equal(t, uint64(1), hist.DataPoints[0].Count)
	assert.InDelta(t, 1.5, hist.DataPoints[0].Sum, 1e-9)
}

func TestNew_RecordsWithoutError(t *testing.T) {
	o := New("cgpa-predictor-test")
	defer o.Shutdown()

	assert.NotPanics(t, func() {
		o.RecordPrediction(context.Background(), "UNSEEN_CATEGORY", "")
		o.RecordPredictionDuration(context.Background(), 1500*time.Microsecond, OutcomeSuccess)
	})
}
