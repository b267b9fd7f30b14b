package artifacts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinearModel_Predict(t *testing.T) {
	m, err := NewLinearModel([]float64{0.5, -1, 2}, 1.25)
	require.NoError(t, err)
	assert.Equal(t, KindLinearRegression, m.Kind())
	assert.Equal(t, 3, m.NFeatures())

	got, err := m.Predict([]float64{2, 1, 0.5})
	require.NoError(t, err)
	assert.InDelta(t, 0.5*2-1*1+2*0.5+1.25, got, 1e-12)

	_, err = m.Predict([]float64{1, 2})
	assert.Error(t, err)

	_, err = NewLinearModel(nil, 1)
	assert.Error(t, err)
}

// stump splits on feature 0 at 1.5: left leaf 10, right leaf 20.
func stump(t *testing.T) *Tree {
	t.Helper()
	tr, err := NewTree(
		[]int{1, -1, -1},
		[]int{2, -1, -1},
		[]int{0, -2, -2},
		[]float64{1.5, -2, -2},
		[]float64{15, 10, 20},
		2,
	)
	require.NoError(t, err)
	return tr
}

func TestTree_SplitIsLessOrEqual(t *testing.T) {
	tr := stump(t)

	tests := []struct {
		x    float64
		want float64
	}{
		{1.0, 10},
		{1.5, 10},
		{1.5000001, 20},
		{3, 20},
	}
	for _, tt := range tests {
		got, err := tr.eval([]float64{tt.x, 0})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "x=%v", tt.x)
	}
}

func TestNewTree_Rejects(t *testing.T) {
	tests := []struct {
		name      string
		left      []int
		right     []int
		feature   []int
		threshold []float64
		value     []float64
	}{
		{"empty", nil, nil, nil, nil, nil},
		{"length mismatch", []int{-1}, []int{-1, -1}, []int{0}, []float64{0}, []float64{0}},
		{"child out of range", []int{5, -1}, []int{1, -1}, []int{0, 0}, []float64{0, 0}, []float64{0, 0}},
		{"self loop", []int{0, -1}, []int{1, -1}, []int{0, 0}, []float64{0, 0}, []float64{0, 0}},
		{"feature out of range", []int{1, -1, -1}, []int{2, -1, -1}, []int{7, 0, 0}, []float64{0, 0, 0}, []float64{0, 0, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewTree(tt.left, tt.right, tt.feature, tt.threshold, tt.value, 2)
			assert.Error(t, err)
		})
	}
}

func TestTree_CycleIsBounded(t *testing.T) {
	// 0 -> 1 -> 0 never reaches the leaf at 2
	tr, err := NewTree(
		[]int{1, 0, -1},
		[]int{2, 2, -1},
		[]int{0, 0, 0},
		[]float64{10, 10, 0},
		[]float64{0, 0, 1},
		1,
	)
	require.NoError(t, err)

	_, err = tr.eval([]float64{0})
	assert.Error(t, err)
}

func TestTreeEnsemble_Aggregation(t *testing.T) {
	trees := []*Tree{stump(t), stump(t)}

	mean, err := NewTreeEnsemble(trees, AggregateMean, 0, 1, 2)
	require.NoError(t, err)
	got, err := mean.Predict([]float64{1, 0})
	require.NoError(t, err)
	assert.Equal(t, 10.0, got)

	boosted, err := NewTreeEnsemble(trees, AggregateSum, 2.5, 0.1, 2)
	require.NoError(t, err)
	got, err = boosted.Predict([]float64{3, 0})
	require.NoError(t, err)
	assert.InDelta(t, 2.5+0.1*40, got, 1e-12)

	_, err = boosted.Predict([]float64{3})
	assert.Error(t, err)

	_, err = NewTreeEnsemble(trees, "median", 0, 1, 2)
	assert.Error(t, err)
}

func TestParseModel(t *testing.T) {
	t.Run("linear", func(t *testing.T) {
		m, err := ParseModel([]byte(`{"kind":"linear_regression","n_features":2,"coefficients":[1,2],"intercept":0.5}`))
		require.NoError(t, err)
		got, err := m.Predict([]float64{1, 1})
		require.NoError(t, err)
		assert.InDelta(t, 3.5, got, 1e-12)
	})

	t.Run("tree ensemble with default learning rate", func(t *testing.T) {
		m, err := ParseModel([]byte(`{
			"kind":"tree_ensemble","n_features":1,"aggregation":"sum","base_score":1,
			"trees":[{"children_left":[1,-1,-1],"children_right":[2,-1,-1],"feature":[0,-2,-2],
			          "threshold":[0.5,-2,-2],"value":[0,0.25,0.75]}]
		}`))
		require.NoError(t, err)
		assert.Equal(t, KindTreeEnsemble, m.Kind())
		got, err := m.Predict([]float64{1})
		require.NoError(t, err)
		assert.InDelta(t, 1.75, got, 1e-12)
	})

	bad := map[string]string{
		"unknown kind":       `{"kind":"svr","n_features":2}`,
		"missing intercept":  `{"kind":"linear_regression","n_features":2,"coefficients":[1,2]}`,
		"width disagrees":    `{"kind":"linear_regression","n_features":3,"coefficients":[1,2],"intercept":0}`,
		"string coefficient": `{"kind":"linear_regression","n_features":1,"coefficients":["1"],"intercept":0}`,
		"no trees":           `{"kind":"tree_ensemble","n_features":1,"aggregation":"mean","trees":[]}`,
		"not json":           `model.pkl`,
	}
	for name, doc := range bad {
		t.Run(name, func(t *testing.T) {
			_, err := ParseModel([]byte(doc))
			assert.Error(t, err)
		})
	}
}
