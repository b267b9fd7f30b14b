package artifacts

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Model kinds understood by the loader.
const (
	KindLinearRegression = "linear_regression"
	KindTreeEnsemble     = "tree_ensemble"
)

// Model is a fitted regressor that maps one scaled feature vector to a raw score.
type Model interface {
	Kind() string
	NFeatures() int
	Predict(x []float64) (float64, error)
}

// LinearModel computes coefficients . x + intercept.
type LinearModel struct {
	coef      *mat.VecDense
	intercept float64
}

func NewLinearModel(coefficients []float64, intercept float64) (*LinearModel, error) {
	if len(coefficients) == 0 {
		return nil, fmt.Errorf("linear model needs at least one coefficient")
	}
	c := make([]float64, len(coefficients))
	copy(c, coefficients)
	return &LinearModel{coef: mat.NewVecDense(len(c), c), intercept: intercept}, nil
}

func (m *LinearModel) Kind() string { return KindLinearRegression }
func (m *LinearModel) NFeatures() int { return m.coef.Len() }

func (m *LinearModel) Intercept() float64 { return m.intercept }

func (m *LinearModel) Predict(x []float64) (float64, error) {
	if len(x) != m.coef.Len() {
		return 0, fmt.Errorf("linear model expects %d features, got %d", m.coef.Len(), len(x))
	}
	return mat.Dot(m.coef, mat.NewVecDense(len(x), x)) + m.intercept, nil
}

// Tree is one regression tree in sklearn's parallel-array layout. A node is a leaf when both
// children are -1; otherwise samples with x[feature] <= threshold go left.
type Tree struct {
	left      []int
	right     []int
	feature   []int
	threshold []float64
	value     []float64
}

func NewTree(left, right, feature []int, threshold, value []float64, nFeatures int) (*Tree, error) {
	n := len(left)
	if n == 0 {
		return nil, fmt.Errorf("tree has no nodes")
	}
	if len(right) != n || len(feature) != n || len(threshold) != n || len(value) != n {
		return nil, fmt.Errorf("tree node arrays differ in length")
	}
	for i := 0; i < n; i++ {
		l, r := left[i], right[i]
		if l == -1 && r == -1 {
			continue
		}
		if l < 0 || l >= n || r < 0 || r >= n {
			return nil, fmt.Errorf("node %d has child out of range (%d, %d)", i, l, r)
		}
		if l == i || r == i {
			return nil, fmt.Errorf("node %d points to itself", i)
		}
		if feature[i] < 0 || feature[i] >= nFeatures {
			return nil, fmt.Errorf("node %d splits on feature %d, model has %d", i, feature[i], nFeatures)
		}
	}
	return &Tree{left: left, right: right, feature: feature, threshold: threshold, value: value}, nil
}

func (t *Tree) Nodes() int { return len(t.left) }

func (t *Tree) eval(x []float64) (float64, error) {
	node := 0
	// A well formed tree reaches a leaf in fewer steps than it has nodes.
	for steps := 0; steps < len(t.left); steps++ {
		if t.left[node] == -1 {
			return t.value[node], nil
		}
		if x[t.feature[node]] <= t.threshold[node] {
			node = t.left[node]
		} else {
			node = t.right[node]
		}
	}
	return 0, fmt.Errorf("tree traversal did not reach a leaf")
}

// Aggregation modes for TreeEnsemble.
const (
	AggregateMean = "mean"
	AggregateSum  = "sum"
)

// TreeEnsemble averages its trees (random forest, single tree) or sums them as boosting
// stages: base_score + learning_rate * sum.
type TreeEnsemble struct {
	trees        []*Tree
	aggregation  string
	baseScore    float64
	learningRate float64
	nFeatures    int
}

func NewTreeEnsemble(trees []*Tree, aggregation string, baseScore, learningRate float64, nFeatures int) (*TreeEnsemble, error) {
	if len(trees) == 0 {
		return nil, fmt.Errorf("tree ensemble has no trees")
	}
	if nFeatures < 1 {
		return nil, fmt.Errorf("tree ensemble needs n_features >= 1")
	}
	switch aggregation {
	case AggregateMean, AggregateSum:
	default:
		return nil, fmt.Errorf("unknown aggregation %q", aggregation)
	}
	return &TreeEnsemble{
		trees:        trees,
		aggregation:  aggregation,
		baseScore:    baseScore,
		learningRate: learningRate,
		nFeatures:    nFeatures,
	}, nil
}

func (e *TreeEnsemble) Kind() string { return KindTreeEnsemble }
func (e *TreeEnsemble) NFeatures() int { return e.nFeatures }
func (e *TreeEnsemble) Trees() int { return len(e.trees) }
func (e *TreeEnsemble) Aggregation() string { return e.aggregation }

func (e *TreeEnsemble) Predict(x []float64) (float64, error) {
	if len(x) != e.nFeatures {
		return 0, fmt.Errorf("tree ensemble expects %d features, got %d", e.nFeatures, len(x))
	}
	var sum float64
	for i, t := range e.trees {
		v, err := t.eval(x)
		if err != nil {
			return 0, fmt.Errorf("tree %d: %w", i, err)
		}
		sum += v
	}
	if e.aggregation == AggregateMean {
		return sum / float64(len(e.trees)), nil
	}
	return e.baseScore + e.learningRate*sum, nil
}

type modelHeader struct {
	Kind      string `json:"kind"`
	NFeatures int    `json:"n_features"`
}

type linearDoc struct {
	NFeatures    int       `json:"n_features"`
	Coefficients []float64 `json:"coefficients"`
	Intercept    float64   `json:"intercept"`
}

type treeDoc struct {
	ChildrenLeft  []int     `json:"children_left"`
	ChildrenRight []int     `json:"children_right"`
	Feature       []int     `json:"feature"`
	Threshold     []float64 `json:"threshold"`
	Value         []float64 `json:"value"`
}

type ensembleDoc struct {
	NFeatures    int       `json:"n_features"`
	Aggregation  string    `json:"aggregation"`
	BaseScore    float64   `json:"base_score"`
	LearningRate *float64  `json:"learning_rate"`
	Trees        []treeDoc `json:"trees"`
}

// ParseModel validates and decodes a model document.
func ParseModel(raw []byte) (Model, error) {
	if err := checkDocument(modelKindSchema, raw); err != nil {
		return nil, err
	}
	var h modelHeader
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, err
	}

	switch h.Kind {
	case KindLinearRegression:
		if err := checkDocument(linearRegressionSchema, raw); err != nil {
			return nil, err
		}
		var doc linearDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		if len(doc.Coefficients) != doc.NFeatures {
			return nil, fmt.Errorf("n_features is %d but there are %d coefficients", doc.NFeatures, len(doc.Coefficients))
		}
		return NewLinearModel(doc.Coefficients, doc.Intercept)

	case KindTreeEnsemble:
		if err := checkDocument(treeEnsembleSchema, raw); err != nil {
			return nil, err
		}
		var doc ensembleDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			return nil, err
		}
		trees := make([]*Tree, len(doc.Trees))
		for i, td := range doc.Trees {
			t, err := NewTree(td.ChildrenLeft, td.ChildrenRight, td.Feature, td.Threshold, td.Value, doc.NFeatures)
			if err != nil {
				return nil, fmt.Errorf("tree %d: %w", i, err)
			}
			trees[i] = t
		}
		lr := 1.0
		if doc.LearningRate != nil {
			lr = *doc.LearningRate
		}
		return NewTreeEnsemble(trees, doc.Aggregation, doc.BaseScore, lr, doc.NFeatures)
	}

	return nil, fmt.Errorf("unsupported model kind %q", h.Kind)
}
