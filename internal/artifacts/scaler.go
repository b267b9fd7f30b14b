package artifacts

import (
	"encoding/json"
	"fmt"

	"gonum.org/v1/gonum/mat"
)

// Scaler kinds understood by the loader.
const (
	KindStandard = "standard"
	KindMinMax   = "minmax"
)

// Scaler maps a raw feature vector to the space the model was trained in.
type Scaler interface {
	Kind() string
	NFeatures() int
	Transform(x []float64) ([]float64, error)
}

// StandardScaler computes (x - mean) / scale. A nil mean or scale skips that step.
type StandardScaler struct {
	n     int
	mean  *mat.VecDense
	scale *mat.VecDense
}

func NewStandardScaler(n int, mean, scale []float64) (*StandardScaler, error) {
	if n < 1 {
		return nil, fmt.Errorf("standard scaler needs n_features >= 1")
	}
	s := &StandardScaler{n: n}
	if mean != nil {
		if len(mean) != n {
			return nil, fmt.Errorf("standard scaler mean has %d values, want %d", len(mean), n)
		}
		s.mean = mat.NewVecDense(n, append([]float64(nil), mean...))
	}
	if scale != nil {
		if len(scale) != n {
			return nil, fmt.Errorf("standard scaler scale has %d values, want %d", len(scale), n)
		}
		sc := make([]float64, n)
		for i, v := range scale {
			// constant training columns are stored with scale 0
			if v == 0 {
				v = 1
			}
			sc[i] = v
		}
		s.scale = mat.NewVecDense(n, sc)
	}
	return s, nil
}

func (s *StandardScaler) Kind() string { return KindStandard }
func (s *StandardScaler) NFeatures() int { return s.n }

func (s *StandardScaler) Transform(x []float64) ([]float64, error) {
	if len(x) != s.n {
		return nil, fmt.Errorf("standard scaler expects %d features, got %d", s.n, len(x))
	}
	v := mat.NewVecDense(s.n, append([]float64(nil), x...))
	if s.mean != nil {
		v.SubVec(v, s.mean)
	}
	if s.scale != nil {
		v.DivElemVec(v, s.scale)
	}
	return v.RawVector().Data, nil
}

// MinMaxScaler computes x*scale + min, with scale and min as fitted by sklearn.
type MinMaxScaler struct {
	scale  *mat.VecDense
	offset *mat.VecDense
}

func NewMinMaxScaler(scale, offset []float64) (*MinMaxScaler, error) {
	if len(scale) == 0 {
		return nil, fmt.Errorf("minmax scaler needs at least one feature")
	}
	if len(offset) != len(scale) {
		return nil, fmt.Errorf("minmax scaler has %d scale and %d min values", len(scale), len(offset))
	}
	n := len(scale)
	return &MinMaxScaler{
		scale:  mat.NewVecDense(n, append([]float64(nil), scale...)),
		offset: mat.NewVecDense(n, append([]float64(nil), offset...)),
	}, nil
}

func (s *MinMaxScaler) Kind() string { return KindMinMax }
func (s *MinMaxScaler) NFeatures() int { return s.scale.Len() }

func (s *MinMaxScaler) Transform(x []float64) ([]float64, error) {
	n := s.scale.Len()
	if len(x) != n {
		return nil, fmt.Errorf("minmax scaler expects %d features, got %d", n, len(x))
	}
	v := mat.NewVecDense(n, append([]float64(nil), x...))
	v.MulElemVec(v, s.scale)
	v.AddVec(v, s.offset)
	return v.RawVector().Data, nil
}

type scalerDoc struct {
	Kind      string    `json:"kind"`
	NFeatures int       `json:"n_features"`
	Mean      []float64 `json:"mean"`
	Scale     []float64 `json:"scale"`
	Min       []float64 `json:"min"`
}

// ParseScaler validates and decodes a scaler document.
func ParseScaler(raw []byte) (Scaler, error) {
	if err := checkDocument(scalerSchema, raw); err != nil {
		return nil, err
	}
	var doc scalerDoc
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}

	switch doc.Kind {
	case KindStandard:
		return NewStandardScaler(doc.NFeatures, doc.Mean, doc.Scale)
	case KindMinMax:
		if len(doc.Scale) != doc.NFeatures {
			return nil, fmt.Errorf("n_features is %d but scale has %d values", doc.NFeatures, len(doc.Scale))
		}
		return NewMinMaxScaler(doc.Scale, doc.Min)
	}
	return nil, fmt.Errorf("unsupported scaler kind %q", doc.Kind)
}
