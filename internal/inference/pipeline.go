// Package inference turns a validated student answer set into a CGPA prediction.
package inference

import (
	"context"
	"fmt"
	"math"
	"strings"

	"cgpa-predictor/internal/artifacts"
	"cgpa-predictor/internal/common/errors"
	"cgpa-predictor/internal/student"
)

// Result is one served prediction.
type Result struct {
	PredictedCGPA float64
	RawPrediction float64
	Band          Band
}

// Pipeline is safe for concurrent use; it only reads the bundle.
type Pipeline struct {
	bundle       *artifacts.Bundle
	mapper       *student.Mapper
	featureOrder []string
}

// NewPipeline checks that the mapper produces exactly the training columns and that every
// categorical column has an encoder.
func NewPipeline(bundle *artifacts.Bundle, mapper *student.Mapper) (*Pipeline, error) {
	if bundle == nil || mapper == nil {
		return nil, fmt.Errorf("pipeline requires a bundle and a mapper")
	}

	missing, extra := bundle.DiffFeatures(mapper.Columns())
	if len(missing) > 0 || len(extra) > 0 {
		return nil, errors.NewFeatureMismatchError(fmt.Sprintf(
			"request columns do not match training features: missing [%s], unexpected [%s]",
			strings.Join(missing, ", "), strings.Join(extra, ", ")))
	}

	for _, col := range mapper.CategoricalColumns() {
		if _, ok := bundle.Encoders().Get(col); !ok {
			return nil, errors.NewFeatureMismatchError(fmt.Sprintf("categorical column %q has no label encoder", col))
		}
	}

	return &Pipeline{
		bundle:       bundle,
		mapper:       mapper,
		featureOrder: bundle.FeatureNames(),
	}, nil
}

// Predict runs map, encode, order, scale, predict and post-processing for one input.
func (p *Pipeline) Predict(ctx context.Context, in student.Input) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	encoded, err := Encode(p.bundle.Encoders(), p.mapper.Map(in))
	if err != nil {
		return nil, err
	}

	vec, err := Vectorize(p.featureOrder, encoded)
	if err != nil {
		return nil, err
	}

	scaled, err := Scale(p.bundle.Scaler(), vec)
	if err != nil {
		return nil, err
	}

	raw, err := p.bundle.Model().Predict(scaled)
	if err != nil {
		return nil, errors.NewInferenceFailedError(err)
	}
	if math.IsNaN(raw) || math.IsInf(raw, 0) {
		return nil, errors.NewInferenceFailedError(fmt.Errorf("model returned non-finite value %v", raw))
	}

	cgpa, band := PostProcess(raw)
	return &Result{PredictedCGPA: cgpa, RawPrediction: raw, Band: band}, nil
}

// FeatureOrder returns the column order vectors are built in.
func (p *Pipeline) FeatureOrder() []string {
	return append([]string(nil), p.featureOrder...)
}
