package inference

import (
	"fmt"

	"cgpa-predictor/internal/artifacts"
	"cgpa-predictor/internal/common/errors"
)

// Encode replaces categorical values by their label codes. Encoders whose column is absent from
// row are skipped. Columns without an encoder must already be numeric.
func Encode(encoders *artifacts.Encoders, row map[string]any) (map[string]float64, error) {
	out := make(map[string]float64, len(row))

	for _, col := range encoders.Columns() {
		raw, ok := row[col]
		if !ok {
			continue
		}
		enc, _ := encoders.Get(col)
		value := fmt.Sprint(raw)
		code, ok := enc.Transform(value)
		if !ok {
			return nil, errors.NewUnseenCategoryError(col, value)
		}
		out[col] = float64(code)
	}

	for col, raw := range row {
		if _, done := out[col]; done {
			continue
		}
		f, ok := toFloat(raw)
		if !ok {
			return nil, errors.NewFeatureMismatchError(fmt.Sprintf("column %q has non-numeric value %v and no encoder", col, raw))
		}
		out[col] = f
	}
	return out, nil
}

func toFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	default:
		return 0, false
	}
}

// Vectorize lays out encoded values in the training column order.
func Vectorize(order []string, encoded map[string]float64) ([]float64, error) {
	vec := make([]float64, len(order))
	for i, col := range order {
		v, ok := encoded[col]
		if !ok {
			return nil, errors.NewFeatureMismatchError(fmt.Sprintf("feature %q missing from request row", col))
		}
		vec[i] = v
	}
	return vec, nil
}

// Scale applies the fitted scaler, reporting a width mismatch as SHAPE_MISMATCH.
func Scale(scaler artifacts.Scaler, vec []float64) ([]float64, error) {
	if len(vec) != scaler.NFeatures() {
		return nil, errors.NewShapeMismatchError("scaler", scaler.NFeatures(), len(vec))
	}
	out, err := scaler.Transform(vec)
	if err != nil {
		return nil, errors.NewShapeMismatchError("scaler", scaler.NFeatures(), len(vec))
	}
	return out, nil
}
