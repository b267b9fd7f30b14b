// Package artifacts loads the trained model bundle and exposes it read-only.
package artifacts

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"

	"cgpa-predictor/internal/common/errors"
	"cgpa-predictor/pkg/manifest"
)

// LoadStatus reports which artifacts are available.
type LoadStatus struct {
	Model        bool `json:"model_loaded"`
	Scaler       bool `json:"scaler_loaded"`
	Encoders     bool `json:"encoders_loaded"`
	FeatureNames bool `json:"feature_names_loaded"`
}

// Ready reports whether every artifact is available.
func (s LoadStatus) Ready() bool {
	return s.Model && s.Scaler && s.Encoders && s.FeatureNames
}

// Bundle is the immutable set of artifacts shared by all requests.
type Bundle struct {
	manifest     *manifest.Manifest
	model        Model
	scaler       Scaler
	encoders     *Encoders
	featureNames []string
	warnings     []string
}

// NewBundle assembles already decoded artifacts and checks that they agree with each other.
func NewBundle(m *manifest.Manifest, model Model, scaler Scaler, encoders *Encoders, featureNames []string) (*Bundle, error) {
	if m == nil {
		m = manifest.Default()
	}
	if model == nil || scaler == nil || encoders == nil || len(featureNames) == 0 {
		return nil, fmt.Errorf("bundle requires model, scaler, encoders and feature names")
	}

	seen := make(map[string]struct{}, len(featureNames))
	for _, name := range featureNames {
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("feature %q listed twice", name)
		}
		seen[name] = struct{}{}
	}

	n := len(featureNames)
	if model.NFeatures() != n {
		return nil, fmt.Errorf("model expects %d features, feature names list %d", model.NFeatures(), n)
	}
	if scaler.NFeatures() != n {
		return nil, fmt.Errorf("scaler expects %d features, feature names list %d", scaler.NFeatures(), n)
	}

	b := &Bundle{
		manifest:     m,
		model:        model,
		scaler:       scaler,
		encoders:     encoders,
		featureNames: append([]string(nil), featureNames...),
	}
	for _, col := range encoders.Columns() {
		if _, ok := seen[col]; !ok {
			b.warnings = append(b.warnings, fmt.Sprintf("label encoder for %q has no matching feature and will be skipped", col))
		}
	}
	return b, nil
}

// Load reads every artifact named by dir/manifestFile. When the manifest is absent the default
// file names are used and a warning is recorded. Every failure is an ARTIFACT_LOAD_FAILED error.
func Load(dir, manifestFile string) (*Bundle, error) {
	var warnings []string

	m, err := manifest.Load(filepath.Join(dir, manifestFile))
	switch {
	case err == nil:
	case stderrors.Is(err, fs.ErrNotExist):
		m = manifest.Default()
		warnings = append(warnings, fmt.Sprintf("manifest %s not found, using default artifact names", manifestFile))
	default:
		return nil, errors.NewArtifactLoadFailedError("manifest", err)
	}

	model, err := parseFile(dir, "model", m.Artifacts.Model, ParseModel)
	if err != nil {
		return nil, err
	}
	scaler, err := parseFile(dir, "scaler", m.Artifacts.Scaler, ParseScaler)
	if err != nil {
		return nil, err
	}
	encoders, err := parseFile(dir, "labelEncoders", m.Artifacts.LabelEncoders, ParseEncoders)
	if err != nil {
		return nil, err
	}
	featureNames, err := parseFile(dir, "featureNames", m.Artifacts.FeatureNames, ParseFeatureNames)
	if err != nil {
		return nil, err
	}

	b, err := NewBundle(m, model, scaler, encoders, featureNames)
	if err != nil {
		return nil, errors.NewArtifactLoadFailedError("bundle", err)
	}
	b.warnings = append(warnings, b.warnings...)
	return b, nil
}

func parseFile[T any](dir, name, file string, parse func([]byte) (T, error)) (T, error) {
	var zero T
	path := filepath.Join(dir, file)
	raw, err := os.ReadFile(path)
	if err != nil {
		return zero, errors.NewArtifactLoadFailedError(name, err)
	}
	v, err := parse(raw)
	if err != nil {
		return zero, errors.NewArtifactLoadFailedError(name, fmt.Errorf("%s: %w", path, err))
	}
	return v, nil
}

func (b *Bundle) Manifest() manifest.Manifest { return *b.manifest }
func (b *Bundle) Model() Model { return b.model }
func (b *Bundle) Scaler() Scaler { return b.scaler }
func (b *Bundle) Encoders() *Encoders { return b.encoders }

// FeatureNames returns the training column order.
func (b *Bundle) FeatureNames() []string {
	return append([]string(nil), b.featureNames...)
}

// Warnings lists non-fatal findings from loading.
func (b *Bundle) Warnings() []string {
	return append([]string(nil), b.warnings...)
}

// Status is all true for any constructed bundle; a partial bundle is never built.
func (b *Bundle) Status() LoadStatus {
	if b == nil {
		return LoadStatus{}
	}
	return LoadStatus{
		Model:        b.model != nil,
		Scaler:       b.scaler != nil,
		Encoders:     b.encoders != nil,
		FeatureNames: len(b.featureNames) > 0,
	}
}

// DiffFeatures compares columns with the training columns. Both results are empty when the sets match.
func (b *Bundle) DiffFeatures(columns []string) (missing, extra []string) {
	want := make(map[string]struct{}, len(b.featureNames))
	for _, f := range b.featureNames {
		want[f] = struct{}{}
	}
	got := make(map[string]struct{}, len(columns))
	for _, c := range columns {
		got[c] = struct{}{}
		if _, ok := want[c]; !ok {
			extra = append(extra, c)
		}
	}
	for _, f := range b.featureNames {
		if _, ok := got[f]; !ok {
			missing = append(missing, f)
		}
	}
	sort.Strings(missing)
	sort.Strings(extra)
	return missing, extra
}
