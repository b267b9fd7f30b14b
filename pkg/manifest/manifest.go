// pkg/manifest/manifest.go
package manifest

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

// Load reads and validates a manifest file. A missing file is reported with an error that
// satisfies errors.Is(err, fs.ErrNotExist).
func Load(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("decode manifest %s: %w", path, err)
	}
	if err := m.Validate(); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &m, nil
}

// Default is the manifest implied by a bundle directory that has none.
func Default() *Manifest {
	return &Manifest{
		Version: "unversioned",
		Target:  DefaultTarget,
		Artifacts: Files{
			Model:         DefaultModelFile,
			Scaler:        DefaultScalerFile,
			LabelEncoders: DefaultLabelEncodersFile,
			FeatureNames:  DefaultFeatureNamesFile,
		},
	}
}

// Validate checks that every artifact is named once and stays inside the bundle directory.
func (m *Manifest) Validate() error {
	seen := make(map[string]string, 4)
	for _, e := range m.Entries() {
		if e.File == "" {
			return fmt.Errorf("artifacts.%s is required", e.Name)
		}
		if !filepath.IsLocal(e.File) {
			return fmt.Errorf("artifacts.%s must be a relative path inside the bundle, got %q", e.Name, e.File)
		}
		clean := filepath.Clean(e.File)
		if other, dup := seen[clean]; dup {
			return fmt.Errorf("artifacts.%s and artifacts.%s both point to %q", other, e.Name, e.File)
		}
		seen[clean] = e.Name
	}
	return nil
}

// Entry pairs an artifact role with its file name.
type Entry struct {
	Name string
	File string
}

// Entries lists the artifacts in load order.
func (m *Manifest) Entries() []Entry {
	return []Entry{
		{Name: "model", File: m.Artifacts.Model},
		{Name: "scaler", File: m.Artifacts.Scaler},
		{Name: "labelEncoders", File: m.Artifacts.LabelEncoders},
		{Name: "featureNames", File: m.Artifacts.FeatureNames},
	}
}
