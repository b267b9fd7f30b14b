// pkg/manifest/schema.go
package manifest

// Manifest describes one trained artifact bundle.
type Manifest struct {
	Version   string `json:"version"`
	CreatedAt string `json:"createdAt"`
	Target    string `json:"target"`
	ModelType string `json:"modelType,omitempty"`
	Artifacts Files  `json:"artifacts"`
}

// Files names each artifact relative to the bundle directory.
type Files struct {
	Model         string `json:"model"`
	Scaler        string `json:"scaler"`
	LabelEncoders string `json:"labelEncoders"`
	FeatureNames  string `json:"featureNames"`
}

const (
	DefaultModelFile         = "best_model.json"
	DefaultScalerFile        = "scaler.json"
	DefaultLabelEncodersFile = "label_encoders.json"
	DefaultFeatureNamesFile  = "feature_names.json"

	DefaultTarget = "What is your CGPA?"
)
