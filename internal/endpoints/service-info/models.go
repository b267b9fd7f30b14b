// internal/endpoints/service-info/models.go
package serviceinfo

type RootOutput struct {
	Message   string            `json:"message"`
	Version   string            `json:"version"`
	Endpoints map[string]string `json:"endpoints"`
}

type HealthOutput struct {
	Status             string `json:"status"`
	ModelLoaded        bool   `json:"model_loaded"`
	ScalerLoaded       bool   `json:"scaler_loaded"`
	EncodersLoaded     bool   `json:"encoders_loaded"`
	FeatureNamesLoaded bool   `json:"feature_names_loaded"`
}
