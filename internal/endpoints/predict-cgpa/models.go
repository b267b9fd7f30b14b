// internal/endpoints/predict-cgpa/models.go
package predictcgpa

type Output struct {
	PredictedCGPA float64 `json:"predicted_cgpa"`
	CGPARange     string  `json:"cgpa_range"`
	Message       string  `json:"message"`
}
