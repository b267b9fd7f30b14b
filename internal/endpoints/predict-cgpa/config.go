// internal/endpoints/predict-cgpa/config.go
package predictcgpa

type Config struct {
	// ErrorPrefix leads the detail of every server-side failure.
	ErrorPrefix string
}

func LoadConfig() *Config {
	return &Config{
		ErrorPrefix: "Prediction error",
	}
}
