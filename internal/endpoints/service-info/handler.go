// internal/endpoints/service-info/handler.go
package serviceinfo

import (
	"net/http"

	"cgpa-predictor/internal/artifacts"

	"github.com/gin-gonic/gin"
)

const (
	RootRoute   = "/"
	HealthRoute = "/health"

	welcomeMessage = "Welcome to Student Mental Health CGPA Prediction API"
)

// Handler serves the service description and the artifact health snapshot taken at startup.
type Handler struct {
	root   RootOutput
	health HealthOutput
}

// NewHandler freezes the responses; status reflects the bundle as loaded and never changes.
func NewHandler(version, metricsPath string, status artifacts.LoadStatus) *Handler {
	endpoints := map[string]string{
		"predict": "/predict (POST)",
		"health":  HealthRoute + " (GET)",
	}
	if metricsPath != "" {
		endpoints["metrics"] = metricsPath + " (GET)"
	}
	return &Handler{
		root: RootOutput{
			Message:   welcomeMessage,
			Version:   version,
			Endpoints: endpoints,
		},
		health: HealthOutput{
			Status:             "healthy",
			ModelLoaded:        status.Model,
			ScalerLoaded:       status.Scaler,
			EncodersLoaded:     status.Encoders,
			FeatureNamesLoaded: status.FeatureNames,
		},
	}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.GET(RootRoute, h.Root)
	r.GET(HealthRoute, h.Health)
}

func (h *Handler) Root(c *gin.Context) {
	c.JSON(http.StatusOK, h.root)
}

func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, h.health)
}
