// internal/endpoints/predict-cgpa/handler.go
package predictcgpa

import (
	"context"
	"net/http"
	"time"

	"cgpa-predictor/internal/common/errors"
	"cgpa-predictor/internal/common/logger"
	"cgpa-predictor/internal/common/metrics"
	"cgpa-predictor/internal/common/observability"
	"cgpa-predictor/internal/inference"
	"cgpa-predictor/internal/student"

	"github.com/gin-gonic/gin"
)

const (
	Route = "/predict"
)

// Predictor is satisfied by *inference.Pipeline.
type Predictor interface {
	Predict(ctx context.Context, in student.Input) (*inference.Result, error)
}

type Handler struct {
	predictor Predictor
	errors    *errors.ErrorHandler
	obs       *observability.Observability
	logger    logger.Logger
}

func NewHandler(config *Config, predictor Predictor, obs *observability.Observability, log logger.Logger) *Handler {
	log = log.WithFields(map[string]interface{}{"endpoint": Route})
	return &Handler{
		predictor: predictor,
		errors:    errors.NewErrorHandler(log, config.ErrorPrefix),
		obs:       obs,
		logger:    log,
	}
}

func (h *Handler) Register(r gin.IRoutes) {
	r.POST(Route, h.Handle)
}

func (h *Handler) Handle(c *gin.Context) {
	start := time.Now()
	ctx := c.Request.Context()

	var req student.Request
	if err := c.ShouldBindJSON(&req); err != nil {
		h.fail(c, start, errors.NewInvalidRequestBodyError(err))
		return
	}

	res, err := h.execute(ctx, req)
	if err != nil {
		h.fail(c, start, err)
		return
	}

	h.obs.RecordPrediction(ctx, observability.OutcomeSuccess, res.Band.Name)
	h.obs.RecordPredictionDuration(ctx, time.Since(start), observability.OutcomeSuccess)
	c.JSON(http.StatusOK, Output{
		PredictedCGPA: res.PredictedCGPA,
		CGPARange:     res.Band.Range,
		Message:       res.Band.Message,
	})
}

func (h *Handler) execute(ctx context.Context, req student.Request) (*inference.Result, error) {
	in, err := student.Validate(req)
	if err != nil {
		return nil, err
	}

	res, err := h.predictor.Predict(ctx, in)
	if err != nil {
		return nil, err
	}

	metrics.PredictionsTotal.WithLabelValues(res.Band.Name).Inc()
	h.logger.Debug("prediction served", map[string]interface{}{
		"rawPrediction": res.RawPrediction,
		"predictedCgpa": res.PredictedCGPA,
		"band":          res.Band.Name,
	})
	return res, nil
}

func (h *Handler) fail(c *gin.Context, start time.Time, err error) {
	code := string(errors.Normalize(err).Code)
	metrics.PredictionsFailed.WithLabelValues(code).Inc()
	h.obs.RecordPrediction(c.Request.Context(), code, "")
	h.obs.RecordPredictionDuration(c.Request.Context(), time.Since(start), code)
	h.errors.Respond(c, err)
}
