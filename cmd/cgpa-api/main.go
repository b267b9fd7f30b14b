// cmd/cgpa-api/main.go
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"cgpa-predictor/internal/artifacts"
	"cgpa-predictor/internal/common/config"
	"cgpa-predictor/internal/common/logger"
	"cgpa-predictor/internal/common/metrics"
	"cgpa-predictor/internal/common/observability"
	"cgpa-predictor/internal/common/server"
	"cgpa-predictor/internal/inference"
	"cgpa-predictor/internal/student"

	pc "cgpa-predictor/internal/endpoints/predict-cgpa"
	si "cgpa-predictor/internal/endpoints/service-info"
)

const maxBodyBytes = 64 << 10

func main() {
	cfg, err := config.Load()
	if err != nil {
		bootstrap := logger.New("info", "json")
		bootstrap.Fatal("config load failed", zap.Error(err))
	}

	zapLog := logger.New(cfg.Logging.Level, cfg.Logging.Format)
	defer zapLog.Sync()

	log := logger.NewZapAdapter(zapLog).WithFields(map[string]interface{}{
		"service": cfg.App.Name,
		"version": cfg.App.Version,
	})

	zapLog.Info("Starting CGPA prediction API...", zap.String("environment", cfg.App.Environment))

	// --- Load artifacts; any failure stops startup before the port is opened ---
	bundle, err := artifacts.Load(cfg.Artifacts.Dir, cfg.Artifacts.Manifest)
	if err != nil {
		zapLog.Fatal("artifact load failed", zap.Error(err), zap.String("dir", cfg.Artifacts.Dir))
	}
	for _, w := range bundle.Warnings() {
		zapLog.Warn("artifact warning", zap.String("warning", w))
	}
	reportLoadStatus(bundle.Status())

	m := bundle.Manifest()
	zapLog.Info("artifacts loaded",
		zap.String("bundleVersion", m.Version),
		zap.String("createdAt", m.CreatedAt),
		zap.String("model", bundle.Model().Kind()),
		zap.String("scaler", bundle.Scaler().Kind()),
		zap.Int("features", len(bundle.FeatureNames())),
		zap.Int("encoders", bundle.Encoders().Len()),
	)

	columns := cfg.Features.Columns
	if len(columns) == 0 {
		columns = student.DefaultColumns()
	}
	mapper, err := student.NewMapper(columns)
	if err != nil {
		zapLog.Fatal("feature column table invalid", zap.Error(err))
	}

	pipeline, err := inference.NewPipeline(bundle, mapper)
	if err != nil {
		zapLog.Fatal("artifacts do not match request schema", zap.Error(err))
	}

	obs := observability.New(cfg.App.Name)
	defer obs.Shutdown()

	if os.Getenv(gin.EnvGinMode) == "" {
		gin.SetMode(gin.ReleaseMode)
	}

	metricsPath := ""
	if cfg.Metrics.Enabled {
		metricsPath = cfg.Metrics.Path
	}

	engine := server.NewEngine(log, server.Options{
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsPath:    cfg.Metrics.Path,
		MaxBodyBytes:   maxBodyBytes,
	},
		si.NewHandler(cfg.App.Version, metricsPath, bundle.Status()),
		pc.NewHandler(pc.LoadConfig(), pipeline, obs, log),
	)

	// --- Serve until SIGINT/SIGTERM, then drain ---
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := server.New(cfg.Server, engine, log)
	if err := srv.Run(ctx); err != nil {
		zapLog.Fatal("http server stopped with error", zap.Error(err))
	}
	zapLog.Info("Shutdown complete")
}

func reportLoadStatus(s artifacts.LoadStatus) {
	set := func(name string, ok bool) {
		v := 0.0
		if ok {
			v = 1
		}
		metrics.ArtifactsLoaded.WithLabelValues(name).Set(v)
	}
	set("model", s.Model)
	set("scaler", s.Scaler)
	set("label_encoders", s.Encoders)
	set("feature_names", s.FeatureNames)
}
