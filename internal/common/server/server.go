package server

import (
	"context"
	stderrors "errors"
	"net/http"
	"time"

	"cgpa-predictor/internal/common/config"
	"cgpa-predictor/internal/common/logger"
)

// Server wraps http.Server with context-driven graceful shutdown.
type Server struct {
	httpServer      *http.Server
	shutdownTimeout time.Duration
	logger          logger.Logger
}

func New(cfg config.ServerConfig, handler http.Handler, log logger.Logger) *Server {
	return &Server{
		httpServer: &http.Server{
			Addr:              cfg.Address(),
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       config.GetDuration(cfg.ReadTimeout),
			WriteTimeout:      config.GetDuration(cfg.WriteTimeout),
			IdleTimeout:       60 * time.Second,
		},
		shutdownTimeout: config.GetDuration(cfg.ShutdownTimeout),
		logger:          log,
	}
}

// Run serves until ctx is cancelled, then drains in-flight requests for at most the
// configured shutdown timeout.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("http server listening", map[string]interface{}{"addr": s.httpServer.Addr})
		if err := s.httpServer.ListenAndServe(); err != nil && !stderrors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("shutting down http server", map[string]interface{}{"timeout": s.shutdownTimeout.String()})
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()
	if err := s.httpServer.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return <-errCh
}
