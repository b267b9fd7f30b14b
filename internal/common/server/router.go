// Package server builds the gin engine and runs the HTTP listener.
package server

import (
	"net/http"
	"time"

	"cgpa-predictor/internal/common/logger"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options controls the shared middleware and ambient routes.
type Options struct {
	MetricsEnabled bool
	MetricsPath    string
	MaxBodyBytes   int64
}

// Route is implemented by every endpoint package.
type Route interface {
	Register(r gin.IRoutes)
}

// NewEngine returns a gin engine with request ids, access logging, metrics, CORS and JSON
// 404/405 bodies installed, and every route registered. An engine with no routes answers
// every request with 404.
func NewEngine(log logger.Logger, opts Options, routes ...Route) *gin.Engine {
	engine := gin.New()

	engine.Use(
		RequestID(),
		Recovery(log),
		AccessLog(log),
		Metrics(),
		LimitBodySize(opts.MaxBodyBytes),
		cors.New(corsConfig()),
	)

	engine.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"detail": "Not Found"})
	})
	engine.NoMethod(func(c *gin.Context) {
		c.JSON(http.StatusMethodNotAllowed, gin.H{"detail": "Method Not Allowed"})
	})

	if opts.MetricsEnabled {
		path := opts.MetricsPath
		if path == "" {
			path = "/metrics"
		}
		engine.GET(path, gin.WrapH(promhttp.Handler()))
	}

	for _, r := range routes {
		r.Register(engine)
	}

	// gin's 405 lookup indexes the method trees and panics when none exist.
	engine.HandleMethodNotAllowed = len(engine.Routes()) > 0
	return engine
}

// corsConfig allows every origin, method and header. Credentials stay off since browsers
// reject a wildcard origin on credentialed requests.
func corsConfig() cors.Config {
	return cors.Config{
		AllowAllOrigins:  true,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"*"},
		ExposeHeaders:    []string{RequestIDHeader},
		AllowCredentials: false,
		MaxAge:           12 * time.Hour,
	}
}
