// Package server exposes the estimator as a browser-facing web
// application: an HTML form plus a small JSON API.
package server

import (
	_ "embed"
	"net/http"

	"github.com/gin-gonic/gin"
)

//go:embed index.html
var indexHTML []byte

// Config holds the web server settings
type Config struct {
	Addr           string
	MaxUploadBytes int64
}

// DefaultConfig returns the default web server settings
func DefaultConfig() Config {
	return Config{
		Addr:           ":8080",
		MaxUploadBytes: 64 << 20, // 64 MiB
	}
}

// SetupRouter sets up the API routes
func SetupRouter(cfg Config) *gin.Engine {
	router := gin.Default()
	router.MaxMultipartMemory = cfg.MaxUploadBytes

	handler := NewHandler(cfg.MaxUploadBytes)

	router.Use(handler.UploadLimitMiddleware())

	router.GET("/", handler.Index)
	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// API group
	api := router.Group("/api/v1")
	{
		api.POST("/estimate", handler.Estimate)
		api.POST("/analyze", handler.Analyze)
		api.POST("/preview", handler.Preview)
		api.GET("/materials", handler.Materials)
		api.GET("/patterns", handler.Patterns)
	}

	return router
}

// Run starts the web server and blocks until it exits
func Run(cfg Config) error {
	router := SetupRouter(cfg)
	return router.Run(cfg.Addr)
}
