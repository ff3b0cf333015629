// Package api exposes the train operations engine over HTTP.
package api

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/zulandar/trackside/internal/auth"
	"github.com/zulandar/trackside/internal/config"
	"github.com/zulandar/trackside/internal/section"
	"github.com/zulandar/trackside/internal/train"
	"gorm.io/gorm"
)

// StartOpts holds configuration for the API server.
type StartOpts struct {
	DB     *gorm.DB
	Config *config.Config
	Out    io.Writer
}

// Start launches the HTTP API server. It blocks until ctx is cancelled,
// then shuts down gracefully.
func Start(ctx context.Context, opts StartOpts) error {
	if opts.DB == nil {
		return fmt.Errorf("api: db is required")
	}
	if opts.Config == nil {
		return fmt.Errorf("api: config is required")
	}

	router := NewRouter(opts.DB, opts.Config)

	addr := fmt.Sprintf(":%d", opts.Config.Server.Port)
	srv := &http.Server{
		Addr:    addr,
		Handler: router,
	}

	// Graceful shutdown on context cancellation.
	go func() {
		<-ctx.Done()
		srv.Shutdown(context.Background())
	}()

	if opts.Out != nil {
		fmt.Fprintf(opts.Out, "Trackside API listening at http://localhost:%d\n", opts.Config.Server.Port)
	}

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("api: %w", err)
	}
	return nil
}

// NewRouter builds the Gin engine with all routes registered.
func NewRouter(db *gorm.DB, cfg *config.Config) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())

	sections := section.NewRegistry(cfg.Sections)
	h := &handlers{
		db:       db,
		sections: sections,
		trains:   train.New(db, sections),
		gate:     auth.NewGate(cfg.Auth.Secret, time.Duration(cfg.Auth.TokenTTL)*time.Hour),
	}
	registerRoutes(router, h)
	return router
}
