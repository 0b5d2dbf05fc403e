package server

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	logger "github.com/sirupsen/logrus"

	"github.com/rios0rios0/repodigest/internal/domain/entities"
)

const (
	readHeaderTimeout = 10 * time.Second
	shutdownTimeout   = 30 * time.Second
	corsMaxAge        = 12 * time.Hour
)

// NewRouter builds the gin engine with middleware and routes.
func NewRouter(settings *entities.Settings, handlers *Handlers) *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(Logger())
	router.Use(LoopbackHost(settings.Server.Address))
	router.Use(cors.New(corsConfig(settings.Server.AllowedOrigins)))

	router.GET("/health", handlers.Health)

	v1 := router.Group("/api/v1")
	{
		v1.POST("/ingest", handlers.Ingest)
		v1.POST("/scan", handlers.Scan)
		v1.POST("/generate", handlers.Generate)
		v1.GET("/generate/key-source", handlers.KeySource)
		v1.GET("/local/status", handlers.LocalStatus)
		v1.GET("/local/models", handlers.LocalModels)
		v1.POST("/local/generate", handlers.LocalGenerate)
		v1.POST("/local/embed", handlers.LocalEmbed)
	}

	return router
}

// corsConfig refuses every cross-origin caller unless origins lists it or
// contains "*". Requests without an Origin header are not affected.
func corsConfig(origins []string) cors.Config {
	cfg := cors.Config{
		AllowMethods:  []string{http.MethodGet, http.MethodPost, http.MethodOptions},
		AllowHeaders:  []string{"Origin", "Content-Type", "Accept", "Authorization", requestIDHeader},
		ExposeHeaders: []string{requestIDHeader},
		MaxAge:        corsMaxAge,
	}
	for _, o := range origins {
		if o == "*" {
			cfg.AllowAllOrigins = true
			return cfg
		}
	}
	if len(origins) == 0 {
		cfg.AllowOriginFunc = func(string) bool { return false }
		return cfg
	}
	cfg.AllowOrigins = origins
	return cfg
}

// Run serves handler on addr until ctx is cancelled, then drains in-flight
// requests.
func Run(ctx context.Context, addr string, handler http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Infof("Server starting on %s", addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("Shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Info("Server exited")
	return nil
}
