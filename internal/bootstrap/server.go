package bootstrap

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/KiraMuss/AndersonStudio/api"
	"github.com/KiraMuss/AndersonStudio/config"
)

// Run starts the HTTP server and blocks until the context is canceled or the
// server fails.
func Run(ctx context.Context, cfg *config.Config, bookings *api.BookingHandler, services *api.ServiceHandler) error {
	httpSrv := newServer(cfg, bookings, services)

	errCh := make(chan error, 1)
	go func() { errCh <- httpSrv.ListenAndServe() }()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpSrv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("shutdown http server: %w", err)
		}
		return nil
	}
}

func newServer(cfg *config.Config, bookings *api.BookingHandler, services *api.ServiceHandler) *http.Server {
	engine := gin.New()
	engine.Use(gin.Logger(), gin.Recovery())

	group := engine.Group("/api")
	bookings.Register(group)
	services.Register(group)

	if cfg.HTTP.SwaggerDir != "" {
		engine.Static("/swagger", cfg.HTTP.SwaggerDir)
		engine.GET("/docs/*any", gin.WrapH(httpSwagger.Handler(
			httpSwagger.URL("/swagger/openapi.json"),
		)))
	}

	return &http.Server{
		Addr:    cfg.HTTP.Address,
		Handler: engine,
	}
}
