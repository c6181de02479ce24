package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Domenick1991/flightrecords/api"
	"github.com/Domenick1991/flightrecords/config"
	"github.com/Domenick1991/flightrecords/internal/logging"
	"github.com/Domenick1991/flightrecords/internal/metrics"
	"github.com/Domenick1991/flightrecords/internal/middleware"
	"github.com/Domenick1991/flightrecords/internal/service/flights"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// PingFunc reports whether the backing store is reachable.
type PingFunc func(ctx context.Context) error

type RouterDeps struct {
	Flights flights.FlightUseCase
	Metrics *metrics.Registry
	Ping    PingFunc
}

// NewRouter builds the gin engine serving the flight routes, /healthz and
// /metrics.
func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.Logger(logging.L()))
	if deps.Metrics != nil {
		r.Use(middleware.Metrics(deps.Metrics))
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Metrics.Registry, promhttp.HandlerOpts{})))
	}

	r.GET("/healthz", func(c *gin.Context) {
		if deps.Ping != nil {
			if err := deps.Ping(c.Request.Context()); err != nil {
				_ = c.AbortWithError(http.StatusServiceUnavailable, err)
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api.NewFlightHandler(deps.Flights).Register(r.Group("/flights"))
	return r
}

// Run serves HTTP until ctx is canceled or the server fails.
func Run(ctx context.Context, cfg *config.Config, deps RouterDeps) error {
	httpSrv := &http.Server{
		Addr:              cfg.HTTP.Address,
		Handler:           NewRouter(deps),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logging.Info("http server listening", "address", cfg.HTTP.Address)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
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
