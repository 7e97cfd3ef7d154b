package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/time/rate"

	httptransport "github.com/example/hearing-board/internal/http"
	"github.com/example/hearing-board/internal/metrics"
)

func newServeCommand(a *app) *cobra.Command {
	var port int

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Sirve la API HTTP de audiencias",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("port") {
				a.cfg.HTTPPort = port
			}
			handler, err := a.newHandler(cmd.Context())
			if err != nil {
				return err
			}
			return a.serve(cmd.Context(), handler)
		},
	}
	cmd.Flags().IntVarP(&port, "port", "p", 8080, "puerto HTTP; reemplaza HEARINGS_HTTP_PORT")
	return cmd
}

// newHandler loads the dataset once and assembles the router. A source that
// cannot be loaded at startup is fatal.
func (a *app) newHandler(ctx context.Context) (http.Handler, error) {
	svc, err := a.newHearingService()
	if err != nil {
		return nil, err
	}
	m := metrics.New()
	svc.SetMetrics(m)

	if _, err := svc.Reload(ctx); err != nil {
		return nil, err
	}

	var limiter *rate.Limiter
	if a.cfg.ExportRate > 0 {
		limiter = rate.NewLimiter(rate.Limit(a.cfg.ExportRate), a.cfg.ExportBurst)
	}

	return httptransport.NewRouter(httptransport.RouterConfig{
		Hearings:      httptransport.NewHearingHandler(svc, a.logger),
		Metrics:       m,
		ExportLimiter: limiter,
		Logger:        a.logger,
		Middleware: []func(http.Handler) http.Handler{
			httptransport.RequestLogger(a.logger),
			httptransport.CORS(a.cfg.CORSOrigins),
			httptransport.Compress,
		},
	}), nil
}

func (a *app) serve(ctx context.Context, handler http.Handler) error {
	server := &http.Server{
		Addr:              fmt.Sprintf(":%d", a.cfg.HTTPPort),
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Error("failed to shutdown server", "error", err)
		}
	}()

	a.logger.Info("hearing board API listening", "addr", server.Addr, "source", a.cfg.Source)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		a.logger.Error("server encountered error", "error", err)
		return err
	}
	return nil
}
