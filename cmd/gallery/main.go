package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/terrastation/gallery-reader/backend/internal/api"
	"github.com/terrastation/gallery-reader/backend/internal/gallery"
	"github.com/terrastation/gallery-reader/backend/internal/platform/config"
	"github.com/terrastation/gallery-reader/backend/internal/platform/logger"
	"github.com/terrastation/gallery-reader/backend/internal/platform/metrics"
	"github.com/terrastation/gallery-reader/backend/internal/platform/middleware"
	"github.com/terrastation/gallery-reader/backend/internal/web"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	if err := run(cfg, log); err != nil {
		log.Error("server stopped", "error", err)
		os.Exit(1)
	}
}

func run(cfg config.Config, log *slog.Logger) error {
	m := metrics.New()

	fetcher := gallery.NewHTTPClient(gallery.ClientConfig{
		UserAgent: cfg.UpstreamUserAgent,
		Timeout:   cfg.UpstreamTimeout,
	})
	parser := gallery.NewParser(gallery.Selectors{
		Album:        cfg.SelectorAlbum,
		AlbumName:    cfg.SelectorAlbumName,
		AlbumCover:   cfg.SelectorAlbumCover,
		Photo:        cfg.SelectorPhoto,
		PhotoMarker:  cfg.PhotoMarker,
		PhotoExclude: cfg.PhotoExclude,
	})
	upstream := gallery.Upstream{BaseURL: cfg.UpstreamBaseURL, Page: cfg.UpstreamPage}
	engine, err := gallery.NewEngine(fetcher, parser, upstream)
	if err != nil {
		return err
	}

	shell, err := web.New(cfg.UpstreamPage, log)
	if err != nil {
		return err
	}

	mux := http.NewServeMux()
	api.NewTransport(api.NewService(engine, m, log), log).RegisterRoutes(mux)
	shell.RegisterRoutes(mux)
	mux.Handle("GET /metrics", m.Handler())

	srv := &http.Server{
		Addr:              cfg.Addr(),
		Handler:           middleware.Chain(mux, middleware.RequestID, middleware.Logging(log)),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       15 * time.Second,
		// Scrapes may take up to the upstream timeout.
		WriteTimeout: cfg.UpstreamTimeout + 15*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("server listening", "addr", srv.Addr, "upstream", upstream.AlbumsURL())
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen on %s: %w", srv.Addr, err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down", "timeout", cfg.ShutdownTimeout)
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
