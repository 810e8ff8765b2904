package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/terrastation/gallery-reader/backend/internal/model"
	"github.com/terrastation/gallery-reader/backend/internal/platform/errs"
	"github.com/terrastation/gallery-reader/backend/internal/platform/requestid"
)

const (
	kindAlbums = "albums"
	kindPhotos = "photos"

	outcomeError    = "error"
	outcomeCanceled = "canceled"
)

// Recorder receives one observation per upstream fetch.
type Recorder interface {
	ObserveFetch(kind, outcome string, took time.Duration, items int)
}

// Service orchestrates a GalleryProvider, logging and recording each fetch.
type Service struct {
	provider GalleryProvider
	recorder Recorder
	logger   *slog.Logger
}

// NewService creates a Service backed by the given provider.
func NewService(provider GalleryProvider, recorder Recorder, logger *slog.Logger) *Service {
	return &Service{provider: provider, recorder: recorder, logger: logger}
}

// Albums delegates to the provider and logs the outcome.
func (s *Service) Albums(ctx context.Context) (*model.AlbumSet, error) {
	logger := s.logger.With("kind", kindAlbums, "request_id", requestid.FromContext(ctx))
	start := time.Now()

	set, err := s.provider.FetchAlbums(ctx)
	if err != nil {
		s.fail(logger, kindAlbums, start, err)
		return nil, err
	}

	s.done(logger, kindAlbums, start, set.Source, len(set.Albums))
	return set, nil
}

// AlbumPhotos delegates to the provider and logs the outcome.
func (s *Service) AlbumPhotos(ctx context.Context, albumID string) (*model.PhotoSet, error) {
	logger := s.logger.With("kind", kindPhotos, "album_id", albumID, "request_id", requestid.FromContext(ctx))
	start := time.Now()

	set, err := s.provider.FetchAlbumPhotos(ctx, albumID)
	if err != nil {
		s.fail(logger, kindPhotos, start, err)
		return nil, err
	}

	s.done(logger, kindPhotos, start, set.Source, len(set.Photos))
	return set, nil
}

func (s *Service) fail(logger *slog.Logger, kind string, start time.Time, err error) {
	// An abandoned request is not an upstream failure.
	if errs.KindOf(err) == errs.Canceled {
		s.recorder.ObserveFetch(kind, outcomeCanceled, time.Since(start), 0)
		logger.Info("request canceled by caller", "error", err)
		return
	}

	s.recorder.ObserveFetch(kind, outcomeError, time.Since(start), 0)

	attrs := []any{"error", err, "error_kind", errs.KindOf(err).String()}
	var appErr *errs.AppError
	if errors.As(err, &appErr) && appErr.UpstreamStatus != 0 {
		attrs = append(attrs, "upstream_status", appErr.UpstreamStatus)
	}
	logger.Error("upstream fetch failed", attrs...)
}

func (s *Service) done(logger *slog.Logger, kind string, start time.Time, source model.Source, count int) {
	took := time.Since(start)
	s.recorder.ObserveFetch(kind, string(source), took, count)

	if source == model.SourcePlaceholder {
		logger.Warn("nothing found via scraping, serving placeholder data", "count", count)
		return
	}
	logger.Info("upstream fetch complete", "count", count, "duration", took.String())
}
