package gallery

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/url"
	"strings"

	"github.com/terrastation/gallery-reader/backend/internal/model"
	"github.com/terrastation/gallery-reader/backend/internal/platform/errs"
)

var errEmptyPage = errors.New("upstream page name is empty")

// Upstream locates the public albums index of one page.
type Upstream struct {
	BaseURL string // scheme and host, e.g. https://www.facebook.com
	Page    string // page slug, e.g. terrastationvn
}

// AlbumsURL is the albums index of the page.
func (u Upstream) AlbumsURL() string {
	return strings.TrimRight(u.BaseURL, "/") + "/" + u.Page + "/photos_albums"
}

// AlbumURL is the page of a single album. The doubled separator matches the
// upstream links this service was built against.
func (u Upstream) AlbumURL(albumID string) string {
	return u.AlbumsURL() + "//" + url.PathEscape(albumID)
}

// Engine fetches upstream pages, extracts records, and substitutes
// placeholders when extraction finds nothing.
type Engine struct {
	fetcher  Fetcher
	parser   *Parser
	upstream Upstream
}

// NewEngine returns an Engine backed by the given Fetcher and Parser.
func NewEngine(fetcher Fetcher, parser *Parser, upstream Upstream) (*Engine, error) {
	if strings.TrimSpace(upstream.Page) == "" {
		return nil, errEmptyPage
	}
	return &Engine{
		fetcher:  fetcher,
		parser:   parser,
		upstream: upstream,
	}, nil
}

// FetchAlbums scrapes the albums index. It fails only when the page could
// not be fetched.
func (e *Engine) FetchAlbums(ctx context.Context) (*model.AlbumSet, error) {
	body, err := e.fetch(ctx, e.upstream.AlbumsURL(), "Failed to fetch albums page")
	if err != nil {
		return nil, err
	}

	albums := e.parser.ParseAlbums(bytes.NewReader(body))
	if len(albums) == 0 {
		return &model.AlbumSet{Albums: placeholderAlbums(), Source: model.SourcePlaceholder}, nil
	}
	return &model.AlbumSet{Albums: albums, Source: model.SourceLive}, nil
}

// FetchAlbumPhotos scrapes one album page. It fails only when the page could
// not be fetched.
func (e *Engine) FetchAlbumPhotos(ctx context.Context, albumID string) (*model.PhotoSet, error) {
	body, err := e.fetch(ctx, e.upstream.AlbumURL(albumID), "Failed to fetch album page")
	if err != nil {
		return nil, err
	}

	photos := e.parser.ParsePhotos(bytes.NewReader(body))
	if len(photos) == 0 {
		return &model.PhotoSet{AlbumID: albumID, Photos: placeholderPhotos(albumID), Source: model.SourcePlaceholder}, nil
	}
	return &model.PhotoSet{AlbumID: albumID, Photos: photos, Source: model.SourceLive}, nil
}

// fetch reads the whole body so that a broken connection mid-body counts as a
// transport failure rather than an empty page.
func (e *Engine) fetch(ctx context.Context, target, message string) ([]byte, error) {
	rc, statusCode, err := e.fetcher.Fetch(ctx, target)
	if err != nil {
		return nil, transportError(ctx, message, statusCode, err)
	}
	defer func() { _ = rc.Close() }()

	body, err := io.ReadAll(rc)
	if err != nil {
		return nil, transportError(ctx, message, statusCode, fmt.Errorf("read body: %w", err))
	}
	return body, nil
}

func transportError(ctx context.Context, message string, statusCode int, cause error) error {
	kind := errs.Unreachable
	var netErr net.Error
	switch {
	case errors.Is(ctx.Err(), context.Canceled) || errors.Is(cause, context.Canceled):
		kind = errs.Canceled
	case errors.Is(ctx.Err(), context.DeadlineExceeded) || errors.Is(cause, context.DeadlineExceeded) ||
		(errors.As(cause, &netErr) && netErr.Timeout()):
		kind = errs.Timeout
	}
	return &errs.AppError{
		Kind:           kind,
		UpstreamStatus: statusCode,
		Message:        message,
		Cause:          cause,
	}
}
