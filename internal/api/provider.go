package api

import (
	"context"

	"github.com/terrastation/gallery-reader/backend/internal/model"
)

// GalleryProvider defines the contract for any album/photo source.
type GalleryProvider interface {
	FetchAlbums(ctx context.Context) (*model.AlbumSet, error)
	FetchAlbumPhotos(ctx context.Context, albumID string) (*model.PhotoSet, error)
}
