package gallery

import (
	"fmt"

	"github.com/terrastation/gallery-reader/backend/internal/model"
)

const (
	placeholderAlbumCount  = 3
	placeholderPhotoCount  = 5
	placeholderAlbumPhotos = 5
)

// placeholderAlbums is served when the albums page yields nothing.
func placeholderAlbums() []model.Album {
	albums := make([]model.Album, 0, placeholderAlbumCount)
	for i := 1; i <= placeholderAlbumCount; i++ {
		cover := fmt.Sprintf("https://via.placeholder.com/400x300?text=Gallery+%d", i)
		count := placeholderAlbumPhotos
		albums = append(albums, model.Album{
			ID:         fmt.Sprintf("album%d", i),
			Name:       fmt.Sprintf("Terra Station Gallery %d", i),
			Cover:      &cover,
			PhotoCount: &count,
		})
	}
	return albums
}

// placeholderPhotos is served when an album page yields nothing. Ids embed
// the requested album id verbatim.
func placeholderPhotos(albumID string) []model.Photo {
	photos := make([]model.Photo, 0, placeholderPhotoCount)
	for i := 1; i <= placeholderPhotoCount; i++ {
		caption := fmt.Sprintf("Sample photo %d from %s", i, albumID)
		photos = append(photos, model.Photo{
			ID:      fmt.Sprintf("photo_%s_%d", albumID, i),
			Src:     fmt.Sprintf("https://via.placeholder.com/800x1200?text=Photo+%d", i),
			Caption: &caption,
		})
	}
	return photos
}
