package model

// Photo is a single image inside an album.
type Photo struct {
	ID        string  `json:"id"`
	Src       string  `json:"src"`
	Caption   *string `json:"caption,omitempty"`
	Timestamp *string `json:"timestamp,omitempty"`
}

// Album is a named collection of photos on the upstream page.
type Album struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Cover      *string `json:"cover,omitempty"`
	PhotoCount *int    `json:"photo_count,omitempty"`
}

// Source tells whether a list was scraped or substituted with placeholders.
type Source string

const (
	SourceLive        Source = "live"
	SourcePlaceholder Source = "placeholder"
)

// AlbumSet is the result of one albums fetch.
type AlbumSet struct {
	Albums []Album
	Source Source
}

// PhotoSet is the result of one album photos fetch.
type PhotoSet struct {
	AlbumID string
	Photos  []Photo
	Source  Source
}

// AlbumsResponse is the JSON envelope for GET /api/albums.
type AlbumsResponse struct {
	Albums []Album `json:"albums"`
	Error  string  `json:"error,omitempty"`
}

// PhotosResponse is the JSON envelope for GET /api/album/{id}/photos.
type PhotosResponse struct {
	Photos []Photo `json:"photos"`
	Error  string  `json:"error,omitempty"`
}

// HealthResponse is the JSON shape of GET /health.
type HealthResponse struct {
	Status string `json:"status"`
}
