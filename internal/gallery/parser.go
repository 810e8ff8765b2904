package gallery

import (
	"io"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/andybalholm/cascadia"
	"golang.org/x/net/html"

	"github.com/terrastation/gallery-reader/backend/internal/model"
)

const (
	albumIDAttr  = "data-album-id"
	untitledName = "Untitled Album"
)

// Selectors describes where albums and photos live in the upstream markup.
type Selectors struct {
	Album      string // elements carrying the album id attribute
	AlbumName  string // label inside an album element
	AlbumCover string // image inside an album element
	Photo      string // candidate photo images on an album page

	// PhotoMarker must appear in a photo src for it to count as gallery content.
	PhotoMarker string
	// PhotoExclude drops images whose src contains it (avatars, profile thumbs).
	PhotoExclude string
}

// DefaultSelectors matches the public albums pages of the upstream site.
func DefaultSelectors() Selectors {
	return Selectors{
		Album:        "[data-album-id]",
		AlbumName:    "span",
		AlbumCover:   "img",
		Photo:        "img[src*='fbcdn']",
		PhotoMarker:  "fbcdn",
		PhotoExclude: "profile",
	}
}

// Parser extracts albums and photos from static HTML. It is safe for
// concurrent use.
type Parser struct {
	album        goquery.Matcher
	albumName    goquery.Matcher
	albumCover   goquery.Matcher
	photo        goquery.Matcher
	photoMarker  string
	photoExclude string
}

// NewParser compiles the selectors. A selector that does not compile leaves
// its matcher unset, and extraction depending on it finds nothing.
func NewParser(sel Selectors) *Parser {
	return &Parser{
		album:        compile(sel.Album),
		albumName:    compile(sel.AlbumName),
		albumCover:   compile(sel.AlbumCover),
		photo:        compile(sel.Photo),
		photoMarker:  sel.PhotoMarker,
		photoExclude: sel.PhotoExclude,
	}
}

func compile(selector string) goquery.Matcher {
	if strings.TrimSpace(selector) == "" {
		return nil
	}
	m, err := cascadia.Compile(selector)
	if err != nil {
		return nil
	}
	return m
}

// ParseAlbums returns every album element in document order. Elements with a
// missing or empty id are skipped. Label text and attributes are taken as
// they appear in the markup.
func (p *Parser) ParseAlbums(body io.Reader) []model.Album {
	albums := []model.Album{}
	if p.album == nil {
		return albums
	}
	doc, ok := parseDocument(body)
	if !ok {
		return albums
	}

	doc.FindMatcher(p.album).Each(func(_ int, s *goquery.Selection) {
		id, ok := s.Attr(albumIDAttr)
		if !ok || id == "" {
			return
		}

		album := model.Album{ID: id, Name: untitledName}
		if p.albumName != nil {
			if label := s.FindMatcher(p.albumName).First(); label.Length() > 0 {
				album.Name = label.Text()
			}
		}
		if p.albumCover != nil {
			if src, ok := s.FindMatcher(p.albumCover).First().Attr("src"); ok {
				album.Cover = &src
			}
		}

		albums = append(albums, album)
	})

	return albums
}

// ParsePhotos returns gallery images in document order, numbered from zero
// after profile images have been filtered out.
func (p *Parser) ParsePhotos(body io.Reader) []model.Photo {
	photos := []model.Photo{}
	if p.photo == nil {
		return photos
	}
	doc, ok := parseDocument(body)
	if !ok {
		return photos
	}

	doc.FindMatcher(p.photo).Each(func(_ int, s *goquery.Selection) {
		src, ok := s.Attr("src")
		if !ok || !strings.Contains(src, p.photoMarker) {
			return
		}
		if p.photoExclude != "" && strings.Contains(src, p.photoExclude) {
			return
		}

		photo := model.Photo{
			ID:  photoID(len(photos)),
			Src: src,
		}
		if alt, ok := s.Attr("alt"); ok {
			photo.Caption = &alt
		}
		photos = append(photos, photo)
	})

	return photos
}

// parseDocument relies on the HTML5 parser's error recovery, so only a
// failing reader makes it return false.
func parseDocument(body io.Reader) (*goquery.Document, bool) {
	root, err := html.Parse(body)
	if err != nil {
		return nil, false
	}
	return goquery.NewDocumentFromNode(root), true
}

func photoID(index int) string {
	return "photo_" + strconv.Itoa(index)
}
