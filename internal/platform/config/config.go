package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-ini/ini"
	"github.com/spf13/viper"
)

var (
	errInvalidPort      = errors.New("config: invalid PORT number")
	errInvalidTimeout   = errors.New("config: UPSTREAM_TIMEOUT must be a duration of at least 1s")
	errInvalidShutdown  = errors.New("config: SHUTDOWN_TIMEOUT must be a duration of at least 1s")
	errInvalidBaseURL   = errors.New("config: UPSTREAM_BASE_URL must be an absolute http(s) URL")
	errEmptyPage        = errors.New("config: UPSTREAM_PAGE is required")
	errInvalidLogFormat = errors.New("config: LOG_FORMAT must be json or text")
)

// minTimeout rejects unitless values such as "30", which parse as nanoseconds.
const minTimeout = time.Second

// Keys, as seen in the environment (upper case) and the INI file
// (lower case, "<section>_<key>" for keys outside the default section).
const (
	KeyPort              = "port"
	KeyLogLevel          = "log_level"
	KeyLogFormat         = "log_format"
	KeyUpstreamBaseURL   = "upstream_base_url"
	KeyUpstreamPage      = "upstream_page"
	KeyUpstreamUserAgent = "upstream_user_agent"
	KeyUpstreamTimeout   = "upstream_timeout"
	KeyShutdownTimeout   = "shutdown_timeout"
	KeySelectorAlbum     = "selector_album"
	KeySelectorName      = "selector_album_name"
	KeySelectorCover     = "selector_album_cover"
	KeySelectorPhoto     = "selector_photo"
	KeyPhotoMarker       = "photo_marker"
	KeyPhotoExclude      = "photo_exclude"
)

// Config holds all application configuration.
type Config struct {
	Port            string
	LogLevel        string
	LogFormat       string
	ShutdownTimeout time.Duration

	UpstreamBaseURL   string
	UpstreamPage      string
	UpstreamUserAgent string
	UpstreamTimeout   time.Duration

	SelectorAlbum      string
	SelectorAlbumName  string
	SelectorAlbumCover string
	SelectorPhoto      string
	PhotoMarker        string
	PhotoExclude       string
}

var defaults = map[string]any{
	KeyPort:              "8080",
	KeyLogLevel:          "INFO",
	KeyLogFormat:         "json",
	KeyUpstreamBaseURL:   "https://www.facebook.com",
	KeyUpstreamPage:      "terrastationvn",
	KeyUpstreamUserAgent: "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36",
	KeyUpstreamTimeout:   "30s",
	KeyShutdownTimeout:   "10s",
	KeySelectorAlbum:     "[data-album-id]",
	KeySelectorName:      "span",
	KeySelectorCover:     "img",
	KeySelectorPhoto:     "img[src*='fbcdn']",
	KeyPhotoMarker:       "fbcdn",
	KeyPhotoExclude:      "profile",
}

// Load reads configuration from built-in defaults, then the optional INI file
// named by CONFIG_FILE, then environment variables. Later sources win.
func Load() (Config, error) {
	v := viper.New()
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadINI(v, path); err != nil {
			return Config{}, err
		}
	}

	v.AutomaticEnv()

	cfg := Config{
		Port:            v.GetString(KeyPort),
		LogLevel:        v.GetString(KeyLogLevel),
		LogFormat:       strings.ToLower(v.GetString(KeyLogFormat)),
		ShutdownTimeout: v.GetDuration(KeyShutdownTimeout),

		UpstreamBaseURL:   v.GetString(KeyUpstreamBaseURL),
		UpstreamPage:      strings.Trim(v.GetString(KeyUpstreamPage), "/"),
		UpstreamUserAgent: v.GetString(KeyUpstreamUserAgent),
		UpstreamTimeout:   v.GetDuration(KeyUpstreamTimeout),

		SelectorAlbum:      v.GetString(KeySelectorAlbum),
		SelectorAlbumName:  v.GetString(KeySelectorName),
		SelectorAlbumCover: v.GetString(KeySelectorCover),
		SelectorPhoto:      v.GetString(KeySelectorPhoto),
		PhotoMarker:        v.GetString(KeyPhotoMarker),
		PhotoExclude:       v.GetString(KeyPhotoExclude),
	}

	return cfg, cfg.validate()
}

// loadINI copies every key of the file into v as a default, so that
// environment variables still take precedence.
func loadINI(v *viper.Viper, path string) error {
	file, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("config: load %s: %w", path, err)
	}

	for _, section := range file.Sections() {
		prefix := ""
		if section.Name() != ini.DefaultSection {
			prefix = strings.ToLower(section.Name()) + "_"
		}
		for _, key := range section.Keys() {
			v.SetDefault(prefix+strings.ToLower(key.Name()), key.String())
		}
	}
	return nil
}

func (c Config) validate() error {
	port, err := strconv.Atoi(c.Port)
	if err != nil || port < 1 || port > 65535 {
		return fmt.Errorf("%w: %q", errInvalidPort, c.Port)
	}

	if c.UpstreamTimeout < minTimeout {
		return fmt.Errorf("%w: got %s", errInvalidTimeout, c.UpstreamTimeout)
	}
	if c.ShutdownTimeout < minTimeout {
		return fmt.Errorf("%w: got %s", errInvalidShutdown, c.ShutdownTimeout)
	}

	u, err := url.Parse(c.UpstreamBaseURL)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return fmt.Errorf("%w: %q", errInvalidBaseURL, c.UpstreamBaseURL)
	}
	if c.UpstreamPage == "" {
		return errEmptyPage
	}

	if c.LogFormat != "json" && c.LogFormat != "text" {
		return fmt.Errorf("%w: %q", errInvalidLogFormat, c.LogFormat)
	}

	return nil
}

// Addr is the listen address for the HTTP server.
func (c Config) Addr() string {
	return ":" + c.Port
}
