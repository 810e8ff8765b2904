package gallery

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"
)

func TestNewHTTPClient_Defaults(t *testing.T) {
	c := NewHTTPClient(ClientConfig{})
	if c.client == nil {
		t.Fatal("internal http.Client is nil")
	}
	if c.client.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", c.client.Timeout, DefaultTimeout)
	}
	if c.userAgent != DefaultUserAgent {
		t.Errorf("userAgent = %q, want %q", c.userAgent, DefaultUserAgent)
	}
}

func TestNewHTTPClient_Overrides(t *testing.T) {
	c := NewHTTPClient(ClientConfig{UserAgent: "GalleryBot/2.0", Timeout: 5 * time.Second})
	if c.client.Timeout != 5*time.Second {
		t.Errorf("Timeout = %v, want 5s", c.client.Timeout)
	}
	if c.userAgent != "GalleryBot/2.0" {
		t.Errorf("userAgent = %q, want %q", c.userAgent, "GalleryBot/2.0")
	}
}

func TestHTTPClient_Fetch(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("User-Agent") != DefaultUserAgent {
			t.Errorf("User-Agent = %q, want %q", r.Header.Get("User-Agent"), DefaultUserAgent)
		}
		if r.Header.Get("Accept") != "text/html" {
			t.Errorf("Accept = %q, want %q", r.Header.Get("Accept"), "text/html")
		}
		if r.Header.Get("Accept-Language") != acceptLanguage {
			t.Errorf("Accept-Language = %q, want %q", r.Header.Get("Accept-Language"), acceptLanguage)
		}
		w.WriteHeader(http.StatusOK)
		_, _ = fmt.Fprint(w, "<html><body>Hello</body></html>")
	}))
	defer ts.Close()

	c := &HTTPClient{client: ts.Client(), userAgent: DefaultUserAgent}
	body, status, err := c.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = body.Close() }()

	if status != http.StatusOK {
		t.Errorf("status = %d, want %d", status, http.StatusOK)
	}

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if string(data) != "<html><body>Hello</body></html>" {
		t.Errorf("body = %q, want %q", string(data), "<html><body>Hello</body></html>")
	}
}

func TestHTTPClient_Fetch_ErrorStatusReturnsBody(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = fmt.Fprint(w, "<html>blocked</html>")
	}))
	defer ts.Close()

	c := NewHTTPClient(ClientConfig{})
	body, status, err := c.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = body.Close() }()

	if status != http.StatusForbidden {
		t.Errorf("status = %d, want %d", status, http.StatusForbidden)
	}
	data, _ := io.ReadAll(body)
	if !strings.Contains(string(data), "blocked") {
		t.Errorf("body = %q, want the error page", string(data))
	}
}

func TestHTTPClient_Fetch_BodyIsCapped(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		chunk := strings.Repeat("a", 1<<20)
		for range 12 {
			_, _ = fmt.Fprint(w, chunk)
		}
	}))
	defer ts.Close()

	c := &HTTPClient{client: ts.Client(), userAgent: DefaultUserAgent}
	body, _, err := c.Fetch(context.Background(), ts.URL)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer func() { _ = body.Close() }()

	data, err := io.ReadAll(body)
	if err != nil {
		t.Fatalf("failed to read body: %v", err)
	}
	if len(data) != maxResponseBody {
		t.Errorf("read %d bytes, want %d", len(data), maxResponseBody)
	}
}

func TestHTTPClient_Fetch_InvalidURL(t *testing.T) {
	c := NewHTTPClient(ClientConfig{})
	_, _, err := c.Fetch(context.Background(), "://bad-url")
	if err == nil {
		t.Fatal("expected error for invalid URL, got nil")
	}
}

func TestHTTPClient_Fetch_CancelledContext(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer ts.Close()

	c := &HTTPClient{client: ts.Client(), userAgent: DefaultUserAgent}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := c.Fetch(ctx, ts.URL)
	if err == nil {
		t.Fatal("expected error for cancelled context, got nil")
	}
}

func TestHTTPClient_Fetch_Timeout(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer ts.Close()
	defer close(release)

	c := NewHTTPClient(ClientConfig{Timeout: 50 * time.Millisecond})
	_, _, err := c.Fetch(context.Background(), ts.URL)
	if err == nil {
		t.Fatal("expected timeout error, got nil")
	}
}

func TestRedirectPolicy(t *testing.T) {
	tests := []struct {
		name    string
		scheme  string
		via     int
		wantErr bool
	}{
		{name: "https within limit", scheme: "https", via: 3, wantErr: false},
		{name: "too many redirects", scheme: "https", via: 5, wantErr: true},
		{name: "blocked ftp scheme", scheme: "ftp", via: 0, wantErr: true},
		{name: "blocked file scheme", scheme: "file", via: 0, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := &http.Request{URL: &url.URL{Scheme: tt.scheme, Host: "example.com"}} //nolint:exhaustruct
			via := make([]*http.Request, tt.via)

			err := redirectPolicy(req, via)
			if (err != nil) != tt.wantErr {
				t.Errorf("redirectPolicy() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
