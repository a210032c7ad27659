package webpage

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFetchReturnsBody(t *testing.T) {
	t.Parallel()

	var gotUA string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write([]byte("<html><title>Hi</title></html>"))
	}))
	defer srv.Close()

	f := NewFetcher(Config{UserAgent: "test-agent"})
	body, err := f.Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "<html><title>Hi</title></html>", body)
	require.Equal(t, "test-agent", gotUA)
}

func TestFetchDecodesCharset(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=iso-8859-1")
		_, _ = w.Write([]byte("<title>caf\xe9</title>"))
	}))
	defer srv.Close()

	body, err := NewFetcher(Config{}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Equal(t, "<title>café</title>", body)
}

func TestFetchIgnoresStatusCode(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("<title>Not Found</title>"))
	}))
	defer srv.Close()

	body, err := NewFetcher(Config{}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Contains(t, body, "Not Found")
}

func TestFetchRejectsNonText(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write([]byte{0x89, 'P', 'N', 'G'})
	}))
	defer srv.Close()

	_, err := NewFetcher(Config{}).Fetch(context.Background(), srv.URL)
	require.ErrorIs(t, err, ErrNotText)
}

func TestFetchTruncatesLargeBodies(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain")
		_, _ = w.Write([]byte(strings.Repeat("a", 4096)))
	}))
	defer srv.Close()

	body, err := NewFetcher(Config{MaxBytes: 100}).Fetch(context.Background(), srv.URL)
	require.NoError(t, err)
	require.Len(t, body, 100)
}

func TestFetchTimesOut(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	}))
	defer srv.Close()

	_, err := NewFetcher(Config{Timeout: 50 * time.Millisecond}).Fetch(context.Background(), srv.URL)
	require.Error(t, err)
}

func TestFetchUnreachableHost(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	_, err := NewFetcher(Config{Timeout: time.Second}).Fetch(context.Background(), url)
	require.Error(t, err)
}

func TestIsText(t *testing.T) {
	t.Parallel()

	cases := map[string]bool{
		"":                          true,
		"text/html; charset=utf-8":  true,
		"application/xhtml+xml":     true,
		"application/rss+xml":       true,
		"application/json":          true,
		"image/png":                 false,
		"application/octet-stream":  false,
		"application/pdf":           false,
		"this is not a media type;": false,
	}
	for ct, want := range cases {
		require.Equal(t, want, isText(ct), ct)
	}
}
