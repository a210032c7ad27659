package application

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-link-saver/internal/metrics"
	"github.com/oksasatya/go-link-saver/pkg/helpers"
)

// Metadata is what the extractor derives from a page.
type Metadata struct {
	Title   string
	Favicon string
}

// PageFetcher returns the body of the page at url as text.
type PageFetcher interface {
	Fetch(ctx context.Context, url string) (string, error)
}

var (
	titleRe   = regexp.MustCompile(`(?is)<title[^>]*>(.*?)</title>`)
	faviconRe = regexp.MustCompile(`(?i)<link[^>]*rel=["'](?:shortcut )?icon["'][^>]*href=["']([^"']+)["'][^>]*>`)
)

type MetadataExtractor struct {
	fetcher PageFetcher
	logger  *logrus.Logger
}

func NewMetadataExtractor(fetcher PageFetcher, logger *logrus.Logger) *MetadataExtractor {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &MetadataExtractor{fetcher: fetcher, logger: logger}
}

// Extract never fails. When the page cannot be fetched or parsed it returns
// the scheme-normalized url as the title and no favicon.
func (e *MetadataExtractor) Extract(ctx context.Context, rawURL string) (md Metadata) {
	fallback := Metadata{Title: NormalizeURL(rawURL)}
	defer func() {
		if r := recover(); r != nil {
			e.logger.WithField("url", rawURL).WithField("panic", r).Error("metadata extraction panicked")
			metrics.ObserveMetadataFetch(false)
			md = fallback
		}
	}()

	md, err := e.fetchMetadata(ctx, rawURL)
	if err != nil {
		e.logger.WithError(err).WithField("url", rawURL).Warn("metadata extraction failed; using url as title")
		metrics.ObserveMetadataFetch(false)
		return fallback
	}
	metrics.ObserveMetadataFetch(true)
	return md
}

func (e *MetadataExtractor) fetchMetadata(ctx context.Context, rawURL string) (Metadata, error) {
	normalized := NormalizeURL(rawURL)
	target, err := parseTarget(normalized)
	if err != nil {
		return Metadata{}, fmt.Errorf("parse url: %w", err)
	}
	page, err := e.fetcher.Fetch(ctx, normalized)
	if err != nil {
		return Metadata{}, err
	}

	md := Metadata{Favicon: origin(target) + "/favicon.ico"}
	if m := titleRe.FindStringSubmatch(page); m != nil {
		md.Title = strings.TrimSpace(m[1])
	}
	if m := faviconRe.FindStringSubmatch(page); m != nil {
		md.Favicon = resolveFavicon(origin(target), m[1])
	}
	return md, nil
}

func resolveFavicon(base, href string) string {
	switch {
	case strings.HasPrefix(href, "http"):
		return href
	case strings.HasPrefix(href, "/"):
		return base + href
	default:
		return base + "/" + href
	}
}
