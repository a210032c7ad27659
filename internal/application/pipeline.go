package application

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-link-saver/internal/domain/entity"
	repo "github.com/oksasatya/go-link-saver/internal/domain/repository"
	"github.com/oksasatya/go-link-saver/internal/metrics"
	"github.com/oksasatya/go-link-saver/pkg/helpers"
)

// Extractor derives page metadata. It must not fail.
type Extractor interface {
	Extract(ctx context.Context, rawURL string) Metadata
}

// Summarizer produces a summary for a page. It must not fail.
type Summarizer interface {
	Summarize(ctx context.Context, rawURL, title string) string
}

// Pipeline turns a submitted url into a stored bookmark. It holds no per-call
// state, so one instance serves concurrent requests.
type Pipeline struct {
	extractor  Extractor
	summarizer Summarizer
	repo       repo.BookmarkRepository
	logger     *logrus.Logger
}

func NewPipeline(extractor Extractor, summarizer Summarizer, repo repo.BookmarkRepository, logger *logrus.Logger) *Pipeline {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &Pipeline{extractor: extractor, summarizer: summarizer, repo: repo, logger: logger}
}

// Ingest stores the url exactly as submitted. Only persistence errors are
// returned; metadata and summary problems are absorbed by their fallbacks.
func (p *Pipeline) Ingest(ctx context.Context, ownerID int64, rawURL string) (*entity.Bookmark, error) {
	md := p.extractor.Extract(ctx, rawURL)
	summary := p.summarizer.Summarize(ctx, rawURL, md.Title)

	b := &entity.Bookmark{
		UserID:  ownerID,
		URL:     rawURL,
		Title:   md.Title,
		Favicon: md.Favicon,
		Summary: summary,
	}
	err := p.repo.Create(ctx, b)
	metrics.ObserveIngest(err)
	if err != nil {
		return nil, fmt.Errorf("persist bookmark: %w", err)
	}
	p.logger.WithFields(logrus.Fields{"bookmark_id": b.ID, "user_id": ownerID}).Debug("bookmark ingested")
	return b, nil
}
