package application

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-link-saver/internal/metrics"
	"github.com/oksasatya/go-link-saver/pkg/helpers"
)

const (
	// MaxSummaryLength caps summaries, in characters. A hard cut past the
	// cap carries a trailing "..." marker on top of it.
	MaxSummaryLength = 1000

	// a period at or before this share of the cap is too early to cut at
	sentenceCutoff = 0.7
)

var errEmptySummary = errors.New("empty summary")

// RemoteSummarizer produces a summary for url using an external service.
type RemoteSummarizer interface {
	Summarize(ctx context.Context, url string) (string, error)
}

type summaryAttempt struct {
	source string
	run    func(ctx context.Context, target *url.URL, normalized, title string) (string, error)
}

// SummaryGenerator tries the remote summarizer (when configured) and then the
// basic summary, in that order. It never fails.
type SummaryGenerator struct {
	remote RemoteSummarizer
	logger *logrus.Logger
}

// NewSummaryGenerator builds a generator. A nil remote means no credential is
// configured and only the basic summary is used.
func NewSummaryGenerator(remote RemoteSummarizer, logger *logrus.Logger) *SummaryGenerator {
	if logger == nil {
		logger = helpers.NewNopLogger()
	}
	return &SummaryGenerator{remote: remote, logger: logger}
}

func (g *SummaryGenerator) Summarize(ctx context.Context, rawURL, title string) (summary string) {
	normalized := NormalizeURL(rawURL)
	defer func() {
		if r := recover(); r != nil {
			g.logger.WithField("url", rawURL).WithField("panic", r).Error("summary generation panicked")
			summary = g.lastResort(normalized, title)
		}
	}()

	target, err := parseTarget(normalized)
	if err != nil {
		g.logger.WithError(err).WithField("url", rawURL).Warn("cannot parse url for summary")
		return g.lastResort(normalized, title)
	}

	for _, a := range g.attempts() {
		s, err := a.run(ctx, target, normalized, title)
		if err != nil {
			g.logger.WithError(err).WithField("url", normalized).WithField("source", a.source).Warn("summary attempt failed; falling back")
			continue
		}
		metrics.ObserveSummarySource(a.source)
		return s
	}
	return g.lastResort(normalized, title)
}

func (g *SummaryGenerator) attempts() []summaryAttempt {
	chain := make([]summaryAttempt, 0, 2)
	if g.remote != nil {
		chain = append(chain, summaryAttempt{source: metrics.SourceRemote, run: g.remoteSummary})
	} else {
		g.logger.Debug("no remote summarization key configured; using basic summary")
	}
	return append(chain, summaryAttempt{source: metrics.SourceBasic, run: basicSummary})
}

func (g *SummaryGenerator) remoteSummary(ctx context.Context, _ *url.URL, normalized, _ string) (string, error) {
	s, err := g.remote.Summarize(ctx, normalized)
	if err != nil {
		return "", err
	}
	s = strings.TrimSpace(s)
	if s == "" {
		return "", errEmptySummary
	}
	return LimitSummary(s), nil
}

func (g *SummaryGenerator) lastResort(normalized, title string) string {
	metrics.ObserveSummarySource(metrics.SourceLastResort)
	return "Bookmark saved: " + orDefault(title, normalized)
}

func basicSummary(_ context.Context, target *url.URL, normalized, title string) (string, error) {
	domain := strings.TrimPrefix(target.Hostname(), "www.")
	cleanDomain, _, _ := strings.Cut(domain, ".")
	return fmt.Sprintf("Bookmark from %s: \"%s\". Access this link to view the full content.", cleanDomain, orDefault(title, normalized)), nil
}

// LimitSummary caps s at MaxSummaryLength characters. Longer text is cut at
// the last period when one falls past 70% of the cap, otherwise it is hard
// truncated and "..." appended. Applying it twice changes nothing.
func LimitSummary(s string) string {
	runes := []rune(s)
	if len(runes) <= MaxSummaryLength {
		return s
	}
	truncated := runes[:MaxSummaryLength]
	lastPeriod := -1
	for i := len(truncated) - 1; i >= 0; i-- {
		if truncated[i] == '.' {
			lastPeriod = i
			break
		}
	}
	if float64(lastPeriod) > MaxSummaryLength*sentenceCutoff {
		return string(truncated[:lastPeriod+1])
	}
	return string(truncated) + "..."
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
