// Package metrics exposes Prometheus collectors for the link saver service.
package metrics

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Summary sources.
const (
	SourceRemote     = "remote"
	SourceBasic      = "basic"
	SourceLastResort = "last_resort"
)

var (
	bookmarksIngestedTotal *prometheus.CounterVec
	summarySourceTotal     *prometheus.CounterVec
	metadataFetchTotal     *prometheus.CounterVec
	httpRequestsTotal      *prometheus.CounterVec

	registry *prometheus.Registry
	once     sync.Once
)

// Init registers the collectors. Safe to call more than once.
func Init() {
	once.Do(func() {
		registry = prometheus.NewRegistry()
		registry.MustRegister(collectors.NewGoCollector())

		bookmarksIngestedTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linksaver_bookmarks_ingested_total",
				Help: "Bookmark ingestions, labeled by result.",
			},
			[]string{"result"},
		)
		summarySourceTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linksaver_summary_source_total",
				Help: "Generated summaries, labeled by the step of the fallback chain that produced them.",
			},
			[]string{"source"},
		)
		metadataFetchTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linksaver_metadata_fetch_total",
				Help: "Metadata extractions, labeled by ok or fallback.",
			},
			[]string{"result"},
		)
		httpRequestsTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "linksaver_http_requests_total",
				Help: "HTTP requests, labeled by method, route and status code.",
			},
			[]string{"method", "route", "code"},
		)
		registry.MustRegister(bookmarksIngestedTotal, summarySourceTotal, metadataFetchTotal, httpRequestsTotal)
	})
}

// Handler returns an http.Handler for exposing Prometheus metrics.
func Handler() http.Handler {
	Init()
	return promhttp.HandlerFor(registry, promhttp.HandlerOpts{})
}

func ObserveIngest(err error) {
	Init()
	result := "ok"
	if err != nil {
		result = "error"
	}
	bookmarksIngestedTotal.WithLabelValues(result).Inc()
}

func ObserveSummarySource(source string) {
	Init()
	summarySourceTotal.WithLabelValues(source).Inc()
}

func ObserveMetadataFetch(ok bool) {
	Init()
	result := "ok"
	if !ok {
		result = "fallback"
	}
	metadataFetchTotal.WithLabelValues(result).Inc()
}

func ObserveHTTPRequest(method, route string, code int) {
	Init()
	if route == "" {
		route = "unmatched"
	}
	httpRequestsTotal.WithLabelValues(method, route, strconv.Itoa(code)).Inc()
}
