package router

import (
	"github.com/oksasatya/go-link-saver/internal/application"
	"github.com/oksasatya/go-link-saver/internal/container"
	"github.com/oksasatya/go-link-saver/internal/infrastructure/jina"
	pginfra "github.com/oksasatya/go-link-saver/internal/infrastructure/postgres"
	"github.com/oksasatya/go-link-saver/internal/infrastructure/search"
	"github.com/oksasatya/go-link-saver/internal/infrastructure/webpage"
	handlers "github.com/oksasatya/go-link-saver/internal/interface/http"
	"github.com/oksasatya/go-link-saver/internal/router/modules"
)

type AuthModuleDeps struct {
	Service *application.AuthService
	Handler *handlers.AuthHandler
}

type BookmarkModuleDeps struct {
	Service *application.BookmarkService
	Handler *handlers.BookmarkHandler
}

func buildAuthDeps(c *container.Container) AuthModuleDeps {
	repo := pginfra.NewUserRepository(c.DB)

	// a nil *RabbitPublisher must not become a non-nil interface
	var jobs application.JobPublisher
	if c.Rabbit != nil {
		jobs = c.Rabbit
	}
	service := application.NewAuthService(repo, c.JWT, jobs, c.Cfg, c.Logger)

	return AuthModuleDeps{
		Service: service,
		Handler: handlers.NewAuthHandler(service, c.Logger),
	}
}

func buildBookmarkDeps(c *container.Container) BookmarkModuleDeps {
	cfg := c.Cfg
	repo := pginfra.NewBookmarkRepository(c.DB)

	fetcher := webpage.NewFetcher(webpage.Config{
		Timeout:   cfg.FetchTimeout,
		MaxBytes:  cfg.FetchMaxBytes,
		UserAgent: cfg.FetchUserAgent,
	})
	var remote application.RemoteSummarizer
	if cfg.SummarizerEnabled() {
		remote = jina.NewClient(jina.Config{
			APIKey:   cfg.JinaAPIKey,
			Endpoint: cfg.JinaEndpoint,
			Field:    cfg.JinaSummaryField,
			Timeout:  cfg.SummaryTimeout,
		})
	}
	pipeline := application.NewPipeline(
		application.NewMetadataExtractor(fetcher, c.Logger),
		application.NewSummaryGenerator(remote, c.Logger),
		repo,
		c.Logger,
	)

	var index application.BookmarkIndex
	if c.ES != nil {
		index = search.NewBookmarkIndex(c.ES, cfg.ESBookmarksIndex)
	}
	service := application.NewBookmarkService(pipeline, repo, index, c.Logger)

	return BookmarkModuleDeps{
		Service: service,
		Handler: handlers.NewBookmarkHandler(service, c.Logger),
	}
}

// InitModules initializes all application modules and registers them with the router registry
// This function should be called once during application startup to wire up all modules
func InitModules(r *Registry, c *container.Container) {
	authDeps := buildAuthDeps(c)
	bookmarkDeps := buildBookmarkDeps(c)

	r.Add(modules.NewHealthModule(handlers.NewHealthHandler(c.DB, c.Logger)))
	r.Add(modules.NewAuthModule(authDeps.Handler, c.JWT))
	r.Add(modules.NewBookmarkModule(bookmarkDeps.Handler, c.JWT))
	if c.Cfg.DebugMetricsEnabled {
		r.Add(modules.NewDebugModule())
	}
}
