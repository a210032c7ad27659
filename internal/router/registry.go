package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-link-saver/pkg/response"
)

// Registry collects API middleware and modules and mounts them in one pass.
type Registry struct {
	Engine      *gin.Engine
	API         *gin.RouterGroup
	middlewares []gin.HandlerFunc
	modules     []Module
}

// NewRegistry mounts the API group at /api and the plain-text banner at /.
func NewRegistry(engine *gin.Engine) *Registry {
	engine.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Link Saver API Server")
	})
	api := engine.Group("/api")
	return &Registry{Engine: engine, API: api}
}

func (r *Registry) Use(mw ...gin.HandlerFunc) {
	r.middlewares = append(r.middlewares, mw...)
}

func (r *Registry) Add(mod Module) {
	r.modules = append(r.modules, mod)
}

// RegisterAll applies middleware before any module routes so every
// /api handler is wrapped. Unmatched paths get a JSON 404.
func (r *Registry) RegisterAll() {
	if len(r.middlewares) > 0 {
		r.API.Use(r.middlewares...)
	}
	for _, m := range r.modules {
		m.Register(r.API)
	}
	r.Engine.NoRoute(unknownRoute)
}

func unknownRoute(c *gin.Context) {
	response.Error[any](c, http.StatusNotFound, "route not found", nil)
}
