package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-link-saver/internal/interface/http"
	"github.com/oksasatya/go-link-saver/internal/interface/middleware"
)

// BookmarkModule wires the bookmark routes. All of them require a bearer token.
type BookmarkModule struct {
	Handler *handlers.BookmarkHandler
	JWT     middleware.TokenParser
}

func NewBookmarkModule(h *handlers.BookmarkHandler, jwt middleware.TokenParser) *BookmarkModule {
	return &BookmarkModule{Handler: h, JWT: jwt}
}

func (m *BookmarkModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/bookmarks")
	auth.Use(middleware.Auth(m.JWT))
	{
		auth.POST("", m.Handler.Create)
		auth.GET("", m.Handler.List)
		auth.GET("/search", m.Handler.Search)
		auth.GET("/:id", m.Handler.Get)
		auth.DELETE("/:id", m.Handler.Delete)
	}
}
