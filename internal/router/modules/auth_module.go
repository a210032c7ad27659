package modules

import (
	"github.com/gin-gonic/gin"

	handlers "github.com/oksasatya/go-link-saver/internal/interface/http"
	"github.com/oksasatya/go-link-saver/internal/interface/middleware"
)

// AuthModule wires account routes.
// Public: POST /api/auth/register, POST /api/auth/login
// Protected: GET /api/auth/me
type AuthModule struct {
	Handler *handlers.AuthHandler
	JWT     middleware.TokenParser
}

func NewAuthModule(h *handlers.AuthHandler, jwt middleware.TokenParser) *AuthModule {
	return &AuthModule{Handler: h, JWT: jwt}
}

func (m *AuthModule) Register(rg *gin.RouterGroup) {
	rg.POST("/auth/register", m.Handler.Register)
	rg.POST("/auth/login", m.Handler.Login)
	rg.GET("/auth/me", middleware.Auth(m.JWT), m.Handler.Me)
}
