package modules

import (
	"github.com/gin-gonic/gin"

	"github.com/oksasatya/go-link-saver/internal/metrics"
)

type DebugModule struct{}

func NewDebugModule() *DebugModule { return &DebugModule{} }

func (m *DebugModule) Register(rg *gin.RouterGroup) {
	// Prometheus text exposition
	rg.GET("/debug/metrics", gin.WrapH(metrics.Handler()))
}
