package modules

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/homechores/chorelog/internal/container"
	handlers "github.com/homechores/chorelog/internal/interface/http"
	"github.com/homechores/chorelog/internal/interface/middleware"
	"github.com/homechores/chorelog/pkg/helpers"
)

// ExecutionModule wires the execution-history routes. Every route is
// protected.
type ExecutionModule struct {
	Handler *handlers.ExecutionHandler
	JWT     *helpers.JWTManager
}

func NewExecutionModule(h *handlers.ExecutionHandler, jwt *helpers.JWTManager) *ExecutionModule {
	return &ExecutionModule{Handler: h, JWT: jwt}
}

func (m *ExecutionModule) Register(rg *gin.RouterGroup) {
	auth := rg.Group("/tasks-executions")
	auth.Use(middleware.Auth(m.JWT))
	auth.Use(
		middleware.RateLimit(container.GetRedis(), 300, time.Minute, middleware.KeyByIP(), middleware.AllowPrivateIP()),
		middleware.RateLimit(container.GetRedis(), 120, time.Minute, middleware.KeyByUserID(), nil),
	)
	{
		auth.POST("", m.Handler.Log)
		auth.GET("", m.Handler.ListMine)
		auth.GET("/task/:taskId", m.Handler.ListForTask)
		auth.PUT("/:id", m.Handler.Amend)
	}
}
