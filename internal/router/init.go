package router

import (
	"github.com/homechores/chorelog/internal/application"
	"github.com/homechores/chorelog/internal/container"
	pginfra "github.com/homechores/chorelog/internal/infrastructure/postgres"
	handlers "github.com/homechores/chorelog/internal/interface/http"
	"github.com/homechores/chorelog/internal/router/modules"
)

// InitModules builds every feature module from the container singletons and
// registers it with the router registry. Called once during startup.
func InitModules(r *Registry) {
	pool := container.GetPGPool()
	logger := container.GetLogger()

	userRepo := pginfra.NewUserRepository(pool)
	taskRepo := pginfra.NewTaskRepository(pool)
	execRepo := pginfra.NewTaskExecutionRepository(pool)

	authSvc := application.NewAuthService(userRepo, container.GetJWT(), logger)
	taskSvc := application.NewTaskService(taskRepo, logger)
	execSvc := application.NewExecutionService(execRepo, taskRepo, container.GetEventsPub(), logger)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, logger)))
	r.Add(modules.NewTaskModule(handlers.NewTaskHandler(taskSvc, logger), container.GetJWT()))
	r.Add(modules.NewExecutionModule(handlers.NewExecutionHandler(execSvc, logger), container.GetJWT()))
}
