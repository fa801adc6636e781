package app

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/hOtoch/moment-midia/internal/handlers"
	"github.com/hOtoch/moment-midia/internal/monitoring"
	"github.com/hOtoch/moment-midia/internal/repositories"
	"github.com/hOtoch/moment-midia/internal/services"
)

// newRouter builds the gin engine and registers every route. Handlers get
// their services here; nothing else constructs them.
func newRouter(a *App) *gin.Engine {
	if a.cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(monitoring.MetricsMiddleware())
	r.Use(cors.New(cors.Config{
		AllowOrigins:     a.cfg.CORS.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept"},
		AllowCredentials: true,
	}))
	if a.limiter != nil {
		r.Use(a.limiter.Middleware())
	}

	r.GET("/health", monitoring.HealthHandler())
	r.GET("/ready", monitoring.ReadinessHandler())
	r.GET("/live", monitoring.LivenessHandler())
	r.GET("/metrics", monitoring.MetricsHandler())

	taskRepo := repositories.NewGormTaskRepository(a.db)
	userRepo := repositories.NewGormUserRepository(a.db)

	var sink services.TaskEventSink
	if a.producer != nil {
		sink = a.producer
	}
	taskService := services.NewCachedTaskService(services.NewTaskService(taskRepo, sink), a.cache)
	userService := services.NewUserService(userRepo)

	taskHandler := handlers.NewTaskHandler(taskService)
	userHandler := handlers.NewUserHandler(userService)
	agendaHandler := handlers.NewAgendaHandler(taskService, userService)

	api := r.Group("/api/v1")
	registerTaskRoutes(api, taskHandler)
	registerUserRoutes(api, userHandler)
	registerAgendaRoutes(api, agendaHandler)

	return r
}

func registerTaskRoutes(api *gin.RouterGroup, h *handlers.TaskHandler) {
	api.POST("/tasks", h.CreateTask)
	api.GET("/tasks", h.GetTasks)
	api.GET("/tasks/:id", h.GetTaskByID)
	api.PUT("/tasks/:id", h.UpdateTask)
	api.PATCH("/tasks/:id/completion", h.ToggleCompletion)
	api.DELETE("/tasks/:id", h.DeleteTask)
}

func registerUserRoutes(api *gin.RouterGroup, h *handlers.UserHandler) {
	api.POST("/users", h.CreateUser)
	api.GET("/users", h.GetUsers)
	api.PUT("/users/:id", h.UpdateUser)
	api.DELETE("/users/:id", h.DeleteUser)
}

func registerAgendaRoutes(api *gin.RouterGroup, h *handlers.AgendaHandler) {
	api.GET("/agenda/overview", h.Overview)
	api.GET("/agenda/day/:date", h.TasksForDay)
	api.GET("/agenda/unscheduled", h.UnscheduledTasks)
	api.GET("/agenda/calendar/:year/:month", h.CalendarMonth)
}
