package app

import (
	"eduz_backend/docs"
	"eduz_backend/internal/config"
	"eduz_backend/internal/middleware"
	"eduz_backend/internal/model"
	"eduz_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	a.registerPublicRoutes(router, c)

	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		a.registerStudentRoutes(authGroup, c)
		a.registerTeacherRoutes(authGroup, c)
		a.registerAdminRoutes(authGroup, c)
	}
}

func (a *App) registerPublicRoutes(router *gin.Engine, c *controllers) {
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}
}

func (a *App) registerStudentRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.GET("/profile", c.auth.GetProfile)
	rg.POST("/user/avatar/upload", c.user.UploadAvatar)

	// Taxonomy and the approved question pool are readable by every
	// authenticated role.
	rg.GET("/subjects", c.subject.ListSubjects)
	rg.GET("/branches", c.subject.ListBranches)
	rg.GET("/topics", c.subject.ListTopics)
	rg.GET("/questions", c.question.ListApproved)

	quiz := rg.Group("/quiz")
	quiz.Use(middleware.RoleMiddleware(model.Student))
	{
		quiz.POST("/start", c.quiz.Start)
		quiz.POST("/:id/submit", c.quiz.Submit)
		quiz.GET("/:id/result", c.quiz.Result)
		quiz.GET("/sessions", c.quiz.Sessions)
		quiz.GET("/progress", c.quiz.Progress)
	}
}

func (a *App) registerTeacherRoutes(rg *gin.RouterGroup, c *controllers) {
	teacher := rg.Group("/")
	teacher.Use(middleware.RoleMiddleware(model.Teacher))
	{
		teacher.POST("/subjects", c.subject.CreateSubject)
		teacher.POST("/branches", c.subject.CreateBranch)
		teacher.POST("/topics", c.subject.CreateTopic)

		teacher.POST("/questions", c.question.Create)
		teacher.GET("/questions/unapproved", c.question.ListUnapproved)
	}
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	admin := rg.Group("/admin")
	admin.Use(middleware.RoleMiddleware(model.Admin))
	{
		admin.POST("/users/:id/promote", c.user.Promote)

		admin.POST("/questions/:id/approve", c.question.Approve)
		admin.DELETE("/questions/:id", c.question.Delete)
	}
}
