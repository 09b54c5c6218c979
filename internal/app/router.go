package app

import (
	"training_portal_backend/docs"
	"training_portal_backend/internal/middleware"
	"training_portal_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, repos *repositories) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	a.registerPublicRoutes(router, c)

	// 2. 需要登录的路由
	authGroup := router.Group("/api")
	authGroup.Use(
		middleware.AuthMiddleware(a.Config.JWT.Secret, a.services.auth),
		middleware.ActivityMiddleware(repos.user),
	)
	{
		a.registerLearnerRoutes(authGroup, c)

		// 3. 管理员接口
		admin := authGroup.Group("/admin")
		admin.Use(middleware.AdminOnly())
		a.registerAdminRoutes(admin, c)
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

func (a *App) registerLearnerRoutes(rg *gin.RouterGroup, c *controllers) {
	rg.POST("/logout", c.auth.Logout)
	rg.GET("/profile", c.auth.GetProfile)

	rg.GET("/home", c.dashboard.GetHome)
	rg.GET("/dashboard", c.dashboard.GetDashboard)

	// 课程
	rg.GET("/courses", c.course.ListCourses)
	rg.GET("/courses/themes", c.course.ListThemes)
	rg.GET("/courses/by-theme", c.course.CoursesByTheme)
	rg.GET("/courses/:id", c.course.GetCourse)

	// 学习进度
	rg.GET("/course-viewer", c.progression.CourseViewer)
	rg.POST("/courses/:id/start", c.progression.StartCourse)
	rg.POST("/courses/:id/modules/:moduleId/complete", c.progression.CompleteModule)

	// 学习路径与培训
	rg.GET("/learning-paths", c.learningPath.ListPaths)
	rg.GET("/learning-paths/:id", c.learningPath.GetPath)
	rg.GET("/trainings", c.training.ListTrainings)

	// 日程
	rg.GET("/schedule", c.schedule.ListEvents)
	rg.POST("/schedule/events", c.schedule.AddEvent)
	rg.DELETE("/schedule/events/:eventId", c.schedule.DeleteEvent)
}

func (a *App) registerAdminRoutes(rg *gin.RouterGroup, c *controllers) {
	// 课程管理
	rg.POST("/courses", c.course.CreateCourse)
	rg.PUT("/courses/:id", c.course.UpdateCourse)
	rg.DELETE("/courses/:id", c.course.DeleteCourse)
	rg.POST("/courses/:id/modules", c.course.AddModule)
	rg.DELETE("/courses/:id/modules/:moduleId", c.course.RemoveModule)
	rg.POST("/courses/:id/image", c.course.UploadImage)
	rg.POST("/courses/:id/modules/:moduleId/video", c.course.UploadModuleVideo)

	// 学习路径管理
	rg.POST("/learning-paths", c.learningPath.CreatePath)
	rg.PUT("/learning-paths/:id", c.learningPath.UpdatePath)
	rg.DELETE("/learning-paths/:id", c.learningPath.DeletePath)
	rg.POST("/learning-paths/:id/courses/:courseId", c.learningPath.AddCourse)
	rg.DELETE("/learning-paths/:id/courses/:courseId", c.learningPath.RemoveCourse)

	// 培训管理
	rg.POST("/trainings", c.training.CreateTraining)
	rg.PUT("/trainings/:id", c.training.UpdateTraining)
	rg.DELETE("/trainings/:id", c.training.DeleteTraining)

	// 报表
	rg.GET("/reports", c.report.GetReport)
	rg.GET("/reports/export", c.report.ExportCSV)
}
