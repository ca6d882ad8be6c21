package app

import (
	"exam_prep_backend/docs"
	"exam_prep_backend/internal/config"
	"exam_prep_backend/internal/middleware"

	"exam_prep_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
		public.POST("/register", c.auth.Register)
		public.POST("/login", c.auth.Login)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/me", c.auth.Me)

		// 出题
		authGroup.POST("/questions/generate", c.question.Generate)

		// 练习会话
		session := authGroup.Group("/session")
		{
			session.GET("", c.session.Get)
			session.POST("/select", c.session.Select)
			session.POST("/reveal", c.session.Reveal)
			session.POST("/next", c.session.Next)
			session.POST("/previous", c.session.Previous)
			session.GET("/progress", c.session.Progress)
			session.POST("/finish", c.session.Finish)
			session.DELETE("", c.session.Abandon)
		}

		// 用户画像与行业洞察
		authGroup.POST("/profile/complete", c.profile.Complete)
		authGroup.GET("/profile", c.profile.Get)
		authGroup.GET("/insights/:industry", c.profile.GetInsight)

		// 测评历史
		authGroup.GET("/assessments", c.dashboard.ListAssessments)
		authGroup.GET("/assessments/stats", c.dashboard.Stats)

		// 目录浏览
		catalog := authGroup.Group("/catalog")
		{
			catalog.GET("/universities", c.catalog.ListUniversities)
			catalog.GET("/universities/:id/courses", c.catalog.ListCourses)
			catalog.GET("/courses/:id/subjects", c.catalog.ListSubjects)
		}
	}
}
