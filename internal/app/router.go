package app

import (
	"skillcheck_backend/docs"
	"skillcheck_backend/internal/config"
	"skillcheck_backend/internal/middleware"
	"skillcheck_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func (a *App) registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	// 1. 公共路由(无需登录)
	public := router.Group("/api")
	{
		public.GET("/health", c.health.HealthCheck)
	}

	// 2. 需要授权的路由
	authGroup := router.Group("/api")
	authGroup.Use(middleware.AuthMiddleware(cfg))
	{
		authGroup.GET("/subjects", c.subject.ListSubjects)

		assessment := authGroup.Group("/assessment")
		{
			assessment.POST("/start", c.assessment.StartAssessment)
			assessment.POST("/:id/submit", c.assessment.SubmitAssessment)
			assessment.GET("/:id/results", c.assessment.GetResults)
		}

		recommendations := authGroup.Group("/recommendations")
		{
			recommendations.GET("/latest", c.recommendation.Latest)
			recommendations.GET("/topics", c.recommendation.Topics)
			recommendations.POST("/quizzes", c.recommendation.Quizzes)
		}

		authGroup.GET("/courses/recommendations/me", c.recommendation.MyCourses)

		adaptive := authGroup.Group("/adaptive")
		{
			adaptive.GET("/difficulty", c.adaptive.Difficulty)
			adaptive.GET("/subjects/:id/next-question", c.adaptive.NextQuestion)
		}
	}
}
