package app

import (
	"learning_path_backend/docs"
	"learning_path_backend/internal/config"
	"learning_path_backend/internal/middleware"
	"learning_path_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func registerRoutes(router *gin.Engine, c *controllers, cfg *config.Config) {
	docs.SwaggerInfo.BasePath = "/"

	router.POST("/register", c.auth.Register)
	router.POST("/login", c.auth.Login)
	router.GET("/logout", c.auth.Logout)

	router.GET("/api/health", c.health.HealthCheck)
	router.GET("/metrics", monitoring.PrometheusHandler())
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Curriculum reads work anonymously but enrich their payload with the
	// caller's progress when a valid token is attached.
	public := router.Group("/api")
	public.Use(middleware.TryAuthMiddleware(cfg))
	{
		public.GET("/subjects", c.content.GetSubjects)
		public.GET("/subjects/:id/topics", c.content.GetTopics)
		public.GET("/topics/:id", c.content.GetTopic)
		public.GET("/topics/:id/resources", c.content.GetResources)
		public.GET("/quiz/:topic_id", c.quiz.GetQuiz)
	}

	authed := router.Group("/api")
	authed.Use(middleware.AuthMiddleware(cfg))
	{
		authed.GET("/profile", c.progress.GetProfile)
		authed.POST("/profile/update", c.progress.UpdateProfile)
		authed.POST("/progress/update", c.progress.UpdateProgress)
		authed.GET("/progress/analytics", c.progress.GetAnalytics)
		authed.POST("/quiz/submit", c.quiz.SubmitQuiz)
		authed.GET("/recommendations", c.recommendation.GetRecommendations)
		authed.GET("/bookmarks", c.bookmark.GetBookmarks)
		authed.POST("/bookmarks/add", c.bookmark.AddBookmark)
		authed.DELETE("/bookmarks/remove/:id", c.bookmark.RemoveBookmark)
	}
}
