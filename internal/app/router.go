package app

import (
	"quest_backend/docs"
	"quest_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

func registerRoutes(router *gin.Engine, c *controllers) {
	docs.SwaggerInfo.BasePath = "/api"
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler, ginSwagger.URL("/swagger/doc.json")))

	router.GET("/metrics", monitoring.PrometheusHandler())

	api := router.Group("/api")
	{
		api.GET("/health", c.health.HealthCheck)
	}

	registerQuestRoutes(api.Group("/v1"), c)
}

func registerQuestRoutes(v1 *gin.RouterGroup, c *controllers) {
	quests := v1.Group("/quests")
	{
		quests.GET("", c.quest.ListQuests)
		quests.POST("", c.quest.CreateQuest)
		quests.POST("/by_filters", c.quest.ListQuestsByFilters)
		quests.GET("/:id", c.quest.GetQuest)
	}
}
