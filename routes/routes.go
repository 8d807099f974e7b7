package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Macro-Tracker-Platform/intake-service/controllers"
	"github.com/Macro-Tracker-Platform/intake-service/middlewares"
)

func SetupRouter() *gin.Engine {
	r := gin.Default()

	intakes := r.Group("/intakes")
	intakes.Use(middlewares.AuthMiddleware())
	{
		intakes.POST("", controllers.SaveIntake)
		intakes.GET("", controllers.ListIntakes)
		intakes.GET("/summary", controllers.GetDailySummary)
		intakes.PUT("/:id", controllers.UpdateIntake)
		intakes.DELETE("/:id", controllers.DeleteIntake)
		intakes.DELETE("/group/:groupId", controllers.UndoIntakeGroup)
	}

	templates := r.Group("/meal-templates")
	templates.Use(middlewares.AuthMiddleware())
	{
		templates.GET("", controllers.ListTemplates)
		templates.POST("", controllers.CreateTemplate)
		templates.PUT("/:id", controllers.UpdateTemplate)
		templates.DELETE("/:id", controllers.DeleteTemplate)
		templates.POST("/:id/apply", controllers.ApplyTemplate)
	}

	return r
}
