package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/Amankrah/ecodish365/controllers"
	"github.com/Amankrah/ecodish365/middlewares"
	"github.com/Amankrah/ecodish365/services"
)

func SetupRouter(cnf *services.CNFService, hsrSvc *services.HSRService) *gin.Engine {
	r := gin.Default()
	r.Use(middlewares.CORSMiddleware())

	hsrCtl := controllers.NewHSRController(hsrSvc)
	foodCtl := controllers.NewFoodController(cnf)

	api := r.Group("/api")
	{
		hsrGroup := api.Group("/hsr")
		{
			hsrGroup.POST("/calculate", hsrCtl.Calculate)
			hsrGroup.POST("/compare", hsrCtl.Compare)
			hsrGroup.GET("/foods/:id/profile", hsrCtl.FoodProfile)
			hsrGroup.POST("/meal-insights", hsrCtl.MealInsights)
		}

		api.GET("/foods/search", foodCtl.Search)
	}

	return r
}
