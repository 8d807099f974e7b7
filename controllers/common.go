package controllers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Macro-Tracker-Platform/intake-service/apperr"
	"github.com/Macro-Tracker-Platform/intake-service/config"
	"github.com/Macro-Tracker-Platform/intake-service/logger"
	"github.com/Macro-Tracker-Platform/intake-service/services"
)

func intakeService() *services.IntakeService {
	cache := services.NewRedisIntakeCache(config.Redis)
	foods := services.NewFoodCatalogService()
	producer := services.NewRedisUserEventProducer(config.Redis)
	return services.NewIntakeService(config.DB, cache, foods, producer)
}

func mealService() *services.MealService {
	cache := services.NewRedisIntakeCache(config.Redis)
	foods := services.NewFoodCatalogService()
	return services.NewMealService(config.DB, cache, foods)
}

func currentUserID(c *gin.Context) uint {
	return c.GetUint("userID")
}

func parseDate(s string) (time.Time, error) {
	return time.Parse("2006-01-02", s)
}

// respondError translates the service error taxonomy into HTTP statuses.
// Configuration errors deliberately come out as 500s: they mean the deployment
// is broken, not the request.
func respondError(c *gin.Context, err error) {
	switch {
	case apperr.IsKind(err, apperr.KindNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case apperr.IsKind(err, apperr.KindValidation):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case apperr.IsKind(err, apperr.KindUpstream):
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		logger.Error("request failed", "path", c.FullPath(), "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
