package main

import (
	"context"
	"os"

	"github.com/Macro-Tracker-Platform/intake-service/config"
	"github.com/Macro-Tracker-Platform/intake-service/logger"
	"github.com/Macro-Tracker-Platform/intake-service/routes"
	"github.com/Macro-Tracker-Platform/intake-service/services"
)

func main() {
	logger.Init()
	config.LoadEnv()
	config.InitDB()
	config.InitRedis()

	ctx := context.Background()
	intakes := services.NewIntakeService(
		config.DB,
		services.NewRedisIntakeCache(config.Redis),
		services.NewFoodCatalogService(),
		services.NewRedisUserEventProducer(config.Redis),
	)
	err := services.StartUserEventConsumer(ctx, config.Redis, func(ctx context.Context, event services.UserDeletedEvent) {
		if _, err := intakes.DeleteUserIntakesBatch(ctx, event.UserID); err != nil {
			logger.Error("user deletion batch failed", "userId", event.UserID, "error", err)
		}
	})
	if err != nil {
		logger.L().Fatalw("failed to start user event consumer", "error", err)
	}

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	r := routes.SetupRouter()
	if err := r.Run(addr); err != nil {
		logger.L().Fatalw("server stopped", "error", err)
	}
}
