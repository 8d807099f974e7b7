package config

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/Macro-Tracker-Platform/intake-service/logger"
	"github.com/Macro-Tracker-Platform/intake-service/models"
)

var (
	DB    *gorm.DB
	Redis *redis.Client
)

// LoadEnv reads .env when present; in containers the variables come from the
// environment directly, so a missing file is not fatal.
func LoadEnv() {
	if err := godotenv.Load(); err != nil {
		logger.Debug("no .env file loaded", "error", err)
	}
}

func InitDB() {
	dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		os.Getenv("DB_HOST"),
		os.Getenv("DB_USER"),
		os.Getenv("DB_PASSWORD"),
		os.Getenv("DB_NAME"),
		os.Getenv("DB_PORT"),
	)

	var err error
	DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		logger.L().Fatalw("failed to connect to database", "error", err)
	}

	err = DB.AutoMigrate(
		&models.Intake{},
		&models.MealTemplate{},
		&models.MealTemplateItem{},
	)
	if err != nil {
		logger.L().Fatalw("automigrate failed", "error", err)
	}
}

func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		addr = "localhost:6379"
	}

	Redis = redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    os.Getenv("REDIS_PASSWORD"),
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Redis.Ping(ctx).Err(); err != nil {
		logger.L().Fatalw("failed to connect to redis", "addr", addr, "error", err)
	}
}
