package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Macro-Tracker-Platform/intake-service/logger"
	"github.com/Macro-Tracker-Platform/intake-service/models"
)

// IntakeCache holds derived, disposable copies of per-(user,date) intake lists
// and per-user template lists. The store stays authoritative: every entry is
// reconstructable, and none of these operations ever surfaces an error to the
// caller. A broken cache degrades to reading the store.
type IntakeCache interface {
	GetIntakes(ctx context.Context, userID uint, date string) ([]models.Intake, bool)
	SetIntakes(ctx context.Context, userID uint, date string, intakes []models.Intake)
	EvictIntakes(ctx context.Context, userID uint, date string)

	GetTemplates(ctx context.Context, userID uint) ([]models.MealTemplate, bool)
	SetTemplates(ctx context.Context, userID uint, templates []models.MealTemplate)
	EvictTemplates(ctx context.Context, userID uint)
}

const cacheTTL = 30 * time.Minute

// RedisIntakeCache is the production IntakeCache over a redis client.
type RedisIntakeCache struct {
	rdb *redis.Client
}

func NewRedisIntakeCache(rdb *redis.Client) *RedisIntakeCache {
	return &RedisIntakeCache{rdb: rdb}
}

func intakesKey(userID uint, date string) string {
	return fmt.Sprintf("intakes:%d:%s", userID, date)
}

func templatesKey(userID uint) string {
	return fmt.Sprintf("meal-templates:%d", userID)
}

func (c *RedisIntakeCache) GetIntakes(ctx context.Context, userID uint, date string) ([]models.Intake, bool) {
	var intakes []models.Intake
	if !c.get(ctx, intakesKey(userID, date), &intakes) {
		return nil, false
	}
	return intakes, true
}

func (c *RedisIntakeCache) SetIntakes(ctx context.Context, userID uint, date string, intakes []models.Intake) {
	c.set(ctx, intakesKey(userID, date), intakes)
}

func (c *RedisIntakeCache) EvictIntakes(ctx context.Context, userID uint, date string) {
	c.evict(ctx, intakesKey(userID, date))
}

func (c *RedisIntakeCache) GetTemplates(ctx context.Context, userID uint) ([]models.MealTemplate, bool) {
	var templates []models.MealTemplate
	if !c.get(ctx, templatesKey(userID), &templates) {
		return nil, false
	}
	return templates, true
}

func (c *RedisIntakeCache) SetTemplates(ctx context.Context, userID uint, templates []models.MealTemplate) {
	c.set(ctx, templatesKey(userID), templates)
}

func (c *RedisIntakeCache) EvictTemplates(ctx context.Context, userID uint) {
	c.evict(ctx, templatesKey(userID))
}

func (c *RedisIntakeCache) get(ctx context.Context, key string, dest any) bool {
	raw, err := c.rdb.Get(ctx, key).Result()
	if err == redis.Nil {
		return false
	}
	if err != nil {
		logger.Warn("cache read failed", "key", key, "error", err)
		return false
	}
	if err := json.Unmarshal([]byte(raw), dest); err != nil {
		logger.Warn("cache entry unreadable, treating as miss", "key", key, "error", err)
		return false
	}
	return true
}

func (c *RedisIntakeCache) set(ctx context.Context, key string, value any) {
	raw, err := json.Marshal(value)
	if err != nil {
		logger.Warn("cache marshal failed", "key", key, "error", err)
		return
	}
	if err := c.rdb.Set(ctx, key, raw, cacheTTL).Err(); err != nil {
		logger.Warn("cache write failed", "key", key, "error", err)
	}
}

func (c *RedisIntakeCache) evict(ctx context.Context, key string) {
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		logger.Error("cache eviction failed", "key", key, "error", err)
	}
}
