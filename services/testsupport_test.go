package services

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/Macro-Tracker-Platform/intake-service/apperr"
	"github.com/Macro-Tracker-Platform/intake-service/models"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := db.AutoMigrate(&models.Intake{}, &models.MealTemplate{}, &models.MealTemplateItem{}); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

// fakeCache records every eviction so tests can assert on exactly which keys
// were touched.
type fakeCache struct {
	intakes   map[string][]models.Intake
	templates map[uint][]models.MealTemplate
	evictions []string
}

func newFakeCache() *fakeCache {
	return &fakeCache{
		intakes:   map[string][]models.Intake{},
		templates: map[uint][]models.MealTemplate{},
	}
}

func (c *fakeCache) GetIntakes(_ context.Context, userID uint, date string) ([]models.Intake, bool) {
	v, ok := c.intakes[fmt.Sprintf("%d:%s", userID, date)]
	return v, ok
}

func (c *fakeCache) SetIntakes(_ context.Context, userID uint, date string, intakes []models.Intake) {
	c.intakes[fmt.Sprintf("%d:%s", userID, date)] = intakes
}

func (c *fakeCache) EvictIntakes(_ context.Context, userID uint, date string) {
	key := fmt.Sprintf("%d:%s", userID, date)
	delete(c.intakes, key)
	c.evictions = append(c.evictions, "intakes:"+key)
}

func (c *fakeCache) GetTemplates(_ context.Context, userID uint) ([]models.MealTemplate, bool) {
	v, ok := c.templates[userID]
	return v, ok
}

func (c *fakeCache) SetTemplates(_ context.Context, userID uint, templates []models.MealTemplate) {
	c.templates[userID] = templates
}

func (c *fakeCache) EvictTemplates(_ context.Context, userID uint) {
	delete(c.templates, userID)
	c.evictions = append(c.evictions, fmt.Sprintf("templates:%d", userID))
}

// fakeCatalog serves foods from memory and counts remote calls.
type fakeCatalog struct {
	foods      map[string]Food
	byIDCalls  int
	byIDsCalls int
}

func newFakeCatalog(foods ...Food) *fakeCatalog {
	m := make(map[string]Food, len(foods))
	for _, f := range foods {
		m[f.ID] = f
	}
	return &fakeCatalog{foods: m}
}

func (c *fakeCatalog) GetByID(_ context.Context, foodID string) (*Food, error) {
	c.byIDCalls++
	f, ok := c.foods[foodID]
	if !ok {
		return nil, apperr.NotFound("food not found: %s", foodID)
	}
	return &f, nil
}

func (c *fakeCatalog) GetByIDs(_ context.Context, foodIDs []string) ([]Food, error) {
	c.byIDsCalls++
	var out []Food
	for _, id := range foodIDs {
		if f, ok := c.foods[id]; ok {
			out = append(out, f)
		}
	}
	return out, nil
}

type fakeProducer struct {
	events []UserDeletedEvent
}

func (p *fakeProducer) SendUserDeletedEvent(_ context.Context, event UserDeletedEvent) error {
	p.events = append(p.events, event)
	return nil
}

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func decPtr(s string) *decimal.Decimal {
	d := decimal.RequireFromString(s)
	return &d
}

// gramsFood advertises GRAMS only, with per-100 baselines.
func gramsFood(id, name string, calories, carbs, fat, protein string) Food {
	return Food{
		ID:          id,
		ProductName: name,
		Nutriments: FoodNutriments{
			CaloriesPer100:      decPtr(calories),
			CarbohydratesPer100: decPtr(carbs),
			FatPer100:           decPtr(fat),
			ProteinPer100:       decPtr(protein),
		},
		AvailableUnits: []models.UnitType{models.UnitGrams},
	}
}

// dualUnitFood carries complete baselines for both grams and pieces.
func dualUnitFood(id, name string) Food {
	f := gramsFood(id, name, "100", "10", "5", "8")
	f.Nutriments.CaloriesPerPiece = decPtr("50")
	f.Nutriments.CarbohydratesPerPiece = decPtr("5")
	f.Nutriments.FatPerPiece = decPtr("2.5")
	f.Nutriments.ProteinPerPiece = decPtr("4")
	f.AvailableUnits = []models.UnitType{models.UnitGrams, models.UnitPieces}
	return f
}
