package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Macro-Tracker-Platform/intake-service/models"
)

func storedItem(id uint, foodID string, amount int) models.MealTemplateItem {
	item, err := buildTemplateItem(gramsFood(foodID, foodID, "100", "10", "5", "8"), amount, models.UnitGrams)
	if err != nil {
		panic(err)
	}
	item.ID = id
	return item
}

func TestSyncRemovesItemsMissingFromIncoming(t *testing.T) {
	template := &models.MealTemplate{Items: []models.MealTemplateItem{
		storedItem(11, "a", 100),
		storedItem(12, "b", 100),
	}}

	removed, err := syncTemplateItems(template, []TemplateItemRequest{
		{FoodID: "b"},
	}, map[string]Food{})
	require.NoError(t, err)

	assert.Equal(t, []uint{11}, removed)
	require.Len(t, template.Items, 1)
	assert.Equal(t, "b", template.Items[0].FoodID)
}

func TestSyncInsertsNewItemFromFetchedFood(t *testing.T) {
	template := &models.MealTemplate{Items: []models.MealTemplateItem{
		storedItem(11, "a", 100),
	}}

	removed, err := syncTemplateItems(template, []TemplateItemRequest{
		{FoodID: "a"},
		{FoodID: "c", Amount: intPtr(40), UnitType: unitPtr(models.UnitGrams)},
	}, map[string]Food{
		"c": gramsFood("c", "Cheese", "402", "1.3", "33", "25"),
	})
	require.NoError(t, err)

	assert.Empty(t, removed)
	require.Len(t, template.Items, 2)
	inserted := template.Items[1]
	assert.Equal(t, "c", inserted.FoodID)
	assert.True(t, inserted.Nutriments.Calories.Equal(dec("160.8")))
}

func TestSyncUnchangedItemSkipsRecalculation(t *testing.T) {
	item := storedItem(11, "a", 100)
	before := item.Nutriments
	template := &models.MealTemplate{Items: []models.MealTemplateItem{item}}

	_, err := syncTemplateItems(template, []TemplateItemRequest{
		{FoodID: "a", Amount: intPtr(100), UnitType: unitPtr(models.UnitGrams)},
	}, map[string]Food{})
	require.NoError(t, err)

	assert.Equal(t, before, template.Items[0].Nutriments)
}

func TestSyncDuplicateIncomingIDsCollapseFirstWins(t *testing.T) {
	template := &models.MealTemplate{Items: []models.MealTemplateItem{
		storedItem(11, "a", 100),
	}}

	// the duplicate keeps "a" out of the removal set; both occurrences then run
	// through the update branch in order
	removed, err := syncTemplateItems(template, []TemplateItemRequest{
		{FoodID: "a", Amount: intPtr(50)},
		{FoodID: "a", Amount: intPtr(70)},
	}, map[string]Food{})
	require.NoError(t, err)

	assert.Empty(t, removed)
	require.Len(t, template.Items, 1)
	assert.Equal(t, 70, template.Items[0].Amount)
	assert.True(t, template.Items[0].Nutriments.Calories.Equal(dec("70")))
}

func TestSyncRejectsUnitChangeWithoutBaseline(t *testing.T) {
	template := &models.MealTemplate{Items: []models.MealTemplateItem{
		storedItem(11, "a", 100),
	}}

	_, err := syncTemplateItems(template, []TemplateItemRequest{
		{FoodID: "a", UnitType: unitPtr(models.UnitPieces)},
	}, map[string]Food{})

	require.Error(t, err)
	assert.Equal(t, 100, template.Items[0].Amount)
	assert.Equal(t, models.UnitGrams, template.Items[0].UnitType, "rejected item not mutated")
}
