package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Macro-Tracker-Platform/intake-service/apperr"
	"github.com/Macro-Tracker-Platform/intake-service/models"
)

func catalogOver(srv *httptest.Server) *FoodCatalogService {
	return &FoodCatalogService{baseURL: srv.URL, client: srv.Client()}
}

func TestGetByIDParsesFood(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/foods/f1", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"id": "f1",
			"productName": "Chicken Breast",
			"nutriments": {
				"caloriesPer100": 165, "carbohydratesPer100": 0.5,
				"fatPer100": 3.6, "proteinPer100": 31
			},
			"availableUnits": ["GRAMS"]
		}`))
	}))
	defer srv.Close()

	food, err := catalogOver(srv).GetByID(context.Background(), "f1")
	require.NoError(t, err)

	assert.Equal(t, "Chicken Breast", food.ProductName)
	assert.True(t, food.SupportsUnit(models.UnitGrams))
	assert.False(t, food.SupportsUnit(models.UnitPieces))

	baseline := food.BaselineNutriments()
	assert.True(t, baseline.GramsComplete())
	assert.False(t, baseline.PiecesComplete())
	assert.True(t, baseline.CaloriesPer100.Decimal.Equal(dec("165")))
	assert.True(t, baseline.Calories.IsZero(), "totals start at zero")
}

func TestGetByIDMapsNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such food", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := catalogOver(srv).GetByID(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindNotFound))
	assert.Contains(t, err.Error(), "ghost")
}

func TestGetByIDMapsServerFailureToUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := catalogOver(srv).GetByID(context.Background(), "f1")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUpstream))
}

func TestGetByIDMapsConnectionFailureToUpstream(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := catalogOver(srv).GetByID(context.Background(), "f1")
	require.Error(t, err)
	assert.True(t, apperr.IsKind(err, apperr.KindUpstream))
}

func TestGetByIDsReturnsWhatTheCatalogHas(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "f1,f2", r.URL.Query().Get("ids"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id": "f1", "productName": "Oats", "availableUnits": ["GRAMS"],
			 "nutriments": {"caloriesPer100": 370, "carbohydratesPer100": 60, "fatPer100": 7, "proteinPer100": 13}}
		]`))
	}))
	defer srv.Close()

	foods, err := catalogOver(srv).GetByIDs(context.Background(), []string{"f1", "f2"})
	require.NoError(t, err)
	require.Len(t, foods, 1, "missing ids are the caller's business")
	assert.Equal(t, "f1", foods[0].ID)
}

func TestGetByIDsEmptyInputSkipsRequest(t *testing.T) {
	called := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer srv.Close()

	foods, err := catalogOver(srv).GetByIDs(context.Background(), nil)
	require.NoError(t, err)
	assert.Nil(t, foods)
	assert.False(t, called)
}
