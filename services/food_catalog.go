package services

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/Macro-Tracker-Platform/intake-service/apperr"
	"github.com/Macro-Tracker-Platform/intake-service/models"
)

// Food is the catalog's view of a product: a name, the baseline nutrient data
// and the unit types the product can be measured in.
type Food struct {
	ID             string            `json:"id"`
	ProductName    string            `json:"productName"`
	Nutriments     FoodNutriments    `json:"nutriments"`
	AvailableUnits []models.UnitType `json:"availableUnits"`
}

// FoodNutriments mirrors the catalog's baseline payload. Absent values stay
// nil so completeness checks can distinguish zero from unknown.
type FoodNutriments struct {
	CaloriesPer100      *decimal.Decimal `json:"caloriesPer100"`
	CarbohydratesPer100 *decimal.Decimal `json:"carbohydratesPer100"`
	FatPer100           *decimal.Decimal `json:"fatPer100"`
	ProteinPer100       *decimal.Decimal `json:"proteinPer100"`

	CaloriesPerPiece      *decimal.Decimal `json:"caloriesPerPiece"`
	CarbohydratesPerPiece *decimal.Decimal `json:"carbohydratesPerPiece"`
	FatPerPiece           *decimal.Decimal `json:"fatPerPiece"`
	ProteinPerPiece       *decimal.Decimal `json:"proteinPerPiece"`
}

// SupportsUnit reports whether the food advertises the given unit type.
func (f Food) SupportsUnit(unit models.UnitType) bool {
	for _, u := range f.AvailableUnits {
		if u == unit {
			return true
		}
	}
	return false
}

// BaselineNutriments copies the catalog baselines into a fresh profile with
// zeroed totals, ready for calculation.
func (f Food) BaselineNutriments() models.Nutriments {
	nullable := func(d *decimal.Decimal) decimal.NullDecimal {
		if d == nil {
			return decimal.NullDecimal{}
		}
		return decimal.NullDecimal{Decimal: *d, Valid: true}
	}
	return models.Nutriments{
		CaloriesPer100:        nullable(f.Nutriments.CaloriesPer100),
		CarbohydratesPer100:   nullable(f.Nutriments.CarbohydratesPer100),
		FatPer100:             nullable(f.Nutriments.FatPer100),
		ProteinPer100:         nullable(f.Nutriments.ProteinPer100),
		CaloriesPerPiece:      nullable(f.Nutriments.CaloriesPerPiece),
		CarbohydratesPerPiece: nullable(f.Nutriments.CarbohydratesPerPiece),
		FatPerPiece:           nullable(f.Nutriments.FatPerPiece),
		ProteinPerPiece:       nullable(f.Nutriments.ProteinPerPiece),
	}
}

// FoodCatalog is the remote lookup the intake core depends on. Outcomes are
// binary-classified: a missing food is NotFound, everything else that goes
// wrong is UpstreamUnavailable.
type FoodCatalog interface {
	GetByID(ctx context.Context, foodID string) (*Food, error)
	GetByIDs(ctx context.Context, foodIDs []string) ([]Food, error)
}

// FoodCatalogService talks to the food catalog over HTTP.
type FoodCatalogService struct {
	baseURL string
	client  *http.Client
}

func NewFoodCatalogService() *FoodCatalogService {
	return &FoodCatalogService{
		baseURL: strings.TrimRight(os.Getenv("FOOD_SERVICE_URL"), "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (s *FoodCatalogService) GetByID(ctx context.Context, foodID string) (*Food, error) {
	u := fmt.Sprintf("%s/foods/%s", s.baseURL, url.PathEscape(foodID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, apperr.Upstream(err, "failed to build food request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperr.Upstream(err, "food service is unavailable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Upstream(err, "failed to read food response")
	}
	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, apperr.NotFound("food not found: %s", foodID)
	case resp.StatusCode != http.StatusOK:
		return nil, apperr.Upstream(
			fmt.Errorf("food service status %d: %s", resp.StatusCode, string(body)),
			"food service is unavailable")
	}

	var food Food
	if err := json.Unmarshal(body, &food); err != nil {
		return nil, apperr.Upstream(err, "failed to parse food response")
	}
	return &food, nil
}

func (s *FoodCatalogService) GetByIDs(ctx context.Context, foodIDs []string) ([]Food, error) {
	if len(foodIDs) == 0 {
		return nil, nil
	}
	u := fmt.Sprintf("%s/foods?ids=%s", s.baseURL, url.QueryEscape(strings.Join(foodIDs, ",")))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, apperr.Upstream(err, "failed to build foods request")
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, apperr.Upstream(err, "food service is unavailable")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, apperr.Upstream(err, "failed to read foods response")
	}
	if resp.StatusCode != http.StatusOK {
		return nil, apperr.Upstream(
			fmt.Errorf("food service status %d: %s", resp.StatusCode, string(body)),
			"food service is unavailable")
	}

	var foods []Food
	if err := json.Unmarshal(body, &foods); err != nil {
		return nil, apperr.Upstream(err, "failed to parse foods response")
	}
	return foods, nil
}
