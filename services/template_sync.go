package services

import (
	"github.com/Macro-Tracker-Platform/intake-service/apperr"
	"github.com/Macro-Tracker-Platform/intake-service/models"
)

// TemplateItemRequest is one desired item in a template create or update
// payload. Amount and UnitType are pointers because an update of an existing
// item may change only one of them; for a genuinely new item both are required.
type TemplateItemRequest struct {
	FoodID   string           `json:"foodId"`
	Amount   *int             `json:"amount"`
	UnitType *models.UnitType `json:"unitType"`
}

// syncTemplateItems reconciles the template's stored items against the
// incoming list, keyed by food id. Items absent from the incoming list are
// dropped, items present in both are updated in place (recomputing totals when
// amount or unit changed), and new food ids are inserted from the pre-fetched
// food map. It returns the record ids of removed items so the caller can
// delete them; all mutation is in-memory and nothing is persisted here.
//
// Duplicate food ids in the incoming list collapse first-occurrence-wins when
// the removal lookup is built. Later duplicates still run through the update
// branch against the already-reconciled item.
func syncTemplateItems(template *models.MealTemplate, incoming []TemplateItemRequest,
	newFoods map[string]Food) (removedIDs []uint, err error) {
	incomingByFood := make(map[string]TemplateItemRequest, len(incoming))
	for _, item := range incoming {
		if _, ok := incomingByFood[item.FoodID]; !ok {
			incomingByFood[item.FoodID] = item
		}
	}

	kept := template.Items[:0:0]
	for _, item := range template.Items {
		if _, ok := incomingByFood[item.FoodID]; ok {
			kept = append(kept, item)
		} else if item.ID != 0 {
			removedIDs = append(removedIDs, item.ID)
		}
	}
	template.Items = kept

	for _, req := range incoming {
		existing := findTemplateItem(template.Items, req.FoodID)
		if existing != nil {
			if err := updateItemState(existing, req); err != nil {
				return nil, err
			}
			continue
		}
		if err := validateNewItemFields(req); err != nil {
			return nil, err
		}
		item, err := buildTemplateItem(newFoods[req.FoodID], *req.Amount, *req.UnitType)
		if err != nil {
			return nil, err
		}
		template.Items = append(template.Items, item)
	}
	return removedIDs, nil
}

func findTemplateItem(items []models.MealTemplateItem, foodID string) *models.MealTemplateItem {
	for i := range items {
		if items[i].FoodID == foodID {
			return &items[i]
		}
	}
	return nil
}

// updateItemState applies amount and unit changes to an existing item and
// recomputes its totals when anything changed. A unit change is validated
// against the item's stored baselines before it is applied.
func updateItemState(item *models.MealTemplateItem, req TemplateItemRequest) error {
	changed := false
	if req.Amount != nil && *req.Amount != item.Amount {
		item.Amount = *req.Amount
		changed = true
	}
	if req.UnitType != nil && *req.UnitType != item.UnitType {
		if !item.Nutriments.SupportsUnit(*req.UnitType) {
			return apperr.Validation(
				"unit type '%s' is not available for this food, available units: %v",
				*req.UnitType, item.Nutriments.AvailableUnits())
		}
		item.UnitType = *req.UnitType
		changed = true
	}
	if !changed {
		return nil
	}
	calc, err := CalculatorFor(item.UnitType)
	if err != nil {
		return err
	}
	item.Nutriments, err = calc.Calculate(item.Nutriments, item.Amount)
	return err
}

func validateNewItemFields(req TemplateItemRequest) error {
	if req.Amount == nil {
		return apperr.Validation("amount is required for new template item: %s", req.FoodID)
	}
	if req.UnitType == nil {
		return apperr.Validation("unit type is required for new template item: %s", req.FoodID)
	}
	return nil
}

// buildTemplateItem creates an item from catalog data, validating the unit
// against the food's advertised units and computing totals for the amount.
func buildTemplateItem(food Food, amount int, unit models.UnitType) (models.MealTemplateItem, error) {
	if err := validateUnitSupported(&food, unit); err != nil {
		return models.MealTemplateItem{}, err
	}
	calc, err := CalculatorFor(unit)
	if err != nil {
		return models.MealTemplateItem{}, err
	}
	nutriments, err := calc.Calculate(food.BaselineNutriments(), amount)
	if err != nil {
		return models.MealTemplateItem{}, err
	}
	return models.MealTemplateItem{
		FoodID:     food.ID,
		FoodName:   food.ProductName,
		Amount:     amount,
		UnitType:   unit,
		Nutriments: nutriments,
	}, nil
}
