package services

import (
	"github.com/shopspring/decimal"

	"github.com/Macro-Tracker-Platform/intake-service/apperr"
	"github.com/Macro-Tracker-Platform/intake-service/models"
)

// NutrientCalculator scales a baseline nutrient profile to the totals for a
// concrete amount. Implementations are pure: the input is never mutated, the
// returned copy has only its total fields rewritten.
type NutrientCalculator interface {
	Calculate(n models.Nutriments, amount int) (models.Nutriments, error)
}

type gramsCalculator struct{}

func (gramsCalculator) Calculate(n models.Nutriments, amount int) (models.Nutriments, error) {
	if !n.GramsComplete() {
		return n, apperr.Validation(
			"unit type '%s' is not available for this food, available units: %v",
			models.UnitGrams, n.AvailableUnits())
	}
	factor := decimal.NewFromInt(int64(amount))
	hundred := decimal.NewFromInt(100)
	n.Calories = n.CaloriesPer100.Decimal.Mul(factor).Div(hundred)
	n.Carbohydrates = n.CarbohydratesPer100.Decimal.Mul(factor).Div(hundred)
	n.Fat = n.FatPer100.Decimal.Mul(factor).Div(hundred)
	n.Protein = n.ProteinPer100.Decimal.Mul(factor).Div(hundred)
	return n, nil
}

type piecesCalculator struct{}

func (piecesCalculator) Calculate(n models.Nutriments, amount int) (models.Nutriments, error) {
	if !n.PiecesComplete() {
		return n, apperr.Validation(
			"unit type '%s' is not available for this food, available units: %v",
			models.UnitPieces, n.AvailableUnits())
	}
	factor := decimal.NewFromInt(int64(amount))
	n.Calories = n.CaloriesPerPiece.Decimal.Mul(factor)
	n.Carbohydrates = n.CarbohydratesPerPiece.Decimal.Mul(factor)
	n.Fat = n.FatPerPiece.Decimal.Mul(factor)
	n.Protein = n.ProteinPerPiece.Decimal.Mul(factor)
	return n, nil
}

// calculators is the static unit → calculator table. Adding a unit type means
// adding an entry here; an unregistered unit at runtime is a deployment
// defect, not a user error.
var calculators = map[models.UnitType]NutrientCalculator{
	models.UnitGrams:  gramsCalculator{},
	models.UnitPieces: piecesCalculator{},
}

// CalculatorFor resolves the calculator registered for the given unit type.
func CalculatorFor(unit models.UnitType) (NutrientCalculator, error) {
	calc, ok := calculators[unit]
	if !ok {
		return nil, apperr.Configuration("no nutrient calculator registered for unit type '%s'", unit)
	}
	return calc, nil
}
