package models

import (
	"github.com/shopspring/decimal"
)

// Nutriments carries the four macros three ways: per-100-unit baseline,
// per-piece baseline (both copied from the food catalog, nullable) and the
// totals computed for the recorded amount. Baselines are never recomputed,
// only carried forward; totals always reflect the last calculation.
type Nutriments struct {
	CaloriesPer100      decimal.NullDecimal `gorm:"column:calories_per_100;type:decimal" json:"caloriesPer100"`
	CarbohydratesPer100 decimal.NullDecimal `gorm:"column:carbohydrates_per_100;type:decimal" json:"carbohydratesPer100"`
	FatPer100           decimal.NullDecimal `gorm:"column:fat_per_100;type:decimal" json:"fatPer100"`
	ProteinPer100       decimal.NullDecimal `gorm:"column:protein_per_100;type:decimal" json:"proteinPer100"`

	CaloriesPerPiece      decimal.NullDecimal `gorm:"column:calories_per_piece;type:decimal" json:"caloriesPerPiece"`
	CarbohydratesPerPiece decimal.NullDecimal `gorm:"column:carbohydrates_per_piece;type:decimal" json:"carbohydratesPerPiece"`
	FatPerPiece           decimal.NullDecimal `gorm:"column:fat_per_piece;type:decimal" json:"fatPerPiece"`
	ProteinPerPiece       decimal.NullDecimal `gorm:"column:protein_per_piece;type:decimal" json:"proteinPerPiece"`

	Calories      decimal.Decimal `gorm:"column:calories_total;type:decimal;not null;default:0" json:"calories"`
	Carbohydrates decimal.Decimal `gorm:"column:carbohydrates_total;type:decimal;not null;default:0" json:"carbohydrates"`
	Fat           decimal.Decimal `gorm:"column:fat_total;type:decimal;not null;default:0" json:"fat"`
	Protein       decimal.Decimal `gorm:"column:protein_total;type:decimal;not null;default:0" json:"protein"`
}

// GramsComplete reports whether all four per-100 baselines are present.
func (n Nutriments) GramsComplete() bool {
	return n.CaloriesPer100.Valid && n.ProteinPer100.Valid &&
		n.FatPer100.Valid && n.CarbohydratesPer100.Valid
}

// PiecesComplete reports whether all four per-piece baselines are present.
func (n Nutriments) PiecesComplete() bool {
	return n.CaloriesPerPiece.Valid && n.ProteinPerPiece.Valid &&
		n.FatPerPiece.Valid && n.CarbohydratesPerPiece.Valid
}

// AvailableUnits derives the unit types this profile can be calculated for.
func (n Nutriments) AvailableUnits() []UnitType {
	var units []UnitType
	if n.GramsComplete() {
		units = append(units, UnitGrams)
	}
	if n.PiecesComplete() {
		units = append(units, UnitPieces)
	}
	return units
}

// SupportsUnit reports whether the baseline data for the given unit is complete.
func (n Nutriments) SupportsUnit(unit UnitType) bool {
	switch unit {
	case UnitGrams:
		return n.GramsComplete()
	case UnitPieces:
		return n.PiecesComplete()
	}
	return false
}
