package models

// UnitType is the measurement basis used to interpret an intake amount.
type UnitType string

const (
	UnitGrams  UnitType = "GRAMS"
	UnitPieces UnitType = "PIECES"
)

// IntakePeriod tags a record with the meal slot it belongs to.
type IntakePeriod string

const (
	PeriodBreakfast IntakePeriod = "BREAKFAST"
	PeriodLunch     IntakePeriod = "LUNCH"
	PeriodDinner    IntakePeriod = "DINNER"
	PeriodSnack     IntakePeriod = "SNACK"
)
