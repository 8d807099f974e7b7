package models

import (
	"gorm.io/gorm"
)

// A reusable meal: a named, ordered set of food items the user applies to a
// date in one shot.
type MealTemplate struct {
	gorm.Model
	UserID uint               `gorm:"index;not null" json:"userId"`
	Name   string             `gorm:"not null" json:"name"`
	Items  []MealTemplateItem `gorm:"constraint:OnDelete:CASCADE" json:"items"`
}

// MealTemplateItem is owned exclusively by its template; it has no lifecycle
// of its own.
type MealTemplateItem struct {
	gorm.Model
	MealTemplateID uint   `gorm:"index;not null" json:"-"`
	FoodID         string `gorm:"type:varchar(255);not null" json:"foodId"`
	FoodName       string `json:"foodName"`

	Amount   int      `gorm:"not null" json:"amount"`
	UnitType UnitType `gorm:"type:varchar(32);not null" json:"unitType"`

	Nutriments Nutriments `gorm:"embedded" json:"nutriments"`
}
