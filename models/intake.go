package models

import (
	"time"

	"gorm.io/gorm"
)

// One recorded food intake for a user on a given date.
type Intake struct {
	gorm.Model
	UserID   uint      `gorm:"index;not null" json:"userId"`
	FoodID   string    `gorm:"type:varchar(255);not null;index" json:"foodId"`
	FoodName string    `json:"foodName"`
	Date     time.Time `gorm:"type:date;index:idx_intakes_user_date" json:"date"`

	Period   IntakePeriod `gorm:"type:varchar(32)" json:"period"`
	Amount   int          `gorm:"not null" json:"amount"`
	UnitType UnitType     `gorm:"type:varchar(32);not null" json:"unitType"`

	// MealGroupID links records created together (one template application),
	// enabling bulk undo.
	MealGroupID *string `gorm:"type:varchar(64);index" json:"mealGroupId,omitempty"`

	Nutriments Nutriments `gorm:"embedded" json:"nutriments"`
}

// DateKey renders the record's date the way cache keys expect it.
func (i *Intake) DateKey() string {
	return i.Date.Format("2006-01-02")
}
