package models

import "time"

type AssignedMeal struct {
	ID            int64     `gorm:"column:id;primary_key" json:"id"`
	CheckupID     int64     `gorm:"column:checkup_id;unique_index:idx_assigned_meal_slot" json:"checkup_id"`
	Day           string    `gorm:"column:day;unique_index:idx_assigned_meal_slot" json:"day"`
	MealSlot      string    `gorm:"column:meal_slot;unique_index:idx_assigned_meal_slot" json:"meal_slot"`
	FoodItemID    int64     `gorm:"column:food_item_id" json:"food_item_id"`
	Multiplier    float64   `gorm:"column:multiplier" json:"multiplier"`
	QuantityText  string    `gorm:"column:quantity_text" json:"quantity_text"`
	TotalCalories int       `gorm:"column:total_calories" json:"total_calories"`
	CreatedAt     time.Time `gorm:"column:created_at" json:"created_at"`
}

// TableName sets the insert table name for this struct type
func (a *AssignedMeal) TableName() string {
	return "assigned_meals"
}
