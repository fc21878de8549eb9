package models

type FoodItem struct {
	ID          int64   `gorm:"column:id;primary_key" json:"id"`
	Name        string  `gorm:"column:name" json:"name"`
	Category    string  `gorm:"column:category;index" json:"category"`
	DietType    string  `gorm:"column:diet_type" json:"diet_type"`
	Calories    int     `gorm:"column:calories" json:"calories"`
	Protein     float64 `gorm:"column:protein" json:"protein"`
	Carbs       float64 `gorm:"column:carbs" json:"carbs"`
	Fat         float64 `gorm:"column:fat" json:"fat"`
	Sodium      float64 `gorm:"column:sodium" json:"sodium"`
	Sugar       float64 `gorm:"column:sugar" json:"sugar"`
	Potassium   float64 `gorm:"column:potassium" json:"potassium"`
	Phosphorus  float64 `gorm:"column:phosphorus" json:"phosphorus"`
	Fiber       float64 `gorm:"column:fiber" json:"fiber"`
	Ingredients string  `gorm:"column:ingredients" json:"ingredients"`
	UnitName    string  `gorm:"column:unit_name" json:"unit_name"`
	ServingDesc string  `gorm:"column:serving_desc" json:"serving_desc"`
}

// TableName sets the insert table name for this struct type
func (f *FoodItem) TableName() string {
	return "food_items"
}
