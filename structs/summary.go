package structs

type NutritionTotals struct {
	Calories float64 `json:"cal"`
	Protein  float64 `json:"p"`
	Carbs    float64 `json:"c"`
	Fat      float64 `json:"f"`
	Fiber    float64 `json:"fiber"`
	Sugar    float64 `json:"sugar"`
}

type ShoppingItem struct {
	Qty      int    `json:"qty"`
	Unit     string `json:"unit"`
	Category string `json:"category"`
}

type PlanSummary struct {
	CheckupID               int64                   `json:"checkup_id"`
	MealCount               int                     `json:"meal_count"`
	Total                   NutritionTotals         `json:"total"`
	DailyAvg                NutritionTotals         `json:"daily_avg"`
	ShoppingList            map[string]ShoppingItem `json:"shopping_list"`
	SlotTargets             map[string]int          `json:"slot_targets"`
	ProjectedWeightChangeKg float64                 `json:"projected_weight_change_kg"`
}
