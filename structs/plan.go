package structs

// PlanMeal is one assigned meal as shown to callers.
type PlanMeal struct {
	MealSlot     string  `json:"meal_slot"`
	FoodName     string  `json:"food_name"`
	QuantityText string  `json:"quantity_text"`
	Calories     int     `json:"calories"`
	Protein      float64 `json:"protein"`
	Carbs        float64 `json:"carbs"`
	Fat          float64 `json:"fat"`
}

type PlanDay struct {
	Day   string     `json:"day"`
	Meals []PlanMeal `json:"meals"`
}

// WeeklyPlan keeps weekday order; Days[0] is Monday.
type WeeklyPlan struct {
	CheckupID      int64          `json:"checkup_id"`
	PlanType       string         `json:"plan_type"`
	TargetCalories int            `json:"target_calories"`
	SlotTargets    map[string]int `json:"slot_targets"`
	Days           []PlanDay      `json:"days"`
}

// Day returns the meals of one weekday, nil when the day has none.
func (w WeeklyPlan) Day(name string) []PlanMeal {
	for _, d := range w.Days {
		if d.Day == name {
			return d.Meals
		}
	}
	return nil
}
