package models

// All lists the tables owned by the worker, in migration order.
func All() []interface{} {
	return []interface{}{
		&Patient{},
		&Checkup{},
		&FoodItem{},
		&AssignedMeal{},
		&PlanReport{},
		&ActivityLog{},
	}
}
