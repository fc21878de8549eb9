package enums

// queue job process types
const (
	ProcessSingle = "SINGLE"
	ProcessAll    = "ALL"
)

// weight category by BMI
const (
	Underweight = "Underweight"
	Normal      = "Normal"
	Overweight  = "Overweight"
	Obese       = "Obese"
)

// food catalog categories
const (
	Breakfast = "Breakfast"
	Lunch     = "Lunch"
	Dinner    = "Dinner"
	Snack     = "Snack"
)

// 5-Meal plan snack slots
const (
	MorningSnack = "Morning Snack"
	EveningSnack = "Evening Snack"
)

const (
	Veg    = "Veg"
	NonVeg = "Non-Veg"
	Vegan  = "Vegan"
)

const (
	ThreeMeal = "3-Meal"
	FiveMeal  = "5-Meal"
)

const (
	Male   = "male"
	Female = "female"
)
