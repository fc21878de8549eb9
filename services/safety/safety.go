// Package safety narrows the food catalog to what a patient may eat in a meal slot.
package safety

import (
	"dietplan-go-worker/enums"
	"dietplan-go-worker/models"
	"strings"
)

// clinical ceilings, per serving
const (
	renalPotassiumMax    = 200.0
	renalPhosphorusMax   = 150.0
	sodiumMax            = 300.0
	diabeticSugarMax     = 5.0
	weightLossSugarMax   = 8.0
	weightLossFiberMin   = 3.0
	weightLossProtein    = 5.0
	weightGainCalorieMin = 100
)

type Criteria struct {
	DietPreference string
	Conditions     Conditions
	WeightCategory string
	Allergens      []string
}

type rule func(food models.FoodItem) bool

// SlotCategory maps a meal slot to the catalog category that serves it.
func SlotCategory(slot string) string {
	if strings.Contains(strings.ToLower(slot), "snack") {
		return enums.Snack
	}
	return slot
}

// Filter keeps catalog order; each rule only removes items.
func Filter(slot string, catalog []models.FoodItem, criteria Criteria) []models.FoodItem {
	rules := []rule{
		categoryRule(SlotCategory(slot)),
		dietRule(criteria.DietPreference),
		allergyRule(criteria.Allergens),
		conditionRule(criteria.Conditions),
		weightRule(criteria.WeightCategory),
	}

	eligible := make([]models.FoodItem, 0, len(catalog))
	for _, food := range catalog {
		ok := true
		for _, r := range rules {
			if !r(food) {
				ok = false
				break
			}
		}
		if ok {
			eligible = append(eligible, food)
		}
	}
	return eligible
}

func categoryRule(category string) rule {
	return func(food models.FoodItem) bool {
		return strings.EqualFold(food.Category, category)
	}
}

func dietRule(preference string) rule {
	switch {
	case strings.EqualFold(preference, enums.Vegan):
		return func(food models.FoodItem) bool {
			return strings.EqualFold(food.DietType, enums.Vegan)
		}
	case strings.EqualFold(preference, enums.Veg):
		return func(food models.FoodItem) bool {
			return strings.EqualFold(food.DietType, enums.Veg) || strings.EqualFold(food.DietType, enums.Vegan)
		}
	}
	return func(models.FoodItem) bool { return true }
}

func allergyRule(allergens []string) rule {
	return func(food models.FoodItem) bool {
		ingredients := strings.ToLower(food.Ingredients)
		for _, allergen := range allergens {
			if strings.Contains(ingredients, strings.ToLower(allergen)) {
				return false
			}
		}
		return true
	}
}

func conditionRule(conditions Conditions) rule {
	return func(food models.FoodItem) bool {
		if conditions.Has(Renal) && !(food.Potassium < renalPotassiumMax && food.Phosphorus < renalPhosphorusMax) {
			return false
		}
		if (conditions.Has(Cardiac) || conditions.Has(Hypertensive)) && !(food.Sodium < sodiumMax) {
			return false
		}
		if conditions.Has(Diabetic) && !(food.Sugar < diabeticSugarMax) {
			return false
		}
		return true
	}
}

func weightRule(category string) rule {
	switch category {
	case enums.Obese, enums.Overweight:
		return func(food models.FoodItem) bool {
			if food.Sugar > weightLossSugarMax {
				return false
			}
			return food.Fiber >= weightLossFiberMin || food.Protein >= weightLossProtein
		}
	case enums.Underweight:
		return func(food models.FoodItem) bool {
			return food.Calories >= weightGainCalorieMin
		}
	}
	return func(models.FoodItem) bool { return true }
}

// CriteriaFor derives the filter input of a patient at a given checkup.
func CriteriaFor(patient models.Patient, checkup models.Checkup) Criteria {
	conditions := ParseConditions(patient.MedicalHistory)
	if HypertensiveReading(checkup.Bp) {
		conditions.Add(Hypertensive)
	}
	preference := checkup.DietPreference
	if preference == "" {
		preference = patient.DietPreference
	}
	return Criteria{
		DietPreference: preference,
		Conditions:     conditions,
		WeightCategory: checkup.Category,
		Allergens:      ParseAllergies(patient.Allergies),
	}
}
