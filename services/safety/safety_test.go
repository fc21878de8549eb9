package safety

import (
	"dietplan-go-worker/enums"
	"dietplan-go-worker/models"
	"reflect"
	"strings"
	"testing"
)

func food(id int64, name, category, diet string) models.FoodItem {
	return models.FoodItem{
		ID: id, Name: name, Category: category, DietType: diet,
		Calories: 200, Protein: 6, Fiber: 3, Sugar: 2,
		Sodium: 100, Potassium: 100, Phosphorus: 100,
		Ingredients: strings.ToLower(name),
	}
}

func names(foods []models.FoodItem) []string {
	var out []string
	for _, f := range foods {
		out = append(out, f.Name)
	}
	return out
}

func TestFilterRestrictsToSlotCategory(t *testing.T) {
	catalog := []models.FoodItem{
		food(1, "Idli", enums.Breakfast, enums.Veg),
		food(2, "Sundal", enums.Snack, enums.Vegan),
		food(3, "Dosa", enums.Breakfast, enums.Veg),
		food(4, "Curd Rice", enums.Lunch, enums.Veg),
	}

	got := names(Filter(enums.Breakfast, catalog, Criteria{}))
	if want := []string{"Idli", "Dosa"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("breakfast = %v, want %v", got, want)
	}
	got = names(Filter(enums.EveningSnack, catalog, Criteria{}))
	if want := []string{"Sundal"}; !reflect.DeepEqual(got, want) {
		t.Fatalf("evening snack = %v, want %v", got, want)
	}
}

func TestFilterDietPreference(t *testing.T) {
	catalog := []models.FoodItem{
		food(1, "Chicken Curry", enums.Lunch, enums.NonVeg),
		food(2, "Sambar Rice", enums.Lunch, enums.Veg),
		food(3, "Vegetable Kootu", enums.Lunch, enums.Vegan),
	}
	cases := []struct {
		preference string
		want       []string
	}{
		{enums.NonVeg, []string{"Chicken Curry", "Sambar Rice", "Vegetable Kootu"}},
		{"veg", []string{"Sambar Rice", "Vegetable Kootu"}},
		{enums.Vegan, []string{"Vegetable Kootu"}},
		{"", []string{"Chicken Curry", "Sambar Rice", "Vegetable Kootu"}},
	}
	for _, c := range cases {
		got := names(Filter(enums.Lunch, catalog, Criteria{DietPreference: c.preference}))
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("preference %q = %v, want %v", c.preference, got, c.want)
		}
	}
}

func TestFilterExcludesAllergens(t *testing.T) {
	peanutChutney := food(1, "Idli with chutney", enums.Breakfast, enums.Veg)
	peanutChutney.Ingredients = "Rice, Urad dal, PEANUT chutney"
	catalog := []models.FoodItem{
		peanutChutney,
		food(2, "Pongal", enums.Breakfast, enums.Veg),
	}

	got := Filter(enums.Breakfast, catalog, Criteria{Allergens: ParseAllergies("Peanut, ")})
	for _, f := range got {
		if strings.Contains(strings.ToLower(f.Ingredients), "peanut") {
			t.Fatalf("allergen leaked: %s", f.Name)
		}
	}
	if len(got) != 1 {
		t.Fatalf("got %v", names(got))
	}

	if got := Filter(enums.Breakfast, catalog, Criteria{Allergens: ParseAllergies("None")}); len(got) != 2 {
		t.Fatalf("none should not filter, got %v", names(got))
	}
}

func TestFilterConditionCeilings(t *testing.T) {
	salty := food(1, "Pickle Rice", enums.Lunch, enums.Veg)
	salty.Sodium = 300
	sweet := food(2, "Payasam", enums.Lunch, enums.Veg)
	sweet.Sugar = 5
	potassium := food(3, "Banana Stem Curry", enums.Lunch, enums.Veg)
	potassium.Potassium = 200
	phosphorus := food(4, "Paneer Curry", enums.Lunch, enums.Veg)
	phosphorus.Phosphorus = 150
	plain := food(5, "Plain Rice", enums.Lunch, enums.Veg)
	catalog := []models.FoodItem{salty, sweet, potassium, phosphorus, plain}

	cases := []struct {
		conditions Conditions
		want       []string
	}{
		{NewConditions(), []string{"Pickle Rice", "Payasam", "Banana Stem Curry", "Paneer Curry", "Plain Rice"}},
		{NewConditions(Cardiac), []string{"Payasam", "Banana Stem Curry", "Paneer Curry", "Plain Rice"}},
		{NewConditions(Hypertensive), []string{"Payasam", "Banana Stem Curry", "Paneer Curry", "Plain Rice"}},
		{NewConditions(Diabetic), []string{"Pickle Rice", "Banana Stem Curry", "Paneer Curry", "Plain Rice"}},
		{NewConditions(Renal), []string{"Pickle Rice", "Payasam", "Plain Rice"}},
		{NewConditions(Renal, Diabetic, Cardiac), []string{"Plain Rice"}},
	}
	for _, c := range cases {
		got := names(Filter(enums.Lunch, catalog, Criteria{Conditions: c.conditions}))
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("conditions %v = %v, want %v", c.conditions.List(), got, c.want)
		}
	}
}

func TestFilterWeightCategory(t *testing.T) {
	light := food(1, "Cucumber Salad", enums.Snack, enums.Vegan)
	light.Calories = 60
	light.Fiber = 1
	light.Protein = 1
	sugary := food(2, "Jaggery Sweet", enums.Snack, enums.Veg)
	sugary.Sugar = 9
	protein := food(3, "Egg White", enums.Snack, enums.NonVeg)
	protein.Fiber = 0
	protein.Protein = 7
	catalog := []models.FoodItem{light, sugary, protein}

	cases := []struct {
		category string
		want     []string
	}{
		{enums.Normal, []string{"Cucumber Salad", "Jaggery Sweet", "Egg White"}},
		{enums.Obese, []string{"Egg White"}},
		{enums.Overweight, []string{"Egg White"}},
		{enums.Underweight, []string{"Jaggery Sweet", "Egg White"}},
	}
	for _, c := range cases {
		got := names(Filter(enums.MorningSnack, catalog, Criteria{WeightCategory: c.category}))
		if !reflect.DeepEqual(got, c.want) {
			t.Errorf("%s = %v, want %v", c.category, got, c.want)
		}
	}
}

func TestFilterMayReturnEmpty(t *testing.T) {
	catalog := []models.FoodItem{food(1, "Mutton Biryani", enums.Dinner, enums.NonVeg)}
	if got := Filter(enums.Dinner, catalog, Criteria{DietPreference: enums.Vegan}); len(got) != 0 {
		t.Fatalf("got %v", names(got))
	}
}

func TestParseConditions(t *testing.T) {
	c := ParseConditions("Type 2 Diabetes, chronic KIDNEY disease")
	if want := []string{"diabetic", "renal"}; !reflect.DeepEqual(c.List(), want) {
		t.Fatalf("conditions = %v, want %v", c.List(), want)
	}
	if got := ParseConditions("Heart surgery 2019; high BP").List(); !reflect.DeepEqual(got, []string{"cardiac", "hypertensive"}) {
		t.Fatalf("conditions = %v", got)
	}
	if got := ParseConditions(""); len(got.List()) != 0 {
		t.Fatalf("conditions = %v", got.List())
	}
}

func TestHypertensiveReading(t *testing.T) {
	cases := map[string]bool{
		"120/80":  false,
		"140/85":  true,
		"130/ 90": true,
		"":        false,
		"high":    false,
		"139/89":  false,
		"abc/100": false,
	}
	for bp, want := range cases {
		if got := HypertensiveReading(bp); got != want {
			t.Errorf("HypertensiveReading(%q) = %v, want %v", bp, got, want)
		}
	}
}

func TestCriteriaFor(t *testing.T) {
	patient := models.Patient{MedicalHistory: "diabetic", Allergies: "Peanut, Milk", DietPreference: enums.Veg}
	checkup := models.Checkup{Bp: "150/95", Category: enums.Obese, DietPreference: enums.Vegan}

	c := CriteriaFor(patient, checkup)
	if c.DietPreference != enums.Vegan {
		t.Fatalf("checkup preference should win, got %s", c.DietPreference)
	}
	if !c.Conditions.Has(Diabetic) || !c.Conditions.Has(Hypertensive) {
		t.Fatalf("conditions = %v", c.Conditions.List())
	}
	if !reflect.DeepEqual(c.Allergens, []string{"peanut", "milk"}) {
		t.Fatalf("allergens = %v", c.Allergens)
	}

	checkup.DietPreference = ""
	if c := CriteriaFor(patient, checkup); c.DietPreference != enums.Veg {
		t.Fatalf("fallback preference = %s", c.DietPreference)
	}
}
