package testutil

import (
	"dietplan-go-worker/enums"
	"dietplan-go-worker/models"
	"testing"

	"github.com/jinzhu/gorm"
)

func SeedPatient(tb testing.TB, db *gorm.DB, phone, history, allergies, diet string) *models.Patient {
	tb.Helper()
	p := &models.Patient{
		Name:           "Patient " + phone,
		Phone:          phone,
		Gender:         enums.Male,
		MedicalHistory: history,
		Allergies:      allergies,
		DietPreference: diet,
	}
	if err := db.Create(p).Error; err != nil {
		tb.Fatalf("seed patient: %v", err)
	}
	return p
}

// SeedCheckup stores the 70 kg / 175 cm / 30 y reference biometrics.
func SeedCheckup(tb testing.TB, db *gorm.DB, patientID int64, planType string) *models.Checkup {
	tb.Helper()
	c := &models.Checkup{
		PatientID: patientID,
		Age:       30,
		Height:    175,
		Weight:    70,
		Bp:        "120/80",
		Activity:  1.55,
		PlanType:  planType,
	}
	if err := db.Create(c).Error; err != nil {
		tb.Fatalf("seed checkup: %v", err)
	}
	return c
}

func SeedFood(tb testing.TB, db *gorm.DB, food models.FoodItem) *models.FoodItem {
	tb.Helper()
	if food.UnitName == "" {
		food.UnitName = "Serving"
	}
	if err := db.Create(&food).Error; err != nil {
		tb.Fatalf("seed food %s: %v", food.Name, err)
	}
	return &food
}

// SeedCatalog stores n plain vegetarian foods per catalog category.
func SeedCatalog(tb testing.TB, db *gorm.DB, n int) []models.FoodItem {
	tb.Helper()
	var foods []models.FoodItem
	for _, category := range []string{enums.Breakfast, enums.Lunch, enums.Dinner, enums.Snack} {
		for i := 0; i < n; i++ {
			food := SeedFood(tb, db, models.FoodItem{
				Name:        category + " item " + string(rune('A'+i)),
				Category:    category,
				DietType:    enums.Veg,
				Calories:    150 + 10*i,
				Protein:     6,
				Carbs:       20,
				Fat:         4,
				Sodium:      100,
				Sugar:       2,
				Potassium:   100,
				Phosphorus:  80,
				Fiber:       3,
				Ingredients: "rice, lentils",
				UnitName:    "Bowl",
			})
			foods = append(foods, *food)
		}
	}
	return foods
}
