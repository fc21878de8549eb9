package report

import (
	"dietplan-go-worker/database/testutil"
	"dietplan-go-worker/enums"
	"dietplan-go-worker/models"
	"dietplan-go-worker/services/plan"
	"errors"
	"testing"
)

func weekOf(food models.FoodItem, slot string, multiplier float64) []plan.Assignment {
	var assignments []plan.Assignment
	for _, day := range plan.Weekdays {
		assignments = append(assignments, plan.Assignment{
			Meal: models.AssignedMeal{
				Day:           day,
				MealSlot:      slot,
				FoodItemID:    food.ID,
				Multiplier:    multiplier,
				TotalCalories: int(float64(food.Calories) * multiplier),
			},
			Food: food,
		})
	}
	return assignments
}

func TestSummarize(t *testing.T) {
	idli := models.FoodItem{ID: 1, Name: "Idli", Category: enums.Breakfast, Calories: 100, Protein: 4, Carbs: 20, Fat: 1, Fiber: 2, Sugar: 1, UnitName: "Plate"}
	checkup := models.Checkup{ID: 9, Tdee: 2555.56, TargetCalories: 2000, PlanType: enums.ThreeMeal}

	summary := Summarize(checkup, weekOf(idli, enums.Breakfast, 2))

	if summary.MealCount != 7 {
		t.Fatalf("meal count = %d", summary.MealCount)
	}
	if summary.Total.Calories != 1400 || summary.Total.Protein != 56 || summary.Total.Carbs != 280 || summary.Total.Fat != 14 || summary.Total.Fiber != 28 || summary.Total.Sugar != 14 {
		t.Fatalf("unexpected totals %+v", summary.Total)
	}
	if summary.DailyAvg.Calories != 200 || summary.DailyAvg.Protein != 8 || summary.DailyAvg.Fiber != 4 {
		t.Fatalf("unexpected daily average %+v", summary.DailyAvg)
	}
	if summary.ProjectedWeightChangeKg != -2.14 {
		t.Fatalf("projected change = %v, want -2.14", summary.ProjectedWeightChangeKg)
	}
	item := summary.ShoppingList["Idli"]
	if item.Qty != 7 || item.Unit != "Plate" || item.Category != enums.Breakfast {
		t.Fatalf("unexpected shopping item %+v", item)
	}
	if summary.SlotTargets[enums.Lunch] != 800 {
		t.Fatalf("slot targets %v", summary.SlotTargets)
	}
}

func TestSummarizeDefaults(t *testing.T) {
	nuts := models.FoodItem{ID: 2, Name: "Roasted chana", Calories: 120, Protein: 6}
	summary := Summarize(models.Checkup{Tdee: 1800, PlanType: enums.FiveMeal}, weekOf(nuts, enums.EveningSnack, 1))

	item := summary.ShoppingList["Roasted chana"]
	if item.Unit != "Serving" || item.Category != enums.Snack {
		t.Fatalf("unexpected defaults %+v", item)
	}
	// 120 kcal a day against 1800 burned
	if summary.ProjectedWeightChangeKg != -1.53 {
		t.Fatalf("projected change = %v", summary.ProjectedWeightChangeKg)
	}
}

func TestSummarizeEmptyPlan(t *testing.T) {
	summary := Summarize(models.Checkup{Tdee: 2000, PlanType: enums.ThreeMeal}, nil)
	if summary.MealCount != 0 || summary.Total.Calories != 0 || summary.ProjectedWeightChangeKg != 0 || len(summary.ShoppingList) != 0 {
		t.Fatalf("unexpected empty summary %+v", summary)
	}
}

func TestSaveUpsertsSnapshot(t *testing.T) {
	db := testutil.DB(t)
	testutil.SeedCatalog(t, db, 3)
	patient := testutil.SeedPatient(t, db, "9000000101", "", "", "")
	checkup := testutil.SeedCheckup(t, db, patient.ID, enums.ThreeMeal)
	logger := testutil.Logger(t)

	planService := plan.NewPlanService(db, logger)
	if _, err := planService.Ensure(checkup.ID); err != nil {
		t.Fatalf("Ensure: %v", err)
	}

	r := NewReportService(db, logger)
	first, err := r.Save(checkup.ID)
	if err != nil {
		t.Fatalf("Save: %v", err)
	}
	if first.MealCount != 21 || first.Total.Calories <= 0 {
		t.Fatalf("unexpected summary %+v", first)
	}

	if _, err := planService.Regenerate(checkup.ID); err != nil {
		t.Fatalf("Regenerate: %v", err)
	}
	if _, err := r.Save(checkup.ID); err != nil {
		t.Fatalf("second Save: %v", err)
	}

	count := 0
	if err := db.Model(&models.PlanReport{}).Where("checkup_id = ?", checkup.ID).Count(&count).Error; err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Fatalf("%d snapshots stored, want 1", count)
	}

	snapshot, err := r.Snapshot(checkup.ID)
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snapshot.MealCount != 21 || snapshot.Total.Calories != first.Total.Calories {
		t.Fatalf("snapshot %+v differs from %+v", snapshot, first)
	}
}

func TestBuildUnknownCheckup(t *testing.T) {
	db := testutil.DB(t)
	_, err := NewReportService(db, testutil.Logger(t)).Build(77)
	if !errors.Is(err, plan.ErrCheckupNotFound) {
		t.Fatalf("err = %v", err)
	}
}
