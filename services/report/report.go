// Package report aggregates a stored weekly plan into totals, a shopping list
// and a projected weight change, and keeps a JSON snapshot per checkup.
package report

import (
	"dietplan-go-worker/models"
	"dietplan-go-worker/services/plan"
	"dietplan-go-worker/services/safety"
	"dietplan-go-worker/structs"
	"dietplan-go-worker/utils"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

// kcal in one kilogram of body weight
const kcalPerKg = 7700.0

type ReportService struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewReportService(db *gorm.DB, logger *logrus.Entry) *ReportService {
	return &ReportService{db: db, logger: logger}
}

// Summarize is pure; foods are scaled by each row's multiplier.
func Summarize(checkup models.Checkup, assignments []plan.Assignment) structs.PlanSummary {
	summary := structs.PlanSummary{
		CheckupID:    checkup.ID,
		MealCount:    len(assignments),
		ShoppingList: make(map[string]structs.ShoppingItem),
		SlotTargets:  plan.SlotTargets(checkup.TargetCalories, checkup.PlanType),
	}

	for _, a := range assignments {
		m := a.Meal.Multiplier
		summary.Total.Calories += float64(a.Meal.TotalCalories)
		summary.Total.Protein += a.Food.Protein * m
		summary.Total.Carbs += a.Food.Carbs * m
		summary.Total.Fat += a.Food.Fat * m
		summary.Total.Fiber += a.Food.Fiber * m
		summary.Total.Sugar += a.Food.Sugar * m

		item, ok := summary.ShoppingList[a.Food.Name]
		if !ok {
			item = structs.ShoppingItem{Unit: a.Food.UnitName, Category: a.Food.Category}
			if item.Unit == "" {
				item.Unit = "Serving"
			}
			if item.Category == "" {
				item.Category = safety.SlotCategory(a.Meal.MealSlot)
			}
		}
		item.Qty++
		summary.ShoppingList[a.Food.Name] = item
	}

	days := float64(len(plan.Weekdays))
	summary.Total = roundTotals(summary.Total, 1)
	summary.DailyAvg = roundTotals(summary.Total, days)
	// negative means the week ends lighter
	summary.ProjectedWeightChangeKg = round2(-(checkup.Tdee - summary.DailyAvg.Calories) * days / kcalPerKg)
	if len(assignments) == 0 {
		summary.ProjectedWeightChangeKg = 0
	}
	return summary
}

func (r *ReportService) Build(checkupID int64) (structs.PlanSummary, error) {
	var checkup models.Checkup
	if err := r.db.Where("id = ?", checkupID).First(&checkup).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return structs.PlanSummary{}, fmt.Errorf("%w: %d", plan.ErrCheckupNotFound, checkupID)
		}
		return structs.PlanSummary{}, err
	}
	assignments, err := plan.Assignments(r.db, checkupID)
	if err != nil {
		return structs.PlanSummary{}, err
	}
	return Summarize(checkup, assignments), nil
}

// Save builds the summary and upserts it into plan_reports.
func (r *ReportService) Save(checkupID int64) (structs.PlanSummary, error) {
	summary, err := r.Build(checkupID)
	if err != nil {
		return summary, err
	}
	out, err := json.Marshal(summary)
	if err != nil {
		return summary, err
	}

	insertTime := time.Now().In(utils.Location())
	var planReportEntity models.PlanReport
	if err = r.db.Where(models.PlanReport{CheckupID: checkupID}).First(&planReportEntity).Error; gorm.IsRecordNotFoundError(err) {
		planReportEntity = models.PlanReport{
			CheckupID: checkupID,
			Data:      string(out),
			CreatedAt: &insertTime,
			UpdatedAt: &insertTime,
		}
		if err = r.db.Create(&planReportEntity).Error; err != nil {
			return summary, err
		}
	} else if err != nil {
		return summary, err
	} else {
		if err = r.db.Model(&planReportEntity).Updates(models.PlanReport{Data: string(out), UpdatedAt: &insertTime}).Error; err != nil {
			return summary, err
		}
	}

	r.logger.WithFields(logrus.Fields{"task": "report", "checkup_id": checkupID, "meals": summary.MealCount, "daily_calories": summary.DailyAvg.Calories}).Info("plan report saved")
	return summary, nil
}

// Snapshot returns the last saved summary of a checkup.
func (r *ReportService) Snapshot(checkupID int64) (structs.PlanSummary, error) {
	var summary structs.PlanSummary
	var planReportEntity models.PlanReport
	if err := r.db.Where("checkup_id = ?", checkupID).First(&planReportEntity).Error; err != nil {
		return summary, err
	}
	err := json.Unmarshal([]byte(planReportEntity.Data), &summary)
	return summary, err
}

func roundTotals(t structs.NutritionTotals, divisor float64) structs.NutritionTotals {
	return structs.NutritionTotals{
		Calories: round2(t.Calories / divisor),
		Protein:  round2(t.Protein / divisor),
		Carbs:    round2(t.Carbs / divisor),
		Fat:      round2(t.Fat / divisor),
		Fiber:    round2(t.Fiber / divisor),
		Sugar:    round2(t.Sugar / divisor),
	}
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
