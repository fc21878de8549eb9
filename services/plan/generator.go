package plan

import (
	"dietplan-go-worker/models"
	"dietplan-go-worker/services/metric"
	"dietplan-go-worker/services/portion"
	"dietplan-go-worker/services/safety"
	"dietplan-go-worker/structs"
	"dietplan-go-worker/utils"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	gormbulk "github.com/t-tiger/gorm-bulk-insert/v2"
)

const bulkChunkSize = 3000

// Gap is a day and slot left empty because no food passed the safety filter.
type Gap struct {
	Day  string `json:"day"`
	Slot string `json:"slot"`
}

type Result struct {
	CheckupID int64      `json:"checkup_id"`
	Before    PlanStatus `json:"before"`
	Generated bool       `json:"generated"`
	Meals     int        `json:"meals"`
	Gaps      []Gap      `json:"gaps"`
}

// PlanService is not safe for concurrent writes to the same checkup;
// callers serialize per checkup id.
type PlanService struct {
	db      *gorm.DB
	logger  *logrus.Entry
	newRand RandFactory
	now     func() time.Time
}

type Option func(*PlanService)

func WithRandFactory(factory RandFactory) Option {
	return func(s *PlanService) { s.newRand = factory }
}

func WithClock(now func() time.Time) Option {
	return func(s *PlanService) { s.now = now }
}

func NewPlanService(db *gorm.DB, logger *logrus.Entry, opts ...Option) *PlanService {
	s := &PlanService{
		db:      db,
		logger:  logger,
		newRand: DefaultRand,
		now:     func() time.Time { return time.Now().In(utils.Location()) },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Status derives Absent / Incomplete / Complete from the stored rows.
func (s *PlanService) Status(checkupID int64) (PlanStatus, error) {
	checkup, err := loadCheckup(s.db, checkupID)
	if err != nil {
		return Absent, err
	}
	count, err := countMeals(s.db, checkupID)
	if err != nil {
		return Absent, err
	}
	return StatusOf(count, checkup.PlanType), nil
}

// Ensure generates the plan when it is absent or incomplete and leaves a complete plan alone.
func (s *PlanService) Ensure(checkupID int64) (Result, error) {
	checkup, err := loadCheckup(s.db, checkupID)
	if err != nil {
		return Result{CheckupID: checkupID}, err
	}
	count, err := countMeals(s.db, checkupID)
	if err != nil {
		return Result{CheckupID: checkupID}, err
	}

	status := StatusOf(count, checkup.PlanType)
	switch status {
	case Complete:
		return Result{CheckupID: checkupID, Before: status, Meals: count}, nil
	case Incomplete:
		s.logger.WithFields(logrus.Fields{"task": "plan", "checkup_id": checkupID, "meals": count, "expected": ExpectedMeals(checkup.PlanType)}).Info("plan incomplete, regenerating")
	}
	return s.generate(checkup, status)
}

// Regenerate drops the stored plan and replays generation with the same seeds.
func (s *PlanService) Regenerate(checkupID int64) (Result, error) {
	checkup, err := loadCheckup(s.db, checkupID)
	if err != nil {
		return Result{CheckupID: checkupID}, err
	}
	count, err := countMeals(s.db, checkupID)
	if err != nil {
		return Result{CheckupID: checkupID}, err
	}
	return s.generate(checkup, StatusOf(count, checkup.PlanType))
}

func (s *PlanService) generate(checkup models.Checkup, before PlanStatus) (Result, error) {
	result := Result{CheckupID: checkup.ID, Before: before}

	patient, err := loadPatient(s.db, checkup.PatientID)
	if err != nil {
		return result, err
	}
	logger := s.logger.WithFields(logrus.Fields{"task": "plan", "checkup_id": checkup.ID, "patient": patient.Phone, "plan_type": checkup.PlanType})

	if err := metric.ApplyToCheckup(&checkup, patient.Gender); err != nil {
		logger.WithField("error_message", err.Error()).Warn("checkup rejected")
		return result, err
	}

	catalog, err := loadCatalog(s.db)
	if err != nil {
		return result, err
	}

	splits := SlotSplits(checkup.PlanType)
	criteria := safety.CriteriaFor(patient, checkup)
	identity := patientIdentity(patient)
	pools := make(map[string]*pool, len(splits))
	for _, split := range splits {
		eligible := safety.Filter(split.Slot, catalog, criteria)
		pools[split.Slot] = newPool(eligible, s.newRand(Seed(identity, split.Slot)))
		logger.WithFields(logrus.Fields{"slot": split.Slot, "eligible": len(eligible), "conditions": criteria.Conditions.List()}).Debug("pool built")
	}

	createdAt := s.now()
	var records []interface{}
	for _, day := range Weekdays {
		for _, split := range splits {
			p := pools[split.Slot]
			if p.empty() {
				result.Gaps = append(result.Gaps, Gap{Day: day, Slot: split.Slot})
				continue
			}
			food := p.next()
			solved := portion.Solve(food, split.Target(checkup.TargetCalories))
			if solved.Degenerate() {
				logger.WithFields(logrus.Fields{"food_id": food.ID, "food": food.Name}).Warn("food without calories, placeholder portion")
			}
			records = append(records, models.AssignedMeal{
				CheckupID:     checkup.ID,
				Day:           day,
				MealSlot:      split.Slot,
				FoodItemID:    food.ID,
				Multiplier:    solved.Multiplier,
				QuantityText:  solved.Quantity,
				TotalCalories: solved.Calories,
				CreatedAt:     createdAt,
			})
		}
	}
	if len(result.Gaps) > 0 {
		logger.WithFields(logrus.Fields{"gaps": len(result.Gaps), "first_gap_slot": result.Gaps[0].Slot}).Warn("no eligible food for some slots")
	}

	if err := s.persist(checkup, records); err != nil {
		logger.WithField("error_message", err.Error()).Error("save plan fail")
		return result, err
	}

	result.Generated = true
	result.Meals = len(records)
	logger.WithFields(logrus.Fields{"meals": result.Meals, "target_calories": checkup.TargetCalories}).Info("plan generated")
	return result, nil
}

// persist swaps the whole week in one transaction.
func (s *PlanService) persist(checkup models.Checkup, records []interface{}) (err error) {
	tx := s.db.Begin()
	if err := tx.Error; err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() {
		if r := recover(); r != nil {
			tx.Rollback()
			err = fmt.Errorf("save plan panic: %v", r)
		}
	}()

	updatedAt := s.now()
	checkup.UpdatedAt = &updatedAt
	if err := tx.Save(&checkup).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("update checkup metrics: %w", err)
	}
	if err := tx.Where("checkup_id = ?", checkup.ID).Delete(&models.AssignedMeal{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("delete old plan: %w", err)
	}
	if len(records) > 0 {
		if err := gormbulk.BulkInsert(tx, records, bulkChunkSize); err != nil {
			tx.Rollback()
			return fmt.Errorf("insert plan: %w", err)
		}
	}
	if err := tx.Commit().Error; err != nil {
		return fmt.Errorf("commit plan: %w", err)
	}
	return nil
}

// WeeklyPlan projects the stored rows into weekday order.
func (s *PlanService) WeeklyPlan(checkupID int64) (structs.WeeklyPlan, error) {
	checkup, err := loadCheckup(s.db, checkupID)
	if err != nil {
		return structs.WeeklyPlan{}, err
	}
	assignments, err := Assignments(s.db, checkupID)
	if err != nil {
		return structs.WeeklyPlan{}, err
	}

	bySlot := make(map[string]map[string]Assignment, len(Weekdays))
	for _, a := range assignments {
		if bySlot[a.Meal.Day] == nil {
			bySlot[a.Meal.Day] = make(map[string]Assignment)
		}
		bySlot[a.Meal.Day][a.Meal.MealSlot] = a
	}

	weekly := structs.WeeklyPlan{
		CheckupID:      checkup.ID,
		PlanType:       checkup.PlanType,
		TargetCalories: checkup.TargetCalories,
		SlotTargets:    SlotTargets(checkup.TargetCalories, checkup.PlanType),
	}
	for _, day := range Weekdays {
		planDay := structs.PlanDay{Day: day, Meals: []structs.PlanMeal{}}
		for _, split := range SlotSplits(checkup.PlanType) {
			a, ok := bySlot[day][split.Slot]
			if !ok {
				continue
			}
			planDay.Meals = append(planDay.Meals, structs.PlanMeal{
				MealSlot:     split.Slot,
				FoodName:     a.Food.Name,
				QuantityText: a.Meal.QuantityText,
				Calories:     a.Meal.TotalCalories,
				Protein:      round2(a.Food.Protein * a.Meal.Multiplier),
				Carbs:        round2(a.Food.Carbs * a.Meal.Multiplier),
				Fat:          round2(a.Food.Fat * a.Meal.Multiplier),
			})
		}
		weekly.Days = append(weekly.Days, planDay)
	}
	return weekly, nil
}

func patientIdentity(patient models.Patient) string {
	if patient.Phone != "" {
		return patient.Phone
	}
	return strconv.FormatInt(patient.ID, 10)
}

func round2(x float64) float64 {
	return math.Round(x*100) / 100
}
