package plan

import (
	"dietplan-go-worker/models"
	"errors"
	"fmt"

	"github.com/jinzhu/gorm"
)

var (
	ErrCheckupNotFound = errors.New("checkup not found")
	ErrPatientNotFound = errors.New("patient not found")
)

// Assignment is a stored meal together with its catalog food.
type Assignment struct {
	Meal models.AssignedMeal
	Food models.FoodItem
}

func loadCheckup(db *gorm.DB, checkupID int64) (models.Checkup, error) {
	var checkup models.Checkup
	if err := db.Where("id = ?", checkupID).First(&checkup).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return checkup, fmt.Errorf("%w: %d", ErrCheckupNotFound, checkupID)
		}
		return checkup, fmt.Errorf("load checkup %d: %w", checkupID, err)
	}
	return checkup, nil
}

func loadPatient(db *gorm.DB, patientID int64) (models.Patient, error) {
	var patient models.Patient
	if err := db.Where("id = ?", patientID).First(&patient).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return patient, fmt.Errorf("%w: %d", ErrPatientNotFound, patientID)
		}
		return patient, fmt.Errorf("load patient %d: %w", patientID, err)
	}
	return patient, nil
}

// loadCatalog keeps primary key order so shuffles start from a stable list.
func loadCatalog(db *gorm.DB) ([]models.FoodItem, error) {
	var foods []models.FoodItem
	if err := db.Order("id asc").Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("load food catalog: %w", err)
	}
	return foods, nil
}

func countMeals(db *gorm.DB, checkupID int64) (int, error) {
	count := 0
	if err := db.Model(&models.AssignedMeal{}).Where("checkup_id = ?", checkupID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count assigned meals of checkup %d: %w", checkupID, err)
	}
	return count, nil
}

// Assignments loads a checkup's stored meals with their foods, in insertion order.
func Assignments(db *gorm.DB, checkupID int64) ([]Assignment, error) {
	var meals []models.AssignedMeal
	if err := db.Where("checkup_id = ?", checkupID).Order("id asc").Find(&meals).Error; err != nil {
		return nil, fmt.Errorf("load assigned meals of checkup %d: %w", checkupID, err)
	}
	if len(meals) == 0 {
		return nil, nil
	}

	var foodIDs []int64
	for _, meal := range meals {
		foodIDs = append(foodIDs, meal.FoodItemID)
	}
	var foods []models.FoodItem
	if err := db.Where("id in (?)", foodIDs).Find(&foods).Error; err != nil {
		return nil, fmt.Errorf("load foods of checkup %d: %w", checkupID, err)
	}
	foodMap := make(map[int64]models.FoodItem, len(foods))
	for _, food := range foods {
		foodMap[food.ID] = food
	}

	assignments := make([]Assignment, 0, len(meals))
	for _, meal := range meals {
		// a food removed from the catalog still shows with its stored quantity
		assignments = append(assignments, Assignment{Meal: meal, Food: foodMap[meal.FoodItemID]})
	}
	return assignments, nil
}
