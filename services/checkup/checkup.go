// Package checkup registers patients and their dated biometric checkups.
package checkup

import (
	"dietplan-go-worker/enums"
	"dietplan-go-worker/models"
	"dietplan-go-worker/services/metric"
	"dietplan-go-worker/services/plan"
	"dietplan-go-worker/utils"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

// ErrPatientNotFound is the plan generator's sentinel.
var ErrPatientNotFound = plan.ErrPatientNotFound

var ErrPhoneRequired = errors.New("patient phone is required")

type CheckupInput struct {
	Age            int     `json:"age"`
	Height         float64 `json:"height"`
	Weight         float64 `json:"weight"`
	Bp             string  `json:"bp"`
	Activity       float64 `json:"activity"`
	DietPreference string  `json:"diet_preference"`
	PlanType       string  `json:"plan_type"`
}

type RegistryService struct {
	db     *gorm.DB
	logger *logrus.Entry
}

func NewRegistryService(db *gorm.DB, logger *logrus.Entry) *RegistryService {
	return &RegistryService{db: db, logger: logger}
}

// RegisterPatient returns the stored patient when the phone is already known.
func (r *RegistryService) RegisterPatient(patient models.Patient) (models.Patient, error) {
	patient.Phone = strings.TrimSpace(patient.Phone)
	if patient.Phone == "" {
		return patient, ErrPhoneRequired
	}

	existing, err := r.FindByPhone(patient.Phone)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, ErrPatientNotFound) {
		return patient, err
	}

	insertTime := now()
	patient.ID = 0
	patient.CreatedAt = &insertTime
	patient.UpdatedAt = &insertTime
	if err := r.db.Create(&patient).Error; err != nil {
		return patient, fmt.Errorf("create patient %s: %w", patient.Phone, err)
	}
	r.logger.WithFields(logrus.Fields{"task": "checkup", "patient": patient.Phone, "patient_id": patient.ID}).Info("patient registered")
	return patient, nil
}

func (r *RegistryService) FindByPhone(phone string) (models.Patient, error) {
	var patient models.Patient
	if err := r.db.Where("phone = ?", strings.TrimSpace(phone)).First(&patient).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return patient, fmt.Errorf("%w: %s", ErrPatientNotFound, phone)
		}
		return patient, err
	}
	return patient, nil
}

// Search matches a name or phone prefix.
func (r *RegistryService) Search(query string) ([]models.Patient, error) {
	var patients []models.Patient
	prefix := strings.TrimSpace(query) + "%"
	if err := r.db.Where("name LIKE ? OR phone LIKE ?", prefix, prefix).Order("name asc").Find(&patients).Error; err != nil {
		return nil, err
	}
	return patients, nil
}

// AddCheckup rejects invalid biometrics before anything is stored.
func (r *RegistryService) AddCheckup(patientID int64, input CheckupInput) (models.Checkup, error) {
	var patient models.Patient
	if err := r.db.Where("id = ?", patientID).First(&patient).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return models.Checkup{}, fmt.Errorf("%w: %d", ErrPatientNotFound, patientID)
		}
		return models.Checkup{}, err
	}

	insertTime := now()
	checkup := models.Checkup{
		PatientID:      patientID,
		Age:            input.Age,
		Height:         input.Height,
		Weight:         input.Weight,
		Bp:             strings.TrimSpace(input.Bp),
		Activity:       input.Activity,
		DietPreference: input.DietPreference,
		PlanType:       planType(input.PlanType),
		CreatedAt:      &insertTime,
		UpdatedAt:      &insertTime,
	}
	if err := metric.ApplyToCheckup(&checkup, patient.Gender); err != nil {
		return models.Checkup{}, err
	}
	if err := r.db.Create(&checkup).Error; err != nil {
		return models.Checkup{}, fmt.Errorf("create checkup of patient %d: %w", patientID, err)
	}
	r.logger.WithFields(logrus.Fields{"task": "checkup", "patient": patient.Phone, "checkup_id": checkup.ID, "target_calories": checkup.TargetCalories, "category": checkup.Category}).Info("checkup added")
	return checkup, nil
}

func (r *RegistryService) LatestCheckup(patientID int64) (models.Checkup, error) {
	var checkup models.Checkup
	if err := r.db.Where("patient_id = ?", patientID).Order("id desc").First(&checkup).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			return checkup, fmt.Errorf("%w: latest of patient %d", plan.ErrCheckupNotFound, patientID)
		}
		return checkup, err
	}
	return checkup, nil
}

// History lists checkups oldest first.
func (r *RegistryService) History(patientID int64) ([]models.Checkup, error) {
	var checkups []models.Checkup
	if err := r.db.Where("patient_id = ?", patientID).Order("id asc").Find(&checkups).Error; err != nil {
		return nil, err
	}
	return checkups, nil
}

// LatestCheckups returns the newest checkup of every patient.
func (r *RegistryService) LatestCheckups() ([]models.Checkup, error) {
	var checkups []models.Checkup
	if err := r.db.Where("id IN (?)", r.db.Table("checkups").Select("MAX(id)").Group("patient_id").QueryExpr()).
		Order("id asc").Find(&checkups).Error; err != nil {
		return nil, err
	}
	return checkups, nil
}

// DeleteCheckup removes the checkup with its meals and report snapshot.
func (r *RegistryService) DeleteCheckup(checkupID int64) error {
	tx := r.db.Begin()
	if err := tx.Error; err != nil {
		return err
	}
	if err := tx.Where("checkup_id = ?", checkupID).Delete(&models.AssignedMeal{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("delete meals of checkup %d: %w", checkupID, err)
	}
	if err := tx.Where("checkup_id = ?", checkupID).Delete(&models.PlanReport{}).Error; err != nil {
		tx.Rollback()
		return fmt.Errorf("delete report of checkup %d: %w", checkupID, err)
	}
	result := tx.Where("id = ?", checkupID).Delete(&models.Checkup{})
	if result.Error != nil {
		tx.Rollback()
		return fmt.Errorf("delete checkup %d: %w", checkupID, result.Error)
	}
	if result.RowsAffected == 0 {
		tx.Rollback()
		return fmt.Errorf("%w: %d", plan.ErrCheckupNotFound, checkupID)
	}
	return tx.Commit().Error
}

func planType(requested string) string {
	for _, known := range []string{enums.ThreeMeal, enums.FiveMeal} {
		if strings.EqualFold(strings.TrimSpace(requested), known) {
			return known
		}
	}
	if utils.EnvConfig != nil && utils.EnvConfig.Plan.DefaultType != "" {
		return utils.EnvConfig.Plan.DefaultType
	}
	return enums.ThreeMeal
}

func now() time.Time {
	return time.Now().In(utils.Location())
}
