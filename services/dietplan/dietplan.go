// Package dietplan runs the diet-plan queue job for one checkup or for the
// latest checkup of every patient.
package dietplan

import (
	"context"
	"dietplan-go-worker/enums"
	"dietplan-go-worker/models"
	"dietplan-go-worker/services"
	"dietplan-go-worker/services/checkup"
	"dietplan-go-worker/services/lock"
	"dietplan-go-worker/services/log"
	"dietplan-go-worker/services/plan"
	"dietplan-go-worker/services/report"
	"dietplan-go-worker/structs"
	"dietplan-go-worker/utils"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync"
	"time"

	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"
)

const (
	logName           = "schedule.go.dietplan"
	callbackPath      = "/api/v1/workerCallback/dietPlan"
	defaultConcurrent = 4
)

type Option func(*DietPlanService)

// WithNotifier replaces the HTTP job-done callback.
func WithNotifier(notify func(structs.DietPlanQueueParam)) Option {
	return func(d *DietPlanService) { d.notify = notify }
}

// WithLoggerFactory replaces the per-subject file loggers.
func WithLoggerFactory(factory func(subject string) *logrus.Logger) Option {
	return func(d *DietPlanService) { d.newLogger = factory }
}

type DietPlanService struct {
	sync.Mutex
	db         *gorm.DB
	locker     lock.Locker
	queueParam structs.DietPlanQueueParam
	statistic  structs.StatisticModel
	notify     func(structs.DietPlanQueueParam)
	newLogger  func(subject string) *logrus.Logger
	Errors     []structs.ErrorModel
}

func NewDietPlanService(db *gorm.DB, locker lock.Locker, opts ...Option) *DietPlanService {
	d := &DietPlanService{db: db, locker: locker}
	d.notify = d.JobDoneNotify
	d.newLogger = func(subject string) *logrus.Logger {
		var logService log.LogService
		return logService.LoggerInit(subject)
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Start runs one queue message to completion, then records and reports it.
func (d *DietPlanService) Start(ctx context.Context, queueParam structs.DietPlanQueueParam) {
	if queueParam.IsDie {
		panic(fmt.Sprintf("diet plan task %d asked to die", queueParam.TaskID))
	}
	d.queueParam = queueParam
	d.statistic = structs.StatisticModel{}
	d.Errors = nil

	logwg := d.newLogger("dietplan").WithFields(logrus.Fields{"task": "dietplan", "task_id": queueParam.TaskID, "type": queueParam.Type})

	switch queueParam.Type {
	case enums.ProcessSingle:
		logwg.WithField("checkup_id", queueParam.CheckupID).Info("start single checkup")
		d.statistic.TotalCheckup = 1
		patient := d.process(ctx, queueParam.CheckupID)
		d.finish(logwg, queueParam.CheckupID, patient)

	case enums.ProcessAll:
		registry := checkup.NewRegistryService(d.db, logwg)
		checkups, err := registry.LatestCheckups()
		if err != nil {
			d.handleError(0, err)
			d.finish(logwg, 0, "")
			return
		}
		logwg.WithField("total_checkup", len(checkups)).Info("checkups ready")
		d.statistic.TotalCheckup = len(checkups)

		g, gctx := errgroup.WithContext(ctx)
		g.SetLimit(concurrentAmount())
		for _, c := range checkups {
			checkupID := c.ID
			g.Go(func() error {
				d.process(gctx, checkupID)
				return nil
			})
		}
		_ = g.Wait()
		d.finish(logwg, 0, "")

	default:
		d.handleError(queueParam.CheckupID, fmt.Errorf("unknown process type %q", queueParam.Type))
		d.finish(logwg, queueParam.CheckupID, "")
	}
}

// process returns the patient phone for the activity log, empty when unknown.
func (d *DietPlanService) process(ctx context.Context, checkupID int64) (patient string) {
	defer func() {
		if r := recover(); r != nil {
			d.handleError(checkupID, fmt.Errorf("unexpected panic: %v", r))
		}
	}()

	var checkupEntity models.Checkup
	if err := d.db.Where("id = ?", checkupID).First(&checkupEntity).Error; err != nil {
		if gorm.IsRecordNotFoundError(err) {
			err = fmt.Errorf("%w: %d", plan.ErrCheckupNotFound, checkupID)
		}
		d.handleError(checkupID, err)
		return ""
	}
	var patientEntity models.Patient
	if err := d.db.Where("id = ?", checkupEntity.PatientID).First(&patientEntity).Error; err != nil {
		d.handleError(checkupID, fmt.Errorf("load patient of checkup %d: %w", checkupID, err))
		return ""
	}
	patient = patientEntity.Phone

	logwg := d.newLogger(subjectOf(patientEntity)).WithFields(logrus.Fields{"task": "dietplan", "task_id": d.queueParam.TaskID, "patient": patient, "checkup_id": checkupID})

	unlock, err := d.locker.Lock(ctx, checkupID)
	if err != nil {
		logwg.WithField("error_message", err.Error()).Error("lock checkup fail")
		d.handleError(checkupID, err)
		return patient
	}
	defer unlock()

	planService := plan.NewPlanService(d.db, logwg)
	var result plan.Result
	if d.queueParam.Regenerate {
		result, err = planService.Regenerate(checkupID)
	} else {
		result, err = planService.Ensure(checkupID)
	}
	if err != nil {
		logwg.WithField("error_message", err.Error()).Error("plan generation fail")
		d.handleError(checkupID, err)
		return patient
	}

	if _, err := report.NewReportService(d.db, logwg).Save(checkupID); err != nil {
		logwg.WithField("error_message", err.Error()).Error("save plan report fail")
		d.handleError(checkupID, err)
		return patient
	}

	d.Lock()
	if result.Generated {
		d.statistic.OKCheckup++
	} else {
		d.statistic.SkipCheckup++
	}
	d.statistic.MealGaps += len(result.Gaps)
	d.Unlock()

	logwg.WithFields(logrus.Fields{"before": result.Before.String(), "generated": result.Generated, "meals": result.Meals, "gaps": len(result.Gaps)}).Info("checkup done")
	return patient
}

func (d *DietPlanService) finish(logwg *logrus.Entry, checkupID int64, patient string) {
	result := len(d.Errors) == 0
	if err := d.insertActivityLog(checkupID, patient, result); err != nil {
		logwg.WithField("error_message", err.Error()).Error("insert activity log fail")
	}
	d.notify(d.queueParam)
	logwg.WithFields(logrus.Fields{"result": result, "ok_checkup": d.statistic.OKCheckup, "fail_checkup": d.statistic.FailCheckup, "skip_checkup": d.statistic.SkipCheckup}).Info("job done")
}

// insertActivityLog also leaves the JSON on queueParam.Result for the callback.
func (d *DietPlanService) insertActivityLog(checkupID int64, patient string, result bool) error {
	activityLogJSONModel := structs.ActivityLogJsonModel{
		Type:      d.queueParam.Type,
		CheckupID: checkupID,
		Patient:   patient,
		Result:    result,
		Statistic: d.statistic,
	}
	if result {
		activityLogJSONModel.Message = "ok"
	} else {
		activityLogJSONModel.Message = d.Errors[0].ErrorMessage
		activityLogJSONModel.Messages = d.Errors
	}

	activityLogJSON, err := json.Marshal(activityLogJSONModel)
	if err != nil {
		return err
	}
	d.queueParam.Result = string(activityLogJSON)

	insertTime := time.Now().In(utils.Location())
	activityLogEntity := models.ActivityLog{
		LogName:     logName,
		Description: "weekly diet plan generation",
		SubjectID:   checkupID,
		SubjectType: "checkup",
		Properties:  string(activityLogJSON),
		CreatedAt:   &insertTime,
		UpdatedAt:   &insertTime,
	}
	return d.db.Create(&activityLogEntity).Error
}

func (d *DietPlanService) JobDoneNotify(queueParam structs.DietPlanQueueParam) {
	if utils.EnvConfig == nil || utils.EnvConfig.Server.AppAPI == "" {
		return
	}
	endpoint := utils.EnvConfig.Server.AppAPI + callbackPath
	fmt.Println("callback url", endpoint, "task_id", queueParam.TaskID)
	if _, err := services.HttpRequest(http.MethodPost, endpoint, nil, queueParam); err != nil {
		fmt.Println(err.Error())
	}
}

func (d *DietPlanService) handleError(checkupID int64, err error) {
	d.Lock()
	defer d.Unlock()
	d.Errors = append(d.Errors, structs.ErrorModel{
		CheckupID:    checkupID,
		ErrorMessage: err.Error(),
	})
	d.statistic.FailCheckup++
}

func subjectOf(patient models.Patient) string {
	if patient.Phone != "" {
		return patient.Phone
	}
	return "patient-" + strconv.FormatInt(patient.ID, 10)
}

func concurrentAmount() int {
	if utils.EnvConfig != nil && utils.EnvConfig.ConcurrentAmount > 0 {
		return utils.EnvConfig.ConcurrentAmount
	}
	return defaultConcurrent
}
