package dietPlan

import (
	"dietplan-go-worker/services/checkup"
	"dietplan-go-worker/services/lock"
	"dietplan-go-worker/services/metric"
	"dietplan-go-worker/services/plan"
	"dietplan-go-worker/services/report"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}

type Controller struct {
	db     *gorm.DB
	locker lock.Locker
	logger *logrus.Entry
}

func NewController(db *gorm.DB, locker lock.Locker, logger *logrus.Entry) *Controller {
	return &Controller{db: db, locker: locker, logger: logger}
}

// GetPlan makes sure the week exists, then returns it.
func (ctl *Controller) GetPlan(c *gin.Context) {
	ctl.writePlan(c, false)
}

func (ctl *Controller) RegeneratePlan(c *gin.Context) {
	ctl.writePlan(c, true)
}

func (ctl *Controller) GetSummary(c *gin.Context) {
	checkupID, ok := checkupParam(c)
	if !ok {
		return
	}
	summary, err := report.NewReportService(ctl.db, ctl.logger).Build(checkupID)
	if err != nil {
		ctl.fail(c, checkupID, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "ok", Data: summary})
}

func (ctl *Controller) writePlan(c *gin.Context, regenerate bool) {
	checkupID, ok := checkupParam(c)
	if !ok {
		return
	}

	unlock, err := ctl.locker.Lock(c.Request.Context(), checkupID)
	if err != nil {
		ctl.fail(c, checkupID, err)
		return
	}
	defer unlock()

	logger := ctl.logger.WithFields(logrus.Fields{"task": "api", "checkup_id": checkupID})
	planService := plan.NewPlanService(ctl.db, logger)
	var result plan.Result
	if regenerate {
		result, err = planService.Regenerate(checkupID)
	} else {
		result, err = planService.Ensure(checkupID)
	}
	if err != nil {
		ctl.fail(c, checkupID, err)
		return
	}
	if result.Generated {
		if _, err := report.NewReportService(ctl.db, logger).Save(checkupID); err != nil {
			logger.WithField("error_message", err.Error()).Warn("save plan report fail")
		}
	}

	weekly, err := planService.WeeklyPlan(checkupID)
	if err != nil {
		ctl.fail(c, checkupID, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: result.Before.String(), Data: weekly})
}

func (ctl *Controller) fail(c *gin.Context, checkupID int64, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, plan.ErrCheckupNotFound), errors.Is(err, plan.ErrPatientNotFound), errors.Is(err, gorm.ErrRecordNotFound):
		status = http.StatusNotFound
	case errors.Is(err, metric.ErrInvalidBiometrics), errors.Is(err, checkup.ErrPhoneRequired):
		status = http.StatusBadRequest
	case c.Request.Context().Err() != nil:
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		ctl.logger.WithFields(logrus.Fields{"task": "api", "checkup_id": checkupID, "error_message": err.Error()}).Error("plan request fail")
	}
	c.JSON(status, Response{Success: false, Message: err.Error()})
}

func checkupParam(c *gin.Context) (int64, bool) {
	return idParam(c, "checkup")
}

func idParam(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: "invalid " + name + " id"})
		return 0, false
	}
	return id, true
}
