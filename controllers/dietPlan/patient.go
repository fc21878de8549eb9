package dietPlan

import (
	"dietplan-go-worker/models"
	"dietplan-go-worker/services/checkup"
	"dietplan-go-worker/services/report"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (ctl *Controller) registry(c *gin.Context) *checkup.RegistryService {
	return checkup.NewRegistryService(ctl.db, ctl.logger.WithFields(logrus.Fields{"task": "api", "path": c.FullPath()}))
}

func (ctl *Controller) RegisterPatient(c *gin.Context) {
	var patient models.Patient
	if err := c.ShouldBindJSON(&patient); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
		return
	}
	stored, err := ctl.registry(c).RegisterPatient(patient)
	if err != nil {
		ctl.fail(c, 0, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "ok", Data: stored})
}

// SearchPatients looks up an exact phone when given, else a name or phone prefix.
func (ctl *Controller) SearchPatients(c *gin.Context) {
	registry := ctl.registry(c)
	if phone := c.Query("phone"); phone != "" {
		patient, err := registry.FindByPhone(phone)
		if err != nil {
			ctl.fail(c, 0, err)
			return
		}
		c.JSON(http.StatusOK, Response{Success: true, Message: "ok", Data: []models.Patient{patient}})
		return
	}
	patients, err := registry.Search(c.Query("q"))
	if err != nil {
		ctl.fail(c, 0, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "ok", Data: patients})
}

func (ctl *Controller) AddCheckup(c *gin.Context) {
	patientID, ok := idParam(c, "patient")
	if !ok {
		return
	}
	var input checkup.CheckupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, Response{Success: false, Message: err.Error()})
		return
	}
	stored, err := ctl.registry(c).AddCheckup(patientID, input)
	if err != nil {
		ctl.fail(c, 0, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "ok", Data: stored})
}

func (ctl *Controller) CheckupHistory(c *gin.Context) {
	patientID, ok := idParam(c, "patient")
	if !ok {
		return
	}
	checkups, err := ctl.registry(c).History(patientID)
	if err != nil {
		ctl.fail(c, 0, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "ok", Data: checkups})
}

func (ctl *Controller) LatestCheckup(c *gin.Context) {
	patientID, ok := idParam(c, "patient")
	if !ok {
		return
	}
	latest, err := ctl.registry(c).LatestCheckup(patientID)
	if err != nil {
		ctl.fail(c, 0, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "ok", Data: latest})
}

// DeleteCheckup holds the checkup lock so no plan is written mid-delete.
func (ctl *Controller) DeleteCheckup(c *gin.Context) {
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

	if err := ctl.registry(c).DeleteCheckup(checkupID); err != nil {
		ctl.fail(c, checkupID, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "ok"})
}

// GetReport returns the summary saved with the last generated plan.
func (ctl *Controller) GetReport(c *gin.Context) {
	checkupID, ok := checkupParam(c)
	if !ok {
		return
	}
	snapshot, err := report.NewReportService(ctl.db, ctl.logger).Snapshot(checkupID)
	if err != nil {
		ctl.fail(c, checkupID, err)
		return
	}
	c.JSON(http.StatusOK, Response{Success: true, Message: "ok", Data: snapshot})
}
