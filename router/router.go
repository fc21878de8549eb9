package router

import (
	"dietplan-go-worker/controllers/check"
	"dietplan-go-worker/controllers/dietPlan"
	"dietplan-go-worker/controllers/readProbe"
	"dietplan-go-worker/services/lock"

	"github.com/gin-gonic/gin"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
)

func Router(db *gorm.DB, locker lock.Locker, logger *logrus.Entry) *gin.Engine {
	route := gin.Default()

	route.GET("/read-probe", readProbe.Probe)
	route.GET("/check-live", check.CheckAlive)

	planController := dietPlan.NewController(db, locker, logger)
	checkups := route.Group("/checkups/:id")
	{
		checkups.GET("/plan", planController.GetPlan)
		checkups.POST("/plan/regenerate", planController.RegeneratePlan)
		checkups.GET("/summary", planController.GetSummary)
		checkups.GET("/report", planController.GetReport)
		checkups.DELETE("", planController.DeleteCheckup)
	}

	patients := route.Group("/patients")
	{
		patients.POST("", planController.RegisterPatient)
		patients.GET("", planController.SearchPatients)
		patients.POST("/:id/checkups", planController.AddCheckup)
		patients.GET("/:id/checkups", planController.CheckupHistory)
		patients.GET("/:id/checkups/latest", planController.LatestCheckup)
	}

	return route
}
