package main

import (
	"dietplan-go-worker/database/testutil"
	"dietplan-go-worker/enums"
	"dietplan-go-worker/models"
	"dietplan-go-worker/services/dietplan"
	"dietplan-go-worker/services/lock"
	"dietplan-go-worker/structs"
	"encoding/json"
	"io/ioutil"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

func quietLogger(string) *logrus.Logger {
	logger := logrus.New()
	logger.Out = ioutil.Discard
	return logger
}

func delivery(t *testing.T, param structs.DietPlanQueueParam) amqp.Delivery {
	t.Helper()
	body, err := json.Marshal(param)
	if err != nil {
		t.Fatal(err)
	}
	return amqp.Delivery{Body: body}
}

func TestDietPlanHandlerUsesGivenPool(t *testing.T) {
	db := testutil.DB(t)
	testutil.SeedCatalog(t, db, 3)
	patient := testutil.SeedPatient(t, db, "9000000901", "", "", "")
	checkup := testutil.SeedCheckup(t, db, patient.ID, enums.ThreeMeal)

	var notified []structs.DietPlanQueueParam
	handler := newDietPlanHandler(db, lock.NewLocalLocker(),
		dietplan.WithLoggerFactory(quietLogger),
		dietplan.WithNotifier(func(p structs.DietPlanQueueParam) { notified = append(notified, p) }),
	)

	deliveries := make(chan amqp.Delivery, 3)
	deliveries <- amqp.Delivery{Body: []byte("not json")}
	deliveries <- delivery(t, structs.DietPlanQueueParam{Type: enums.ProcessSingle, CheckupID: checkup.ID, TaskID: 7, QueueType: "other-queue"})
	deliveries <- delivery(t, structs.DietPlanQueueParam{Type: enums.ProcessSingle, CheckupID: checkup.ID, TaskID: 8, QueueType: "diet-plan"})
	close(deliveries)

	handler(nil, "diet-plan", deliveries)

	meals := 0
	db.Model(&models.AssignedMeal{}).Where("checkup_id = ?", checkup.ID).Count(&meals)
	if meals != 21 {
		t.Fatalf("stored %d meals", meals)
	}
	received := 0
	db.Model(&models.ActivityLog{}).Where("log_name = ?", "schedule.go.job.received").Count(&received)
	if received != 1 {
		t.Fatalf("%d received rows", received)
	}
	if len(notified) != 1 || notified[0].TaskID != 8 {
		t.Fatalf("unexpected callbacks %+v", notified)
	}
}

func TestInsertActivityLog(t *testing.T) {
	db := testutil.DB(t)
	if err := insertActivityLog(db, "schedule.go.job.init", "dietplan-worker init"); err != nil {
		t.Fatal(err)
	}
	var entity models.ActivityLog
	if err := db.Where("log_name = ?", "schedule.go.job.init").First(&entity).Error; err != nil {
		t.Fatal(err)
	}
	if entity.Properties != `"dietplan-worker init"` {
		t.Fatalf("properties %s", entity.Properties)
	}
}
