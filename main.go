package main

import (
	"context"
	"dietplan-go-worker/controllers/check"
	"dietplan-go-worker/database"
	"dietplan-go-worker/models"
	"dietplan-go-worker/router"
	"dietplan-go-worker/services"
	"dietplan-go-worker/services/dietplan"
	"dietplan-go-worker/services/lock"
	logLib "dietplan-go-worker/services/log"
	"dietplan-go-worker/services/rabbitmq"
	"dietplan-go-worker/services/trackLog"
	"dietplan-go-worker/structs"
	"dietplan-go-worker/utils"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jinzhu/gorm"
	"github.com/sirupsen/logrus"
	"github.com/streadway/amqp"
)

func main() {
	var envService utils.EnvService
	envService.InitEnv()
	fmt.Println("config loaded...")

	// one pool for the whole process, shared by the router and the queue
	database.InitDatabasePool()
	db := database.Mysql
	if err := database.Migrate(db); err != nil {
		panic(err)
	}
	_ = insertActivityLog(db, "schedule.go.job.init", "dietplan-worker init")
	trackLog.LogTrackInit()

	var logService logLib.LogService
	mainLogger := logService.LoggerInit("main").WithFields(logrus.Fields{"task": "main", "name": "main"})
	defer func() {
		mainLogger.Error("worker shutdown")
		database.Close()
		fmt.Println("worker shutdown")
	}()

	locker := lock.FromConfig(mainLogger)

	route := router.Router(db, locker, mainLogger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := route.Run(fmt.Sprintf(":%d", utils.EnvConfig.Router.Port)); err != nil {
			mainLogger.WithField("error_message", err.Error()).Error("router stopped")
		}
	}()

	DietPlanQueue(newDietPlanHandler(db, locker))

	wg.Wait()
}

func DietPlanQueue(handler rabbitmq.Handler) {
	queue := utils.EnvConfig.RabbitMQ.Queue
	conn := rabbitmq.NewConnection(check.ConnectionName, []string{queue})

	if err := conn.Connect(); err != nil {
		panic(err)
	}
	if err := conn.BindQueue(); err != nil {
		panic(err)
	}
	deliveries, err := conn.Consume()
	if err != nil {
		panic(err)
	}

	for q, d := range deliveries {
		go conn.HandleConsumedDeliveries(q, d, handler)
	}
	log.Printf(" [ %s ] [ %s ] Waiting for messages. To exit press CTRL+C", check.ConnectionName, queue)
}

// newDietPlanHandler runs every delivery against the given pool.
func newDietPlanHandler(db *gorm.DB, locker lock.Locker, opts ...dietplan.Option) rabbitmq.Handler {
	return func(c *rabbitmq.Connection, q string, deliveries <-chan amqp.Delivery) {
		for d := range deliveries {
			trackLog.Info(fmt.Sprintf("Queue[%s] received: %s", q, string(d.Body)), true)

			var queueParam structs.DietPlanQueueParam
			if err := json.Unmarshal(d.Body, &queueParam); err != nil {
				trackLog.Error(fmt.Sprintf("Queue[%s] bad message: %s", q, err.Error()), true)
				continue
			}
			if q != queueParam.QueueType {
				notifyMismatchQueueApi(queueParam.TaskID, q, queueParam.QueueType)
				continue
			}

			runID := uuid.NewString()
			_ = insertActivityLog(db, "schedule.go.job.received", map[string]interface{}{
				"run_id":     runID,
				"task_id":    queueParam.TaskID,
				"queue":      q,
				"type":       queueParam.Type,
				"checkup_id": queueParam.CheckupID,
			})

			started := time.Now()
			job := dietplan.NewDietPlanService(db, locker, opts...)
			job.Start(context.Background(), queueParam)
			trackLog.Info(fmt.Sprintf("Queue[%s] run %s task %d done in %s, errors: %d", q, runID, queueParam.TaskID, time.Since(started), len(job.Errors)), true)
		}
	}
}

func insertActivityLog(db *gorm.DB, jobname string, data interface{}) error {
	activityLogJSON, _ := json.Marshal(data)

	insertTime := time.Now().In(utils.Location())
	activityLogEntity := models.ActivityLog{
		LogName:     jobname,
		Description: "golang-worker log",
		Properties:  string(activityLogJSON),
		CreatedAt:   &insertTime,
		UpdatedAt:   &insertTime,
	}
	return db.Create(&activityLogEntity).Error
}

func notifyMismatchQueueApi(taskId uint, queue, queueType string) {
	if utils.EnvConfig == nil || utils.EnvConfig.Server.AppAPI == "" {
		trackLog.Error(fmt.Sprintf("[MismatchQueue] task_id: %d, mismatch queue: %s, queue_type: %s, no callback configured", taskId, queue, queueType), true)
		return
	}
	endpoint := utils.EnvConfig.Server.AppAPI + "/api/v1/workerCallback/mismatchQueue"
	body := structs.MismatchQueueResponse{
		TaskId: taskId,
		Queue:  queue,
	}
	trackLog.Info(fmt.Sprintf("[MismatchQueue] task_id: %d, mismatch queue: %s, queue_type: %s, callback url: %s", taskId, queue, queueType, endpoint), true)
	if _, err := services.HttpRequest(http.MethodPost, endpoint, nil, body); err != nil {
		trackLog.Error(err.Error(), true)
	}
}
