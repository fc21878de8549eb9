package check

import (
	"dietplan-go-worker/services/rabbitmq"
	"dietplan-go-worker/services/trackLog"
	"encoding/json"
	"fmt"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
)

// ConnectionName is the rabbitmq pool entry the worker consumes from.
const ConnectionName = "dietplan"

type AliveResponse struct {
	Success bool      `json:"success"`
	Message string    `json:"message"`
	Info    CheckInfo `json:"info"`
}

type CheckInfo struct {
	Queues     []string `json:"queue"`
	RoutineNum int      `json:"routine_num"`
}

// CheckAlive inspects the consumed queues and reconnects a dropped broker connection.
func CheckAlive(c *gin.Context) {
	rabbitConn := rabbitmq.GetConnection(ConnectionName)
	resMsg := "main thread alive"
	checkInfo := CheckInfo{}

	if rabbitConn == nil {
		resMsg = "Get connection pool fail"
		trackLog.Error(resMsg, false)
	} else {
		if rabbitConn.Conn == nil || rabbitConn.Conn.IsClosed() {
			resMsg = "Api detect Connection lost, Reconnecting.."
			trackLog.Error(resMsg, false)
			if err := rabbitConn.Reconnect(); err != nil {
				resMsg = fmt.Sprintf("reconnect rabbit fail: %s", err.Error())
				trackLog.Error(resMsg, false)
			}
		}
		if rabbitConn.Channel != nil {
			for _, q := range rabbitConn.Queues {
				queue, queueErr := rabbitConn.Channel.QueueInspect(q)
				if queueErr != nil {
					resMsg = fmt.Sprintf("Queue[%s] error: %s", q, queueErr.Error())
					trackLog.Error(resMsg, false)
					continue
				}
				queueJson, _ := json.Marshal(queue)
				checkInfo.Queues = append(checkInfo.Queues, string(queueJson))
				trackLog.Info(fmt.Sprintf("Queue[%s]: %s", q, queueJson), false)
			}
		} else {
			resMsg = "Channel get fail"
			trackLog.Error(resMsg, false)
		}

		// give a pending close notification one second to show up
		select {
		case err := <-rabbitConn.ApiErr:
			trackLog.Error(fmt.Sprintf("api error: %s", err.Error()), false)
			if err := rabbitConn.Reconnect(); err != nil {
				resMsg = fmt.Sprintf("reconnect rabbit fail: %s", err.Error())
				trackLog.Error(resMsg, false)
			}
		case <-time.After(time.Second):
		}
	}

	checkInfo.RoutineNum = runtime.NumGoroutine()
	trackLog.Info(fmt.Sprintf("goroutine number: %d", checkInfo.RoutineNum), false)

	c.JSON(http.StatusOK, AliveResponse{Success: true, Message: resMsg, Info: checkInfo})
}
