package trackLog

import (
	"dietplan-go-worker/services/log"
	"fmt"

	"github.com/sirupsen/logrus"
)

var logTracker *logrus.Entry

func LogTrackInit() {
	var trackerService log.LogService
	logTracker = trackerService.LoggerInit("tracker").WithFields(logrus.Fields{"task": "track", "name": "tracker"})
}

func Info(message string, needWriteLog bool) {
	if needWriteLog && logTracker != nil {
		logTracker.Info(message)
	}
	fmt.Println(message)
}

func Error(message string, needWriteLog bool) {
	if needWriteLog && logTracker != nil {
		logTracker.Error(message)
	}
	fmt.Println(message)
}
