package log

import (
	"dietplan-go-worker/structs"
	"dietplan-go-worker/utils"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestLoggerInitWritesSubjectFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "dietplan-log")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)

	previous := utils.EnvConfig
	utils.EnvConfig = &structs.EnviromentModel{}
	utils.EnvConfig.Log.Dir = dir
	defer func() { utils.EnvConfig = previous }()

	var logService LogService
	logger := logService.LoggerInit("9876543210")
	logger.WithField("task", "plan").Info("plan generated")

	file := filepath.Join(dir, time.Now().In(utils.Location()).Format("2006-01-02"), "9876543210.log")
	content, err := ioutil.ReadFile(file)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(content), "plan generated") || !strings.Contains(string(content), "task=plan") {
		t.Fatalf("unexpected log content %q", content)
	}
}
