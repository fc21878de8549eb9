package log

import (
	"dietplan-go-worker/utils"
	"fmt"
	"net"
	"os"
	"path"
	"path/filepath"
	"time"

	logrustash "github.com/bshuster-repo/logrus-logstash-hook"
	"github.com/elastic/go-elasticsearch/v7"
	"github.com/sirupsen/logrus"
	"gopkg.in/go-extras/elogrus.v7"
)

const hookHost = "dietplan-go-worker"

type LogService struct{}

// LoggerInit opens <log.dir>/<date>/<subject>.log, one file per patient phone or job name.
func (l *LogService) LoggerInit(subject string) *logrus.Logger {
	logger := logrus.New()
	logger.SetLevel(logrus.DebugLevel)
	logger.SetFormatter(&logrus.TextFormatter{
		TimestampFormat: "2006-01-02 15:04:05",
	})

	if src, err := openLogFile(subject); err != nil {
		fmt.Println("open log file fail:", err.Error())
	} else {
		logger.Out = src
	}

	if utils.EnvConfig == nil {
		return logger
	}

	if utils.EnvConfig.Log.ElkEnable == 1 {
		client, err := elasticsearch.NewClient(elasticsearch.Config{
			Addresses: []string{utils.EnvConfig.Log.ElkURL},
		})
		if err != nil {
			logger.Debug(err.Error())
		} else if hook, err := elogrus.NewAsyncElasticHook(client, hookHost, logrus.DebugLevel, utils.EnvConfig.Log.ElkIndex); err != nil {
			logger.Debug(err.Error())
		} else {
			logger.Hooks.Add(hook)
		}
	}

	if utils.EnvConfig.Log.LogstashEnable == 1 {
		conn, err := net.Dial("udp", utils.EnvConfig.Log.LogstashURL)
		if err != nil {
			logger.Debug(err)
		} else {
			hook := logrustash.New(conn, logrustash.DefaultFormatter(logrus.Fields{"type": hookHost, "index": utils.EnvConfig.Log.LogstashIndex}))
			logger.Hooks.Add(hook)
		}
	}

	return logger
}

func openLogFile(subject string) (*os.File, error) {
	dir := "logs"
	if utils.EnvConfig != nil && utils.EnvConfig.Log.Dir != "" {
		dir = utils.EnvConfig.Log.Dir
	}
	if !filepath.IsAbs(dir) {
		if wd, err := os.Getwd(); err == nil {
			dir = filepath.Join(wd, dir)
		}
	}
	logFilePath := path.Join(dir, time.Now().In(utils.Location()).Format("2006-01-02"))
	if err := os.MkdirAll(logFilePath, 0777); err != nil {
		return nil, err
	}
	if subject == "" {
		subject = "worker"
	}
	return os.OpenFile(path.Join(logFilePath, filepath.Base(subject)+".log"), os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0666)
}
