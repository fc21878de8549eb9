package utils

import (
	"dietplan-go-worker/enums"
	"dietplan-go-worker/structs"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

var EnvConfig *structs.EnviromentModel

type EnvService struct{}

func (e *EnvService) InitEnv() {
	e.loadDotEnv()
	e.setDefaults()
	e.loadConfig()
	e.configToModel()
}

// .env is optional, values already exported in the shell win
func (e *EnvService) loadDotEnv() {
	if _, err := os.Stat(".env"); err != nil {
		return
	}
	if err := godotenv.Load(); err != nil {
		fmt.Println("load .env fail:", err.Error())
	}
}

func (e *EnvService) setDefaults() {
	viper.SetDefault("concurrentAmount", 4)
	viper.SetDefault("rabbitmq.queue", "diet-plan")
	viper.SetDefault("redis.lock_ttl", "30s")
	viper.SetDefault("log.dir", "logs")
	viper.SetDefault("server.timezone", "Asia/Kolkata")
	viper.SetDefault("router.port", 8080)
	viper.SetDefault("plan.default_type", enums.ThreeMeal)
}

func (e *EnvService) loadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			// no config.yml, fall back to environment variables
			viper.AutomaticEnv()
			viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
		} else {
			panic(fmt.Errorf("Fatal error config file: %s \n", err))
		}
	}
}

func (e *EnvService) configToModel() {
	var config structs.EnviromentModel
	config.Database.Client = viper.GetString("database.client")
	config.Database.Host = viper.GetString("database.host")
	config.Database.User = viper.GetString("database.user")
	config.Database.Password = viper.GetString("database.password")
	config.Database.Db = viper.GetString("database.name")
	config.Database.MaxIdle = uint(viper.GetInt("database.max_idle"))
	config.Database.MaxOpenConn = uint(viper.GetInt("database.max_open_conn"))
	config.Database.MaxLifeTime = viper.GetString("database.max_life_time")
	config.Database.Params = viper.GetString("database.params")
	config.Database.Port = viper.GetString("database.port")
	config.Database.LogEnable = viper.GetInt("database.log_enable")
	config.ConcurrentAmount = viper.GetInt("concurrentAmount")
	config.RabbitMQ.Domain = viper.GetString("rabbitmq.domain")
	config.RabbitMQ.Queue = viper.GetString("rabbitmq.queue")
	config.Redis.Enable = viper.GetInt("redis.enable")
	config.Redis.Addr = viper.GetString("redis.addr")
	config.Redis.Password = viper.GetString("redis.password")
	config.Redis.DB = viper.GetInt("redis.db")
	config.Redis.LockTTL = viper.GetString("redis.lock_ttl")
	config.Log.Dir = viper.GetString("log.dir")
	config.Log.ElkEnable = viper.GetInt("log.elk.enable")
	config.Log.ElkIndex = viper.GetString("log.elk.index")
	config.Log.ElkURL = viper.GetString("log.elk.url")
	config.Log.LogstashEnable = viper.GetInt("log.logstash.enable")
	config.Log.LogstashURL = viper.GetString("log.logstash.url")
	config.Log.LogstashIndex = viper.GetString("log.logstash.index")
	config.Server.AppAPI = viper.GetString("server.app_api")
	config.Server.Timezone = viper.GetString("server.timezone")
	config.Router.Port = viper.GetInt("router.port")
	config.Plan.DefaultType = viper.GetString("plan.default_type")
	EnvConfig = &config
}

// Location is the configured business timezone, local time when unset or unknown.
func Location() *time.Location {
	if EnvConfig == nil || EnvConfig.Server.Timezone == "" {
		return time.Local
	}
	location, err := time.LoadLocation(EnvConfig.Server.Timezone)
	if err != nil {
		return time.Local
	}
	return location
}

// LockTTL parses redis.lock_ttl, 30 seconds when missing or invalid.
func LockTTL() time.Duration {
	if EnvConfig != nil {
		if ttl, err := time.ParseDuration(EnvConfig.Redis.LockTTL); err == nil && ttl > 0 {
			return ttl
		}
	}
	return 30 * time.Second
}
