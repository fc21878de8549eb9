package database

import (
	"dietplan-go-worker/models"
	"dietplan-go-worker/utils"
	"fmt"
	"sync"
	"time"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/mysql"
)

var (
	Mysql *gorm.DB
	mutex = &sync.Mutex{}
)

// InitDatabasePool opens the shared connection pool, reusing a live one.
func InitDatabasePool() {
	mutex.Lock()
	defer mutex.Unlock()

	if Mysql != nil {
		if err := Mysql.DB().Ping(); err == nil {
			return
		}
	}

	db, err := Open()
	if err != nil {
		panic(err)
	}
	Mysql = db
}

// Open connects with the settings in utils.EnvConfig.Database.
func Open() (*gorm.DB, error) {
	config := utils.EnvConfig.Database
	client := config.Client
	if client == "" {
		client = "mysql"
	}
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?%s", config.User, config.Password, config.Host, config.Port, config.Db, config.Params)
	db, err := gorm.Open(client, dsn)
	if err != nil {
		return nil, fmt.Errorf("open %s %s@%s: %w", client, config.Db, config.Host, err)
	}

	if config.MaxIdle > 0 {
		db.DB().SetMaxIdleConns(int(config.MaxIdle))
	}
	if config.MaxOpenConn > 0 {
		db.DB().SetMaxOpenConns(int(config.MaxOpenConn))
	}
	if lifeTime, err := time.ParseDuration(config.MaxLifeTime); err == nil {
		db.DB().SetConnMaxLifetime(lifeTime)
	}
	db.LogMode(config.LogEnable == 1)
	return db, nil
}

// Migrate creates or updates the worker tables.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(models.All()...).Error
}

// Close releases the shared pool.
func Close() {
	mutex.Lock()
	defer mutex.Unlock()
	if Mysql != nil {
		Mysql.Close()
		Mysql = nil
	}
}
