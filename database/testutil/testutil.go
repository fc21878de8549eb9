package testutil

import (
	"dietplan-go-worker/models"
	"io/ioutil"
	"testing"

	"github.com/jinzhu/gorm"
	_ "github.com/jinzhu/gorm/dialects/sqlite"
	"github.com/sirupsen/logrus"
)

// DB opens a private in-memory SQLite database with every worker table.
func DB(tb testing.TB) *gorm.DB {
	tb.Helper()

	db, err := gorm.Open("sqlite3", ":memory:")
	if err != nil {
		tb.Fatalf("open sqlite: %v", err)
	}
	// each connection of :memory: is its own database
	db.DB().SetMaxOpenConns(1)
	db.LogMode(false)

	if err := db.AutoMigrate(models.All()...).Error; err != nil {
		tb.Fatalf("migrate: %v", err)
	}
	tb.Cleanup(func() { db.Close() })
	return db
}

// Logger discards output so tests stay quiet.
func Logger(tb testing.TB) *logrus.Entry {
	tb.Helper()
	logger := logrus.New()
	logger.Out = ioutil.Discard
	return logrus.NewEntry(logger)
}
