package db

import (
	"fmt"
	"log"
	"os"
	"sync"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
	constant "liyu1981.xyz/sensor-alarm-service/pkg/common"
	"liyu1981.xyz/sensor-alarm-service/pkg/models"
)

type DB struct {
	Conn *gorm.DB
}

var (
	instance *DB
	once     sync.Once
)

func GetInstance(dialector gorm.Dialector) *DB {
	once.Do(func() {
		var err error
		if instance, err = Open(dialector); err != nil {
			log.Fatal(err)
		}
	})
	return instance
}

// Open connects and migrates without touching the shared instance.
func Open(dialector gorm.Dialector) (*DB, error) {
	var logger = constant.GetLogger()

	logLevel := gormlogger.Silent
	if constant.IsDevelopment() {
		logLevel = gormlogger.Warn
	}

	conn, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(logLevel),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Connected to database with dialector:", zap.String("dialector", dialector.Name()))

	if dialector.Name() == "sqlite" {
		if err := conn.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, fmt.Errorf("failed to enable sqlite foreign key support: %w", err)
		}

		if err := conn.Exec("PRAGMA journal_mode = WAL").Error; err != nil {
			return nil, fmt.Errorf("failed to set sqlite journal mode: %w", err)
		}
	}

	if err := conn.AutoMigrate(&models.AlarmRule{}, &models.AlarmOccurrence{}); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	logger.Info("Database migration completed")

	return &DB{Conn: conn}, nil
}

func UseSqliteDialector() gorm.Dialector {
	return SqliteDialector(os.Getenv(constant.EnvKeyIOTDbPath))
}

// SqliteDialector opens the database file at path, "alarms.db" when empty.
func SqliteDialector(path string) gorm.Dialector {
	if path == "" {
		path = "alarms.db"
	}
	return sqlite.Open(path + "?_foreign_keys=1&_busy_timeout=5000")
}

func UseMemorySqliteDialector() gorm.Dialector {
	return sqlite.Open("file::memory:?cache=shared&_foreign_keys=1")
}

func UsePostgresDialector() gorm.Dialector {
	return PostgresDialector(os.Getenv(constant.EnvKeyIOTDbDSN))
}

func PostgresDialector(dsn string) gorm.Dialector {
	return postgres.Open(dsn)
}
