package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gorm.io/gorm"
	"liyu1981.xyz/sensor-alarm-service/pkg/common"
	"liyu1981.xyz/sensor-alarm-service/pkg/db"
	"liyu1981.xyz/sensor-alarm-service/pkg/notify"
)

var ErrInvalidConfig = errors.New("invalid configuration")

const (
	DBTypeFile     = "file"
	DBTypeMemory   = "memory"
	DBTypePostgres = "postgres"

	DefaultHTTPHostPort = ":1080"
	DefaultRate         = 5.0
	DefaultBurst        = 10
)

type Config struct {
	DBType string
	DBPath string
	DBDSN  string

	HTTPHostPort string
	GRPCHostPort string

	DefaultRate  float64
	DefaultBurst int

	MQTT            notify.MQTTConfig
	Redis           notify.RedisConfig
	WebhookURL      string
	NotifyQueueSize int

	RulesFile string
}

// Load reads the given env files (".env" when none is given) if they exist,
// then builds the configuration from the process environment.
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return nil, fmt.Errorf("load %s: %w", f, err)
		}
	}

	c := &Config{
		DBType:       strings.ToLower(getenv(common.EnvKeyIOTDBType, DBTypeFile)),
		DBPath:       getenv(common.EnvKeyIOTDbPath, ""),
		DBDSN:        getenv(common.EnvKeyIOTDbDSN, ""),
		HTTPHostPort: getenv(common.EnvKeyIOTHttpHostPort, DefaultHTTPHostPort),
		GRPCHostPort: getenv(common.EnvKeyIOTGrpcHostPort, ""),
		MQTT: notify.MQTTConfig{
			Broker:   getenv(common.EnvKeyMQTTBroker, ""),
			ClientID: getenv(common.EnvKeyMQTTClientID, "sensor-alarm-service"),
			Username: getenv(common.EnvKeyMQTTUsername, ""),
			Password: getenv(common.EnvKeyMQTTPassword, ""),
		},
		Redis: notify.RedisConfig{
			Addr:     getenv(common.EnvKeyRedisAddr, ""),
			Password: getenv(common.EnvKeyRedisPassword, ""),
		},
		WebhookURL: getenv(common.EnvKeyWebhookURL, ""),
		RulesFile:  getenv(common.EnvKeyRulesFile, ""),
	}

	var err error
	if c.DefaultRate, err = parseFloat(common.EnvKeyIOTDefaultRate, DefaultRate); err != nil {
		return nil, err
	}
	if c.DefaultBurst, err = parseInt(common.EnvKeyIOTDefaultBurst, DefaultBurst); err != nil {
		return nil, err
	}
	qos, err := parseInt(common.EnvKeyMQTTQoS, 1)
	if err != nil {
		return nil, err
	}
	if qos < 0 || qos > 2 {
		return nil, fmt.Errorf("%w: %s must be 0, 1 or 2", ErrInvalidConfig, common.EnvKeyMQTTQoS)
	}
	c.MQTT.QoS = byte(qos)
	if c.Redis.DB, err = parseInt(common.EnvKeyRedisDB, 0); err != nil {
		return nil, err
	}
	if c.NotifyQueueSize, err = parseInt(common.EnvKeyNotifyQueueSize, notify.DefaultQueueSize); err != nil {
		return nil, err
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func (c *Config) Validate() error {
	switch c.DBType {
	case DBTypeFile, DBTypeMemory:
	case DBTypePostgres:
		if c.DBDSN == "" {
			return fmt.Errorf("%w: %s is required for postgres", ErrInvalidConfig, common.EnvKeyIOTDbDSN)
		}
	default:
		return fmt.Errorf("%w: unknown %s %q", ErrInvalidConfig, common.EnvKeyIOTDBType, c.DBType)
	}
	if c.DefaultRate <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, common.EnvKeyIOTDefaultRate)
	}
	if c.DefaultBurst <= 0 {
		return fmt.Errorf("%w: %s must be positive", ErrInvalidConfig, common.EnvKeyIOTDefaultBurst)
	}
	return nil
}

// Dialector picks the database driver for DBType.
func (c *Config) Dialector() gorm.Dialector {
	switch c.DBType {
	case DBTypeMemory:
		return db.UseMemorySqliteDialector()
	case DBTypePostgres:
		return db.PostgresDialector(c.DBDSN)
	default:
		return db.SqliteDialector(c.DBPath)
	}
}

func getenv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func parseFloat(key string, fallback float64) (float64, error) {
	raw := getenv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %s should be a float64 value", ErrInvalidConfig, key)
	}
	return v, nil
}

func parseInt(key string, fallback int) (int, error) {
	raw := getenv(key, "")
	if raw == "" {
		return fallback, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s should be an int value", ErrInvalidConfig, key)
	}
	return v, nil
}
