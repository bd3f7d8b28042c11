package iot

import (
	"bufio"
	"encoding/json"
	"io"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"go.uber.org/mock/gomock"
	"gorm.io/driver/sqlite"
	"liyu1981.xyz/sensor-alarm-service/pkg/db"
	"liyu1981.xyz/sensor-alarm-service/pkg/engine"
	"liyu1981.xyz/sensor-alarm-service/pkg/iot/mocks"
	"liyu1981.xyz/sensor-alarm-service/pkg/models"
)

func GetMockIOTWithMemorySqliteDialector(t *testing.T, useMockIRule, useMockIOccurrence, useMockIReading bool, opts ...engine.Option) (
	*gomock.Controller,
	*IOT,
	*mocks.MockIRule,
	*mocks.MockIOccurrence,
	*mocks.MockIReading,
) {
	ctrl := gomock.NewController(t)

	mockIRule := mocks.NewMockIRule(ctrl)
	mockIOccurrence := mocks.NewMockIOccurrence(ctrl)
	mockIReading := mocks.NewMockIReading(ctrl)
	dialector := db.UseMemorySqliteDialector()
	dbInstance := db.GetInstance(dialector) // ensure migrations
	iotInstance := NewIOT(*dbInstance, opts...)

	if useMockIRule {
		iotInstance.WithServices(ServiceOpts{Rule: mockIRule})
	}
	if useMockIOccurrence {
		// the engine must record through the mock too
		iotInstance.WithServices(ServiceOpts{
			Engine:     engine.New(mockIOccurrence, opts...),
			Occurrence: mockIOccurrence,
		})
	}
	if useMockIReading {
		iotInstance.WithServices(ServiceOpts{Reading: mockIReading})
	}

	return ctrl, iotInstance, mockIRule, mockIOccurrence, mockIReading
}

// newFileIOT opens a private database so tests can count rows exactly.
func newFileIOT(t *testing.T, opts ...engine.Option) *IOT {
	t.Helper()
	conn, err := db.Open(sqlite.Open(filepath.Join(t.TempDir(), "alarms.db") + "?_foreign_keys=1"))
	if err != nil {
		t.Fatalf("open db: %v", err)
	}
	t.Cleanup(func() {
		if sqlDB, err := conn.Conn.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return NewIOT(*conn, opts...)
}

func simpleRule(sensorID string, threshold, seconds float64) *models.AlarmRule {
	return &models.AlarmRule{
		Name:             "high " + sensorID,
		SensorID:         sensorID,
		Type:             models.RuleTypeSimple,
		PrimaryThreshold: threshold,
		Duration:         seconds,
		Topic:            "plant/" + sensorID,
	}
}

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock() *fakeClock {
	return &fakeClock{now: time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.now = c.now.Add(d)
	c.mu.Unlock()
}

func ParseLogs(r io.Reader) []any {
	scanner := bufio.NewScanner(r)
	var logs []any

	for scanner.Scan() {
		line := scanner.Text()
		var j any
		if err := json.Unmarshal([]byte(line), &j); err == nil {
			logs = append(logs, j)
		}
	}
	return logs
}
