package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"liyu1981.xyz/sensor-alarm-service/pkg/common"
	"liyu1981.xyz/sensor-alarm-service/pkg/config"
	"liyu1981.xyz/sensor-alarm-service/pkg/models"
	"liyu1981.xyz/sensor-alarm-service/pkg/notify"
	_ "liyu1981.xyz/sensor-alarm-service/pkg/testing"
)

func fileConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		DBType:          config.DBTypeFile,
		DBPath:          filepath.Join(t.TempDir(), "alarms.db"),
		DefaultRate:     config.DefaultRate,
		DefaultBurst:    config.DefaultBurst,
		NotifyQueueSize: 8,
	}
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	p := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(p, []byte(content), 0o644))
	return p
}

func TestPrepareSeedsEmptyRuleTableOnce(t *testing.T) {
	common.SetTestLoggerNop()
	ctx := context.Background()

	cfg := fileConfig(t)
	cfg.RulesFile = "configs/rules.yaml"

	iotCore, err := openIOT(cfg)
	require.NoError(t, err)
	require.NoError(t, prepare(ctx, iotCore, cfg.RulesFile))

	rules, err := iotCore.Rule.GetRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 4)
	assert.Len(t, iotCore.Engine.Registry().RulesForSensor("temperature"), 2)

	// a restart loads the stored rules and does not seed again
	restarted, err := openIOT(cfg)
	require.NoError(t, err)
	require.NoError(t, prepare(ctx, restarted, cfg.RulesFile))

	rules, err = restarted.Rule.GetRules(ctx)
	require.NoError(t, err)
	assert.Len(t, rules, 4)
}

func TestPrepareRejectsBadRulesFile(t *testing.T) {
	common.SetTestLoggerNop()

	cfg := fileConfig(t)
	cfg.RulesFile = writeFile(t, "rules.yaml", "rules:\n  - sensor_id: t\n    type: simple\n    primary_threshold: 1\n    duration: 1\n")

	iotCore, err := openIOT(cfg)
	require.NoError(t, err)
	assert.Error(t, prepare(context.Background(), iotCore, cfg.RulesFile))
}

func TestPrepareClosesStaleOccurrences(t *testing.T) {
	common.SetTestLoggerNop()
	ctx := context.Background()

	cfg := fileConfig(t)

	iotCore, err := openIOT(cfg)
	require.NoError(t, err)
	ruleID, err := iotCore.Rule.AddRule(ctx, &models.AlarmRule{
		Name:             "hot",
		SensorID:         "temperature",
		Type:             models.RuleTypeSimple,
		PrimaryThreshold: 10,
		Topic:            "alarms/temperature",
	})
	require.NoError(t, err)
	require.NoError(t, iotCore.Reading.PostReading(ctx, "temperature", 20))

	restarted, err := openIOT(cfg)
	require.NoError(t, err)
	require.NoError(t, prepare(ctx, restarted, ""))

	occurrences, err := restarted.Occurrence.GetRuleOccurrences(ctx, ruleID)
	require.NoError(t, err)
	require.Len(t, occurrences, 1)
	assert.Equal(t, models.OccurrenceStatusCleared, occurrences[0].Status)
	assert.NotNil(t, occurrences[0].EndTime)
}

func TestBuildPublisherDeliversToWebhook(t *testing.T) {
	common.SetTestLoggerNop()

	var mu sync.Mutex
	var bodies []map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, _ := io.ReadAll(r.Body)
		var body map[string]any
		_ = json.Unmarshal(raw, &body)
		mu.Lock()
		bodies = append(bodies, body)
		mu.Unlock()
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	cfg := fileConfig(t)
	cfg.WebhookURL = server.URL

	publisher, closePublisher, err := buildPublisher(context.Background(), cfg)
	require.NoError(t, err)

	require.NoError(t, publisher.Publish(context.Background(), "alarms/temperature/alarm", []byte(`{"rule_id":1}`)))
	closePublisher()

	mu.Lock()
	defer mu.Unlock()
	require.Len(t, bodies, 1)
	assert.Equal(t, "alarms/temperature/alarm", bodies[0]["topic"])
}

func TestReplayPrintsOccurrences(t *testing.T) {
	common.SetTestLoggerNop()

	cfg := fileConfig(t)
	cfg.RulesFile = writeFile(t, "rules.yaml", `rules:
  - name: Hot
    sensor_id: temperature
    type: simple
    primary_threshold: 21.5
    duration: 0
    topic: alarms/temperature
`)
	feedFile := writeFile(t, "feed.csv", `timestamp,source,value
2024-05-01T12:00:00Z,sensor1,25
2024-05-01T12:00:01Z,sensor1,20
2024-05-01T12:00:02Z,sensor2,0.1
2024-05-01T12:00:03Z,sensor1,bad
`)

	var out bytes.Buffer
	require.NoError(t, replay(context.Background(), cfg, []string{feedFile}, &out))

	assert.Contains(t, out.String(), "delivered=3 failed=0 skipped=1")
	assert.Contains(t, out.String(), `rule 1 "Hot": 1 occurrence(s)`)
	assert.Contains(t, out.String(), "CLEARED")
}

type fakeSubscriber struct {
	messages map[string][]byte
	filter   string
}

func (f *fakeSubscriber) Subscribe(filter string, handler notify.MessageHandler) error {
	f.filter = filter
	for topic, payload := range f.messages {
		handler(topic, payload)
	}
	return nil
}

func TestWatchWithFormatsAlarms(t *testing.T) {
	s := &fakeSubscriber{messages: map[string][]byte{
		"alarms/humidity/alarm": []byte(`{"rule_id":3,"status":"ACTIVE","start_time":"2024-05-01T12:00:00Z","end_time":null}`),
	}}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	var lines []string
	require.NoError(t, watchWith(ctx, s, "alarms/#", func(line string) { lines = append(lines, line) }))

	assert.Equal(t, "alarms/#", s.filter)
	assert.Equal(t, []string{"Humidity Alarm: Rule 3, Status: ACTIVE, Start: 2024-05-01T12:00:00Z"}, lines)
}

func TestWatchWithPrintsUnknownPayloads(t *testing.T) {
	s := &fakeSubscriber{messages: map[string][]byte{"alarms/x": []byte("hello")}}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var lines []string
	require.NoError(t, watchWith(ctx, s, "#", func(line string) { lines = append(lines, line) }))
	assert.Equal(t, []string{"alarms/x: hello"}, lines)
}

func TestWatchRequiresBroker(t *testing.T) {
	err := watch(context.Background(), &config.Config{}, func(string) {})
	assert.ErrorContains(t, err, "MQTT_BROKER")
}

func TestPrepareSeedsNothingWhenOneRuleIsInvalid(t *testing.T) {
	common.SetTestLoggerNop()
	ctx := context.Background()

	cfg := fileConfig(t)
	cfg.RulesFile = writeFile(t, "rules.yaml", `rules:
  - name: Hot
    sensor_id: temperature
    type: simple
    primary_threshold: 21.5
    duration: 2
    topic: alarms/temperature
  - name: Broken
    sensor_id: temperature
    type: conditional
    primary_threshold: 21.5
    duration: 2
    topic: alarms/conditional
`)

	iotCore, err := openIOT(cfg)
	require.NoError(t, err)
	require.Error(t, prepare(ctx, iotCore, cfg.RulesFile))

	rules, err := iotCore.Rule.GetRules(ctx)
	require.NoError(t, err)
	assert.Empty(t, rules)
	assert.Zero(t, iotCore.Engine.Registry().Len())

	// once the file is fixed the next start seeds it completely
	require.NoError(t, os.WriteFile(cfg.RulesFile, []byte(`rules:
  - name: Hot
    sensor_id: temperature
    type: simple
    primary_threshold: 21.5
    duration: 2
    topic: alarms/temperature
  - name: Hot with current
    sensor_id: temperature
    type: conditional
    primary_threshold: 21.5
    duration: 2
    shunt_sensor_id: current
    shunt_threshold: 0.2
    topic: alarms/conditional
`), 0o644))

	restarted, err := openIOT(cfg)
	require.NoError(t, err)
	require.NoError(t, prepare(ctx, restarted, cfg.RulesFile))

	rules, err = restarted.Rule.GetRules(ctx)
	require.NoError(t, err)
	assert.Len(t, rules, 2)
	assert.Equal(t, 2, restarted.Engine.Registry().Len())
}
