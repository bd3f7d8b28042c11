package common

import (
	"bytes"
	"strings"
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	_ "liyu1981.xyz/sensor-alarm-service/pkg/testing"
)

func TestLoggingCapture(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	logger := GetLogger()
	logger.Info("Test log message", zap.String("key", "value"))

	logOutput := buf.String()
	if !strings.Contains(logOutput, "Test log message") {
		t.Errorf("expected log output to contain message, got: %s", logOutput)
	}
}

func TestLoggingCaptureWithName(t *testing.T) {
	var buf bytes.Buffer
	SetTestCaptureLogger(&buf, zapcore.InfoLevel)

	logger := GetLoggerWith(LoggerNameAlarmEngine, zap.String(LoggerFieldIOTCategory, LoggerCategoryEngineEvaluate))
	logger.Debug("filtered out")
	logger.Info("Alarm triggered")

	logOutput := buf.String()
	if strings.Contains(logOutput, "filtered out") {
		t.Errorf("expected debug message to be filtered, got: %s", logOutput)
	}
	if !strings.Contains(logOutput, `"logger":"alarm_engine"`) {
		t.Errorf("expected logger name in output, got: %s", logOutput)
	}
	if !strings.Contains(logOutput, `"category":"evaluate"`) {
		t.Errorf("expected category field in output, got: %s", logOutput)
	}
}
