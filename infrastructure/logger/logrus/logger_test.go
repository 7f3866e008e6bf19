package logrus

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestNewLogger(t *testing.T) {
	logger := NewLogger("debug")

	if logger == nil {
		t.Fatal("NewLogger returned nil")
	}

	if logger.entry.Logger.GetLevel() != logrus.DebugLevel {
		t.Errorf("level = %v, want debug", logger.entry.Logger.GetLevel())
	}
}

func TestNewLogger_InvalidLevelDefaultsToInfo(t *testing.T) {
	logger := NewLogger("loud")

	if logger.entry.Logger.GetLevel() != logrus.InfoLevel {
		t.Errorf("level = %v, want info", logger.entry.Logger.GetLevel())
	}
}

func TestLogger_DoesNotPanicWithNilFields(t *testing.T) {
	logger := NewLogger("info")

	logger.Debug("debug message", nil)
	logger.Info("info message", nil)
	logger.Warn("warn message", map[string]interface{}{"source": "github"})
	logger.Error("error message", map[string]interface{}{"attempt": 2})
}
