package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestSetModeSwitchesLevel(t *testing.T) {
	SetMode("debug")
	if !level.Enabled(zapcore.DebugLevel) {
		t.Fatal("debug mode should enable debug logs")
	}

	SetMode("release")
	if level.Enabled(zapcore.DebugLevel) {
		t.Fatal("release mode should not enable debug logs")
	}
	if !level.Enabled(zapcore.InfoLevel) {
		t.Fatal("info logs should stay enabled")
	}
}
