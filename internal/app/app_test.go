package app

import (
	"testing"

	"studytrack_backend/internal/config"
	"studytrack_backend/pkg/logger"

	"go.uber.org/zap"
)

func TestApplyConfigRunsRegisteredCallbacks(t *testing.T) {
	logger.Log = zap.NewNop()

	application := &App{Config: &config.Config{}}

	var got *config.Config
	application.RegisterConfigCallback(func(c *config.Config) { got = c })

	reloaded := &config.Config{}
	reloaded.Server.Mode = "debug"
	application.ApplyConfig(reloaded)

	if got != reloaded {
		t.Fatal("registered callback did not receive the reloaded config")
	}
	if application.Config != reloaded {
		t.Fatal("app config was not swapped for the reloaded one")
	}
}
