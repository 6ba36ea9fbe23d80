package database

import (
	"testing"

	"studytrack_backend/internal/config"
)

func TestShouldMigrate(t *testing.T) {
	tests := []struct {
		name         string
		mode         string
		forceMigrate bool
		want         bool
	}{
		{name: "debug mode migrates", mode: "debug", want: true},
		{name: "release mode skips", mode: "release", want: false},
		{name: "release with force flag migrates", mode: "release", forceMigrate: true, want: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := &config.Config{ForceMigrate: tt.forceMigrate}
			cfg.Server.Mode = tt.mode
			if got := shouldMigrate(cfg); got != tt.want {
				t.Fatalf("shouldMigrate = %v, want %v", got, tt.want)
			}
		})
	}
}
