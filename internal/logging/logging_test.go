package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitializeWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "parking.log")

	err := Initialize(Config{Level: "debug", Format: "json", Output: path})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer InitializeDefault()

	Debug("catalog loaded")
	Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read log file: %v", err)
	}
	if !strings.Contains(string(data), "catalog loaded") {
		t.Errorf("expected log line in file, got %q", string(data))
	}
}

func TestInitializeFallsBackToInfo(t *testing.T) {
	if err := Initialize(Config{Level: "loud", Format: "console", Output: "discard"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer InitializeDefault()

	if Logger.Core().Enabled(-1) {
		t.Error("debug should be disabled when the level cannot be parsed")
	}
	if !Logger.Core().Enabled(0) {
		t.Error("info should be enabled")
	}
}
