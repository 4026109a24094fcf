package logger

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitWritesFile(t *testing.T) {
	tmpDir := t.TempDir()
	logFile := filepath.Join(tmpDir, "test.log")

	if err := InitWithOptions(Options{Level: "debug", File: logFile, Console: false}); err != nil {
		t.Fatalf("failed to init logger: %v", err)
	}
	defer Sync()

	Info("hello from test")
	Sugar.Debugf("formatted %d", 42)
	Sync()

	data, err := os.ReadFile(logFile)
	if err != nil {
		t.Fatalf("log file not written: %v", err)
	}
	if len(data) == 0 {
		t.Error("log file is empty")
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"debug", "debug"},
		{"warn", "warn"},
		{"error", "error"},
		{"info", "info"},
		{"bogus", "info"},
	}
	for _, tt := range tests {
		if got := parseLevel(tt.in).String(); got != tt.want {
			t.Errorf("parseLevel(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
