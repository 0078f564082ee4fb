package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"
)

func TestHelpersWithoutInit(t *testing.T) {
	Logger = nil
	// Must not panic before Init.
	Debug("debug")
	Info("info")
	Warn("warn")
	Error("error")
}

func TestInitWritesLogFile(t *testing.T) {
	dir := t.TempDir()
	if err := Init(Config{ConfigDir: dir}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	Debug("hidden at info level")
	Info("recorded craving", "location", "bed")

	data, err := os.ReadFile(LogFile(dir))
	if err != nil {
		t.Fatalf("reading log file: %v", err)
	}
	out := string(data)
	if !strings.Contains(out, "recorded craving") {
		t.Errorf("log file missing info record:\n%s", out)
	}
	if strings.Contains(out, "hidden at info level") {
		t.Errorf("debug record written at info level:\n%s", out)
	}
}

func TestInitDebugMirrorsToStderr(t *testing.T) {
	var stderr bytes.Buffer
	if err := Init(Config{Debug: true, ConfigDir: t.TempDir(), Stderr: &stderr}); err != nil {
		t.Fatalf("Init() error = %v", err)
	}
	t.Cleanup(func() { Logger = nil })

	Debug("phase started", "phase", 1)
	if !strings.Contains(stderr.String(), "phase started") {
		t.Errorf("stderr = %q, want debug record", stderr.String())
	}
}
