package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoggerIsSilentBeforeInit(t *testing.T) {
	if L() == nil {
		t.Fatalf("L() must never be nil")
	}
	L().Error("dropped")
	if err := Init(Config{}); err != nil {
		t.Fatalf("Init without output should be a no-op, got %v", err)
	}
}

func TestInitWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "raider.log")
	if err := Init(Config{Level: "debug", OutputPath: path}); err != nil {
		t.Fatalf("Init: %v", err)
	}

	L().Debug("thumbnail spawned", String("cache", "/tmp/x.jpg"))
	_ = Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log: %v", err)
	}
	if !strings.Contains(string(data), "thumbnail spawned") {
		t.Fatalf("log file missing entry: %q", data)
	}

	if err := Init(Config{Level: "error", OutputPath: path}); err != nil {
		t.Fatalf("Init: %v", err)
	}
	L().Warn("filtered out")
	_ = Sync()
	data, _ = os.ReadFile(path)
	if strings.Contains(string(data), "filtered out") {
		t.Fatalf("warn entry should be filtered at error level")
	}
}

func TestInitRejectsUnknownLevel(t *testing.T) {
	err := Init(Config{Level: "loud", OutputPath: filepath.Join(t.TempDir(), "x.log")})
	if err == nil {
		t.Fatalf("expected error for unknown level")
	}
}
