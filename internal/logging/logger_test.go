package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func resetForTest() {
	loggersMu.Lock()
	for cat, l := range loggers {
		if l.file != nil {
			_ = l.file.Close()
		}
		delete(loggers, cat)
	}
	loggersMu.Unlock()
	logsDir = ""
	optsMu.Lock()
	opts = Options{}
	logLevel = LevelInfo
	optsMu.Unlock()
}

func TestDebugModeWritesCategoryFiles(t *testing.T) {
	t.Cleanup(resetForTest)
	tempDir := t.TempDir()

	if err := Initialize(tempDir, Options{DebugMode: true, Level: "debug"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	Wizard("field committed at index %d", 3)
	Cache("refreshed %d rows", 2)
	Close()

	entries, err := os.ReadDir(filepath.Join(tempDir, ".stagehand", "logs"))
	if err != nil {
		t.Fatalf("reading logs dir: %v", err)
	}
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	joined := strings.Join(names, " ")
	for _, want := range []string{"wizard", "cache", "boot"} {
		if !strings.Contains(joined, want) {
			t.Fatalf("no %s log file in %v", want, names)
		}
	}
}

func TestProductionModeWritesNothing(t *testing.T) {
	t.Cleanup(resetForTest)
	tempDir := t.TempDir()

	if err := Initialize(tempDir, Options{DebugMode: false}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	Wizard("should vanish")
	Get(CategoryStore).Error("also nothing")

	if _, err := os.Stat(filepath.Join(tempDir, ".stagehand", "logs")); !os.IsNotExist(err) {
		t.Fatal("logs directory created in production mode")
	}
}

func TestCategoryFilter(t *testing.T) {
	t.Cleanup(resetForTest)
	tempDir := t.TempDir()

	err := Initialize(tempDir, Options{
		DebugMode:  true,
		Level:      "debug",
		Categories: map[string]bool{"cache": false},
	})
	if err != nil {
		t.Fatalf("Initialize: %v", err)
	}

	if IsCategoryEnabled(CategoryCache) {
		t.Fatal("cache category should be disabled")
	}
	if !IsCategoryEnabled(CategoryWizard) {
		t.Fatal("unlisted category should default to enabled")
	}
}

func TestLevelFiltering(t *testing.T) {
	t.Cleanup(resetForTest)
	tempDir := t.TempDir()

	if err := Initialize(tempDir, Options{DebugMode: true, Level: "warn"}); err != nil {
		t.Fatalf("Initialize: %v", err)
	}
	l := Get(CategoryStore)
	l.Debug("dropped")
	l.Info("dropped")
	l.Warn("kept")
	Close()

	entries, err := os.ReadDir(filepath.Join(tempDir, ".stagehand", "logs"))
	if err != nil {
		t.Fatalf("reading logs dir: %v", err)
	}
	for _, e := range entries {
		if !strings.Contains(e.Name(), "store") {
			continue
		}
		data, err := os.ReadFile(filepath.Join(tempDir, ".stagehand", "logs", e.Name()))
		if err != nil {
			t.Fatalf("reading store log: %v", err)
		}
		if strings.Contains(string(data), "dropped") {
			t.Fatal("below-level messages were written")
		}
		if !strings.Contains(string(data), "kept") {
			t.Fatal("warn message missing")
		}
		return
	}
	t.Fatal("store log file not found")
}
