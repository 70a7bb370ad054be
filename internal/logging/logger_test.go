package logging

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitialize_DebugWritesFiles(t *testing.T) {
	ws := t.TempDir()
	if err := Initialize(ws, true); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer CloseAll()

	API("probe %s returned %d", "/conf/sets", 200)
	CloseAll()

	logsDir := filepath.Join(ws, ".porenew", "logs")
	entries, err := os.ReadDir(logsDir)
	if err != nil {
		t.Fatalf("logs dir not created: %v", err)
	}

	var apiFile string
	for _, e := range entries {
		if strings.Contains(e.Name(), string(CategoryAPI)) {
			apiFile = filepath.Join(logsDir, e.Name())
		}
	}
	if apiFile == "" {
		t.Fatalf("no api log file among %v", entries)
	}

	data, err := os.ReadFile(apiFile)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), "probe /conf/sets returned 200") {
		t.Errorf("log file missing entry, got: %s", data)
	}
}

func TestInitialize_DisabledIsNoOp(t *testing.T) {
	ws := t.TempDir()
	if err := Initialize(ws, false); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer CloseAll()

	Renewal("should go nowhere")

	if _, err := os.Stat(filepath.Join(ws, ".porenew")); !os.IsNotExist(err) {
		t.Error("disabled logging should not create the logs directory")
	}
}

func TestInitialize_RequiresWorkspace(t *testing.T) {
	if err := Initialize("", true); err == nil {
		t.Error("expected error for empty workspace")
	}
}

func TestTimer(t *testing.T) {
	ws := t.TempDir()
	if err := Initialize(ws, true); err != nil {
		t.Fatalf("Initialize failed: %v", err)
	}
	defer CloseAll()

	timer := StartTimer(CategoryRenewal, "test op")
	if d := timer.StopWithInfo(); d < 0 {
		t.Errorf("negative duration %v", d)
	}
}
