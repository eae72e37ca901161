package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

func TestComponent(t *testing.T) {
	var buf bytes.Buffer
	log.Logger = zerolog.New(&buf)

	logger := Component("storage")
	logger.Info().Msg("opened database")

	var entry map[string]interface{}
	if err := json.Unmarshal(buf.Bytes(), &entry); err != nil {
		t.Fatalf("failed to parse log: %v", err)
	}

	if entry["cmp"] != "storage" {
		t.Errorf("cmp = %v, want storage", entry["cmp"])
	}
	if entry["message"] != "opened database" {
		t.Errorf("message = %v", entry["message"])
	}
}

func TestSetupWritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	closer, err := Setup("debug", path)
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	log.Info().Str("cmp", "test").Msg("hello")
	closer()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if !strings.Contains(string(data), `"message":"hello"`) {
		t.Fatalf("log file missing entry: %s", data)
	}
}

func TestSetupLevelFiltering(t *testing.T) {
	path := filepath.Join(t.TempDir(), "app.log")

	closer, err := Setup("warn", path)
	if err != nil {
		t.Fatalf("Setup returned error: %v", err)
	}
	log.Info().Msg("dropped")
	log.Warn().Msg("kept")
	closer()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	out := string(data)
	if strings.Contains(out, "dropped") {
		t.Fatal("info entry should be filtered out")
	}
	if !strings.Contains(out, "kept") {
		t.Fatal("warn entry missing")
	}
}

func TestSetupRejectsBadLevel(t *testing.T) {
	if _, err := Setup("chatty", ""); err == nil {
		t.Fatal("expected error for unknown level")
	}
}
