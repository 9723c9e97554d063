package logger

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"
)

func TestInitJSONWritesStructuredLines(t *testing.T) {
	var buf bytes.Buffer
	Init("debug", "json", &buf)

	With("path", "resource/todo.json").Warn("discarding corrupt todo file", "reason", "bad json")

	var line map[string]any
	if err := json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &line); err != nil {
		t.Fatalf("output is not json: %q: %v", buf.String(), err)
	}
	if line["msg"] != "discarding corrupt todo file" {
		t.Errorf("msg: got %v", line["msg"])
	}
	if line["path"] != "resource/todo.json" || line["reason"] != "bad json" {
		t.Errorf("fields: got %v", line)
	}
}

func TestLevelFiltersLowerMessages(t *testing.T) {
	var buf bytes.Buffer
	Init("warn", "text", &buf)

	Info("hidden")
	Warn("shown")

	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info line leaked at warn level: %q", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn line missing: %q", out)
	}
}

func TestUnknownLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	Init("chatty", "text", &buf)

	Debug("hidden")
	Info("shown")

	if strings.Contains(buf.String(), "hidden") || !strings.Contains(buf.String(), "shown") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
