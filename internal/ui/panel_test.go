package ui

import (
	"bytes"
	"strings"
	"testing"
)

func TestProgressBar(t *testing.T) {
	tests := []struct {
		done, total, width int
		want               string
	}{
		{0, 0, 10, "░░░░░░░░░░   0%"},
		{1, 2, 10, "█████░░░░░  50%"},
		{3, 3, 5, "█████ 100%"},
		{1, 4, 2, "█░░░░  25%"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.done, tt.total, tt.width); got != tt.want {
			t.Errorf("ProgressBar(%d, %d, %d) = %q, want %q", tt.done, tt.total, tt.width, got, tt.want)
		}
	}
}

func TestMonoThemeUsesASCII(t *testing.T) {
	SetTheme("mono")
	t.Cleanup(func() { SetTheme("classic") })

	var buf bytes.Buffer
	Panel(&buf, []string{"# TODO", "[1] Buy milk"})
	out := buf.String()

	if !strings.HasPrefix(out, "+") {
		t.Errorf("expected ascii corner, got %q", out)
	}
	if !strings.Contains(out, "[1] Buy milk") {
		t.Errorf("panel lost its content: %q", out)
	}

	buf.Reset()
	Fail(&buf, "boom")
	if strings.TrimSpace(buf.String()) != "error: boom" {
		t.Errorf("Fail: got %q", buf.String())
	}
}

func TestUnknownThemeFallsBackToClassic(t *testing.T) {
	SetTheme("sparkly")
	if Current().BoxChecked != "☑" {
		t.Errorf("BoxChecked: got %q", Current().BoxChecked)
	}
}
