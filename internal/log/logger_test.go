package log

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLogger_AppendAndReadAll(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}

	at := time.Date(2026, 2, 1, 10, 0, 0, 0, time.UTC)
	events := []LogEvent{
		{Time: at, Event: EventSessionStarted, SessionID: "a", Stack: "react", Phase: "exploring"},
		{Event: EventActivityLogged, SessionID: "a", Description: "props drilling", Debt: true},
		{Event: EventPhaseAdvanced, SessionID: "b", From: "exploring", Phase: "validating"},
	}
	for _, e := range events {
		if err := logger.Append(e); err != nil {
			t.Fatalf("Append: %v", err)
		}
	}

	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != 3 {
		t.Fatalf("got %d events, want 3", len(got))
	}
	if !got[0].Time.Equal(at) {
		t.Errorf("explicit time not kept: %v", got[0].Time)
	}
	if got[1].Time.IsZero() {
		t.Error("zero time should be filled in")
	}
	if !got[1].Debt || got[1].Description != "props drilling" {
		t.Errorf("event[1] = %+v", got[1])
	}

	forA, err := logger.ForSession("a")
	if err != nil {
		t.Fatalf("ForSession: %v", err)
	}
	if len(forA) != 2 {
		t.Errorf("ForSession(a) = %d events, want 2", len(forA))
	}
}

func TestLogger_ReadAllMissingFile(t *testing.T) {
	logger, err := NewLogger(t.TempDir())
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	got, err := logger.ReadAll()
	if err != nil {
		t.Fatalf("ReadAll: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("got %d events, want 0", len(got))
	}
}

func TestLogger_ReadAllMalformedLine(t *testing.T) {
	dir := t.TempDir()
	logger, err := NewLogger(dir)
	if err != nil {
		t.Fatalf("NewLogger: %v", err)
	}
	content := `{"event":"session_started","session":"a"}` + "\n\n{not json\n"
	if err := os.WriteFile(filepath.Join(dir, ".vibe", "log.jsonl"), []byte(content), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := logger.ReadAll(); err == nil {
		t.Error("expected parse error")
	}
}
