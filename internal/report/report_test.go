package report

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/berth-dev/vibe/internal/log"
	"github.com/berth-dev/vibe/internal/testutil"
	"github.com/berth-dev/vibe/internal/tracker"
)

var start = time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)

func buildSession(t *testing.T) (*tracker.Tracker, *tracker.Session, []log.LogEvent) {
	t.Helper()
	clock := testutil.NewClock(start)
	tr := tracker.New(tracker.WithClock(clock.Now), tracker.WithIDGenerator(testutil.SequentialIDs()))
	s := tr.Create("react")

	var events []log.LogEvent
	if err := tr.LogActivity(s, "add dashboard skeleton", false); err != nil {
		t.Fatalf("LogActivity: %v", err)
	}
	clock.Advance(10 * time.Minute)
	if err := tr.LogActivity(s, "props drilling everywhere", true); err != nil {
		t.Fatalf("LogActivity: %v", err)
	}
	clock.Advance(30 * time.Minute)
	if _, err := tr.AdvancePhase(s); err != nil {
		t.Fatalf("AdvancePhase: %v", err)
	}
	events = append(events, log.LogEvent{Time: clock.Now(), Event: log.EventPhaseAdvanced, SessionID: s.ID(), From: "exploring", Phase: "validating"})
	clock.Advance(5 * time.Minute)
	if err := tr.LogActivity(s, "click through flows", false); err != nil {
		t.Fatalf("LogActivity: %v", err)
	}
	events = append(events, log.LogEvent{Time: clock.Now(), Event: log.EventSessionReset, SessionID: "someone-else"})
	return tr, s, events
}

func TestGenerate(t *testing.T) {
	tr, s, events := buildSession(t)
	r := Generate(tr, s, events)

	if r.Elapsed != 45*time.Minute || r.TimeInPhase != 5*time.Minute {
		t.Errorf("Elapsed/TimeInPhase = %v/%v", r.Elapsed, r.TimeInPhase)
	}
	if r.Resets != 0 {
		t.Errorf("Resets = %d, events of other sessions should be ignored", r.Resets)
	}
	if len(r.Debt) != 1 || r.Debt[0].Description != "props drilling everywhere" {
		t.Errorf("Debt = %+v", r.Debt)
	}
	if len(r.Phases) != len(tracker.Phases()) {
		t.Fatalf("Phases = %d entries", len(r.Phases))
	}
	if got := r.Phases[tracker.Exploring]; got.Activities != 2 || !got.Entered {
		t.Errorf("exploring stat = %+v", got)
	}
	if got := r.Phases[tracker.Validating]; got.Activities != 1 || !got.EnteredAt.Equal(start.Add(40*time.Minute)) {
		t.Errorf("validating stat = %+v", got)
	}
	if r.Phases[tracker.Shipped].Entered {
		t.Error("shipped should not be entered")
	}
}

func TestFormat(t *testing.T) {
	tr, s, events := buildSession(t)
	out, err := Format(Generate(tr, s, events))
	if err != nil {
		t.Fatalf("Format: %v", err)
	}

	for _, want := range []string{
		"# Session Log: react",
		"- Session: `sess-1`",
		"- Started: 2026-05-04 09:00 UTC",
		"- Duration: 45m",
		"- Phase: Validating (for 5m)",
		"- Cleanup debt: **open**",
		"- Exploring: 2 activities",
		"- Validating: 1 activity (entered 09:40)",
		"- 09:10 [exploring] props drilling everywhere _(debt)_",
		"## Cleanup Owed",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n---\n%s", want, out)
		}
	}
	if strings.Contains(out, "Restarts") {
		t.Error("restarts line should be omitted when zero")
	}
}

func TestFormat_EmptySession(t *testing.T) {
	tr := tracker.New()
	s := tr.Create("")
	out, err := Format(Generate(tr, s, nil))
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	if !strings.Contains(out, "# Session Log: -") || !strings.Contains(out, "_No activities logged._") {
		t.Errorf("unexpected output:\n%s", out)
	}
	if strings.Contains(out, "Cleanup Owed") {
		t.Error("no debt section expected")
	}
}

func TestWrite(t *testing.T) {
	tr, s, events := buildSession(t)
	dir := t.TempDir()

	path, err := Write(dir, Generate(tr, s, events))
	if err != nil {
		t.Fatalf("Write: %v", err)
	}
	if want := filepath.Join(dir, "20260504-090000-sess-1", "report.md"); path != want {
		t.Errorf("path = %q, want %q", path, want)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading report: %v", err)
	}
	if !strings.Contains(string(data), "props drilling everywhere") {
		t.Error("written report missing activity")
	}
}

func TestWrite_SessionsStartedInSameSecond(t *testing.T) {
	clock := testutil.NewClock(start)
	tr := tracker.New(tracker.WithClock(clock.Now))
	a := tr.Create("react")
	_ = tr.LogActivity(a, "first session work", false)
	clock.Advance(300 * time.Millisecond)
	b := tr.Create("react")
	_ = tr.LogActivity(b, "second session work", false)

	dir := t.TempDir()
	pathA, err := Write(dir, Generate(tr, a, nil))
	if err != nil {
		t.Fatalf("Write a: %v", err)
	}
	pathB, err := Write(dir, Generate(tr, b, nil))
	if err != nil {
		t.Fatalf("Write b: %v", err)
	}
	if pathA == pathB {
		t.Fatalf("both reports written to %s", pathA)
	}

	data, err := os.ReadFile(pathA)
	if err != nil {
		t.Fatalf("reading first report: %v", err)
	}
	if !strings.Contains(string(data), "first session work") {
		t.Error("first report was overwritten")
	}
}

func TestDirName(t *testing.T) {
	at := time.Date(2026, 5, 4, 11, 0, 0, 0, time.FixedZone("CEST", 2*60*60))
	tests := []struct {
		id   string
		want string
	}{
		{"3f2a9c1e-7d4b-4c1e-9a0f-111111111111", "20260504-090000-3f2a9c1e"},
		{"sess-1", "20260504-090000-sess-1"},
		{"../x", "20260504-090000-x"},
		{"", "20260504-090000"},
	}
	for _, tt := range tests {
		if got := DirName(at, tt.id); got != tt.want {
			t.Errorf("DirName(%q) = %q, want %q", tt.id, got, tt.want)
		}
	}
}

func TestParseDirName(t *testing.T) {
	want := time.Date(2026, 5, 4, 9, 0, 0, 0, time.UTC)
	for _, name := range []string{"20260504-090000", "20260504-090000-3f2a9c1e"} {
		got, err := ParseDirName(name)
		if err != nil {
			t.Errorf("ParseDirName(%q): %v", name, err)
			continue
		}
		if !got.Equal(want) {
			t.Errorf("ParseDirName(%q) = %v, want %v", name, got, want)
		}
	}
	for _, name := range []string{"not-a-timestamp", "20260504-090000x", "20260504-090000-", "2026"} {
		if _, err := ParseDirName(name); err == nil {
			t.Errorf("ParseDirName(%q) should fail", name)
		}
	}
}

func TestGenerate_ShowsTimesInClockLocation(t *testing.T) {
	cest := time.FixedZone("CEST", 2*60*60)
	clock := testutil.NewClock(start)
	tr := tracker.New(tracker.WithClock(clock.Now))
	s := tr.Create("go")
	_ = tr.LogActivity(s, "wire handlers", false)
	clock.Advance(15 * time.Minute)

	// Stored sessions come back in UTC; the local clock is two hours ahead.
	local := tracker.New(tracker.WithClock(func() time.Time { return clock.Now().In(cest) }))
	restored, err := local.Restore(s.Snapshot())
	if err != nil {
		t.Fatalf("Restore: %v", err)
	}
	out, err := Format(Generate(local, restored, nil))
	if err != nil {
		t.Fatalf("Format: %v", err)
	}
	for _, want := range []string{
		"- Started: 2026-05-04 11:00 CEST",
		"- Exploring: 1 activity (entered 11:00)",
		"- 11:00 [exploring] wire handlers",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("report missing %q\n---\n%s", want, out)
		}
	}
}
