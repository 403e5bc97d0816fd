// Package report builds the end-of-session summary ("daily log") from a
// session and its event log.
package report

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"
	"unicode"

	"github.com/berth-dev/vibe/internal/log"
	"github.com/berth-dev/vibe/internal/reminder"
	"github.com/berth-dev/vibe/internal/tracker"
	"github.com/berth-dev/vibe/templates"
)

// DirTimestampLayout is the format of the timestamp that starts every
// report directory name.
const DirTimestampLayout = "20060102-150405"

// dirIDLength is how much of the session ID a report directory name keeps.
const dirIDLength = 8

// DirName returns the report directory name for a session: its UTC start
// time followed by a prefix of its ID, e.g. "20260504-090000-3f2a9c1e".
func DirName(startedAt time.Time, id string) string {
	short := strings.Map(func(r rune) rune {
		if r == '-' || r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) {
			return r
		}
		return -1
	}, id)
	if len(short) > dirIDLength {
		short = short[:dirIDLength]
	}
	name := startedAt.UTC().Format(DirTimestampLayout)
	if short == "" {
		return name
	}
	return name + "-" + short
}

// ParseDirName returns the start time encoded in a report directory name.
// Names without an ID suffix are accepted.
func ParseDirName(name string) (time.Time, error) {
	if len(name) < len(DirTimestampLayout) {
		return time.Time{}, fmt.Errorf("report directory %q: too short", name)
	}
	ts, rest := name[:len(DirTimestampLayout)], name[len(DirTimestampLayout):]
	if rest != "" && (rest[0] != '-' || len(rest) == 1) {
		return time.Time{}, fmt.Errorf("report directory %q: bad suffix", name)
	}
	t, err := time.Parse(DirTimestampLayout, ts)
	if err != nil {
		return time.Time{}, fmt.Errorf("report directory %q: %w", name, err)
	}
	return t, nil
}

// PhaseStat is the per-phase section of a report.
type PhaseStat struct {
	Phase      tracker.Phase
	Activities int
	Entered    bool
	EnteredAt  time.Time // last time the phase was entered
}

// Report holds everything rendered into a session report.
type Report struct {
	ID          string
	Stack       string
	Phase       tracker.Phase
	StartedAt   time.Time
	GeneratedAt time.Time
	Elapsed     time.Duration
	TimeInPhase time.Duration
	CleanupDebt bool
	Resets      int
	Phases      []PhaseStat
	Activities  []tracker.Activity
	Debt        []tracker.Activity
}

// Generate assembles a Report for s. events are the session's log events;
// they contribute phase entry times and the restart count and may be nil.
// Times are converted to the location of the tracker's clock.
func Generate(t *tracker.Tracker, s *tracker.Session, events []log.LogEvent) *Report {
	sum := t.Summarize(s)
	now := t.Now()
	loc := now.Location()

	r := &Report{
		ID:          sum.ID,
		Stack:       sum.Stack,
		Phase:       sum.Phase,
		StartedAt:   sum.StartedAt.In(loc),
		GeneratedAt: now,
		Elapsed:     sum.Elapsed,
		TimeInPhase: sum.TimeInPhase,
		CleanupDebt: sum.CleanupDebt,
		Activities:  s.Activities(),
	}
	for i := range r.Activities {
		r.Activities[i].Timestamp = r.Activities[i].Timestamp.In(loc)
	}

	entered := map[tracker.Phase]time.Time{tracker.Exploring: r.StartedAt}
	for _, e := range events {
		if e.SessionID != s.ID() {
			continue
		}
		switch e.Event {
		case log.EventPhaseAdvanced:
			if p, err := tracker.ParsePhase(e.Phase); err == nil {
				entered[p] = e.Time.In(loc)
			}
		case log.EventSessionReset:
			r.Resets++
			entered[tracker.Exploring] = e.Time.In(loc)
		}
	}

	for _, p := range tracker.Phases() {
		at, ok := entered[p]
		r.Phases = append(r.Phases, PhaseStat{
			Phase:      p,
			Activities: sum.PerPhase[p],
			Entered:    ok,
			EnteredAt:  at,
		})
	}

	for _, a := range r.Activities {
		if a.DebtIncurring {
			r.Debt = append(r.Debt, a)
		}
	}

	return r
}

var reportTemplate = template.Must(template.New("session").Funcs(template.FuncMap{
	"duration": reminder.FormatDuration,
	"orDash": func(s string) string {
		if s == "" {
			return "-"
		}
		return s
	},
}).Parse(templates.SessionReport))

// Format renders the report as markdown.
func Format(r *Report) (string, error) {
	var buf bytes.Buffer
	if err := reportTemplate.Execute(&buf, r); err != nil {
		return "", fmt.Errorf("rendering report: %w", err)
	}
	return buf.String(), nil
}

// Write renders the report into {dir}/{DirName}/report.md and returns the
// file path. Creates the directory if it does not exist.
func Write(dir string, r *Report) (string, error) {
	content, err := Format(r)
	if err != nil {
		return "", err
	}

	runDir := filepath.Join(dir, DirName(r.StartedAt, r.ID))
	if err := os.MkdirAll(runDir, 0755); err != nil {
		return "", fmt.Errorf("creating report directory: %w", err)
	}

	path := filepath.Join(runDir, "report.md")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("writing report file: %w", err)
	}

	return path, nil
}
