// Package reminder turns a due phase threshold into the message a timer
// surface shows to the developer.
package reminder

import (
	"fmt"
	"time"

	"github.com/berth-dev/vibe/internal/detect"
	"github.com/berth-dev/vibe/internal/tracker"
)

// Result is the outcome of a reminder check.
type Result struct {
	Due       bool
	Phase     tracker.Phase
	Elapsed   time.Duration // time in the current phase
	Threshold time.Duration // zero when the phase has no threshold
	Message   string        // empty unless Due
	Hints     []string
	DebtOwed  bool // cleanup debt is outstanding while reviewing or shipped; set even when not Due
}

// Check evaluates s against th. It never mutates the session.
func Check(t *tracker.Tracker, s *tracker.Session, th tracker.Thresholds) Result {
	phase := s.Phase()
	r := Result{
		Due:       t.DueForReminder(s, th),
		Phase:     phase,
		Elapsed:   t.TimeInPhase(s),
		Threshold: th[phase],
		DebtOwed:  s.CleanupDebt() && (phase == tracker.Reviewing || phase == tracker.Shipped),
	}
	if !r.Due {
		return r
	}

	r.Message = fmt.Sprintf("%s for %s (limit %s). %s",
		phase.Title(), FormatDuration(r.Elapsed), FormatDuration(r.Threshold), phaseNudge[phase])
	r.Hints = Hints(s.Stack(), phase)
	if r.DebtOwed {
		r.Hints = append(r.Hints, "Cleanup debt is still open: finish a structuring pass before shipping.")
	}
	return r
}

// DebtOwedMessage describes outstanding cleanup debt in phase p. It applies
// whenever Result.DebtOwed is set, whether or not the reminder is due.
func DebtOwedMessage(p tracker.Phase) string {
	if p == tracker.Shipped {
		return "shipped with cleanup owed"
	}
	return "cleanup owed before shipping"
}

// Hints returns stack-specific advice for a phase, falling back to the
// generic advice when the stack has none.
func Hints(stack string, phase tracker.Phase) []string {
	if byPhase, ok := stackHints[detect.Normalize(stack)]; ok {
		if hints, ok := byPhase[phase]; ok {
			return append([]string(nil), hints...)
		}
	}
	if h, ok := genericHints[phase]; ok {
		return []string{h}
	}
	return nil
}

// FormatDuration renders d as e.g. "1h05m" or "12m".
func FormatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh%02dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}
