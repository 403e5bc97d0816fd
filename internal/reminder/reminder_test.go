package reminder

import (
	"strings"
	"testing"
	"time"

	"github.com/berth-dev/vibe/internal/testutil"
	"github.com/berth-dev/vibe/internal/tracker"
)

func newSession(t *testing.T, stack string) (*tracker.Tracker, *tracker.Session, *testutil.Clock) {
	t.Helper()
	clock := testutil.NewClock(time.Date(2026, 1, 5, 14, 0, 0, 0, time.UTC))
	tr := tracker.New(tracker.WithClock(clock.Now))
	return tr, tr.Create(stack), clock
}

func TestCheck_NotDue(t *testing.T) {
	tr, s, clock := newSession(t, "react")
	clock.Advance(10 * time.Minute)

	r := Check(tr, s, tracker.Thresholds{tracker.Exploring: time.Hour})
	if r.Due {
		t.Fatal("Due = true, want false")
	}
	if r.Message != "" || len(r.Hints) != 0 {
		t.Errorf("expected no message when not due, got %q %v", r.Message, r.Hints)
	}
	if r.Elapsed != 10*time.Minute || r.Threshold != time.Hour {
		t.Errorf("Elapsed/Threshold = %v/%v", r.Elapsed, r.Threshold)
	}
}

func TestCheck_DueUsesStackHints(t *testing.T) {
	tr, s, clock := newSession(t, "React")
	if _, err := tr.AdvancePhase(s); err != nil {
		t.Fatalf("advance: %v", err)
	}
	if _, err := tr.AdvancePhase(s); err != nil {
		t.Fatalf("advance: %v", err)
	}
	clock.Advance(95 * time.Minute)

	r := Check(tr, s, tracker.DefaultThresholds())
	if !r.Due {
		t.Fatal("Due = false, want true")
	}
	if !strings.HasPrefix(r.Message, "Structuring for 1h35m (limit 1h30m).") {
		t.Errorf("Message = %q", r.Message)
	}
	if len(r.Hints) != 2 || !strings.Contains(r.Hints[0], "prop chains") {
		t.Errorf("Hints = %v", r.Hints)
	}
}

func TestCheck_DebtOwedWhileReviewing(t *testing.T) {
	tr, s, clock := newSession(t, "elixir")
	if err := tr.LogActivity(s, "skipped input validation", true); err != nil {
		t.Fatalf("LogActivity: %v", err)
	}
	for i := 0; i < 3; i++ {
		if _, err := tr.AdvancePhase(s); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	clock.Advance(31 * time.Minute)

	r := Check(tr, s, tracker.DefaultThresholds())
	if !r.Due || !r.DebtOwed {
		t.Fatalf("Due/DebtOwed = %v/%v, want true/true", r.Due, r.DebtOwed)
	}
	last := r.Hints[len(r.Hints)-1]
	if !strings.Contains(last, "Cleanup debt") {
		t.Errorf("last hint = %q, want debt warning", last)
	}
	if r.Hints[0] != genericHints[tracker.Reviewing] {
		t.Errorf("unknown stack should fall back to generic hint, got %q", r.Hints[0])
	}
}

func TestCheck_DebtOwedAfterShipping(t *testing.T) {
	tr, s, clock := newSession(t, "react")
	_ = tr.LogActivity(s, "hardcoded api url", true)
	for i := 0; i < 4; i++ {
		if _, err := tr.AdvancePhase(s); err != nil {
			t.Fatalf("advance: %v", err)
		}
	}
	clock.Advance(24 * time.Hour)

	r := Check(tr, s, tracker.DefaultThresholds())
	if r.Due {
		t.Error("shipped has no threshold and should never be due")
	}
	if !r.DebtOwed {
		t.Fatal("DebtOwed = false after shipping with open debt")
	}
	if got := DebtOwedMessage(r.Phase); got != "shipped with cleanup owed" {
		t.Errorf("DebtOwedMessage(shipped) = %q", got)
	}
	if got := DebtOwedMessage(tracker.Reviewing); got != "cleanup owed before shipping" {
		t.Errorf("DebtOwedMessage(reviewing) = %q", got)
	}
}

func TestHints_ReturnsCopy(t *testing.T) {
	h := Hints("rust", tracker.Structuring)
	h[0] = "changed"
	if Hints("rust", tracker.Structuring)[0] == "changed" {
		t.Error("Hints exposed the shared table")
	}
}

func TestHints_ShippedHasNone(t *testing.T) {
	if h := Hints("go", tracker.Shipped); h != nil {
		t.Errorf("Hints(shipped) = %v, want nil", h)
	}
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		in   time.Duration
		want string
	}{
		{0, "0m"},
		{12*time.Minute + 20*time.Second, "12m"},
		{65 * time.Minute, "1h05m"},
		{3 * time.Hour, "3h00m"},
	}
	for _, tt := range tests {
		if got := FormatDuration(tt.in); got != tt.want {
			t.Errorf("FormatDuration(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
