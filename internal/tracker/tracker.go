package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Thresholds maps each phase to the longest a session may stay in it
// before a reminder is due. Phases without a positive entry never trigger.
type Thresholds map[Phase]time.Duration

// DefaultThresholds returns reminder thresholds within the ranges the
// methodology suggests for each phase.
func DefaultThresholds() Thresholds {
	return Thresholds{
		Exploring:   60 * time.Minute,
		Validating:  20 * time.Minute,
		Structuring: 90 * time.Minute,
		Reviewing:   30 * time.Minute,
	}
}

// Tracker creates sessions and applies operations to them. It holds only
// immutable configuration and may be shared between goroutines.
type Tracker struct {
	now   func() time.Time
	newID func() string
}

// Option configures a Tracker.
type Option func(*Tracker)

// WithClock overrides the time source.
func WithClock(now func() time.Time) Option {
	return func(t *Tracker) { t.now = now }
}

// WithIDGenerator overrides how session IDs are assigned.
func WithIDGenerator(newID func() string) Option {
	return func(t *Tracker) { t.newID = newID }
}

// New returns a Tracker using the wall clock and random UUIDs unless
// overridden by opts.
func New(opts ...Option) *Tracker {
	t := &Tracker{
		now:   time.Now,
		newID: func() string { return uuid.New().String() },
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}

// Now returns the tracker's current time.
func (t *Tracker) Now() time.Time {
	return t.now()
}

// Create starts a new session in the Exploring phase.
func (t *Tracker) Create(stack string) *Session {
	now := t.now()
	return &Session{
		id:             t.newID(),
		stack:          stack,
		phase:          Exploring,
		startedAt:      now,
		phaseEnteredAt: now,
	}
}

// LogActivity appends an activity to the session's log. A debt-incurring
// activity raises the session's cleanup-debt flag.
func (t *Tracker) LogActivity(s *Session, description string, debtIncurring bool) error {
	if strings.TrimSpace(description) == "" {
		return fmt.Errorf("%w: activity description is empty", ErrInvalidInput)
	}

	s.activities = append(s.activities, Activity{
		Description:   description,
		DebtIncurring: debtIncurring,
		Phase:         s.phase,
		Timestamp:     t.now(),
	})
	if debtIncurring {
		s.cleanupDebt = true
	}
	return nil
}

// AdvancePhase moves the session one step forward and returns the new
// phase. Advancing from Shipped fails and leaves the session unchanged.
func (t *Tracker) AdvancePhase(s *Session) (Phase, error) {
	next, ok := s.phase.Next()
	if !ok {
		return s.phase, fmt.Errorf("%w: cannot advance past %s", ErrIllegalTransition, s.phase)
	}
	s.phase = next
	s.phaseEnteredAt = t.now()
	return next, nil
}

// ResetToVibe returns the session to Exploring from any phase. Activities
// and the cleanup-debt flag are kept.
func (t *Tracker) ResetToVibe(s *Session) {
	s.phase = Exploring
	s.phaseEnteredAt = t.now()
}

// ClearDebtFlag acknowledges that the owed cleanup has been done.
func (t *Tracker) ClearDebtFlag(s *Session) {
	s.cleanupDebt = false
}

// TimeInPhase returns how long the session has been in its current phase.
func (t *Tracker) TimeInPhase(s *Session) time.Duration {
	return t.now().Sub(s.phaseEnteredAt)
}

// Elapsed returns how long ago the session was started.
func (t *Tracker) Elapsed(s *Session) time.Duration {
	return t.now().Sub(s.startedAt)
}

// DueForReminder reports whether the session has stayed in its current
// phase longer than the threshold configured for that phase.
func (t *Tracker) DueForReminder(s *Session, thresholds Thresholds) bool {
	limit, ok := thresholds[s.phase]
	if !ok || limit <= 0 {
		return false
	}
	return t.TimeInPhase(s) > limit
}

// Restore rebuilds a session from a snapshot, typically one loaded from
// storage. The snapshot is validated before anything is built.
func (t *Tracker) Restore(snap Snapshot) (*Session, error) {
	if strings.TrimSpace(snap.ID) == "" {
		return nil, fmt.Errorf("%w: snapshot has no session id", ErrInvalidInput)
	}
	if !snap.Phase.Valid() {
		return nil, fmt.Errorf("%w: snapshot has unknown phase %d", ErrInvalidInput, int(snap.Phase))
	}
	if snap.Revision < 0 {
		return nil, fmt.Errorf("%w: snapshot has negative revision %d", ErrInvalidInput, snap.Revision)
	}
	for i, a := range snap.Activities {
		if strings.TrimSpace(a.Description) == "" {
			return nil, fmt.Errorf("%w: activity %d has empty description", ErrInvalidInput, i)
		}
		if !a.Phase.Valid() {
			return nil, fmt.Errorf("%w: activity %d has unknown phase %d", ErrInvalidInput, i, int(a.Phase))
		}
	}

	activities := make([]Activity, len(snap.Activities))
	copy(activities, snap.Activities)

	return &Session{
		id:             snap.ID,
		stack:          snap.Stack,
		phase:          snap.Phase,
		startedAt:      snap.StartedAt,
		phaseEnteredAt: snap.PhaseEnteredAt,
		activities:     activities,
		cleanupDebt:    snap.CleanupDebt,
		revision:       snap.Revision,
	}, nil
}
