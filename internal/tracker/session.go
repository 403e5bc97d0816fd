package tracker

import "time"

// Activity is a timestamped record of a unit of work performed during a
// session.
type Activity struct {
	Description   string    `json:"description"`
	DebtIncurring bool      `json:"debt_incurring"`
	Phase         Phase     `json:"phase"`
	Timestamp     time.Time `json:"timestamp"`
}

// Session is the state of one development session. It is created by a
// Tracker and mutated only through Tracker methods.
//
// A Session is not safe for concurrent use; callers that share one across
// goroutines must synchronize access themselves.
type Session struct {
	id             string
	stack          string
	phase          Phase
	startedAt      time.Time
	phaseEnteredAt time.Time
	activities     []Activity
	cleanupDebt    bool
	revision       int64
}

// ID returns the session's opaque identifier.
func (s *Session) ID() string { return s.id }

// Stack returns the technology label the session was created with.
func (s *Session) Stack() string { return s.stack }

// Phase returns the current phase.
func (s *Session) Phase() Phase { return s.phase }

// StartedAt returns when the session was created.
func (s *Session) StartedAt() time.Time { return s.startedAt }

// PhaseEnteredAt returns when the current phase was entered.
func (s *Session) PhaseEnteredAt() time.Time { return s.phaseEnteredAt }

// CleanupDebt reports whether a debt-incurring activity has been logged
// since the flag was last cleared.
func (s *Session) CleanupDebt() bool { return s.cleanupDebt }

// Activities returns a copy of the activity log in insertion order.
func (s *Session) Activities() []Activity {
	out := make([]Activity, len(s.activities))
	copy(out, s.activities)
	return out
}

// Len returns the number of logged activities.
func (s *Session) Len() int { return len(s.activities) }

// Revision returns the storage revision the session was restored from.
// It is zero for sessions that have never been stored.
func (s *Session) Revision() int64 { return s.revision }

// Snapshot is the exported, serializable form of a Session.
type Snapshot struct {
	ID             string     `json:"id"`
	Stack          string     `json:"stack"`
	Phase          Phase      `json:"phase"`
	StartedAt      time.Time  `json:"started_at"`
	PhaseEnteredAt time.Time  `json:"phase_entered_at"`
	Activities     []Activity `json:"activities"`
	CleanupDebt    bool       `json:"cleanup_debt"`
	Revision       int64      `json:"revision,omitempty"`
}

// Snapshot captures the session's current state.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		ID:             s.id,
		Stack:          s.stack,
		Phase:          s.phase,
		StartedAt:      s.startedAt,
		PhaseEnteredAt: s.phaseEnteredAt,
		Activities:     s.Activities(),
		CleanupDebt:    s.cleanupDebt,
		Revision:       s.revision,
	}
}
