package tracker

import "time"

// Summary is an end-of-session view of a Session.
type Summary struct {
	ID            string
	Stack         string
	Phase         Phase
	StartedAt     time.Time
	Elapsed       time.Duration
	TimeInPhase   time.Duration
	Activities    int
	DebtIncurring int
	PerPhase      map[Phase]int
	CleanupDebt   bool
}

// Summarize computes a Summary for s at the tracker's current time.
func (t *Tracker) Summarize(s *Session) Summary {
	sum := Summary{
		ID:          s.id,
		Stack:       s.stack,
		Phase:       s.phase,
		StartedAt:   s.startedAt,
		Elapsed:     t.Elapsed(s),
		TimeInPhase: t.TimeInPhase(s),
		Activities:  len(s.activities),
		PerPhase:    make(map[Phase]int),
		CleanupDebt: s.cleanupDebt,
	}
	for _, a := range s.activities {
		sum.PerPhase[a.Phase]++
		if a.DebtIncurring {
			sum.DebtIncurring++
		}
	}
	return sum
}
