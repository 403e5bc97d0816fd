// Package session provides SQLite-backed persistence for vibe sessions.
package session

import (
	"errors"
	"time"
)

// Session status values.
const (
	StatusActive = "active"
	StatusEnded  = "ended"
)

// ErrStale is returned by Store.Save when the stored session changed after
// the snapshot was loaded.
var ErrStale = errors.New("session was changed by another command")

// Summary provides a high-level view of a stored session for listing.
type Summary struct {
	ID         string
	Project    string
	Stack      string
	Phase      string
	Status     string
	Debt       bool
	Activities int
	StartedAt  time.Time
	UpdatedAt  time.Time
}
