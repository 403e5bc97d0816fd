// Package tracker implements the development-session phase tracker.
// This file defines the fixed, ordered set of session phases.
package tracker

import (
	"fmt"
	"strings"
)

// Phase is a named stage in a session's lifecycle.
type Phase int

// Phases in their fixed forward order.
const (
	Exploring   Phase = iota // initial: free-form creative work
	Validating               // functional verification of what was built
	Structuring              // cleanup/refactor pass
	Reviewing                // external feedback incorporation
	Shipped                  // terminal: the work has been released
)

var phaseNames = [...]string{
	Exploring:   "exploring",
	Validating:  "validating",
	Structuring: "structuring",
	Reviewing:   "reviewing",
	Shipped:     "shipped",
}

// Phases returns every phase in forward order.
func Phases() []Phase {
	return []Phase{Exploring, Validating, Structuring, Reviewing, Shipped}
}

// Valid reports whether p is one of the known phases.
func (p Phase) Valid() bool {
	return p >= Exploring && p <= Shipped
}

// IsTerminal reports whether no forward transition exists from p.
func (p Phase) IsTerminal() bool {
	return p == Shipped
}

// Next returns the phase that follows p. ok is false for the terminal
// phase and for unknown values.
func (p Phase) Next() (next Phase, ok bool) {
	if !p.Valid() || p.IsTerminal() {
		return p, false
	}
	return p + 1, true
}

func (p Phase) String() string {
	if !p.Valid() {
		return fmt.Sprintf("phase(%d)", int(p))
	}
	return phaseNames[p]
}

// Title returns the display form of the phase name, e.g. "Exploring".
func (p Phase) Title() string {
	s := p.String()
	if !p.Valid() {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParsePhase maps a case-insensitive phase name to its Phase.
// "vibe" is accepted as an alias of Exploring.
func ParsePhase(s string) (Phase, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	if name == "vibe" {
		return Exploring, nil
	}
	for p, n := range phaseNames {
		if n == name {
			return Phase(p), nil
		}
	}
	return Exploring, fmt.Errorf("%w: unknown phase %q", ErrInvalidInput, s)
}

// MarshalText encodes the phase as its lowercase name.
func (p Phase) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: unknown phase %d", ErrInvalidInput, int(p))
	}
	return []byte(p.String()), nil
}

// UnmarshalText decodes a phase name produced by MarshalText.
func (p *Phase) UnmarshalText(text []byte) error {
	parsed, err := ParsePhase(string(text))
	if err != nil {
		return err
	}
	*p = parsed
	return nil
}
