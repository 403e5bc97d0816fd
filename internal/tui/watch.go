package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	vlog "github.com/berth-dev/vibe/internal/log"
	"github.com/berth-dev/vibe/internal/reminder"
	"github.com/berth-dev/vibe/internal/tracker"
)

// tickInterval is how often the watch view re-checks the reminder.
const tickInterval = time.Second

type tickMsg time.Time

func tick() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg { return tickMsg(t) })
}

// Hooks connect the watch view to the caller's persistence and
// notification. Any field may be nil.
type Hooks struct {
	// Reload returns the current stored state of the session. It runs on
	// every tick and before every mutation.
	Reload func() (*tracker.Session, error)

	// OnChange runs after every mutation of s. event is one of the log
	// event names; from is the phase before the change.
	OnChange func(s *tracker.Session, event string, from tracker.Phase) error

	// OnDue runs once each time a phase's reminder becomes due.
	OnDue func(reminder.Result)
}

// WatchModel is the Bubble Tea model behind "vibe watch".
type WatchModel struct {
	tracker    *tracker.Tracker
	session    *tracker.Session
	thresholds tracker.Thresholds
	hooks      Hooks

	keys     KeyMap
	help     help.Model
	spinner  spinner.Model
	result   reminder.Result
	notified bool
	status   string
	err      error
	width    int
}

// NewWatchModel creates a WatchModel observing s.
func NewWatchModel(t *tracker.Tracker, s *tracker.Session, th tracker.Thresholds, hooks Hooks) WatchModel {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = TitleStyle

	m := WatchModel{
		tracker:    t,
		session:    s,
		thresholds: th,
		hooks:      hooks,
		keys:       DefaultKeyMap,
		help:       help.New(),
		spinner:    sp,
		width:      80,
	}
	m.refresh()
	return m
}

// Init starts the spinner and the reminder ticker.
func (m WatchModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, tick())
}

// Update handles messages for the watch view.
func (m WatchModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		return m, nil

	case tickMsg:
		if err := m.sync(); err != nil {
			m.err = err
		}
		m.refresh()
		return m, tick()

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m WatchModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil

	case key.Matches(msg, m.keys.Advance, m.keys.Reset, m.keys.ClearDebt):
		m.err = nil
		if err := m.sync(); err != nil {
			m.err = err
			m.refresh()
			return m, nil
		}
		m.apply(msg)
	}
	return m, nil
}

// apply performs the mutation bound to msg on the freshly loaded session.
func (m *WatchModel) apply(msg tea.KeyMsg) {
	from := m.session.Phase()

	switch {
	case key.Matches(msg, m.keys.Advance):
		next, err := m.tracker.AdvancePhase(m.session)
		if err != nil {
			m.err = err
			m.refresh()
			return
		}
		m.status = fmt.Sprintf("Advanced to %s", next.Title())
		m.changed(vlog.EventPhaseAdvanced, from)

	case key.Matches(msg, m.keys.Reset):
		m.tracker.ResetToVibe(m.session)
		m.status = "Back to exploring"
		m.changed(vlog.EventSessionReset, from)

	case key.Matches(msg, m.keys.ClearDebt):
		if !m.session.CleanupDebt() {
			m.status = "No cleanup debt to clear"
			m.refresh()
			return
		}
		m.tracker.ClearDebtFlag(m.session)
		m.status = "Cleanup debt cleared"
		m.changed(vlog.EventDebtCleared, from)
	}
}

// sync replaces the observed session with its stored state. A phase change
// made elsewhere re-arms the reminder.
func (m *WatchModel) sync() error {
	if m.hooks.Reload == nil {
		return nil
	}
	s, err := m.hooks.Reload()
	if err != nil {
		return err
	}
	if s.Phase() != m.session.Phase() || !s.PhaseEnteredAt().Equal(m.session.PhaseEnteredAt()) {
		m.notified = false
	}
	m.session = s
	return nil
}

// changed persists a mutation and re-arms the reminder when the phase
// was re-entered.
func (m *WatchModel) changed(event string, from tracker.Phase) {
	if event != vlog.EventDebtCleared {
		m.notified = false
	}
	if m.hooks.OnChange != nil {
		if err := m.hooks.OnChange(m.session, event, from); err != nil {
			m.err = err
		}
	}
	m.refresh()
}

func (m *WatchModel) refresh() {
	m.result = reminder.Check(m.tracker, m.session, m.thresholds)
	if m.result.Due && !m.notified {
		m.notified = true
		if m.hooks.OnDue != nil {
			m.hooks.OnDue(m.result)
		}
	}
}

// Session returns the observed session.
func (m WatchModel) Session() *tracker.Session {
	return m.session
}

// Result returns the most recent reminder check.
func (m WatchModel) Result() reminder.Result {
	return m.result
}

// Err returns the error from the last action, if any.
func (m WatchModel) Err() error {
	return m.err
}

// View renders the watch view.
func (m WatchModel) View() string {
	var b strings.Builder

	stack := m.session.Stack()
	if stack == "" {
		stack = "unknown stack"
	}
	fmt.Fprintf(&b, "%s %s  %s\n\n", m.spinner.View(), TitleStyle.Render("vibe session"), DimStyle.Render(stack))
	b.WriteString(PhaseStrip(m.session.Phase()))
	b.WriteString("\n\n")

	limit := "no limit"
	if m.result.Threshold > 0 {
		limit = "limit " + reminder.FormatDuration(m.result.Threshold)
	}
	fmt.Fprintf(&b, "In phase:   %s (%s)\n", reminder.FormatDuration(m.result.Elapsed), limit)
	fmt.Fprintf(&b, "Session:    %s\n", reminder.FormatDuration(m.tracker.Elapsed(m.session)))
	fmt.Fprintf(&b, "Activities: %d\n", m.session.Len())
	if m.result.DebtOwed {
		b.WriteString("Debt:       " + WarningStyle.Render(reminder.DebtOwedMessage(m.result.Phase)) + "\n")
	} else if m.session.CleanupDebt() {
		b.WriteString("Debt:       " + WarningStyle.Render("cleanup owed") + "\n")
	} else {
		b.WriteString("Debt:       " + SuccessStyle.Render("clear") + "\n")
	}

	if m.result.Due {
		var rb strings.Builder
		rb.WriteString(WarningStyle.Render(m.result.Message))
		for _, h := range m.result.Hints {
			rb.WriteString("\n• " + h)
		}
		width := m.width - 4
		if width < 20 {
			width = 20
		}
		b.WriteString("\n" + ReminderBoxStyle.Width(width).Render(rb.String()) + "\n")
	}

	if m.err != nil {
		b.WriteString("\n" + ErrorStyle.Render(m.err.Error()) + "\n")
	} else if m.status != "" {
		b.WriteString("\n" + DimStyle.Render(m.status) + "\n")
	}

	b.WriteString("\n" + m.help.View(m.keys))
	return b.String()
}
