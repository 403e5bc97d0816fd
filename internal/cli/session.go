// session.go implements the commands that mutate the current session.
package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/berth-dev/vibe/internal/detect"
	"github.com/berth-dev/vibe/internal/log"
	"github.com/berth-dev/vibe/internal/report"
)

var (
	stackFlag string
	forceFlag bool
	debtFlag  bool
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a new session",
	Long: `Start a new session in the exploring phase.

The stack label comes from --stack, then the config file, then detection
from the project files.`,
	Args: cobra.NoArgs,
	RunE: runStart,
}

var logCmd = &cobra.Command{
	Use:   "log <description>",
	Short: "Record an activity",
	Long: `Append an activity to the current session's log.
Use --debt for shortcuts that will need a cleanup pass.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLog,
}

var advanceCmd = &cobra.Command{
	Use:   "advance",
	Short: "Move to the next phase",
	Args:  cobra.NoArgs,
	RunE:  runAdvance,
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Go back to exploring",
	Long: `Restart the creative phase. The activity log and any open cleanup
debt are kept.`,
	Args: cobra.NoArgs,
	RunE: runReset,
}

var clearDebtCmd = &cobra.Command{
	Use:   "clear-debt",
	Short: "Acknowledge that the owed cleanup is done",
	Args:  cobra.NoArgs,
	RunE:  runClearDebt,
}

var endCmd = &cobra.Command{
	Use:   "end",
	Short: "End the session and write its report",
	Args:  cobra.NoArgs,
	RunE:  runEnd,
}

func init() {
	startCmd.Flags().StringVar(&stackFlag, "stack", "", "Stack label, e.g. react, cpp, python, rust")
	startCmd.Flags().BoolVar(&forceFlag, "force", false, "End the active session and start a new one")
	logCmd.Flags().BoolVar(&debtFlag, "debt", false, "The activity adds technical debt")
}

func runStart(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	existing, err := ws.store.LatestActive(ws.root)
	if err != nil {
		return fmt.Errorf("loading session: %w", err)
	}
	if existing != nil {
		if !forceFlag {
			return fmt.Errorf("session %s is still active; end it with 'vibe end' or use --force", existing.ID)
		}
		if err := ws.store.End(existing.ID); err != nil {
			return err
		}
		ws.record(log.LogEvent{Event: log.EventSessionEnded, SessionID: existing.ID, Phase: existing.Phase.String()})
	}

	stack := stackFlag
	if stack == "" {
		stack = ws.cfg.Stack
	}
	if stack == "" {
		stack = detect.DetectStack(ws.root)
	}
	stack = detect.Normalize(stack)

	s := ws.tracker.Create(stack)
	if err := ws.save(s); err != nil {
		return err
	}
	ws.record(log.LogEvent{
		Time:      s.StartedAt().UTC(),
		Event:     log.EventSessionStarted,
		SessionID: s.ID(),
		Stack:     stack,
		Phase:     s.Phase().String(),
	})

	label := stack
	if label == "" {
		label = "unknown stack"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Started session %s (%s), phase: %s\n", s.ID(), label, s.Phase().Title())
	return nil
}

func runLog(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	s, err := ws.current()
	if err != nil {
		return err
	}

	description := strings.Join(args, " ")
	if err := ws.tracker.LogActivity(s, description, debtFlag); err != nil {
		return err
	}
	if err := ws.save(s); err != nil {
		return err
	}
	ws.record(log.LogEvent{
		Event:       log.EventActivityLogged,
		SessionID:   s.ID(),
		Phase:       s.Phase().String(),
		Description: description,
		Debt:        debtFlag,
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Logged #%d: %s\n", s.Len(), description)
	if debtFlag {
		fmt.Fprintln(out, "Cleanup debt recorded.")
	}
	return nil
}

func runAdvance(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	s, err := ws.current()
	if err != nil {
		return err
	}

	from := s.Phase()
	inPhase := ws.tracker.TimeInPhase(s)
	next, err := ws.tracker.AdvancePhase(s)
	if err != nil {
		return err
	}
	if err := ws.save(s); err != nil {
		return err
	}
	ws.record(log.LogEvent{
		Time:       s.PhaseEnteredAt().UTC(),
		Event:      log.EventPhaseAdvanced,
		SessionID:  s.ID(),
		From:       from.String(),
		Phase:      next.String(),
		DurationMs: inPhase.Milliseconds(),
	})

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s -> %s\n", from.Title(), next.Title())
	if s.CleanupDebt() && next.IsTerminal() {
		fmt.Fprintln(out, "Warning: shipped with open cleanup debt.")
	}
	return nil
}

func runReset(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	s, err := ws.current()
	if err != nil {
		return err
	}

	from := s.Phase()
	ws.tracker.ResetToVibe(s)
	if err := ws.save(s); err != nil {
		return err
	}
	ws.record(log.LogEvent{
		Time:      s.PhaseEnteredAt().UTC(),
		Event:     log.EventSessionReset,
		SessionID: s.ID(),
		From:      from.String(),
		Phase:     s.Phase().String(),
	})

	fmt.Fprintf(cmd.OutOrStdout(), "%s -> %s (history and debt kept)\n", from.Title(), s.Phase().Title())
	return nil
}

func runClearDebt(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	s, err := ws.current()
	if err != nil {
		return err
	}

	if !s.CleanupDebt() {
		fmt.Fprintln(cmd.OutOrStdout(), "No cleanup debt to clear.")
		return nil
	}
	ws.tracker.ClearDebtFlag(s)
	if err := ws.save(s); err != nil {
		return err
	}
	ws.record(log.LogEvent{Event: log.EventDebtCleared, SessionID: s.ID(), Phase: s.Phase().String()})

	fmt.Fprintln(cmd.OutOrStdout(), "Cleanup debt cleared.")
	return nil
}

func runEnd(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	s, err := ws.current()
	if err != nil {
		return err
	}

	path, err := report.Write(ws.cfg.ReportsDir(ws.root), report.Generate(ws.tracker, s, ws.events(s.ID())))
	if err != nil {
		return err
	}

	if err := ws.store.End(s.ID()); err != nil {
		return err
	}
	ws.record(log.LogEvent{
		Event:      log.EventSessionEnded,
		SessionID:  s.ID(),
		Phase:      s.Phase().String(),
		DurationMs: ws.tracker.Elapsed(s).Milliseconds(),
	})

	fmt.Fprintf(cmd.OutOrStdout(), "Ended session %s. Report: %s\n", s.ID(), path)
	return nil
}
