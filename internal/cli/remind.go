// remind.go implements "vibe remind", the polling entry point for timers
// and shell prompts.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/berth-dev/vibe/internal/log"
	"github.com/berth-dev/vibe/internal/reminder"
)

// remindDueExitCode is returned by "vibe remind --exit-code" when a reminder is due.
const remindDueExitCode = 2

var exitCodeFlag bool

var remindCmd = &cobra.Command{
	Use:   "remind",
	Short: "Print a reminder if the session has stayed too long in its phase",
	Long: `Check the current session against the configured per-phase thresholds.
Prints nothing when no reminder is due. With --exit-code, exits with status 2
when a reminder is due so schedulers and shell prompts can react.`,
	Args: cobra.NoArgs,
	RunE: runRemind,
}

func init() {
	remindCmd.Flags().BoolVar(&exitCodeFlag, "exit-code", false, "Exit with status 2 when a reminder is due")
}

func runRemind(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	s, err := ws.current()
	if err != nil {
		return err
	}
	th, err := ws.thresholds()
	if err != nil {
		return err
	}

	r := reminder.Check(ws.tracker, s, th)
	if !r.Due {
		return nil
	}

	ws.record(log.LogEvent{
		Event:      log.EventReminderDue,
		SessionID:  s.ID(),
		Phase:      r.Phase.String(),
		DurationMs: r.Elapsed.Milliseconds(),
	})

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, r.Message)
	for _, h := range r.Hints {
		fmt.Fprintf(out, "  - %s\n", h)
	}

	if exitCodeFlag {
		return &exitError{code: remindDueExitCode}
	}
	return nil
}
