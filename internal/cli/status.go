// status.go implements the "vibe status" command showing the current session.
package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/berth-dev/vibe/internal/reminder"
	"github.com/berth-dev/vibe/internal/tui"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current session",
	Long: `Display the current session's phase, time in phase, activity count,
cleanup debt and whether a reminder is due.`,
	Args: cobra.NoArgs,
	RunE: runStatus,
}

func runStatus(cmd *cobra.Command, args []string) error {
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

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Session:    %s\n", s.ID())
	if s.Stack() != "" {
		fmt.Fprintf(out, "Stack:      %s\n", s.Stack())
	}
	fmt.Fprintf(out, "Started:    %s\n", humanize.Time(s.StartedAt()))
	fmt.Fprintf(out, "Phase:      %s\n", s.Phase().Title())

	limit := "no limit"
	if r.Threshold > 0 {
		limit = "limit " + reminder.FormatDuration(r.Threshold)
	}
	fmt.Fprintf(out, "In phase:   %s (%s)\n", reminder.FormatDuration(r.Elapsed), limit)
	fmt.Fprintf(out, "Activities: %d\n", s.Len())
	switch {
	case r.DebtOwed:
		fmt.Fprintf(out, "Debt:       %s\n", tui.WarningStyle.Render(reminder.DebtOwedMessage(r.Phase)))
	case s.CleanupDebt():
		fmt.Fprintf(out, "Debt:       %s\n", tui.WarningStyle.Render("cleanup owed"))
	default:
		fmt.Fprintln(out, "Debt:       clear")
	}

	if r.Due {
		fmt.Fprintln(out)
		fmt.Fprintln(out, tui.WarningStyle.Render("Reminder: "+r.Message))
	}
	return nil
}
