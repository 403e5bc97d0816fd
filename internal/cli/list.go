// list.go implements "vibe list" for browsing stored sessions.
package cli

import (
	"fmt"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

var limitFlag int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List recent sessions",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().IntVar(&limitFlag, "limit", 10, "Maximum number of sessions to show")
}

func runList(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	sessions, err := ws.store.List(limitFlag)
	if err != nil {
		return fmt.Errorf("failed to list sessions: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(sessions) == 0 {
		fmt.Fprintln(out, "No sessions yet. Start one with: vibe start")
		return nil
	}

	for _, s := range sessions {
		debt := ""
		if s.Debt {
			debt = "  [debt]"
		}
		stack := s.Stack
		if stack == "" {
			stack = "-"
		}
		fmt.Fprintf(out, "  %-36s  %-6s  %-10s  %-11s  %3d activities  %s%s\n",
			s.ID, s.Status, stack, s.Phase, s.Activities, humanize.Time(s.UpdatedAt), debt)
	}
	return nil
}
