// report.go implements the "vibe report" command for session summaries.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/berth-dev/vibe/internal/report"
	"github.com/berth-dev/vibe/internal/tracker"
	"github.com/berth-dev/vibe/internal/tui"
)

var (
	sessionFlag string
	renderFlag  bool
	writeFlag   bool
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show the session log",
	Long: `Display a summary of the current session (or the one named by --session):
phases, activities and the cleanup still owed.`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	reportCmd.Flags().StringVar(&sessionFlag, "session", "", "Session ID (default: the active session)")
	reportCmd.Flags().BoolVar(&renderFlag, "render", false, "Render markdown for the terminal (default when stdout is a TTY)")
	reportCmd.Flags().BoolVar(&writeFlag, "write", false, "Also write the report to the reports directory")
}

func runReport(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	var s *tracker.Session
	if sessionFlag != "" {
		s, err = ws.byID(sessionFlag)
	} else {
		s, err = ws.current()
	}
	if err != nil {
		return err
	}

	r := report.Generate(ws.tracker, s, ws.events(s.ID()))

	content, err := report.Format(r)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if renderFlag || tui.IsTTY() {
		fmt.Fprintln(out, tui.RenderMarkdown(content, tui.TerminalWidth(80)))
	} else {
		fmt.Fprint(out, content)
	}

	if writeFlag {
		path, err := report.Write(ws.cfg.ReportsDir(ws.root), r)
		if err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
		fmt.Fprintf(cmd.ErrOrStderr(), "Report written to %s\n", path)
	}
	return nil
}
