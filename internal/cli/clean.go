// clean.go implements the "vibe clean" command for report directory cleanup.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/berth-dev/vibe/internal/cleanup"
	"github.com/berth-dev/vibe/internal/config"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove old session reports",
	Long: `Remove old report directories from the reports directory (.vibe/reports/).

By default, removes reports older than the configured max_age_days (default 30).
Use --keep to keep only the N most recent reports instead.
Use --dry-run to preview what would be removed.`,
	Args: cobra.NoArgs,
	RunE: runClean,
}

var (
	keepFlag   int
	dryRunFlag bool
)

func init() {
	cleanCmd.Flags().IntVar(&keepFlag, "keep", 0, "Keep only the last N reports (0 = use age-based cleanup)")
	cleanCmd.Flags().BoolVar(&dryRunFlag, "dry-run", false, "Preview what would be removed without deleting")
}

func runClean(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}
	cfg, err := config.LoadOrDefault(root)
	if err != nil {
		return err
	}
	reportsDir := cfg.ReportsDir(root)

	var pruned []string
	if keepFlag > 0 {
		pruned, err = cleanup.PruneKeepRecent(reportsDir, keepFlag, dryRunFlag)
	} else {
		maxAge := cfg.Cleanup.MaxAgeDays
		if maxAge <= 0 {
			maxAge = 30
		}
		pruned, err = cleanup.PruneByAge(reportsDir, maxAge, dryRunFlag)
	}
	if err != nil {
		return fmt.Errorf("cleanup failed: %w", err)
	}

	out := cmd.OutOrStdout()
	if len(pruned) == 0 {
		fmt.Fprintln(out, "No reports to clean up.")
		return nil
	}

	verb := "Removed"
	if dryRunFlag {
		verb = "Would remove"
	}
	for _, name := range pruned {
		fmt.Fprintf(out, "  %s %s\n", verb, name)
	}
	fmt.Fprintf(out, "%s %d report(s).\n", verb, len(pruned))

	return nil
}
