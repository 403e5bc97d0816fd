// init.go implements "vibe init", which writes .vibe/config.yaml.
package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/berth-dev/vibe/internal/config"
	"github.com/berth-dev/vibe/internal/detect"
)

var initForceFlag bool

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create .vibe/config.yaml with default reminder thresholds",
	Args:  cobra.NoArgs,
	RunE:  runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForceFlag, "force", false, "Overwrite an existing config")
}

func runInit(cmd *cobra.Command, args []string) error {
	root, err := resolveRoot()
	if err != nil {
		return err
	}

	path := filepath.Join(root, config.Dir, "config.yaml")
	if _, err := os.Stat(path); err == nil && !initForceFlag {
		return fmt.Errorf("%s already exists; use --force to overwrite", path)
	} else if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("checking config: %w", err)
	}

	cfg := config.DefaultConfig()
	cfg.Stack = detect.DetectStack(root)
	if err := config.WriteConfig(root, cfg); err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Wrote %s\n", path)
	if cfg.Stack != "" {
		fmt.Fprintf(out, "Detected stack: %s\n", cfg.Stack)
	}
	return nil
}
