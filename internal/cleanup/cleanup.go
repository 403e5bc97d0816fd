// Package cleanup implements pruning of old session report directories.
package cleanup

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/berth-dev/vibe/internal/report"
)

// reportDirs returns the names of report directories in dir along with
// the start times encoded in them. A missing dir yields no entries.
func reportDirs(dir string) ([]string, map[string]time.Time, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, nil
		}
		return nil, nil, fmt.Errorf("reading reports directory: %w", err)
	}

	var names []string
	times := make(map[string]time.Time)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		t, parseErr := report.ParseDirName(entry.Name())
		if parseErr != nil {
			// Skip directories that don't match the timestamp format.
			continue
		}
		names = append(names, entry.Name())
		times[entry.Name()] = t
	}

	// Timestamp names sort chronologically.
	sort.Strings(names)
	return names, times, nil
}

// PruneByAge removes report directories older than maxAgeDays.
// If dryRun is true, no directories are deleted; the function only returns
// the names that would be removed.
func PruneByAge(dir string, maxAgeDays int, dryRun bool) ([]string, error) {
	names, times, err := reportDirs(dir)
	if err != nil {
		return nil, err
	}

	cutoff := time.Now().AddDate(0, 0, -maxAgeDays)
	var pruned []string
	for _, name := range names {
		if !times[name].Before(cutoff) {
			continue
		}
		if err := remove(dir, name, dryRun); err != nil {
			return pruned, err
		}
		pruned = append(pruned, name)
	}

	return pruned, nil
}

// PruneKeepRecent removes all report directories except the most recent
// keep directories. If dryRun is true, no directories are deleted.
func PruneKeepRecent(dir string, keep int, dryRun bool) ([]string, error) {
	names, _, err := reportDirs(dir)
	if err != nil {
		return nil, err
	}
	if len(names) <= keep {
		return nil, nil
	}

	var pruned []string
	for _, name := range names[:len(names)-keep] {
		if err := remove(dir, name, dryRun); err != nil {
			return pruned, err
		}
		pruned = append(pruned, name)
	}

	return pruned, nil
}

func remove(dir, name string, dryRun bool) error {
	if dryRun {
		return nil
	}
	if err := os.RemoveAll(filepath.Join(dir, name)); err != nil {
		return fmt.Errorf("removing %s: %w", name, err)
	}
	return nil
}
