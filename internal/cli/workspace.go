// workspace.go wires config, storage, event log and tracker together for
// the commands that operate on the current session.
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/berth-dev/vibe/internal/config"
	"github.com/berth-dev/vibe/internal/log"
	"github.com/berth-dev/vibe/internal/session"
	"github.com/berth-dev/vibe/internal/tracker"
)

// errNoSession is returned when a command needs an active session and
// the project has none.
var errNoSession = errors.New("no active session; start one with: vibe start")

type workspace struct {
	root    string
	cfg     *config.Config
	store   *session.Store
	logger  *log.Logger
	tracker *tracker.Tracker
	stderr  io.Writer
}

// resolveRoot returns the absolute project directory from --dir or the
// working directory.
func resolveRoot() (string, error) {
	dir := projectDir
	if dir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("getting current directory: %w", err)
		}
		dir = wd
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("resolving project directory: %w", err)
	}
	return abs, nil
}

func openWorkspace(cmd *cobra.Command) (*workspace, error) {
	root, err := resolveRoot()
	if err != nil {
		return nil, err
	}

	cfg, err := config.LoadOrDefault(root)
	if err != nil {
		return nil, err
	}

	store, err := session.NewStore(cfg.StoragePath(root))
	if err != nil {
		return nil, fmt.Errorf("opening session store: %w", err)
	}

	logger, err := log.NewLogger(root)
	if err != nil {
		_ = store.Close()
		return nil, err
	}

	return &workspace{
		root:    root,
		cfg:     cfg,
		store:   store,
		logger:  logger,
		tracker: tracker.New(),
		stderr:  cmd.ErrOrStderr(),
	}, nil
}

func (w *workspace) Close() {
	_ = w.store.Close()
}

// current restores the project's active session.
func (w *workspace) current() (*tracker.Session, error) {
	snap, err := w.store.LatestActive(w.root)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if snap == nil {
		return nil, errNoSession
	}
	return w.tracker.Restore(*snap)
}

// byID restores a stored session, active or not.
func (w *workspace) byID(id string) (*tracker.Session, error) {
	snap, err := w.store.Load(id)
	if err != nil {
		return nil, fmt.Errorf("loading session: %w", err)
	}
	if snap == nil {
		return nil, fmt.Errorf("session %s not found", id)
	}
	return w.tracker.Restore(*snap)
}

// save stores s. It fails with session.ErrStale when another command
// changed the session after s was loaded.
func (w *workspace) save(s *tracker.Session) error {
	if _, err := w.store.Save(w.root, s.Snapshot()); err != nil {
		if errors.Is(err, session.ErrStale) {
			return fmt.Errorf("saving session: %w; run the command again", err)
		}
		return fmt.Errorf("saving session: %w", err)
	}
	return nil
}

// record appends an event to the project log. Logging failures are
// reported but never fail the command.
func (w *workspace) record(event log.LogEvent) {
	if err := w.logger.Append(event); err != nil {
		fmt.Fprintf(w.stderr, "warning: %v\n", err)
	}
}

// events returns the logged events of a session. A log that cannot be read
// is reported and treated as empty.
func (w *workspace) events(sessionID string) []log.LogEvent {
	events, err := w.logger.ForSession(sessionID)
	if err != nil {
		fmt.Fprintf(w.stderr, "warning: reading event log: %v\n", err)
		return nil
	}
	return events
}

func (w *workspace) thresholds() (tracker.Thresholds, error) {
	th, err := w.cfg.Thresholds()
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return th, nil
}
