// watch.go implements "vibe watch", the live timer view.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/berth-dev/vibe/internal/log"
	"github.com/berth-dev/vibe/internal/reminder"
	"github.com/berth-dev/vibe/internal/tracker"
	"github.com/berth-dev/vibe/internal/tui"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Show a live view of the session with reminders",
	Args:  cobra.NoArgs,
	RunE:  runWatch,
}

func runWatch(cmd *cobra.Command, args []string) error {
	ws, err := openWorkspace(cmd)
	if err != nil {
		return err
	}
	defer ws.Close()

	m, err := newWatchModel(ws)
	if err != nil {
		return err
	}
	return tui.Run(m)
}

// newWatchModel builds the watch view for the active session. The view
// reloads the session from the store before every change.
func newWatchModel(ws *workspace) (tui.WatchModel, error) {
	s, err := ws.current()
	if err != nil {
		return tui.WatchModel{}, err
	}
	th, err := ws.thresholds()
	if err != nil {
		return tui.WatchModel{}, err
	}
	id := s.ID()

	hooks := tui.Hooks{
		Reload: func() (*tracker.Session, error) {
			return ws.byID(id)
		},
		OnChange: func(s *tracker.Session, event string, from tracker.Phase) error {
			if err := ws.save(s); err != nil {
				return err
			}
			ws.record(log.LogEvent{
				Time:      ws.tracker.Now().UTC(),
				Event:     event,
				SessionID: id,
				From:      from.String(),
				Phase:     s.Phase().String(),
			})
			return nil
		},
		OnDue: func(r reminder.Result) {
			ws.record(log.LogEvent{
				Event:      log.EventReminderDue,
				SessionID:  id,
				Phase:      r.Phase.String(),
				DurationMs: r.Elapsed.Milliseconds(),
			})
		},
	}

	return tui.NewWatchModel(ws.tracker, s, th, hooks), nil
}
