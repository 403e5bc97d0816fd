package reminder

import (
	"github.com/berth-dev/vibe/internal/detect"
	"github.com/berth-dev/vibe/internal/tracker"
)

var phaseNudge = map[tracker.Phase]string{
	tracker.Exploring:   "Time to check that what you built actually works.",
	tracker.Validating:  "Validation is dragging on; decide what to keep and start structuring.",
	tracker.Structuring: "Refactoring has no natural end. Stop polishing and get feedback.",
	tracker.Reviewing:   "Fold in the feedback you have and ship.",
}

var genericHints = map[tracker.Phase]string{
	tracker.Exploring:   "Commit the working state before you go further.",
	tracker.Validating:  "Exercise the main happy path and one failure path by hand.",
	tracker.Structuring: "Pay down the shortcuts you logged as debt first.",
	tracker.Reviewing:   "Summarize the change for your reviewer in two sentences.",
}

// stackHints is keyed by normalized stack label.
var stackHints = map[string]map[tracker.Phase][]string{
	detect.StackReact: {
		tracker.Validating:  {"Click through every screen with the dev tools console open."},
		tracker.Structuring: {"Lift shared state out of long prop chains.", "Split components over ~200 lines."},
	},
	detect.StackNext: {
		tracker.Validating:  {"Run a production build; server/client boundary errors only show there."},
		tracker.Structuring: {"Move data fetching into server components where you can."},
	},
	detect.StackCpp: {
		tracker.Validating:  {"Run the tests under AddressSanitizer and UBSan."},
		tracker.Structuring: {"Replace raw owning pointers with smart pointers.", "Fix the leaks you tolerated."},
	},
	detect.StackPython: {
		tracker.Validating:  {"Run the script against a realistic input, not the toy one."},
		tracker.Structuring: {"Add type hints to the public functions.", "Pull magic constants into settings."},
	},
	detect.StackRust: {
		tracker.Validating:  {"Run cargo test and cargo clippy."},
		tracker.Structuring: {"Replace unwrap() calls with proper error propagation.", "Drop unnecessary clone() calls."},
	},
	detect.StackGo: {
		tracker.Validating:  {"Run go test -race ./..."},
		tracker.Structuring: {"Wrap errors with context instead of returning them bare."},
	},
}
