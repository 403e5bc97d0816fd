// Package detect infers a session's stack label from the files in a project.
package detect

import (
	"os"
	"path/filepath"
	"strings"
)

// Stack labels produced by DetectStack. Sessions accept any label; these
// are only the ones detection knows how to recognize.
const (
	StackReact      = "react"
	StackNext       = "next"
	StackVue        = "vue"
	StackSvelte     = "svelte"
	StackTypeScript = "typescript"
	StackNode       = "node"
	StackGo         = "go"
	StackRust       = "rust"
	StackPython     = "python"
	StackCpp        = "cpp"
)

// DetectStack scans dir for project files and returns a stack label.
// Returns an empty string if nothing is recognized.
func DetectStack(dir string) string {
	for _, rule := range stackRules {
		if label, ok := rule(dir); ok {
			return label
		}
	}
	return ""
}

// Normalize lowercases and trims a user-supplied stack label and maps a
// few common spellings onto the canonical labels.
func Normalize(label string) string {
	l := strings.ToLower(strings.TrimSpace(label))
	switch l {
	case "c++", "cxx", "cplusplus":
		return StackCpp
	case "golang":
		return StackGo
	case "ts":
		return StackTypeScript
	case "nextjs", "next.js":
		return StackNext
	case "reactjs", "react.js":
		return StackReact
	case "py":
		return StackPython
	default:
		return l
	}
}

// fileExists returns true if path exists and is a regular file.
func fileExists(path string) bool {
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return !info.IsDir()
}

// readFile reads the file at path and returns its contents.
// Returns an empty string if the file cannot be read.
func readFile(path string) string {
	data, err := os.ReadFile(path)
	if err != nil {
		return ""
	}
	return string(data)
}

// hasSourceWithExt reports whether dir or its src/ subdirectory holds a
// file with one of the given extensions.
func hasSourceWithExt(dir string, exts ...string) bool {
	for _, sub := range []string{dir, filepath.Join(dir, "src")} {
		entries, err := os.ReadDir(sub)
		if err != nil {
			continue
		}
		for _, e := range entries {
			if e.IsDir() {
				continue
			}
			ext := strings.ToLower(filepath.Ext(e.Name()))
			for _, want := range exts {
				if ext == want {
					return true
				}
			}
		}
	}
	return false
}
