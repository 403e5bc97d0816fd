// Package testutil provides test helper utilities for vibe tests.
package testutil

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"testing"
	"time"
)

// TempProject creates a temporary directory with the given files and returns its path.
// Files is a map of relative path -> content. Directories are created as needed.
// The directory is automatically cleaned up when the test finishes.
func TempProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()

	for relPath, content := range files {
		absPath := filepath.Join(dir, relPath)
		if err := os.MkdirAll(filepath.Dir(absPath), 0755); err != nil {
			t.Fatalf("creating directory for %s: %v", relPath, err)
		}
		if err := os.WriteFile(absPath, []byte(content), 0644); err != nil {
			t.Fatalf("writing %s: %v", relPath, err)
		}
	}

	return dir
}

// Clock is a manually advanced time source. Its Now method can be passed
// wherever a func() time.Time is expected.
type Clock struct {
	mu  sync.Mutex
	now time.Time
}

// NewClock returns a Clock frozen at start.
func NewClock(start time.Time) *Clock {
	return &Clock{now: start}
}

// Now returns the clock's current time.
func (c *Clock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

// Advance moves the clock forward by d.
func (c *Clock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = c.now.Add(d)
}

// SequentialIDs returns a generator yielding "sess-1", "sess-2", ...
func SequentialIDs() func() string {
	var mu sync.Mutex
	n := 0
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		n++
		return "sess-" + strconv.Itoa(n)
	}
}

// ReactProject returns file contents for a minimal React + TypeScript project.
func ReactProject() map[string]string {
	pkg := map[string]interface{}{
		"name":    "test-project",
		"version": "1.0.0",
		"dependencies": map[string]string{
			"react": "^18.0.0",
		},
		"devDependencies": map[string]string{
			"typescript": "^5.0.0",
		},
	}
	pkgJSON, _ := json.MarshalIndent(pkg, "", "  ")

	return map[string]string{
		"package.json":  string(pkgJSON),
		"tsconfig.json": `{"compilerOptions": {"strict": true}}`,
		"src/index.tsx": `export const App = () => null;`,
	}
}

// NextJSProject returns file contents for a Next.js project.
func NextJSProject() map[string]string {
	pkg := map[string]interface{}{
		"name": "next-app",
		"dependencies": map[string]string{
			"next":  "^14.0.0",
			"react": "^18.0.0",
		},
	}
	pkgJSON, _ := json.MarshalIndent(pkg, "", "  ")

	return map[string]string{
		"package.json":    string(pkgJSON),
		"tsconfig.json":   `{}`,
		"pages/index.tsx": "export default function Home() { return <div />; }",
	}
}

// TypeScriptProject returns file contents for a plain TypeScript project.
func TypeScriptProject() map[string]string {
	return map[string]string{
		"package.json":  `{"name": "lib", "devDependencies": {"typescript": "^5.0.0"}}`,
		"tsconfig.json": `{}`,
	}
}

// GoProject returns file contents for a minimal Go project.
func GoProject() map[string]string {
	return map[string]string{
		"go.mod":  "module example.com/test\n\ngo 1.23\n",
		"main.go": "package main\n\nfunc main() {}\n",
	}
}

// PythonProject returns file contents for a minimal Python project.
func PythonProject() map[string]string {
	return map[string]string{
		"requirements.txt": "flask>=2.0\n",
		"app.py":           "from flask import Flask\napp = Flask(__name__)\n",
	}
}

// RustProject returns file contents for a minimal Rust project.
func RustProject() map[string]string {
	return map[string]string{
		"Cargo.toml":  "[package]\nname = \"test\"\nversion = \"0.1.0\"\n",
		"src/main.rs": "fn main() {}\n",
	}
}

// CppProject returns file contents for a CMake-based C++ project.
func CppProject() map[string]string {
	return map[string]string{
		"CMakeLists.txt": "cmake_minimum_required(VERSION 3.20)\nproject(test CXX)\n",
		"src/main.cpp":   "int main() { return 0; }\n",
	}
}

// EmptyProject returns an empty directory with no files.
func EmptyProject() map[string]string {
	return map[string]string{}
}
