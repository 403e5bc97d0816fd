// stacks.go contains the language and framework detection rules.
package detect

import (
	"encoding/json"
	"path/filepath"
	"strings"
)

// stackRuleFunc examines dir and returns a label + true if its indicator
// files are present.
type stackRuleFunc func(dir string) (string, bool)

// stackRules is evaluated in order; first match wins.
var stackRules = []stackRuleFunc{
	detectJavaScript,
	detectGo,
	detectRust,
	detectPython,
	detectCpp,
}

// packageJSON is the minimal structure we parse from package.json.
type packageJSON struct {
	Dependencies    map[string]string `json:"dependencies"`
	DevDependencies map[string]string `json:"devDependencies"`
}

func detectJavaScript(dir string) (string, bool) {
	pkgPath := filepath.Join(dir, "package.json")
	if !fileExists(pkgPath) {
		return "", false
	}

	var pkg packageJSON
	if data := readFile(pkgPath); data != "" {
		_ = json.Unmarshal([]byte(data), &pkg)
	}

	// Frameworks only count as runtime dependencies.
	has := func(name string) bool {
		_, ok := pkg.Dependencies[name]
		return ok
	}

	switch {
	case has("next"):
		return StackNext, true
	case has("react"):
		return StackReact, true
	case has("vue"):
		return StackVue, true
	case has("svelte"):
		return StackSvelte, true
	case fileExists(filepath.Join(dir, "tsconfig.json")):
		return StackTypeScript, true
	default:
		return StackNode, true
	}
}

func detectGo(dir string) (string, bool) {
	return StackGo, fileExists(filepath.Join(dir, "go.mod"))
}

func detectRust(dir string) (string, bool) {
	return StackRust, fileExists(filepath.Join(dir, "Cargo.toml"))
}

func detectPython(dir string) (string, bool) {
	for _, f := range []string{"pyproject.toml", "requirements.txt", "setup.py"} {
		if fileExists(filepath.Join(dir, f)) {
			return StackPython, true
		}
	}
	return "", false
}

func detectCpp(dir string) (string, bool) {
	if cmake := readFile(filepath.Join(dir, "CMakeLists.txt")); cmake != "" {
		if strings.Contains(cmake, "CXX") || hasSourceWithExt(dir, ".cpp", ".cc", ".cxx", ".hpp") {
			return StackCpp, true
		}
	}
	if fileExists(filepath.Join(dir, "Makefile")) && hasSourceWithExt(dir, ".cpp", ".cc", ".cxx") {
		return StackCpp, true
	}
	return "", false
}
