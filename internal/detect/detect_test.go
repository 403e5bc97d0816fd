package detect

import (
	"testing"

	"github.com/berth-dev/vibe/internal/testutil"
)

func TestDetectStack(t *testing.T) {
	tests := []struct {
		name  string
		files map[string]string
		want  string
	}{
		{"react project", testutil.ReactProject(), StackReact},
		{"next project", testutil.NextJSProject(), StackNext},
		{"typescript library", testutil.TypeScriptProject(), StackTypeScript},
		{"go project", testutil.GoProject(), StackGo},
		{"python project", testutil.PythonProject(), StackPython},
		{"rust project", testutil.RustProject(), StackRust},
		{"cpp project", testutil.CppProject(), StackCpp},
		{"empty project", testutil.EmptyProject(), ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := testutil.TempProject(t, tt.files)
			if got := DetectStack(dir); got != tt.want {
				t.Errorf("DetectStack() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDetectStack_MakefileNeedsCppSources(t *testing.T) {
	dir := testutil.TempProject(t, map[string]string{"Makefile": "all:\n\techo hi\n"})
	if got := DetectStack(dir); got != "" {
		t.Errorf("DetectStack() = %q, want empty for Makefile without C++ sources", got)
	}

	dir = testutil.TempProject(t, map[string]string{
		"Makefile":     "all:\n\tg++ main.cc\n",
		"src/main.cc": "int main() {}\n",
	})
	if got := DetectStack(dir); got != StackCpp {
		t.Errorf("DetectStack() = %q, want %q", got, StackCpp)
	}
}

func TestDetectStack_DevDependencyIsNotFramework(t *testing.T) {
	dir := testutil.TempProject(t, map[string]string{
		"package.json": `{"devDependencies": {"react": "^18.0.0"}}`,
	})
	if got := DetectStack(dir); got != StackNode {
		t.Errorf("DetectStack() = %q, want %q", got, StackNode)
	}
}

func TestNormalize(t *testing.T) {
	tests := map[string]string{
		" React ": "react",
		"C++":     "cpp",
		"golang":  "go",
		"Next.js": "next",
		"elixir":  "elixir",
	}
	for in, want := range tests {
		if got := Normalize(in); got != want {
			t.Errorf("Normalize(%q) = %q, want %q", in, got, want)
		}
	}
}
