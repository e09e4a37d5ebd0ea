package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// AssertGolden compares output with testdata/<name> at the module root.
// Running the tests with UPDATE_GOLDEN set rewrites the file instead.
func AssertGolden(t *testing.T, name, output string) {
	t.Helper()
	path := filepath.Join(RepoRoot(t), "testdata", filepath.FromSlash(name))
	if os.Getenv("UPDATE_GOLDEN") != "" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("create golden dir: %v", err)
		}
		if err := os.WriteFile(path, []byte(output), 0o644); err != nil {
			t.Fatalf("update golden %s: %v", name, err)
		}
		return
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read golden %s: %v", name, err)
	}
	want := string(data)
	if want == output {
		return
	}
	wantLines := strings.Split(want, "\n")
	gotLines := strings.Split(output, "\n")
	for i := 0; i < len(wantLines) || i < len(gotLines); i++ {
		var w, g string
		if i < len(wantLines) {
			w = wantLines[i]
		}
		if i < len(gotLines) {
			g = gotLines[i]
		}
		if w != g {
			t.Fatalf("%s differs at line %d\nwant: %q\n got: %q", name, i+1, w, g)
		}
	}
	t.Fatalf("%s differs", name)
}

// RepoRoot walks up from the working directory to the directory holding go.mod.
func RepoRoot(t *testing.T) string {
	t.Helper()
	dir, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			t.Fatalf("no go.mod above %s", dir)
		}
		dir = parent
	}
}
