// Package testutil provides golden-file comparison helpers for the
// emitter test suite: a `-update` flag, a
// testdata/<feature>/ layout, and go-cmp for producing readable diffs on
// mismatch.
package testutil

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// UpdateGoldens controls whether golden files are (re)written instead of
// compared against. Usage: go test ./... -update
var UpdateGoldens = flag.Bool("update", false, "update golden files")

// CompareTextGolden compares got against testdata/<feature>/<name>.golden,
// updating the file in place when -update is passed.
func CompareTextGolden(t *testing.T, feature, name, got string) {
	t.Helper()

	path := filepath.Join("testdata", feature, name+".golden")

	if *UpdateGoldens {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			t.Fatalf("failed to create golden directory: %v", err)
		}
		if err := os.WriteFile(path, []byte(got), 0o644); err != nil {
			t.Fatalf("failed to write golden file %s: %v", path, err)
		}
		t.Logf("updated golden file: %s", path)
		return
	}

	want, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read golden file %s: %v\nrun with -update to create it", path, err)
	}

	if diff := cmp.Diff(string(want), got); diff != "" {
		t.Errorf("golden mismatch for %s/%s (-want +got):\n%s", feature, name, diff)
	}
}
