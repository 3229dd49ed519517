package driver

import (
	"context"
	"os"
	"testing"
)

func TestFormatPathsRewrites(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "messy.rl", "{ let x := 1\n\n\n pop(  x ) }")

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 1 || results[0].Err != nil {
		t.Fatalf("results: %+v", results)
	}
	if !results[0].Changed {
		t.Fatalf("messy file must be reported as changed")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	want := "{\n    let x := 1\n    pop(x)\n}\n"
	if string(content) != want {
		t.Errorf("rewritten content:\n%q\nwant:\n%q", content, want)
	}

	// Idempotent on the second run.
	results, err = FormatPaths(context.Background(), []string{path}, FormatOptions{})
	if err != nil {
		t.Fatalf("second FormatPaths: %v", err)
	}
	if results[0].Changed {
		t.Errorf("canonical file must not change again")
	}
}

func TestFormatPathsCheckMode(t *testing.T) {
	dir := t.TempDir()
	original := "{ let x := 1 }"
	path := writeFile(t, dir, "keep.rl", original)

	results, err := FormatPaths(context.Background(), []string{path}, FormatOptions{Check: true})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if !results[0].Changed {
		t.Errorf("check mode must still report the needed change")
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back: %v", err)
	}
	if string(content) != original {
		t.Errorf("check mode must not rewrite the file")
	}
}

func TestFormatPathsBrokenFile(t *testing.T) {
	dir := t.TempDir()
	bad := writeFile(t, dir, "bad.rl", "{ let := }")
	good := writeFile(t, dir, "good.rl", "{\n    let x := 1\n}\n")

	results, err := FormatPaths(context.Background(), []string{dir}, FormatOptions{})
	if err != nil {
		t.Fatalf("FormatPaths: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("want 2 results, got %d", len(results))
	}
	for _, res := range results {
		switch res.Path {
		case bad:
			if res.Err == nil {
				t.Errorf("broken file must carry an error")
			}
		case good:
			if res.Err != nil || res.Changed {
				t.Errorf("good file: %+v", res)
			}
		}
	}
}
