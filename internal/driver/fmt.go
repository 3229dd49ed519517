package driver

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"rill/internal/format"
)

// FormatOptions configure a formatting run.
type FormatOptions struct {
	Options
	// Check only reports whether files would change.
	Check bool
	// Stdout suppresses rewriting; callers print Formatted themselves.
	Stdout bool
	Style  format.Options
}

// FormatResult is the outcome of formatting one file.
type FormatResult struct {
	Path      string
	Formatted []byte
	Changed   bool
	Err       error
}

// FormatPaths formats every given path; directories are expanded to their
// *.rl files. Per-file failures land in FormatResult.Err, so one broken file
// does not stop the run.
func FormatPaths(ctx context.Context, paths []string, opts FormatOptions) ([]FormatResult, error) {
	files, err := expandPaths(paths)
	if err != nil {
		return nil, err
	}

	results := make([]FormatResult, 0, len(files))
	for _, path := range files {
		select {
		case <-ctx.Done():
			return results, ctx.Err()
		default:
		}
		results = append(results, formatOne(path, opts))
	}
	return results, nil
}

func formatOne(path string, opts FormatOptions) FormatResult {
	res := FormatResult{Path: path}

	// Formatting needs the AST, which a cache hit does not carry.
	o := opts.Options
	o.Cache = nil
	checked, err := Check(path, o)
	if err != nil {
		res.Err = err
		return res
	}
	if checked.Bag.HasErrors() || checked.Block == nil {
		res.Err = fmt.Errorf("%d errors", checked.Bag.ErrorCount())
		return res
	}

	d := opts.Options.withDefaults().Dialect
	res.Formatted = format.Print(checked.Block, d, opts.Style)
	if ok, msg := format.CheckRoundTrip(checked.Block, d, opts.Style); !ok {
		res.Err = fmt.Errorf("formatting would change semantics: %s", msg)
		return res
	}
	res.Changed = !bytes.Equal(res.Formatted, checked.File.Content)

	if res.Changed && !opts.Check && !opts.Stdout {
		res.Err = os.WriteFile(path, res.Formatted, 0o644)
	}
	return res
}

func expandPaths(paths []string) ([]string, error) {
	var files []string
	for _, path := range paths {
		st, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !st.IsDir() {
			files = append(files, path)
			continue
		}
		sub, err := ListFiles(path)
		if err != nil {
			return nil, err
		}
		files = append(files, sub...)
	}
	return files, nil
}
