package driver

import (
	"context"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"rill/internal/diag"
)

// FileOutcome classifies one file's result for progress reporting.
type FileOutcome uint8

const (
	OutcomeOK FileOutcome = iota
	OutcomeWarnings
	OutcomeErrors
	// OutcomeFailed means the file could not be processed at all (I/O or an
	// internal fault), distinct from diagnostics against its content.
	OutcomeFailed
)

// FileEvent reports one completed file during a directory run. Done counts
// completions, so the last event has Done == Total.
type FileEvent struct {
	Path     string
	Done     int
	Total    int
	Outcome  FileOutcome
	Errors   int
	Warnings int
	Cached   bool
}

// DirResult aggregates a directory run. Results follows the sorted file
// order, not completion order; entries are nil for files that failed to load.
type DirResult struct {
	Dir     string
	Files   []string
	Results []*Result
	Errs    []error

	Passed int
	Failed int
	Cached int
}

// ListFiles returns all *.rl files under dir, sorted for deterministic
// processing order.
func ListFiles(dir string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ".rl") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// CheckDir checks every *.rl file under dir with up to jobs workers
// (GOMAXPROCS when jobs <= 0). onEvent, when non-nil, is invoked serially as
// files complete. The returned error covers walking the tree; per-file
// failures land in DirResult.Errs.
func CheckDir(ctx context.Context, dir string, jobs int, opts Options, onEvent func(FileEvent)) (*DirResult, error) {
	files, err := ListFiles(dir)
	if err != nil {
		return nil, err
	}

	res := &DirResult{
		Dir:     dir,
		Files:   files,
		Results: make([]*Result, len(files)),
		Errs:    make([]error, len(files)),
	}
	if len(files) == 0 {
		return res, nil
	}

	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	var mu sync.Mutex
	done := 0
	finish := func(i int, r *Result, ferr error) {
		mu.Lock()
		defer mu.Unlock()
		res.Results[i] = r
		res.Errs[i] = ferr
		done++

		ev := FileEvent{Path: files[i], Done: done, Total: len(files)}
		switch {
		case ferr != nil:
			ev.Outcome = OutcomeFailed
			res.Failed++
		case r.Bag.HasErrors():
			ev.Outcome = OutcomeErrors
			res.Failed++
		case r.Bag.HasWarnings():
			ev.Outcome = OutcomeWarnings
			res.Passed++
		default:
			ev.Outcome = OutcomeOK
			res.Passed++
		}
		if r != nil {
			ev.Errors = r.Bag.ErrorCount()
			for _, d := range r.Bag.Items() {
				if d.Severity == diag.SevWarning {
					ev.Warnings++
				}
			}
			if r.Cached {
				ev.Cached = true
				res.Cached++
			}
		}
		if onEvent != nil {
			onEvent(ev)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			r, ferr := Check(path, opts)
			finish(i, r, ferr)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return res, err
	}
	return res, nil
}
