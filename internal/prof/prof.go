// Package prof collects runtime profiles for one CLI invocation. A Session
// starts the requested collectors up front and flushes them all on Stop, so
// a command body only carries one defer.
package prof

import (
	"errors"
	"os"
	"runtime"
	"runtime/pprof"
	"runtime/trace"
)

// Config names the output files; an empty path disables that collector. The
// heap profile is a snapshot taken at Stop, the other two record the whole
// interval between Start and Stop.
type Config struct {
	CPUPath   string
	HeapPath  string
	TracePath string
}

// Session owns the files of the active collectors.
type Session struct {
	cpu      *os.File
	trace    *os.File
	heapPath string
	stopped  bool
}

// Start opens the configured collectors. On any error the ones already
// running are shut down, so a failed Start leaks nothing.
func Start(cfg Config) (*Session, error) {
	s := &Session{}
	if cfg.CPUPath != "" {
		f, err := os.Create(cfg.CPUPath)
		if err != nil {
			return nil, err
		}
		if err := pprof.StartCPUProfile(f); err != nil {
			_ = f.Close()
			return nil, err
		}
		s.cpu = f
	}
	if cfg.TracePath != "" {
		f, err := os.Create(cfg.TracePath)
		if err != nil {
			_ = s.Stop()
			return nil, err
		}
		if err := trace.Start(f); err != nil {
			_ = f.Close()
			_ = s.Stop()
			return nil, err
		}
		s.trace = f
	}
	s.heapPath = cfg.HeapPath
	return s, nil
}

// Stop flushes every active collector and writes the heap snapshot. It is
// idempotent and safe on a nil session.
func (s *Session) Stop() error {
	if s == nil || s.stopped {
		return nil
	}
	s.stopped = true

	var errs []error
	if s.trace != nil {
		trace.Stop()
		errs = append(errs, s.trace.Close())
		s.trace = nil
	}
	if s.cpu != nil {
		pprof.StopCPUProfile()
		errs = append(errs, s.cpu.Close())
		s.cpu = nil
	}
	if s.heapPath != "" {
		errs = append(errs, writeHeap(s.heapPath))
	}
	return errors.Join(errs...)
}

func writeHeap(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	// Collect first so the snapshot holds live objects only.
	runtime.GC()
	if err := pprof.WriteHeapProfile(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
