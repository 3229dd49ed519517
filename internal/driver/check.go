// Package driver orchestrates the front-end phases for the CLI: tokenize,
// parse, analyze, plus directory-wide runs and a disk cache keyed by content
// hash.
package driver

import (
	"rill/internal/ast"
	"rill/internal/diag"
	"rill/internal/dialect"
	"rill/internal/lexer"
	"rill/internal/observ"
	"rill/internal/parser"
	"rill/internal/sema"
	"rill/internal/source"
	"rill/internal/token"
)

// Options configure a single-file or directory run.
type Options struct {
	Dialect        dialect.Dialect
	MaxDiagnostics int
	MaxDepth       int
	Cache          *DiskCache
	Observer       PhaseObserver
	Timings        bool
}

func (o Options) withDefaults() Options {
	if o.Dialect == nil {
		o.Dialect = dialect.Typed()
	}
	return o
}

// Result is the outcome of checking one file.
type Result struct {
	Path    string
	FileSet *source.FileSet
	File    *source.File
	Block   *ast.Block
	Info    *sema.AnalysisInfo
	Bag     *diag.Bag
	// OK means no error-severity diagnostics were produced.
	OK bool
	// Cached means the outcome was served from the disk cache; Block and
	// Info are nil in that case.
	Cached bool
}

// TokenizeResult is the outcome of tokenizing one file.
type TokenizeResult struct {
	FileSet *source.FileSet
	File    *source.File
	Tokens  []token.Token
	Bag     *diag.Bag
}

// Tokenize scans one file to end of input. The EOF token is not included.
func Tokenize(path string, maxDiagnostics int) (*TokenizeResult, error) {
	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	file := fs.Get(id)

	bag := diag.NewBag(maxDiagnostics)
	lx := lexer.New(file, lexer.Options{Reporter: diag.BagReporter{Bag: bag}})
	var tokens []token.Token
	for {
		tok := lx.Next()
		if tok.Kind == token.EOF {
			break
		}
		tokens = append(tokens, tok)
	}
	return &TokenizeResult{FileSet: fs, File: file, Tokens: tokens, Bag: bag}, nil
}

// Check loads, parses, and analyzes one file.
func Check(path string, opts Options) (*Result, error) {
	opts = opts.withDefaults()

	fs := source.NewFileSet()
	id, err := fs.Load(path)
	if err != nil {
		return nil, err
	}
	return checkFile(fs, fs.Get(id), opts)
}

// CheckSource parses and analyzes an already-registered file (stdin, tests).
func CheckSource(fs *source.FileSet, file *source.File, opts Options) (*Result, error) {
	return checkFile(fs, file, opts.withDefaults())
}

func checkFile(fs *source.FileSet, file *source.File, opts Options) (*Result, error) {
	res := &Result{
		Path:    file.Path,
		FileSet: fs,
		File:    file,
		Bag:     diag.NewBag(opts.MaxDiagnostics),
	}

	if opts.Cache != nil {
		key := cacheKey(file, opts.Dialect)
		var payload DiskPayload
		if hit, err := opts.Cache.Get(key, &payload); err == nil && hit {
			restoreCachedDiagnostics(res.Bag, file.ID, &payload)
			res.OK = payload.OK
			res.Cached = true
			return res, nil
		}
	}

	rep := diag.BagReporter{Bag: res.Bag}
	phase := phaseRunner{observer: opts.Observer, timer: observ.NewTimer()}

	phase.start("parse")
	lx := lexer.New(file, lexer.Options{Reporter: rep})
	block, err := parser.ParseBlock(lx, opts.Dialect, parser.Options{
		Reporter: rep,
		MaxDepth: opts.MaxDepth,
	})
	phase.end("parse")
	if err != nil {
		// Internal fault, not user input: propagate as an error so the CLI
		// reports a defect rather than a diagnostic.
		return nil, err
	}

	if block != nil {
		phase.start("analyze")
		ok, info := sema.Analyze(block, opts.Dialect, sema.Options{Reporter: rep})
		phase.end("analyze")
		res.Block = block
		res.Info = info
		res.OK = ok && !res.Bag.HasErrors()
	}

	if opts.Timings {
		appendTimingDiagnostic(res.Bag, file.Path, phase.timer.Report())
	}

	if opts.Cache != nil {
		key := cacheKey(file, opts.Dialect)
		// Cache write failures are non-fatal; next run just recomputes.
		_ = opts.Cache.Put(key, buildPayload(file, res))
	}
	return res, nil
}

// phaseRunner emits phase boundaries to the observer and records durations
// into the shared timer.
type phaseRunner struct {
	observer PhaseObserver
	timer    *observ.Timer
	idx      int
}

func (p *phaseRunner) start(name string) {
	p.idx = p.timer.Begin(name)
	if p.observer != nil {
		p.observer(PhaseEvent{Name: name, Status: PhaseStart})
	}
}

func (p *phaseRunner) end(name string) {
	elapsed := p.timer.End(p.idx, "")
	if p.observer != nil {
		p.observer(PhaseEvent{Name: name, Status: PhaseEnd, Elapsed: elapsed})
	}
}
