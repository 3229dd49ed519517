package fuzztests

import (
	"testing"

	"rill/internal/diag"
	"rill/internal/dialect"
	"rill/internal/lexer"
	"rill/internal/parser"
	"rill/internal/source"
)

func FuzzParserBuildsAST(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.rl", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(128)
		rep := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: rep})

		block, err := parser.ParseBlock(lx, dialect.Typed(), parser.Options{Reporter: rep})
		if err != nil {
			t.Fatalf("internal parser fault: %v", err)
		}

		// A rejected input must explain itself; lexical errors may precede
		// the syntax error, so only the lower bound holds.
		if block == nil && bag.ErrorCount() == 0 {
			t.Fatal("rejected input without a diagnostic")
		}
	})
}

// FuzzParserDepthLimit hammers the nesting limit: deeply nested inputs must
// produce a diagnostic instead of exhausting the goroutine stack.
func FuzzParserDepthLimit(f *testing.F) {
	addCorpusSeeds(f)
	f.Fuzz(func(t *testing.T, input []byte) {
		if len(input) > maxFuzzInput {
			input = append([]byte(nil), input[:maxFuzzInput]...)
		} else {
			input = append([]byte(nil), input...)
		}

		fs := source.NewFileSet()
		fileID := fs.AddVirtual("fuzz.rl", input)
		file := fs.Get(fileID)

		bag := diag.NewBag(16)
		rep := diag.BagReporter{Bag: bag}
		lx := lexer.New(file, lexer.Options{Reporter: rep})

		if _, err := parser.ParseBlock(lx, dialect.Untyped(), parser.Options{
			Reporter: rep,
			MaxDepth: 64,
		}); err != nil {
			t.Fatalf("internal parser fault: %v", err)
		}
	})
}
