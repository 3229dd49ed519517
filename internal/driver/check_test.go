package driver

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"rill/internal/diag"
	"rill/internal/dialect"
	"rill/internal/token"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestTokenize(t *testing.T) {
	path := writeFile(t, t.TempDir(), "a.rl", "{ let x := 1 }\n")
	res, err := Tokenize(path, 0)
	if err != nil {
		t.Fatalf("Tokenize: %v", err)
	}
	kinds := make([]token.Kind, len(res.Tokens))
	for i, tok := range res.Tokens {
		kinds[i] = tok.Kind
	}
	want := []token.Kind{
		token.LBrace, token.KwLet, token.Ident, token.ColonAssign, token.IntLit, token.RBrace,
	}
	if len(kinds) != len(want) {
		t.Fatalf("token kinds: got %v, want %v", kinds, want)
	}
	for i := range want {
		if kinds[i] != want[i] {
			t.Fatalf("token %d: got %v, want %v", i, kinds[i], want[i])
		}
	}
}

func TestCheckValidFile(t *testing.T) {
	path := writeFile(t, t.TempDir(), "ok.rl", "{ let x := add(1, 2) pop(x) }\n")
	res, err := Check(path, Options{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !res.OK || res.Bag.Len() != 0 {
		t.Errorf("expected clean check, got %v", res.Bag.Items())
	}
	if res.Block == nil || res.Info == nil {
		t.Errorf("missing AST or analysis info")
	}
}

func TestCheckSyntaxError(t *testing.T) {
	path := writeFile(t, t.TempDir(), "bad.rl", "{ let := 1 }\n")
	res, err := Check(path, Options{})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if res.OK || res.Block != nil {
		t.Errorf("syntax error must reject the file without an AST")
	}
	if res.Bag.ErrorCount() != 1 {
		t.Errorf("error count: got %d, want 1", res.Bag.ErrorCount())
	}
}

func TestCheckUntypedDialect(t *testing.T) {
	path := writeFile(t, t.TempDir(), "u.rl", "{ let x := 1 }\n")
	res, err := Check(path, Options{Dialect: dialect.Untyped()})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if !res.OK {
		t.Errorf("untyped check failed: %v", res.Bag.Items())
	}
}

func TestCheckTimings(t *testing.T) {
	path := writeFile(t, t.TempDir(), "t.rl", "{ }\n")
	var phases []string
	res, err := Check(path, Options{
		Timings: true,
		Observer: func(ev PhaseEvent) {
			if ev.Status == PhaseEnd {
				phases = append(phases, ev.Name)
			}
		},
	})
	if err != nil {
		t.Fatalf("Check: %v", err)
	}
	if len(phases) != 2 || phases[0] != "parse" || phases[1] != "analyze" {
		t.Errorf("phases: got %v", phases)
	}
	items := res.Bag.Items()
	if len(items) != 1 || items[0].Code != diag.InfoTimings || items[0].Kind() != diag.KindInfo {
		t.Errorf("timing diagnostic missing: %v", items)
	}
}

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	dir := t.TempDir()
	path := writeFile(t, dir, "c.rl", "{ let x := f() }\n")

	first, err := Check(path, Options{Cache: cache})
	if err != nil {
		t.Fatalf("first Check: %v", err)
	}
	if first.Cached {
		t.Fatalf("first run must not hit the cache")
	}

	second, err := Check(path, Options{Cache: cache})
	if err != nil {
		t.Fatalf("second Check: %v", err)
	}
	if !second.Cached {
		t.Fatalf("second run must hit the cache")
	}
	if second.OK != first.OK || second.Bag.Len() != first.Bag.Len() {
		t.Errorf("cached outcome differs: %v vs %v", second.Bag.Items(), first.Bag.Items())
	}
	if got := second.Bag.Items()[0].Message; got != `Function "f" not found.` {
		t.Errorf("cached message: got %q", got)
	}

	// Changing the content invalidates the entry.
	writeFile(t, dir, "c.rl", "{ let x := 1 }\n")
	third, err := Check(path, Options{Cache: cache})
	if err != nil {
		t.Fatalf("third Check: %v", err)
	}
	if third.Cached || !third.OK {
		t.Errorf("changed content must be rechecked: cached=%v ok=%v", third.Cached, third.OK)
	}
}

func TestDiskCacheKeyedByDialect(t *testing.T) {
	cache, err := OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}
	path := writeFile(t, t.TempDir(), "d.rl", "{ let x := add(1, 2) }\n")

	if _, err := Check(path, Options{Cache: cache, Dialect: dialect.Typed()}); err != nil {
		t.Fatalf("typed Check: %v", err)
	}
	res, err := Check(path, Options{Cache: cache, Dialect: dialect.Untyped()})
	if err != nil {
		t.Fatalf("untyped Check: %v", err)
	}
	if res.Cached {
		t.Errorf("different dialect must not share cache entries")
	}
	if res.OK {
		t.Errorf("add is not a builtin of the untyped dialect")
	}
}

func TestCheckDir(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.rl", "{ let x := 1 }\n")
	writeFile(t, dir, "b.rl", "{ let x := f() }\n")
	writeFile(t, dir, "c.rl", "{ switch x }\n")
	writeFile(t, dir, "notes.txt", "not a source file\n")

	var events []FileEvent
	res, err := CheckDir(context.Background(), dir, 2, Options{}, func(ev FileEvent) {
		events = append(events, ev)
	})
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}

	if len(res.Files) != 3 {
		t.Fatalf("file count: got %d, want 3", len(res.Files))
	}
	if filepath.Base(res.Files[0]) != "a.rl" || filepath.Base(res.Files[2]) != "c.rl" {
		t.Errorf("files must be sorted: %v", res.Files)
	}
	if res.Passed != 1 || res.Failed != 2 {
		t.Errorf("passed/failed: got %d/%d, want 1/2", res.Passed, res.Failed)
	}

	if len(events) != 3 {
		t.Fatalf("event count: got %d", len(events))
	}
	if events[len(events)-1].Done != 3 || events[len(events)-1].Total != 3 {
		t.Errorf("final event: %+v", events[len(events)-1])
	}

	// c.rl: the switch scrutinee is undeclared (error) on top of the
	// no-cases warning.
	for i, f := range res.Files {
		r := res.Results[i]
		if r == nil {
			t.Fatalf("missing result for %s", f)
		}
		switch filepath.Base(f) {
		case "a.rl":
			if !r.OK {
				t.Errorf("a.rl: %v", r.Bag.Items())
			}
		case "b.rl", "c.rl":
			if r.OK {
				t.Errorf("%s must fail", f)
			}
		}
	}
}

func TestCheckDirEmpty(t *testing.T) {
	res, err := CheckDir(context.Background(), t.TempDir(), 0, Options{}, nil)
	if err != nil {
		t.Fatalf("CheckDir: %v", err)
	}
	if len(res.Files) != 0 || res.Passed != 0 || res.Failed != 0 {
		t.Errorf("empty dir result: %+v", res)
	}
}
