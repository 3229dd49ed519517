package fuzztests

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

const (
	maxSeedBytes = 64 << 10 // 64 KiB — ограничение для тестового корпуса
)

func addCorpusSeeds(f *testing.F) {
	addTestdataSeeds(f)
	addGrammarSeeds(f)
}

func addTestdataSeeds(f *testing.F) {
	root := filepath.Join("..", "..", "testdata")
	if _, err := os.Stat(root); err != nil {
		return
	}
	// проходим по дереву testdata, добавляем все *.rl файлы
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
		if walkErr != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if filepath.Ext(path) != ".rl" {
			return nil
		}
		// #nosec G304 -- path comes from repository testdata walk
		src, err := os.ReadFile(path)
		if err != nil {
			return nil
		}
		f.Add(clampSeed(src))
		return nil
	})
	if err != nil {
		return
	}
	f.Add([]byte{})
}

// addGrammarSeeds feeds one snippet per statement form so new mutations start
// from every production, not just whatever testdata happens to cover.
func addGrammarSeeds(f *testing.F) {
	snippets := []string{
		"{ }",
		"{ let x := 1 }",
		"{ let a, b:bool }",
		"{ let s := \"hex\\\"escaped\" }",
		"{ let h := 0xff let t := h:u256 }",
		"{ x := add(1, 2) }",
		"{ if lt(1, 2) { pop(1) } }",
		"{ switch 1 case 0 { } default { } }",
		"{ switch x }",
		"{ function f(a:u256) -> r { r := a leave } }",
		"{ for { let i := 0 } lt(i, 3) { i := add(i, 1) } { break continue } }",
		"/// @src 0:11:22\n{ let x := 1 }",
		"/// @src 7:malformed\n{ }",
	}
	for _, s := range snippets {
		f.Add([]byte(s))
	}
}

func clampSeed(src []byte) []byte {
	if len(src) <= maxSeedBytes {
		return append([]byte(nil), src...)
	}
	return append([]byte(nil), src[:maxSeedBytes]...)
}
