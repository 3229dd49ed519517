package dialect

import (
	"fmt"
	"io"
	"os"

	"github.com/BurntSushi/toml"
)

// Decode reads a dialect Definition in TOML form and freezes it.
func Decode(r io.Reader) (Dialect, error) {
	var def Definition
	meta, err := toml.NewDecoder(r).Decode(&def)
	if err != nil {
		return nil, fmt.Errorf("dialect: decode: %w", err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("dialect: unknown key %q", undecoded[0].String())
	}
	return Define(def)
}

// FromTOML loads a dialect definition file.
func FromTOML(path string) (Dialect, error) {
	// #nosec G304 -- path is provided by the caller
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close() //nolint:errcheck // read-only file
	return Decode(f)
}
