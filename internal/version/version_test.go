package version

import (
	"strings"
	"testing"
)

func TestVersionDefault(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestStringIncludesOptionalFields(t *testing.T) {
	origVersion, origCommit, origDate := Version, GitCommit, BuildDate
	defer func() {
		Version, GitCommit, BuildDate = origVersion, origCommit, origDate
	}()

	Version = "1.2.3"
	GitCommit = ""
	BuildDate = ""
	if got := String(); got != "rill 1.2.3" {
		t.Errorf("String() = %q", got)
	}

	GitCommit = "abc123"
	BuildDate = "2026-01-15T10:30:00Z"
	got := String()
	if !strings.Contains(got, "(abc123)") || !strings.Contains(got, "built 2026-01-15T10:30:00Z") {
		t.Errorf("String() = %q", got)
	}
}
