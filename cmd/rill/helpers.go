package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"rill/internal/diag"
	"rill/internal/diagfmt"
	"rill/internal/dialect"
	"rill/internal/prof"
	"rill/internal/source"
)

// addDialectFlags registers the dialect selection flags shared by every
// command that parses source.
func addDialectFlags(flags *pflag.FlagSet) {
	flags.String("dialect", "", "path to a TOML dialect definition")
	flags.Bool("untyped", false, "use the built-in untyped dialect")
}

func dialectFromFlags(cmd *cobra.Command) (dialect.Dialect, error) {
	path, err := cmd.Flags().GetString("dialect")
	if err != nil {
		return nil, err
	}
	untyped, err := cmd.Flags().GetBool("untyped")
	if err != nil {
		return nil, err
	}
	if untyped && path != "" {
		return nil, fmt.Errorf("--dialect and --untyped cannot be used together")
	}
	if untyped {
		return dialect.Untyped(), nil
	}
	if path != "" {
		return dialect.FromTOML(path)
	}
	return dialect.Typed(), nil
}

// wantTUI resolves the --ui flag: on and off are explicit, auto follows
// whether stdout is a terminal.
func wantTUI(cmd *cobra.Command) (bool, error) {
	value, err := cmd.Flags().GetString("ui")
	if err != nil {
		return false, err
	}
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return isTerminal(os.Stdout), nil
	case "on":
		return true, nil
	case "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid --ui value %q (expected auto|on|off)", value)
	}
}

// startProfiling reads the persistent profiling flags and starts the matching
// collectors. The returned session is nil-safe to Stop.
func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Root().PersistentFlags()
	cfg := prof.Config{}
	var err error
	if cfg.CPUPath, err = flags.GetString("cpu-profile"); err != nil {
		return nil, err
	}
	if cfg.HeapPath, err = flags.GetString("mem-profile"); err != nil {
		return nil, err
	}
	if cfg.TracePath, err = flags.GetString("runtime-trace"); err != nil {
		return nil, err
	}
	session, err := prof.Start(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to start profiling: %w", err)
	}
	return session, nil
}

func useColor(cmd *cobra.Command, f *os.File) bool {
	colorFlag, _ := cmd.Root().PersistentFlags().GetString("color")
	return colorFlag == "on" || (colorFlag == "auto" && isTerminal(f))
}

// emitDiagnostics renders a bag in the requested format. Pretty output goes
// to w; JSON always carries positions.
func emitDiagnostics(cmd *cobra.Command, w *os.File, bag *diag.Bag, fs *source.FileSet, format string, withNotes, fullPath bool) error {
	pathMode := diagfmt.PathModeAuto
	if fullPath {
		pathMode = diagfmt.PathModeAbsolute
	}

	switch format {
	case "pretty":
		diagfmt.Pretty(w, bag, fs, diagfmt.PrettyOpts{
			Color:     useColor(cmd, w),
			Context:   2,
			PathMode:  pathMode,
			ShowNotes: withNotes,
		})
		return nil
	case "json":
		return diagfmt.JSON(w, bag, fs, diagfmt.JSONOpts{
			IncludePositions: true,
			PathMode:         pathMode,
			IncludeNotes:     withNotes,
		})
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
