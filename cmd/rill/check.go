package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"rill/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.rl|directory>",
	Short: "Check rill source files for syntax and semantic issues",
	Long:  `Check parses and analyzes a rill source file, or every *.rl file within a directory`,
	Args:  cobra.ExactArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	checkCmd.Flags().Int("jobs", 0, "max parallel workers for directory processing (0=auto)")
	checkCmd.Flags().Bool("cache", false, "reuse cached results for unchanged files")
	checkCmd.Flags().Bool("clear-cache", false, "drop the disk cache before checking")
	checkCmd.Flags().String("ui", "auto", "interactive progress for directories (auto|on|off)")
	checkCmd.Flags().Bool("with-notes", false, "include diagnostic notes in output")
	checkCmd.Flags().Bool("fullpath", false, "emit absolute file paths in output")
	addDialectFlags(checkCmd.Flags())
}

func runCheck(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true
	cmd.SilenceErrors = true

	filePath := args[0]

	// Получаем флаги
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return fmt.Errorf("failed to get jobs flag: %w", err)
	}
	useCache, err := cmd.Flags().GetBool("cache")
	if err != nil {
		return fmt.Errorf("failed to get cache flag: %w", err)
	}
	clearCache, err := cmd.Flags().GetBool("clear-cache")
	if err != nil {
		return fmt.Errorf("failed to get clear-cache flag: %w", err)
	}
	withNotes, err := cmd.Flags().GetBool("with-notes")
	if err != nil {
		return fmt.Errorf("failed to get with-notes flag: %w", err)
	}
	fullPath, err := cmd.Flags().GetBool("fullpath")
	if err != nil {
		return fmt.Errorf("failed to get fullpath flag: %w", err)
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}
	showTimings, err := cmd.Root().PersistentFlags().GetBool("timings")
	if err != nil {
		return fmt.Errorf("failed to get timings flag: %w", err)
	}
	quiet, err := cmd.Root().PersistentFlags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}

	d, err := dialectFromFlags(cmd)
	if err != nil {
		return err
	}
	useTUI, err := wantTUI(cmd)
	if err != nil {
		return err
	}

	var cache *driver.DiskCache
	if useCache || clearCache {
		cache, err = driver.OpenDiskCache("rill")
		if err != nil {
			return fmt.Errorf("failed to open disk cache: %w", err)
		}
		if clearCache {
			if err := cache.DropAll(); err != nil {
				return fmt.Errorf("failed to clear disk cache: %w", err)
			}
		}
		if !useCache {
			cache = nil
		}
	}

	opts := driver.Options{
		Dialect:        d,
		MaxDiagnostics: maxDiagnostics,
		Cache:          cache,
		Timings:        showTimings,
	}

	session, err := startProfiling(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if err := session.Stop(); err != nil {
			fmt.Fprintf(os.Stderr, "failed to flush profiles: %v\n", err)
		}
	}()

	st, err := os.Stat(filePath)
	if err != nil {
		return fmt.Errorf("failed to stat path: %w", err)
	}
	if st.IsDir() {
		return runCheckDir(cmd, filePath, jobs, opts, format, withNotes, fullPath, quiet, useTUI)
	}
	return runCheckFile(cmd, filePath, opts, format, withNotes, fullPath)
}

func runCheckFile(cmd *cobra.Command, path string, opts driver.Options, format string, withNotes, fullPath bool) error {
	result, err := driver.Check(path, opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "check: %s: %v\n", path, err)
		return fmt.Errorf("check failed")
	}
	if err := emitDiagnostics(cmd, os.Stdout, result.Bag, result.FileSet, format, withNotes, fullPath); err != nil {
		return err
	}
	if result.Bag.HasErrors() {
		return fmt.Errorf("found %d errors", result.Bag.ErrorCount())
	}
	return nil
}

func runCheckDir(cmd *cobra.Command, dir string, jobs int, opts driver.Options, format string, withNotes, fullPath, quiet, useTUI bool) error {
	var res *driver.DirResult
	var err error

	if format == "pretty" && useTUI {
		res, err = runCheckDirWithUI(cmd.Context(), dir, jobs, opts)
	} else {
		var onEvent func(driver.FileEvent)
		if format == "pretty" && !quiet {
			onEvent = printFileEvent
		}
		res, err = driver.CheckDir(cmd.Context(), dir, jobs, opts, onEvent)
	}
	if err != nil {
		return err
	}

	// Диагностика по каждому файлу после прогресса, чтобы не мешать выводу
	errors := 0
	for i := range res.Files {
		if ferr := res.Errs[i]; ferr != nil {
			fmt.Fprintf(os.Stderr, "check: %s: %v\n", res.Files[i], ferr)
			errors++
			continue
		}
		r := res.Results[i]
		if r.Bag.Len() == 0 {
			continue
		}
		if err := emitDiagnostics(cmd, os.Stdout, r.Bag, r.FileSet, format, withNotes, fullPath); err != nil {
			return err
		}
		errors += r.Bag.ErrorCount()
	}

	if !quiet && format == "pretty" {
		p := message.NewPrinter(language.English)
		p.Fprintf(os.Stderr, "checked %d files: %d passed, %d failed", len(res.Files), res.Passed, res.Failed)
		if res.Cached > 0 {
			p.Fprintf(os.Stderr, " (%d cached)", res.Cached)
		}
		fmt.Fprintln(os.Stderr)
	}

	if res.Failed > 0 {
		return fmt.Errorf("found %d errors", errors)
	}
	return nil
}

func printFileEvent(ev driver.FileEvent) {
	status := "ok"
	switch ev.Outcome {
	case driver.OutcomeWarnings:
		status = fmt.Sprintf("%d warnings", ev.Warnings)
	case driver.OutcomeErrors:
		status = fmt.Sprintf("%d errors", ev.Errors)
	case driver.OutcomeFailed:
		status = "failed"
	default:
		if ev.Cached {
			status = "ok (cached)"
		}
	}
	fmt.Fprintf(os.Stderr, "[%d/%d] %s: %s\n", ev.Done, ev.Total, ev.Path, status)
}
