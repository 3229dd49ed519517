package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"rill/internal/diagfmt"
	"rill/internal/driver"
)

var parseCmd = &cobra.Command{
	Use:   "parse [flags] file.rl",
	Short: "Parse a rill source file and dump its AST",
	Long:  `Parse builds the AST of a rill source file, including propagated debug annotations`,
	Args:  cobra.ExactArgs(1),
	RunE:  runParse,
}

func init() {
	parseCmd.Flags().String("format", "pretty", "output format (pretty|json)")
	addDialectFlags(parseCmd.Flags())
}

func runParse(cmd *cobra.Command, args []string) error {
	cmd.SilenceUsage = true

	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return fmt.Errorf("failed to get format flag: %w", err)
	}

	d, err := dialectFromFlags(cmd)
	if err != nil {
		return err
	}

	maxDiagnostics, err := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	result, err := driver.Check(args[0], driver.Options{
		Dialect:        d,
		MaxDiagnostics: maxDiagnostics,
	})
	if err != nil {
		return err
	}

	if result.Bag.Len() > 0 {
		diagfmt.Pretty(os.Stderr, result.Bag, result.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: 2,
		})
	}
	if result.Block == nil {
		return fmt.Errorf("parse failed")
	}

	switch format {
	case "pretty":
		diagfmt.DumpAST(os.Stdout, result.Block)
		return nil
	case "json":
		return diagfmt.ASTJSON(os.Stdout, result.Block)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
