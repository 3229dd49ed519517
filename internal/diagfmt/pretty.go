package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"rill/internal/diag"
	"rill/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	codeColor = color.New(color.Faint)
)

// Pretty renders diagnostics in a human-readable form, one block per
// diagnostic:
//
//	<path>:<line>:<col>: <SEV> <CODE>: <message>
//	    <source line>
//	    ^~~~~
//
// Callers wanting deterministic order should bag.Sort() first.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	items := bag.Items()
	for i := range items {
		prettyOne(w, &items[i], fs, opts)
	}
}

func prettyOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts PrettyOpts) {
	f := fs.Get(d.Primary.File)
	path := "<unknown>"
	if f != nil {
		path = f.FormatPath(opts.PathMode.mode(), fs.BaseDir())
	}
	start, _ := fs.Resolve(d.Primary)

	sev := d.Severity.String()
	code := d.Code.ID()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
		code = codeColor.Sprint(code)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", path, start.Line, start.Col, sev, code, d.Message)

	if f != nil {
		writeContext(w, f, d.Primary, opts)
	}

	if opts.ShowNotes {
		for _, n := range d.Notes {
			nf := fs.Get(n.Span.File)
			if nf == nil {
				fmt.Fprintf(w, "  note: %s\n", n.Msg)
				continue
			}
			pos, _ := fs.Resolve(n.Span)
			fmt.Fprintf(w, "  note: %s:%d:%d: %s\n",
				nf.FormatPath(opts.PathMode.mode(), fs.BaseDir()), pos.Line, pos.Col, n.Msg)
		}
	}
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}

// writeContext prints the primary line (plus opts.Context neighbors) with a
// caret underline aligned by display width, so wide runes in the source do
// not skew the marker.
func writeContext(w io.Writer, f *source.File, sp source.Span, opts PrettyOpts) {
	lineStart, lineEnd := lineBounds(f.Content, int(sp.Start))

	before := contextBefore(f.Content, lineStart, int(opts.Context))
	for _, ln := range before {
		fmt.Fprintf(w, "    %s\n", ln)
	}

	line := string(f.Content[lineStart:lineEnd])
	fmt.Fprintf(w, "    %s\n", line)

	pad := runewidth.StringWidth(string(f.Content[lineStart:sp.Start]))
	spanEnd := int(sp.End)
	if spanEnd > lineEnd {
		spanEnd = lineEnd
	}
	width := runewidth.StringWidth(string(f.Content[sp.Start:spanEnd]))
	if width < 1 {
		width = 1
	}
	marker := "^" + strings.Repeat("~", width-1)
	if opts.Color {
		marker = severityColor(diag.SevError).Sprint(marker)
	}
	fmt.Fprintf(w, "    %s%s\n", strings.Repeat(" ", pad), marker)
}

// lineBounds returns the [start, end) byte range of the line containing off.
func lineBounds(content []byte, off int) (int, int) {
	if off > len(content) {
		off = len(content)
	}
	start := off
	for start > 0 && content[start-1] != '\n' {
		start--
	}
	end := off
	for end < len(content) && content[end] != '\n' {
		end++
	}
	return start, end
}

// contextBefore returns up to n full lines preceding the line starting at
// lineStart.
func contextBefore(content []byte, lineStart, n int) []string {
	var lines []string
	for n > 0 && lineStart > 0 {
		start, end := lineBounds(content, lineStart-1)
		lines = append([]string{string(content[start:end])}, lines...)
		lineStart = start
		n--
	}
	return lines
}
