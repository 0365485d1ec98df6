// Package printer writes colored CLI output.
package printer

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/fatih/color"

	"github.com/AjayBarot7035/secret-santa/types"
)

var (
	green  = color.New(color.FgGreen)
	yellow = color.New(color.FgYellow)
	red    = color.New(color.FgRed, color.Bold)
	cyan   = color.New(color.FgCyan)
)

// Printer writes to an output and an error stream.
type Printer struct {
	out io.Writer
	err io.Writer
}

// New creates a Printer.
func New(out, errOut io.Writer) *Printer {
	return &Printer{out: out, err: errOut}
}

// Success prints a success message in green with a checkmark prefix.
func (p *Printer) Success(format string, a ...any) {
	green.Fprintf(p.out, "✓ %s\n", fmt.Sprintf(format, a...))
}

// Info prints an informational message in the default color.
func (p *Printer) Info(format string, a ...any) {
	fmt.Fprintf(p.out, format+"\n", a...)
}

// Warning prints a warning message in yellow.
func (p *Printer) Warning(format string, a ...any) {
	yellow.Fprintf(p.err, "⚠️  %s\n", fmt.Sprintf(format, a...))
}

// Step prints a step of a multi-step operation.
func (p *Printer) Step(format string, a ...any) {
	cyan.Fprintf(p.out, "→ %s\n", fmt.Sprintf(format, a...))
}

// Error prints a formatted error with title, explanation and suggestions to
// the error stream and returns a plain error for Cobra.
func (p *Printer) Error(title, explanation string, suggestions []string) error {
	red.Fprintf(p.err, "%s\n", title)
	if explanation != "" {
		fmt.Fprintf(p.err, "\n%s\n", explanation)
	}

	switch len(suggestions) {
	case 0:
	case 1:
		fmt.Fprintf(p.err, "\n%s\n", suggestions[0])
	default:
		fmt.Fprintf(p.err, "\nEither:\n")
		for i, s := range suggestions {
			fmt.Fprintf(p.err, "  %d. %s\n", i+1, s)
		}
	}

	return fmt.Errorf("%s", title)
}

// Assignments prints pairings as an aligned table.
func (p *Printer) Assignments(assignments []types.Assignment) {
	tw := tabwriter.NewWriter(p.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "SANTA\tEMAIL\t\tSECRET CHILD\tEMAIL")
	for _, a := range assignments {
		fmt.Fprintf(tw, "%s\t%s\t→\t%s\t%s\n", a.GiverName, a.GiverEmail, a.ReceiverName, a.ReceiverEmail)
	}
	_ = tw.Flush()
}

// Summary prints a one-line summary of a generation result.
func (p *Printer) Summary(result types.Result) {
	if result.Success {
		p.Success("%d assignments generated in %d %s", len(result.Assignments), result.Attempts, plural(result.Attempts, "attempt"))
		return
	}
	red.Fprintf(p.err, "✗ %s\n", result.ErrorMessage())
}

func plural(n int, word string) string {
	if n == 1 {
		return word
	}

	return word + "s"
}
