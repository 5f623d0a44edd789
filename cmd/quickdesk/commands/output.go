package commands

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

var (
	green = color.New(color.FgGreen)
	red   = color.New(color.FgRed, color.Bold)
	cyan  = color.New(color.FgCyan)
)

func printSuccess(w io.Writer, format string, a ...any) {
	green.Fprintf(w, "✓ %s\n", fmt.Sprintf(format, a...))
}

func printStep(w io.Writer, format string, a ...any) {
	cyan.Fprintf(w, "→ %s\n", fmt.Sprintf(format, a...))
}

// printError writes a titled error with an optional hint to stderr and
// returns an error carrying the title for the exit status.
func printError(title string, err error, hint string) error {
	red.Fprintf(os.Stderr, "%s\n\n", title)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
	if hint != "" {
		fmt.Fprintf(os.Stderr, "\n%s\n", hint)
	}
	return fmt.Errorf("%s", title)
}
