package cli

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Global flags, set from the cmd package
var (
	quiet       bool
	noColor     bool
	skipConfirm bool
)

// SetGlobalFlags records the persistent flag values
func SetGlobalFlags(q, nc, sc bool) {
	quiet = q
	noColor = nc
	skipConfirm = sc
}

// NoColor reports whether styled output is disabled
func NoColor() bool { return noColor }

// Confirm asks a yes/no question on out and reads the answer from in
func Confirm(in io.Reader, out io.Writer, prompt string, defaultYes bool) (bool, error) {
	if skipConfirm {
		return true, nil
	}

	suffix := " [y/N]: "
	if defaultYes {
		suffix = " [Y/n]: "
	}
	fmt.Fprint(out, prompt+suffix)

	response, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && response == "" {
		return false, err
	}

	response = strings.ToLower(strings.TrimSpace(response))
	if response == "" {
		return defaultYes, nil
	}
	return response == "y" || response == "yes", nil
}

// PrintSuccess writes a success line unless quiet
func PrintSuccess(w io.Writer, format string, args ...interface{}) {
	if quiet {
		return
	}
	printTagged(w, "✓", "OK:", format, args...)
}

// PrintInfo writes an info line unless quiet
func PrintInfo(w io.Writer, format string, args ...interface{}) {
	if quiet {
		return
	}
	printTagged(w, "ℹ", "INFO:", format, args...)
}

// PrintWarning writes a warning line; quiet does not apply
func PrintWarning(w io.Writer, format string, args ...interface{}) {
	printTagged(w, "⚠", "WARNING:", format, args...)
}

// PrintError writes an error line; quiet does not apply
func PrintError(w io.Writer, format string, args ...interface{}) {
	printTagged(w, "✗", "ERROR:", format, args...)
}

func printTagged(w io.Writer, symbol, plain, format string, args ...interface{}) {
	tag := symbol
	if noColor {
		tag = plain
	}
	fmt.Fprintf(w, "%s %s\n", tag, fmt.Sprintf(format, args...))
}
