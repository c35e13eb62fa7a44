// Package console prints the run's status lines with the colored
// [INFO]/[OK]/[WARN]/[ERROR] prefixes the rest of the conversion
// tooling uses, so enhancement output reads the same as the pipeline
// steps around it.
package console

import (
	"fmt"
	"os"

	"github.com/muesli/termenv"
)

var (
	stdout = termenv.NewOutput(os.Stdout)
	stderr = termenv.NewOutput(os.Stderr)
)

// Info prints a blue informational line.
func Info(format string, a ...interface{}) {
	fmt.Printf("%s %s\n", stdout.String("[INFO]").Foreground(termenv.ANSIBlue), fmt.Sprintf(format, a...))
}

// Success prints a green completion line.
func Success(format string, a ...interface{}) {
	fmt.Printf("%s %s\n", stdout.String("[OK]").Foreground(termenv.ANSIGreen), fmt.Sprintf(format, a...))
}

// Warn prints a yellow warning line.
func Warn(format string, a ...interface{}) {
	fmt.Printf("%s %s\n", stdout.String("[WARN]").Foreground(termenv.ANSIYellow), fmt.Sprintf(format, a...))
}

// Error prints a red error line to stderr.
func Error(format string, a ...interface{}) {
	fmt.Fprintf(os.Stderr, "%s %s\n", stderr.String("[ERROR]").Foreground(termenv.ANSIRed), fmt.Sprintf(format, a...))
}
