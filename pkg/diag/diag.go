// Package diag collects and formats compilation diagnostics.
//
// A single Reporter is shared by the lexer and the parser of one
// compilation; its counter is the authoritative number of errors seen.
package diag

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
)

// Reporter writes single-line diagnostics to w and counts them.
type Reporter struct {
	w     io.Writer
	count int
	red   *color.Color
}

// NewReporter returns a Reporter writing to w. When colored is true the
// leading "Error" is printed in red (subject to the NO_COLOR convention
// honoured by the color package).
func NewReporter(w io.Writer, colored bool) *Reporter {
	r := &Reporter{w: w}
	if colored {
		r.red = color.New(color.FgRed)
	}
	return r
}

// NewStderrReporter returns a Reporter writing to os.Stderr without color.
func NewStderrReporter() *Reporter {
	return NewReporter(os.Stderr, false)
}

func (r *Reporter) prefix() string {
	if r.red != nil {
		return r.red.Sprint("Error")
	}
	return "Error"
}

// Report emits a diagnostic without location information.
func (r *Reporter) Report(filename, message string) {
	if filename != "" {
		fmt.Fprintf(r.w, "%s in %s: %s\n", r.prefix(), filename, message)
	} else {
		fmt.Fprintf(r.w, "%s: %s\n", r.prefix(), message)
	}
	r.count++
}

// ReportAt emits a diagnostic with line and column information.
func (r *Reporter) ReportAt(filename string, line, column int, message string) {
	if filename != "" {
		fmt.Fprintf(r.w, "%s in %s:%d:%d: %s\n", r.prefix(), filename, line, column, message)
	} else {
		fmt.Fprintf(r.w, "%s at line %d, column %d: %s\n", r.prefix(), line, column, message)
	}
	r.count++
}

// ReportWithToken emits a diagnostic that quotes the offending token text.
func (r *Reporter) ReportWithToken(filename string, line, column int, token, message string) {
	if filename != "" {
		fmt.Fprintf(r.w, "%s in %s:%d:%d: %s: '%s'\n", r.prefix(), filename, line, column, message, token)
	} else {
		fmt.Fprintf(r.w, "%s at line %d, column %d: %s: '%s'\n", r.prefix(), line, column, message, token)
	}
	r.count++
}

// Count returns the number of diagnostics reported so far.
func (r *Reporter) Count() int { return r.count }

// Reset sets the diagnostic counter back to zero.
func (r *Reporter) Reset() { r.count = 0 }
