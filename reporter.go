package gather

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Reporter prints human readable progress lines. Found and not-found lines
// are coloured when writing to a terminal.
type Reporter struct {
	w       io.Writer
	found   *color.Color
	missing *color.Color
	hint    *color.Color
}

// NewReporter writes progress to w.
func NewReporter(w io.Writer) *Reporter {
	r := &Reporter{
		w:       w,
		found:   color.New(color.FgGreen),
		missing: color.New(color.FgYellow),
		hint:    color.New(color.Faint),
	}
	if !isTerminal(w) {
		r.found.DisableColor()
		r.missing.DisableColor()
		r.hint.DisableColor()
	}
	return r
}

// isTerminal reports whether w is stdout or stderr and colour is allowed.
func isTerminal(w io.Writer) bool {
	if w != os.Stdout && w != os.Stderr {
		return false
	}
	return !color.NoColor
}

func (r *Reporter) Printf(format string, args ...any) {
	fmt.Fprintf(r.w, format, args...)
}

func (r *Reporter) Println(args ...any) {
	fmt.Fprintln(r.w, args...)
}

func (r *Reporter) Found(path string) {
	r.found.Fprintf(r.w, "Found: %s\n", path)
}

// NotFound reports a missing target with optional suggestions.
func (r *Reporter) NotFound(target string, suggestions []string) {
	r.missing.Fprintf(r.w, "Not found: %s\n", target)
	if len(suggestions) > 0 {
		r.hint.Fprintf(r.w, "  did you mean: %s\n", strings.Join(suggestions, ", "))
	}
}
