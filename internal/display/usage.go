package display

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"github.com/muesli/reflow/indent"
	"github.com/muesli/reflow/wordwrap"
	"github.com/muesli/reflow/wrap"
	"golang.org/x/term"
)

const (
	// maxWidth caps the listing width on wide terminals.
	maxWidth = 100
	// margin is the total horizontal margin, 4 columns on each side.
	margin = 8
	// listIndent is the left indentation of the utility listing.
	listIndent = 4
	// fallbackWidth is used when the output is not a terminal.
	fallbackWidth = 80
)

// TerminalWidth returns the column count of the terminal behind f, or 80
// when f is not a terminal.
func TerminalWidth(f *os.File) int {
	if f == nil {
		return fallbackWidth
	}
	w, _, err := term.GetSize(int(f.Fd()))
	if err != nil || w <= 0 {
		return fallbackWidth
	}
	return w
}

// Width returns the wrap width of the utility listing for a terminal of
// termWidth columns. The result is always at least 1.
func Width(termWidth int) int {
	w := min(termWidth, maxWidth) - margin
	if w < 1 {
		return 1
	}
	return w
}

// PrintUsage writes the dispatcher usage: a banner with name and version,
// the invocation template and the sorted list of utility names.
// utilities is not modified.
func PrintUsage(w io.Writer, name, version string, utilities []string, termWidth int) error {
	names := make([]string, len(utilities))
	copy(names, utilities)
	sort.Strings(names)

	width := Width(termWidth)
	listing := wordwrap.String(strings.Join(names, ", "), width)
	// wordwrap keeps words longer than width intact; split those too.
	listing = wrap.String(listing, width)
	listing = indent.String(listing, listIndent)

	_, err := fmt.Fprintf(w, "%s %s (multi-call binary)\n\n"+
		"Usage: %s [function [arguments...]]\n\n"+
		"Currently defined functions:\n\n"+
		"%s\n", name, version, name, listing)
	if err != nil {
		return fmt.Errorf("write usage: %w", err)
	}
	return nil
}
