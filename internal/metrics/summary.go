package metrics

import (
	"fmt"
	"io"
	"os"
	"sort"
	"strings"

	"golang.org/x/term"
)

// trimPrefix returns s unchanged if len(s) ≤ max; otherwise returns
// "…" + the last max-1 bytes, preserving the suffix.
func trimPrefix(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return "…" + s[len(s)-max+1:]
}

// TermWidth returns the width of the terminal on stdout, or 80.
func TermWidth() int {
	width, _, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil || width <= 0 {
		return 80
	}
	return width
}

// PrintSummary writes a bar chart of the token share of every record, smallest
// first, followed by a totals row. width is the total line width to fit.
func PrintSummary(w io.Writer, m *OutputMetrics, width int) {
	const (
		pctW    = 6
		tokensW = 6
		gapW    = 2
	)

	m.Wait()
	items := m.Items()
	total := m.Total()

	barW := int(float64(width) * 0.35)
	keyW := width - (barW + pctW + tokensW + gapW*3)
	if keyW < 8 {
		keyW = 8
	}

	var maxTokens int
	for _, it := range items {
		maxTokens = max(maxTokens, it.Tokens)
	}
	if total.Tokens == 0 || maxTokens == 0 {
		fmt.Fprintln(w, "No tokens recorded")
		return
	}

	sort.SliceStable(items, func(i, j int) bool {
		return items[i].Tokens < items[j].Tokens
	})

	for _, it := range items {
		pct := float64(it.Tokens) * 100 / float64(total.Tokens)
		barLen := int(float64(it.Tokens)/float64(maxTokens)*float64(barW) + 0.5)
		if barLen == 0 && it.Tokens > 0 {
			barLen = 1
		}
		bar := strings.Repeat("█", barLen)
		fmt.Fprintf(w, "%-*s  %5.1f%%  %*d  %s\n", barW, bar, pct, tokensW, it.Tokens, trimPrefix(it.Key, keyW))
	}

	sep := strings.Repeat("─", barW)
	fmt.Fprintf(w, "%-*s  %5.1f%%  %*d  %s\n", barW, sep, 100.0, tokensW, total.Tokens, "TOTAL")
	fmt.Fprintf(w, "\nSummary: %d files, %d tokens\n", len(items), total.Tokens)
}
