package gather

import (
	"fmt"
	"io"

	"github.com/hayeah/gather/internal/metrics"
)

const pageBreak = "\n\n\f\n\n"

// Aggregator writes OutputRecords to a single stream. Each record is the
// heading line, the file content verbatim and a page break.
type Aggregator struct {
	w       io.Writer
	metrics *metrics.OutputMetrics
	count   int
}

// NewAggregator writes to w. m may be nil.
func NewAggregator(w io.Writer, m *metrics.OutputMetrics) *Aggregator {
	return &Aggregator{w: w, metrics: m}
}

// Count returns the number of records written.
func (a *Aggregator) Count() int {
	return a.count
}

// Write appends rec. If the file cannot be read, nothing is written and the
// error is a *ReadError.
func (a *Aggregator) Write(rec OutputRecord) error {
	content, err := ReadText(rec.Path)
	if err != nil {
		return &ReadError{Path: rec.Path, Err: err}
	}

	if _, err := fmt.Fprintf(a.w, "=== %s ===\n\n", rec.Heading); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := a.w.Write(content); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	if _, err := io.WriteString(a.w, pageBreak); err != nil {
		return fmt.Errorf("failed to write output: %w", err)
	}
	a.count++

	if a.metrics != nil {
		a.metrics.Add(rec.Heading, content)
	}
	return nil
}
