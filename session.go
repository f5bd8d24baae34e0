package gather

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hayeah/gather/internal/metrics"
)

// Session runs one subcommand: it walks, selects, writes and reports.
type Session struct {
	Reporter *Reporter
	Logger   *slog.Logger
	Metrics  *metrics.OutputMetrics // optional
}

// Collect writes the first match of every target in req to out, in target
// order. Each target is searched, reported and written before the next. A file
// that cannot be read aborts the run.
func (s *Session) Collect(out io.Writer, req SearchRequest) ([]Match, error) {
	w := NewWalker(WalkOptions{Exclude: req.Exclude}, s.log())
	agg := NewAggregator(out, s.Metrics)

	matches := make([]Match, 0, len(req.Targets))
	for _, target := range req.Targets {
		s.Reporter.Printf("Searching for %s...\n", target)
		path, found := FindFirst(w, req.Roots, target)
		matches = append(matches, Match{Target: target, Path: path, Found: found})
		if !found {
			s.Reporter.NotFound(target, Suggest(w, req.Roots, target, 3))
			continue
		}
		s.Reporter.Found(path)
		if err := agg.Write(OutputRecord{Heading: target, Path: path}); err != nil {
			return matches, err
		}
	}

	s.logSkips(w)
	return matches, nil
}

// Dump writes every file under cfg.Roots to out, oldest first. Headings are
// paths relative to base. Files that cannot be read are logged and skipped.
// The file named by cfg.Output is never dumped into itself.
// It returns the number of records written.
func (s *Session) Dump(out io.Writer, base string, cfg DumpConfig) (int, error) {
	s.Reporter.Printf("Searching all files in: %s\n", strings.Join(cfg.Roots, ", "))

	w := NewWalker(WalkOptions{Exclude: cfg.Exclude, Include: cfg.Include}, s.log())
	files := withoutFile(ListByModTime(w, cfg.Roots), cfg.Output)
	s.Reporter.Printf("Total files found: %d\n", len(files))

	agg := NewAggregator(out, s.Metrics)
	for _, f := range files {
		s.Reporter.Printf("Processing: %s\n", f.Path)
		err := agg.Write(OutputRecord{Heading: Heading(base, f.Path), Path: f.Path})
		var readErr *ReadError
		if errors.As(err, &readErr) {
			s.log().Error("error reading file", "path", f.Path, "err", readErr.Err)
			continue
		}
		if err != nil {
			return agg.Count(), err
		}
	}

	s.logSkips(w)
	return agg.Count(), nil
}

// Tree prints the directory tree described by cfg to out.
func (s *Session) Tree(out io.Writer, cfg TreeConfig) error {
	w := NewWalker(WalkOptions{Exclude: cfg.Exclude, Gitignore: cfg.Gitignore, FollowSymlinks: true}, s.log())
	s.Reporter.Printf("Project Folder Tree Structure:\n\n")
	if err := PrintTree(out, w, cfg.Root); err != nil {
		return err
	}
	s.logSkips(w)
	return nil
}

// withoutFile drops the entries that are the same file as path.
func withoutFile(files []Entry, path string) []Entry {
	if path == "" {
		return files
	}
	target, err := os.Stat(path)
	if err != nil {
		return files
	}
	return slices.DeleteFunc(files, func(e Entry) bool {
		info, err := os.Stat(e.Path)
		return err == nil && os.SameFile(info, target)
	})
}

func (s *Session) log() *slog.Logger {
	if s.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return s.Logger
}

func (s *Session) logSkips(w *Walker) {
	seen := make(map[string]bool)
	for _, skip := range w.Skipped() {
		if seen[skip.Path] {
			continue
		}
		seen[skip.Path] = true
		s.log().Debug("skipped", "path", skip.Path, "err", skip.Err)
	}
}

// Heading returns path relative to base, or path itself if it has no
// relative form.
func Heading(base, path string) string {
	absBase, err := filepath.Abs(base)
	if err != nil {
		return path
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return path
	}
	rel, err := filepath.Rel(absBase, absPath)
	if err != nil {
		return path
	}
	return rel
}

// ReadError reports a selected file that could not be read.
type ReadError struct {
	Path string
	Err  error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("failed to read file %s: %v", e.Path, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }
