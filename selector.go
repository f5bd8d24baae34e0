package gather

import (
	"os"
	"path/filepath"
	"slices"

	"github.com/sahilm/fuzzy"
)

// FindFirst returns the first file named target, searching roots in order and
// each root in walk order.
func FindFirst(w *Walker, roots []string, target string) (string, bool) {
	for _, root := range roots {
		for e := range w.Walk(root) {
			if !e.IsDir && filepath.Base(e.Path) == target {
				return e.Path, true
			}
		}
	}
	return "", false
}

// Collect runs FindFirst for every target of req, in order.
func Collect(w *Walker, req SearchRequest) []Match {
	matches := make([]Match, 0, len(req.Targets))
	for _, target := range req.Targets {
		path, ok := FindFirst(w, req.Roots, target)
		matches = append(matches, Match{Target: target, Path: path, Found: ok})
	}
	return matches
}

// Suggest returns up to limit file names under roots that fuzzy match target,
// best match first.
func Suggest(w *Walker, roots []string, target string, limit int) []string {
	seen := make(map[string]bool)
	var names []string
	for _, root := range roots {
		for e := range w.Walk(root) {
			name := filepath.Base(e.Path)
			if e.IsDir || seen[name] {
				continue
			}
			seen[name] = true
			names = append(names, name)
		}
	}

	var suggestions []string
	for _, m := range fuzzy.Find(target, names) {
		if len(suggestions) == limit {
			break
		}
		suggestions = append(suggestions, m.Str)
	}
	return suggestions
}

// ListByModTime returns every file under roots, oldest first. Files with equal
// modification times keep their walk order. Missing roots are logged and
// skipped with an info log.
func ListByModTime(w *Walker, roots []string) []Entry {
	var files []Entry
	for _, root := range roots {
		if _, err := os.Stat(root); err != nil {
			w.logger.Info("skipping missing folder", "root", root)
			continue
		}
		for e := range w.Walk(root) {
			if !e.IsDir {
				files = append(files, e)
			}
		}
	}

	slices.SortStableFunc(files, func(a, b Entry) int {
		return a.ModTime.Compare(b.ModTime)
	})
	return files
}
