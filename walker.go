package gather

import (
	"fmt"
	"io/fs"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/hayeah/gather/ignore"
)

// WalkOptions configures which entries a Walker produces.
type WalkOptions struct {
	// Exclude lists directory names (or doublestar patterns) that are pruned.
	Exclude []string
	// Include restricts files to those whose root-relative, slash-separated
	// path matches one of these doublestar patterns. Empty means all files.
	Include []string
	// Gitignore prunes paths ignored by the root's .gitignore files.
	Gitignore bool
	// FollowSymlinks descends into symlinked directories below the root.
	FollowSymlinks bool
}

// Walker enumerates entries under root directories in lexical, depth-first
// order. Directories that cannot be read are recorded in Skipped.
type Walker struct {
	opts    WalkOptions
	logger  *slog.Logger
	skipped []Skip
}

// NewWalker creates a Walker. A nil logger discards diagnostics.
func NewWalker(opts WalkOptions, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Walker{
		opts:   opts,
		logger: logger,
	}
}

// Skipped returns every path skipped so far, in the order it was met.
func (w *Walker) Skipped() []Skip {
	return append([]Skip(nil), w.skipped...)
}

func (w *Walker) skip(path string, err error) {
	w.logger.Debug("skipping", "path", path, "err", err)
	w.skipped = append(w.skipped, Skip{Path: path, Err: err})
}

// Walk returns the entries under root, starting with root itself. The
// sequence is single pass: the directory tree is read while it is consumed.
//
// A root that is a symlink is resolved. A symlink to a directory found inside
// the tree is reported as a directory; it is descended into only when
// FollowSymlinks is set. Paths are always reported under root as given.
func (w *Walker) Walk(root string) iter.Seq[Entry] {
	root = filepath.Clean(root)

	return func(yield func(Entry) bool) {
		ig := ignore.New(root, w.opts.Exclude)
		if w.opts.Gitignore {
			if err := ig.LoadGitignore(); err != nil {
				w.logger.Warn("walking without gitignore rules", "root", root, "err", err)
			}
		}

		realDir, err := filepath.EvalSymlinks(root)
		if err != nil {
			// missing root, or a dangling link
			w.skip(root, err)
			return
		}
		w.walk(root, root, realDir, ig, nil, yield)
	}
}

// walk reads the directory realDir and reports its entries under dir. linkDirs
// holds the resolved parent directories of the symlinks followed to get here.
// It returns false once yield asks to stop.
func (w *Walker) walk(root, dir, realDir string, ig *ignore.Ignore, linkDirs []string, yield func(Entry) bool) bool {
	more := true
	filepath.WalkDir(realDir, func(path string, d fs.DirEntry, err error) error {
		logical := dir
		if path != realDir {
			rel, relErr := filepath.Rel(realDir, path)
			if relErr != nil {
				return relErr
			}
			logical = filepath.Join(dir, rel)
		}

		if err != nil {
			// a directory that could not be listed
			w.skip(logical, err)
			return nil
		}

		isDir := d.IsDir()
		var target string
		if d.Type()&fs.ModeSymlink != 0 {
			if info, statErr := os.Stat(path); statErr == nil && info.IsDir() {
				isDir = true
				target, _ = filepath.EvalSymlinks(path)
			}
		}

		if ig.IsIgnored(logical, isDir) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		entry := Entry{Path: logical, IsDir: isDir}
		if !isDir {
			if !w.included(root, logical) {
				return nil
			}
			info, err := fileInfo(path, d)
			if err != nil {
				w.skip(logical, err)
				return nil
			}
			entry.ModTime = info.ModTime()
		}

		if !yield(entry) {
			more = false
			return filepath.SkipAll
		}

		if target != "" && w.opts.FollowSymlinks {
			parents := append(slices.Clip(linkDirs), filepath.Dir(path))
			if isLoop(target, parents) {
				w.skip(logical, fmt.Errorf("symlink loop to %s", target))
				return nil
			}
			// the link itself was already yielded as this walk's root entry
			if !w.walk(root, logical, target, ig, parents, skipFirst(yield)) {
				more = false
				return filepath.SkipAll
			}
		}
		return nil
	})
	return more
}

// fileInfo stats a file entry, following a symlink to its target. A dangling
// link falls back to the link itself.
func fileInfo(path string, d fs.DirEntry) (fs.FileInfo, error) {
	if d.Type()&fs.ModeSymlink != 0 {
		if info, err := os.Stat(path); err == nil {
			return info, nil
		}
	}
	return d.Info()
}

// isLoop reports whether following a link to target would revisit one of the
// directories in parents or their ancestors.
func isLoop(target string, parents []string) bool {
	for _, p := range parents {
		rel, err := filepath.Rel(target, p)
		if err != nil {
			continue
		}
		if rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
			return true
		}
	}
	return false
}

func skipFirst(yield func(Entry) bool) func(Entry) bool {
	first := true
	return func(e Entry) bool {
		if first {
			first = false
			return true
		}
		return yield(e)
	}
}

func (w *Walker) included(root, path string) bool {
	if len(w.opts.Include) == 0 {
		return true
	}
	rel, err := filepath.Rel(root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range w.opts.Include {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}
