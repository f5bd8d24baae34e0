package ignore

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-git/v5/plumbing/format/gitignore"
)

// Ignore decides which paths under a root are pruned from a walk.
type Ignore struct {
	rootPath string
	names    []string
	matcher  gitignore.Matcher
}

// New creates an Ignore for rootPath. Directories whose base name matches one
// of names (an exact name or a doublestar pattern) are ignored.
func New(rootPath string, names []string) *Ignore {
	return &Ignore{
		rootPath: filepath.Clean(rootPath),
		names:    names,
	}
}

// LoadGitignore reads the .gitignore patterns found under the root and adds
// them to the ignore rules.
func (ig *Ignore) LoadGitignore() error {
	fs := osfs.New(ig.rootPath)
	patterns, err := gitignore.ReadPatterns(fs, []string{})
	if err != nil {
		return fmt.Errorf("failed to read gitignore patterns: %w", err)
	}
	ig.matcher = gitignore.NewMatcher(patterns)
	return nil
}

// ValidatePatterns reports the first pattern that doublestar cannot parse.
func ValidatePatterns(patterns []string) error {
	for _, p := range patterns {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("invalid pattern: %q", p)
		}
	}
	return nil
}

// MatchName reports whether name equals or glob-matches one of the patterns.
func MatchName(patterns []string, name string) bool {
	for _, p := range patterns {
		if p == name {
			return true
		}
		if ok, err := doublestar.Match(p, name); err == nil && ok {
			return true
		}
	}
	return false
}

// IsIgnored reports whether path should be pruned. The root is never ignored.
func (ig *Ignore) IsIgnored(path string, isDir bool) bool {
	relPath, err := filepath.Rel(ig.rootPath, path)
	if err != nil || relPath == "." {
		return false
	}

	if isDir && MatchName(ig.names, filepath.Base(path)) {
		return true
	}

	if ig.matcher == nil {
		return false
	}

	// .git is never listed in .gitignore but is never wanted either
	if isDir && filepath.Base(path) == ".git" {
		return true
	}

	parts := strings.Split(relPath, string(os.PathSeparator))
	return ig.matcher.Match(parts, isDir)
}
