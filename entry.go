package gather

import (
	"fmt"
	"time"
)

// Entry is a single file or directory produced by a walk.
type Entry struct {
	Path    string
	IsDir   bool
	ModTime time.Time // zero for directories
}

// SearchRequest describes what a run looks for and where.
type SearchRequest struct {
	Roots   []string // searched in order
	Targets []string // file names, only used in first-match mode
	Exclude []string // directory names or doublestar patterns
}

// OutputRecord is one heading/file pair written by the Aggregator.
type OutputRecord struct {
	Heading string
	Path    string
}

// Skip records a path the walker could not produce entries for.
type Skip struct {
	Path string
	Err  error
}

func (s Skip) String() string {
	return fmt.Sprintf("%s: %v", s.Path, s.Err)
}

// Match is the result of a first-match search for one target.
type Match struct {
	Target string
	Path   string
	Found  bool
}
