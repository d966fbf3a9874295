package generator

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// IssueKind classifies one way a committed stub can disagree with what
// generation would produce.
type IssueKind string

const (
	// IssueMissing marks a stub that generation would write but that does
	// not exist on disk.
	IssueMissing IssueKind = "missing"
	// IssueStale marks a stub whose on-disk bytes differ from a fresh
	// render of its source.
	IssueStale IssueKind = "stale"
	// IssueOrphan marks a stub that a fresh run would not produce: its
	// source was removed, or no longer declares any class.
	IssueOrphan IssueKind = "orphan"
)

// Issue is one stub file that is out of date.
type Issue struct {
	Path string
	Kind IssueKind
}

// Check renders every stub in memory and compares the results against the
// .pyi files in dir. It never writes. Stubs for excluded stems are assumed
// handwritten and left alone.
func (g *Generator) Check(dir string) ([]Issue, error) {
	names, err := g.sourceFiles(dir)
	if err != nil {
		return nil, err
	}

	expected := make(map[string]string, len(names))
	for _, name := range names {
		stub, err := g.GenerateFile(filepath.Join(dir, name))
		if err != nil {
			return nil, err
		}
		if stub.HasClasses() {
			expected[stub.Path] = stub.Content
		}
	}

	var issues []Issue
	for _, name := range names {
		path := stubPath(filepath.Join(dir, name))
		content, ok := expected[path]
		if !ok {
			continue
		}
		onDisk, err := os.ReadFile(path)
		if os.IsNotExist(err) {
			issues = append(issues, Issue{Path: path, Kind: IssueMissing})
			continue
		}
		if err != nil {
			return nil, errors.Wrap(err, "reading stub")
		}
		if string(onDisk) != content {
			issues = append(issues, Issue{Path: path, Kind: IssueStale})
		}
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "reading source directory")
	}
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".pyi") {
			continue
		}
		if g.exclude[strings.TrimSuffix(name, ".pyi")] {
			continue
		}
		path := filepath.Join(dir, name)
		if _, ok := expected[path]; !ok {
			issues = append(issues, Issue{Path: path, Kind: IssueOrphan})
		}
	}
	return issues, nil
}
