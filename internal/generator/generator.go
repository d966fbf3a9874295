// Package generator turns Python ugen source files into .pyi stub files.
// It parses each source with pkg/python/parser, extracts the classes the
// stubs describe, and renders stub text whose formatting is stable enough
// to diff against committed stubs.
package generator

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"

	"github.com/jleen/supriya/pkg/python/parser"
)

// DefaultExcludes are the source stems that never get stubs: package
// plumbing and the handwritten core.
var DefaultExcludes = []string{"__init__", "core", "compilers", "factories"}

// Generator renders stub files for the ugen sources in a directory.
type Generator struct {
	log     *zap.SugaredLogger
	out     io.Writer
	exclude map[string]bool
}

// New creates a generator that reports progress on out. A nil exclude list
// means DefaultExcludes.
func New(log *zap.SugaredLogger, out io.Writer, exclude []string) *Generator {
	if exclude == nil {
		exclude = DefaultExcludes
	}
	stems := make(map[string]bool, len(exclude))
	for _, stem := range exclude {
		stems[stem] = true
	}
	return &Generator{log: log, out: out, exclude: stems}
}

// FileStub is the rendered stub for one source file.
type FileStub struct {
	Source     string // path of the .py file
	Path       string // path the stub belongs at
	Content    string
	UGenCount  int
	PlainCount int
}

// HasClasses reports whether the source defined any classes at all. Files
// without classes get no stub.
func (s FileStub) HasClasses() bool {
	return s.UGenCount > 0 || s.PlainCount > 0
}

// GenerateSource renders the stub for one source file held in memory.
func (g *Generator) GenerateSource(path string, src []byte) (FileStub, error) {
	mod, err := parser.Parse(path, src)
	if err != nil {
		return FileStub{}, err
	}
	ugens, plains := g.Extract(mod)
	return FileStub{
		Source:     path,
		Path:       stubPath(path),
		Content:    renderDocument(ugens, plains),
		UGenCount:  len(ugens),
		PlainCount: len(plains),
	}, nil
}

// GenerateFile renders the stub for the source file at path.
func (g *Generator) GenerateFile(path string) (FileStub, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return FileStub{}, errors.Wrap(err, "reading source")
	}
	return g.GenerateSource(path, src)
}

// Run regenerates the stubs for every eligible source file in dir, writing
// a .pyi next to each .py that defines classes. A source that fails to
// parse aborts the run.
func (g *Generator) Run(dir string) error {
	names, err := g.sourceFiles(dir)
	if err != nil {
		return err
	}
	for _, name := range names {
		fmt.Fprintf(g.out, "Processing %s...\n", name)
		stub, err := g.GenerateFile(filepath.Join(dir, name))
		if err != nil {
			return err
		}
		if !stub.HasClasses() {
			fmt.Fprintln(g.out, "  No classes found, skipping")
			continue
		}
		if err := os.WriteFile(stub.Path, []byte(stub.Content), 0o644); err != nil {
			return errors.Wrap(err, "writing stub")
		}
		fmt.Fprintf(g.out, "  Generated %s (%d @ugen, %d other)\n",
			filepath.Base(stub.Path), stub.UGenCount, stub.PlainCount)
	}
	return nil
}

// sourceFiles lists the stub-eligible .py files in dir, sorted by name.
func (g *Generator) sourceFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, errors.Wrap(err, "reading source directory")
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if !strings.HasSuffix(name, ".py") {
			continue
		}
		if g.exclude[strings.TrimSuffix(name, ".py")] {
			continue
		}
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

func stubPath(source string) string {
	return strings.TrimSuffix(source, ".py") + ".pyi"
}
