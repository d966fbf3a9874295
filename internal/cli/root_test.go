package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const impulseSource = `from .core import UGen, param, ugen


@ugen(ar=True, kr=True)
class Impulse(UGen):
    frequency = param(440.0)
    phase = param(0.0)
`

func writeSource(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestRootCommandGeneratesStubs(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "impulse.py", impulseSource)

	root := newRootCommand()
	root.SetArgs([]string{"--dir", dir})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "impulse.pyi"))
	if err != nil {
		t.Fatalf("reading generated stub: %v", err)
	}
	stub := string(data)
	if !strings.Contains(stub, "class Impulse(UGen):") {
		t.Errorf("stub missing class declaration:\n%s", stub)
	}
	if !strings.Contains(stub, "    def ar(") || !strings.Contains(stub, "    def kr(") {
		t.Errorf("stub missing rate constructors:\n%s", stub)
	}
}

func TestGenerateSubcommandMatchesRoot(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "impulse.py", impulseSource)

	root := newRootCommand()
	root.SetArgs([]string{"generate", "--dir", dir})
	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if _, err := os.Stat(filepath.Join(dir, "impulse.pyi")); err != nil {
		t.Fatalf("expected stub file: %v", err)
	}
}

func TestCheckCommandCleanDirectory(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "impulse.py", impulseSource)

	generate := newRootCommand()
	generate.SetArgs([]string{"--dir", dir})
	if err := generate.Execute(); err != nil {
		t.Fatalf("generate: %v", err)
	}

	var out bytes.Buffer
	check := newRootCommand()
	check.SetOut(&out)
	check.SetArgs([]string{"check", "--dir", dir})
	if err := check.Execute(); err != nil {
		t.Fatalf("check: %v", err)
	}
	if !strings.Contains(out.String(), "All stubs up to date") {
		t.Errorf("unexpected check output: %q", out.String())
	}
}

func TestCheckCommandReportsMissingStub(t *testing.T) {
	dir := t.TempDir()
	writeSource(t, dir, "impulse.py", impulseSource)

	var out bytes.Buffer
	check := newRootCommand()
	check.SetOut(&out)
	check.SetErr(io.Discard)
	check.SetArgs([]string{"check", "--dir", dir})

	err := check.Execute()
	if err == nil {
		t.Fatal("expected check to fail for a missing stub")
	}
	if !strings.Contains(err.Error(), "1 stub(s) out of date") {
		t.Errorf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "missing: ") || !strings.Contains(out.String(), "impulse.pyi") {
		t.Errorf("unexpected check output: %q", out.String())
	}
}

func TestRootCommandRegistersFlags(t *testing.T) {
	root := newRootCommand()
	for _, name := range []string{"dir", "exclude", "config", "verbose"} {
		if root.PersistentFlags().Lookup(name) == nil {
			t.Errorf("%s flag not registered", name)
		}
	}
}
