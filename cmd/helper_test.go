package cmd

import (
	"context"
	"flag"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/subcommands"
)

// setFlag sets a global flag for the duration of the test.
func setFlag[T any](t *testing.T, p *T, v T) {
	t.Helper()
	old := *p
	*p = v
	t.Cleanup(func() { *p = old })
}

// setStdout redirects the command output for the duration of the test.
func setStdout(t *testing.T, w io.Writer) {
	t.Helper()
	old := stdout
	stdout = w
	t.Cleanup(func() { stdout = old })
}

// writeLedger writes a ledger file in a temporary directory and returns its path.
func writeLedger(t *testing.T, name, content string) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(file, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write ledger %q: %v", file, err)
	}
	return file
}

// readLedger returns the content of a ledger file.
func readLedger(t *testing.T, file string) string {
	t.Helper()
	content, err := os.ReadFile(file)
	if err != nil {
		t.Fatalf("failed to read ledger %q: %v", file, err)
	}
	return string(content)
}

// useLedgers configures the ledger files, without currency, for the duration
// of the test.
func useLedgers(t *testing.T, files string) {
	t.Helper()
	t.Setenv(EnvCurrency, "")
	t.Setenv(EnvTaxRate, "")
	setFlag(t, ledgerFile, files)
	setFlag(t, currency, "")
}

// run executes a subcommand with args and returns the markdown it printed.
func run(t *testing.T, c subcommands.Command, args ...string) (string, subcommands.ExitStatus) {
	t.Helper()
	f := flag.NewFlagSet(c.Name(), flag.ContinueOnError)
	c.SetFlags(f)
	if err := f.Parse(args); err != nil {
		t.Fatalf("%s: invalid args %q: %v", c.Name(), args, err)
	}

	var md string
	old := printMarkdown
	printMarkdown = func(s string) { md += s }
	defer func() { printMarkdown = old }()

	status := c.Execute(context.Background(), f)
	return md, status
}
