package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

// executeRoot runs the root command with args and stdin, returning what it
// wrote to standard output and standard error.
func executeRoot(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	cmd := NewRootCmd()
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

// writeTestFile writes content to name inside dir and returns the path.
func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	if err := os.MkdirAll(dir, 0750); err != nil {
		t.Fatalf("failed to create %s: %v", dir, err)
	}
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
	return path
}

// testConfig is a configuration with one members-only site and German texts.
const testConfig = `defaults:
  language: en
sites:
  - domain: private.example
    public: -2
  - domain: public.example
    public: 1
messages:
  de:
    image: "Bild im Beitrag ansehen."
    media: "Medien im Beitrag ansehen."
`
