package fdockcli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestHelpContainsSubcommands(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"--help"})
	if err := cmd.Execute(); err != nil {
		t.Fatalf("execute: %v", err)
	}
	s := out.String()
	for _, want := range []string{"fdock", "status", "counters", "open"} {
		if !strings.Contains(s, want) {
			t.Fatalf("help missing %q: %s", want, s)
		}
	}
}

func TestTooManyArgsIsError(t *testing.T) {
	cmd := NewRootCommand()
	cmd.SetArgs([]string{"apps", "/tmp/a.txt", "extra"})
	if _, _, err := ExecuteForTest(cmd); err == nil {
		t.Fatal("expected arg count error")
	}
}

func TestListFolders(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"games", "apps"} {
		if err := os.MkdirAll(filepath.Join(root, "folderdock", name), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)

	if err := listFolders(cmd, &Options{DataDir: root}); err != nil {
		t.Fatalf("listFolders: %v", err)
	}
	if got := out.String(); got != "apps\ngames\n" {
		t.Fatalf("listing = %q", got)
	}
}
