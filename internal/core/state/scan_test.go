package state

import (
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"folderdock/internal/model"
)

func TestScan_CreatesMissingFolder(t *testing.T) {
	root := filepath.Join(t.TempDir(), "apps", "daily")
	e, err := New(root, stubResolver{}, Options{})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}

	e.Scan()

	st, err := os.Stat(root)
	if err != nil || !st.IsDir() {
		t.Fatalf("expected folder to exist, stat err=%v", err)
	}
	if got := e.Snapshot(); len(got) != 0 {
		t.Fatalf("expected empty state, got %d entries", len(got))
	}

	// A second scan of the now-existing folder must behave the same.
	e.Scan()
	if got := e.Snapshot(); len(got) != 0 {
		t.Fatalf("expected empty state after rescan, got %d entries", len(got))
	}
}

func TestScan_MixedChildrenPreserveListingOrder(t *testing.T) {
	root := t.TempDir()
	for _, name := range []string{"a.txt", "bad.bin", "c.png"} {
		if err := os.WriteFile(filepath.Join(root, name), []byte("x"), 0o644); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}

	e, err := New(root, stubResolver{fail: map[string]bool{"bad.bin": true}}, Options{})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	e.Scan()

	got := e.Snapshot()
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d", len(got))
	}

	first, ok := got[0].(model.Item)
	if !ok || filepath.Base(first.Path) != "a.txt" {
		t.Fatalf("expected a.txt first, got %#v", got[0])
	}
	if _, ok := got[1].(model.ReadError); !ok {
		t.Fatalf("expected ReadError in bad.bin's position, got %#v", got[1])
	}
	third, ok := got[2].(model.Item)
	if !ok || filepath.Base(third.Path) != "c.png" {
		t.Fatalf("expected c.png last, got %#v", got[2])
	}
}

func TestScan_DirectoriesAreItems(t *testing.T) {
	root := t.TempDir()
	if err := os.Mkdir(filepath.Join(root, "sub"), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}

	e, err := New(root, stubResolver{}, Options{})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	e.Scan()

	got := e.Snapshot()
	if len(got) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(got))
	}
	it, ok := got[0].(model.Item)
	if !ok || filepath.Base(it.Path) != "sub" {
		t.Fatalf("expected sub as item, got %#v", got[0])
	}
}

func TestScan_UnlistableRootIsSingleError(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("directory permission bits are not enforced on windows")
	}
	if os.Getuid() == 0 {
		t.Skip("permission bits are not enforced for root")
	}

	root := filepath.Join(t.TempDir(), "locked")
	if err := os.Mkdir(root, 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.Chmod(root, 0o000); err != nil {
		t.Fatalf("chmod: %v", err)
	}
	t.Cleanup(func() { _ = os.Chmod(root, 0o755) })

	e, err := New(root, stubResolver{}, Options{})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	e.Scan()

	got := e.Snapshot()
	if len(got) != 1 {
		t.Fatalf("expected exactly one entry, got %d", len(got))
	}
	re, ok := got[0].(model.ReadError)
	if !ok {
		t.Fatalf("expected ReadError, got %#v", got[0])
	}
	if !strings.Contains(re.Message, "permission denied") {
		t.Fatalf("expected failure text in message, got %q", re.Message)
	}
}

func TestScan_ReplacesPreviousState(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "a.txt"), []byte("x"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	e, err := New(root, stubResolver{}, Options{})
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	e.Scan()
	e.Scan()

	if got := e.Snapshot(); len(got) != 1 {
		t.Fatalf("expected rescan to replace state, got %d entries", len(got))
	}
}
