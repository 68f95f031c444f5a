package launch

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDataRootEnvOverride(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(EnvDataDir, dir)

	got, err := DataRoot()
	if err != nil {
		t.Fatalf("DataRoot() error = %v", err)
	}
	if got != dir {
		t.Fatalf("DataRoot() = %q, want %q", got, dir)
	}
}

func TestFolderPath(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvDataDir, root)

	got, err := FolderPath("", "apps")
	if err != nil {
		t.Fatalf("FolderPath(apps) error = %v", err)
	}
	want := filepath.Join(root, "folderdock", "apps")
	if got != want {
		t.Fatalf("FolderPath(apps) = %q, want %q", got, want)
	}

	other := t.TempDir()
	got, err = FolderPath(other, "apps")
	if err != nil {
		t.Fatalf("FolderPath(apps) with explicit root error = %v", err)
	}
	if want := filepath.Join(other, "folderdock", "apps"); got != want {
		t.Fatalf("FolderPath(apps) = %q, want %q", got, want)
	}
}

func TestFolderPathRejectsBadNames(t *testing.T) {
	t.Setenv(EnvDataDir, t.TempDir())

	for _, name := range []string{"", "   ", ".", "..", "a/b", string(filepath.Separator) + "abs"} {
		if _, err := FolderPath("", name); err == nil {
			t.Errorf("FolderPath(%q) = nil error, want rejection", name)
		}
	}
}

func TestMoveIntoFolder(t *testing.T) {
	src := filepath.Join(t.TempDir(), "report.txt")
	if err := os.WriteFile(src, []byte("payload"), 0o644); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()

	dst, err := MoveIntoFolder(src, dir)
	if err != nil {
		t.Fatalf("MoveIntoFolder() error = %v", err)
	}
	if want := filepath.Join(dir, "report.txt"); dst != want {
		t.Fatalf("MoveIntoFolder() = %q, want %q", dst, want)
	}

	data, err := os.ReadFile(dst)
	if err != nil {
		t.Fatalf("read moved file: %v", err)
	}
	if string(data) != "payload" {
		t.Fatalf("moved content = %q, want %q", data, "payload")
	}
	if _, err := os.Lstat(src); !os.IsNotExist(err) {
		t.Fatalf("source still present after move, stat err = %v", err)
	}
}

func TestMoveIntoFolderCollision(t *testing.T) {
	src := filepath.Join(t.TempDir(), "report.txt")
	if err := os.WriteFile(src, []byte("new"), 0o644); err != nil {
		t.Fatal(err)
	}
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "report.txt"), []byte("old"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := MoveIntoFolder(src, dir); err == nil {
		t.Fatal("MoveIntoFolder() with existing destination = nil error, want failure")
	} else if !strings.Contains(err.Error(), "report.txt") {
		t.Fatalf("collision error %q does not name the file", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, "report.txt"))
	if err != nil {
		t.Fatal(err)
	}
	if string(data) != "old" {
		t.Fatalf("destination overwritten on collision, content = %q", data)
	}
	if _, err := os.Lstat(src); err != nil {
		t.Fatalf("source lost on failed move: %v", err)
	}
}

func TestMoveIntoFolderMissingSource(t *testing.T) {
	if _, err := MoveIntoFolder(filepath.Join(t.TempDir(), "ghost.bin"), t.TempDir()); err == nil {
		t.Fatal("MoveIntoFolder() with missing source = nil error, want failure")
	}
}

func TestFolders(t *testing.T) {
	root := t.TempDir()
	t.Setenv(EnvDataDir, root)

	base := filepath.Join(root, "folderdock")
	for _, name := range []string{"apps", "games"} {
		if err := os.MkdirAll(filepath.Join(base, name), 0o755); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(base, "stray.txt"), nil, 0o644); err != nil {
		t.Fatal(err)
	}

	got, err := Folders("")
	if err != nil {
		t.Fatalf("Folders() error = %v", err)
	}
	want := []string{"apps", "games"}
	if len(got) != len(want) {
		t.Fatalf("Folders() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("Folders() = %v, want %v", got, want)
		}
	}
}

func TestFoldersMissingRoot(t *testing.T) {
	got, err := Folders(filepath.Join(t.TempDir(), "nothing-here"))
	if err != nil {
		t.Fatalf("Folders() error = %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("Folders() = %v, want empty", got)
	}
}
