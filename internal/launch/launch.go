// Package launch glues the monitored folder to the host system: locating
// the per-user data root, bootstrapping folder paths, moving files in, and
// opening entries with the OS default handler.
package launch

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

const appDirName = "folderdock"

// EnvDataDir overrides the per-user local-data root when set.
const EnvDataDir = "FDOCK_DATA_DIR"

// DataRoot returns the per-user local-data root the launcher folders live
// under.
func DataRoot() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		return v, nil
	}
	return dataRoot()
}

// FolderPath maps a folder name to its path under the data root. An empty
// root means the default from DataRoot. The name must be a single path
// element so it cannot escape the root.
func FolderPath(root, name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("folder name is required")
	}
	if name != filepath.Base(name) || name == "." || name == ".." {
		return "", fmt.Errorf("invalid folder name %q", name)
	}

	if root == "" {
		var err error
		if root, err = DataRoot(); err != nil {
			return "", err
		}
	}
	return filepath.Join(root, appDirName, name), nil
}

// Folders lists the folder names present under the data root. A data root
// with no launcher directory yields an empty list, not an error.
func Folders(root string) ([]string, error) {
	if root == "" {
		var err error
		if root, err = DataRoot(); err != nil {
			return nil, err
		}
	}

	children, err := os.ReadDir(filepath.Join(root, appDirName))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}

	var names []string
	for _, c := range children {
		if c.IsDir() {
			names = append(names, c.Name())
		}
	}
	return names, nil
}

// MoveIntoFolder renames src to dir/<base of src>. An existing destination
// is a failure rather than a silent replace, so a move can never clobber an
// entry. The caller decides whether the error is surfaced or dropped.
func MoveIntoFolder(src, dir string) (string, error) {
	src = strings.TrimSpace(src)
	if src == "" {
		return "", fmt.Errorf("source path is required")
	}

	dst := filepath.Join(dir, filepath.Base(src))
	if _, err := os.Lstat(dst); err == nil {
		return "", fmt.Errorf("%s already exists in %s", filepath.Base(src), dir)
	}
	if err := os.Rename(src, dst); err != nil {
		return "", err
	}
	return dst, nil
}

// Open asks the OS to open path with its default handler. Fire and forget:
// the child is started, never awaited, and its exit status is discarded.
func Open(path string) error {
	if strings.TrimSpace(path) == "" {
		return fmt.Errorf("path is required")
	}

	cmd := openCommand(path)
	if err := cmd.Start(); err != nil {
		return err
	}
	go func() { _ = cmd.Wait() }()
	return nil
}
