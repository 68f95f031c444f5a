//go:build windows

package launch

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"golang.org/x/sys/windows"
)

func dataRoot() (string, error) {
	path, err := windows.KnownFolderPath(windows.FOLDERID_LocalAppData, 0)
	if err == nil && strings.TrimSpace(path) != "" {
		return path, nil
	}
	if v := strings.TrimSpace(os.Getenv("LOCALAPPDATA")); v != "" {
		return v, nil
	}
	if err == nil {
		err = fmt.Errorf("empty path")
	}
	return "", fmt.Errorf("resolve local app data folder: %w", err)
}

func openCommand(path string) *exec.Cmd {
	return exec.Command("explorer.exe", path)
}
