package organizer

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
)

// systemDirs returns the destinations that must never be organized into,
// per platform. A destination equal to or under any of these is rejected
// before any I/O happens.
func systemDirs() []string {
	switch runtime.GOOS {
	case "windows":
		dirs := []string{
			`C:\Windows`,
			`C:\Program Files`,
			`C:\Program Files (x86)`,
		}
		if home, err := os.UserHomeDir(); err == nil {
			dirs = append([]string{filepath.Join(home, "AppData")}, dirs...)
		}
		return dirs
	case "darwin":
		return []string{"/System", "/Library", "/usr"}
	default:
		return []string{"/usr", "/bin", "/sbin", "/etc"}
	}
}

// validatePaths checks source and destination before enumeration.
// It returns a human-readable error when the run must not start.
func validatePaths(source, dest string) error {
	sourceResolved := resolve(source)
	destResolved := resolve(dest)

	for _, sysDir := range systemDirs() {
		if _, err := os.Stat(sysDir); err != nil {
			continue
		}
		if isWithin(destResolved, resolve(sysDir)) {
			return fmt.Errorf("cannot organize into system directory: %s", sysDir)
		}
	}

	if sourceResolved == destResolved {
		return fmt.Errorf("source and destination cannot be the same")
	}

	info, err := os.Stat(sourceResolved)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("source directory does not exist: %s", source)
		}
		return fmt.Errorf("cannot access source directory: %v", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source is not a directory: %s", source)
	}

	return nil
}

// resolve returns the cleaned absolute path, following symlinks when the
// path exists. Failures fall back to the lexical absolute path.
func resolve(path string) string {
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		return resolved
	}
	return abs
}

// isWithin reports whether path equals dir or sits underneath it.
func isWithin(path, dir string) bool {
	rel, err := filepath.Rel(dir, path)
	if err != nil {
		return false
	}
	return rel == "." || (rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator)))
}
