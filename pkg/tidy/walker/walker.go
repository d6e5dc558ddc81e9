// Package walker enumerates candidate files under a source root. It can
// exclude a subtree (typically the run's own destination) so a run never
// re-processes files it just wrote.
package walker

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/charlievieth/fastwalk"
	"github.com/jamesainslie/tidy/pkg/tidy/logging"
)

// List returns the regular files under source, sorted for deterministic
// processing order. With recursive set the whole tree is walked,
// otherwise only the top level. Entries equal to or nested under exclude
// are omitted. Entries that cannot be accessed are logged and skipped.
func List(source string, recursive bool, exclude string, logger *logging.Logger) ([]string, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	excludeResolved := resolvePath(exclude)

	if !recursive {
		return listTopLevel(source, excludeResolved, logger)
	}

	var (
		mu    sync.Mutex
		files []string
	)

	conf := fastwalk.Config{
		Follow: false, // Don't follow symlinks.
	}
	err := fastwalk.Walk(&conf, source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("could not access path", "path", path, "error", err)
			return nil
		}
		if excludeResolved != "" && isWithin(resolvePath(path), excludeResolved) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if !d.Type().IsRegular() {
			return nil
		}
		mu.Lock()
		files = append(files, path)
		mu.Unlock()
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(files)
	return files, nil
}

// listTopLevel enumerates only the immediate children of source.
func listTopLevel(source, excludeResolved string, logger *logging.Logger) ([]string, error) {
	entries, err := os.ReadDir(source)
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		path := filepath.Join(source, entry.Name())
		if excludeResolved != "" && isWithin(resolvePath(path), excludeResolved) {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			logger.Warn("could not access path", "path", path, "error", err)
			continue
		}
		if info.Mode().IsRegular() {
			files = append(files, path)
		}
	}

	sort.Strings(files)
	return files, nil
}

// CountExtensions walks a folder and tallies lowercase file extensions.
// Files without an extension are not counted. Used by category detection
// to suggest extensions for new categories.
func CountExtensions(root string, recursive bool, logger *logging.Logger) (map[string]int, error) {
	files, err := List(root, recursive, "", logger)
	if err != nil {
		return nil, err
	}

	counts := make(map[string]int)
	for _, f := range files {
		if ext := strings.ToLower(filepath.Ext(f)); ext != "" {
			counts[ext]++
		}
	}
	return counts, nil
}

// resolvePath returns the cleaned absolute path, following symlinks when
// possible. Resolution failures fall back to the lexical absolute path.
func resolvePath(path string) string {
	if path == "" {
		return ""
	}
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
