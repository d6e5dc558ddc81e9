// Package conflict decides what happens when a computed destination path
// already has content on disk, according to the configured policy.
package conflict

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/jamesainslie/tidy/pkg/tidy/logging"
	"github.com/jamesainslie/tidy/pkg/tidy/types"
)

// Resolve maps a destination path to the path that should actually be
// written. The second return is true when the file should be skipped.
//
// A destination that does not exist is returned unchanged. Otherwise the
// policy applies: skip returns (``, true); overwrite removes the existing
// entry best-effort and returns the same path; rename probes
// "name (1).ext", "name (2).ext", ... until an unused path is found.
// An unrecognized policy is a configuration error.
func Resolve(destination string, policy types.ConflictPolicy, logger *logging.Logger) (string, bool, error) {
	if logger == nil {
		logger = logging.Discard()
	}

	if _, err := os.Lstat(destination); os.IsNotExist(err) {
		return destination, false, nil
	}

	switch policy {
	case types.ConflictSkip:
		logger.Debug("skipping existing destination", "path", destination)
		return "", true, nil

	case types.ConflictOverwrite:
		// Removal failures are logged, not fatal. The transfer is still
		// attempted and its outcome depends on filesystem state.
		if err := os.RemoveAll(destination); err != nil {
			logger.Warn("could not remove existing destination for overwrite",
				"path", destination, "error", err)
		} else {
			logger.Debug("removed existing destination", "path", destination)
		}
		return destination, false, nil

	case types.ConflictRename:
		unique := UniquePath(destination)
		logger.Debug("renamed to avoid conflict", "from", destination, "to", unique)
		return unique, false, nil

	default:
		return "", false, fmt.Errorf("%w: %d", types.ErrInvalidConflictPolicy, policy)
	}
}

// UniquePath returns path itself when unused, otherwise the first of
// "stem (1).ext", "stem (2).ext", ... that does not exist.
func UniquePath(path string) string {
	if _, err := os.Lstat(path); os.IsNotExist(err) {
		return path
	}

	dir := filepath.Dir(path)
	ext := filepath.Ext(path)
	stem := strings.TrimSuffix(filepath.Base(path), ext)

	for i := 1; ; i++ {
		candidate := filepath.Join(dir, fmt.Sprintf("%s (%d)%s", stem, i, ext))
		if _, err := os.Lstat(candidate); os.IsNotExist(err) {
			return candidate
		}
	}
}
