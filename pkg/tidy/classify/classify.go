// Package classify computes destination sub-paths for files according to
// the selected organizing mode. Each mode is a Classifier implementation;
// ForMode maps the closed set of modes to their classifiers so an
// unhandled mode is a compile-time gap, not a runtime lookup miss.
package classify

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/jamesainslie/tidy/pkg/tidy/category"
	"github.com/jamesainslie/tidy/pkg/tidy/types"
)

// ErrSkip signals that the file should be left in place without being
// counted as a failure. The type classifier returns it for unknown
// extensions when skip-unknown is enabled.
var ErrSkip = errors.New("file skipped by classifier")

// Size category folder names. The boundaries are strict less-than:
// exactly 1 MiB is medium, exactly 100 MiB is large.
const (
	SizeSmall  = "Small (Under 1MB)"
	SizeMedium = "Medium (1-100MB)"
	SizeLarge  = "Large (Over 100MB)"
)

// FallbackLetter is the first-letter category for stems that do not
// start with a letter (digits, symbols, empty stems).
const FallbackLetter = "#"

// Classifier computes the destination path for one file under destRoot.
// Implementations return ErrSkip to leave the file in place, or another
// error when required metadata cannot be read.
type Classifier interface {
	Destination(path, destRoot string) (string, error)
}

// ForMode returns the Classifier for the given mode. The index and
// skipUnknown flag are only consulted by the type mode.
func ForMode(mode types.Mode, idx category.Index, skipUnknown bool) (Classifier, error) {
	switch mode {
	case types.ModeType:
		return &typeClassifier{index: idx, skipUnknown: skipUnknown}, nil
	case types.ModeName:
		return nameClassifier{}, nil
	case types.ModeDate:
		return dateClassifier{}, nil
	case types.ModeDay:
		return dayClassifier{}, nil
	case types.ModeSize:
		return sizeClassifier{}, nil
	case types.ModeFirstLetter:
		return firstLetterClassifier{}, nil
	default:
		return nil, fmt.Errorf("%w: %d", types.ErrInvalidMode, mode)
	}
}

// stem returns the file name without its extension.
func stem(path string) string {
	base := filepath.Base(path)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// typeClassifier groups files by extension category.
type typeClassifier struct {
	index       category.Index
	skipUnknown bool
}

func (c *typeClassifier) Destination(path, destRoot string) (string, error) {
	ext := strings.ToLower(filepath.Ext(path))
	cat, ok := c.index.Lookup(ext)
	if !ok {
		if c.skipUnknown {
			return "", fmt.Errorf("%w: uncategorized extension %q", ErrSkip, ext)
		}
		cat = category.OthersName
	}
	return filepath.Join(destRoot, cat, filepath.Base(path)), nil
}

// nameClassifier places each file in a folder named after its stem.
type nameClassifier struct{}

func (nameClassifier) Destination(path, destRoot string) (string, error) {
	return filepath.Join(destRoot, stem(path), filepath.Base(path)), nil
}

// dateClassifier groups files into Year/MM-MonthName by modification time.
type dateClassifier struct{}

func (dateClassifier) Destination(path, destRoot string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading file metadata: %w", err)
	}
	t := info.ModTime()
	folder := fmt.Sprintf("%02d-%s", int(t.Month()), t.Month().String())
	return filepath.Join(destRoot, fmt.Sprintf("%d", t.Year()), folder, filepath.Base(path)), nil
}

// dayClassifier groups files into Year/MM/DD by modification time.
type dayClassifier struct{}

func (dayClassifier) Destination(path, destRoot string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading file metadata: %w", err)
	}
	t := info.ModTime()
	return filepath.Join(destRoot,
		fmt.Sprintf("%d", t.Year()),
		fmt.Sprintf("%02d", int(t.Month())),
		fmt.Sprintf("%02d", t.Day()),
		filepath.Base(path)), nil
}

// sizeClassifier groups files into small/medium/large buckets.
type sizeClassifier struct{}

func (sizeClassifier) Destination(path, destRoot string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("reading file metadata: %w", err)
	}
	return filepath.Join(destRoot, SizeCategory(info.Size()), filepath.Base(path)), nil
}

// SizeCategory maps a byte count to its size bucket.
func SizeCategory(size int64) string {
	switch {
	case size < types.MiB:
		return SizeSmall
	case size < 100*types.MiB:
		return SizeMedium
	default:
		return SizeLarge
	}
}

// firstLetterClassifier groups files by the first letter of their stem.
type firstLetterClassifier struct{}

func (firstLetterClassifier) Destination(path, destRoot string) (string, error) {
	return filepath.Join(destRoot, FirstLetterCategory(stem(path)), filepath.Base(path)), nil
}

// FirstLetterCategory returns the upper-cased first rune of the stem
// when it is a letter, otherwise FallbackLetter.
func FirstLetterCategory(fileStem string) string {
	for _, r := range fileStem {
		if unicode.IsLetter(r) {
			return string(unicode.ToUpper(r))
		}
		break
	}
	return FallbackLetter
}
