package category

import (
	"fmt"
	"strings"

	"github.com/jamesainslie/tidy/pkg/tidy/logging"
)

// Index is the flattened extension-to-category lookup built from a Map
// at the start of each run. Keys are lowercase extensions with a
// leading dot.
type Index map[string]string

// Duplicate records an extension claimed by more than one category.
// The first category keeps the extension.
type Duplicate struct {
	Extension string
	First     string
	Second    string
}

// String returns a one-line description of the duplicate.
func (d Duplicate) String() string {
	return fmt.Sprintf("%s in both %q and %q", d.Extension, d.First, d.Second)
}

// BuildIndex flattens the map into an Index. Categories are visited in
// sorted name order so the result is deterministic. Empty extensions
// are ignored; the first category claiming an extension wins, and every
// later claim is returned as a Duplicate. When duplicates exist a
// single aggregated warning is logged.
func BuildIndex(m Map, logger *logging.Logger) (Index, []Duplicate) {
	if logger == nil {
		logger = logging.Discard()
	}

	idx := make(Index)
	var duplicates []Duplicate

	for _, cat := range m.Names() {
		for _, ext := range m[cat] {
			e := strings.ToLower(strings.TrimSpace(ext))
			if e == "" {
				continue
			}
			if first, ok := idx[e]; ok {
				duplicates = append(duplicates, Duplicate{Extension: e, First: first, Second: cat})
				continue
			}
			idx[e] = cat
		}
	}

	if len(duplicates) > 0 {
		lines := make([]string, len(duplicates))
		for i, d := range duplicates {
			lines[i] = d.String()
		}
		logger.Warn("duplicate extensions detected, using first occurrence",
			"count", len(duplicates), "duplicates", strings.Join(lines, "; "))
	}

	return idx, duplicates
}

// Lookup returns the category for a file extension, compared
// case-insensitively. The second return is false when the extension is
// not categorized.
func (idx Index) Lookup(ext string) (string, bool) {
	cat, ok := idx[strings.ToLower(ext)]
	return cat, ok
}
