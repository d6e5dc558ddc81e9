// Package category manages the extension-to-category mapping used by the
// type organizing mode. The mapping is persisted as a JSON document and
// flattened into an extension index at the start of each run.
package category

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Map associates category names with their extension lists. Extensions
// carry a leading dot and preserve their on-disk case; comparisons are
// case-insensitive.
type Map map[string][]string

// Mutation errors.
var (
	ErrCategoryExists    = errors.New("category already exists")
	ErrCategoryNotFound  = errors.New("category not found")
	ErrExtensionExists   = errors.New("extension already in category")
	ErrExtensionNotFound = errors.New("extension not in category")
	ErrProtectedCategory = errors.New("category cannot be removed or renamed")
)

// NormalizeExt lower-cases an extension and ensures a leading dot.
// An empty or dot-only input normalizes to the empty string.
func NormalizeExt(ext string) string {
	ext = strings.ToLower(strings.TrimSpace(ext))
	if ext == "" || ext == "." {
		return ""
	}
	if !strings.HasPrefix(ext, ".") {
		ext = "." + ext
	}
	return ext
}

// Clone returns a deep copy of the map.
func (m Map) Clone() Map {
	out := make(Map, len(m))
	for cat, exts := range m {
		out[cat] = append([]string(nil), exts...)
	}
	return out
}

// Names returns the category names in sorted order.
func (m Map) Names() []string {
	names := make([]string, 0, len(m))
	for cat := range m {
		names = append(names, cat)
	}
	sort.Strings(names)
	return names
}

// Contains reports whether the category holds the extension,
// compared case-insensitively.
func (m Map) Contains(category, ext string) bool {
	ext = NormalizeExt(ext)
	for _, e := range m[category] {
		if strings.ToLower(e) == ext {
			return true
		}
	}
	return false
}

// FindExtension returns the first category (in sorted name order)
// holding the extension, or "" when none does.
func (m Map) FindExtension(ext string) string {
	ext = NormalizeExt(ext)
	for _, cat := range m.Names() {
		if m.Contains(cat, ext) {
			return cat
		}
	}
	return ""
}

// AddCategory adds an empty category with the given name.
func (m Map) AddCategory(name string) error {
	name = strings.TrimSpace(name)
	if name == "" {
		return fmt.Errorf("%w: empty name", ErrCategoryNotFound)
	}
	if _, ok := m[name]; ok {
		return fmt.Errorf("%w: %q", ErrCategoryExists, name)
	}
	m[name] = []string{}
	return nil
}

// RenameCategory moves a category's extensions under a new name.
// Others cannot be renamed; it must always exist.
func (m Map) RenameCategory(oldName, newName string) error {
	newName = strings.TrimSpace(newName)
	if oldName == OthersName {
		return fmt.Errorf("%w: %q", ErrProtectedCategory, oldName)
	}
	exts, ok := m[oldName]
	if !ok {
		return fmt.Errorf("%w: %q", ErrCategoryNotFound, oldName)
	}
	if newName == "" || newName == oldName {
		return fmt.Errorf("%w: %q", ErrCategoryExists, newName)
	}
	if _, ok := m[newName]; ok {
		return fmt.Errorf("%w: %q", ErrCategoryExists, newName)
	}
	m[newName] = exts
	delete(m, oldName)
	return nil
}

// RemoveCategory deletes a category and its extensions.
// Others cannot be removed.
func (m Map) RemoveCategory(name string) error {
	if name == OthersName {
		return fmt.Errorf("%w: %q", ErrProtectedCategory, name)
	}
	if _, ok := m[name]; !ok {
		return fmt.Errorf("%w: %q", ErrCategoryNotFound, name)
	}
	delete(m, name)
	return nil
}

// AddExtension adds a normalized extension to a category. When the
// extension belongs to another category it is moved there instead,
// keeping the one-category-per-extension invariant of the defaults.
func (m Map) AddExtension(category, ext string) error {
	if _, ok := m[category]; !ok {
		return fmt.Errorf("%w: %q", ErrCategoryNotFound, category)
	}
	ext = NormalizeExt(ext)
	if ext == "" {
		return fmt.Errorf("%w: empty extension", ErrExtensionNotFound)
	}
	if m.Contains(category, ext) {
		return fmt.Errorf("%w: %s in %q", ErrExtensionExists, ext, category)
	}
	if other := m.FindExtension(ext); other != "" {
		return m.MoveExtension(ext, other, category)
	}
	m[category] = append(m[category], ext)
	return nil
}

// RemoveExtension removes an extension from a category.
func (m Map) RemoveExtension(category, ext string) error {
	exts, ok := m[category]
	if !ok {
		return fmt.Errorf("%w: %q", ErrCategoryNotFound, category)
	}
	ext = NormalizeExt(ext)
	for i, e := range exts {
		if strings.ToLower(e) == ext {
			m[category] = append(exts[:i:i], exts[i+1:]...)
			return nil
		}
	}
	return fmt.Errorf("%w: %s in %q", ErrExtensionNotFound, ext, category)
}

// MoveExtension relocates an extension from one category to another.
func (m Map) MoveExtension(ext, from, to string) error {
	if _, ok := m[to]; !ok {
		return fmt.Errorf("%w: %q", ErrCategoryNotFound, to)
	}
	if err := m.RemoveExtension(from, ext); err != nil {
		return err
	}
	ext = NormalizeExt(ext)
	if !m.Contains(to, ext) {
		m[to] = append(m[to], ext)
	}
	return nil
}

// Merge copies categories and extensions from other into m. Extensions
// already present elsewhere keep their current category.
func (m Map) Merge(other Map) {
	for _, cat := range other.Names() {
		if _, ok := m[cat]; !ok {
			m[cat] = []string{}
		}
		for _, ext := range other[cat] {
			ext = NormalizeExt(ext)
			if ext == "" || m.FindExtension(ext) != "" {
				continue
			}
			m[cat] = append(m[cat], ext)
		}
	}
}
