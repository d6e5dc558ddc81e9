package category

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"

	"github.com/jamesainslie/tidy/pkg/tidy/logging"
)

// Store loads and persists the category document at a fixed path.
type Store struct {
	path   string
	logger *logging.Logger
}

// NewStore creates a Store for the document at path.
func NewStore(path string, logger *logging.Logger) (*Store, error) {
	if path == "" {
		return nil, errors.New("category document path cannot be empty")
	}
	if logger == nil {
		logger = logging.Discard()
	}
	return &Store{path: path, logger: logger}, nil
}

// Path returns the document location.
func (s *Store) Path() string {
	return s.path
}

// Load reads the category document. When the document does not exist it
// writes the defaults and returns them. When it is unreadable or
// malformed the failure is logged and the defaults are returned without
// touching the persisted file. The returned map always contains Others.
func (s *Store) Load() Map {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			if saveErr := s.Save(Defaults()); saveErr != nil {
				s.logger.Error("could not create default category document", "path", s.path, "error", saveErr)
			} else {
				s.logger.Info("created default category document", "path", s.path)
			}
			return Defaults()
		}
		s.logger.Error("failed to read category document, falling back to defaults", "path", s.path, "error", err)
		return Defaults()
	}

	var m Map
	if err := json.Unmarshal(data, &m); err != nil {
		s.logger.Error("failed to parse category document, falling back to defaults", "path", s.path, "error", err)
		return Defaults()
	}
	if m == nil {
		m = Map{}
	}
	if _, ok := m[OthersName]; !ok {
		m[OthersName] = []string{}
	}
	return m
}

// Save persists the map with extensions serialized as sorted lists.
// The write is atomic: a temp file is renamed over the document.
func (s *Store) Save(m Map) error {
	ordered := m.Clone()
	for cat := range ordered {
		sort.Strings(ordered[cat])
	}

	data, err := json.MarshalIndent(ordered, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}
	data = append(data, '\n')

	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create category directory: %w", err)
	}

	tmpPath := s.path + ".tmp"
	if err := os.WriteFile(tmpPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}
	return nil
}

// Import reads a category document from path. With merge set, its
// content is merged into the current map; otherwise it replaces the map
// entirely (Others is reinserted if absent). The result is persisted.
func (s *Store) Import(path string, merge bool) (Map, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read import file: %w", err)
	}

	var incoming Map
	if err := json.Unmarshal(data, &incoming); err != nil {
		return nil, fmt.Errorf("failed to parse import file: %w", err)
	}

	var result Map
	if merge {
		result = s.Load()
		result.Merge(incoming)
	} else {
		result = incoming
		if result == nil {
			result = Map{}
		}
	}
	if _, ok := result[OthersName]; !ok {
		result[OthersName] = []string{}
	}

	if err := s.Save(result); err != nil {
		return nil, err
	}
	return result, nil
}

// Export writes the current map to the given path as a JSON document.
func (s *Store) Export(path string) error {
	m := s.Load()
	ordered := m.Clone()
	for cat := range ordered {
		sort.Strings(ordered[cat])
	}

	data, err := json.MarshalIndent(ordered, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal categories: %w", err)
	}
	data = append(data, '\n')

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}
