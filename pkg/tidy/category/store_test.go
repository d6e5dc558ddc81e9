package category

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := NewStore(filepath.Join(t.TempDir(), "categories.json"), nil)
	require.NoError(t, err)
	return s
}

func TestNewStoreRejectsEmptyPath(t *testing.T) {
	_, err := NewStore("", nil)
	assert.Error(t, err)
}

func TestLoadCreatesDefaults(t *testing.T) {
	s := newTestStore(t)

	m := s.Load()
	assert.Equal(t, Defaults(), m)

	// The document must now exist on disk.
	_, err := os.Stat(s.Path())
	require.NoError(t, err)

	var onDisk map[string][]string
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Contains(t, onDisk, "Images")
	assert.Contains(t, onDisk, OthersName)
}

func TestLoadCorruptDocumentFallsBack(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.WriteFile(s.Path(), []byte("{not json"), 0o644))

	m := s.Load()
	assert.Equal(t, Defaults(), m)

	// The corrupt file is left untouched for the user to inspect.
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	assert.Equal(t, "{not json", string(data))
}

func TestLoadInsertsMissingOthers(t *testing.T) {
	s := newTestStore(t)
	doc := `{"Docs": [".pdf"]}`
	require.NoError(t, os.WriteFile(s.Path(), []byte(doc), 0o644))

	m := s.Load()
	assert.Contains(t, m, OthersName)
	assert.Equal(t, []string{".pdf"}, m["Docs"])
}

func TestSaveRoundTrip(t *testing.T) {
	s := newTestStore(t)

	m := Map{
		"Docs":     {".txt", ".pdf"},
		OthersName: {},
	}
	require.NoError(t, s.Save(m))

	loaded := s.Load()
	assert.ElementsMatch(t, []string{".pdf", ".txt"}, loaded["Docs"])
}

func TestSaveSortsExtensions(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(Map{"Docs": {".txt", ".csv", ".pdf"}, OthersName: {}}))

	var onDisk map[string][]string
	data, err := os.ReadFile(s.Path())
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &onDisk))
	assert.Equal(t, []string{".csv", ".pdf", ".txt"}, onDisk["Docs"])
}

func TestImportReplace(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(Map{"Old": {".old"}, OthersName: {}}))

	importPath := filepath.Join(t.TempDir(), "incoming.json")
	require.NoError(t, os.WriteFile(importPath, []byte(`{"New": [".new"]}`), 0o644))

	m, err := s.Import(importPath, false)
	require.NoError(t, err)
	assert.NotContains(t, m, "Old")
	assert.Equal(t, []string{".new"}, m["New"])
	assert.Contains(t, m, OthersName)

	// Persisted too.
	assert.Equal(t, []string{".new"}, s.Load()["New"])
}

func TestImportMerge(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(Map{"Docs": {".pdf"}, OthersName: {}}))

	importPath := filepath.Join(t.TempDir(), "incoming.json")
	require.NoError(t, os.WriteFile(importPath, []byte(`{"Docs": [".txt"], "Ebooks": [".epub"]}`), 0o644))

	m, err := s.Import(importPath, true)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{".pdf", ".txt"}, m["Docs"])
	assert.Equal(t, []string{".epub"}, m["Ebooks"])
}

func TestImportInvalidDocument(t *testing.T) {
	s := newTestStore(t)
	importPath := filepath.Join(t.TempDir(), "bad.json")
	require.NoError(t, os.WriteFile(importPath, []byte("nope"), 0o644))

	_, err := s.Import(importPath, false)
	assert.Error(t, err)
}

func TestExport(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(Map{"Docs": {".pdf"}, OthersName: {}}))

	exportPath := filepath.Join(t.TempDir(), "out.json")
	require.NoError(t, s.Export(exportPath))

	var exported map[string][]string
	data, err := os.ReadFile(exportPath)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(data, &exported))
	assert.Equal(t, []string{".pdf"}, exported["Docs"])
}
