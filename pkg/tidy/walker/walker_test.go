package walker

import (
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// makeTree creates a small fixture:
//
//	root/a.txt
//	root/b.jpg
//	root/sub/c.txt
//	root/sub/deep/d.png
//	root/Organized/moved.txt
func makeTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := []string{
		"a.txt",
		"b.jpg",
		filepath.Join("sub", "c.txt"),
		filepath.Join("sub", "deep", "d.png"),
		filepath.Join("Organized", "moved.txt"),
	}
	for _, f := range files {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}
	return root
}

func names(t *testing.T, root string, files []string) []string {
	t.Helper()
	var out []string
	for _, f := range files {
		rel, err := filepath.Rel(root, f)
		require.NoError(t, err)
		out = append(out, filepath.ToSlash(rel))
	}
	sort.Strings(out)
	return out
}

func TestListTopLevel(t *testing.T) {
	root := makeTree(t)

	files, err := List(root, false, "", nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"a.txt", "b.jpg"}, names(t, root, files))
}

func TestListRecursive(t *testing.T) {
	root := makeTree(t)

	files, err := List(root, true, "", nil)
	require.NoError(t, err)

	want := []string{
		"Organized/moved.txt",
		"a.txt",
		"b.jpg",
		"sub/c.txt",
		"sub/deep/d.png",
	}
	assert.Equal(t, want, names(t, root, files))
}

func TestListExcludesDestinationSubtree(t *testing.T) {
	root := makeTree(t)
	exclude := filepath.Join(root, "Organized")

	files, err := List(root, true, exclude, nil)
	require.NoError(t, err)

	got := names(t, root, files)
	assert.NotContains(t, got, "Organized/moved.txt")
	assert.Contains(t, got, "sub/deep/d.png")
}

func TestListExcludesNestedDestination(t *testing.T) {
	root := makeTree(t)
	exclude := filepath.Join(root, "sub", "deep")

	files, err := List(root, true, exclude, nil)
	require.NoError(t, err)

	got := names(t, root, files)
	assert.NotContains(t, got, "sub/deep/d.png")
	assert.Contains(t, got, "sub/c.txt")
}

func TestListSkipsNonRegularFiles(t *testing.T) {
	root := makeTree(t)
	require.NoError(t, os.Symlink(filepath.Join(root, "a.txt"), filepath.Join(root, "link.txt")))

	files, err := List(root, false, "", nil)
	require.NoError(t, err)

	assert.NotContains(t, names(t, root, files), "link.txt")
}

func TestListSortedOutput(t *testing.T) {
	root := makeTree(t)

	files, err := List(root, true, "", nil)
	require.NoError(t, err)

	assert.True(t, sort.StringsAreSorted(files), "List output must be sorted: %v", files)
}

func TestListMissingSource(t *testing.T) {
	_, err := List(filepath.Join(t.TempDir(), "absent"), false, "", nil)
	assert.Error(t, err)
}

func TestCountExtensions(t *testing.T) {
	root := t.TempDir()
	for _, f := range []string{"a.txt", "b.TXT", "c.jpg", "README", filepath.Join("sub", "d.txt")} {
		path := filepath.Join(root, f)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	}

	counts, err := CountExtensions(root, true, nil)
	require.NoError(t, err)

	assert.Equal(t, map[string]int{".txt": 3, ".jpg": 1}, counts)

	// Top-level only counts the immediate children.
	counts, err = CountExtensions(root, false, nil)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{".txt": 2, ".jpg": 1}, counts)
}
