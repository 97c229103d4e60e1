package collect

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/harrison/sourcelink/internal/models"
	"github.com/harrison/sourcelink/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingLogger struct {
	warnings []string
}

func (l *recordingLogger) LogWarn(message string) {
	l.warnings = append(l.warnings, message)
}

// writeFiles creates empty files below root and returns their paths.
func writeFiles(t *testing.T, root string, names ...string) []string {
	t.Helper()
	paths := make([]string, 0, len(names))
	for _, name := range names {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte("content"), 0644))
		paths = append(paths, path)
	}
	return paths
}

func names(files []*models.File) []string {
	out := make([]string, 0, len(files))
	for _, f := range files {
		out = append(out, f.Name())
	}
	return out
}

func TestFilterMatch(t *testing.T) {
	tests := []struct {
		name   string
		filter Filter
		path   string
		want   bool
	}{
		{name: "empty filter", filter: Filter{}, path: "/a/p1.txt", want: true},
		{name: "filter hit", filter: Filter{Filters: []string{"txt"}}, path: "/a/p1.txt", want: true},
		{name: "filter miss", filter: Filter{Filters: []string{"md"}}, path: "/a/p1.txt", want: false},
		{name: "any filter", filter: Filter{Filters: []string{"md", "p1"}}, path: "/a/p1.txt", want: true},
		{name: "exclude wins", filter: Filter{Filters: []string{"txt"}, Excludes: []string{"p1"}}, path: "/a/p1.txt", want: false},
		{name: "regex hit", filter: Filter{Regex: `p\d\.txt$`}, path: "/a/p1.txt", want: true},
		{name: "regex miss", filter: Filter{Regex: `^p`}, path: "/a/p1.txt", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cf, err := tt.filter.compile()
			require.NoError(t, err)
			assert.Equal(t, tt.want, cf.match(tt.path))
		})
	}

	_, err := Filter{Regex: "["}.compile()
	assert.Error(t, err)
}

func TestFromPaths(t *testing.T) {
	dir := t.TempDir()
	paths := writeFiles(t, dir, "p2.txt", "p1.txt", "p1.md")
	paths = append(paths, paths[0]) // duplicate

	files, err := FromPaths(registry.Default(), paths, Options{TypeID: "doc", Mode: models.ModeTraining})

	require.NoError(t, err)
	assert.Equal(t, []string{"p1.md", "p1.txt", "p2.txt"}, names(files))
	for _, f := range files {
		assert.Equal(t, models.ModeTraining, f.Mode)
		assert.Equal(t, "doc", f.TypeID)
	}
}

func TestFromPathsDefaultsMode(t *testing.T) {
	files, err := FromPaths(registry.Default(), []string{"/x/a.txt"}, Options{TypeID: "doc"})

	require.NoError(t, err)
	require.Len(t, files, 1)
	assert.Equal(t, models.ModeDefault, files[0].Mode)
}

func TestFromPathsUnsupportedExtension(t *testing.T) {
	_, err := FromPaths(registry.Default(), []string{"/x/a.tif"}, Options{TypeID: "doc"})

	assert.True(t, errors.Is(err, registry.ErrUnsupportedExtension))
}

func TestFromPathsExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	files, err := FromPaths(registry.Default(), []string{"~/notes.txt"}, Options{TypeID: "doc"})

	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "notes.txt"), files[0].Path)
}

func TestFromFolder(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "p2.txt", "p1.txt", "p1.md", "p2.md", "image.tif", "sub/p3.txt")

	t.Run("non recursive groups by suffix", func(t *testing.T) {
		files, err := FromFolder(registry.Default(), dir, Options{TypeID: "doc"})
		require.NoError(t, err)
		assert.Equal(t, []string{"p1.txt", "p2.txt", "p1.md", "p2.md"}, names(files))
	})

	t.Run("recursive", func(t *testing.T) {
		files, err := FromFolder(registry.Default(), dir, Options{TypeID: "doc", Recursive: true})
		require.NoError(t, err)
		assert.Contains(t, names(files), "p3.txt")
		assert.Len(t, files, 5)
	})

	t.Run("filters", func(t *testing.T) {
		files, err := FromFolder(registry.Default(), dir, Options{
			TypeID: "doc",
			Filter: Filter{Filters: []string{"md"}, Excludes: []string{"p2"}},
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"p1.md"}, names(files))
	})

	t.Run("no files", func(t *testing.T) {
		_, err := FromFolder(registry.Default(), dir, Options{TypeID: "annotation"})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrNoSourceFiles))
		var noFiles *NoSourceFilesError
		require.True(t, errors.As(err, &noFiles))
		assert.Equal(t, "annotation", noFiles.TypeID)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := FromFolder(registry.Default(), dir, Options{TypeID: "video"})
		assert.True(t, errors.Is(err, registry.ErrUnknownType))
	})
}

func TestFromFolderRecursiveIncludesHiddenDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "case1.tif", ".staging/case2.tif", "nested/.cache/case3.tif")

	files, err := FromFolder(registry.Default(), dir, Options{TypeID: "image", Recursive: true})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"case1.tif", "case2.tif", "case3.tif"}, names(files))

	files, err = FromFolder(registry.Default(), dir, Options{TypeID: "image"})
	require.NoError(t, err)
	assert.Equal(t, []string{"case1.tif"}, names(files))
}

func TestFromGlob(t *testing.T) {
	dir := t.TempDir()
	writeFiles(t, dir, "a/case1.tif", "a/b/case2.tif", "a/b/case2.xml", "c/case3.png")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "a", "folder.tif"), 0755))

	files, err := FromGlob(registry.Default(), filepath.Join(dir, "**", "*.tif"), Options{TypeID: "image"})

	require.NoError(t, err)
	// Sorted by full path, so a/b/case2.tif precedes a/case1.tif.
	assert.Equal(t, []string{"case2.tif", "case1.tif"}, names(files))
	require.Len(t, files, 2)
	assert.Equal(t, filepath.Join(dir, "a", "b", "case2.tif"), files[0].Path)
	assert.Equal(t, filepath.Join(dir, "a", "case1.tif"), files[1].Path)

	_, err = FromGlob(registry.Default(), filepath.Join(dir, "**", "*.svs"), Options{TypeID: "image"})
	assert.True(t, errors.Is(err, ErrNoSourceFiles))
}

func TestIsGlob(t *testing.T) {
	assert.True(t, IsGlob("data/*.tif"))
	assert.True(t, IsGlob("data/**/x.tif"))
	assert.True(t, IsGlob("case?.tif"))
	assert.False(t, IsGlob("data/case1.tif"))
}
