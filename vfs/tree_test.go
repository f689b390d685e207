package vfs

import (
	"math/rand/v2"
	"testing"

	"github.com/dendrascience/zipshell/archive"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleEntries() []archive.Entry {
	return []archive.Entry{
		{Path: "docs/", IsDir: true},
		{Path: "docs/readme.txt"},
		{Path: "docs/guides/intro.txt"},
		{Path: "src/main.txt"},
		{Path: "src/", IsDir: true},
		{Path: "empty/", IsDir: true},
		{Path: "top.txt"},
		{Path: "docs/", IsDir: true},
	}
}

func TestBuild_Structure(t *testing.T) {
	tree := Build(sampleEntries())
	root := tree.Root()

	assert.Equal(t, []string{"docs", "src", "empty", "top.txt"}, root.Names())

	docs, ok := root.Child("docs")
	require.True(t, ok)
	assert.Equal(t, KindDirectory, docs.Kind())
	assert.Equal(t, []string{"readme.txt", "guides"}, docs.Names())

	guides, ok := docs.Child("guides")
	require.True(t, ok, "intermediate directory must be created without an explicit entry")
	assert.True(t, guides.IsDir())

	intro, ok := guides.Child("intro.txt")
	require.True(t, ok)
	assert.Equal(t, KindFile, intro.Kind())

	empty, ok := root.Child("empty")
	require.True(t, ok)
	assert.True(t, empty.IsDir())
	assert.Equal(t, 0, empty.Len())

	assert.Empty(t, tree.Problems())
}

func TestBuild_DirectoryEntryAfterFilesKeepsChildren(t *testing.T) {
	tree := Build([]archive.Entry{
		{Path: "a/b.txt"},
		{Path: "a/c.txt"},
		{Path: "a/", IsDir: true},
	})

	a, ok := tree.Root().Child("a")
	require.True(t, ok)
	assert.Equal(t, []string{"b.txt", "c.txt"}, a.Names())
}

func TestBuild_OrderIndependent(t *testing.T) {
	entries := sampleEntries()
	want := Build(entries)

	rng := rand.New(rand.NewPCG(1, 2))
	for i := 0; i < 20; i++ {
		shuffled := make([]archive.Entry, len(entries))
		copy(shuffled, entries)
		rng.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})
		got := Build(shuffled)
		assert.True(t, want.Root().Equal(got.Root()), "shuffle %d built a different tree", i)
	}
}

func TestBuild_Idempotent(t *testing.T) {
	entries := sampleEntries()
	once := Build(entries)
	twice := Build(append(entries, entries...))

	assert.True(t, once.Root().Equal(twice.Root()))
	assert.Equal(t, once.Root().Names(), twice.Root().Names())
}

func TestBuild_FileDirectoryConflict(t *testing.T) {
	tests := []struct {
		name    string
		entries []archive.Entry
	}{
		{
			name:    "file then nested file",
			entries: []archive.Entry{{Path: "a"}, {Path: "a/b.txt"}},
		},
		{
			name:    "nested file then file",
			entries: []archive.Entry{{Path: "a/b.txt"}, {Path: "a"}},
		},
		{
			name:    "file then directory",
			entries: []archive.Entry{{Path: "a"}, {Path: "a/", IsDir: true}, {Path: "a/b.txt"}},
		},
	}

	want := Build([]archive.Entry{{Path: "a/b.txt"}})
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree := Build(tt.entries)
			assert.True(t, want.Root().Equal(tree.Root()))
			require.Len(t, tree.Problems(), 1)
			assert.Contains(t, tree.Problems()[0].Reason, "keeping the directory")
		})
	}
}

func TestBuild_SkipsBadPaths(t *testing.T) {
	tree := Build([]archive.Entry{
		{Path: "/", IsDir: true},
		{Path: "../escape.txt"},
		{Path: "a/../../b.txt"},
		{Path: "./x//y.txt"},
		{Path: "/lead/trail/", IsDir: true},
	})

	root := tree.Root()
	assert.Equal(t, []string{"x", "lead"}, root.Names())

	x, _ := root.Child("x")
	_, ok := x.Child("y.txt")
	assert.True(t, ok, "empty and dot segments are dropped")

	problems := tree.Problems()
	require.Len(t, problems, 3)
	assert.Equal(t, "/", problems[0].Path)
	assert.Equal(t, ErrEmptyPath.Error(), problems[0].Reason)
	assert.Equal(t, ErrUnsafePath.Error(), problems[1].Reason)
	assert.Equal(t, ErrUnsafePath.Error(), problems[2].Reason)
}

func TestTree_Walk(t *testing.T) {
	tree := Build(sampleEntries())

	var paths []string
	err := tree.Walk(func(path string, n *Node) error {
		if n.IsDir() {
			path += "/"
		}
		paths = append(paths, path)
		return nil
	})
	require.NoError(t, err)

	assert.Equal(t, []string{
		"docs/",
		"docs/readme.txt",
		"docs/guides/",
		"docs/guides/intro.txt",
		"src/",
		"src/main.txt",
		"empty/",
		"top.txt",
	}, paths)
}

func TestTree_WalkStopsOnError(t *testing.T) {
	tree := Build(sampleEntries())

	visited := 0
	err := tree.Walk(func(path string, n *Node) error {
		visited++
		if path == "docs/readme.txt" {
			return ErrNotFound
		}
		return nil
	})
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Equal(t, 2, visited)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "directory", KindDirectory.String())
	assert.Equal(t, "file", KindFile.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}
