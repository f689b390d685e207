package cmd

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/dendrascience/zipshell/archive"
	"github.com/dendrascience/zipshell/vfs"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSeedMembersDeterministic(t *testing.T) {
	first := seedMembers(10, 42)
	second := seedMembers(10, 42)
	assert.Equal(t, first, second)

	other := seedMembers(10, 43)
	assert.NotEqual(t, first, other)
}

func TestSeedMembersContents(t *testing.T) {
	members := seedMembers(30, 7)
	require.Len(t, members, 32)
	assert.Equal(t, "README.txt", members[0].Name)
	assert.True(t, members[1].Dir)

	for _, m := range members[2:] {
		assert.True(t, strings.HasPrefix(m.Name, "logs/"), m.Name)
		assert.True(t, strings.HasSuffix(m.Name, ".txt"), m.Name)
		for _, line := range strings.Split(strings.TrimSuffix(string(m.Data), "\n"), "\n") {
			_, err := uuid.Parse(line)
			assert.NoError(t, err, "line %q of %s", line, m.Name)
		}
	}
}

func TestSeedCommand(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sample.zip")

	stdout, _, err := executeCommand(t, "", "seed", "-o", out, "-c", "12", "--seed", "3")
	require.NoError(t, err)
	assert.Contains(t, stdout, "with 12 log files")

	z, err := archive.Open(out)
	require.NoError(t, err)
	entries, err := z.Entries()
	require.NoError(t, err)

	tree := vfs.Build(entries)
	assert.Empty(t, tree.Problems())

	var files int
	require.NoError(t, tree.Walk(func(_ string, n *vfs.Node) error {
		if !n.IsDir() {
			files++
		}
		return nil
	}))
	assert.Equal(t, 13, files)

	_, _, err = executeCommand(t, "", "validate", out)
	require.NoError(t, err)
}

func TestSeedRejectsBadCount(t *testing.T) {
	out := filepath.Join(t.TempDir(), "sample.zip")
	_, _, err := executeCommand(t, "", "seed", "-o", out, "-c", "0")
	require.ErrorIs(t, err, ErrInvalidFileCount)
}

func TestSeedRequiresOutput(t *testing.T) {
	_, _, err := executeCommand(t, "", "seed")
	require.Error(t, err)
}
