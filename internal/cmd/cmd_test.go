package cmd

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/dendrascience/zipshell/archive"
	"github.com/stretchr/testify/require"
)

var testMembers = []archive.Member{
	{Name: "docs/", Dir: true},
	{Name: "docs/a.txt", Data: []byte("one\ntwo\nthree\n")},
	{Name: "notes.txt", Data: []byte("hello world\n")},
}

func writeTestArchive(t *testing.T, path string, members ...archive.Member) {
	t.Helper()
	if len(members) == 0 {
		members = testMembers
	}
	require.NoError(t, archive.WriteZip(path, members))
}

// executeCommand runs the root command with args and stdin, returning what was
// written to stdout and stderr.
func executeCommand(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()
	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}
