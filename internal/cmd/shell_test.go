package cmd

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/dendrascience/zipshell/config"
	"github.com/dendrascience/zipshell/shell"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readJournal(t *testing.T, path string) []shell.Record {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var records []shell.Record
	require.NoError(t, json.Unmarshal(data, &records))
	return records
}

func TestShellSession(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "fs.zip")
	journalPath := filepath.Join(dir, "journal.json")
	writeTestArchive(t, archivePath)

	stdout, _, err := executeCommand(t, "ls\ncd docs\ntac a.txt\nwc a.txt\nexit\nls\n",
		"shell", "-u", "alice", "-f", archivePath, "-l", journalPath)
	require.NoError(t, err)

	assert.Contains(t, stdout, "alice@shell_emulator$ ")
	assert.Contains(t, stdout, "docs/\nnotes.txt\n")
	assert.Contains(t, stdout, "three\ntwo\none\n")
	assert.Contains(t, stdout, "3 lines, 3 words, 14 characters\n")

	records := readJournal(t, journalPath)
	require.Len(t, records, 5)
	assert.Equal(t, shell.Record{User: "alice", Command: "ls"}, records[0])
	assert.Equal(t, shell.Record{User: "alice", Command: "exit"}, records[4])
}

func TestShellEndOfInput(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "fs.zip")
	journalPath := filepath.Join(dir, "journal.json")
	writeTestArchive(t, archivePath)

	_, _, err := executeCommand(t, "mkdir tmp\n\ncd tmp\n",
		"shell", "-u", "bob", "-f", archivePath, "-l", journalPath)
	require.NoError(t, err)

	records := readJournal(t, journalPath)
	require.Len(t, records, 2)
	assert.Equal(t, "cd tmp", records[1].Command)
}

func TestShellStartupScript(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "fs.zip")
	journalPath := filepath.Join(dir, "journal.json")
	scriptPath := filepath.Join(dir, "start.sh")
	writeTestArchive(t, archivePath)
	require.NoError(t, os.WriteFile(scriptPath, []byte("cd docs\n  ls  \n\nexit\n"), 0o644))

	stdout, _, err := executeCommand(t, "ls\n",
		"shell", "-u", "carol", "-f", archivePath, "-l", journalPath, "-s", scriptPath)
	require.NoError(t, err)

	assert.Contains(t, stdout, "carol@shell_emulator$ cd docs\n")
	assert.Contains(t, stdout, "a.txt\n")
	records := readJournal(t, journalPath)
	require.Len(t, records, 3)
	assert.Equal(t, "ls", records[1].Command)
}

func TestShellMissingStartupScript(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "fs.zip")
	journalPath := filepath.Join(dir, "journal.json")
	writeTestArchive(t, archivePath)

	_, _, err := executeCommand(t, "exit\n",
		"shell", "-u", "dave", "-f", archivePath, "-l", journalPath,
		"-s", filepath.Join(dir, "missing.sh"))
	require.NoError(t, err)
	assert.Len(t, readJournal(t, journalPath), 1)
}

func TestShellMissingSettings(t *testing.T) {
	_, _, err := executeCommand(t, "", "shell")
	require.Error(t, err)
	assert.ErrorIs(t, err, config.ErrMissingUsername)
	assert.ErrorIs(t, err, config.ErrMissingFilesystem)
	assert.ErrorIs(t, err, config.ErrMissingLogFile)
}

func TestShellBadArchive(t *testing.T) {
	dir := t.TempDir()
	notZip := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(notZip, []byte("not a zip"), 0o644))

	_, _, err := executeCommand(t, "",
		"shell", "-u", "erin", "-f", notZip, "-l", filepath.Join(dir, "j.json"))
	require.Error(t, err)

	_, err = os.Stat(filepath.Join(dir, "j.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestShellConfigFile(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "fs.zip")
	journalPath := filepath.Join(dir, "journal.json")
	configPath := filepath.Join(dir, "zipshell.yaml")
	writeTestArchive(t, archivePath)

	contents := "username: frank\nfilesystem: " + archivePath + "\nlogfile: " + journalPath + "\n"
	require.NoError(t, os.WriteFile(configPath, []byte(contents), 0o644))

	t.Run("file only", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "exit\n", "shell", "--config", configPath)
		require.NoError(t, err)
		assert.Contains(t, stdout, "frank@shell_emulator$ ")
	})

	t.Run("flag overrides file", func(t *testing.T) {
		stdout, _, err := executeCommand(t, "exit\n", "shell", "--config", configPath, "-u", "grace")
		require.NoError(t, err)
		assert.Contains(t, stdout, "grace@shell_emulator$ ")
		assert.Equal(t, "grace", readJournal(t, journalPath)[0].User)
	})
}

func TestLoadShellConfigVerbose(t *testing.T) {
	cmd := NewRootCmd()
	shellCmd, _, err := cmd.Find([]string{"shell"})
	require.NoError(t, err)
	require.NoError(t, shellCmd.ParseFlags([]string{"-u", "x", "-f", "a.zip", "-l", "j.json", "--verbose", "5"}))

	cfg, err := loadShellConfig(shellCmd, "")
	require.NoError(t, err)
	assert.Equal(t, 5, cfg.Verbose)
	assert.Equal(t, "x", cfg.Username)
}

func TestShellConfigFileErrors(t *testing.T) {
	dir := t.TempDir()
	configPath := filepath.Join(dir, "zipshell.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("username = 'x'\n"), 0o644))

	_, _, err := executeCommand(t, "", "shell", "--config", configPath)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load config")

	_, _, err = executeCommand(t, "", "shell", "--config", filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, os.ErrNotExist)
}
