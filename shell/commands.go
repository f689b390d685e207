package shell

import (
	"errors"
	"fmt"
	"strings"

	"github.com/dendrascience/zipshell/vfs"
)

// command runs one builtin. Arguments beyond the ones a command uses are
// ignored.
type command func(nav *vfs.Navigator, args []string) Result

const (
	msgNoDirName   = "No directory name provided."
	msgNoFileName  = "No file name provided."
	msgNoCurrent   = "Cannot find the current directory."
	msgDirCreated  = "Directory '%s' created."
	msgDirExists   = "Directory '%s' already exists."
	msgDirInvalid  = "Invalid directory name '%s'."
	msgDirNotFound = "Directory '%s' not found."
	msgFileMissing = "Error: File '%s' not found."
)

func builtinCommands() map[string]command {
	return map[string]command{
		"mkdir": mkdirCommand,
		"ls":    lsCommand,
		"cd":    cdCommand,
		"exit":  exitCommand,
		"wc":    wcCommand,
		"tac":   tacCommand,
	}
}

func text(format string, a ...any) Result {
	return Result{Output: fmt.Sprintf(format, a...)}
}

func mkdirCommand(nav *vfs.Navigator, args []string) Result {
	if len(args) == 0 {
		return text(msgNoDirName)
	}
	name := args[0]
	outcome, err := nav.Mkdir(name)
	switch {
	case errors.Is(err, vfs.ErrInvalidName):
		return text(msgDirInvalid, name)
	case err != nil:
		return text(msgNoCurrent)
	case outcome == vfs.AlreadyExists:
		return text(msgDirExists, name)
	default:
		return text(msgDirCreated, name)
	}
}

func lsCommand(nav *vfs.Navigator, _ []string) Result {
	names, err := nav.List()
	if err != nil {
		return text(msgNoCurrent)
	}
	return Result{Output: strings.Join(names, "\n")}
}

func cdCommand(nav *vfs.Navigator, args []string) Result {
	if len(args) == 0 {
		return text(msgNoDirName)
	}
	if err := nav.Cd(args[0]); err != nil {
		return text(msgDirNotFound, args[0])
	}
	return Result{}
}

func exitCommand(*vfs.Navigator, []string) Result {
	return Result{Exit: true}
}

func wcCommand(nav *vfs.Navigator, args []string) Result {
	if len(args) == 0 {
		return text(msgNoFileName)
	}
	counts, err := nav.WordCount(args[0])
	if err != nil {
		return text(msgFileMissing, args[0])
	}
	return Result{Output: counts.String()}
}

func tacCommand(nav *vfs.Navigator, args []string) Result {
	if len(args) == 0 {
		return text(msgNoFileName)
	}
	reversed, err := nav.Tac(args[0])
	if err != nil {
		return text(msgFileMissing, args[0])
	}
	return Result{Output: reversed}
}
