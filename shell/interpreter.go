package shell

import (
	"fmt"
	"sort"
	"strings"

	"github.com/dendrascience/zipshell/internal/logging"
	"github.com/dendrascience/zipshell/vfs"
)

// Result is what one command produced for display.
type Result struct {
	Output string // text to show; may be empty
	Exit   bool   // the session should end
}

// Interpreter executes command lines against a Navigator and journals them.
type Interpreter struct {
	nav      *vfs.Navigator
	sink     Sink
	user     string
	commands map[string]command
	logger   logging.Logger
}

// NewInterpreter returns an interpreter that records commands as user.
func NewInterpreter(nav *vfs.Navigator, sink Sink, user string) *Interpreter {
	return &Interpreter{
		nav:      nav,
		sink:     sink,
		user:     user,
		commands: builtinCommands(),
		logger:   logging.GetLogger("shell"),
	}
}

// User returns the name commands are recorded under.
func (in *Interpreter) User() string {
	return in.user
}

// Commands returns the names of the recognized commands in sorted order.
func (in *Interpreter) Commands() []string {
	names := make([]string, 0, len(in.commands))
	for name := range in.commands {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Execute runs one raw command line. Blank input does nothing and is not
// journaled. Any other input, including unknown commands, is journaled before
// Execute returns. A non-nil error means only that the journal write failed;
// the Result is still valid.
func (in *Interpreter) Execute(raw string) (Result, error) {
	fields := strings.Fields(raw)
	if len(fields) == 0 {
		return Result{}, nil
	}

	name, args := fields[0], fields[1:]
	var res Result
	if cmd, ok := in.commands[name]; ok {
		res = cmd(in.nav, args)
	} else {
		res = Result{Output: fmt.Sprintf("Unknown command: %s", name)}
	}

	in.logger.Debug().
		Str("command", name).
		Strs("args", args).
		Bool("exit", res.Exit).
		Msg("Executed command")

	if err := in.sink.Append(Record{User: in.user, Command: raw}); err != nil {
		return res, fmt.Errorf("journal %q: %w", raw, err)
	}
	return res, nil
}
