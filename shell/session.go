package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/dendrascience/zipshell/internal/logging"
	"github.com/taigrr/colorhash"
)

// PromptSuffix follows the username in the prompt.
const PromptSuffix = "@shell_emulator$ "

// Session is an interactive shell bound to an input and an output stream.
type Session struct {
	interp *Interpreter
	in     io.Reader
	out    io.Writer
	color  bool
	logger logging.Logger
}

// Option configures a Session.
type Option func(*Session)

// WithColor colours the username in the prompt. Each username always gets
// the same colour.
func WithColor(enabled bool) Option {
	return func(s *Session) {
		s.color = enabled
	}
}

// WithLogger replaces the session's diagnostic logger.
func WithLogger(logger logging.Logger) Option {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a session reading commands from in and writing results
// to out.
func NewSession(interp *Interpreter, in io.Reader, out io.Writer, opts ...Option) *Session {
	s := &Session{
		interp: interp,
		in:     in,
		out:    out,
		logger: logging.GetLogger("session"),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Prompt returns the prompt text shown before each command.
func (s *Session) Prompt() string {
	user := s.interp.User()
	if s.color {
		user = userStyle(user).Render(user)
	}
	return user + PromptSuffix
}

func userStyle(user string) lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(strconv.Itoa(userColor(user))))
}

// userColor picks one of the 216 cube colours of the 256-colour palette.
func userColor(user string) int {
	h := colorhash.HashString(user) % 216
	if h < 0 {
		h = -h
	}
	return 16 + h
}

// Run reads commands until exit, end of input, or ctx is done. End of input
// and exit are not errors.
//
// Reads happen on a separate goroutine. When exit or ctx ends the session that
// goroutine stays blocked in its pending read of in until the read returns, so
// a caller that keeps the process alive should close in afterwards.
func (s *Session) Run(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	scanErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(s.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		scanErr <- scanner.Err()
	}()

	for {
		fmt.Fprint(s.out, s.Prompt())
		select {
		case <-ctx.Done():
			fmt.Fprintln(s.out)
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				fmt.Fprintln(s.out)
				select {
				case err := <-scanErr:
					return err
				default:
					return ctx.Err()
				}
			}
			if s.execute(line) {
				return nil
			}
		}
	}
}

// RunScript replays the commands in the file at path, one per line, echoing
// each after the prompt. A missing file is skipped silently. exited reports
// that the script ran exit.
func (s *Session) RunScript(ctx context.Context, path string) (exited bool, err error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		s.logger.Debug().Str("script", path).Msg("Startup script not found, skipping")
		return false, nil
	}
	if err != nil {
		return false, err
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return false, err
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		fmt.Fprintf(s.out, "%s%s\n", s.Prompt(), line)
		if s.execute(line) {
			return true, nil
		}
	}
	return false, scanner.Err()
}

// execute runs one line and prints its output. It reports whether the session
// should end.
func (s *Session) execute(line string) bool {
	res, err := s.interp.Execute(line)
	if err != nil {
		s.logger.Error().Err(err).Msg("Failed to record command")
	}
	if res.Exit {
		return true
	}
	if res.Output != "" {
		fmt.Fprintln(s.out, res.Output)
	}
	return false
}
