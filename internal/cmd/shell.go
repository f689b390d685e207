package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/dendrascience/zipshell/archive"
	"github.com/dendrascience/zipshell/config"
	"github.com/dendrascience/zipshell/internal/logging"
	"github.com/dendrascience/zipshell/shell"
	"github.com/dendrascience/zipshell/vfs"
	"github.com/google/uuid"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
)

// NewShellCmd creates and returns the shell subcommand for the zipshell CLI.
// It runs an interactive session over a zip archive.
func NewShellCmd() *cobra.Command {
	var (
		configPath    string
		username      string
		filesystem    string
		logFile       string
		startupScript string
	)

	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Start an interactive shell over a zip archive",
		Long: `Start an interactive shell over the directory tree of a zip archive.

Supported commands: ls, cd <dir>, mkdir <dir>, wc <file>, tac <file>, exit.
Directories made with mkdir live only in memory; the archive is never written.
Every non-empty command is recorded in the JSON journal given by --logfile,
which is rewritten after each command.

Settings can also come from a YAML or JSON file given by --config; flags take
precedence over the file.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadShellConfig(cmd, configPath)
			if err != nil {
				return err
			}
			return runShell(cmd.Context(), cfg, cmd.InOrStdin(), cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "Path to a YAML or JSON config file")
	cmd.Flags().StringVarP(&username, "username", "u", "", "Username for the shell prompt (required)")
	cmd.Flags().StringVarP(&filesystem, "filesystem", "f", "", "Path to the virtual filesystem (zip) (required)")
	cmd.Flags().StringVarP(&logFile, "logfile", "l", "", "Path to the JSON command log (required)")
	cmd.Flags().StringVarP(&startupScript, "startup-script", "s", "", "Path to a script replayed before interactive input")

	return cmd
}

// loadShellConfig layers defaults, the optional config file and any flags the
// user set, in that order.
func loadShellConfig(cmd *cobra.Command, configPath string) (*config.Config, error) {
	cfg := config.NewDefaultConfig()
	if configPath != "" {
		var err error
		cfg, err = config.NewConfigFromFile(configPath)
		if err != nil {
			return nil, fmt.Errorf("load config: %w", err)
		}
	}
	cfg.Merge(overrideFromFlags(cmd))
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func overrideFromFlags(cmd *cobra.Command) *config.ConfigOverride {
	flags := cmd.Flags()
	var o config.ConfigOverride

	stringFlag := func(name string) *string {
		if !flags.Changed(name) {
			return nil
		}
		v, _ := flags.GetString(name)
		return &v
	}
	o.Username = stringFlag("username")
	o.Filesystem = stringFlag("filesystem")
	o.LogFile = stringFlag("logfile")
	o.StartupScript = stringFlag("startup-script")

	if flags.Changed("verbose") {
		v, _ := flags.GetInt("verbose")
		o.Verbose = &v
	}
	return &o
}

func runShell(ctx context.Context, cfg *config.Config, in io.Reader, out, errOut io.Writer) error {
	logging.InitializeLogger(cfg.LogLevel(), errOut)
	logger := logging.GetLogger("shell").With().Str("session", uuid.NewString()).Logger()

	tree, z, err := loadArchive(cfg.Filesystem)
	if err != nil {
		return err
	}
	for _, p := range tree.Problems() {
		logger.Warn().Str("entry", p.Path).Msg(p.Reason)
	}
	logger.Info().Str("archive", cfg.Filesystem).Str("user", cfg.Username).Msg("Filesystem loaded")

	nav := vfs.NewNavigator(tree, z)
	journal := shell.NewFileJournal(cfg.LogFile)
	interp := shell.NewInterpreter(nav, journal, cfg.Username)
	logger.Debug().Strs("commands", interp.Commands()).Str("journal", journal.Path()).Msg("Interpreter ready")
	session := shell.NewSession(interp, in, out,
		shell.WithColor(isTerminal(out)),
		shell.WithLogger(logger),
	)

	if cfg.StartupScript != "" {
		exited, err := session.RunScript(ctx, cfg.StartupScript)
		if err != nil {
			return fmt.Errorf("run startup script: %w", err)
		}
		if exited {
			return nil
		}
	}

	err = session.Run(ctx)
	if errors.Is(err, context.Canceled) {
		logger.Info().Msg("Session interrupted")
		return nil
	}
	logger.Info().Int("commands", len(journal.Records())).Msg("Session ended")
	return err
}

// loadArchive opens the archive at path and builds its tree.
func loadArchive(path string) (*vfs.Tree, *archive.Zip, error) {
	z, err := archive.Open(path)
	if err != nil {
		return nil, nil, fmt.Errorf("open archive %s: %w", path, err)
	}
	entries, err := z.Entries()
	if err != nil {
		return nil, nil, fmt.Errorf("read archive %s: %w", path, err)
	}
	return vfs.Build(entries), z, nil
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
