package cmd

import (
	"github.com/dendrascience/zipshell/internal/logging"
	"github.com/dendrascience/zipshell/version"
	"github.com/spf13/cobra"
)

// NewRootCmd creates and returns the root cobra command for the zipshell CLI.
// It sets up all subcommands, command groups, and the diagnostic logger.
func NewRootCmd() *cobra.Command {
	var verbose int

	rootCmd := &cobra.Command{
		Use:   "zipshell",
		Short: "zipshell - a minimal shell over a read-only zip archive",
		Long: `zipshell loads a zip archive into an in-memory directory tree and lets you
explore it with a handful of shell commands. Every command is recorded in a
JSON journal.

Use subcommands to perform different operations:
  - shell: Start an interactive session over an archive
  - mount: Mount an archive as a read-only FUSE filesystem
  - validate: Report entries the shell cannot represent or read
  - count: Count files and directories in an archive
  - seed: Generate a sample archive`,
		Version:      version.GetFullVersion(),
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.InitializeLogger(logging.LevelFromVerbosity(verbose), cmd.ErrOrStderr())
		},
	}

	rootCmd.PersistentFlags().IntVar(&verbose, "verbose", logging.DefaultVerbosity,
		"Log verbosity level between 1 (error) and 5 (trace)")

	groupShell := "shell"
	groupFilesystem := "filesystem"
	groupUtilities := "utilities"

	rootCmd.AddGroup(&cobra.Group{
		ID:    groupShell,
		Title: "Shell",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupFilesystem,
		Title: "Filesystem Operations",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    groupUtilities,
		Title: "Utility Commands",
	})

	shellCmd := NewShellCmd()
	mountCmd := NewMountCmd()
	validateCmd := NewValidateCmd()
	countCmd := NewCountCmd()
	seedCmd := NewSeedCmd()

	shellCmd.GroupID = groupShell
	mountCmd.GroupID = groupFilesystem
	validateCmd.GroupID = groupUtilities
	countCmd.GroupID = groupUtilities
	seedCmd.GroupID = groupUtilities

	rootCmd.AddCommand(shellCmd)
	rootCmd.AddCommand(mountCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(countCmd)
	rootCmd.AddCommand(seedCmd)

	return rootCmd
}
