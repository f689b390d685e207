package cmd

import (
	"errors"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/dendrascience/zipshell/vfs"
	"github.com/spf13/cobra"
)

// ErrValidationFailed is returned when an archive has at least one problem.
var ErrValidationFailed = errors.New("archive validation failed")

// NewValidateCmd creates and returns the validate subcommand for the zipshell CLI.
// It reports archive entries the shell cannot represent or read.
func NewValidateCmd() *cobra.Command {
	var list bool

	cmd := &cobra.Command{
		Use:   "validate ARCHIVE",
		Short: "Check a zip archive for entries the shell cannot use",
		Long: `Check a zip archive for entries the shell cannot use.

This command builds the directory tree exactly as the shell would and reports
entries that were skipped (empty or ".." paths) or reconciled (a name used by
both a file and a directory). It also reads every file and reports those whose
content is not valid UTF-8, since wc and tac cannot display them.

Exits with an error if any problem is found.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd.OutOrStdout(), args[0], list)
		},
	}

	cmd.Flags().BoolVarP(&list, "list", "l", false, "Also print every file that passed")

	return cmd
}

func runValidate(out io.Writer, archivePath string, list bool) error {
	tree, z, err := loadArchive(archivePath)
	if err != nil {
		return err
	}

	problems := tree.Problems()
	var files int
	err = tree.Walk(func(path string, n *vfs.Node) error {
		if n.IsDir() {
			return nil
		}
		files++
		data, err := z.ReadFile(path)
		switch {
		case err != nil:
			problems = append(problems, vfs.Problem{Path: path, Reason: fmt.Sprintf("unreadable: %v", err)})
		case !utf8.Valid(data):
			problems = append(problems, vfs.Problem{Path: path, Reason: "content is not valid UTF-8"})
		case list:
			fmt.Fprintf(out, "ok  %s\n", path)
		}
		return nil
	})
	if err != nil {
		return err
	}

	if len(problems) > 0 {
		fmt.Fprintf(out, "Archive %s has %d problems:\n", archivePath, len(problems))
		for _, p := range problems {
			fmt.Fprintf(out, "  - %s\n", p)
		}
	}

	fmt.Fprintf(out, "\nValidation complete:\n")
	fmt.Fprintf(out, "  Files checked: %d\n", files)
	fmt.Fprintf(out, "  Total problems: %d\n", len(problems))

	if len(problems) > 0 {
		return ErrValidationFailed
	}
	return nil
}
