package cmd

import (
	"fmt"
	"io"

	"github.com/dendrascience/zipshell/archive"
	"github.com/dendrascience/zipshell/vfs"
	"github.com/spf13/cobra"
)

// NewCountCmd creates and returns the count subcommand for the zipshell CLI.
// It counts the files and directories the shell would see in an archive.
func NewCountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "count ARCHIVE",
		Short: "Count files and directories in a zip archive",
		Long: `Count the files and directories in a zip archive.

Directories that are only implied by file paths are counted too, so the
numbers match what the shell shows rather than the raw member count, which is
reported separately.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCount(cmd.OutOrStdout(), args[0])
		},
	}
}

func runCount(out io.Writer, archivePath string) error {
	tree, _, err := loadArchive(archivePath)
	if err != nil {
		return err
	}
	members, err := archive.CountMembers(archivePath)
	if err != nil {
		return err
	}

	var dirs, files int
	err = tree.Walk(func(_ string, n *vfs.Node) error {
		if n.IsDir() {
			dirs++
		} else {
			files++
		}
		return nil
	})
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "Directories: %d\n", dirs)
	fmt.Fprintf(out, "Files: %d\n", files)
	fmt.Fprintf(out, "Archive members: %d\n", members)
	return nil
}
