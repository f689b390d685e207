package cmd

import (
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"bazil.org/fuse"
	"bazil.org/fuse/fs"
	"github.com/dendrascience/zipshell/internal/logging"
	"github.com/dendrascience/zipshell/version"
	"github.com/dendrascience/zipshell/vfs"
	"github.com/spf13/cobra"
)

// ErrArchiveInsideMount is returned when the archive would be hidden by its own mount.
var ErrArchiveInsideMount = errors.New("archive must not be inside the mountpoint")

// NewMountCmd creates and returns the mount subcommand for the zipshell CLI.
// It serves an archive's tree as a read-only FUSE filesystem.
func NewMountCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "mount ARCHIVE MOUNTPOINT",
		Short: "Mount a zip archive as a read-only filesystem",
		Long: `Mount the directory tree of a zip archive at the specified mountpoint.

ARCHIVE is the path to the zip archive.
MOUNTPOINT is the directory where the filesystem will be mounted.

The mount is read-only and reflects the archive as the shell sees it.
Interrupt the command to unmount.`,
		Args: cobra.ExactArgs(2),
		RunE: runMount,
	}
}

func runMount(cmd *cobra.Command, args []string) error {
	logger := logging.GetLogger("mount")
	archivePath := args[0]
	mountpoint := args[1]

	absArchive, err := filepath.Abs(archivePath)
	if err != nil {
		return err
	}
	absMount, err := filepath.Abs(mountpoint)
	if err != nil {
		return err
	}
	if pathsOverlap(absArchive, absMount) {
		return fmt.Errorf("%w: %s", ErrArchiveInsideMount, archivePath)
	}

	tree, z, err := loadArchive(archivePath)
	if err != nil {
		return err
	}
	for _, p := range tree.Problems() {
		logger.Warn().Str("entry", p.Path).Msg(p.Reason)
	}

	c, err := fuse.Mount(
		mountpoint,
		fuse.FSName("zipshell"),
		fuse.Subtype("zipshell"),
		fuse.ReadOnly(),
	)
	if err != nil {
		return err
	}
	defer c.Close()

	ctx := cmd.Context()
	go func() {
		<-ctx.Done()
		logger.Info().Msg("Received interrupt signal, unmounting")
		if err := fuse.Unmount(mountpoint); err != nil {
			logger.Error().Err(err).Str("mountpoint", mountpoint).Msg("Failed to unmount")
		}
	}()

	logger.Info().
		Str("version", version.GetVersion()).
		Str("mountpoint", mountpoint).
		Str("archive", archivePath).
		Msg("Archive mounted")
	return fs.Serve(c, vfs.NewFuseFS(tree, z))
}

// pathsOverlap reports whether one path is the same as, or nested inside, the
// other.
func pathsOverlap(path1, path2 string) bool {
	p1 := filepath.Clean(path1)
	p2 := filepath.Clean(path2)
	if p1 == p2 {
		return true
	}
	sep := string(filepath.Separator)
	return strings.HasPrefix(p1, p2+sep) || strings.HasPrefix(p2, p1+sep)
}
