package cmd

import (
	"encoding/binary"
	"errors"
	"fmt"
	"io"
	"math/rand/v2"
	"path"
	"strings"
	"time"

	"github.com/dendrascience/zipshell/archive"
	"github.com/dendrascience/zipshell/internal/logging"
	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// ErrInvalidFileCount is returned when seed is asked for fewer than one file.
var ErrInvalidFileCount = errors.New("file count must be at least 1")

const seedReadme = `Sample archive generated by zipshell seed.
Try: ls, cd logs, wc README.txt, tac README.txt
Directories made with mkdir are kept in memory only.
`

// NewSeedCmd creates and returns the seed subcommand for the zipshell CLI.
// It generates a sample archive with a dated directory structure.
func NewSeedCmd() *cobra.Command {
	var (
		outputPath string
		fileCount  int
		seed       uint64
	)

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Generate a sample zip archive",
		Long: `Generate a sample zip archive for trying out the shell.

Creates files in a logs/YYYY/MM/DD directory structure with most files at the
deepest level. Each file holds a few lines of UUIDs. The archive also carries
a README.txt at the root and an empty directory entry. The same --seed always
produces the same archive.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(cmd.OutOrStdout(), outputPath, fileCount, seed)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Path of the archive to write (required)")
	cmd.Flags().IntVarP(&fileCount, "count", "c", 25, "Number of log files to generate")
	cmd.Flags().Uint64Var(&seed, "seed", 1, "Random seed")

	cmd.MarkFlagRequired("output")

	return cmd
}

func runSeed(out io.Writer, outputPath string, fileCount int, seed uint64) error {
	if fileCount < 1 {
		return ErrInvalidFileCount
	}
	logger := logging.GetLogger("seed")

	members := seedMembers(fileCount, seed)
	if err := archive.WriteZip(outputPath, members); err != nil {
		return fmt.Errorf("write %s: %w", outputPath, err)
	}

	logger.Debug().Int("members", len(members)).Str("output", outputPath).Msg("Archive written")
	fmt.Fprintf(out, "Created %s with %d log files\n", outputPath, fileCount)
	return nil
}

// seedMembers returns the archive members for a sample archive. Output depends
// only on fileCount and seed.
func seedMembers(fileCount int, seed uint64) []archive.Member {
	var key [32]byte
	binary.LittleEndian.PutUint64(key[:], seed)
	src := rand.NewChaCha8(key)
	rng := rand.New(src)

	members := []archive.Member{
		{Name: "README.txt", Data: []byte(seedReadme)},
		{Name: "empty/", Dir: true},
	}
	seen := map[string]bool{}
	baseTime := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for created := 0; created < fileCount; {
		fileTime := baseTime.AddDate(0, 0, rng.IntN(365))

		var dir string
		switch level := rng.IntN(100); {
		case level < 10:
			dir = path.Join("logs", fileTime.Format("2006"))
		case level < 30:
			dir = path.Join("logs", fileTime.Format("2006"), fileTime.Format("01"))
		default:
			dir = path.Join("logs", fileTime.Format("2006"), fileTime.Format("01"), fileTime.Format("02"))
		}

		name := path.Join(dir, fmt.Sprintf("%08x.txt", rng.Uint32()))
		if seen[name] {
			continue
		}
		seen[name] = true

		lines := make([]string, 1+rng.IntN(5))
		for i := range lines {
			id, err := uuid.NewRandomFromReader(src)
			if err != nil {
				id = uuid.New()
			}
			lines[i] = id.String()
		}
		members = append(members, archive.Member{
			Name: name,
			Data: []byte(strings.Join(lines, "\n") + "\n"),
		})
		created++
	}
	return members
}
