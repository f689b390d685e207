package archive

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
)

// Entry is one member of an archive as the tree builder sees it.
type Entry struct {
	Path  string // member name as stored in the archive
	IsDir bool   // true for directory members
}

// Zip is a zip archive on disk.
type Zip struct {
	Path string
}

// Open checks that path names a readable zip archive and returns a handle to it.
// The archive is closed again before Open returns.
func Open(path string) (*Zip, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, ErrExpectedFile
	}
	zrc, err := zip.OpenReader(path)
	if err != nil {
		return nil, errors.Join(ErrNotZip, err)
	}
	zrc.Close()
	return &Zip{Path: path}, nil
}

// Entries lists every member of the archive in central directory order.
func (z *Zip) Entries() ([]Entry, error) {
	zrc, err := zip.OpenReader(z.Path)
	if err != nil {
		return nil, err
	}
	defer zrc.Close()

	entries := make([]Entry, 0, len(zrc.File))
	for _, f := range zrc.File {
		entries = append(entries, Entry{
			Path:  f.Name,
			IsDir: isDirMember(f),
		})
	}
	return entries, nil
}

// ReadFile returns the content of the file member whose name normalizes, as
// by SplitName, to the same path as name.
func (z *Zip) ReadFile(name string) ([]byte, error) {
	segments, err := SplitName(name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", ErrEntryNotFound, name, err)
	}
	want := strings.Join(segments, "/")

	zrc, err := zip.OpenReader(z.Path)
	if err != nil {
		return nil, err
	}
	defer zrc.Close()

	for _, f := range zrc.File {
		got, err := SplitName(f.Name)
		if err != nil || strings.Join(got, "/") != want {
			continue
		}
		if isDirMember(f) {
			// a directory and a file can share a name; keep looking for the file
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(rc)
	}
	return nil, fmt.Errorf("%w: %s", ErrEntryNotFound, name)
}

// CountMembers returns the number of members in the archive at path.
func CountMembers(path string) (int, error) {
	zrc, err := zip.OpenReader(path)
	if err != nil {
		return 0, err
	}
	defer zrc.Close()
	return len(zrc.File), nil
}

// SplitName splits a member name into its path segments. Surrounding slashes,
// empty segments and "." segments are dropped, so "./a//b.txt" and "a/b.txt"
// name the same member. A name with a ".." segment is rejected with
// ErrUnsafePath, and one with no segments left with ErrEmptyPath.
func SplitName(name string) ([]string, error) {
	var segments []string
	for _, seg := range strings.Split(name, "/") {
		switch seg {
		case "", ".":
			continue
		case "..":
			return nil, ErrUnsafePath
		}
		segments = append(segments, seg)
	}
	if len(segments) == 0 {
		return nil, ErrEmptyPath
	}
	return segments, nil
}

func isDirMember(f *zip.File) bool {
	return strings.HasSuffix(f.Name, "/") || f.FileInfo().IsDir()
}
