// Package archive provides read and write access to the zip archives that back
// the zipshell virtual filesystem.
//
// The package treats an archive as a read-only container with two
// capabilities:
//   - Entries enumerates every member as a (path, is-directory) pair, in the
//     order the archive's central directory lists them
//   - ReadFile returns the raw bytes of a member addressed by its
//     root-relative path
//
// A Zip value holds no open file handle. Every call reopens the archive, so a
// Zip can be shared freely and never needs closing.
//
// WriteZip builds new archives and is used by the seed command and by tests
// that need fixtures on disk.
package archive
