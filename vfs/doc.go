// Package vfs implements the in-memory virtual filesystem that zipshell
// navigates.
//
// A Tree is built once from the flat entry list of an archive. Every node is
// either a directory, holding named children, or a file leaf. Building is
// independent of entry order: parents are created on demand and repeated
// directory entries are no-ops.
//
// A Navigator owns a Tree together with a current-path stack that always
// starts with the root sentinel "/". It implements the shell's filesystem
// operations:
//   - Mkdir adds an empty directory to the in-memory tree only
//   - List returns the current directory's children in insertion order
//   - Cd moves the path stack up with ".." or down into any child
//   - ReadFile, WordCount and Tac read file content through a ContentReader,
//     normally an *archive.Zip
//
// FuseFS exposes a Tree as a read-only FUSE filesystem using bazil.org/fuse.
//
// Nothing in the package is safe for concurrent mutation. A Tree may be read
// concurrently (as FuseFS does) as long as no Navigator mutates it.
package vfs
