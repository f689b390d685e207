// Package main provides the zipshell command-line interface.
//
// zipshell is a minimal shell over a read-only zip archive. The archive's entry
// list is turned into an in-memory directory tree that can be explored with
// ls, cd, mkdir, wc and tac. Every command typed is recorded in a JSON journal.
//
// The main binary supports multiple subcommands:
//   - shell: Start an interactive session over an archive
//   - mount: Mount an archive as a read-only FUSE filesystem
//   - validate: Report entries the shell cannot represent or read
//   - count: Count files and directories in an archive
//   - seed: Generate a sample archive
package main
