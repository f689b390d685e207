// Package cmd provides the command-line interface implementation for zipshell.
//
// It uses the Cobra library for command structure and Fang for styling.
//
// The package is organized into the following commands:
//   - root: Main command coordinator and diagnostic logging setup
//   - shell: Interactive session over a zip archive
//   - mount: Read-only FUSE view of an archive
//   - validate: Report entries the shell skips, reconciles or cannot read
//   - count: File and directory counts
//   - seed: Sample archive generation
//
// Each command is implemented as a separate file with its own constructor
// function that returns a *cobra.Command.
package cmd
