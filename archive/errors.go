package archive

import "errors"

// Sentinel errors for package archive.
// These errors can be checked with errors.Is() for specific error handling.
var (
	// Archive errors
	ErrNotZip        = errors.New("file is not a zip archive")
	ErrExpectedFile  = errors.New("expected file, got directory")
	ErrEntryNotFound = errors.New("entry not found in archive")

	// Member errors
	ErrEmptyMemberName = errors.New("member name is empty")
	ErrEmptyPath       = errors.New("entry path is empty")
	ErrUnsafePath      = errors.New("entry path escapes the archive root")
)
