package vfs

import (
	"errors"

	"github.com/dendrascience/zipshell/archive"
)

// Sentinel errors for package vfs.
var (
	// Navigation errors
	ErrNotFound     = errors.New("not found")
	ErrNotDirectory = errors.New("not a directory")
	ErrInvalidName  = errors.New("invalid name")

	// Content errors
	ErrNotText = errors.New("content is not valid UTF-8")

	// Build errors
	ErrEmptyPath  = archive.ErrEmptyPath
	ErrUnsafePath = archive.ErrUnsafePath
)
