// Package enum discovers candidate files to scan.
package enum

import "context"

// Enumerator yields regular-file paths from a source.
// Symbolic links and directories are the enumerator's concern; callers
// only ever see paths to regular files.
type Enumerator interface {
	// Enumerate walks the source and invokes the callback once per
	// candidate path. A callback error aborts the walk.
	Enumerate(ctx context.Context, callback func(path string) error) error
}

// Config for enumeration.
type Config struct {
	// Root is the starting path for enumeration.
	Root string

	// IncludeHidden includes hidden files/directories (starting with .).
	IncludeHidden bool

	// FollowSymlinks follows symbolic links.
	FollowSymlinks bool

	// MaxFileSize is the maximum file size to yield (0 = no limit).
	MaxFileSize int64

	// IgnoreFile is a path to a gitignore-style exclude file
	// (empty = no excludes).
	IgnoreFile string
}
