package repo

import "errors"

var (
	// ErrInvalidRef means reference text is neither a hash, a hash
	// prefix, nor a "ref: " indirection.
	ErrInvalidRef = errors.New("invalid reference")

	// ErrRefNotFound means no reference file exists for a name and the
	// name is not itself a valid hash or prefix.
	ErrRefNotFound = errors.New("reference not found")

	// ErrRefCycle means a chain of symbolic references exceeded the hop
	// bound, guarding against self-referential loops.
	ErrRefCycle = errors.New("reference cycle")

	// ErrAmbiguous means a name or abbreviated hash matched more than
	// one object; callers must never pick one arbitrarily.
	ErrAmbiguous = errors.New("ambiguous reference")

	// ErrTargetNotEmpty means a checkout target directory exists and
	// has contents.
	ErrTargetNotEmpty = errors.New("target directory not empty")

	// ErrTargetNotADirectory means a checkout target exists but is not
	// a directory.
	ErrTargetNotADirectory = errors.New("target is not a directory")

	// ErrUnsupportedMode means a tree entry's mode is neither a plain
	// file nor a directory (symlinks, gitlinks).
	ErrUnsupportedMode = errors.New("unsupported tree entry mode")
)
