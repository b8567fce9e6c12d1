package object

import "errors"

var (
	// ErrObjectNotFound means no loose object exists at the hash's
	// fan-out path.
	ErrObjectNotFound = errors.New("object not found")

	// ErrUnknownType means the framing header names a type outside the
	// four recognized kinds.
	ErrUnknownType = errors.New("unknown object type")

	// ErrSizeMismatch means the declared payload length disagrees with
	// the actual payload length.
	ErrSizeMismatch = errors.New("object size mismatch")

	// ErrCorruptObject means the stored bytes are not a valid zlib
	// stream, or the framing header is unparseable.
	ErrCorruptObject = errors.New("corrupt object")

	// ErrMalformedTree means a tree payload is missing a separator or
	// truncates a 20-byte hash.
	ErrMalformedTree = errors.New("malformed tree")

	// ErrMalformedHeader means a commit/tag header line lacks the
	// "key value" structure before the blank-line terminator.
	ErrMalformedHeader = errors.New("malformed header")
)
