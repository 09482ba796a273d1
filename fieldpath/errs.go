package fieldpath

import "errors"

var (
	// ErrInvalidPath marks malformed or non-updatable paths.
	ErrInvalidPath = errors.New("invalid path")

	// ErrNonExistent marks resolution stopping because a segment is
	// absent. Callers that define removal from an absent field as a
	// no-op recover from it locally.
	ErrNonExistent = errors.New("non-existent path")

	// ErrNotViable marks a structural conflict partway along a path,
	// such as a non-numeric segment applied to an array.
	ErrNotViable = errors.New("path not viable")
)
