package modifier

import (
	"errors"

	"github.com/signadot/docmod/fieldpath"
)

var (
	// ErrInvalidPath marks a malformed or non-updatable field path
	// at Init.
	ErrInvalidPath = fieldpath.ErrInvalidPath

	// ErrBadValue marks a mistyped operator argument or target
	// field, or a positional path prepared without a matched field.
	ErrBadValue = errors.New("bad value")

	// ErrInternal marks a failure constructing or attaching a log
	// entry.
	ErrInternal = errors.New("internal error")
)
