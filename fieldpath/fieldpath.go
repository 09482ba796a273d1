// Package fieldpath implements dotted field paths and their
// resolution against document trees.
package fieldpath

import (
	"fmt"
	"strings"
)

// PositionalPart is the path segment bound at prepare time to the
// array position matched by the enclosing query.
const PositionalPart = "$"

// Path is an ordered, non-empty sequence of path segments. It is
// immutable after Parse except for SetPart, which rebinds the
// positional segment once per apply cycle.
type Path struct {
	parts []string
}

func Parse(s string) (*Path, error) {
	parts := strings.Split(s, ".")
	for i, p := range parts {
		if p == "" {
			return nil, fmt.Errorf("%w: empty segment %d in %q", ErrInvalidPath, i, s)
		}
	}
	return &Path{parts: parts}, nil
}

func (p *Path) NumParts() int {
	return len(p.parts)
}

func (p *Path) Part(i int) string {
	return p.parts[i]
}

func (p *Path) SetPart(i int, v string) {
	p.parts[i] = v
}

// Dotted renders the path in dotted form.
func (p *Path) Dotted() string {
	return strings.Join(p.parts, ".")
}

func (p *Path) String() string {
	return p.Dotted()
}

// Positional returns the index of the first positional segment and
// how many positional segments the path has.
func (p *Path) Positional() (idx, n int) {
	idx = -1
	for i, part := range p.parts {
		if part != PositionalPart {
			continue
		}
		if idx < 0 {
			idx = i
		}
		n++
	}
	return idx, n
}

// Updatable reports whether updates may target this path. The _id
// identity field is immutable.
func (p *Path) Updatable() error {
	if p.parts[0] == "_id" {
		return fmt.Errorf("%w: the _id field cannot be updated", ErrInvalidPath)
	}
	return nil
}
