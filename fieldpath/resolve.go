package fieldpath

import (
	"fmt"
	"strconv"

	"github.com/signadot/docmod/debug"
	"github.com/signadot/docmod/ir"
)

// Resolve performs longest-prefix resolution of p against root. It
// returns the index of the deepest segment a node was found for, that
// node, and an error describing why traversal stopped short, if it
// did. A full resolution returns (p.NumParts()-1, node, nil).
//
// Stopping because a segment is simply absent — a missing object
// field, an array index out of range, or a leaf where a container
// would be needed — yields ErrNonExistent together with the deepest
// node found (nil and index -1 when not even the first segment
// resolves). Applying a non-numeric segment to an array node is a
// structural conflict and yields ErrNotViable instead.
func Resolve(p *Path, root *ir.Node) (int, *ir.Node, error) {
	if debug.Resolve() {
		debug.Logf("resolve %s against %s\n", p, ir.MustJSON(root))
	}
	if !root.HasChildren() {
		return -1, nil, fmt.Errorf("%w: the document is empty", ErrNonExistent)
	}
	curr := root
	for i := 0; i < p.NumParts(); i++ {
		part := p.Part(i)
		var next *ir.Node
		switch curr.Type {
		case ir.ObjectType:
			next = ir.Get(curr, part)
		case ir.ArrayType:
			idx, err := strconv.Atoi(part)
			if err != nil {
				return stopAt(i, curr), curr, fmt.Errorf(
					"%w: cannot use the part (%s of %s) to traverse the array at %s",
					ErrNotViable, part, p, curr.Path())
			}
			if idx >= 0 && idx < len(curr.Values) {
				next = curr.Values[idx]
			}
		default:
			// a leaf has no children; the remainder of the
			// path simply does not exist
		}
		if next == nil {
			if i == 0 {
				return -1, nil, fmt.Errorf(
					"%w: cannot find path %s in the document", ErrNonExistent, p)
			}
			return i - 1, curr, fmt.Errorf(
				"%w: cannot find the part (%s of %s)", ErrNonExistent, part, p)
		}
		curr = next
	}
	return p.NumParts() - 1, curr, nil
}

func stopAt(i int, curr *ir.Node) int {
	if curr.Parent == nil {
		return -1
	}
	return i - 1
}
