package modifier

import (
	"fmt"

	"github.com/signadot/docmod/fieldpath"
	"github.com/signadot/docmod/ir"
)

// logSetOrUnset attaches a replication delta for path to logRoot. If a
// node still exists at full path depth the delta sets the field to its
// current value; otherwise it unsets the field.
func logSetOrUnset(logRoot *ir.Node, path *fieldpath.Path, node *ir.Node, stopIdx int) error {
	pathExists := node != nil && stopIdx == path.NumParts()-1

	opName := "$unset"
	logValue := ir.FromBool(true)
	if pathExists {
		opName = "$set"
		logValue = node.Clone()
	}

	opNode := &ir.Node{Type: ir.ObjectType}
	opNode.AppendField(path.Dotted(), logValue)

	if logRoot.Type != ir.ObjectType {
		return fmt.Errorf("%w: cannot attach log entry to a %s node",
			ErrInternal, logRoot.Type)
	}
	logRoot.AppendField(opName, opNode)
	return nil
}
