package modifier

import (
	"errors"
	"fmt"

	"github.com/signadot/docmod/debug"
	"github.com/signadot/docmod/fieldpath"
	"github.com/signadot/docmod/ir"
)

func init() {
	Register("$pullAll", func() Modifier { return NewPullAll() })
}

// PullAll removes from an array field every element structurally equal
// to a member of the operator-supplied removal set.
type PullAll struct {
	path          *fieldpath.Path
	positionalIdx int
	toFind        []*ir.Node

	prepared *pullAllPrepared
}

// pullAllPrepared is created fresh per target document and owned
// exclusively by its modifier between Prepare and Apply/Log. It holds
// borrowed references into the caller's tree, never past the call
// sequence.
type pullAllPrepared struct {
	// index of the deepest path segment a node was resolved for
	stopIdx int

	// the node resolved at stopIdx, if any
	node *ir.Node

	// value bound to the positional segment, if any
	positionalPart string

	applyCalled bool

	// children of node selected for removal, in document order
	toRemove []*ir.Node
}

func NewPullAll() *PullAll {
	return &PullAll{positionalIdx: -1}
}

func (m *PullAll) String() string {
	return "$pullAll"
}

func (m *PullAll) Init(field string, arg *ir.Node) error {
	if m.path != nil {
		panic("docmod/modifier: $pullAll Init called twice")
	}

	// field name analysis: break the path into dotted segments and
	// check it may be updated at all
	p, err := fieldpath.Parse(field)
	if err != nil {
		return err
	}
	if err := p.Updatable(); err != nil {
		return err
	}
	idx, n := p.Positional()
	if n > 1 {
		return fmt.Errorf(
			"%w: too many positional (i.e. '$') elements found in path %q",
			ErrInvalidPath, field)
	}
	m.positionalIdx = idx

	// value analysis
	if arg.Type != ir.ArrayType {
		return fmt.Errorf("%w: $pullAll requires an array argument", ErrBadValue)
	}

	// the removal set, in argument order; no deduplication, no
	// coercion
	m.toFind = arg.Values
	m.path = p
	return nil
}

func (m *PullAll) Prepare(root *ir.Node, matchedField string) (*ExecInfo, error) {
	if m.path == nil {
		panic("docmod/modifier: $pullAll Prepare called before Init")
	}
	m.prepared = &pullAllPrepared{stopIdx: -1}
	execInfo := &ExecInfo{Path: m.path}

	// bind the positional segment to the matched field, if the path
	// has one
	if m.positionalIdx >= 0 {
		if matchedField == "" {
			return execInfo, fmt.Errorf("%w: matched field not provided", ErrBadValue)
		}
		m.prepared.positionalPart = matchedField
		m.path.SetPart(m.positionalIdx, matchedField)
	}

	stopIdx, node, err := fieldpath.Resolve(m.path, root)
	m.prepared.stopIdx = stopIdx
	m.prepared.node = node
	switch {
	case err == nil:
		// the full path exists; the target must already be an
		// array
		if node.Type != ir.ArrayType {
			return execInfo, fmt.Errorf("%w: can only $pull* from arrays", ErrBadValue)
		}
		if !node.HasChildren() {
			execInfo.NoOp, execInfo.InPlace = true, true
			return execInfo, nil
		}
		for child := range node.Children() {
			if m.matches(child) {
				m.prepared.toRemove = append(m.prepared.toRemove, child)
			}
		}
		if debug.Modifier() {
			debug.Logf("$pullAll %s: %d of %d elements selected\n",
				m.path, len(m.prepared.toRemove), len(node.Values))
		}
		if len(m.prepared.toRemove) == 0 {
			execInfo.NoOp, execInfo.InPlace = true, true
		}
		return execInfo, nil

	case errors.Is(err, fieldpath.ErrNonExistent):
		// removing from an absent field is a successful no-op;
		// this keeps retried and replicated applies idempotent
		execInfo.NoOp, execInfo.InPlace = true, true
		return execInfo, nil

	default:
		return execInfo, err
	}
}

func (m *PullAll) matches(child *ir.Node) bool {
	for _, want := range m.toFind {
		if ir.Equal(child, want) {
			return true
		}
	}
	return false
}

func (m *PullAll) Apply() error {
	p := m.prepared
	if p == nil {
		panic("docmod/modifier: $pullAll Apply called before Prepare")
	}
	if p.applyCalled {
		panic("docmod/modifier: $pullAll Apply called twice")
	}
	p.applyCalled = true

	// every candidate was located as a live child of the resolved
	// array in this Prepare; detaching cannot fail
	for _, n := range p.toRemove {
		n.Detach()
	}
	return nil
}

func (m *PullAll) Log(logRoot *ir.Node) error {
	p := m.prepared
	if p == nil {
		panic("docmod/modifier: $pullAll Log called before Prepare")
	}

	// The delta records the net effect, not the removals: replaying
	// "remove elements equal to X" on a replica could be ambiguous,
	// whereas setting the resulting state is exactly idempotent.
	return logSetOrUnset(logRoot, m.path, p.node, p.stopIdx)
}
