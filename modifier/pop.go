package modifier

import (
	"errors"
	"fmt"

	"github.com/signadot/docmod/fieldpath"
	"github.com/signadot/docmod/ir"
)

func init() {
	Register("$pop", func() Modifier { return NewPop() })
}

// Pop removes one element from an array field: the last for argument
// 1, the first for argument -1.
type Pop struct {
	path          *fieldpath.Path
	positionalIdx int
	fromTop       bool

	prepared *popPrepared
}

type popPrepared struct {
	stopIdx     int
	node        *ir.Node
	applyCalled bool
	toRemove    *ir.Node
}

func NewPop() *Pop {
	return &Pop{positionalIdx: -1}
}

func (m *Pop) String() string {
	return "$pop"
}

func (m *Pop) Init(field string, arg *ir.Node) error {
	if m.path != nil {
		panic("docmod/modifier: $pop Init called twice")
	}
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

	if arg.Type != ir.NumberType || arg.Int64 == nil ||
		(*arg.Int64 != 1 && *arg.Int64 != -1) {
		return fmt.Errorf("%w: $pop requires 1 or -1 as its argument", ErrBadValue)
	}
	m.fromTop = *arg.Int64 == 1
	m.path = p
	return nil
}

func (m *Pop) Prepare(root *ir.Node, matchedField string) (*ExecInfo, error) {
	if m.path == nil {
		panic("docmod/modifier: $pop Prepare called before Init")
	}
	m.prepared = &popPrepared{stopIdx: -1}
	execInfo := &ExecInfo{Path: m.path}

	if m.positionalIdx >= 0 {
		if matchedField == "" {
			return execInfo, fmt.Errorf("%w: matched field not provided", ErrBadValue)
		}
		m.path.SetPart(m.positionalIdx, matchedField)
	}

	stopIdx, node, err := fieldpath.Resolve(m.path, root)
	m.prepared.stopIdx = stopIdx
	m.prepared.node = node
	switch {
	case err == nil:
		if node.Type != ir.ArrayType {
			return execInfo, fmt.Errorf("%w: can only $pop from arrays", ErrBadValue)
		}
		if !node.HasChildren() {
			execInfo.NoOp, execInfo.InPlace = true, true
			return execInfo, nil
		}
		if m.fromTop {
			m.prepared.toRemove = node.Values[len(node.Values)-1]
		} else {
			m.prepared.toRemove = node.Values[0]
		}
		return execInfo, nil

	case errors.Is(err, fieldpath.ErrNonExistent):
		execInfo.NoOp, execInfo.InPlace = true, true
		return execInfo, nil

	default:
		return execInfo, err
	}
}

func (m *Pop) Apply() error {
	p := m.prepared
	if p == nil {
		panic("docmod/modifier: $pop Apply called before Prepare")
	}
	if p.applyCalled {
		panic("docmod/modifier: $pop Apply called twice")
	}
	p.applyCalled = true
	p.toRemove.Detach()
	return nil
}

func (m *Pop) Log(logRoot *ir.Node) error {
	p := m.prepared
	if p == nil {
		panic("docmod/modifier: $pop Log called before Prepare")
	}
	return logSetOrUnset(logRoot, m.path, p.node, p.stopIdx)
}
