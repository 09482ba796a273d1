package modifier

import (
	"errors"
	"fmt"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/signadot/docmod/fieldpath"
	"github.com/signadot/docmod/ir"
)

func init() {
	Register("$pull", func() Modifier { return NewPull() })
}

// Pull removes from an array field every element matching a
// condition. A string argument is compiled as an expression over the
// variables `value` (the element as a plain Go value) and `index`;
// any other argument selects elements structurally equal to it.
type Pull struct {
	path          *fieldpath.Path
	positionalIdx int
	value         *ir.Node
	prog          *vm.Program

	prepared *pullPrepared
}

type pullPrepared struct {
	stopIdx     int
	node        *ir.Node
	applyCalled bool
	toRemove    []*ir.Node
}

func NewPull() *Pull {
	return &Pull{positionalIdx: -1}
}

func (m *Pull) String() string {
	return "$pull"
}

func (m *Pull) Init(field string, arg *ir.Node) error {
	if m.path != nil {
		panic("docmod/modifier: $pull Init called twice")
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

	if arg.Type == ir.StringType {
		prog, err := expr.Compile(arg.String,
			expr.AsBool(),
			expr.AllowUndefinedVariables())
		if err != nil {
			return fmt.Errorf("%w: bad $pull condition %q: %w", ErrBadValue, arg.String, err)
		}
		m.prog = prog
	} else {
		m.value = arg
	}
	m.path = p
	return nil
}

func (m *Pull) Prepare(root *ir.Node, matchedField string) (*ExecInfo, error) {
	if m.path == nil {
		panic("docmod/modifier: $pull Prepare called before Init")
	}
	m.prepared = &pullPrepared{stopIdx: -1}
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
			return execInfo, fmt.Errorf("%w: can only $pull* from arrays", ErrBadValue)
		}
		i := 0
		for child := range node.Children() {
			ok, err := m.matches(child, i)
			if err != nil {
				return execInfo, err
			}
			if ok {
				m.prepared.toRemove = append(m.prepared.toRemove, child)
			}
			i++
		}
		if len(m.prepared.toRemove) == 0 {
			execInfo.NoOp, execInfo.InPlace = true, true
		}
		return execInfo, nil

	case errors.Is(err, fieldpath.ErrNonExistent):
		execInfo.NoOp, execInfo.InPlace = true, true
		return execInfo, nil

	default:
		return execInfo, err
	}
}

func (m *Pull) matches(child *ir.Node, i int) (bool, error) {
	if m.prog == nil {
		return ir.Equal(child, m.value), nil
	}
	out, err := expr.Run(m.prog, map[string]any{
		"value": child.ToGo(),
		"index": i,
	})
	if err != nil {
		return false, fmt.Errorf("%w: $pull condition on %s: %w", ErrBadValue, child.Path(), err)
	}
	b, ok := out.(bool)
	if !ok {
		return false, fmt.Errorf("%w: $pull condition is not boolean", ErrBadValue)
	}
	return b, nil
}

func (m *Pull) Apply() error {
	p := m.prepared
	if p == nil {
		panic("docmod/modifier: $pull Apply called before Prepare")
	}
	if p.applyCalled {
		panic("docmod/modifier: $pull Apply called twice")
	}
	p.applyCalled = true
	for _, n := range p.toRemove {
		n.Detach()
	}
	return nil
}

func (m *Pull) Log(logRoot *ir.Node) error {
	p := m.prepared
	if p == nil {
		panic("docmod/modifier: $pull Log called before Prepare")
	}
	return logSetOrUnset(logRoot, m.path, p.node, p.stopIdx)
}
