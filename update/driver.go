// Package update sequences update operators over one document and
// collects their replication deltas into a single log document.
package update

import (
	"fmt"

	"github.com/signadot/docmod/debug"
	"github.com/signadot/docmod/ir"
	"github.com/signadot/docmod/modifier"
)

// Driver holds the parsed operator occurrences of one update
// expression. A Driver is single-use against a single document and is
// not safe for concurrent use.
type Driver struct {
	mods []modifier.Modifier
}

// Result reports the outcome of a driver run. Log is the combined
// replication delta; NoOp holds when every operator was a no-op.
type Result struct {
	NoOp bool
	Log  *ir.Node
}

// Parse builds a driver from an update expression: an object keyed by
// operator name ($pullAll, $pull, ...), each value an object mapping
// field paths to operator arguments.
func Parse(expr *ir.Node) (*Driver, error) {
	if expr.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: update expression must be an object, got %s",
			modifier.ErrBadValue, expr.Type)
	}
	if !expr.HasChildren() {
		return nil, fmt.Errorf("%w: empty update expression", modifier.ErrBadValue)
	}
	d := &Driver{}
	for i, op := range expr.Fields {
		factory := modifier.Lookup(op)
		if factory == nil {
			return nil, fmt.Errorf("%w: unknown update operator %q",
				modifier.ErrBadValue, op)
		}
		args := expr.Values[i]
		if args.Type != ir.ObjectType {
			return nil, fmt.Errorf("%w: %s expects an object of field/argument pairs",
				modifier.ErrBadValue, op)
		}
		for j, field := range args.Fields {
			m := factory()
			if err := m.Init(field, args.Values[j]); err != nil {
				return nil, fmt.Errorf("%s on %q: %w", op, field, err)
			}
			d.mods = append(d.mods, m)
		}
	}
	return d, nil
}

// Update runs every operator against root, one at a time:
// Prepare, then Apply unless the operator reported a no-op, then Log.
// Any failure aborts the run; partial mutations of root may remain,
// which is why callers treat a failed update as fatal for the
// enclosing command.
func (d *Driver) Update(root *ir.Node, matchedField string) (*Result, error) {
	res := &Result{
		NoOp: true,
		Log:  &ir.Node{Type: ir.ObjectType},
	}
	for _, m := range d.mods {
		info, err := m.Prepare(root, matchedField)
		if err != nil {
			return nil, fmt.Errorf("preparing %s: %w", m, err)
		}
		if debug.Driver() {
			debug.Logf("driver: %s on %s noOp=%v inPlace=%v\n",
				m, info.Path, info.NoOp, info.InPlace)
		}
		if !info.NoOp {
			res.NoOp = false
			if err := m.Apply(); err != nil {
				return nil, fmt.Errorf("applying %s: %w", m, err)
			}
		}
		if err := m.Log(res.Log); err != nil {
			return nil, fmt.Errorf("logging %s: %w", m, err)
		}
	}
	return res, nil
}
