// Package modifier implements the update operators of the document
// update engine. An operator occurrence runs a strict four-phase
// protocol against exactly one document:
//
//	Init → Prepare → Apply → Log
//
// Init parses the operator's field path and argument. Prepare binds
// the positional segment, resolves the path against the target tree
// and selects what will change, reporting an ExecInfo. Apply mutates
// the tree. Log writes a replication-safe delta of the net effect
// into a caller-supplied log document.
//
// A modifier instance is single-use and single-threaded: it holds only
// borrowed references into the caller's tree between Prepare and
// Apply/Log and must not be shared or reused across updates.
package modifier

import (
	"maps"
	"slices"

	"github.com/signadot/docmod/fieldpath"
	"github.com/signadot/docmod/ir"
)

type Modifier interface {
	// Init may be called at most once per instance.
	Init(field string, arg *ir.Node) error

	// Prepare examines root and selects the change. The returned
	// ExecInfo carries the bound field path regardless of outcome.
	// A non-existent target path is a successful no-op, not an
	// error.
	Prepare(root *ir.Node, matchedField string) (*ExecInfo, error)

	// Apply performs the prepared mutation. It must only be called
	// once, after a Prepare that did not report a no-op; misuse
	// panics rather than corrupting state.
	Apply() error

	// Log attaches the operator's net effect to logRoot. Callable
	// after any successful Prepare, no-op or not.
	Log(logRoot *ir.Node) error
}

// ExecInfo reports what a Prepare decided. NoOp means nothing will
// change; InPlace means any change keeps the document's shape and
// size, so no full rewrite is needed.
type ExecInfo struct {
	NoOp    bool
	InPlace bool
	Path    *fieldpath.Path
}

// Factory creates one uninitialized operator occurrence.
type Factory func() Modifier

var registry = map[string]Factory{}

func Register(name string, f Factory) {
	if _, ok := registry[name]; ok {
		panic("duplicate modifier " + name)
	}
	registry[name] = f
}

// Lookup returns the factory for an operator name, or nil.
func Lookup(name string) Factory {
	return registry[name]
}

// Names returns the registered operator names, sorted.
func Names() []string {
	return slices.Sorted(maps.Keys(registry))
}
