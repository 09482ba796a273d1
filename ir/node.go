// Package ir holds the mutable in-memory document tree that update
// modifiers operate on.
package ir

import (
	"iter"
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Node is one typed value in a document tree. Container nodes keep
// their children in Values, in document order; object nodes keep the
// matching field names in Fields. Every child carries a back-link to
// its parent together with its position there, so a located node can
// be detached without re-walking the tree.
type Node struct {
	Type        Type
	Parent      *Node
	ParentIndex int
	ParentField string
	Fields      []string
	Values      []*Node

	String  string
	Bool    bool
	Number  string
	Float64 *float64
	Int64   *int64
}

func FromString(v string) *Node {
	return &Node{Type: StringType, String: v}
}

func FromInt(v int64) *Node {
	return &Node{Type: NumberType, Int64: &v}
}

func FromFloat(f float64) *Node {
	return &Node{Type: NumberType, Float64: &f}
}

func FromBool(v bool) *Node {
	return &Node{Type: BoolType, Bool: v}
}

func Null() *Node {
	return &Node{Type: NullType}
}

func FromSlice(vs []*Node) *Node {
	res := &Node{Type: ArrayType}
	res.Values = make([]*Node, len(vs))
	for i, v := range vs {
		res.Values[i] = v
		v.Parent = res
		v.ParentIndex = i
		v.ParentField = ""
	}
	return res
}

func FromMap(m map[string]*Node) *Node {
	res := &Node{Type: ObjectType}
	keys := slices.Sorted(maps.Keys(m))
	res.Fields = make([]string, 0, len(keys))
	res.Values = make([]*Node, 0, len(keys))
	for _, key := range keys {
		res.AppendField(key, m[key])
	}
	return res
}

// FromGo builds a tree from plain Go values as produced by the yaml
// and json decoders.
func FromGo(v any) *Node {
	switch x := v.(type) {
	case nil:
		return Null()
	case bool:
		return FromBool(x)
	case int:
		return FromInt(int64(x))
	case int64:
		return FromInt(x)
	case uint64:
		return FromInt(int64(x))
	case float64:
		if f := x; f == float64(int64(f)) {
			return FromInt(int64(f))
		}
		return FromFloat(x)
	case string:
		return FromString(x)
	case []any:
		vs := make([]*Node, len(x))
		for i := range x {
			vs[i] = FromGo(x[i])
		}
		return FromSlice(vs)
	case map[string]any:
		res := &Node{Type: ObjectType}
		for _, key := range slices.Sorted(maps.Keys(x)) {
			res.AppendField(key, FromGo(x[key]))
		}
		return res
	case map[any]any:
		res := &Node{Type: ObjectType}
		m := make(map[string]*Node, len(x))
		for k, v := range x {
			m[toKey(k)] = FromGo(v)
		}
		for _, key := range slices.Sorted(maps.Keys(m)) {
			res.AppendField(key, m[key])
		}
		return res
	default:
		return Null()
	}
}

func toKey(k any) string {
	switch x := k.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case int64:
		return strconv.FormatInt(x, 10)
	default:
		return ""
	}
}

// ToGo converts a tree back to plain Go values. Object field order is
// not preserved.
func (y *Node) ToGo() any {
	switch y.Type {
	case NullType:
		return nil
	case BoolType:
		return y.Bool
	case StringType:
		return y.String
	case NumberType:
		if y.Int64 != nil {
			return *y.Int64
		}
		if y.Float64 != nil {
			return *y.Float64
		}
		return y.Number
	case ArrayType:
		res := make([]any, len(y.Values))
		for i, v := range y.Values {
			res[i] = v.ToGo()
		}
		return res
	case ObjectType:
		res := make(map[string]any, len(y.Values))
		for i, f := range y.Fields {
			res[f] = y.Values[i].ToGo()
		}
		return res
	}
	return nil
}

func (y *Node) Clone() *Node {
	res := &Node{}
	return y.CloneTo(res)
}

func (y *Node) CloneTo(dst *Node) *Node {
	dst.Type = y.Type
	dst.Fields = slices.Clone(y.Fields)
	dst.Values = make([]*Node, len(y.Values))
	for i, yv := range y.Values {
		dstI := &Node{}
		yv.CloneTo(dstI)
		dstI.Parent = dst
		dstI.ParentIndex = i
		dstI.ParentField = yv.ParentField
		dst.Values[i] = dstI
	}
	dst.String = y.String
	dst.Number = y.Number
	if y.Float64 != nil {
		f := *y.Float64
		dst.Float64 = &f
	}
	if y.Int64 != nil {
		i := *y.Int64
		dst.Int64 = &i
	}
	dst.Bool = y.Bool
	return dst
}

// Get returns the value of the named field of an object node, or nil.
func Get(y *Node, field string) *Node {
	n := len(y.Fields)
	for i := range n {
		if y.Fields[i] == field {
			return y.Values[i]
		}
	}
	return nil
}

// AppendField attaches v as the last field of an object node y.
func (y *Node) AppendField(field string, v *Node) {
	v.Parent = y
	v.ParentIndex = len(y.Values)
	v.ParentField = field
	y.Fields = append(y.Fields, field)
	y.Values = append(y.Values, v)
}

// Append attaches v as the last element of an array node y.
func (y *Node) Append(v *Node) {
	v.Parent = y
	v.ParentIndex = len(y.Values)
	v.ParentField = ""
	y.Values = append(y.Values, v)
}

// Detach removes y from its parent container, closing the gap and
// reindexing the siblings after it. Detaching a root is a no-op.
func (y *Node) Detach() {
	p := y.Parent
	if p == nil {
		return
	}
	i := y.ParentIndex
	p.Values = slices.Delete(p.Values, i, i+1)
	if p.Type == ObjectType {
		p.Fields = slices.Delete(p.Fields, i, i+1)
	}
	for j := i; j < len(p.Values); j++ {
		p.Values[j].ParentIndex = j
	}
	y.Parent = nil
	y.ParentIndex = 0
	y.ParentField = ""
}

// Children iterates the direct children of y in document order. The
// sequence is restartable and does not expose the underlying storage.
func (y *Node) Children() iter.Seq[*Node] {
	return func(yield func(*Node) bool) {
		for _, v := range y.Values {
			if !yield(v) {
				return
			}
		}
	}
}

func (y *Node) HasChildren() bool {
	return len(y.Values) != 0
}

func (y *Node) Root() *Node {
	res := y
	for res.Parent != nil {
		res = res.Parent
	}
	return res
}

// Path renders the position of y in its tree, for diagnostics.
func (y *Node) Path() string {
	if y.Parent == nil {
		return "$"
	}
	switch y.Parent.Type {
	case ObjectType:
		f := y.ParentField
		prefix := y.Parent.Path() + "."
		if f != "" && strings.IndexAny(f, "'.*$[]") == -1 {
			return prefix + f
		}
		return prefix + "'" + strings.Replace(f, "'", "\\'", -1) + "'"
	case ArrayType:
		return y.Parent.Path() + "[" + strconv.Itoa(y.ParentIndex) + "]"
	default:
		panic("parent but not in container")
	}
}

func (y *Node) Visit(f func(y *Node, isPost bool) (bool, error)) error {
	dive, err := f(y, false)
	if err != nil {
		return err
	}
	if dive {
		for _, yy := range y.Values {
			if err := yy.Visit(f); err != nil {
				return err
			}
		}
	}
	if _, err := f(y, true); err != nil {
		return err
	}
	return nil
}
