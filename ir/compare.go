package ir

import (
	"cmp"
	"strings"
)

// Compare returns an integer comparing two nodes structurally.
// The result will be 0 if a==b, -1 if a < b, and +1 if a > b.
// A node's own position or field name in its parent never takes part
// in the comparison; field names inside object values do.
func Compare(a, b *Node) int {
	if a == b {
		return 0
	}
	if a == nil {
		return -1
	}
	if b == nil {
		return 1
	}

	rankA := rank(a.Type)
	rankB := rank(b.Type)
	if rankA != rankB {
		return cmp.Compare(rankA, rankB)
	}

	switch a.Type {
	case NumberType:
		return compareNumbers(a, b)
	case StringType:
		return strings.Compare(a.String, b.String)
	case BoolType:
		if a.Bool == b.Bool {
			return 0
		}
		if !a.Bool {
			return -1
		}
		return 1
	case ArrayType:
		return compareArrays(a, b)
	case ObjectType:
		return compareObjects(a, b)
	case NullType:
		return 0
	}
	return 0
}

// Equal reports structural equality of type and value.
func Equal(a, b *Node) bool {
	return Compare(a, b) == 0
}

// rank returns the sorting rank of a type.
// Order: Null < Bool < Number < String < Array < Object
func rank(t Type) int {
	switch t {
	case NullType:
		return 0
	case BoolType:
		return 1
	case NumberType:
		return 2
	case StringType:
		return 3
	case ArrayType:
		return 4
	case ObjectType:
		return 5
	}
	return 100
}

func compareNumbers(a, b *Node) int {
	av, aOK := a.numeric()
	bv, bOK := b.numeric()
	if aOK && bOK {
		return cmp.Compare(av, bv)
	}
	if aOK != bOK {
		if aOK {
			return -1
		}
		return 1
	}
	return strings.Compare(a.Number, b.Number)
}

// numeric reduces a number node to a float64 when it carries a parsed
// value, so 2 and 2.0 compare equal.
func (y *Node) numeric() (float64, bool) {
	if y.Int64 != nil {
		return float64(*y.Int64), true
	}
	if y.Float64 != nil {
		return *y.Float64, true
	}
	return 0, false
}

func compareArrays(a, b *Node) int {
	lenA := len(a.Values)
	lenB := len(b.Values)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}

func compareObjects(a, b *Node) int {
	lenA := len(a.Fields)
	lenB := len(b.Fields)
	minLen := min(lenA, lenB)

	for i := 0; i < minLen; i++ {
		if c := strings.Compare(a.Fields[i], b.Fields[i]); c != 0 {
			return c
		}
		if c := Compare(a.Values[i], b.Values[i]); c != 0 {
			return c
		}
	}
	return cmp.Compare(lenA, lenB)
}
