package ir

import (
	"testing"
)

func TestCompare(t *testing.T) {
	tests := []struct {
		name     string
		a, b     *Node
		expected int
	}{
		// Type Ranking: Null < Bool < Number < String < Array < Object
		{"Null < Bool", Null(), FromBool(false), -1},
		{"Bool < Number", FromBool(true), FromInt(1), -1},
		{"Number < String", FromInt(1), FromString("a"), -1},
		{"String < Array", FromString("a"), FromSlice(nil), -1},
		{"Array < Object", FromSlice(nil), FromMap(nil), -1},

		// Bool Comparison
		{"false < true", FromBool(false), FromBool(true), -1},
		{"true == true", FromBool(true), FromBool(true), 0},

		// Number Comparison: ints and floats compare by value
		{"Int == Float", FromInt(2), FromFloat(2.0), 0},
		{"Int < Float", FromInt(1), FromFloat(1.5), -1},
		{"Int < Int", FromInt(1), FromInt(2), -1},
		{"Float < Float", FromFloat(1.0), FromFloat(2.0), -1},
		{"Parsed < Unparsed", FromInt(1), &Node{Type: NumberType, Number: "1"}, -1},

		// String Comparison
		{"String < String", FromString("a"), FromString("b"), -1},
		{"String == String", FromString("a"), FromString("a"), 0},

		// Array Comparison
		{"Empty Array == Empty Array", FromSlice(nil), FromSlice(nil), 0},
		{"Short Array < Long Array", FromSlice([]*Node{FromInt(1)}), FromSlice([]*Node{FromInt(1), FromInt(2)}), -1},
		{"Array Element Comparison", FromSlice([]*Node{FromInt(1)}), FromSlice([]*Node{FromInt(2)}), -1},

		// Object Comparison
		{"Empty Object == Empty Object", FromMap(nil), FromMap(nil), 0},
		{"Short Object < Long Object",
			FromMap(map[string]*Node{"a": FromInt(1)}),
			FromMap(map[string]*Node{"a": FromInt(1), "b": FromInt(2)}),
			-1},
		{"Object Key Comparison",
			FromMap(map[string]*Node{"a": FromInt(1)}),
			FromMap(map[string]*Node{"b": FromInt(1)}),
			-1},
		{"Object Value Comparison",
			FromMap(map[string]*Node{"a": FromInt(1)}),
			FromMap(map[string]*Node{"a": FromInt(2)}),
			-1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Compare(tt.a, tt.b); got != tt.expected {
				t.Errorf("Compare() = %v, want %v", got, tt.expected)
			}
			// Test symmetry
			if got := Compare(tt.b, tt.a); got != -tt.expected {
				t.Errorf("Compare(b, a) = %v, want %v", got, -tt.expected)
			}
		})
	}
}

func TestEqualIgnoresPosition(t *testing.T) {
	arr := FromSlice([]*Node{FromInt(1), FromInt(2), FromInt(3)})
	free := FromInt(2)
	if !Equal(arr.Values[1], free) {
		t.Errorf("element at index 1 should equal free-standing 2")
	}
	obj := FromMap(map[string]*Node{"a": FromString("x")})
	if !Equal(Get(obj, "a"), FromString("x")) {
		t.Errorf("field value should equal free-standing value")
	}
}
