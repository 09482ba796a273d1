package fieldpath

import (
	"errors"
	"testing"

	"github.com/signadot/docmod/ir"
)

func mustDoc(t *testing.T, s string) *ir.Node {
	t.Helper()
	doc, err := ir.FromJSON([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

func mustPath(t *testing.T, s string) *Path {
	t.Helper()
	p, err := Parse(s)
	if err != nil {
		t.Fatal(err)
	}
	return p
}

func TestResolveFull(t *testing.T) {
	tests := []struct {
		name string
		doc  string
		path string
		want string // JSON of resolved node
	}{
		{"top level", `{"a":[1,2]}`, "a", `[1,2]`},
		{"nested", `{"a":{"b":{"c":7}}}`, "a.b.c", `7`},
		{"through array", `{"a":[{"b":1},{"b":2}]}`, "a.1.b", `2`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := mustPath(t, tt.path)
			idx, node, err := Resolve(p, mustDoc(t, tt.doc))
			if err != nil {
				t.Fatal(err)
			}
			if idx != p.NumParts()-1 {
				t.Errorf("stop index %d, want %d", idx, p.NumParts()-1)
			}
			if got := ir.MustJSON(node); got != tt.want {
				t.Errorf("node = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestResolveNonExistent(t *testing.T) {
	tests := []struct {
		name    string
		doc     string
		path    string
		wantIdx int
	}{
		{"missing root field", `{"a":1}`, "b", -1},
		{"missing nested field", `{"a":{"c":5}}`, "a.b.c", 0},
		{"past a leaf", `{"a":{"b":1}}`, "a.b.c", 1},
		{"index out of range", `{"a":[1]}`, "a.5", 0},
		{"empty document", `{}`, "a", -1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			idx, _, err := Resolve(mustPath(t, tt.path), mustDoc(t, tt.doc))
			if !errors.Is(err, ErrNonExistent) {
				t.Fatalf("err = %v, want ErrNonExistent", err)
			}
			if idx != tt.wantIdx {
				t.Errorf("stop index %d, want %d", idx, tt.wantIdx)
			}
		})
	}
}

func TestResolveNotViable(t *testing.T) {
	_, _, err := Resolve(mustPath(t, "a.b.c"), mustDoc(t, `{"a":[1,2]}`))
	if !errors.Is(err, ErrNotViable) {
		t.Fatalf("err = %v, want ErrNotViable", err)
	}
	if errors.Is(err, ErrNonExistent) {
		t.Errorf("not-viable must not read as non-existent")
	}
}
