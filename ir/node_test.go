package ir

import (
	"testing"
)

func TestDetach(t *testing.T) {
	arr := FromSlice([]*Node{FromInt(1), FromInt(2), FromInt(3), FromInt(2)})
	second := arr.Values[1]
	last := arr.Values[3]

	second.Detach()
	if got := MustJSON(arr); got != "[1,3,2]" {
		t.Fatalf("after first detach got %s", got)
	}
	// indices of trailing siblings must have been fixed up
	last.Detach()
	if got := MustJSON(arr); got != "[1,3]" {
		t.Fatalf("after second detach got %s", got)
	}
	if second.Parent != nil || last.Parent != nil {
		t.Errorf("detached nodes keep a parent link")
	}
	for i, v := range arr.Values {
		if v.ParentIndex != i {
			t.Errorf("value %d has ParentIndex %d", i, v.ParentIndex)
		}
	}
}

func TestDetachObjectField(t *testing.T) {
	obj := &Node{Type: ObjectType}
	obj.AppendField("a", FromInt(1))
	obj.AppendField("b", FromInt(2))
	obj.AppendField("c", FromInt(3))

	Get(obj, "b").Detach()
	if got := MustJSON(obj); got != `{"a":1,"c":3}` {
		t.Fatalf("got %s", got)
	}
	if Get(obj, "c").ParentIndex != 1 {
		t.Errorf("field c not reindexed")
	}
}

func TestChildrenOrderAndRestart(t *testing.T) {
	arr := FromSlice([]*Node{FromString("x"), FromString("y"), FromString("z")})
	for round := 0; round < 2; round++ {
		var got []string
		for c := range arr.Children() {
			got = append(got, c.String)
		}
		want := []string{"x", "y", "z"}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("round %d: got %v", round, got)
			}
		}
	}
}

func TestCloneIndependent(t *testing.T) {
	doc, err := FromJSON([]byte(`{"a":[1,{"b":2}]}`))
	if err != nil {
		t.Fatal(err)
	}
	cp := doc.Clone()
	Get(doc, "a").Values[0].Detach()
	if got := MustJSON(cp); got != `{"a":[1,{"b":2}]}` {
		t.Errorf("clone mutated: %s", got)
	}
	if !Equal(doc, doc.Clone()) {
		t.Errorf("clone not equal to source")
	}
}

func TestPath(t *testing.T) {
	doc, err := FromJSON([]byte(`{"a":{"b":[10,20]}}`))
	if err != nil {
		t.Fatal(err)
	}
	n := Get(Get(doc, "a"), "b").Values[1]
	if got := n.Path(); got != "$.a.b[1]" {
		t.Errorf("Path() = %q", got)
	}
}
