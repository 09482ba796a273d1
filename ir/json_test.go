package ir

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestFromJSON(t *testing.T) {
	doc, err := FromJSON([]byte(`{"s":"x","i":3,"f":1.5,"b":true,"n":null,"a":[1,"two"]}`))
	if err != nil {
		t.Fatal(err)
	}
	if doc.Type != ObjectType {
		t.Fatalf("root type %s", doc.Type)
	}
	if n := Get(doc, "i"); n.Int64 == nil || *n.Int64 != 3 {
		t.Errorf("i not parsed as int")
	}
	if n := Get(doc, "f"); n.Float64 == nil || *n.Float64 != 1.5 {
		t.Errorf("f not parsed as float")
	}
	if n := Get(doc, "a"); n.Type != ArrayType || len(n.Values) != 2 {
		t.Errorf("a not parsed as 2-element array")
	}
	if _, err := FromJSON([]byte(`{"a":`)); err == nil {
		t.Errorf("truncated json accepted")
	}
}

func TestToJSONPreservesFieldOrder(t *testing.T) {
	in := `{"z":1,"a":{"m":[true,null],"k":"v"}}`
	doc, err := FromJSON([]byte(in))
	if err != nil {
		t.Fatal(err)
	}
	if got := MustJSON(doc); got != in {
		t.Errorf("round trip:\n got %s\nwant %s", got, in)
	}
}

func TestFromYAML(t *testing.T) {
	doc, err := FromYAML([]byte("a:\n  - 1\n  - two\nb: true\n"))
	if err != nil {
		t.Fatal(err)
	}
	want := map[string]any{
		"a": []any{int64(1), "two"},
		"b": true,
	}
	if diff := cmp.Diff(want, doc.ToGo()); diff != "" {
		t.Errorf("ToGo mismatch (-want +got):\n%s", diff)
	}
}
