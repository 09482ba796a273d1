package oplog

import (
	"errors"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/signadot/docmod/ir"
	"github.com/signadot/docmod/update"
)

func mustDoc(t *testing.T, s string) *ir.Node {
	t.Helper()
	doc, err := ir.FromJSON([]byte(s))
	if err != nil {
		t.Fatal(err)
	}
	return doc
}

// a delta applied to a pre-update replica must reproduce the
// post-update document, and reapplying it must change nothing
func TestApplyReplicatesDriverResult(t *testing.T) {
	tests := []struct {
		name string
		expr string
		doc  string
	}{
		{"remove duplicates", `{"$pullAll":{"a":[2]}}`, `{"a":[1,2,3,2],"k":"v"}`},
		{"empty the array", `{"$pullAll":{"a":[2]}}`, `{"a":[2,2]}`},
		{"absent field", `{"$pullAll":{"a.b.c":["x"]}}`, `{"a":{"b":1}}`},
		{"several fields", `{"$pullAll":{"a":[1],"b":[2]},"$pop":{"c":-1}}`, `{"a":[1],"b":[9],"c":[3,4]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := update.Parse(mustDoc(t, tt.expr))
			if err != nil {
				t.Fatal(err)
			}
			doc := mustDoc(t, tt.doc)
			res, err := d.Update(doc, "")
			if err != nil {
				t.Fatal(err)
			}

			replica, err := Apply([]byte(tt.doc), res.Log)
			if err != nil {
				t.Fatal(err)
			}
			want := ir.MustJSON(doc)
			if !equalJSON(replica, []byte(want)) {
				t.Errorf("replica = %s, want %s", replica, want)
			}

			again, err := Apply(replica, res.Log)
			if err != nil {
				t.Fatal(err)
			}
			if !equalJSON(again, replica) {
				t.Errorf("delta not idempotent: %s then %s", replica, again)
			}
		})
	}
}

func TestApplyMergePatch(t *testing.T) {
	d, err := update.Parse(mustDoc(t, `{"$pullAll":{"a":[2],"x.y":[1]}}`))
	if err != nil {
		t.Fatal(err)
	}
	orig := `{"a":[1,2],"x":{"y":[1],"z":0}}`
	doc := mustDoc(t, orig)
	res, err := d.Update(doc, "")
	if err != nil {
		t.Fatal(err)
	}
	replica, err := ApplyMergePatch([]byte(orig), res.Log)
	if err != nil {
		t.Fatal(err)
	}
	want := ir.MustJSON(doc)
	if !equalJSON(replica, []byte(want)) {
		t.Errorf("replica = %s, want %s", replica, want)
	}
}

func TestMergePatchUnsetIsNull(t *testing.T) {
	logDoc := mustDoc(t, `{"$unset":{"a.b":true}}`)
	patch, err := MergePatch(logDoc)
	if err != nil {
		t.Fatal(err)
	}
	if got := gjson.GetBytes(patch, "a.b"); got.Type != gjson.Null || !got.Exists() {
		t.Errorf("patch = %s, want null at a.b", patch)
	}
}

func TestApplyRejectsBadEntries(t *testing.T) {
	for _, s := range []string{`[1]`, `{"$inc":{"a":1}}`, `{"$set":[1]}`} {
		if _, err := Apply([]byte(`{}`), mustDoc(t, s)); !errors.Is(err, ErrBadEntry) {
			t.Errorf("Apply(%s) = %v, want ErrBadEntry", s, err)
		}
	}
}

func equalJSON(a, b []byte) bool {
	na, errA := ir.FromJSON(a)
	nb, errB := ir.FromJSON(b)
	if errA != nil || errB != nil {
		return false
	}
	return ir.Equal(na, nb)
}
