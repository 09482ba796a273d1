package oplog

import (
	"fmt"

	jsonpatch "github.com/evanphx/json-patch"
	"github.com/tidwall/sjson"

	"github.com/signadot/docmod/ir"
)

// MergePatch exports a delta as an RFC 7386 merge patch: $set entries
// become the value at their path, $unset entries become null.
func MergePatch(logDoc *ir.Node) ([]byte, error) {
	if logDoc.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: delta must be an object, got %s",
			ErrBadEntry, logDoc.Type)
	}
	patch := []byte(`{}`)
	var err error
	for i, op := range logDoc.Fields {
		entry := logDoc.Values[i]
		if entry.Type != ir.ObjectType {
			return nil, fmt.Errorf("%w: %s entry must be an object", ErrBadEntry, op)
		}
		switch op {
		case "$set":
			for j, path := range entry.Fields {
				raw, jsonErr := ir.ToJSON(entry.Values[j])
				if jsonErr != nil {
					return nil, jsonErr
				}
				patch, err = sjson.SetRawBytes(patch, path, raw)
				if err != nil {
					return nil, fmt.Errorf("patching %s: %w", path, err)
				}
			}
		case "$unset":
			for _, path := range entry.Fields {
				patch, err = sjson.SetRawBytes(patch, path, []byte("null"))
				if err != nil {
					return nil, fmt.Errorf("patching %s: %w", path, err)
				}
			}
		default:
			return nil, fmt.Errorf("%w: unknown delta operator %q", ErrBadEntry, op)
		}
	}
	return patch, nil
}

// ApplyMergePatch replays a delta onto a JSON replica through its
// RFC 7386 form.
func ApplyMergePatch(replica []byte, logDoc *ir.Node) ([]byte, error) {
	patch, err := MergePatch(logDoc)
	if err != nil {
		return nil, err
	}
	res, err := jsonpatch.MergePatch(replica, patch)
	if err != nil {
		return nil, fmt.Errorf("merge patch: %w", err)
	}
	return res, nil
}
