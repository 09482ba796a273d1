// Package oplog applies replication deltas produced by the update
// driver to raw JSON copies of a document. A delta is an object whose
// entries are keyed "$set" or "$unset" and map dotted field paths to
// the post-update value, or to true for removal.
package oplog

import (
	"errors"
	"fmt"

	"github.com/tidwall/sjson"

	"github.com/signadot/docmod/debug"
	"github.com/signadot/docmod/ir"
)

var ErrBadEntry = errors.New("bad oplog entry")

// Apply replays a delta onto a JSON replica and returns the updated
// bytes. Applying the same delta twice yields the same document.
func Apply(replica []byte, logDoc *ir.Node) ([]byte, error) {
	if logDoc.Type != ir.ObjectType {
		return nil, fmt.Errorf("%w: delta must be an object, got %s",
			ErrBadEntry, logDoc.Type)
	}
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
				if debug.Oplog() {
					debug.Logf("oplog: set %s = %s\n", path, raw)
				}
				replica, err = sjson.SetRawBytes(replica, path, raw)
				if err != nil {
					return nil, fmt.Errorf("setting %s: %w", path, err)
				}
			}
		case "$unset":
			for _, path := range entry.Fields {
				if debug.Oplog() {
					debug.Logf("oplog: unset %s\n", path)
				}
				replica, err = sjson.DeleteBytes(replica, path)
				if err != nil {
					return nil, fmt.Errorf("unsetting %s: %w", path, err)
				}
			}
		default:
			return nil, fmt.Errorf("%w: unknown delta operator %q", ErrBadEntry, op)
		}
	}
	return replica, nil
}
