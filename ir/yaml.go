package ir

import (
	"fmt"

	"github.com/goccy/go-yaml"
)

// FromYAML parses a YAML document into a tree.
func FromYAML(data []byte) (*Node, error) {
	var v any
	if err := yaml.Unmarshal(data, &v); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrParse, err)
	}
	return FromGo(v), nil
}

// ToYAML renders a tree as YAML. Object field order follows the
// decoded Go map, not the tree.
func ToYAML(y *Node) ([]byte, error) {
	return yaml.Marshal(y.ToGo())
}
