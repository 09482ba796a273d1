package ir

import (
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/tidwall/gjson"
)

// FromJSON parses a JSON document into a tree.
func FromJSON(data []byte) (*Node, error) {
	if !gjson.ValidBytes(data) {
		return nil, fmt.Errorf("%w: invalid json", ErrParse)
	}
	return fromResult(gjson.ParseBytes(data)), nil
}

func fromResult(r gjson.Result) *Node {
	switch r.Type {
	case gjson.Null:
		return Null()
	case gjson.False:
		return FromBool(false)
	case gjson.True:
		return FromBool(true)
	case gjson.String:
		return FromString(r.String())
	case gjson.Number:
		if i, err := strconv.ParseInt(r.Raw, 10, 64); err == nil {
			return FromInt(i)
		}
		if f, err := strconv.ParseFloat(r.Raw, 64); err == nil {
			return FromFloat(f)
		}
		return &Node{Type: NumberType, Number: r.Raw}
	case gjson.JSON:
		if r.IsArray() {
			res := &Node{Type: ArrayType}
			r.ForEach(func(_, v gjson.Result) bool {
				res.Append(fromResult(v))
				return true
			})
			return res
		}
		res := &Node{Type: ObjectType}
		r.ForEach(func(k, v gjson.Result) bool {
			res.AppendField(k.String(), fromResult(v))
			return true
		})
		return res
	}
	return Null()
}

// ToJSON renders the plain JSON value of a tree, preserving object
// field order.
func ToJSON(y *Node) ([]byte, error) {
	return appendJSON(nil, y)
}

// MustJSON is ToJSON for values known to be encodable.
func MustJSON(y *Node) string {
	d, err := ToJSON(y)
	if err != nil {
		panic(err)
	}
	return string(d)
}

func appendJSON(dst []byte, y *Node) ([]byte, error) {
	var err error
	switch y.Type {
	case NullType:
		return append(dst, "null"...), nil
	case BoolType:
		return strconv.AppendBool(dst, y.Bool), nil
	case StringType:
		return appendString(dst, y.String)
	case NumberType:
		if y.Int64 != nil {
			return strconv.AppendInt(dst, *y.Int64, 10), nil
		}
		if y.Float64 != nil {
			return strconv.AppendFloat(dst, *y.Float64, 'g', -1, 64), nil
		}
		if y.Number == "" {
			return nil, fmt.Errorf("%w: number node with no value", errInternal)
		}
		return append(dst, y.Number...), nil
	case ArrayType:
		dst = append(dst, '[')
		for i, v := range y.Values {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst, err = appendJSON(dst, v)
			if err != nil {
				return nil, err
			}
		}
		return append(dst, ']'), nil
	case ObjectType:
		dst = append(dst, '{')
		for i, f := range y.Fields {
			if i > 0 {
				dst = append(dst, ',')
			}
			dst, err = appendString(dst, f)
			if err != nil {
				return nil, err
			}
			dst = append(dst, ':')
			dst, err = appendJSON(dst, y.Values[i])
			if err != nil {
				return nil, err
			}
		}
		return append(dst, '}'), nil
	}
	return nil, fmt.Errorf("%w: unencodable type %s", errInternal, y.Type)
}

func appendString(dst []byte, s string) ([]byte, error) {
	q, err := json.Marshal(s)
	if err != nil {
		return nil, err
	}
	return append(dst, q...), nil
}
