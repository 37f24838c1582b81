// File: confstore/value/yaml.go
package value

import (
	"fmt"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// DecodeYAML parses a YAML document into a Value, preserving mapping key
// order. Plain scalars are untyped text at parse time, so the decoder
// recovers types by attempting, in order, boolean, integer, floating-point,
// and finally string interpretation. The ordering keeps YAML round-trip
// compatible with the JSON representation. Scalars explicitly tagged !!str
// (the quoted form) stay strings.
func DecodeYAML(data []byte) (Value, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(data, &root); err != nil {
		return nil, err
	}
	if root.Kind == 0 || len(root.Content) == 0 {
		return Null{}, nil
	}
	return fromYAMLNode(root.Content[0])
}

// DecodeYAMLMapping parses a mapping-rooted YAML document, the shape every
// persisted configuration file has.
func DecodeYAMLMapping(data []byte) (*Map, error) {
	v, err := DecodeYAML(data)
	if err != nil {
		return nil, err
	}
	m, ok := v.(*Map)
	if !ok {
		return nil, fmt.Errorf("value: YAML document root is %s, expected a mapping", v.Kind())
	}
	return m, nil
}

func fromYAMLNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.MappingNode:
		m := NewMap()
		for i := 0; i+1 < len(n.Content); i += 2 {
			child, err := fromYAMLNode(n.Content[i+1])
			if err != nil {
				return nil, err
			}
			m.Set(n.Content[i].Value, child)
		}
		return m, nil
	case yaml.SequenceNode:
		list := make(List, 0, len(n.Content))
		for _, item := range n.Content {
			child, err := fromYAMLNode(item)
			if err != nil {
				return nil, err
			}
			list = append(list, child)
		}
		return list, nil
	case yaml.ScalarNode:
		return scalarValue(n), nil
	case yaml.AliasNode:
		return fromYAMLNode(n.Alias)
	default:
		return nil, fmt.Errorf("value: unsupported YAML node kind %d", n.Kind)
	}
}

func scalarValue(n *yaml.Node) Value {
	switch n.Tag {
	case "!!null":
		return Null{}
	case "!!str":
		return String(n.Value)
	}
	return coerceScalar(n.Value)
}

// coerceScalar applies the bool -> int -> float -> string recovery order to
// a plain scalar. Only the literal spellings "true" and "false" count as
// booleans so that numeric scalars are never misread.
func coerceScalar(s string) Value {
	switch s {
	case "true":
		return Bool(true)
	case "false":
		return Bool(false)
	case "null", "~", "":
		return Null{}
	}
	if i, err := strconv.ParseInt(s, 10, 64); err == nil {
		return Int(i)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return Float(f)
	}
	return String(s)
}

// EncodeYAML serializes v as a YAML document. Strings whose plain rendering
// would be re-coerced on load are double-quoted to survive the round trip.
func EncodeYAML(v Value) ([]byte, error) {
	node, err := toYAMLNode(v)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(node)
}

func toYAMLNode(v Value) (*yaml.Node, error) {
	switch t := v.(type) {
	case nil, Null:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
	case Bool:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: strconv.FormatBool(bool(t))}, nil
	case Int:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.FormatInt(int64(t), 10)}, nil
	case Float:
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: formatYAMLFloat(float64(t))}, nil
	case String:
		node := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: string(t)}
		if _, plain := coerceScalar(string(t)).(String); !plain {
			node.Style = yaml.DoubleQuotedStyle
		}
		return node, nil
	case List:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, item := range t {
			child, err := toYAMLNode(item)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, child)
		}
		return node, nil
	case *Map:
		node := &yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"}
		for _, key := range t.keys {
			child, err := toYAMLNode(t.items[key])
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content,
				&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key},
				child)
		}
		return node, nil
	default:
		return nil, fmt.Errorf("value: cannot encode foreign node type %T as YAML", v)
	}
}

// formatYAMLFloat keeps a decimal point in the rendering so the scalar is
// not re-coerced to an integer on load.
func formatYAMLFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
