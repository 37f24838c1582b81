// File: confstore/value/value.go

// Package value defines the dynamically typed tree shared by the store and
// both file format codecs. A Value is one of Null, Bool, Int, Float, String,
// List, or *Map; every format-boundary conversion switches exhaustively over
// this closed set.
package value

import (
	"encoding/json"
	"fmt"
	"math"
	"sort"
)

// Kind identifies the variant held by a Value.
type Kind uint8

const (
	KindNull Kind = iota
	KindBool
	KindInt
	KindFloat
	KindString
	KindList
	KindMap
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case KindNull:
		return "null"
	case KindBool:
		return "bool"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	case KindList:
		return "list"
	case KindMap:
		return "map"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Value is the common currency between the store and the JSON/YAML codecs.
// The set of implementations is closed; callers can type-switch exhaustively
// over Null, Bool, Int, Float, String, List, and *Map.
type Value interface {
	Kind() Kind
	sealed()
}

// Null is the absent/nil variant.
type Null struct{}

// Bool is the boolean variant.
type Bool bool

// Int is the 64-bit integer variant.
type Int int64

// Float is the 64-bit floating-point variant.
type Float float64

// String is the text variant.
type String string

// List is an ordered sequence of values.
type List []Value

// Map is an ordered string-keyed mapping. The zero Map is not usable;
// construct with NewMap. Insertion order is preserved for stable output.
type Map struct {
	keys  []string
	items map[string]Value
}

func (Null) Kind() Kind   { return KindNull }
func (Bool) Kind() Kind   { return KindBool }
func (Int) Kind() Kind    { return KindInt }
func (Float) Kind() Kind  { return KindFloat }
func (String) Kind() Kind { return KindString }
func (List) Kind() Kind   { return KindList }
func (*Map) Kind() Kind   { return KindMap }

func (Null) sealed()   {}
func (Bool) sealed()   {}
func (Int) sealed()    {}
func (Float) sealed()  {}
func (String) sealed() {}
func (List) sealed()   {}
func (*Map) sealed()   {}

// NewMap creates an empty ordered map.
func NewMap() *Map {
	return &Map{items: make(map[string]Value)}
}

// Set stores v under key, appending the key on first insertion and
// overwriting in place afterwards.
func (m *Map) Set(key string, v Value) {
	if _, ok := m.items[key]; !ok {
		m.keys = append(m.keys, key)
	}
	m.items[key] = v
}

// Get returns the value stored under key.
func (m *Map) Get(key string) (Value, bool) {
	v, ok := m.items[key]
	return v, ok
}

// Delete removes key from the map, reporting whether it was present.
func (m *Map) Delete(key string) bool {
	if _, ok := m.items[key]; !ok {
		return false
	}
	delete(m.items, key)
	for i, k := range m.keys {
		if k == key {
			m.keys = append(m.keys[:i], m.keys[i+1:]...)
			break
		}
	}
	return true
}

// Len returns the number of entries.
func (m *Map) Len() int { return len(m.items) }

// Keys returns the keys in insertion order. The slice is a copy.
func (m *Map) Keys() []string {
	keys := make([]string, len(m.keys))
	copy(keys, m.keys)
	return keys
}

// Clone returns a deep copy of v. Scalars are copied by value; lists and
// maps are recursively duplicated so the result shares no mutable state
// with the original.
func Clone(v Value) Value {
	switch t := v.(type) {
	case nil:
		return Null{}
	case Null, Bool, Int, Float, String:
		return t
	case List:
		out := make(List, len(t))
		for i, item := range t {
			out[i] = Clone(item)
		}
		return out
	case *Map:
		out := NewMap()
		for _, key := range t.keys {
			out.Set(key, Clone(t.items[key]))
		}
		return out
	default:
		// Unreachable for the sealed set.
		return Null{}
	}
}

// Equal reports whether two values are structurally equal. Map comparison
// ignores insertion order; Int and Float never compare equal even when
// numerically identical, since they serialize differently.
func Equal(a, b Value) bool {
	if a == nil {
		a = Null{}
	}
	if b == nil {
		b = Null{}
	}
	if a.Kind() != b.Kind() {
		return false
	}
	switch av := a.(type) {
	case Null:
		return true
	case Bool:
		return av == b.(Bool)
	case Int:
		return av == b.(Int)
	case Float:
		return av == b.(Float)
	case String:
		return av == b.(String)
	case List:
		bv := b.(List)
		if len(av) != len(bv) {
			return false
		}
		for i := range av {
			if !Equal(av[i], bv[i]) {
				return false
			}
		}
		return true
	case *Map:
		bv := b.(*Map)
		if len(av.items) != len(bv.items) {
			return false
		}
		for key, item := range av.items {
			other, ok := bv.items[key]
			if !ok || !Equal(item, other) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// FromGo converts a plain Go value into a Value. It is total for nil, bool,
// the integer and float types, string, []any, map[string]any, json.Number,
// and Value itself; any other type yields a descriptive error. Map keys are
// inserted in sorted order since Go maps carry none.
func FromGo(x any) (Value, error) {
	switch t := x.(type) {
	case nil:
		return Null{}, nil
	case Value:
		return Clone(t), nil
	case bool:
		return Bool(t), nil
	case int:
		return Int(t), nil
	case int8:
		return Int(t), nil
	case int16:
		return Int(t), nil
	case int32:
		return Int(t), nil
	case int64:
		return Int(t), nil
	case uint:
		return Int(t), nil
	case uint8:
		return Int(t), nil
	case uint16:
		return Int(t), nil
	case uint32:
		return Int(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return nil, fmt.Errorf("value: uint64 %d overflows int64", t)
		}
		return Int(t), nil
	case float32:
		return Float(t), nil
	case float64:
		return Float(t), nil
	case string:
		return String(t), nil
	case json.Number:
		if i, err := t.Int64(); err == nil {
			return Int(i), nil
		}
		f, err := t.Float64()
		if err != nil {
			return nil, fmt.Errorf("value: cannot represent number %q: %w", t.String(), err)
		}
		return Float(f), nil
	case []any:
		out := make(List, len(t))
		for i, item := range t {
			v, err := FromGo(item)
			if err != nil {
				return nil, err
			}
			out[i] = v
		}
		return out, nil
	case map[string]any:
		keys := make([]string, 0, len(t))
		for key := range t {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		out := NewMap()
		for _, key := range keys {
			v, err := FromGo(t[key])
			if err != nil {
				return nil, err
			}
			out.Set(key, v)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("value: unsupported Go type %T", x)
	}
}

// ToGo converts a Value back to plain Go types: nil, bool, int64, float64,
// string, []any, and map[string]any. Map insertion order is lost.
func ToGo(v Value) any {
	switch t := v.(type) {
	case nil, Null:
		return nil
	case Bool:
		return bool(t)
	case Int:
		return int64(t)
	case Float:
		return float64(t)
	case String:
		return string(t)
	case List:
		out := make([]any, len(t))
		for i, item := range t {
			out[i] = ToGo(item)
		}
		return out
	case *Map:
		out := make(map[string]any, len(t.items))
		for key, item := range t.items {
			out[key] = ToGo(item)
		}
		return out
	default:
		return nil
	}
}
