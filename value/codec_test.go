// File: confstore/value/codec_test.go
package value

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleDocument() *Map {
	nested := NewMap()
	nested.Set("nestedKey", String("nestedValue"))

	complex := NewMap()
	complex.Set("key1", String("value1"))
	complex.Set("key2", Int(42))
	complex.Set("key3", nested)

	doc := NewMap()
	doc.Set("name", String("example"))
	doc.Set("enabled", Bool(true))
	doc.Set("ratio", Float(0.75))
	doc.Set("empty", Null{})
	doc.Set("tags", List{String("a"), String("b")})
	doc.Set("complex", complex)
	return doc
}

func TestJSONRoundTrip(t *testing.T) {
	doc := sampleDocument()

	data, err := EncodeJSON(doc)
	require.NoError(t, err)

	back, err := DecodeJSONObject(data)
	require.NoError(t, err)
	assert.True(t, Equal(doc, back), "JSON round trip must be lossless")
	assert.Equal(t, doc.Keys(), back.Keys(), "JSON object key order must survive")
}

func TestJSONDecodeErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"Malformed", `{"key": `},
		{"Empty", ``},
		{"TrailingData", `{"a":1} {"b":2}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodeJSON([]byte(tt.data))
			assert.Error(t, err)
		})
	}

	t.Run("NonObjectRoot", func(t *testing.T) {
		_, err := DecodeJSONObject([]byte(`[1, 2, 3]`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "expected an object")
	})
}

func TestJSONNumberPrecision(t *testing.T) {
	back, err := DecodeJSONObject([]byte(`{"big": 9007199254740993, "frac": 1.5, "exp": 1e3}`))
	require.NoError(t, err)

	v, _ := back.Get("big")
	assert.Equal(t, Int(9007199254740993), v, "integers beyond float53 must stay exact")
	v, _ = back.Get("frac")
	assert.Equal(t, Float(1.5), v)
	v, _ = back.Get("exp")
	assert.Equal(t, Float(1000), v)
}

func TestJSONFloatKeepsDecimalPoint(t *testing.T) {
	doc := NewMap()
	doc.Set("whole", Float(3))
	doc.Set("frac", Float(0.75))

	data, err := EncodeJSON(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "3.0")

	back, err := DecodeJSONObject(data)
	require.NoError(t, err)
	v, _ := back.Get("whole")
	assert.Equal(t, Float(3), v, "a whole-valued float must not come back as an integer")
	v, _ = back.Get("frac")
	assert.Equal(t, Float(0.75), v)
}

func TestJSONNonFiniteFloatRejected(t *testing.T) {
	for _, f := range []Float{Float(math.NaN()), Float(math.Inf(1)), Float(math.Inf(-1))} {
		doc := NewMap()
		doc.Set("bad", f)
		_, err := EncodeJSON(doc)
		assert.Error(t, err)
	}
}

func TestYAMLRoundTrip(t *testing.T) {
	doc := sampleDocument()

	data, err := EncodeYAML(doc)
	require.NoError(t, err)

	back, err := DecodeYAMLMapping(data)
	require.NoError(t, err)
	assert.True(t, Equal(doc, back), "YAML round trip must be lossless despite scalar coercion")
	assert.Equal(t, doc.Keys(), back.Keys(), "YAML mapping key order must survive")
}

func TestYAMLScalarCoercion(t *testing.T) {
	// Plain scalars recover types in bool -> int -> float -> string order.
	back, err := DecodeYAMLMapping([]byte(
		"flag: true\noff: false\ncount: 42\nratio: 2.5\nword: hello\nnothing: null\n"))
	require.NoError(t, err)

	expect := map[string]Value{
		"flag":    Bool(true),
		"off":     Bool(false),
		"count":   Int(42),
		"ratio":   Float(2.5),
		"word":    String("hello"),
		"nothing": Null{},
	}
	for key, want := range expect {
		v, ok := back.Get(key)
		require.True(t, ok, key)
		assert.Equal(t, want, v, key)
	}
}

func TestYAMLQuotedStringsStayStrings(t *testing.T) {
	doc := NewMap()
	doc.Set("looksInt", String("42"))
	doc.Set("looksBool", String("true"))
	doc.Set("looksFloat", String("2.5"))
	doc.Set("empty", String(""))

	data, err := EncodeYAML(doc)
	require.NoError(t, err)

	back, err := DecodeYAMLMapping(data)
	require.NoError(t, err)
	assert.True(t, Equal(doc, back), "quoted scalars must not be re-coerced: %s", data)
}

func TestYAMLFloatKeepsDecimalPoint(t *testing.T) {
	doc := NewMap()
	doc.Set("whole", Float(3))

	data, err := EncodeYAML(doc)
	require.NoError(t, err)
	assert.Contains(t, string(data), "3.0")

	back, err := DecodeYAMLMapping(data)
	require.NoError(t, err)
	v, _ := back.Get("whole")
	assert.Equal(t, Float(3), v)
}

func TestYAMLNonMappingRoot(t *testing.T) {
	_, err := DecodeYAMLMapping([]byte("- 1\n- 2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected a mapping")
}

func TestCrossFormatFidelity(t *testing.T) {
	// A document written as YAML and re-read must match the same document
	// written as JSON and re-read.
	doc := sampleDocument()

	jsonData, err := EncodeJSON(doc)
	require.NoError(t, err)
	fromJSON, err := DecodeJSONObject(jsonData)
	require.NoError(t, err)

	yamlData, err := EncodeYAML(doc)
	require.NoError(t, err)
	fromYAML, err := DecodeYAMLMapping(yamlData)
	require.NoError(t, err)

	assert.True(t, Equal(fromJSON, fromYAML))
}
