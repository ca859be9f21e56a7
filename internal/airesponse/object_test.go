package airesponse

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObject_UnmarshalKeepsOrder(t *testing.T) {
	var obj Object
	require.NoError(t, json.Unmarshal([]byte(`{"c": 1, "a": {"z": true, "y": null}, "b": [1, 2]}`), &obj))

	keys := make([]string, 0, obj.Len())
	for _, f := range obj.Fields() {
		keys = append(keys, f.Key)
	}
	assert.Equal(t, []string{"c", "a", "b"}, keys)

	inner, ok := obj.Get("a")
	require.True(t, ok)
	assert.Equal(t, "z", inner.(*Object).Fields()[0].Key)
}

func TestObject_DuplicateKeyLastValueWins(t *testing.T) {
	obj, err := parseObject([]byte(`{"k": "first", "other": "x", "k": "second"}`))
	require.NoError(t, err)
	assert.Equal(t, 2, obj.Len())
	assert.Equal(t, "k", obj.Fields()[0].Key)
	s, ok := obj.String("k")
	assert.True(t, ok)
	assert.Equal(t, "second", s)
}

func TestObject_StrictParseRejectsTrailingData(t *testing.T) {
	_, err := parseObject([]byte(`{"a": "b"} trailing`))
	assert.Error(t, err)

	_, err = parseObject([]byte(`["not", "object"]`))
	assert.ErrorIs(t, err, errNotObject)

	_, err = parseObject([]byte(`{"a": "b"`))
	assert.Error(t, err)
}

func TestObject_MarshalDoesNotEscapeHTML(t *testing.T) {
	obj := NewObject(Field{Key: "code", Value: "a < b && c > d"}, Field{Key: "n", Value: json.Number("1.50")})
	b, err := obj.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `{"code":"a < b && c > d","n":1.50}`, string(b))
}

func TestObject_NilSafe(t *testing.T) {
	var obj *Object
	assert.Equal(t, 0, obj.Len())
	assert.Nil(t, obj.Fields())
	_, ok := obj.Get("x")
	assert.False(t, ok)
}
