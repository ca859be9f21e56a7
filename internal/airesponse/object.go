package airesponse

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sort"
	"strconv"
)

var errNotObject = errors.New("airesponse: json value is not an object")

// Field is one key/value pair of an Object.
type Field struct {
	Key   string
	Value any
}

// Object is a JSON object that remembers the order its keys were read in.
// Values are string, json.Number, bool, nil, []any or *Object.
type Object struct {
	fields []Field
	index  map[string]int
}

// NewObject builds an Object from fields in the given order. A repeated key
// keeps its first position and takes the last value, like JSON.parse.
func NewObject(fields ...Field) *Object {
	o := &Object{}
	for _, f := range fields {
		o.Set(f.Key, f.Value)
	}
	return o
}

// ObjectFromMap converts a Go map. Map iteration order is random, so keys are
// sorted to keep the rendering stable.
func ObjectFromMap(m map[string]any) *Object {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	o := &Object{}
	for _, k := range keys {
		o.Set(k, fromGo(m[k]))
	}
	return o
}

func fromGo(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return ObjectFromMap(x)
	case []any:
		out := make([]any, len(x))
		for i := range x {
			out[i] = fromGo(x[i])
		}
		return out
	default:
		return v
	}
}

func (o *Object) Set(key string, value any) {
	if o.index == nil {
		o.index = make(map[string]int)
	}
	if i, ok := o.index[key]; ok {
		o.fields[i].Value = value
		return
	}
	o.index[key] = len(o.fields)
	o.fields = append(o.fields, Field{Key: key, Value: value})
}

func (o *Object) Get(key string) (any, bool) {
	if o == nil {
		return nil, false
	}
	i, ok := o.index[key]
	if !ok {
		return nil, false
	}
	return o.fields[i].Value, true
}

// String returns the value under key when it is a JSON string.
func (o *Object) String(key string) (string, bool) {
	v, ok := o.Get(key)
	if !ok {
		return "", false
	}
	s, ok := v.(string)
	return s, ok
}

func (o *Object) Len() int {
	if o == nil {
		return 0
	}
	return len(o.fields)
}

// Fields returns the pairs in key order. The slice must not be modified.
func (o *Object) Fields() []Field {
	if o == nil {
		return nil
	}
	return o.fields
}

func (o *Object) UnmarshalJSON(b []byte) error {
	parsed, err := parseObject(b)
	if err != nil {
		return err
	}
	*o = *parsed
	return nil
}

func (o *Object) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	if err := writeValue(&buf, o); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// parseObject strictly parses b as a single JSON object, rejecting trailing data.
func parseObject(b []byte) (*Object, error) {
	v, err := parseValue(b)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*Object)
	if !ok {
		return nil, errNotObject
	}
	return obj, nil
}

func parseValue(b []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	v, err := decodeValue(dec)
	if err != nil {
		return nil, err
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("airesponse: trailing data after json value")
	}
	return v, nil
}

func decodeValue(dec *json.Decoder) (any, error) {
	tok, err := dec.Token()
	if err != nil {
		return nil, err
	}
	delim, ok := tok.(json.Delim)
	if !ok {
		return tok, nil
	}

	switch delim {
	case '{':
		obj := &Object{}
		for dec.More() {
			kt, err := dec.Token()
			if err != nil {
				return nil, err
			}
			key, ok := kt.(string)
			if !ok {
				return nil, fmt.Errorf("airesponse: unexpected object key %v", kt)
			}
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			obj.Set(key, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return obj, nil
	case '[':
		arr := []any{}
		for dec.More() {
			v, err := decodeValue(dec)
			if err != nil {
				return nil, err
			}
			arr = append(arr, v)
		}
		if _, err := dec.Token(); err != nil {
			return nil, err
		}
		return arr, nil
	default:
		return nil, fmt.Errorf("airesponse: unexpected delimiter %v", delim)
	}
}

// writeValue encodes v compactly, keeping Object key order and leaving <, >
// and & unescaped so code samples survive intact.
func writeValue(buf *bytes.Buffer, v any) error {
	switch x := v.(type) {
	case *Object:
		buf.WriteByte('{')
		for i, f := range x.Fields() {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeScalar(buf, f.Key); err != nil {
				return err
			}
			buf.WriteByte(':')
			if err := writeValue(buf, f.Value); err != nil {
				return err
			}
		}
		buf.WriteByte('}')
		return nil
	case []any:
		buf.WriteByte('[')
		for i, e := range x {
			if i > 0 {
				buf.WriteByte(',')
			}
			if err := writeValue(buf, e); err != nil {
				return err
			}
		}
		buf.WriteByte(']')
		return nil
	default:
		return writeScalar(buf, v)
	}
}

func writeScalar(buf *bytes.Buffer, v any) error {
	enc := json.NewEncoder(buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return err
	}
	// Encode always appends a newline.
	buf.Truncate(buf.Len() - 1)
	return nil
}

// prettyJSON renders v with two-space indentation.
func prettyJSON(v any) (string, error) {
	var compact, out bytes.Buffer
	if err := writeValue(&compact, v); err != nil {
		return "", err
	}
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return "", err
	}
	return out.String(), nil
}

// scalarString is the display form of a non-container value.
func scalarString(v any) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	default:
		return fmt.Sprint(x)
	}
}
