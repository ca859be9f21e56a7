// Package airesponse turns whatever the AI provider sent back into Markdown.
//
// Provider output is only loosely structured: sometimes a parsed object,
// sometimes a JSON string, sometimes JSON with prose around it, sometimes
// plain Markdown. Normalize never fails; every shape has a defined fallback.
package airesponse

import (
	"bytes"
	"encoding/json"
	"strconv"
)

type Kind int

const (
	KindEmpty Kind = iota
	KindText
	KindStructured
	KindUnsupported
)

func (k Kind) String() string {
	switch k {
	case KindEmpty:
		return "empty"
	case KindText:
		return "text"
	case KindStructured:
		return "structured"
	default:
		return "unsupported"
	}
}

// Response is the tagged form of one AI reply, built where the reply enters
// the program.
type Response struct {
	kind Kind
	text string
	obj  *Object
}

func Empty() Response { return Response{kind: KindEmpty} }

func Text(s string) Response { return Response{kind: KindText, text: s} }

// Structured wraps an already-parsed object. A nil object is Empty.
func Structured(o *Object) Response {
	if o == nil {
		return Empty()
	}
	return Response{kind: KindStructured, obj: o}
}

func Unsupported() Response { return Response{kind: KindUnsupported} }

func (r Response) Kind() Kind { return r.kind }

func (r Response) Text() (string, bool) {
	return r.text, r.kind == KindText
}

func (r Response) Object() (*Object, bool) {
	return r.obj, r.kind == KindStructured
}

// FromAny classifies a Go value. Arrays become objects keyed by index, the
// way a JavaScript client would enumerate them.
func FromAny(v any) Response {
	switch x := v.(type) {
	case nil:
		return Empty()
	case Response:
		return x
	case string:
		return Text(x)
	case *Object:
		return Structured(x)
	case Object:
		return Structured(&x)
	case map[string]any:
		return Structured(ObjectFromMap(x))
	case []any:
		return Structured(indexObject(x))
	case json.RawMessage:
		return FromJSON(x)
	case []byte:
		return FromJSON(x)
	default:
		return Unsupported()
	}
}

// FromJSON classifies an encoded JSON value, e.g. the "content" field of an
// API request. A JSON string becomes Text and is not parsed further here.
func FromJSON(raw []byte) Response {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return Empty()
	}
	v, err := parseValue(raw)
	if err != nil {
		return Unsupported()
	}
	switch x := v.(type) {
	case nil:
		return Empty()
	case string:
		return Text(x)
	case *Object:
		return Structured(x)
	case []any:
		return Structured(indexObject(x))
	default:
		return Unsupported()
	}
}

func indexObject(arr []any) *Object {
	o := &Object{}
	for i, v := range arr {
		o.Set(strconv.Itoa(i), fromGo(v))
	}
	return o
}
