package jsonclean

import (
	"bytes"
	"encoding/json"
	"unicode/utf8"

	"github.com/valyala/fastjson"
)

// UnicodeError reports input that is not valid UTF-8.
type UnicodeError struct{}

func (*UnicodeError) Error() string { return "jsonclean: body is not valid UTF-8" }

// ErrInvalidUTF8 is returned by Decode for input that is not valid UTF-8.
var ErrInvalidUTF8 error = &UnicodeError{}

// SyntaxError reports input that is not a JSON document.
type SyntaxError struct {
	Msg string
}

func (e *SyntaxError) Error() string { return "jsonclean: " + e.Msg }

// Decode parses raw JSON into map[string]any, []any, string, bool, nil
// and json.Number values. Numbers keep their original literal so that
// re-encoding does not change precision.
func Decode(raw []byte) (any, error) {
	if !utf8.Valid(raw) {
		return nil, ErrInvalidUTF8
	}
	var p fastjson.Parser
	v, err := p.ParseBytes(raw)
	if err != nil {
		return nil, &SyntaxError{Msg: err.Error()}
	}
	return convert(v), nil
}

func convert(v *fastjson.Value) any {
	switch v.Type() {
	case fastjson.TypeObject:
		obj, _ := v.Object()
		out := make(map[string]any, obj.Len())
		obj.Visit(func(key []byte, child *fastjson.Value) {
			out[string(key)] = convert(child)
		})
		return out
	case fastjson.TypeArray:
		arr, _ := v.Array()
		out := make([]any, len(arr))
		for i, child := range arr {
			out[i] = convert(child)
		}
		return out
	case fastjson.TypeString:
		return string(v.GetStringBytes())
	case fastjson.TypeNumber:
		return json.Number(v.String())
	case fastjson.TypeTrue:
		return true
	case fastjson.TypeFalse:
		return false
	default:
		return nil
	}
}

// Encode renders doc as compact JSON without HTML escaping.
func Encode(doc any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}
