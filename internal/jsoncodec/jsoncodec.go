// Package jsoncodec wraps json-iterator with the standard library's semantics.
package jsoncodec

import (
	"bytes"
	"encoding/json"

	jsoniter "github.com/json-iterator/go"
)

// API is the shared json-iterator configuration.
var API = jsoniter.ConfigCompatibleWithStandardLibrary

var (
	Marshal   = API.Marshal
	Unmarshal = API.Unmarshal
)

// MarshalIndent encodes v and re-indents the result with two spaces per level.
// Custom MarshalJSON output is indented too.
func MarshalIndent(v any) ([]byte, error) {
	compact, err := Marshal(v)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, compact, "", "  "); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// TypeName reports the JSON type of a decoded value.
func TypeName(v any) string {
	switch v.(type) {
	case nil:
		return "null"
	case bool:
		return "boolean"
	case float64, json.Number:
		return "number"
	case string:
		return "string"
	case []any:
		return "array"
	case map[string]any:
		return "object"
	default:
		return "unknown"
	}
}
