// Package normalizer maps provider payloads of varying shape onto the canonical
// profile and photo types.
package normalizer

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"

	"github.com/avatarctic/profile-lookup/internal/core/ports"
)

// Numbers are kept as json.Number so large ids survive decoding intact.
var payloadJSON = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	UseNumber:              true,
}.Froze()

// decodeObject parses payload and requires a JSON object at its root.
func decodeObject(payload []byte) (map[string]any, error) {
	trimmed := bytes.TrimSpace(payload)
	if len(trimmed) == 0 {
		return nil, ports.NewLookupError(ports.LookupCodeMalformedPayload, "upstream returned an empty body", nil)
	}
	var doc any
	if err := payloadJSON.Unmarshal(trimmed, &doc); err != nil {
		return nil, ports.NewLookupError(ports.LookupCodeMalformedPayload, "upstream response is not valid JSON", err)
	}
	root, ok := doc.(map[string]any)
	if !ok {
		return nil, ports.NewLookupError(ports.LookupCodeNotFound, "upstream response carries no profile data", nil)
	}
	return root, nil
}

// lookupPath resolves a dotted path such as "image_versions2.candidates[0].url".
// ok is false when any segment is missing or the final value is null.
func lookupPath(node any, path string) (any, bool) {
	cur := node
	for _, seg := range strings.Split(path, ".") {
		name, idx, hasIdx := splitIndex(seg)
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, false
		}
		if cur, ok = obj[name]; !ok {
			return nil, false
		}
		if hasIdx {
			list, ok := cur.([]any)
			if !ok || idx >= len(list) {
				return nil, false
			}
			cur = list[idx]
		}
	}
	if cur == nil {
		return nil, false
	}
	return cur, true
}

func splitIndex(seg string) (name string, idx int, ok bool) {
	open := strings.IndexByte(seg, '[')
	if open < 0 || !strings.HasSuffix(seg, "]") {
		return seg, 0, false
	}
	n, err := strconv.Atoi(seg[open+1 : len(seg)-1])
	if err != nil || n < 0 {
		return seg, 0, false
	}
	return seg[:open], n, true
}

// firstString returns the first candidate holding a non-empty string or number.
func firstString(node any, candidates ...string) (string, bool) {
	for _, path := range candidates {
		v, ok := lookupPath(node, path)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case json.Number:
			v = t.String()
		case string, float64, int, int64:
		default:
			continue
		}
		s, err := cast.ToStringE(v)
		if err != nil || s == "" {
			continue
		}
		return s, true
	}
	return "", false
}

// firstCount returns the first candidate coercible to an integer, clamped at zero.
func firstCount(node any, candidates ...string) (int, bool) {
	for _, path := range candidates {
		v, ok := lookupPath(node, path)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case map[string]any, []any, bool:
			continue
		case json.Number:
			v = numberValue(t)
		}
		n, err := cast.ToIntE(v)
		if err != nil {
			if f, ferr := cast.ToFloat64E(v); ferr == nil {
				n = int(f)
			} else {
				continue
			}
		}
		if n < 0 {
			n = 0
		}
		return n, true
	}
	return 0, false
}

// firstBool returns the first candidate coercible to a boolean.
func firstBool(node any, candidates ...string) (bool, bool) {
	for _, path := range candidates {
		v, ok := lookupPath(node, path)
		if !ok {
			continue
		}
		switch t := v.(type) {
		case map[string]any, []any:
			continue
		case json.Number:
			f, err := t.Float64()
			if err != nil {
				continue
			}
			return f != 0, true
		}
		b, err := cast.ToBoolE(v)
		if err != nil {
			continue
		}
		return b, true
	}
	return false, false
}

func objectAt(node any, path string) (map[string]any, bool) {
	v, ok := lookupPath(node, path)
	if !ok {
		return nil, false
	}
	obj, ok := v.(map[string]any)
	return obj, ok
}

func listAt(node any, path string) ([]any, bool) {
	v, ok := lookupPath(node, path)
	if !ok {
		return nil, false
	}
	list, ok := v.([]any)
	return list, ok
}

// numberValue converts a json.Number into int64 when integral, float64 otherwise.
func numberValue(n json.Number) any {
	if i, err := n.Int64(); err == nil {
		return i
	}
	if f, err := n.Float64(); err == nil {
		return f
	}
	return n.String()
}
