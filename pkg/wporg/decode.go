package wporg

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/elliotchance/phpserialize"
)

// ErrDecode is returned when a response body decodes in neither supported encoding.
var ErrDecode = errors.New("failed to decode registry response")

// decodeBody normalizes a response body of unknown encoding into plain
// maps and slices. The registry answers in JSON or in PHP-serialized form
// depending on the endpoint's mood, so JSON is tried first. PHP objects are
// never materialized as typed values; anything that is not a plain
// array/mapping structure is a decode failure.
func decodeBody(raw []byte) (interface{}, error) {
	var doc interface{}
	if err := json.Unmarshal(raw, &doc); err == nil {
		switch doc.(type) {
		case map[string]interface{}, []interface{}:
			return doc, nil
		}
	}

	arr, err := phpserialize.UnmarshalAssociativeArray(raw)
	if err != nil {
		return nil, ErrDecode
	}

	return normalize(arr), nil
}

// normalize rewrites PHP-style maps into map[string]interface{}, turning
// dense zero-based integer-keyed maps back into slices (PHP lists serialize
// as associative arrays).
func normalize(v interface{}) interface{} {
	switch t := v.(type) {
	case map[interface{}]interface{}:
		if list, ok := asList(t); ok {
			return list
		}

		m := make(map[string]interface{}, len(t))
		for key, value := range t {
			m[fmt.Sprint(key)] = normalize(value)
		}

		return m

	case []interface{}:
		for i := range t {
			t[i] = normalize(t[i])
		}

		return t

	default:
		return v
	}
}

func asList(m map[interface{}]interface{}) ([]interface{}, bool) {
	if len(m) == 0 {
		return nil, false
	}

	out := make([]interface{}, len(m))
	seen := make([]bool, len(m))

	for key, value := range m {
		i, ok := intKey(key)
		if !ok || i < 0 || i >= int64(len(m)) || seen[i] {
			return nil, false
		}

		seen[i] = true
		out[i] = normalize(value)
	}

	return out, true
}

func intKey(key interface{}) (int64, bool) {
	switch k := key.(type) {
	case int:
		return int64(k), true
	case int64:
		return k, true
	case uint64:
		return int64(k), true
	case float64:
		return int64(k), k == float64(int64(k))
	default:
		return 0, false
	}
}
